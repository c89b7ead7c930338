// Package i18n translates the handful of strings the keyer window shows.
package i18n

import (
	"log"
	"os"
	"strings"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
)

var lang = "en"

// codes lines up with the tags given to matcher; the first entry is the
// fallback.
var codes = []string{"en", "pt", "es", "ru"}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Portuguese,
	language.Spanish,
	language.Russian,
})

var translations = map[string]map[string]string{
	"Iambic Paddle": {
		"pt": "Manipulador Iâmbico",
		"es": "Manipulador Yámbico",
		"ru": "Ямбический ключ",
	},
	"Ready!": {
		"pt": "Pronto!",
		"es": "¡Listo!",
		"ru": "Готов!",
	},
	"Sound unavailable": {
		"pt": "Som indisponível",
		"es": "Sonido no disponible",
		"ru": "Звук недоступен",
	},
	"Hold Esc to exit": {
		"pt": "Segure Esc para sair",
		"es": "Mantenga Esc para salir",
		"ru": "Удерживайте Esc для выхода",
	},
}

// Setup picks the UI language. A non-empty override wins, then the
// IAMBIC_LANG environment variable, then the system locale.
func Setup(override string) {
	if override = strings.TrimSpace(override); override != "" {
		log.Printf("UI language forced to: '%s'", override)
		lang = Match(override)
		return
	}

	if forcedLang := strings.TrimSpace(os.Getenv("IAMBIC_LANG")); forcedLang != "" {
		log.Printf("IAMBIC_LANG is set to: '%s'", forcedLang)
		lang = Match(forcedLang)
		return
	}

	userLocales, err := locale.GetLocales()
	if err != nil || len(userLocales) == 0 {
		log.Println("Could not get user locale, defaulting to english")
		lang = "en"
		return
	}
	log.Printf("Detected user locales: %v", userLocales)
	lang = Match(userLocales...)
	log.Printf("Language set to: %s", lang)
}

// Match returns the supported language closest to the given locale names,
// or "en" when none is close.
func Match(locales ...string) string {
	_, index := language.MatchStrings(matcher, locales...)
	if index < 0 || index >= len(codes) {
		return codes[0]
	}
	return codes[index]
}

// T returns key in the current language, or key itself when there is no
// translation.
func T(key string) string {
	if translated, ok := translations[key][lang]; ok {
		return translated
	}
	return key
}

// GetLang returns the current language code.
func GetLang() string {
	return lang
}
