package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	table := []struct {
		locales []string
		want    string
	}{
		{[]string{"pt-BR"}, "pt"},
		{[]string{"es-AR"}, "es"},
		{[]string{"ru"}, "ru"},
		{[]string{"en-GB"}, "en"},
		{[]string{"ja-JP"}, "en"},
		{[]string{"ja-JP", "es-ES"}, "es"},
		{nil, "en"},
	}
	for _, entry := range table {
		assert.Equal(t, entry.want, Match(entry.locales...), "%v", entry.locales)
	}
}

func TestSetupOverrideAndTranslate(t *testing.T) {
	defer Setup("en")

	Setup("pt")
	assert.Equal(t, "pt", GetLang())
	assert.Equal(t, "Pronto!", T("Ready!"))
	assert.Equal(t, "untranslated", T("untranslated"))

	t.Setenv("IAMBIC_LANG", "ru")
	Setup("")
	assert.Equal(t, "ru", GetLang())
	assert.Equal(t, "Звук недоступен", T("Sound unavailable"))

	Setup("en")
	assert.Equal(t, "Ready!", T("Ready!"))
}
