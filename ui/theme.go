package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

var (
	// BackgroundColor is the window background.
	BackgroundColor = color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff}
	// ForegroundColor is used for all text.
	ForegroundColor = color.NRGBA{R: 0xf0, G: 0xa0, B: 0x30, A: 0xff}
)

// CustomTheme is the default fyne theme, always dark, with the keyer's
// amber-on-black palette.
type CustomTheme struct {
	fyne.Theme
}

// NewCustomTheme creates a new instance of the custom theme.
func NewCustomTheme() fyne.Theme {
	return &CustomTheme{Theme: theme.DefaultTheme()}
}

// Color returns the color for the given name, ignoring the requested
// variant.
func (t *CustomTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return BackgroundColor
	case theme.ColorNameForeground:
		return ForegroundColor
	}
	return t.Theme.Color(name, theme.VariantDark)
}
