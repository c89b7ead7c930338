// Package ui is the keyer window: it draws the current paddle state and
// forwards raw key down/up notifications to the input tracker.
package ui

import (
	"image/color"
	"log"

	"IambicPaddle/control"
	"IambicPaddle/i18n"
	"IambicPaddle/keyer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
)

// Layout constants
const (
	FontSizeTitle  float32 = 20.0
	FontSizeStatus float32 = 16.0
	FontSizeGlyph  float32 = 48.0
	FontSizeHint   float32 = 11.0

	WindowWidth  = 256
	WindowHeight = 192
)

// App is what the window needs from the running session.
type App interface {
	State() *keyer.State
	Input() *control.Tracker
	Silent() bool
}

// PaddleView shows the title, a status line and the glyph of the current
// paddle combination. It only reads keyer state.
type PaddleView struct {
	app App

	titleText  *canvas.Text
	statusText *canvas.Text
	glyphText  *canvas.Text
	hintText   *canvas.Text
	content    *fyne.Container
}

// NewPaddleView builds the view for a.
func NewPaddleView(a App) *PaddleView {
	v := &PaddleView{app: a}

	v.titleText = canvas.NewText(i18n.T("Iambic Paddle"), ForegroundColor)
	v.titleText.TextStyle.Bold = true
	v.titleText.TextSize = FontSizeTitle

	v.statusText = canvas.NewText(statusLine(a.Silent()), ForegroundColor)
	v.statusText.TextSize = FontSizeStatus

	v.glyphText = canvas.NewText(keyer.Idle.Glyph(), ForegroundColor)
	v.glyphText.TextStyle.Monospace = true
	v.glyphText.TextSize = FontSizeGlyph

	v.hintText = canvas.NewText(i18n.T("Hold Esc to exit"), color.Gray{Y: 0x80})
	v.hintText.TextSize = FontSizeHint

	v.content = container.New(layout.NewVBoxLayout(),
		container.New(layout.NewCenterLayout(), v.titleText),
		container.New(layout.NewCenterLayout(), v.statusText),
		layout.NewSpacer(),
		container.New(layout.NewCenterLayout(), v.glyphText),
		layout.NewSpacer(),
		container.New(layout.NewCenterLayout(), v.hintText),
	)
	return v
}

// CanvasObject returns the view's root object.
func (v *PaddleView) CanvasObject() fyne.CanvasObject {
	return v.content
}

// Refresh redraws the view from the current state. It is safe to call
// from any goroutine.
func (v *PaddleView) Refresh() {
	glyph := v.app.State().Get().Glyph()
	status := statusLine(v.app.Silent())
	fyne.Do(func() {
		if v.glyphText.Text != glyph {
			v.glyphText.Text = glyph
			v.glyphText.Refresh()
		}
		if v.statusText.Text != status {
			v.statusText.Text = status
			v.statusText.Refresh()
		}
	})
}

func statusLine(silent bool) string {
	if silent {
		return i18n.T("Sound unavailable")
	}
	return i18n.T("Ready!")
}

// KeyFor maps a keyboard key to a logical input key. The arrow keys are
// the paddles; Escape and BackSpace are Back.
func KeyFor(name fyne.KeyName) (control.Key, bool) {
	switch name {
	case fyne.KeyLeft:
		return control.KeyLeft, true
	case fyne.KeyRight:
		return control.KeyRight, true
	case fyne.KeyUp:
		return control.KeyUp, true
	case fyne.KeyDown:
		return control.KeyDown, true
	case fyne.KeyReturn, fyne.KeyEnter, fyne.KeySpace:
		return control.KeyOk, true
	case fyne.KeyEscape, fyne.KeyBackspace:
		return control.KeyBack, true
	}
	return 0, false
}

// BindKeys forwards key down/up on c to the tracker. It reports false when
// the canvas cannot report key releases, in which case the paddles are
// unusable.
func BindKeys(c fyne.Canvas, tracker *control.Tracker) bool {
	dc, ok := c.(desktop.Canvas)
	if !ok {
		return false
	}
	dc.SetOnKeyDown(func(e *fyne.KeyEvent) {
		if k, ok := KeyFor(e.Name); ok {
			tracker.KeyDown(k)
		}
	})
	dc.SetOnKeyUp(func(e *fyne.KeyEvent) {
		if k, ok := KeyFor(e.Name); ok {
			tracker.KeyUp(k)
		}
	})
	return true
}

// CreateMainWindow builds the keyer window for a.
func CreateMainWindow(a App, fyneApp fyne.App) (fyne.Window, *PaddleView) {
	title := fyneApp.Metadata().Name
	if title == "" {
		title = i18n.T("Iambic Paddle")
	}
	w := fyneApp.NewWindow(title)

	view := NewPaddleView(a)
	if !BindKeys(w.Canvas(), a.Input()) {
		log.Println("Window cannot report key releases; paddles disabled")
	}

	w.SetContent(view.CanvasObject())
	w.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	w.SetFixedSize(true)
	return w, view
}
