package main

import (
	"context"
	"errors"
	"log"
	"os"

	"IambicPaddle/audio"
	"IambicPaddle/clock"
	"IambicPaddle/config"
	"IambicPaddle/i18n"
	"IambicPaddle/ui"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/pflag"
)

func main() {
	flags := config.Flags()
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatalf("Failed to parse flags: %v", err)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	i18n.Setup(cfg.UI.Lang)

	fyneApp := app.NewWithID("io.github.iambicpaddle")
	fyneApp.Settings().SetTheme(ui.NewCustomTheme())

	spk := audio.NewSpeaker(cfg.Audio.SampleRate, cfg.Audio.Buffer(), cfg.Audio.Gain)
	session := NewSession(spk, clock.Real())
	session.SetVerbose(cfg.Log.Debug)

	w, view := ui.CreateMainWindow(session, fyneApp)
	session.SetDisplay(view)

	ctx, cancel := context.WithCancel(context.Background())
	w.SetOnClosed(cancel)

	done := make(chan struct{})
	go func() {
		session.Run(ctx)
		close(done)
		fyne.Do(fyneApp.Quit)
	}()

	w.ShowAndRun()

	cancel()
	<-done
	if err := spk.Close(); err != nil && !errors.Is(err, audio.ErrNotAcquired) {
		log.Printf("Failed to close speaker: %v", err)
	}
}
