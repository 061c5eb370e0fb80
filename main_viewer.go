package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"connroute/config"
	"connroute/render"
	"connroute/routing"
	"connroute/scene"
	"connroute/terminal"

	"github.com/gdamore/tcell/v2"
)

// runViewer opens the interactive viewer on the terminal.
func runViewer(s *scene.Scene, cfg routing.Config, out config.OutputConfig, filename string, canSave bool) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to set up terminal: %w", err)
	}

	opts := render.DefaultOptions()
	opts.ScaleX, opts.ScaleY = out.CellX, out.CellY
	opts.Margin = out.Margin
	opts.ASCII = out.ASCII || !render.DetectCapabilities().Unicode

	v, err := terminal.NewViewer(screen, s, cfg, opts)
	if err != nil {
		screen.Fini()
		return err
	}
	if canSave {
		v.OnSave(func(s *scene.Scene) error {
			return s.SaveFile(filename)
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = v.Run(ctx)
	screen.Fini()

	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if v.Dirty() {
		log.Printf("unsaved changes to %s were discarded", filename)
	}
	return err
}
