// Package ui provides the runner that opens the terminal UI.
package ui

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/logging"
	"tableflip.dev/todo/pkg/store"
	tuiapp "tableflip.dev/todo/pkg/tui/app"
	"tableflip.dev/todo/pkg/tui/theme"
)

// UI runs the interactive screen. The controller is loaded by the screen
// itself, so callers should not Init it first.
type UI struct {
	Settings   *store.Settings
	Controller *app.Controller
}

func (u *UI) Do(ctx context.Context) error {
	if u.Controller == nil || u.Controller.Persistence == nil {
		return errors.New("can not open ui, no controller")
	}
	if u.Settings == nil {
		u.Settings = &store.Settings{ClearInput: true}
	}

	// The alt screen owns stdout and stderr, so logs go to a file.
	closer, err := logging.Setup(u.Settings.LogLevel, u.Settings.LogPath())
	if err != nil {
		return err
	}
	defer closer.Close()

	log.Debug("opening ui", "location", u.Controller.Persistence.Location())

	th := theme.Detect()
	return tuiapp.Run(ctx, u.Controller, tuiapp.Options{
		ClearInput: u.Settings.ClearInput,
		Theme:      &th,
	})
}
