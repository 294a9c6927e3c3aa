// Package info reports where tasks are stored.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/store"
)

type Info struct {
	Settings   *store.Settings
	Controller *app.Controller
	Out        io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if n.Settings == nil {
		var err error
		n.Settings, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	if n.Controller == nil || n.Controller.Persistence == nil {
		return fmt.Errorf("failed to create persistence object")
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "

	configFile := n.Settings.ConfigFile
	if configFile == "" {
		configFile = "(none)"
	}
	configPath := os.Getenv("TODO_CONFIG_PATH")
	if configPath == "" {
		configPath = "(not set)"
	}

	tbl.AddRow(bold.Sprint("Config file"), configFile)
	tbl.AddRow(bold.Sprint("TODO_CONFIG_PATH"), configPath)
	tbl.AddRow(bold.Sprint("Backend"), n.Settings.Backend())
	tbl.AddRow(bold.Sprint("Key"), n.Settings.Key())
	tbl.AddRow(bold.Sprint("Location"), n.Controller.Persistence.Location())

	tasks := n.Controller.Tasks()
	tbl.AddRow(bold.Sprint("Tasks"), len(tasks))
	tbl.AddRow(bold.Sprint("Completed"), tasks.Completed())
	if err := n.Controller.LastError(); err != nil {
		tbl.AddRow(bold.Sprint("Last error"), err.Error())
	}

	_, err := fmt.Fprintln(out, tbl)
	return err
}
