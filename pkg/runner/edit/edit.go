// Package edit provides the runner logic for changing task text.
package edit

import (
	"context"
	"errors"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/printers"
)

// Edit replaces the text of one task.
type Edit struct {
	Ref        string
	Text       string
	ShowID     bool
	Output     *options.OutputOptions
	Controller *app.Controller
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Controller == nil {
		return errors.New("can not edit, no controller")
	}
	if n.Text == "" {
		return errors.New("can not edit, empty text")
	}

	id, err := n.Controller.Resolve(n.Ref)
	if err != nil {
		return err
	}
	t, _ := n.Controller.Edit(ctx, id, n.Text)
	if err := n.Controller.LastError(); err != nil {
		return err
	}

	if n.Output != nil && n.Output.Structured() {
		return n.Output.Print(t)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.TitleWithCount("Todos", n.Controller.Len())
	pp.Tasks(n.Controller.Tasks()...)
	return nil
}
