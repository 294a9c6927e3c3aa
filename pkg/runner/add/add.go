// Package add provides the runner logic for adding tasks.
package add

import (
	"context"
	"errors"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/printers"
)

// Add appends a task and prints the resulting list.
type Add struct {
	Text       string
	ShowID     bool
	Output     *options.OutputOptions
	Controller *app.Controller
}

// Do executes the add operation.
func (n *Add) Do(ctx context.Context) error {
	if n.Controller == nil {
		return errors.New("can not add, no controller")
	}

	t := n.Controller.Add(ctx, n.Text)
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
