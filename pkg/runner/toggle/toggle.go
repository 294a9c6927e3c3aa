// Package toggle provides the runner logic for flipping task completion.
package toggle

import (
	"context"
	"errors"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/printers"
)

// Toggle marks an open task done, or a done task open again.
type Toggle struct {
	Ref        string
	ShowID     bool
	Output     *options.OutputOptions
	Controller *app.Controller
}

// Do executes the toggle for the configured task reference.
func (n *Toggle) Do(ctx context.Context) error {
	if n.Controller == nil {
		return errors.New("can not toggle, no controller")
	}

	id, err := n.Controller.Resolve(n.Ref)
	if err != nil {
		return err
	}
	t, _ := n.Controller.ToggleComplete(ctx, id)
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
