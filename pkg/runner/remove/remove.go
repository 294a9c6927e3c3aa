// Package remove provides the runner logic for deleting tasks.
package remove

import (
	"context"
	"errors"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/printers"
)

// Remove deletes one task.
type Remove struct {
	Ref        string
	ShowID     bool
	Output     *options.OutputOptions
	Controller *app.Controller
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Controller == nil {
		return errors.New("can not delete, no controller")
	}

	id, err := n.Controller.Resolve(n.Ref)
	if err != nil {
		return err
	}
	n.Controller.Delete(ctx, id)
	if err := n.Controller.LastError(); err != nil {
		return err
	}

	if n.Output != nil && n.Output.Structured() {
		return n.Output.Print(map[string]string{"deleted": id})
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.TitleWithCount("Todos", n.Controller.Len())
	pp.Tasks(n.Controller.Tasks()...)
	return nil
}
