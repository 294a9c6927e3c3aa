// Package list provides the runner logic for printing the task list.
package list

import (
	"context"
	"errors"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/printers"
	"tableflip.dev/todo/pkg/task"
)

// List prints every task, optionally filtered by completion.
type List struct {
	ShowID     bool
	Open       bool
	Done       bool
	Output     *options.OutputOptions
	Controller *app.Controller
}

func (n *List) Do(ctx context.Context) error {
	if n.Controller == nil {
		return errors.New("can not list, no controller")
	}
	if err := n.Controller.LastError(); err != nil {
		return err
	}

	tasks := n.filter(n.Controller.Tasks())

	if n.Output != nil && n.Output.Structured() {
		return n.Output.Print(tasks)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.TitleWithCount("Todos", len(tasks))
	pp.Tasks(tasks...)
	return nil
}

func (n *List) filter(all task.List) task.List {
	if n.Open == n.Done {
		return all
	}
	out := make(task.List, 0, len(all))
	for _, t := range all {
		if t.Completed == n.Done {
			out = append(out, t)
		}
	}
	return out
}
