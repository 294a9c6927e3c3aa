package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/todo/pkg/task"
)

// PrettyPrint renders task lists for the terminal.
type PrettyPrint struct {
	ShowID bool
	Out    io.Writer
}

const idWidth = 36 // canonical uuid length

var (
	spacing = strings.Repeat(" ", idWidth+2)
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " task")
	default:
		_, _ = c.Fprintln(pp.out(), " tasks")
	}
}

// Tasks prints one line per task, numbered from 1 so the position can be
// used as a task reference.
func (pp *PrettyPrint) Tasks(tasks ...*task.Task) {
	if len(tasks) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(pp.out(), spacing)
		}
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	t := color.New()
	done := color.New(color.Faint, color.CrossedOut)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	n := color.New(color.Faint)

	for i, tk := range tasks {
		if pp.ShowID {
			_, _ = y.Fprint(pp.out(), tk.ID)
			pad := len(spacing) - len(tk.ID)
			if pad < 1 {
				pad = 1
			}
			_, _ = y.Fprint(pp.out(), strings.Repeat(" ", pad))
		}
		_, _ = n.Fprintf(pp.out(), "%2d. ", i+1)
		if tk.Completed {
			_, _ = t.Fprintf(pp.out(), "%s ", tk.Mark())
			_, _ = done.Fprintln(pp.out(), tk.Text)
			continue
		}
		_, _ = t.Fprintf(pp.out(), "%s %s\n", tk.Mark(), tk.Text)
	}
	_, _ = t.Fprintln(pp.out(), "")
}
