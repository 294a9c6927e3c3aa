// Package task holds the to-do item type and list helpers.
package task

import (
	"fmt"

	"github.com/google/uuid"
)

// Task is a single to-do entry.
type Task struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// New returns an open task with a freshly generated id.
func New(text string) *Task {
	return &Task{
		ID:   uuid.NewString(),
		Text: text,
	}
}

// Toggle flips the completed flag.
func (t *Task) Toggle() {
	t.Completed = !t.Completed
}

// Clone returns a copy of the task.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

// Mark is the checkbox rendered in front of the task text.
func (t *Task) Mark() string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}

func (t *Task) String() string {
	return fmt.Sprintf("%s %s", t.Mark(), t.Text)
}

// List is an ordered set of tasks. Order is insertion order.
type List []*Task

// Index returns the position of the task with id, or -1.
func (l List) Index(id string) int {
	for i, t := range l {
		if t != nil && t.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the task with id, or nil.
func (l List) Find(id string) *Task {
	if i := l.Index(id); i >= 0 {
		return l[i]
	}
	return nil
}

// Without returns a new list with every task matching id filtered out.
func (l List) Without(id string) List {
	out := make(List, 0, len(l))
	for _, t := range l {
		if t != nil && t.ID == id {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Clone deep copies the list. The result is never nil.
func (l List) Clone() List {
	out := make(List, 0, len(l))
	for _, t := range l {
		if t == nil {
			continue
		}
		out = append(out, t.Clone())
	}
	return out
}

// Completed counts finished tasks.
func (l List) Completed() int {
	n := 0
	for _, t := range l {
		if t != nil && t.Completed {
			n++
		}
	}
	return n
}
