// Package app owns the in-memory task list and keeps it written through to
// persistence. CLIs and the terminal UI share this logic.
package app

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"tableflip.dev/todo/pkg/store"
	"tableflip.dev/todo/pkg/task"
)

var errNoPersistence = errors.New("app: no persistence configured")

// Controller holds the task list for the lifetime of a screen or command.
// Every mutation changes the in-memory list first and then saves the full
// list. Storage failures are logged and swallowed; the in-memory list stays
// as mutated.
type Controller struct {
	Persistence store.Persistence
	Logger      *log.Logger

	tasks   task.List
	lastErr error
	rev     uint64
}

// New returns a controller backed by p. Call Init before use.
func New(p store.Persistence) *Controller {
	return &Controller{Persistence: p, tasks: task.List{}}
}

// Init loads the persisted list into memory. On failure the list keeps
// whatever it held before, which is empty on first load.
func (c *Controller) Init(ctx context.Context) {
	tasks, err := c.Fetch(ctx)
	c.Restore(tasks, err)
}

// Fetch reads the persisted list without touching controller state, so it
// can run off the UI goroutine.
func (c *Controller) Fetch(ctx context.Context) (task.List, error) {
	if c.Persistence == nil {
		return nil, errNoPersistence
	}
	return c.Persistence.Load(ctx)
}

// Restore installs the result of Fetch.
func (c *Controller) Restore(tasks task.List, err error) {
	if err != nil {
		c.fail("load", err)
		if c.tasks == nil {
			c.tasks = task.List{}
		}
		return
	}
	c.lastErr = nil
	c.tasks = tasks.Clone()
}

// Revision counts local mutations. A Fetch started at one revision is stale
// once the revision has moved on, since it may predate a save.
func (c *Controller) Revision() uint64 {
	return c.rev
}

// Tasks returns a copy of the in-memory list.
func (c *Controller) Tasks() task.List {
	return c.tasks.Clone()
}

// Len is the number of tasks held.
func (c *Controller) Len() int {
	return len(c.tasks)
}

// Get returns a copy of the task with id.
func (c *Controller) Get(id string) (*task.Task, bool) {
	t := c.tasks.Find(id)
	if t == nil {
		return nil, false
	}
	return t.Clone(), true
}

// LastError is the most recent storage error that was swallowed, cleared by
// the next successful load or save.
func (c *Controller) LastError() error {
	return c.lastErr
}

// Add appends a new open task with text and persists the list.
func (c *Controller) Add(ctx context.Context, text string) *task.Task {
	t := task.New(text)
	c.tasks = append(c.tasks, t)
	c.persist(ctx)
	return t.Clone()
}

// Delete removes the task with id. Nothing is written when id is unknown.
func (c *Controller) Delete(ctx context.Context, id string) bool {
	if c.tasks.Index(id) < 0 {
		return false
	}
	c.tasks = c.tasks.Without(id)
	c.persist(ctx)
	return true
}

// ToggleComplete flips the completed flag of the task with id.
func (c *Controller) ToggleComplete(ctx context.Context, id string) (*task.Task, bool) {
	t := c.tasks.Find(id)
	if t == nil {
		return nil, false
	}
	t.Toggle()
	c.persist(ctx)
	return t.Clone(), true
}

// Edit replaces the text of the task with id. Empty text is ignored.
func (c *Controller) Edit(ctx context.Context, id, text string) (*task.Task, bool) {
	if text == "" {
		return nil, false
	}
	t := c.tasks.Find(id)
	if t == nil {
		return nil, false
	}
	t.Text = text
	c.persist(ctx)
	return t.Clone(), true
}

func (c *Controller) persist(ctx context.Context) {
	c.rev++
	if c.Persistence == nil {
		c.fail("save", errNoPersistence)
		return
	}
	if err := c.Persistence.Save(ctx, c.tasks); err != nil {
		c.fail("save", err)
		return
	}
	c.lastErr = nil
}

func (c *Controller) fail(op string, err error) {
	c.lastErr = err
	c.logger().Error("storage "+op+" failed", "op", op, "location", c.location(), "err", err)
}

func (c *Controller) location() string {
	if c.Persistence == nil {
		return ""
	}
	return c.Persistence.Location()
}

func (c *Controller) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}

// ErrNotFound is returned by Resolve when no task matches.
var ErrNotFound = errors.New("app: task not found")

// ErrAmbiguous is returned by Resolve when an id prefix matches several tasks.
var ErrAmbiguous = errors.New("app: ambiguous task reference")

// Resolve maps a full id, a unique id prefix, or a 1-based position to an id.
func (c *Controller) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrNotFound
	}
	if t := c.tasks.Find(ref); t != nil {
		return t.ID, nil
	}
	if n, ok := position(ref); ok && n >= 1 && n <= len(c.tasks) {
		return c.tasks[n-1].ID, nil
	}

	match := ""
	for _, t := range c.tasks {
		if strings.HasPrefix(t.ID, ref) {
			if match != "" {
				return "", ErrAmbiguous
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", ErrNotFound
	}
	return match, nil
}

// position parses short decimal refs. Longer digit strings, and positions
// past the end of the list, are left to id prefix matching since uuids can
// start with digits.
func position(ref string) (int, bool) {
	if len(ref) > 4 || strings.TrimLeft(ref, "0123456789") != "" {
		return 0, false
	}
	n, err := strconv.Atoi(ref)
	if err != nil {
		return 0, false
	}
	return n, true
}
