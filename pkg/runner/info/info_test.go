package info

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/store"
)

func TestInfo(t *testing.T) {
	prevNoColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prevNoColor }()

	ctx := context.Background()
	settings := &store.Settings{Path: t.TempDir()}
	p, err := store.Load(settings)
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	c := app.New(p)
	c.Init(ctx)
	done := c.Add(ctx, "Buy milk")
	c.Add(ctx, "Walk dog")
	c.ToggleComplete(ctx, done.ID)

	var buf bytes.Buffer
	i := Info{Settings: settings, Controller: c, Out: &buf}
	if err := i.Do(ctx); err != nil {
		t.Fatalf("info: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Backend", "diskv", "Key", "todos", p.Location(), "Tasks", "2", "Completed", "1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output %q", want, out)
		}
	}
}
