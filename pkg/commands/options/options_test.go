package options

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/todo/pkg/task"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := color.Output
	color.Output = &buf
	t.Cleanup(func() { color.Output = prev })
	return &buf
}

func TestSetText(t *testing.T) {
	o := &AddOptions{}
	if err := o.SetText([]string{"Buy", "milk"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Text != "Buy milk" {
		t.Fatalf("unexpected text %q", o.Text)
	}
	if err := o.SetText([]string{"  "}); err == nil {
		t.Fatalf("expected error for blank text")
	}
}

func TestHandleErrorJSON(t *testing.T) {
	buf := captureOutput(t)
	o := &OutputOptions{JSON: true}

	if err := o.HandleError(errors.New("boom")); err != nil {
		t.Fatalf("expected error to be rendered, got %v", err)
	}
	if strings.TrimSpace(buf.String()) != `{"error":"boom"}` {
		t.Fatalf("unexpected output %q", buf.String())
	}

	plain := &OutputOptions{}
	if err := plain.HandleError(errors.New("boom")); err == nil {
		t.Fatalf("expected error to pass through")
	}
}

func TestPrintYAML(t *testing.T) {
	buf := captureOutput(t)
	o := &OutputOptions{YAML: true}

	if err := o.Print(task.List{{ID: "a", Text: "Buy milk"}}); err != nil {
		t.Fatalf("print: %v", err)
	}
	for _, want := range []string{"- id: a", "text: Buy milk", "completed: false"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("expected %q in %q", want, buf.String())
		}
	}
}

func TestPrintJSON(t *testing.T) {
	buf := captureOutput(t)
	o := &OutputOptions{JSON: true}

	if err := o.Print(task.List{{ID: "a", Text: "Buy milk", Completed: true}}); err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.Contains(buf.String(), `"completed": true`) {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
