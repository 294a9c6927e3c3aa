package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/todo/pkg/store"
	"tableflip.dev/todo/pkg/task"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevNoColor := color.Output, color.NoColor
	color.Output = &buf
	color.NoColor = true
	defer func() {
		color.Output = prevOut
		color.NoColor = prevNoColor
	}()

	cmd := New()
	cmd.SetArgs(args)
	cmd.SetOut(&buf)
	cmd.SetErr(io.Discard)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func listJSON(t *testing.T, dir string) task.List {
	t.Helper()
	out, err := run(t, "list", "--json", "--path", dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var tasks task.List
	if err := json.Unmarshal([]byte(out), &tasks); err != nil {
		t.Fatalf("decode list output %q: %v", out, err)
	}
	return tasks
}

func TestLifecycle(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "add", "Buy", "milk", "--path", dir)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, "[ ] Buy milk") {
		t.Fatalf("expected new task printed, got %q", out)
	}
	if _, err := run(t, "add", "Walk dog", "--path", dir); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := run(t, "done", "1", "--path", dir); err != nil {
		t.Fatalf("done: %v", err)
	}

	tasks := listJSON(t, dir)
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if !tasks[0].Completed || tasks[1].Completed {
		t.Fatalf("unexpected completion flags: %v", tasks)
	}

	if _, err := run(t, "edit", tasks[1].ID[:8], "Walk", "cat", "--path", dir); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if _, err := run(t, "delete", "1", "--path", dir); err != nil {
		t.Fatalf("delete: %v", err)
	}

	out, err = run(t, "list", "--path", dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "[ ] Walk cat") || strings.Contains(out, "Buy milk") {
		t.Fatalf("unexpected list %q", out)
	}

	raw, err := os.ReadFile(filepath.Join(dir, store.DefaultKey))
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	if !strings.Contains(string(raw), `"text":"Walk cat"`) {
		t.Fatalf("unexpected stored value %s", raw)
	}
}

func TestListFilters(t *testing.T) {
	dir := t.TempDir()
	for _, text := range []string{"one", "two"} {
		if _, err := run(t, "add", text, "--path", dir); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if _, err := run(t, "done", "2", "--path", dir); err != nil {
		t.Fatalf("done: %v", err)
	}

	out, err := run(t, "list", "--open", "--path", dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "one") || strings.Contains(out, "two") {
		t.Fatalf("expected only open tasks, got %q", out)
	}

	if _, err := run(t, "list", "--open", "--done", "--path", dir); err == nil {
		t.Fatal("expected --open and --done to conflict")
	}
}

func TestMalformedStoreIsNotOverwritten(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, store.DefaultKey)
	if err := os.WriteFile(path, []byte(`{"oops":`), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := run(t, "list", "--path", dir); !errors.Is(err, store.ErrMalformed) {
		t.Fatalf("expected malformed error from list, got %v", err)
	}
	if _, err := run(t, "add", "Buy milk", "--path", dir); err == nil {
		t.Fatal("expected add to refuse")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	if string(raw) != `{"oops":` {
		t.Fatalf("expected malformed value kept, got %s", raw)
	}
}

func TestUnknownRef(t *testing.T) {
	dir := t.TempDir()

	if _, err := run(t, "done", "7", "--path", dir); err == nil {
		t.Fatal("expected unknown ref error")
	}

	out, err := run(t, "delete", "7", "--json", "--path", dir)
	if err != nil {
		t.Fatalf("expected json error to be printed, got %v", err)
	}
	if !strings.Contains(out, `"error"`) {
		t.Fatalf("expected error object, got %q", out)
	}
}

func TestAddRequiresText(t *testing.T) {
	if _, err := run(t, "add", " ", "--path", t.TempDir()); err == nil {
		t.Fatal("expected error for blank text")
	}
}

func TestEphemeralDoesNotWrite(t *testing.T) {
	dir := t.TempDir()

	if _, err := run(t, "add", "Buy milk", "--ephemeral", "--path", dir); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, store.DefaultKey)); !os.IsNotExist(err) {
		t.Fatalf("expected nothing on disk, got %v", err)
	}
}

func TestInfoAndVersion(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "info", "--path", dir)
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if !strings.Contains(out, "diskv") || !strings.Contains(out, filepath.Join(dir, store.DefaultKey)) {
		t.Fatalf("unexpected info %q", out)
	}

	out, err = run(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "dev") {
		t.Fatalf("unexpected version %q", out)
	}
}
