package teaui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/store"
	"tableflip.dev/todo/pkg/task"
)

const twoTasks = `[{"id":"a1","text":"Buy milk","completed":false},{"id":"b2","text":"Walk dog","completed":false}]`

var (
	keyEnter = tea.KeyPressMsg{Code: tea.KeyEnter}
	keyTab   = tea.KeyPressMsg{Code: tea.KeyTab}
	keyEsc   = tea.KeyPressMsg{Code: tea.KeyEscape}
	keySpace = tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
)

func keyRune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func newTestModel(t *testing.T, raw string, opts Options) (*Model, *store.Memory) {
	t.Helper()
	mem := store.NewMemory("")
	if raw != "" {
		mem.SetRaw([]byte(raw))
	}
	ctrl := app.New(mem)
	ctrl.Logger = log.New(io.Discard)
	m := New(ctrl, opts)
	t.Cleanup(m.stop)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	load(m)
	return m, mem
}

func load(m *Model) {
	m.Update(m.loadCmd()())
}

func stripANSI(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestAddAppendsOpenTask(t *testing.T) {
	m, mem := newTestModel(t, "", Options{ClearInput: true})

	m.input.SetValue("Buy milk")
	m.Update(keyEnter)

	tasks := m.ctrl.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Text != "Buy milk" || tasks[0].Completed {
		t.Fatalf("unexpected task %+v", tasks[0])
	}
	if got := m.input.Value(); got != "" {
		t.Fatalf("expected input cleared, got %q", got)
	}
	raw, _ := mem.Raw()
	if !strings.Contains(string(raw), `"text":"Buy milk"`) {
		t.Fatalf("expected task persisted, raw=%s", raw)
	}
	view := stripANSI(m.View())
	if !strings.Contains(view, "[ ] Buy milk") {
		t.Fatalf("expected new task in view; view=%q", view)
	}
	if !strings.Contains(view, "1 open · 0 done") {
		t.Fatalf("expected header count; view=%q", view)
	}
}

func TestAddKeepsInputWhenClearDisabled(t *testing.T) {
	m, _ := newTestModel(t, "", Options{ClearInput: false})

	m.input.SetValue("Buy milk")
	m.Update(keyEnter)

	if m.ctrl.Len() != 1 {
		t.Fatalf("expected task added")
	}
	if got := m.input.Value(); got != "Buy milk" {
		t.Fatalf("expected input kept, got %q", got)
	}
}

func TestAddIgnoresBlankInput(t *testing.T) {
	m, mem := newTestModel(t, "", Options{ClearInput: true})

	m.input.SetValue("   ")
	m.Update(keyEnter)

	if m.ctrl.Len() != 0 {
		t.Fatalf("expected blank input ignored, got %d tasks", m.ctrl.Len())
	}
	if _, ok := mem.Raw(); ok {
		t.Fatal("expected nothing written")
	}
}

func TestAddBeforeLoadIsIgnored(t *testing.T) {
	mem := store.NewMemory("")
	mem.SetRaw([]byte(twoTasks))
	m := New(app.New(mem), Options{ClearInput: true})
	defer m.stop()

	m.input.SetValue("Too early")
	m.Update(keyEnter)

	if m.ctrl.Len() != 0 {
		t.Fatalf("expected add ignored before load")
	}
	if !strings.Contains(stripANSI(m.View()), "Still loading") {
		t.Fatalf("expected loading status; view=%q", stripANSI(m.View()))
	}

	load(m)
	if m.ctrl.Len() != 2 {
		t.Fatalf("expected stored tasks after load, got %d", m.ctrl.Len())
	}
}

func TestToggleFromList(t *testing.T) {
	m, mem := newTestModel(t, twoTasks, Options{})

	m.Update(keyTab)
	if m.focus != focusList {
		t.Fatalf("expected list focus")
	}
	m.Update(keyRune('j'))
	m.Update(keySpace)

	got, _ := m.ctrl.Get("b2")
	if !got.Completed {
		t.Fatal("expected second task completed")
	}
	view := stripANSI(m.View())
	if !strings.Contains(view, "[x] Walk dog") {
		t.Fatalf("expected completed mark; view=%q", view)
	}
	if !strings.Contains(view, "1 open · 1 done") {
		t.Fatalf("expected header count; view=%q", view)
	}

	m.Update(keyRune('x'))
	got, _ = m.ctrl.Get("b2")
	if got.Completed {
		t.Fatal("expected second toggle to reopen")
	}
	raw, _ := mem.Raw()
	if strings.Contains(string(raw), `"completed":true`) {
		t.Fatalf("expected reopened task persisted, raw=%s", raw)
	}
}

func TestDeleteFromList(t *testing.T) {
	m, _ := newTestModel(t, twoTasks, Options{})

	m.Update(keyTab)
	m.Update(keyRune('d'))

	tasks := m.ctrl.Tasks()
	if len(tasks) != 1 || tasks[0].ID != "b2" {
		t.Fatalf("expected only b2 left, got %v", tasks)
	}
	if m.cursor != 0 {
		t.Fatalf("expected cursor clamped, got %d", m.cursor)
	}

	m.Update(keyRune('d'))
	if m.ctrl.Len() != 0 {
		t.Fatalf("expected empty list")
	}
	if m.focus != focusInput {
		t.Fatal("expected focus back on input once the list is empty")
	}
	if !strings.Contains(stripANSI(m.View()), "Nothing to do") {
		t.Fatalf("expected empty placeholder")
	}
}

func TestEditPrefillsAndSaves(t *testing.T) {
	m, _ := newTestModel(t, twoTasks, Options{})

	m.Update(keyTab)
	m.Update(keyRune('j'))
	m.Update(keyRune('e'))

	if m.mode != modeEdit {
		t.Fatal("expected edit mode")
	}
	if got := m.editInput.Value(); got != "Walk dog" {
		t.Fatalf("expected prompt prefilled, got %q", got)
	}
	if !strings.Contains(stripANSI(m.View()), "Edit:") {
		t.Fatalf("expected edit prompt in footer")
	}

	m.editInput.SetValue("Walk cat")
	m.Update(keyEnter)

	if m.mode != modeNormal {
		t.Fatal("expected edit mode closed")
	}
	got, _ := m.ctrl.Get("b2")
	if got.Text != "Walk cat" {
		t.Fatalf("expected text updated, got %q", got.Text)
	}
}

func TestEditIgnoresEmptyAndEsc(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		submit tea.KeyPressMsg
	}{
		{name: "empty submit", value: "", submit: keyEnter},
		{name: "blank submit", value: "  ", submit: keyEnter},
		{name: "escape", value: "changed", submit: keyEsc},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, _ := newTestModel(t, twoTasks, Options{})
			m.Update(keyTab)
			m.Update(keyRune('e'))
			m.editInput.SetValue(tc.value)
			m.Update(tc.submit)

			if m.mode != modeNormal {
				t.Fatal("expected edit mode closed")
			}
			got, _ := m.ctrl.Get("a1")
			if got.Text != "Buy milk" {
				t.Fatalf("expected text unchanged, got %q", got.Text)
			}
		})
	}
}

func TestMalformedLoadShowsEmptyList(t *testing.T) {
	m, _ := newTestModel(t, `{"not":"a list"}`, Options{})

	if m.ctrl.Len() != 0 {
		t.Fatalf("expected empty list")
	}
	if !errors.Is(m.ctrl.LastError(), store.ErrMalformed) {
		t.Fatalf("expected malformed error recorded, got %v", m.ctrl.LastError())
	}
	if !strings.Contains(stripANSI(m.View()), "Nothing to do") {
		t.Fatalf("expected empty placeholder")
	}
}

type failingSave struct {
	*store.Memory
}

func (f failingSave) Save(context.Context, task.List) error {
	return errors.New("disk full")
}

func TestSaveFailureKeepsTaskAndHints(t *testing.T) {
	ctrl := app.New(failingSave{Memory: store.NewMemory("")})
	ctrl.Logger = log.New(io.Discard)
	m := New(ctrl, Options{ClearInput: true})
	defer m.stop()
	load(m)

	m.input.SetValue("Buy milk")
	m.Update(keyEnter)

	if m.ctrl.Len() != 1 {
		t.Fatalf("expected optimistic add")
	}
	if !strings.Contains(stripANSI(m.View()), "not saved") {
		t.Fatalf("expected save hint; view=%q", stripANSI(m.View()))
	}
}

func TestWatchEventsReload(t *testing.T) {
	m, mem := newTestModel(t, twoTasks, Options{})

	ch := make(chan store.Event, 1)
	m.Update(watchStartedMsg{ch: ch, cancel: func() {}})
	if m.watchCh == nil {
		t.Fatal("expected watch channel installed")
	}

	mem.SetRaw([]byte(`[{"id":"c3","text":"Call mom","completed":true}]`))
	ch <- store.Event{Type: store.EventChanged, Key: store.DefaultKey}
	if _, ok := m.waitForWatch()().(watchEventMsg); !ok {
		t.Fatal("expected watch event")
	}
	load(m)
	if !strings.Contains(stripANSI(m.View()), "[x] Call mom") {
		t.Fatalf("expected reloaded list; view=%q", stripANSI(m.View()))
	}

	close(ch)
	msg := m.waitForWatch()()
	if _, ok := msg.(watchStoppedMsg); !ok {
		t.Fatalf("expected stop message, got %T", msg)
	}
	m.Update(msg)
	if m.watchCh != nil {
		t.Fatal("expected watch cleared")
	}
}

func TestStaleReloadDoesNotDropLocalAdds(t *testing.T) {
	m, mem := newTestModel(t, "", Options{ClearInput: true})

	add := func(text string) {
		m.input.SetValue(text)
		m.Update(keyEnter)
	}

	add("A")
	stale := m.loadCmd()()
	add("B")
	m.Update(stale)
	add("C")

	stored, err := mem.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var got []string
	for _, tk := range stored {
		got = append(got, tk.Text)
	}
	if strings.Join(got, ",") != "A,B,C" {
		t.Fatalf("expected A,B,C stored, got %v", got)
	}

	// A reload started after the last save still applies.
	mem.SetRaw([]byte(`[{"id":"c3","text":"Call mom","completed":false}]`))
	load(m)
	if m.ctrl.Len() != 1 {
		t.Fatalf("expected fresh reload applied, got %d tasks", m.ctrl.Len())
	}
}

func TestUnsupportedWatchIsQuiet(t *testing.T) {
	m, _ := newTestModel(t, "", Options{})

	msg := startWatchCmd(m.ctx, m.ctrl)()
	started, ok := msg.(watchStartedMsg)
	if !ok || !errors.Is(started.err, store.ErrWatchUnsupported) {
		t.Fatalf("expected unsupported watch, got %#v", msg)
	}
	m.Update(started)
	if m.watchCh != nil || m.status != "" {
		t.Fatal("expected no watch and no status")
	}
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t, twoTasks, Options{})

	m.Update(keyRune('q'))
	if m.input.Value() != "q" {
		t.Fatalf("expected q in input, got %q", m.input.Value())
	}

	m.Update(keyTab)
	_, cmd := m.Update(keyRune('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected quit message")
	}

	_, cmd = m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected ctrl+c to quit")
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t, twoTasks, Options{})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 60})

	m.Update(keyTab)
	m.Update(keyRune('?'))
	if !m.showHelp {
		t.Fatal("expected help shown")
	}
	view := stripANSI(m.View())
	if !strings.Contains(view, "toggle completed") || strings.Contains(view, "[ ] Buy milk") {
		t.Fatalf("expected help in place of the list; view=%q", view)
	}

	m.Update(keyRune('d'))
	if m.ctrl.Len() != 2 {
		t.Fatal("expected list keys ignored while help is open")
	}

	m.Update(keyEsc)
	if m.showHelp {
		t.Fatal("expected help closed")
	}
	if !strings.Contains(stripANSI(m.View()), "[ ] Buy milk") {
		t.Fatal("expected list back")
	}
}
