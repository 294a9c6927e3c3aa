package teaui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/store"
	"tableflip.dev/todo/pkg/task"
	"tableflip.dev/todo/pkg/tui/components/help"
	"tableflip.dev/todo/pkg/tui/theme"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

type mode int

const (
	modeNormal mode = iota
	modeEdit
)

// Options tune the screen.
type Options struct {
	// ClearInput empties the text input after a task is added.
	ClearInput bool
	// Theme overrides the palette; nil uses the dark default.
	Theme *theme.Theme
}

// Model is the to-do screen: a text input with an add action above the list
// of tasks, each of which can be toggled, edited or deleted.
type Model struct {
	ctrl   *app.Controller
	ctx    context.Context
	cancel context.CancelFunc

	input     textinput.Model
	editInput textinput.Model
	focus     focusArea
	mode      mode
	editID    string
	cursor    int
	help      *help.Model
	showHelp  bool

	width      int
	height     int
	clearInput bool
	loaded     bool
	status     string
	statusErr  bool
	theme      theme.Theme

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// loadedMsg carries a Fetch result stamped with the controller revision it
// was started at.
type loadedMsg struct {
	tasks task.List
	err   error
	rev   uint64
}

// New creates the screen model backed by ctrl.
func New(ctrl *app.Controller, opts Options) *Model {
	if ctrl == nil {
		ctrl = app.New(nil)
	}

	ti := textinput.New()
	ti.Placeholder = "Type a todo"
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.Focus()

	ei := textinput.New()
	ei.CharLimit = 256
	ei.Prompt = ""

	th := theme.Default(true)
	if opts.Theme != nil {
		th = *opts.Theme
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Model{
		ctrl:       ctrl,
		ctx:        ctx,
		cancel:     cancel,
		input:      ti,
		editInput:  ei,
		focus:      focusInput,
		mode:       modeNormal,
		clearInput: opts.ClearInput,
		theme:      th,
	}
}

// Run launches the interactive TUI program and blocks until it exits or ctx
// is cancelled.
func Run(ctx context.Context, ctrl *app.Controller, opts Options) error {
	m := New(ctrl, opts)
	defer m.stop()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init loads the persisted list and starts watching for outside changes.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadCmd(),
		startWatchCmd(m.ctx, m.ctrl),
		m.input.Focus(),
	)
}

func (m *Model) loadCmd() tea.Cmd {
	ctrl, ctx, rev := m.ctrl, m.ctx, m.ctrl.Revision()
	return func() tea.Msg {
		tasks, err := ctrl.Fetch(ctx)
		return loadedMsg{tasks: tasks, err: err, rev: rev}
	}
}

func (m *Model) stop() {
	m.stopWatch()
	if m.cancel != nil {
		m.cancel()
	}
}

// Update handles Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applySizes()
	case loadedMsg:
		if msg.rev != m.ctrl.Revision() {
			// A local save landed after this fetch started; the save's own
			// watch event brings a fresh reload.
			break
		}
		m.ctrl.Restore(msg.tasks, msg.err)
		m.loaded = true
		m.clampCursor()
	case watchStartedMsg:
		if cmd := m.handleWatchStarted(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		cmds = append(cmds, m.loadCmd(), m.waitForWatch())
	case watchStoppedMsg:
		m.stopWatch()
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}

	if cmd := m.updateActiveInput(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// updateActiveInput forwards non-key messages such as cursor blinks.
func (m *Model) updateActiveInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.mode == modeEdit {
		m.editInput, cmd = m.editInput.Update(msg)
		return cmd
	}
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) applySizes() {
	if m.width == 0 {
		return
	}
	m.input.SetWidth(max(10, m.width-16))
	m.editInput.SetWidth(max(10, m.width-10))
	if m.help != nil {
		m.help.SetSize(m.width, m.helpHeight())
	}
}

// helpHeight leaves room for the header, input row and footer.
func (m *Model) helpHeight() int {
	if m.height == 0 {
		return 20
	}
	return m.height - 10
}

func (m *Model) selected() *task.Task {
	tasks := m.ctrl.Tasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return nil
	}
	return tasks[m.cursor]
}

func (m *Model) clampCursor() {
	n := m.ctrl.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

// View renders the header, input row, task list and footer.
func (m *Model) View() string {
	sections := []string{
		m.renderHeader(),
		m.renderInputRow(),
		m.renderBody(),
		m.renderFooter(),
	}
	return strings.Join(sections, "\n\n")
}

func (m *Model) renderHeader() string {
	th := m.theme.Header
	header := th.Title.Render("Todos")
	if !m.loaded {
		return header
	}
	tasks := m.ctrl.Tasks()
	done := tasks.Completed()
	return header + " " + th.Count.Render(fmt.Sprintf("%d open · %d done", len(tasks)-done, done))
}

func (m *Model) renderInputRow() string {
	th := m.theme.Input
	frame, button := th.Frame, th.Button
	if m.focus == focusInput && m.mode == modeNormal {
		frame, button = th.FrameFocused, th.ButtonFocused
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		frame.Render(m.input.View()),
		button.Render("Add"),
	)
}

func (m *Model) renderBody() string {
	if m.showHelp && m.help != nil {
		return m.help.View()
	}
	return m.renderList()
}

func (m *Model) renderList() string {
	th := m.theme.List
	if !m.loaded {
		return th.Empty.Render("Loading…")
	}
	tasks := m.ctrl.Tasks()
	if len(tasks) == 0 {
		return th.Empty.Render("Nothing to do. Add a todo above.")
	}

	wrapWidth := m.width - 8
	lines := make([]string, 0, len(tasks))
	for i, t := range tasks {
		isSelected := m.focus == focusList && i == m.cursor
		cursor := "  "
		if isSelected {
			cursor = th.Cursor.Render("→ ")
		}

		text := t.Text
		if wrapWidth > 10 {
			text = wordwrap.String(text, wrapWidth)
		}
		text = strings.ReplaceAll(text, "\n", "\n      ")

		style := th.Item
		switch {
		case t.Completed:
			style = th.Done
		case isSelected:
			style = th.Selected
		}
		lines = append(lines, cursor+t.Mark()+" "+style.Render(text))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	th := m.theme.Footer
	if m.mode == modeEdit {
		return th.Prompt.Render("Edit: ") + m.editInput.View() + "\n" +
			th.Help.Render("enter save · esc cancel")
	}

	hint := "enter add · tab list · ctrl+c quit"
	switch {
	case m.showHelp:
		hint = "j/k scroll · ? or esc close"
	case m.focus == focusList:
		hint = "space toggle · e edit · d delete · tab input · ? help · q quit"
	}
	footer := th.Help.Render(hint)
	if m.status != "" {
		style := th.Status
		if m.statusErr {
			style = th.Error
		}
		footer = style.Render(m.status) + "\n" + footer
	}
	return footer
}
