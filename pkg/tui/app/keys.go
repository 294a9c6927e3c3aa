package teaui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/todo/pkg/tui/components/help"
)

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		m.stop()
		return tea.Quit
	}
	switch {
	case m.showHelp:
		return m.handleHelpKey(msg)
	case m.mode == modeEdit:
		return m.handleEditKey(msg)
	case m.focus == focusInput:
		return m.handleInputKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m *Model) handleInputKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.submitAdd()
		return nil
	case "tab", "down":
		if m.loaded && m.ctrl.Len() > 0 {
			m.focusList()
		}
		return nil
	case "esc":
		m.input.Reset()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) handleListKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		m.stop()
		return tea.Quit
	case "tab", "esc", "a", "i":
		return m.focusInput()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.ctrl.Len()-1 {
			m.cursor++
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = m.ctrl.Len() - 1
		m.clampCursor()
	case "space", " ", "x", "enter":
		m.toggleSelected()
	case "e":
		return m.beginEdit()
	case "?":
		m.openHelp()
	case "d", "delete":
		return m.deleteSelected()
	}
	return nil
}

func (m *Model) handleHelpKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "?", "esc", "q":
		m.showHelp = false
		return nil
	}
	var cmd tea.Cmd
	m.help, cmd = m.help.Update(msg)
	return cmd
}

func (m *Model) openHelp() {
	if m.help == nil {
		m.help = help.New(max(m.width, 32), m.helpHeight(), m.theme.Dark)
	}
	m.showHelp = true
}

func (m *Model) handleEditKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		text := strings.TrimSpace(m.editInput.Value())
		if _, ok := m.ctrl.Edit(m.ctx, m.editID, text); ok {
			m.reportSaved("Updated")
		}
		return m.endEdit()
	case "esc":
		return m.endEdit()
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return cmd
}

func (m *Model) focusInput() tea.Cmd {
	m.focus = focusInput
	return m.input.Focus()
}

func (m *Model) focusList() {
	m.focus = focusList
	m.input.Blur()
	m.clampCursor()
}

// submitAdd ignores blank input and anything typed before the first load
// completes, since the load would replace it.
func (m *Model) submitAdd() {
	if !m.loaded {
		m.setStatus("Still loading…")
		return
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return
	}
	t := m.ctrl.Add(m.ctx, text)
	if m.clearInput {
		m.input.Reset()
	}
	m.reportSaved(fmt.Sprintf("Added %q", t.Text))
}

func (m *Model) toggleSelected() {
	t := m.selected()
	if t == nil {
		return
	}
	if next, ok := m.ctrl.ToggleComplete(m.ctx, t.ID); ok {
		verb := "Reopened"
		if next.Completed {
			verb = "Completed"
		}
		m.reportSaved(fmt.Sprintf("%s %q", verb, next.Text))
	}
}

func (m *Model) deleteSelected() tea.Cmd {
	t := m.selected()
	if t == nil {
		return nil
	}
	if m.ctrl.Delete(m.ctx, t.ID) {
		m.reportSaved(fmt.Sprintf("Deleted %q", t.Text))
	}
	m.clampCursor()
	if m.ctrl.Len() == 0 {
		return m.focusInput()
	}
	return nil
}

func (m *Model) beginEdit() tea.Cmd {
	t := m.selected()
	if t == nil {
		return nil
	}
	m.mode = modeEdit
	m.editID = t.ID
	m.editInput.SetValue(t.Text)
	m.editInput.CursorEnd()
	return m.editInput.Focus()
}

func (m *Model) endEdit() tea.Cmd {
	m.mode = modeNormal
	m.editID = ""
	m.editInput.Blur()
	m.editInput.Reset()
	return nil
}

// reportSaved sets the status line after a mutation. Storage failures are
// already logged; the hint only says the change lives in memory.
func (m *Model) reportSaved(done string) {
	if m.ctrl.LastError() != nil {
		m.status = done + " (not saved, see log)"
		m.statusErr = true
		return
	}
	m.setStatus(done)
}
