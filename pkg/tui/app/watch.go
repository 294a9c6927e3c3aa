package teaui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/store"
)

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

func startWatchCmd(parent context.Context, ctrl *app.Controller) tea.Cmd {
	if ctrl == nil || ctrl.Persistence == nil {
		return nil
	}
	p := ctrl.Persistence
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := p.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) handleWatchStarted(msg watchStartedMsg) tea.Cmd {
	if msg.err != nil {
		// Backends without change notification simply never refresh.
		if !errors.Is(msg.err, store.ErrWatchUnsupported) {
			log.Warn("watch failed", "location", m.ctrl.Persistence.Location(), "err", msg.err)
		}
		return nil
	}
	m.stopWatch()
	m.watchCh = msg.ch
	m.watchCancel = msg.cancel
	return m.waitForWatch()
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}
