// Package mcp exposes the task list over the Model Context Protocol.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/task"
)

// Filters accepted by ListTasks.
const (
	FilterAll  = "all"
	FilterOpen = "open"
	FilterDone = "done"
)

// Service serializes MCP requests onto one controller. Every call reloads
// the stored list first, so changes made by the CLI or the terminal UI in
// the meantime are seen.
type Service struct {
	mu   sync.Mutex
	ctrl *app.Controller
}

// TaskDTO is a transport-friendly projection of a task.
type TaskDTO struct {
	Position  int    `json:"position"`
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Summary describes the list as a whole.
type Summary struct {
	Location  string `json:"location"`
	Total     int    `json:"total"`
	Open      int    `json:"open"`
	Completed int    `json:"completed"`
}

// NewService wraps ctrl.
func NewService(ctrl *app.Controller) *Service {
	return &Service{ctrl: ctrl}
}

// reload must be called with s.mu held.
func (s *Service) reload(ctx context.Context) error {
	if s.ctrl == nil || s.ctrl.Persistence == nil {
		return errors.New("persistence is not configured")
	}
	s.ctrl.Init(ctx)
	return s.ctrl.LastError()
}

// Summary reports counts and the store location.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reload(ctx); err != nil {
		return nil, err
	}
	tasks := s.ctrl.Tasks()
	done := tasks.Completed()
	return &Summary{
		Location:  s.ctrl.Persistence.Location(),
		Total:     len(tasks),
		Open:      len(tasks) - done,
		Completed: done,
	}, nil
}

// ListTasks returns the tasks matching filter in list order.
func (s *Service) ListTasks(ctx context.Context, filter string) ([]TaskDTO, error) {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		filter = FilterAll
	}
	if filter != FilterAll && filter != FilterOpen && filter != FilterDone {
		return nil, fmt.Errorf("unknown filter %q", filter)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reload(ctx); err != nil {
		return nil, err
	}

	out := make([]TaskDTO, 0, s.ctrl.Len())
	for i, t := range s.ctrl.Tasks() {
		if filter == FilterOpen && t.Completed || filter == FilterDone && !t.Completed {
			continue
		}
		out = append(out, toDTO(i, t))
	}
	return out, nil
}

// TaskByRef fetches one task by position, id or id prefix.
func (s *Service) TaskByRef(ctx context.Context, ref string) (*TaskDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reload(ctx); err != nil {
		return nil, err
	}
	id, err := s.ctrl.Resolve(ref)
	if err != nil {
		return nil, err
	}
	return s.dto(id)
}

// AddTask appends a new open task.
func (s *Service) AddTask(ctx context.Context, text string) (*TaskDTO, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("text is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reload(ctx); err != nil {
		return nil, err
	}
	t := s.ctrl.Add(ctx, text)
	if err := s.ctrl.LastError(); err != nil {
		return nil, err
	}
	return s.dto(t.ID)
}

// ToggleTask flips completion of the referenced task.
func (s *Service) ToggleTask(ctx context.Context, ref string) (*TaskDTO, error) {
	return s.mutate(ctx, ref, func(id string) {
		s.ctrl.ToggleComplete(ctx, id)
	})
}

// EditTask replaces the text of the referenced task.
func (s *Service) EditTask(ctx context.Context, ref, text string) (*TaskDTO, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("text is required")
	}
	return s.mutate(ctx, ref, func(id string) {
		s.ctrl.Edit(ctx, id, text)
	})
}

// DeleteTask removes the referenced task and returns it as it was.
func (s *Service) DeleteTask(ctx context.Context, ref string) (*TaskDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reload(ctx); err != nil {
		return nil, err
	}
	id, err := s.ctrl.Resolve(ref)
	if err != nil {
		return nil, err
	}
	dto, err := s.dto(id)
	if err != nil {
		return nil, err
	}
	s.ctrl.Delete(ctx, id)
	if err := s.ctrl.LastError(); err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *Service) mutate(ctx context.Context, ref string, fn func(id string)) (*TaskDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reload(ctx); err != nil {
		return nil, err
	}
	id, err := s.ctrl.Resolve(ref)
	if err != nil {
		return nil, err
	}
	fn(id)
	if err := s.ctrl.LastError(); err != nil {
		return nil, err
	}
	return s.dto(id)
}

func (s *Service) dto(id string) (*TaskDTO, error) {
	tasks := s.ctrl.Tasks()
	i := tasks.Index(id)
	if i < 0 {
		return nil, app.ErrNotFound
	}
	dto := toDTO(i, tasks[i])
	return &dto, nil
}

func toDTO(i int, t *task.Task) TaskDTO {
	return TaskDTO{
		Position:  i + 1,
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
	}
}
