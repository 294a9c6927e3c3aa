package store

import (
	"context"
	"sync"

	"tableflip.dev/todo/pkg/task"
)

// Memory keeps the encoded list in process memory. It goes through the same
// codec as the on-disk backends.
type Memory struct {
	mu  sync.Mutex
	key string
	raw []byte
	set bool
}

// NewMemory returns an empty in-memory store for key.
func NewMemory(key string) *Memory {
	if key == "" {
		key = DefaultKey
	}
	return &Memory{key: key}
}

// SetRaw replaces the stored value verbatim.
func (m *Memory) SetRaw(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = append([]byte(nil), data...)
	m.set = true
}

// Raw returns the stored value and whether the key exists.
func (m *Memory) Raw() ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.raw...), m.set
}

func (m *Memory) Load(ctx context.Context) (task.List, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, ok := m.Raw()
	if !ok {
		return task.List{}, nil
	}
	return Decode(raw)
}

func (m *Memory) Save(ctx context.Context, tasks task.List) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(tasks)
	if err != nil {
		return err
	}
	m.SetRaw(data)
	return nil
}

func (m *Memory) Watch(_ context.Context) (<-chan Event, error) {
	return nil, ErrWatchUnsupported
}

func (m *Memory) Location() string {
	return "memory:" + m.key
}

func (m *Memory) Close() error {
	return nil
}
