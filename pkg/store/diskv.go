package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/todo/pkg/task"
)

// Persistence defines the persistence contract for the task list. The whole
// list lives under a single key and is replaced on every save.
type Persistence interface {
	Load(ctx context.Context) (task.List, error)
	Save(ctx context.Context, tasks task.List) error
	Watch(ctx context.Context) (<-chan Event, error)
	Location() string
	Close() error
}

type backender interface {
	Backend() string
}

// Load creates a Persistence for the configured backend. A nil cfg reads the
// configuration from disk.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		s, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = s
	}

	key := cfg.Key()
	if err := validateKey(key); err != nil {
		return nil, err
	}

	backend := BackendDiskv
	if b, ok := cfg.(backender); ok {
		backend = b.Backend()
	}

	switch backend {
	case BackendDiskv:
		return newDiskv(cfg.BasePath(), key), nil
	case BackendRedis:
		s, ok := cfg.(*Settings)
		if !ok {
			return nil, errors.New("store: redis backend requires settings")
		}
		return newRedis(s.RedisAddr, s.RedisDB, key), nil
	case BackendMemory:
		return NewMemory(key), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", backend)
	}
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("store: key required")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("store: invalid key %q", key)
	}
	return nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	key      string
}

func newDiskv(basePath, key string) *persistence {
	return &persistence{
		d: diskv.New(diskv.Options{
			BasePath: basePath,
			// Writes land in TempDir first and are renamed into place.
			TempDir:      filepath.Join(basePath, tempDirName),
			CacheSizeMax: 0, // other processes may rewrite the key
		}),
		basePath: basePath,
		key:      key,
	}
}

const tempDirName = ".tmp"

func (p *persistence) Load(ctx context.Context) (task.List, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	val, err := p.d.Read(p.key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return task.List{}, nil
		}
		return nil, fmt.Errorf("store: read %s: %w", p.key, err)
	}
	return Decode(val)
}

func (p *persistence) Save(ctx context.Context, tasks task.List) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(tasks)
	if err != nil {
		return err
	}
	if err := p.d.Write(p.key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", p.key, err)
	}
	return nil
}

func (p *persistence) Location() string {
	return filepath.Join(p.basePath, p.key)
}

func (p *persistence) Close() error {
	return nil
}
