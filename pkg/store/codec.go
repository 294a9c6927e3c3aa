package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"tableflip.dev/todo/pkg/task"
)

// ErrMalformed reports a stored value that is not a task array.
var ErrMalformed = errors.New("store: malformed task list")

//go:embed todos.schema.json
var schemaSource string

var taskListSchema = jsonschema.MustCompileString("todos.schema.json", schemaSource)

// Encode serializes the whole list. A nil list encodes as an empty array.
func Encode(tasks task.List) ([]byte, error) {
	data, err := json.Marshal(tasks.Clone())
	if err != nil {
		return nil, fmt.Errorf("store: encode: %w", err)
	}
	return data, nil
}

// Decode parses a stored value. An empty value decodes to an empty list.
// Ids must be unique.
func Decode(data []byte) (task.List, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return task.List{}, nil
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := taskListSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var tasks task.List
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	seen := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrMalformed, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return tasks.Clone(), nil
}
