// Package storage implements the flat-file persistence primitive: a JSON array
// of records per entity type, read and rewritten as a whole on every access.
package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"todo-be/internal/apperror"
)

// Option configures a JSONStore
type Option func(*options) error

type options struct {
	schema *jsonschema.Schema
}

// WithSchema validates every record read from disk against the given JSON Schema
func WithSchema(name, schema string) Option {
	return func(o *options) error {
		compiled, err := jsonschema.CompileString(name, schema)
		if err != nil {
			return fmt.Errorf("failed to compile schema %s: %w", name, err)
		}
		o.schema = compiled
		return nil
	}
}

// JSONStore persists a slice of T as a JSON array in a single file.
//
// All access goes through one mutex, so read-modify-write cycles made with
// Update never interleave inside a process. Separate processes writing the
// same file can still overwrite each other's changes.
type JSONStore[T any] struct {
	path   string
	name   string
	schema *jsonschema.Schema
	mu     sync.Mutex
}

// NewJSONStore creates a store backed by path. name is used in error messages
// ("todos", "users"). The file is created lazily on first access.
func NewJSONStore[T any](path, name string, opts ...Option) (*JSONStore[T], error) {
	var o options
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}
	return &JSONStore[T]{path: path, name: name, schema: o.schema}, nil
}

// Path returns the backing file path
func (s *JSONStore[T]) Path() string {
	return s.path
}

// ReadAll returns every record in the file
func (s *JSONStore[T]) ReadAll() ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// WriteAll replaces the file contents with items
func (s *JSONStore[T]) WriteAll(items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(items)
}

// Update reads all records, passes them to fn and writes back what fn returns.
// If fn returns an error nothing is written and the error is returned as is.
func (s *JSONStore[T]) Update(fn func(items []T) ([]T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return err
	}
	updated, err := fn(items)
	if err != nil {
		return err
	}
	return s.write(updated)
}

// ensure creates the containing directory and an empty array file if missing
func (s *JSONStore[T]) ensure() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return apperror.Storage("failed to initialize storage", err)
	}
	if _, err := os.Stat(s.path); err != nil {
		if !os.IsNotExist(err) {
			return apperror.Storage("failed to initialize storage", err)
		}
		if err := os.WriteFile(s.path, []byte("[]"), 0o644); err != nil {
			return apperror.Storage("failed to initialize storage", err)
		}
	}
	return nil
}

func (s *JSONStore[T]) read() ([]T, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, apperror.Storage("failed to read "+s.name, err)
	}
	if !json.Valid(data) {
		return nil, apperror.Storage("invalid JSON in storage file", nil)
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, apperror.Storage("invalid data structure in storage", nil)
	}

	if s.schema != nil {
		var raw []any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, apperror.Storage("failed to read "+s.name, err)
		}
		for i, rec := range raw {
			if err := s.schema.Validate(rec); err != nil {
				return nil, apperror.Storage(fmt.Sprintf("invalid %s record at index %d", strings.TrimSuffix(s.name, "s"), i), err)
			}
		}
	}

	items := make([]T, 0)
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, apperror.Storage("failed to read "+s.name, err)
	}
	return items, nil
}

func (s *JSONStore[T]) write(items []T) error {
	if err := s.ensure(); err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return apperror.Storage("failed to write "+s.name, err)
	}

	// Write next to the target and rename so readers never see a partial array.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+"-*")
	if err != nil {
		return apperror.Storage("failed to write "+s.name, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperror.Storage("failed to write "+s.name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperror.Storage("failed to write "+s.name, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return apperror.Storage("failed to write "+s.name, err)
	}
	return nil
}
