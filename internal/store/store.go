// Package store reads and writes the pending task file.
package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/tasklist/internal/utils"
)

// ErrCorrupt marks a store file whose content is not a JSON array of strings.
var ErrCorrupt = errors.New("corrupt store file")

//go:embed pending.schema.json
var pendingSchemaText string

const pendingSchemaURL = "tasklist://pending.schema.json"

var pendingSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(pendingSchemaURL, strings.NewReader(pendingSchemaText)); err != nil {
		return nil, fmt.Errorf("add pending schema: %w", err)
	}
	return compiler.Compile(pendingSchemaURL)
})

// CorruptError describes why a store file could not be decoded.
type CorruptError struct {
	Path string // JSON path of the offending value, empty for the root
	Err  error
}

func (e *CorruptError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", ErrCorrupt, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrCorrupt, e.Err)
}

// Unwrap returns the underlying error.
func (e *CorruptError) Unwrap() error {
	return e.Err
}

// Is matches ErrCorrupt.
func (e *CorruptError) Is(target error) bool {
	return target == ErrCorrupt
}

// Option configures a Store.
type Option func(*Store)

// RequireExisting makes Load fail when the file does not exist instead of
// returning an empty list.
func RequireExisting(require bool) Option {
	return func(s *Store) {
		s.requireExisting = require
	}
}

// Store persists the pending list as a JSON array of strings in one file.
type Store struct {
	path            string
	requireExisting bool
}

// New returns a store backed by the file at path.
func New(path string, opts ...Option) *Store {
	s := &Store{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the pending tasks. An empty file or a JSON null is an empty list.
func (s *Store) Load() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !s.requireExisting {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}
	return Decode(data)
}

// Decode parses store file content.
func Decode(data []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []string{}, nil
	}

	var doc interface{}
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, &CorruptError{Err: err}
	}

	schema, err := pendingSchema()
	if err != nil {
		return nil, fmt.Errorf("compile pending schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, schemaError(err)
	}

	items := []string{}
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, &CorruptError{Err: err}
	}
	return items, nil
}

// Save replaces the file with items. The data is written to a temporary file
// in the same directory and renamed into place.
func (s *Store) Save(items []string) error {
	data, err := Encode(items)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmpPath != "" {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write store file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close store file: %w", err)
	}
	if err := os.Chmod(tmpPath, s.fileMode()); err != nil {
		return fmt.Errorf("chmod store file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	tmpPath = ""
	return nil
}

// fileMode keeps the permissions of an existing store file. New files get
// 0644.
func (s *Store) fileMode() fs.FileMode {
	if info, err := os.Stat(s.path); err == nil {
		return info.Mode().Perm()
	}
	return 0644
}

// Encode renders items as a compact JSON array with a trailing newline.
func Encode(items []string) ([]byte, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal store file: %w", err)
	}
	return append(data, '\n'), nil
}

// schemaError reduces a schema validation failure to its first leaf cause.
func schemaError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &CorruptError{Err: err}
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &CorruptError{
		Path: utils.JSONPointerToPath(ve.InstanceLocation),
		Err:  errors.New(ve.Message),
	}
}
