// Package file implements the store.Store interface backed by a single JSON
// file on local disk.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lfmartins/calendario/internal/model"
	"github.com/lfmartins/calendario/internal/store"
)

// FileStore persists the document as pretty-printed JSON at a fixed path.
// The file is read fresh on every Load and rewritten in full on every Save;
// there is no cache held across calls, the file is the sole source of truth.
type FileStore struct {
	path string
}

// Compile-time check that FileStore implements store.Store.
var _ store.Store = (*FileStore)(nil)

// New returns a FileStore at the given path. The file itself is not created
// until the first Save.
func New(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads and parses the backing file. A missing file yields the default
// empty document; a present but unparseable file is an error.
func (s *FileStore) Load(_ context.Context) (*model.Document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return model.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	doc.Normalize()
	return &doc, nil
}

// Save serializes the document with two-space indentation, keeping non-ASCII
// characters literal, and replaces the file via temp-file-and-rename so a
// crash mid-write never leaves a truncated document behind.
func (s *FileStore) Save(_ context.Context, doc *model.Document) error {
	doc.Normalize()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	if err := writeFileAtomic(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// writeFileAtomic writes data to a temp file in the target's directory and
// renames it over the target.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmp, err := os.CreateTemp(dir, ".calendario-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
