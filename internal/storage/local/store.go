// Package local implements the on-disk upload store. The directory
// contents are the file registry: enumeration reads the directory on
// demand rather than keeping a cache.
package local

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dtroode/fileshare-server/internal/model"
)

// Store persists uploads under a single root directory. Same-name saves
// overwrite (last-write-wins); names are reduced to their base element so
// a client-supplied name cannot escape the root.
type Store struct {
	root string
}

// New creates the root directory if needed and returns the store.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Store{root: root}, nil
}

// Sanitize reduces a client-supplied filename to a safe base name.
// An empty result means the name is unusable.
func Sanitize(filename string) string {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return ""
	}
	return name
}

// Save writes the content to a temp file in the root and renames it into
// place, so a partially written file is never observable in the registry.
func (s *Store) Save(filename string, r io.Reader) (string, error) {
	name := Sanitize(filename)
	if name == "" {
		return "", fmt.Errorf("unusable filename %q", filename)
	}

	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	path := filepath.Join(s.root, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to finalize upload: %w", err)
	}

	return path, nil
}

// List returns the registered filenames, sorted for a stable order within
// one call. In-flight temp files are not part of the registry.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".upload-") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	return names, nil
}

// Open returns the file content, or model.ErrNotFound when the name was
// never registered.
func (s *Store) Open(filename string) (io.ReadCloser, error) {
	name := Sanitize(filename)
	if name == "" {
		return nil, model.ErrNotFound
	}

	f, err := os.Open(filepath.Join(s.root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return f, nil
}
