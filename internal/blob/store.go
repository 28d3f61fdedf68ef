// Package blob stores uploaded résumé files on the local filesystem and
// hands out opaque ids for them.
package blob

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Store writes the bytes under a fresh id. The extension of the original
// filename is kept so the document converter can detect the format.
func (s *FileStore) Store(data []byte, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	id := uuid.New().String() + ext

	if err := os.WriteFile(filepath.Join(s.dir, id), data, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return id, nil
}

// Path resolves an id to the stored file, or an error if it does not exist.
func (s *FileStore) Path(id string) (string, error) {
	// ids are uuid-with-extension; reject anything that could escape the dir
	if id != filepath.Base(id) {
		return "", fmt.Errorf("invalid file id: %s", id)
	}
	p := filepath.Join(s.dir, id)
	if _, err := os.Stat(p); err != nil {
		return "", fmt.Errorf("file %s: %w", id, err)
	}
	return p, nil
}

// URL returns the path the HTTP layer serves the file under.
func (s *FileStore) URL(id string) (string, error) {
	if _, err := s.Path(id); err != nil {
		return "", err
	}
	return "/files/" + id, nil
}
