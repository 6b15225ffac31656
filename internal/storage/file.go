package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileStorage implements Storage by writing the document to a single file.
// Paths ending in .yaml or .yml are written as YAML, anything else as
// indented JSON.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

// NewFileStorage creates a file storage, creating the parent directories
func NewFileStorage(path string) (*FileStorage, error) {
	if path == "" {
		return nil, fmt.Errorf("output path is empty")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return &FileStorage{path: path}, nil
}

// Path returns the output file path
func (f *FileStorage) Path() string {
	return f.path
}

// IsYAML reports whether the document is written as YAML
func (f *FileStorage) IsYAML() bool {
	ext := strings.ToLower(filepath.Ext(f.path))
	return ext == ".yaml" || ext == ".yml"
}

// SaveSpec writes data to the output file
func (f *FileStorage) SaveSpec(data []byte) error {
	out, err := f.encode(data)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", f.path, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.WriteFile(f.path, out, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", f.path, err)
	}
	return nil
}

func (f *FileStorage) encode(data []byte) ([]byte, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if f.IsYAML() {
		return yaml.Marshal(doc)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Close closes the storage
func (f *FileStorage) Close() error {
	return nil
}
