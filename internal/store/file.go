package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/riordanpawley/workouttimer/internal/domain"
)

// File stores every key in a single JSON object on disk, the terminal
// analogue of browser local storage. Writes replace the file atomically.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile returns a file store at path. The file is created on first write.
func NewFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &domain.StoreError{Op: "open", Err: fmt.Errorf("create data directory: %w", err)}
	}
	return &File{path: path}, nil
}

// Path returns the backing file
func (f *File) Path() string {
	return f.path
}

func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return "", false, &domain.StoreError{Op: "get", Key: key, Err: err}
	}
	v, ok := data[key]
	return v, ok, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return &domain.StoreError{Op: "set", Key: key, Err: err}
	}
	data[key] = value
	if err := f.write(data); err != nil {
		return &domain.StoreError{Op: "set", Key: key, Err: err}
	}
	return nil
}

func (f *File) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return &domain.StoreError{Op: "remove", Key: key, Err: err}
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	if err := f.write(data); err != nil {
		return &domain.StoreError{Op: "remove", Key: key, Err: err}
	}
	return nil
}

func (f *File) Close() error {
	return nil
}

func (f *File) read() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("read data file: %w", err)
	}

	data := make(map[string]string)
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse data file: %w", err)
	}
	return data, nil
}

func (f *File) write(data map[string]string) error {
	serialized, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal data file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".workouttimer-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(serialized); err != nil {
		tmp.Close()
		return fmt.Errorf("write data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}
