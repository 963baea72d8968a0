package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"redress/pkg/types"
)

// LocalStorage writes attachment bytes under a single uploads
// directory on local disk.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}

	return &LocalStorage{dir: dir}, nil
}

var _ Storage = (*LocalStorage)(nil)

func (s *LocalStorage) Save(_ context.Context, key string, contents io.Reader, _ string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file %s: %w", path, err)
	}

	if _, err := io.Copy(f, contents); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write file %s: %w", path, err)
	}

	return f.Close()
}

func (s *LocalStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, types.ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("open file %s: %w", path, err)
	}

	return f, nil
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return types.ErrAttachmentNotFound
		}
		return fmt.Errorf("remove file %s: %w", path, err)
	}

	return nil
}

// path rejects keys that would escape the uploads directory.
func (s *LocalStorage) path(key string) (string, error) {
	if key == "" || strings.Contains(key, "/") || strings.Contains(key, "\\") || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, key), nil
}
