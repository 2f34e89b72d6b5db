package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage stores blobs as flat files under a root directory.
type LocalStorage struct {
	root string
}

// NewLocalStorage resolves root to an absolute path. The directory itself is
// created lazily on the first Save so an unused backend never touches disk.
func NewLocalStorage(root string) (*LocalStorage, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root: %w", err)
	}
	return &LocalStorage{root: abs}, nil
}

func (s *LocalStorage) Save(ctx context.Context, key string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	err := os.MkdirAll(s.root, 0755)
	if err != nil {
		return "", fmt.Errorf("failed to create storage root: %w", err)
	}

	path := filepath.Join(s.root, key)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create blob: %w", err)
	}

	_, err = io.Copy(f, r)
	if err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write blob: %w", err)
	}

	err = f.Close()
	if err != nil {
		return "", fmt.Errorf("failed to close blob: %w", err)
	}

	return path, nil
}

func (s *LocalStorage) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(location)
	if os.IsNotExist(err) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}

	return f, nil
}
