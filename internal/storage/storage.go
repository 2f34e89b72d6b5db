package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/stashbin/stashbin/internal/config"
)

var ErrBlobNotFound = errors.New("blob not found")

// Storage defines the interface for content blob operations.
// Blobs are write-once: they are saved under a generated key and read back
// by the location returned from Save.
type Storage interface {
	// Save stores the blob under key and returns the location to persist
	// on the file record (an absolute path for local storage, an object
	// key for S3).
	Save(ctx context.Context, key string, r io.Reader) (string, error)

	// Open returns a reader for a previously saved blob.
	// Returns ErrBlobNotFound if the blob is absent.
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

// New creates the storage backend selected by config.
func New(c *config.Config) (Storage, error) {
	switch c.StorageDriver {
	case "local", "":
		return NewLocalStorage(c.FolderPath)
	case "s3":
		return NewS3Storage(S3Config{
			Region:    c.S3Region,
			Bucket:    c.S3Bucket,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
			Endpoint:  c.S3Endpoint,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
}
