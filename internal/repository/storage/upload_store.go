package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	cfg "github.com/leandrochavesf/gofinances/ledger-backend/internal/config"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/domain"
)

// UploadStore stages uploaded import files until they are consumed
type UploadStore interface {
	// Save stores data and returns the key that addresses it
	Save(ctx context.Context, filename string, data io.Reader) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the staged data. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// DiskUploadStore implements UploadStore on the local filesystem
type DiskUploadStore struct {
	dir string
}

// NewDiskUploadStore creates the staging directory if needed
func NewDiskUploadStore(dir string) (*DiskUploadStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskUploadStore{dir: dir}, nil
}

// Save writes data to a randomly named file inside the staging directory
func (s *DiskUploadStore) Save(ctx context.Context, filename string, data io.Reader) (string, error) {
	key := GenerateUploadKey(filename)

	f, err := os.OpenFile(filepath.Join(s.dir, key), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}

	if _, err := io.Copy(f, data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to close upload file: %w", err)
	}

	return key, nil
}

// Open opens a staged file for reading
func (s *DiskUploadStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrUploadNotFound
		}
		return nil, fmt.Errorf("failed to open upload file: %w", err)
	}
	return f, nil
}

// Delete removes a staged file
func (s *DiskUploadStore) Delete(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete upload file: %w", err)
	}
	return nil
}

// Dir returns the staging directory
func (s *DiskUploadStore) Dir() string {
	return s.dir
}

// path rejects keys that would escape the staging directory
func (s *DiskUploadStore) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid upload key %q", key)
	}
	return filepath.Join(s.dir, key), nil
}

// GenerateUploadKey creates a unique key that keeps the original file extension
func GenerateUploadKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\ `) {
		ext = ""
	}
	return uuid.New().String() + ext
}

// NewUploadStore builds the upload store selected by the configured driver
func NewUploadStore(ctx context.Context, c cfg.Config) (UploadStore, error) {
	switch c.Upload.Driver {
	case cfg.UploadDriverS3:
		return NewS3UploadStore(ctx, c.S3)
	case cfg.UploadDriverDisk, "":
		return NewDiskUploadStore(c.Upload.Dir)
	default:
		return nil, fmt.Errorf("unknown upload driver %q", c.Upload.Driver)
	}
}
