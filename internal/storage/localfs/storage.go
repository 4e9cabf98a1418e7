package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"claimdesk/internal/port"
)

// Storage is a local-directory ObjectStorage for development and single-node
// deployments. Keys map to paths under the base directory; the bucket name is
// ignored.
type Storage struct {
	baseDir string
}

// NewStorage creates the base directory if needed and returns a Storage.
func NewStorage(baseDir string) (*Storage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir %s: %w", baseDir, err)
	}
	return &Storage{baseDir: baseDir}, nil
}

func (s *Storage) Upload(_ context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	path := filepath.Join(s.baseDir, filepath.FromSlash(input.Key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating dir for %s: %w", input.Key, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, input.Body); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	return &port.UploadOutput{Location: path}, nil
}

func (s *Storage) Delete(_ context.Context, _ string, key string) error {
	path := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}
