package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{baseDir: baseDir}
}

// resolve keeps every path inside the disk directory. Uploaded filenames are
// attacker-controlled, so traversal must be rejected here and not upstream.
func (s *LocalStore) resolve(disk, path string) (string, error) {
	diskRoot := filepath.Join(s.baseDir, disk)
	full := filepath.Join(diskRoot, filepath.Clean("/"+path))
	if !strings.HasPrefix(full, diskRoot+string(os.PathSeparator)) {
		return "", fmt.Errorf("storage: path %q escapes disk %q", path, disk)
	}
	return full, nil
}

func (s *LocalStore) Write(ctx context.Context, disk, path string, data []byte) error {
	full, err := s.resolve(disk, path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}

func (s *LocalStore) Read(ctx context.Context, disk, path string) ([]byte, error) {
	full, err := s.resolve(disk, path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(full)
}
