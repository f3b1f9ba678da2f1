package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage ghi file xuống disk, được serve tĩnh tại /uploads
type LocalStorage struct {
	dir     string
	baseURL string
}

var _ ObjectStore = (*LocalStorage)(nil)

// PublicPrefix là route serve file local
const PublicPrefix = "/uploads"

func NewLocalStorage(dir, baseURL string) *LocalStorage {
	return &LocalStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStorage) Name() string { return ProviderLocal }

// Dir là thư mục gốc, router dùng để mount static
func (s *LocalStorage) Dir() string { return s.dir }

func (s *LocalStorage) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	clean := filepath.Clean("/" + key)[1:]
	if clean == "" {
		return "", fmt.Errorf("invalid object key %q", key)
	}

	target := filepath.Join(s.dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return s.baseURL + PublicPrefix + "/" + filepath.ToSlash(clean), nil
}
