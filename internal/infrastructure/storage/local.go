// Package storage provides the local-disk image store behind the /uploads
// static route.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/inkwell/blog-api/internal/core/ports"
)

// LocalImageStore writes uploaded images under a single directory. Stored
// names are randomized so concurrent uploads of the same filename never
// collide and client-supplied paths cannot escape the directory.
type LocalImageStore struct {
	dir string
}

// NewLocalImageStore creates dir if needed and returns a store rooted there.
func NewLocalImageStore(dir string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalImageStore{dir: dir}, nil
}

// Dir returns the root directory, for wiring the static file route.
func (s *LocalImageStore) Dir() string {
	return s.dir
}

// Save streams the upload to disk and returns the store-relative filename.
func (s *LocalImageStore) Save(upload ports.ImageUpload) (string, error) {
	name, err := randomName(upload.Filename)
	if err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, upload.Reader); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write image file: %w", err)
	}
	return name, nil
}

// Remove deletes a stored image. A name that resolves outside the store
// directory is rejected.
func (s *LocalImageStore) Remove(path string) error {
	if path != filepath.Base(path) {
		return fmt.Errorf("invalid image path %q", path)
	}
	if err := os.Remove(filepath.Join(s.dir, path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image file: %w", err)
	}
	return nil
}

// randomName keeps the original extension and replaces the rest with random
// hex, defeating both collisions and traversal attempts in the client name.
func randomName(original string) (string, error) {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate image name: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	return hex.EncodeToString(b) + ext, nil
}
