package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inkwell/blog-api/internal/core/ports"
)

func TestLocalImageStore_SaveAndRemove(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalImageStore returned error: %v", err)
	}

	name, err := store.Save(ports.ImageUpload{Filename: "photo.PNG", Reader: strings.NewReader("png-bytes")})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Fatalf("extension not preserved: %s", name)
	}
	if strings.Contains(name, "photo") {
		t.Fatalf("client filename must not be reused: %s", name)
	}

	data, err := os.ReadFile(filepath.Join(store.Dir(), name))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("stored content mismatch: %q", data)
	}

	if err := store.Remove(name); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.Dir(), name)); !os.IsNotExist(err) {
		t.Fatalf("file still present after Remove")
	}
}

func TestLocalImageStore_NamesAreUnique(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalImageStore returned error: %v", err)
	}

	first, err := store.Save(ports.ImageUpload{Filename: "same.jpg", Reader: strings.NewReader("a")})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	second, err := store.Save(ports.ImageUpload{Filename: "same.jpg", Reader: strings.NewReader("b")})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if first == second {
		t.Fatalf("two uploads of the same filename must not collide")
	}
}

func TestLocalImageStore_SaveStripsClientPath(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalImageStore returned error: %v", err)
	}

	name, err := store.Save(ports.ImageUpload{Filename: "../../etc/passwd", Reader: strings.NewReader("x")})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if strings.Contains(name, "/") || strings.Contains(name, "..") {
		t.Fatalf("stored name contains path elements: %s", name)
	}
}

func TestLocalImageStore_RemoveRejectsPaths(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalImageStore returned error: %v", err)
	}

	if err := store.Remove("../outside.png"); err == nil {
		t.Fatalf("Remove must reject names with path elements")
	}
	// Removing a name that was never stored is not an error.
	if err := store.Remove("missing.png"); err != nil {
		t.Fatalf("Remove of missing file should be a no-op: %v", err)
	}
}
