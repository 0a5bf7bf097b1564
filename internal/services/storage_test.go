package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/liushuo/teamboard/backend/internal/config"
)

func TestLocalStorage_SaveAndRemove(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStorage(root, "/uploads")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	url, key, err := store.Save("report.pdf", strings.NewReader("content"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(key, ".pdf") {
		t.Errorf("key = %q, expected .pdf extension preserved", key)
	}
	if url != "/uploads/"+key {
		t.Errorf("url = %q, expected /uploads/%s", url, key)
	}

	data, err := os.ReadFile(filepath.Join(root, key))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("stored content = %q, expected %q", data, "content")
	}

	if err := store.Remove(key); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, key)); !os.IsNotExist(err) {
		t.Error("blob should be gone after Remove")
	}

	// Removing an already-removed key is not an error.
	if err := store.Remove(key); err != nil {
		t.Errorf("second Remove: %v", err)
	}
}

func TestLocalStorage_KeysAreUnique(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	_, key1, err := store.Save("a.txt", strings.NewReader("one"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	_, key2, err := store.Save("a.txt", strings.NewReader("two"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if key1 == key2 {
		t.Error("same upload name must not produce the same key")
	}
}

func TestLocalStorage_RemoveRejectsPaths(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	for _, key := range []string{"", "../escape.txt", "a/b.txt", "a\\b.txt"} {
		if err := store.Remove(key); err == nil {
			t.Errorf("Remove(%q) should be rejected", key)
		}
	}
}

func TestNewStorage_UnknownDriver(t *testing.T) {
	_, err := NewStorage(&config.StorageConfig{Driver: "s3"})
	if err == nil {
		t.Error("unknown driver should be an error")
	}
}
