package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/liushuo/teamboard/backend/internal/config"
)

// Storage abstracts the attachment blob store. Save returns the public URL
// of the stored blob and the key used to address it later.
type Storage interface {
	Save(fileName string, r io.Reader) (url, key string, err error)
	Remove(key string) error
}

// NewStorage builds the store named by the config. Only the local driver
// exists today.
func NewStorage(cfg *config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStorage(cfg.Root, cfg.BaseURL)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}

// LocalStorage keeps blobs on the local filesystem under root, addressed
// by a random key so uploaded names never collide or traverse paths.
type LocalStorage struct {
	root    string
	baseURL string
}

func NewLocalStorage(root, baseURL string) (*LocalStorage, error) {
	if root == "" {
		root = "uploads"
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, err
	}
	return &LocalStorage{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (s *LocalStorage) Save(fileName string, r io.Reader) (string, string, error) {
	ext := filepath.Ext(fileName)
	key := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.root, key))
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", "", err
	}

	return s.baseURL + "/" + key, key, nil
}

func (s *LocalStorage) Remove(key string) error {
	// Keys are generated UUIDs; reject anything that looks like a path.
	if key == "" || strings.ContainsAny(key, "/\\") {
		return fmt.Errorf("invalid storage key: %s", key)
	}
	err := os.Remove(filepath.Join(s.root, key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Root exposes the storage directory so the server can mount it as a
// static route.
func (s *LocalStorage) Root() string {
	return s.root
}
