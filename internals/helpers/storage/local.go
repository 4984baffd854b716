package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// LocalStore menyimpan file di bawah Root; public/ disajikan di MountPath.
type LocalStore struct {
	Root      string
	MountPath string
}

func NewLocalStore(root, mount string) *LocalStore {
	return &LocalStore{Root: root, MountPath: strings.TrimRight(mount, "/")}
}

func (s *LocalStore) Kind() string { return "local" }

func (s *LocalStore) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", errors.New("empty key")
	}
	return filepath.Join(s.Root, clean), nil
}

func (s *LocalStore) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return errors.Wrap(err, "mkdir")
	}
	f, err := os.Create(p)
	if err != nil {
		return errors.Wrap(err, "create")
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(p)
		return errors.Wrap(err, "write")
	}
	return f.Close()
}

func (s *LocalStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return f, err
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *LocalStore) URL(key string) string {
	if key == "" || !strings.HasPrefix(key, PublicPrefix) {
		return ""
	}
	return s.MountPath + "/" + key
}
