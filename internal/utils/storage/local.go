package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type Local struct {
	root    string
	urlBase string
}

func NewLocal(root, urlBase string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &Local{root: root, urlBase: strings.TrimRight(urlBase, "/")}, nil
}

func (l *Local) Root() string { return l.root }

func (l *Local) Save(_ context.Context, key string, data []byte, _ string) error {
	path, err := l.path(key)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (l *Local) Delete(_ context.Context, key string) error {
	path, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrObjectNotFound
		}
		return err
	}
	return nil
}

func (l *Local) Size(_ context.Context, key string) (int64, error) {
	path, err := l.path(key)
	if err != nil {
		return 0, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, ErrObjectNotFound
		}
		return 0, err
	}
	if !info.Mode().IsRegular() {
		return 0, ErrObjectNotFound
	}
	return info.Size(), nil
}

func (l *Local) URL(key string) string {
	return l.urlBase + "/" + key
}

// path keeps keys inside the media root.
func (l *Local) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(l.root, clean), nil
}
