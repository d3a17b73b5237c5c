package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/Veraticus/gxpassess/pkg/logger"
	"github.com/Veraticus/gxpassess/pkg/pathutil"
)

const tempPrefix = ".tmp-"

// FileKV stores one JSON file per key under a data directory. Writes go to a
// temporary file that is renamed into place, so readers never observe a
// partially written value.
type FileKV struct {
	logger logger.Logger
	dir    string
	mu     sync.RWMutex
}

// NewFileKV creates the data directory if needed and returns a FileKV over it.
func NewFileKV(dir string) (*FileKV, error) {
	return NewFileKVWithLogger(dir, logger.GetGlobalLogger())
}

// NewFileKVWithLogger is NewFileKV with a custom logger.
func NewFileKVWithLogger(dir string, log logger.Logger) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving data directory: %w", err)
	}
	return &FileKV{dir: abs, logger: log}, nil
}

// Dir returns the absolute data directory.
func (f *FileKV) Dir() string { return f.dir }

func (f *FileKV) path(key string) (string, error) {
	name, err := pathutil.KeyFileName(key)
	if err != nil {
		return "", err
	}
	return pathutil.JoinAndValidate(f.dir, name)
}

// Get implements KV.
func (f *FileKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	path, err := f.path(key)
	if err != nil {
		return nil, false, err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(path) // #nosec G304 - path is validated above
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, true, nil
}

// Put implements KV.
func (f *FileKV) Put(_ context.Context, key string, value []byte) (err error) {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(f.dir, tempPrefix+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("syncing %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}

	f.logger.Debug("Wrote value", "key", key, "path", path, "bytes", len(value))
	return nil
}

// Delete implements KV.
func (f *FileKV) Delete(_ context.Context, key string) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

// Keys implements KV.
func (f *FileKV) Keys(_ context.Context, prefix string) ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("reading data directory: %w", err)
	}

	var keys []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		key, ok := pathutil.KeyFromFileName(e.Name())
		if ok && strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close implements KV.
func (f *FileKV) Close() error { return nil }

// Watch reports every change to a stored key, including changes made by
// other processes sharing the directory, until ctx is cancelled.
func (f *FileKV) Watch(ctx context.Context, changed func(key string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(f.dir); err != nil {
		return fmt.Errorf("watching %s: %w", f.dir, err)
	}
	f.logger.Debug("Watching data directory", "dir", f.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Remove) {
				continue
			}
			if key, ok := pathutil.KeyFromFileName(filepath.Base(event.Name)); ok {
				changed(key)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			f.logger.Warn("Watcher error", "dir", f.dir, "error", err)
		}
	}
}
