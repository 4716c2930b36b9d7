// Package prefs persists user preferences as a JSON object of strings.
package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/smartmate/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PreferenceStore = (*Store)(nil)

// Store implements ports.PreferenceStore on a single JSON file.
// Writes go to a temp file in the same directory and are renamed into place.
type Store struct {
	fs     afero.Fs
	path   string
	logger ports.Logger

	mu     sync.RWMutex
	values map[string]string
}

// Open loads the preferences at path. A missing file is an empty store.
// A corrupt file is reported and replaced on the next Set.
func Open(fs afero.Fs, path string, logger ports.Logger) (*Store, error) {
	s := &Store{
		fs:     fs,
		path:   filepath.Clean(path),
		logger: logger,
	}

	values, err := s.read()
	switch {
	case errors.Is(err, domain.ErrPreferencesCorrupt):
		if logger != nil {
			logger.Warn("ignoring corrupt preferences file " + s.path)
		}
		values = map[string]string{}
	case err != nil:
		return nil, err
	}
	s.values = values

	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Get returns the stored value for key.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and persists the whole store.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := maps.Clone(s.values)
	next[key] = value

	if err := s.write(next); err != nil {
		return zerr.With(err, "key", key)
	}
	s.values = next
	return nil
}

// Watch reloads the store whenever the file changes on disk and calls fn if
// any value differs. Writes made through Set do not trigger fn.
func (s *Store) Watch(ctx context.Context, fn func()) error {
	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create preferences directory"), "dir", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, "failed to create watcher")
	}
	defer func() { _ = watcher.Close() }()

	// The directory is watched so that atomic renames are seen.
	if err := watcher.Add(dir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to watch preferences directory"), "dir", dir)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != s.path || event.Has(fsnotify.Chmod) {
				continue
			}
			if s.reload() {
				fn()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if s.logger != nil {
				s.logger.Warn("preferences watcher: " + err.Error())
			}
		}
	}
}

func (s *Store) reload() bool {
	values, err := s.read()
	if err != nil {
		// Half-written or corrupt files are picked up by the next event.
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if maps.Equal(values, s.values) {
		return false
	}
	s.values = values
	return true
}

func (s *Store) read() (map[string]string, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrPreferencesReadFailed, err), "path", s.path)
	}

	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrPreferencesCorrupt, err), "path", s.path)
	}
	return values, nil
}

func (s *Store) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return errors.Join(domain.ErrPreferencesWriteFailed, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return zerr.With(errors.Join(domain.ErrPreferencesWriteFailed, err), "dir", dir)
	}

	tmp, err := afero.TempFile(s.fs, dir, ".preferences-*")
	if err != nil {
		return zerr.With(errors.Join(domain.ErrPreferencesWriteFailed, err), "dir", dir)
	}
	tmpName := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = s.fs.Remove(tmpName)
		return zerr.With(errors.Join(domain.ErrPreferencesWriteFailed, err), "path", tmpName)
	}

	if err := s.fs.Rename(tmpName, s.path); err != nil {
		_ = s.fs.Remove(tmpName)
		return zerr.With(errors.Join(domain.ErrPreferencesWriteFailed, err), "path", s.path)
	}
	return nil
}
