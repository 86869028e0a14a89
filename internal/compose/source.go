package compose

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"centrum/internal/logging"
)

// Source yields the current template. Production uses the static variant
// loaded once at startup; development mode swaps in a watched variant that
// reloads when the file changes on disk.
type Source interface {
	Template() *Template
}

// StaticSource serves one immutable template for the process lifetime
type StaticSource struct {
	t *Template
}

// NewStaticSource wraps a loaded template
func NewStaticSource(t *Template) *StaticSource {
	return &StaticSource{t: t}
}

// Template returns the wrapped template
func (s *StaticSource) Template() *Template {
	return s.t
}

// WatchedSource reloads the template when its file changes. Swaps are whole
// *Template values behind a mutex, so a request sees either the old or the
// new template, never a half-written one.
type WatchedSource struct {
	path    string
	logger  *logging.Logger
	watcher *fsnotify.Watcher

	mu sync.RWMutex
	t  *Template

	debounce *time.Timer
}

// NewWatchedSource loads the template and begins watching its directory.
// Watching the directory instead of the file survives editors that replace
// the file on save.
func NewWatchedSource(path string, logger *logging.Logger) (*WatchedSource, error) {
	t, err := Load(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	s := &WatchedSource{
		path:    path,
		logger:  logger,
		watcher: watcher,
		t:       t,
	}
	go s.watch()
	return s, nil
}

// Template returns the most recently loaded template
func (s *WatchedSource) Template() *Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.t
}

// Close stops watching
func (s *WatchedSource) Close() error {
	return s.watcher.Close()
}

func (s *WatchedSource) watch() {
	const debounceDelay = 200 * time.Millisecond

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Editors fire several events per save; reload once after quiet.
			if s.debounce != nil {
				s.debounce.Stop()
			}
			s.debounce = time.AfterFunc(debounceDelay, s.reload)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("Template watcher error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

func (s *WatchedSource) reload() {
	t, err := Load(s.path)
	if err != nil {
		s.logger.Error("Template reload failed, keeping previous template", map[string]interface{}{
			"path":  s.path,
			"error": err.Error(),
		})
		return
	}

	s.mu.Lock()
	s.t = t
	s.mu.Unlock()

	s.logger.Info("Template reloaded", map[string]interface{}{
		"path":    s.path,
		"missing": t.MissingMarkers(),
	})
}
