package ui

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/tartampluch/monthly-widget/internal/config"
)

// ThemeWatcher reports changes to the local theme file.
// It watches the parent directory so that editors replacing the file
// (write to temp, rename over) are still noticed.
type ThemeWatcher struct {
	watcher  *fsnotify.Watcher
	onChange func(path string)

	mu   sync.Mutex
	path string
	dir  string
}

// NewThemeWatcher starts an idle watcher. onChange runs on the watcher's
// goroutine and must not block.
func NewThemeWatcher(onChange func(path string)) (*ThemeWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	tw := &ThemeWatcher{watcher: w, onChange: onChange}
	go tw.run()
	return tw, nil
}

// Watch switches to path. An empty path stops watching.
func (tw *ThemeWatcher) Watch(path string) error {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if path != "" {
		path = filepath.Clean(path)
	}
	if path == tw.path {
		return nil
	}

	if tw.dir != "" {
		_ = tw.watcher.Remove(tw.dir)
		tw.dir = ""
	}
	tw.path = path

	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if err := tw.watcher.Add(dir); err != nil {
		return err
	}
	tw.dir = dir

	slog.Info(config.MsgThemeWatch,
		config.LogKeyComponent, config.CompWatcher,
		config.LogKeyFile, path)
	return nil
}

// Close stops the watcher goroutine.
func (tw *ThemeWatcher) Close() error {
	return tw.watcher.Close()
}

func (tw *ThemeWatcher) current() string {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	return tw.path
}

func (tw *ThemeWatcher) run() {
	for {
		select {
		case event, ok := <-tw.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			path := tw.current()
			if path == "" || filepath.Clean(event.Name) != path {
				continue
			}

			slog.Info(config.MsgThemeChanged,
				config.LogKeyComponent, config.CompWatcher,
				config.LogKeyFile, path)
			tw.onChange(path)

		case err, ok := <-tw.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn(config.ErrWatcher,
				config.LogKeyComponent, config.CompWatcher,
				config.LogKeyError, err)
		}
	}
}
