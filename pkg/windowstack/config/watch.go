package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file whenever it is written and hands the new
// value to a callback. Files that fail to load are logged and skipped; the
// previous configuration stays current.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	onLoad  func(old, new *Config)

	mu      sync.RWMutex
	current *Config

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// Watch loads path and starts watching it. onLoad runs on the watcher's
// goroutine for every successful reload.
func Watch(path string, logger *slog.Logger, onLoad func(old, new *Config)) (*Watcher, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: initial load: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: create watcher: %w", err)
	}

	// Watch the directory: editors often replace the file instead of writing it.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	w := &Watcher{
		path:    filepath.Clean(path),
		watcher: fw,
		logger:  logger,
		onLoad:  onLoad,
		current: cfg,
		stopCh:  make(chan struct{}),
	}

	w.wg.Add(1)
	go w.loop()

	return w, nil
}

// Current returns the last successfully loaded configuration.
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Reload reads the file now.
func (w *Watcher) Reload() error {
	cfg, err := Load(w.path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	old := w.current
	w.current = cfg
	w.mu.Unlock()

	if w.onLoad != nil {
		w.onLoad(old, cfg)
	}
	return nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := w.Reload(); err != nil {
				w.logger.Warn("Config reload failed, keeping previous", "path", w.path, "error", err)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Config watcher error", "error", err)
		case <-w.stopCh:
			return
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.stopCh)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
