package pxscale

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// DefaultDebounce groups bursts of file events into one regeneration.
const DefaultDebounce = 200 * time.Millisecond

// WatchOptions configures a Watcher.
type WatchOptions struct {
	Debounce time.Duration // default: DefaultDebounce

	// OnResult receives the outcome of every regeneration.
	OnResult func(*GenerateResult, error)
}

// Watcher regenerates the override whenever a stylesheet under the
// stylesheet directory or the manifest changes. Events on the generated file
// and its backup are ignored.
//
//	w, err := pxscale.NewWatcher(config, gen, pxscale.WatchOptions{}, logger)
//	if err != nil {
//	    return err
//	}
//	return w.Run(ctx)
type Watcher struct {
	config  Config
	gen     *Generator
	watcher *fsnotify.Watcher
	log     *zap.Logger
	options WatchOptions

	cssDir   string
	outPath  string
	manifest string

	// Debouncing
	timer      *time.Timer
	debounceMu sync.Mutex

	// Regenerations never overlap
	runMu sync.Mutex

	// Lifecycle
	stopChan chan struct{}
	done     chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewWatcher creates a watcher for config. A nil logger disables logging.
func NewWatcher(config Config, gen *Generator, options WatchOptions, log *zap.Logger) (*Watcher, error) {
	if gen == nil {
		return nil, errors.New("watcher requires a generator")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if options.Debounce <= 0 {
		options.Debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	w := &Watcher{
		config:   config,
		gen:      gen,
		watcher:  fw,
		log:      log.Named("watcher"),
		options:  options,
		cssDir:   absPath(config.resolve(config.CSSDir)),
		outPath:  absPath(config.resolve(config.Out)),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
	if config.Manifest != "" {
		w.manifest = absPath(config.resolve(config.Manifest))
	}
	return w, nil
}

// Run regenerates once, then watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(); err != nil {
		return err
	}

	w.Regenerate()

	<-ctx.Done()
	return w.Stop()
}

// Start registers the watches and starts the event loop in the background.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("watcher already stopped")
	}
	w.mu.Unlock()

	if info, err := os.Stat(w.cssDir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrStylesheetDirMissing, w.cssDir)
	}

	// Walk directory tree and add every directory
	err := filepath.WalkDir(w.cssDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Continue on error
		}
		if d.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				w.log.Warn("Failed to watch directory", zap.String("path", path), zap.Error(err))
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to setup watches: %w", err)
	}

	if w.manifest != "" {
		dir := filepath.Dir(w.manifest)
		if !isInside(w.cssDir, dir) && dir != w.cssDir {
			if err := w.watcher.Add(dir); err != nil {
				w.log.Warn("Failed to watch manifest directory", zap.String("path", dir), zap.Error(err))
			}
		}
	}

	w.log.Info("File watcher started", zap.String("dir", w.cssDir))

	go w.eventLoop()
	return nil
}

// Stop stops the watcher. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	close(w.stopChan)
	w.mu.Unlock()

	w.debounceMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.debounceMu.Unlock()

	err := w.watcher.Close()
	w.log.Info("File watcher stopped")
	return err
}

// Regenerate runs the generator once and reports the outcome.
func (w *Watcher) Regenerate() {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	start := time.Now()
	result, err := w.gen.Generate(w.config)
	if err != nil {
		w.log.Error("Regeneration failed", zap.Error(err))
	} else {
		w.log.Debug("Regenerated",
			zap.Bool("wrote", result.Wrote),
			zap.Int("files", len(result.Files)),
			zap.Duration("took", time.Since(start)))
	}

	if w.options.OnResult != nil {
		w.options.OnResult(result, err)
	}
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("File watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := absPath(event.Name)

	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				w.log.Warn("Failed to watch directory", zap.String("path", path), zap.Error(err))
			}
			w.scheduleRegenerate()
			return
		}
	}

	if !w.relevant(path) {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.log.Debug("File event", zap.String("op", event.Op.String()), zap.String("file", path))
	w.scheduleRegenerate()
}

// relevant reports whether a change to path can affect the output.
func (w *Watcher) relevant(path string) bool {
	if path == w.outPath || path == w.outPath+BackupSuffix {
		return false
	}
	if w.manifest != "" && (path == w.manifest || path == w.manifest+BackupSuffix) {
		return path == w.manifest
	}
	return isInside(w.cssDir, path) && strings.EqualFold(filepath.Ext(path), ".css")
}

// scheduleRegenerate (re)starts the debounce timer.
func (w *Watcher) scheduleRegenerate() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()
	if stopped {
		return
	}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.options.Debounce, func() {
		w.debounceMu.Lock()
		w.timer = nil
		w.debounceMu.Unlock()

		w.Regenerate()
	})
}

// Close stops the watcher and releases the generator's cache.
func (w *Watcher) Close() error {
	var errs error
	errs = multierr.Append(errs, w.Stop())
	w.gen.cache.Purge()
	return errs
}
