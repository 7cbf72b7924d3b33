// Package watch reruns the parse pipeline when watched Markdown trees change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/vmittal27/mkforge/internal/logging"
	"github.com/vmittal27/mkforge/pkg/runner"
)

// DefaultDebounce is the quiet period after the last relevant change before
// the pipeline reruns.
const DefaultDebounce = 500 * time.Millisecond

// ResultFunc receives the outcome of the initial run and of every rerun.
type ResultFunc func(result *runner.Result, err error)

// Watcher reruns a runner over its configured paths whenever a watched
// Markdown file changes.
type Watcher struct {
	runner   *runner.Runner
	runOpts  runner.Options
	debounce time.Duration
	onResult ResultFunc
}

// New creates a watcher. A debounce of zero or less selects DefaultDebounce.
func New(run *runner.Runner, runOpts runner.Options, debounce time.Duration, onResult ResultFunc) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		runner:   run,
		runOpts:  runOpts,
		debounce: debounce,
		onResult: onResult,
	}
}

// Watch performs one immediate run, then reruns after every debounced batch
// of changes until ctx is cancelled. Cancellation is the normal exit and
// returns nil.
func (w *Watcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := w.addRoots(watcher); err != nil {
		return err
	}

	// First run before any change arrives
	w.run(ctx)

	runCh := make(chan struct{}, 1)
	debounced := newTrigger(w.debounce, runCh)
	defer debounced.stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.eventLoop(gctx, watcher, debounced) })
	g.Go(func() error { return w.runLoop(gctx, runCh) })
	return g.Wait()
}

func (w *Watcher) run(ctx context.Context) {
	result, err := w.runner.Run(ctx, w.runOpts)
	if ctx.Err() != nil {
		return
	}
	if w.onResult != nil {
		w.onResult(result, err)
	}
}

// addRoots registers the configured paths with the watcher. Directories are
// watched recursively; for plain files the parent directory is watched, since
// editors often replace files rather than write them in place.
func (w *Watcher) addRoots(watcher *fsnotify.Watcher) error {
	for _, path := range w.runOpts.EffectivePaths() {
		if w.runOpts.WorkingDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(w.runOpts.WorkingDir, path)
		}

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}

		if info.IsDir() {
			if err := addDirTree(watcher, path); err != nil {
				return err
			}
			continue
		}
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
		}
	}
	return nil
}

// addDirTree watches root and every non-hidden directory below it.
func addDirTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable entries are skipped
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) eventLoop(ctx context.Context, watcher *fsnotify.Watcher, debounced *trigger) error {
	logger := logging.FromContext(ctx)
	extensions := w.runOpts.EffectiveExtensions()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("file watcher closed")
			}
			w.handleEvent(watcher, event, extensions, debounced, logger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("file watcher closed")
			}
			logger.Warn("file watcher error", logging.FieldError, err)
		}
	}
}

func (w *Watcher) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event, extensions []string, debounced *trigger, logger *charmlog.Logger) {
	if shouldIgnore(event.Name) {
		return
	}
	// Chmod alone never changes content
	if event.Op == fsnotify.Chmod {
		return
	}

	// New directories join the watch set so files created inside them are
	// seen later.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := addDirTree(watcher, event.Name); err != nil {
				logger.Warn("watch new directory", logging.FieldPath, event.Name, logging.FieldError, err)
			}
			debounced.hit()
			return
		}
	}

	if !matchesExtension(event.Name, extensions) {
		return
	}

	logger.Debug("change detected", logging.FieldPath, event.Name)
	debounced.hit()
}

func (w *Watcher) runLoop(ctx context.Context, runCh <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-runCh:
			w.run(ctx)
		}
	}
}

// trigger coalesces bursts of changes into single rerun requests: each hit
// restarts the quiet-period timer, and only its expiry queues a run.
type trigger struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	runCh chan<- struct{}
}

func newTrigger(delay time.Duration, runCh chan<- struct{}) *trigger {
	return &trigger{delay: delay, runCh: runCh}
}

func (t *trigger) hit() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.delay, func() {
		select {
		case t.runCh <- struct{}{}:
		default: // a run is already queued
		}
	})
}

func (t *trigger) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
}

// shouldIgnore filters event noise: hidden files plus editor swap, backup
// and lock artifacts.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swx") {
		return true
	}
	if strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return false
}

// matchesExtension reports whether path has one of the watched extensions.
func matchesExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
