// Package watch triggers a debounced callback when site inputs change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/tagbuilder/internal/logfields"
)

// DefaultDebounce collapses editor save bursts into one rebuild.
const DefaultDebounce = 500 * time.Millisecond

// Filter reports whether a change to path should trigger a rebuild.
type Filter func(path string) bool

// Watcher monitors directory trees and runs OnChange after events settle.
type Watcher struct {
	watcher  *fsnotify.Watcher
	filter   Filter
	onChange func(ctx context.Context) error
	debounce time.Duration

	mu sync.Mutex
	// trees maps each AddTree root to its skip func; new directories below a
	// root are filtered the same way.
	trees   map[string]func(name string) bool
	trigger chan struct{}
}

// New creates a watcher that calls onChange for events accepted by filter.
func New(filter Filter, debounce time.Duration, onChange func(ctx context.Context) error) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		watcher:  fw,
		filter:   filter,
		onChange: onChange,
		debounce: debounce,
		trees:    make(map[string]func(string) bool),
		trigger:  make(chan struct{}, 1),
	}, nil
}

// AddTree watches root and its subdirectories. Directories for which skip
// returns true are not descended into; root itself is always added. The skip
// func also applies to directories created below root later on.
func (w *Watcher) AddTree(root string, skip func(name string) bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.trees[filepath.Clean(root)] = skip
	return w.walk(root, skip)
}

func (w *Watcher) walk(root string, skip func(name string) bool) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && skip != nil && skip(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}

// treeFor returns the skip func of the innermost tree containing path.
func (w *Watcher) treeFor(path string) (func(name string) bool, bool) {
	path = filepath.Clean(path)
	best := ""
	var skip func(string) bool
	found := false
	for root, s := range w.trees {
		if path != root && !strings.HasPrefix(path, root+string(filepath.Separator)) {
			continue
		}
		if !found || len(root) > len(best) {
			best, skip, found = root, s, true
		}
	}
	return skip, found
}

// AddFile watches the directory holding path; editors often replace files
// instead of writing them in place.
func (w *Watcher) AddFile(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	dir := filepath.Dir(path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	return nil
}

// Run processes events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", logfields.Error(err))

		case <-w.trigger:
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			if err := w.onChange(ctx); err != nil {
				slog.Error("Rebuild failed", logfields.Error(err))
			}
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	// New directories must be watched too; their files arrive later.
	if event.Has(fsnotify.Create) {
		if err := w.addIfDir(event.Name); err != nil {
			slog.Warn("Cannot watch new directory", logfields.Path(event.Name), logfields.Error(err))
		}
	}
	if w.filter != nil && !w.filter(event.Name) {
		return
	}
	if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		slog.Debug("Change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
		select {
		case w.trigger <- struct{}{}:
		default:
		}
	}
}

func (w *Watcher) addIfDir(path string) error {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return nil
	}
	ok, err := isDir(path)
	if err != nil || !ok {
		return nil //nolint:nilerr // vanished before we looked
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	skip, inTree := w.treeFor(path)
	if !inTree || (skip != nil && skip(filepath.Base(path))) {
		return nil
	}
	return w.walk(path, skip)
}
