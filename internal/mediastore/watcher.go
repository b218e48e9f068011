package mediastore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jetaudio/jetaudio/internal/tags"
)

// DefaultDebounce is the quiet period after the last file event before a
// rescan starts.
const DefaultDebounce = 2 * time.Second

// Watcher rescans the roots when files below them change.
type Watcher struct {
	store    *Store
	roots    []string
	debounce time.Duration

	// OnRescan is called after every rescan that changed the index.
	OnRescan func(ScanStats)
}

// NewWatcher creates a Watcher over roots.
func NewWatcher(store *Store, roots []string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{store: store, roots: roots, debounce: debounce}
}

// Run watches until ctx is done. Directories created later are added to the
// watch set as they appear.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	for _, root := range w.roots {
		w.addTree(fw, root)
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					w.addTree(fw, ev.Name)
				}
			}
			if relevant(ev) {
				timer.Reset(w.debounce)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.store.log.Warn().Err(err).Msg("watch error")
		case <-timer.C:
			stats, err := w.store.Scan(ctx, w.roots, nil)
			switch {
			case errors.Is(err, ErrClosed):
				return err
			case err != nil:
				w.store.log.Error().Err(err).Msg("rescan failed")
			case stats.Changed() && w.OnRescan != nil:
				w.OnRescan(stats)
			}
		}
	}
}

func (w *Watcher) addTree(fw *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil //nolint:nilerr // best effort
		}
		if err := fw.Add(path); err != nil {
			w.store.log.Debug().Err(err).Str("path", path).Msg("cannot watch directory")
		}
		return nil
	})
}

// relevant reports whether ev can change the index: a music file or a
// directory (whose contents may have moved) was touched.
func relevant(ev fsnotify.Event) bool {
	if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
		return false
	}
	if tags.IsMusicFile(ev.Name) {
		return true
	}
	return filepath.Ext(ev.Name) == ""
}
