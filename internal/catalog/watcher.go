package catalog

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatcherConfig configures catalog hot reload.
type WatcherConfig struct {
	Dir      string
	Debounce time.Duration // Quiet period after the last change before reloading

	// OnReload is called with the new snapshot after it has been installed.
	OnReload func(*Catalog)

	// OnError is called when a reload fails. The previous snapshot stays active.
	OnError func(error)
}

// Watcher reloads the catalog into a Store when its files change on disk.
type Watcher struct {
	store  *Store
	config WatcherConfig
}

// NewWatcher creates a watcher for the store.
func NewWatcher(store *Store, config WatcherConfig) *Watcher {
	if config.Debounce <= 0 {
		config.Debounce = 250 * time.Millisecond
	}
	return &Watcher{store: store, config: config}
}

// Run watches the catalog directory until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) (err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	// Editors often replace files by rename, so watch the directory rather
	// than the individual files.
	if err := watcher.Add(w.config.Dir); err != nil {
		return fmt.Errorf("failed to watch catalog directory: %w", err)
	}
	log.Printf("[CatalogWatcher] Watching %s for changes", w.config.Dir)

	timer := time.NewTimer(w.config.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !IsCatalogFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			timer.Reset(w.config.Debounce)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[CatalogWatcher] File watcher error: %v", werr)
		case <-timer.C:
			w.Reload()
		}
	}
}

// Reload loads the catalog directory and swaps it into the store.
// It returns false when loading failed and the old snapshot was kept.
func (w *Watcher) Reload() bool {
	c, err := Load(w.config.Dir)
	if err != nil {
		log.Printf("[CatalogWatcher] Reload failed, keeping previous catalog: %v", err)
		if w.config.OnError != nil {
			w.config.OnError(err)
		}
		return false
	}

	w.store.Replace(c)
	log.Printf("[CatalogWatcher] Catalog reloaded (%d stratagems)", c.StratagemCount())
	if w.config.OnReload != nil {
		w.config.OnReload(c)
	}
	return true
}
