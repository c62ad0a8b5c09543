package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/younwookim/salmonrun/internal/infrastructure/log"
)

// Watcher reloads game.yaml from the loader's directory whenever it changes
// and publishes the result to a Store. Files that fail to load are logged and
// the previous config stays active.
type Watcher struct {
	watcher *fsnotify.Watcher
	loader  *Loader
	store   *Store
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(loader *Loader, store *Store) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(loader.BasePath()); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		loader:  loader,
		store:   store,
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

// debounce coalesces the burst of events editors emit for a single save.
const debounce = 100 * time.Millisecond

func (w *Watcher) run() {
	defer close(w.done)
	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Base(event.Name) != FileName {
				continue
			}
			pending = time.After(debounce)
		case <-pending:
			pending = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := w.loader.LoadGame()
	if err != nil {
		log.Warn("Config reload failed, keeping previous: %v", err)
		w.report(err)
		return
	}
	w.store.Set(cfg)
	log.Info("Config reloaded from %s", filepath.Join(w.loader.BasePath(), FileName))
}

// report forwards an error without blocking the watch loop.
func (w *Watcher) report(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
