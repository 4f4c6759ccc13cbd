package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/termvim/internal/logging"
)

// debounce collapses editor save bursts (write + rename + chmod) into one
// reload.
const debounce = 100 * time.Millisecond

// Watcher monitors the config file and invokes a callback on change. The
// callback runs on the watcher goroutine; the caller is responsible for
// marshaling any state changes onto the UI goroutine.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	onChange func()
	log      *logging.Logger
	done     chan struct{}
	wg       sync.WaitGroup
	stop     sync.Once
}

// Watch starts watching path. The containing directory is watched rather
// than the file itself so atomic save (write temp, rename over) keeps
// working.
func Watch(path string, onChange func(), log *logging.Logger) (*Watcher, error) {
	if log == nil {
		log = logging.Null
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		path:     filepath.Clean(path),
		onChange: onChange,
		log:      log.WithComponent("config"),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
			} else {
				timer.Reset(debounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error: %v", err)
		case <-fire:
			timer = nil
			fire = nil
			w.log.Info("config file changed, reloading")
			w.onChange()
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() {
	w.stop.Do(func() {
		close(w.done)
		_ = w.fsw.Close()
	})
	w.wg.Wait()
}
