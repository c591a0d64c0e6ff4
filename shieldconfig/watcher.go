package shieldconfig

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/logpkg"
)

// Watcher signals when any of the watched files, or anything inside a watched directory, changes.
// Parent directories are watched rather than the files themselves, so files replaced by editors are still seen.
type Watcher struct {
	logger *logpkg.Logger
	fsw    *fsnotify.Watcher
	files  map[string]bool
	dirs   map[string]bool
	events chan struct{}
	done   chan struct{}
	once   sync.Once
}

func NewWatcher(fs gofs.Fs, logger *logpkg.Logger, paths ...string) (*Watcher, errorsx.Error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	w := &Watcher{
		logger: logger,
		fsw:    fsw,
		files:  make(map[string]bool),
		dirs:   make(map[string]bool),
		events: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	watchedDirs := make(map[string]bool)
	for _, path := range paths {
		path = filepath.Clean(path)

		dirToWatch := filepath.Dir(path)
		fileInfo, err := fs.Stat(path)
		if err == nil && fileInfo.IsDir() {
			w.dirs[path] = true
			dirToWatch = path
		} else {
			w.files[path] = true
		}

		if watchedDirs[dirToWatch] {
			continue
		}

		err = fsw.Add(dirToWatch)
		if err != nil {
			fsw.Close()
			return nil, errorsx.Wrap(err, "path", dirToWatch)
		}
		watchedDirs[dirToWatch] = true
	}

	go w.watch()

	return w, nil
}

// Events receives a signal after a change. Changes in quick succession may be merged into one signal.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

func (w *Watcher) Close() errorsx.Error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	if err != nil {
		return errorsx.Wrap(err)
	}
	return nil
}

func (w *Watcher) isWatched(name string) bool {
	name = filepath.Clean(name)
	return w.files[name] || w.dirs[filepath.Dir(name)]
}

func (w *Watcher) watch() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			if w.isWatched(event.Name) {
				w.logger.Debug("file changed: %s", event)
				w.notify()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("error watching files: %s", err)
		}
	}
}

func (w *Watcher) notify() {
	select {
	case w.events <- struct{}{}:
	default:
		// already signalled
	}
}
