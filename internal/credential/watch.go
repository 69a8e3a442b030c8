package credential

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

const (
	watchDebounce   = 100 * time.Millisecond
	watchPollPeriod = 5 * time.Second
)

// Watcher observes a credential file for on-disk changes. The store is fixed
// for the process lifetime, so a change cannot be applied live; the watcher
// exists to tell operators that a restart is needed. onChange runs once per
// debounced change burst.
type Watcher struct {
	path     string
	onChange func()
	stopCh   chan struct{}
	stopOnce sync.Once
}

// WatchFile starts watching path and returns the running watcher. It prefers
// fsnotify and falls back to mtime polling when the watch cannot be
// established.
func WatchFile(path string, onChange func()) *Watcher {
	w := &Watcher{
		path:     path,
		onChange: onChange,
		stopCh:   make(chan struct{}),
	}
	go w.run()
	return w
}

// Stop terminates the watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

func (w *Watcher) run() {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		log.WithError(err).Warn("failed to create file watcher, falling back to polling")
		w.poll()
		return
	}
	defer fsw.Close()

	if err := fsw.Add(w.path); err != nil {
		log.WithError(err).WithField("path", w.path).Warn("failed to watch key file, falling back to polling")
		w.poll()
		return
	}

	// Also watch the directory to catch atomic writes (rename operations).
	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		log.WithError(err).WithField("dir", dir).Warn("failed to watch key file directory")
	}

	log.WithField("path", w.path).Info("key file watcher started using fsnotify")

	// Debounce so an editor's write burst triggers one notification.
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if event.Name != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, w.notify)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("key file watcher error")
		case <-w.stopCh:
			return
		}
	}
}

// poll is the fallback when fsnotify is unavailable.
func (w *Watcher) poll() {
	ticker := time.NewTicker(watchPollPeriod)
	defer ticker.Stop()
	log.WithField("interval", watchPollPeriod.String()).Info("key file watcher started using polling")

	last := w.mtime()
	for {
		select {
		case <-ticker.C:
			cur := w.mtime()
			if !cur.Equal(last) {
				last = cur
				w.notify()
			}
		case <-w.stopCh:
			return
		}
	}
}

func (w *Watcher) mtime() time.Time {
	info, err := os.Stat(w.path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func (w *Watcher) notify() {
	if w.onChange != nil {
		w.onChange()
		return
	}
	log.Warnf("Key file %s changed on disk; credentials are fixed for the process lifetime, restart to apply", w.path)
}
