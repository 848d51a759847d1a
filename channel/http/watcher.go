package http

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 500 * time.Millisecond

func (c *Channel) loadCredential(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	c.setBearer(strings.TrimSpace(string(data)))
	return nil
}

// watcher reloads the channel session credential when the backing file
// changes. Events are debounced since editors and secret managers emit
// several per update.
type watcher struct {
	notifier *fsnotify.Watcher
	once     sync.Once
}

// watchCredential watches the parent directory rather than the file itself so
// the watch survives rename based writes.
func watchCredential(c *Channel, path string) (*watcher, error) {
	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err = notifier.Add(filepath.Dir(path)); err != nil {
		_ = notifier.Close()
		return nil, err
	}
	ret := &watcher{notifier: notifier}
	reload := make(chan struct{}, 1)
	go ret.handleEvents(c, path, reload)
	go ret.scheduleReload(c, path, reload)
	return ret, nil
}

func (w *watcher) handleEvents(c *Channel, path string, reload chan<- struct{}) {
	defer close(reload)
	target := filepath.Clean(path)
	for {
		select {
		case event, ok := <-w.notifier.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				select {
				case reload <- struct{}{}:
				default:
				}
			}
		case err, ok := <-w.notifier.Errors:
			if !ok {
				return
			}
			c.logger.WithError(err).Warn("credential watcher error")
		}
	}
}

func (w *watcher) scheduleReload(c *Channel, path string, reload <-chan struct{}) {
	var timer *time.Timer
	var pending <-chan time.Time
	for {
		select {
		case _, ok := <-reload:
			if !ok {
				if timer != nil {
					timer.Stop()
				}
				return
			}
			if timer != nil {
				timer.Reset(reloadDebounce)
			} else {
				timer = time.NewTimer(reloadDebounce)
				pending = timer.C
			}
		case <-pending:
			timer = nil
			pending = nil
			if err := c.loadCredential(path); err != nil {
				c.logger.WithError(err).Warn("failed to reload session credential")
				continue
			}
			c.logger.WithField("path", path).Debug("session credential reloaded")
		}
	}
}

func (w *watcher) close() error {
	var err error
	w.once.Do(func() {
		err = w.notifier.Close()
	})
	return err
}
