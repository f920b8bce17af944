package tui

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces editor write bursts into one reload
const watchDebounce = 100 * time.Millisecond

// DocumentWatcher reports when a mission document changes on disk. The
// parent directory is watched because editors replace files by rename.
type DocumentWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan struct{}
	done    chan struct{}
	stopped chan struct{}
}

// NewDocumentWatcher creates a watcher for one document path
func NewDocumentWatcher(path string) (*DocumentWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	return &DocumentWatcher{
		watcher: w,
		path:    abs,
		events:  make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}, nil
}

// Start begins delivering change notifications on Events
func (dw *DocumentWatcher) Start() {
	go dw.eventLoop()
}

// Events delivers one coalesced signal per on-disk change. The channel
// closes when the watcher stops.
func (dw *DocumentWatcher) Events() <-chan struct{} {
	return dw.events
}

// Stop shuts down the watcher and waits for the event loop to exit
func (dw *DocumentWatcher) Stop() error {
	close(dw.done)
	<-dw.stopped
	return dw.watcher.Close()
}

func (dw *DocumentWatcher) eventLoop() {
	defer close(dw.stopped)
	defer close(dw.events)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-dw.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			if !dw.matches(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(watchDebounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			select {
			case dw.events <- struct{}{}:
			default:
			}

		case _, ok := <-dw.watcher.Errors:
			// watch errors degrade to no live reload
			if !ok {
				return
			}
		}
	}
}

// matches reports whether the event is a content change of the
// watched document
func (dw *DocumentWatcher) matches(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return false
	}
	return filepath.Clean(event.Name) == dw.path
}
