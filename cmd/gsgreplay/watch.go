package main

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const debounceDelay = 100 * time.Millisecond

// watcher reruns a function whenever a file changes. Editors often write
// a file in several steps, so runs are debounced.
type watcher struct {
	path  string
	log   zerolog.Logger
	run   func()
	delay time.Duration

	mu       sync.Mutex
	debounce *time.Timer
	running  sync.WaitGroup
}

// watch blocks until ctx is done. The directory of the file is watched so
// that editors replacing the file by rename are noticed.
func (w *watcher) watch(ctx context.Context) error {
	fw, err := w.open()
	if err != nil {
		return err
	}
	defer fw.Close()
	return w.loop(ctx, fw)
}

func (w *watcher) open() (*fsnotify.Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return nil, err
	}
	return fw, nil
}

// loop handles events until ctx is done or fw is closed. A run already
// in progress when it returns has finished.
func (w *watcher) loop(ctx context.Context, fw *fsnotify.Watcher) error {
	defer w.stop()
	name := filepath.Clean(w.path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.schedule()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("watch error")
		}
	}
}

func (w *watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.cancelPending()
	delay := w.delay
	if delay <= 0 {
		delay = debounceDelay
	}
	w.running.Add(1)
	w.debounce = time.AfterFunc(delay, func() {
		defer w.running.Done()
		w.run()
	})
}

// cancelPending stops a debounced run that has not started yet.
// w.mu must be held.
func (w *watcher) cancelPending() {
	if w.debounce != nil && w.debounce.Stop() {
		w.running.Done()
	}
	w.debounce = nil
}

// stop cancels a pending run and waits for a started one.
func (w *watcher) stop() {
	w.mu.Lock()
	w.cancelPending()
	w.mu.Unlock()
	w.running.Wait()
}
