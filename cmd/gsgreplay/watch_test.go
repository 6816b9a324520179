package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const testDelay = 50 * time.Millisecond

// startWatcher runs a watcher on a fresh file and returns the run counter,
// the cancel function and the channel receiving the loop result.
func startWatcher(t *testing.T) (path string, runs *atomic.Int32, cancel context.CancelFunc, done <-chan error) {
	t.Helper()
	dir := t.TempDir()
	path = filepath.Join(dir, "frames.toml")
	if err := os.WriteFile(path, []byte("# empty\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	runs = new(atomic.Int32)
	w := &watcher{path: path, log: zerolog.New(io.Discard), delay: testDelay, run: func() { runs.Add(1) }}
	fw, err := w.open()
	if err != nil {
		t.Fatalf("open() = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan error, 1)
	go func() {
		defer fw.Close()
		ch <- w.loop(ctx, fw)
	}()
	t.Cleanup(cancel)
	return path, runs, cancel, ch
}

func writeFileT(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func waitLoop(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("loop() = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not return after cancel")
	}
}

func TestWatcherDebouncesWrites(t *testing.T) {
	path, runs, cancel, done := startWatcher(t)

	writeFileT(t, path, "[[frame]]\n")
	writeFileT(t, path, "[[frame]]\nblend = \"alpha\"\n")
	time.Sleep(6 * testDelay)

	if n := runs.Load(); n != 1 {
		t.Errorf("runs after two quick writes = %d, want 1", n)
	}

	writeFileT(t, path, "[[frame]]\nblend = \"off\"\n")
	time.Sleep(6 * testDelay)
	if n := runs.Load(); n != 2 {
		t.Errorf("runs after a later write = %d, want 2", n)
	}

	cancel()
	waitLoop(t, done)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	path, runs, cancel, done := startWatcher(t)

	writeFileT(t, filepath.Join(filepath.Dir(path), "other.toml"), "x = 1\n")
	time.Sleep(6 * testDelay)

	if n := runs.Load(); n != 0 {
		t.Errorf("runs after writing a sibling file = %d, want 0", n)
	}
	cancel()
	waitLoop(t, done)
}

func TestWatcherCancelDropsPendingRun(t *testing.T) {
	path, runs, cancel, done := startWatcher(t)

	writeFileT(t, path, "[[frame]]\n")
	// Give the event time to arrive, but not the debounce time to expire.
	time.Sleep(testDelay / 5)
	cancel()
	waitLoop(t, done)

	time.Sleep(3 * testDelay)
	if n := runs.Load(); n > 1 {
		t.Errorf("runs = %d, want at most 1", n)
	}
	settled := runs.Load()
	time.Sleep(3 * testDelay)
	if runs.Load() != settled {
		t.Error("run executed after the loop returned")
	}
}

func TestWatcherStopWaitsForRun(t *testing.T) {
	started := make(chan struct{})
	var finished atomic.Bool
	w := &watcher{
		log:   zerolog.New(io.Discard),
		delay: time.Millisecond,
		run: func() {
			close(started)
			time.Sleep(testDelay)
			finished.Store(true)
		},
	}

	w.schedule()
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced run did not start")
	}
	w.stop()

	if !finished.Load() {
		t.Error("stop returned before the running replay finished")
	}
}

func TestWatcherStopCancelsPending(t *testing.T) {
	var runs atomic.Int32
	w := &watcher{log: zerolog.New(io.Discard), delay: time.Hour, run: func() { runs.Add(1) }}

	w.schedule()
	w.schedule()
	w.stop()

	if n := runs.Load(); n != 0 {
		t.Errorf("runs = %d, want 0", n)
	}
}
