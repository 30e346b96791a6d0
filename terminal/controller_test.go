package terminal

import (
	"bytes"
	"os"
	"syscall"
	"testing"
	"time"
)

// fakeBackend is a Backend double for controller tests that never
// touches a real TTY.
type fakeBackend struct {
	writes    [][]byte
	finiCalls int
	width     int
	height    int
}

func (f *fakeBackend) Init() error { return nil }
func (f *fakeBackend) Fini()       { f.finiCalls++ }
func (f *fakeBackend) Size() (int, int) {
	return f.width, f.height
}
func (f *fakeBackend) Write(p []byte) error {
	f.writes = append(f.writes, append([]byte(nil), p...))
	return nil
}
func (f *fakeBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	<-stopCh
	return nil, nil
}
func (f *fakeBackend) SetResizeHandler(handler func()) {}

func (f *fakeBackend) wroteAny(seq []byte) bool {
	for _, w := range f.writes {
		if bytes.Equal(w, seq) {
			return true
		}
	}
	return false
}

func TestControllerRestoreIsIdempotent(t *testing.T) {
	fb := &fakeBackend{width: 80, height: 24}
	c := newControllerWithBackend(Fullscreen|HideCursor, fb)

	c.Restore()
	c.Restore()
	c.Restore()

	if fb.finiCalls != 1 {
		t.Fatalf("Fini called %d times, want 1", fb.finiCalls)
	}
}

func TestControllerInitWritesOptionSequences(t *testing.T) {
	fb := &fakeBackend{width: 80, height: 24}
	c := newControllerWithBackend(Fullscreen|HideCursor|MouseEvents, fb)

	if err := c.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer c.Restore()

	for _, seq := range [][]byte{csiAltScreenEnter, csiCursorHide, csiMouseSGROn, csiMouseClickOn, csiMouseDragOn, csiMouseMotionOn} {
		if !fb.wroteAny(seq) {
			t.Fatalf("expected write of %q, got %v", seq, fb.writes)
		}
	}
}

func TestControllerInitWithoutFullscreenSkipsAltScreen(t *testing.T) {
	fb := &fakeBackend{width: 80, height: 24}
	c := newControllerWithBackend(HideCursor, fb)

	if err := c.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer c.Restore()

	if fb.wroteAny(csiAltScreenEnter) {
		t.Fatal("wrote alt screen enter without Fullscreen option")
	}
}

// TestControllerSignalGoroutineRestoreDoesNotDeadlock mimics the body
// installSignalHandlers' goroutine runs on a fatal signal, up to but not
// including the re-raise (which would kill the test binary): it must
// call restoreCore directly rather than the full Restore, since sigDone
// only closes once that same goroutine returns and a self-join on it
// would never complete.
func TestControllerSignalGoroutineRestoreDoesNotDeadlock(t *testing.T) {
	fb := &fakeBackend{width: 80, height: 24}
	c := newControllerWithBackend(Fullscreen, fb)
	c.sigCh = make(chan os.Signal, 1)
	c.sigDone = make(chan struct{})

	go func() {
		defer close(c.sigDone)
		if _, ok := <-c.sigCh; !ok {
			return
		}
		c.restoreCore()
	}()

	c.sigCh <- syscall.SIGINT

	select {
	case <-c.sigDone:
	case <-time.After(2 * time.Second):
		t.Fatal("signal goroutine did not exit; restoreCore likely self-joined on sigDone")
	}

	if fb.finiCalls != 1 {
		t.Fatalf("Fini called %d times, want 1", fb.finiCalls)
	}

	// An external caller's Restore, arriving after the signal path already
	// ran, must still return promptly: restoreCore is a once-guarded
	// no-op and stopSignalWatch's close+join sees sigDone already closed.
	done := make(chan struct{})
	go func() {
		c.Restore()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Restore after signal-path teardown did not return")
	}

	if fb.finiCalls != 1 {
		t.Fatalf("Fini called %d times after external Restore, want 1", fb.finiCalls)
	}
}

func TestControllerPendingResizeClearsOnRead(t *testing.T) {
	fb := &fakeBackend{width: 80, height: 24}
	c := newControllerWithBackend(Fullscreen, fb)

	if c.PendingResize() {
		t.Fatal("PendingResize true before any signal")
	}
	c.pendingResize.Store(true)
	if !c.PendingResize() {
		t.Fatal("PendingResize false after flag set")
	}
	if c.PendingResize() {
		t.Fatal("PendingResize did not clear after read")
	}
}
