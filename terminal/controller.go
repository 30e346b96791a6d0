package terminal

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
)

// Options is a bitmask of terminal acquisition choices passed to
// NewController.
type Options uint8

const (
	// Fullscreen switches to the alternate screen buffer and subscribes
	// to window-change notifications.
	Fullscreen Options = 1 << iota
	// HideCursor hides the text cursor for the lifetime of the session.
	HideCursor
	// MouseButtonEvents enables SGR mouse button press/release reports.
	MouseButtonEvents
	// MouseMoveEvents enables SGR mouse motion reports.
	MouseMoveEvents
	// NoSignalDecode clears ISIG so Ctrl-C, Ctrl-Z, and Ctrl-\\ arrive
	// as ordinary key bytes instead of generating signals.
	NoSignalDecode
)

// MouseEvents is shorthand for both button and motion reporting.
const MouseEvents = MouseButtonEvents | MouseMoveEvents

// Controller owns terminal acquisition: entering raw mode and the
// alternate screen, wiring the resize and fatal-signal handlers, and
// running restoration at most once, either on Restore or when one of
// the handled fatal signals arrives. There is no at-exit hook: a
// process that calls os.Exit without Restore leaves the terminal
// unrestored.
type Controller struct {
	backend Backend
	opts    Options

	restoreOnce sync.Once
	stopOnce    sync.Once

	pendingResize atomic.Bool
	sigCh         chan os.Signal
	sigDone       chan struct{}
}

// activeController records the controller currently holding the
// terminal: Init sets it and restoration clears it. Go has no analogue of a
// signal-context handler restricted to async-signal-safe calls, so
// fatal-signal handling here runs on an ordinary goroutine woken by
// signal.Notify; the important guarantee — restore happens before the
// process actually dies — is preserved by re-raising the signal with
// its default disposition after restore completes rather than calling
// os.Exit directly.
var activeController atomic.Pointer[Controller]

// NewController constructs a controller in the un-initialized state.
func NewController(opts Options) *Controller {
	return &Controller{
		backend: newBackend(),
		opts:    opts,
	}
}

// newControllerWithBackend builds a controller over an arbitrary
// Backend, bypassing the terminal-detection Init path. Used by tests
// that need to exercise Restore/signal wiring without a real TTY.
func newControllerWithBackend(opts Options, backend Backend) *Controller {
	return &Controller{backend: backend, opts: opts}
}

// Backend exposes the underlying Backend for the input decoder and
// renderer to share.
func (c *Controller) Backend() Backend { return c.backend }

// Init acquires the terminal: raw mode, alternate screen and cursor
// visibility per Options, mouse reporting, and signal handlers. On any
// failure partial state is undone before returning the error.
func (c *Controller) Init() error {
	if ub, ok := c.backend.(*unixBackend); ok {
		ub.disableSignals = c.opts&NoSignalDecode != 0
	}

	if err := c.backend.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}

	if c.opts&Fullscreen != 0 {
		c.backend.Write(csiAltScreenEnter)
	}
	if c.opts&HideCursor != 0 {
		c.backend.Write(csiCursorHide)
	}
	c.backend.Write(csiAutoWrapOff)

	if c.opts&(MouseButtonEvents|MouseMoveEvents) != 0 {
		c.backend.Write(csiMouseSGROn)
		if c.opts&MouseButtonEvents != 0 {
			c.backend.Write(csiMouseClickOn)
		}
		if c.opts&MouseMoveEvents != 0 {
			c.backend.Write(csiMouseDragOn)
			c.backend.Write(csiMouseMotionOn)
		}
	}

	activeController.Store(c)
	c.installSignalHandlers()

	if c.opts&Fullscreen != 0 {
		c.backend.SetResizeHandler(func() {
			c.pendingResize.Store(true)
		})
	}

	return nil
}

// PendingResize reports and clears whether a SIGWINCH arrived since the
// last call.
func (c *Controller) PendingResize() bool {
	return c.pendingResize.Swap(false)
}

// Size reports the current terminal dimensions.
func (c *Controller) Size() (int, int) {
	return c.backend.Size()
}

// installSignalHandlers wires the four fatal signals to
// restore-then-re-raise and, if fullscreen mode requested resize
// notification, leaves SIGWINCH to the backend's own goroutine.
func (c *Controller) installSignalHandlers() {
	c.sigCh = make(chan os.Signal, 4)
	c.sigDone = make(chan struct{})
	signal.Notify(c.sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGABRT, syscall.SIGFPE)

	go func() {
		defer close(c.sigDone)
		sig, ok := <-c.sigCh
		if !ok {
			return
		}
		c.restoreCore()
		signal.Stop(c.sigCh)
		signal.Reset(sig)
		proc, err := os.FindProcess(os.Getpid())
		if err == nil {
			proc.Signal(sig)
		}
	}()
}

// Restore is idempotent: it writes the disable sequences and restores
// the saved termios exactly once, no matter how many times or from how
// many goroutines it is called. Called from outside the signal-handling
// goroutine, it also stops that goroutine and waits for it to exit.
func (c *Controller) Restore() {
	c.restoreCore()
	c.stopSignalWatch()
}

// restoreCore writes the disable sequences and restores the saved
// termios exactly once. It is called both by Restore and, directly, by
// the signal-handling goroutine — which must never join itself via
// stopSignalWatch, since sigDone only closes after that goroutine
// returns.
func (c *Controller) restoreCore() {
	c.restoreOnce.Do(func() {
		if c.opts&(MouseButtonEvents|MouseMoveEvents) != 0 {
			c.backend.Write(csiMouseMotionOff)
			c.backend.Write(csiMouseDragOff)
			c.backend.Write(csiMouseClickOff)
			c.backend.Write(csiMouseSGROff)
		}
		if c.opts&HideCursor != 0 {
			c.backend.Write(csiCursorShow)
		}
		c.backend.Write(csiAutoWrapOn)
		if c.opts&Fullscreen != 0 {
			c.backend.Write(csiAltScreenExit)
		}
		c.backend.Write(csiSGR0)

		c.backend.Fini()

		if activeController.Load() == c {
			activeController.Store(nil)
		}
	})
}

// stopSignalWatch closes sigCh and waits for the signal-handling
// goroutine to exit. Safe to call more than once or when no goroutine
// was ever installed.
func (c *Controller) stopSignalWatch() {
	c.stopOnce.Do(func() {
		if c.sigCh != nil {
			close(c.sigCh)
			<-c.sigDone
		}
	})
}

// EmergencyReset writes the same disable sequences Restore does,
// directly to w, and falls back to reopening /dev/tty for the termios
// reset. It is meant for a panic-recovery path that cannot trust the
// controller's own state (a panic mid-Init, or a controller instance
// that was never reachable from the recovering goroutine).
func EmergencyReset(w interface{ Write([]byte) (int, error) }) {
	w.Write(csiMouseMotionOff)
	w.Write(csiMouseDragOff)
	w.Write(csiMouseClickOff)
	w.Write(csiMouseSGROff)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
	resetTerminalMode()
}
