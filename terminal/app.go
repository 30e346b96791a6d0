package terminal

import (
	"github.com/lixenwraith/termengine/terminal/keymap"
)

// App is the single-threaded event loop: it owns the decoder, the
// renderer, and a canvas over the renderer's back buffer, and dispatches
// decoded events to whichever typed handler slots the caller filled in.
type App struct {
	ctrl   *Controller
	screen *Screen
	dec    *decoder
	canvas *Canvas

	quit bool

	width, height int
	queue         []Event
	haveLastMove  bool
	lastMoveX     int
	lastMoveY     int

	onKey         func(KeyEvent)
	onInput       func(InputEvent)
	onMouseButton func(MouseButtonEvent)
	onMouseWheel  func(MouseWheelEvent)
	onMouseMove   func(MouseMoveEvent)
	onResize      func(ResizeEvent)
}

// NewApp acquires the terminal via a new Controller built from opts and
// returns a ready-to-run App. table may be nil to use the built-in
// keymap.
func NewApp(opts Options, table []keymap.Sequence) (*App, error) {
	ctrl := NewController(opts)
	if err := ctrl.Init(); err != nil {
		return nil, err
	}

	colorMode := DetectColorMode()
	a := &App{
		ctrl:   ctrl,
		screen: NewScreen(ctrl.Backend(), colorMode),
		dec:    newDecoder(ctrl.Backend(), table),
	}
	a.canvas = NewCanvas(a.screen)
	return a, nil
}

// Screen returns the renderer application code draws to.
func (a *App) Screen() *Screen { return a.screen }

// Canvas returns the convenience fill layer over the renderer.
func (a *App) Canvas() *Canvas { return a.canvas }

// OnKey registers the handler for KeyEvent.
func (a *App) OnKey(f func(KeyEvent)) { a.onKey = f }

// OnInput registers the handler for InputEvent.
func (a *App) OnInput(f func(InputEvent)) { a.onInput = f }

// OnMouseButton registers the handler for MouseButtonEvent.
func (a *App) OnMouseButton(f func(MouseButtonEvent)) { a.onMouseButton = f }

// OnMouseWheel registers the handler for MouseWheelEvent.
func (a *App) OnMouseWheel(f func(MouseWheelEvent)) { a.onMouseWheel = f }

// OnMouseMove registers the handler for MouseMoveEvent.
func (a *App) OnMouseMove(f func(MouseMoveEvent)) { a.onMouseMove = f }

// OnResize registers the handler for ResizeEvent.
func (a *App) OnResize(f func(ResizeEvent)) { a.onResize = f }

// Quit requests the loop exit after the current iteration finishes.
func (a *App) Quit() { a.quit = true }

// Close restores the terminal. Safe to call more than once.
func (a *App) Close() { a.ctrl.Restore() }

// Run drives the loop until Quit is called or the decoder reports the
// input stream is gone. The first iteration always synthesizes a
// Resize from (0,0) to the real terminal size before anything else
// runs.
func (a *App) Run() error {
	stopCh := make(chan struct{})
	defer close(stopCh)

	pendingInitial := true

	for !a.quit {
		if pendingInitial || a.ctrl.PendingResize() {
			w, h := a.ctrl.Size()
			a.queue = append(a.queue, ResizeEvent{
				Width: w, Height: h,
				OldWidth: a.width, OldHeight: a.height,
			})
			a.screen.SetSize(w, h)
			a.width, a.height = w, h
			pendingInitial = false
		}

		for len(a.queue) > 0 {
			ev := a.queue[0]
			a.queue = a.queue[1:]
			a.dispatch(ev)
		}

		a.screen.Update()

		ev, err := a.dec.wait(stopCh)
		if err != nil {
			return err
		}
		if ev == nil {
			continue
		}

		if mm, ok := ev.(MouseMoveEvent); ok {
			if a.haveLastMove && a.lastMoveX == mm.X && a.lastMoveY == mm.Y {
				continue
			}
			a.haveLastMove = true
			a.lastMoveX, a.lastMoveY = mm.X, mm.Y
		}

		a.dispatch(ev)
	}

	return nil
}

func (a *App) dispatch(ev Event) {
	switch e := ev.(type) {
	case KeyEvent:
		if a.onKey != nil {
			a.onKey(e)
		}
	case InputEvent:
		if a.onInput != nil {
			a.onInput(e)
		}
	case MouseButtonEvent:
		if a.onMouseButton != nil {
			a.onMouseButton(e)
		}
	case MouseWheelEvent:
		if a.onMouseWheel != nil {
			a.onMouseWheel(e)
		}
	case MouseMoveEvent:
		if a.onMouseMove != nil {
			a.onMouseMove(e)
		}
	case ResizeEvent:
		if a.onResize != nil {
			a.onResize(e)
		}
	}
}
