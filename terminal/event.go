package terminal

// Event is the tagged union the decoder and application loop exchange.
// Each concrete type is one variant; switch on the concrete type rather
// than on a discriminant field.
type Event interface {
	isEvent()
}

// KeyEvent is a named key: arrows, function keys, navigation keys,
// Escape/Enter/Tab/Backspace, and the bare letters A-Z when bound
// through a keymap record rather than typed as text. Rune is only
// meaningful when Key is KeyRune, which the decoder uses for a
// printable character typed with a modifier (e.g. Alt+a) — ordinary,
// unmodified text arrives as InputEvent instead.
type KeyEvent struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// InputEvent is a single Unicode scalar value the user typed as text.
type InputEvent struct {
	Codepoint rune
}

// MouseButtonEvent reports a button press or release.
type MouseButtonEvent struct {
	Button    MouseButton
	Pressed   bool
	X, Y      int
	Modifiers Modifier
}

// MouseWheelEvent reports a scroll tick. Delta is +1 (up) or -1 (down).
type MouseWheelEvent struct {
	Delta     int
	X, Y      int
	Modifiers Modifier
}

// MouseMoveEvent reports cursor motion with no button held. The
// application loop suppresses consecutive moves that repeat the same
// (X, Y); the decoder itself does not.
type MouseMoveEvent struct {
	X, Y      int
	Modifiers Modifier
}

// ResizeEvent reports a terminal dimension change. OldWidth/OldHeight
// are the dimensions in effect immediately before this event.
type ResizeEvent struct {
	Width, Height       int
	OldWidth, OldHeight int
}

func (KeyEvent) isEvent()         {}
func (InputEvent) isEvent()       {}
func (MouseButtonEvent) isEvent() {}
func (MouseWheelEvent) isEvent()  {}
func (MouseMoveEvent) isEvent()   {}
func (ResizeEvent) isEvent()      {}
