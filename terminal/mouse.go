package terminal

// MouseButton identifies which button a mouse report refers to. Several
// revisions of the source disagreed on 0-based vs. 1-based button
// numbering when exposed to handlers; this package picks the low-bit
// convention spec.md settles on and documents it here.
type MouseButton uint8

const (
	MouseBtnNone MouseButton = iota
	MouseBtnLeft
	MouseBtnMiddle
	MouseBtnRight
	MouseBtnBack
	MouseBtnForward
)

func (b MouseButton) String() string {
	switch b {
	case MouseBtnLeft:
		return "Left"
	case MouseBtnMiddle:
		return "Middle"
	case MouseBtnRight:
		return "Right"
	case MouseBtnBack:
		return "Back"
	case MouseBtnForward:
		return "Forward"
	default:
		return "None"
	}
}
