package terminal

// Backend abstracts the raw terminal operations the controller and
// decoder need: entering/leaving raw mode, sizing, and blocking I/O.
type Backend interface {
	Init() error
	Fini()

	Size() (width, height int)

	Write(p []byte) error

	// Read blocks until input is available, stopCh closes, or an error
	// occurs. A nil, nil return means stopCh closed or EOF.
	Read(stopCh <-chan struct{}) ([]byte, error)

	// SetResizeHandler registers a callback invoked on SIGWINCH. The
	// callback must only set a flag; it must not query size or touch
	// the terminal itself (that happens later, outside signal context).
	SetResizeHandler(handler func())
}
