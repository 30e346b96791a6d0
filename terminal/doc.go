// Package terminal is a terminal user-interface engine: it turns a
// VT-style terminal into an addressable grid of styled character cells,
// renders to it incrementally with minimal output, and decodes keyboard
// and mouse input into structured events.
//
// It bypasses terminfo/termcap entirely and emits direct ANSI/xterm
// escape sequences. Target environments are Linux, macOS, and BSDs with
// xterm-compatible terminals; non-TTY output is rejected rather than
// emulated.
package terminal
