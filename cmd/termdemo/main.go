// Command termdemo exercises the terminal package end to end: raw mode
// acquisition, a gradient-filled canvas, text rendering, and the full
// input event surface (keys, runes, mouse buttons, wheel, motion,
// resize).
package main

import (
	"fmt"
	"os"

	"github.com/lixenwraith/termengine/terminal"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintln(os.Stderr, "termdemo: panic:", r)
			os.Exit(1)
		}
	}()

	app, err := terminal.NewApp(terminal.Fullscreen|terminal.HideCursor|terminal.MouseEvents, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "termdemo:", err)
		os.Exit(1)
	}
	defer app.Close()

	gradient := terminal.NewLinearGradient(
		terminal.ColorFromRGB(terminal.RGB{R: 20, G: 30, B: 90}),
		terminal.ColorFromRGB(terminal.RGB{R: 200, G: 60, B: 120}),
	)

	status := "press q or Ctrl-C to quit, move the mouse, scroll, resize"
	mouseX, mouseY := -1, -1

	render := func() {
		w, h := app.Screen().Width(), app.Screen().Height()
		app.Canvas().FillSampler(terminal.Rect{X: 0, Y: 0, W: w, H: h}, gradient.Sample, 45)
		app.Screen().Print(1, 0, fmt.Sprintf("termdemo  %dx%d", w, h), terminal.ColorFromRGB(terminal.RGB{R: 255, G: 255, B: 255}), terminal.ColorUnchanged, terminal.StyleBold)
		app.Screen().Print(1, 1, status, terminal.ColorFromRGB(terminal.RGB{R: 220, G: 220, B: 220}), terminal.ColorUnchanged, terminal.StyleNone)
		if mouseX >= 0 {
			app.Screen().Print(1, 2, fmt.Sprintf("mouse at %d,%d", mouseX, mouseY), terminal.ColorFromRGB(terminal.RGB{R: 255, G: 220, B: 120}), terminal.ColorUnchanged, terminal.StyleNone)
		}
	}

	app.OnResize(func(e terminal.ResizeEvent) {
		render()
	})

	app.OnKey(func(e terminal.KeyEvent) {
		if e.Key == terminal.KeyCtrlC || e.Key == terminal.KeyEscape {
			app.Quit()
		}
		render()
	})

	app.OnInput(func(e terminal.InputEvent) {
		if e.Codepoint == 'q' {
			app.Quit()
			return
		}
		render()
	})

	app.OnMouseButton(func(e terminal.MouseButtonEvent) {
		mouseX, mouseY = e.X, e.Y
		status = fmt.Sprintf("button %v pressed=%v at %d,%d", e.Button, e.Pressed, e.X, e.Y)
		render()
	})

	app.OnMouseWheel(func(e terminal.MouseWheelEvent) {
		status = fmt.Sprintf("wheel delta=%d at %d,%d", e.Delta, e.X, e.Y)
		render()
	})

	app.OnMouseMove(func(e terminal.MouseMoveEvent) {
		mouseX, mouseY = e.X, e.Y
		render()
	})

	render()

	if err := app.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "termdemo:", err)
		os.Exit(1)
	}
}
