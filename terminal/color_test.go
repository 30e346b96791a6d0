package terminal

import "testing"

func TestColorFromRGBRoundTrip(t *testing.T) {
	cases := []RGB{
		{0, 0, 0},
		{255, 255, 255},
		{10, 200, 30},
	}
	for _, rgb := range cases {
		c := ColorFromRGB(rgb)
		got, ok := c.RGB()
		if !ok {
			t.Fatalf("RGB() ok = false for %+v", rgb)
		}
		if !got.Equal(rgb) {
			t.Fatalf("round trip %+v -> %+v", rgb, got)
		}
	}
}

func TestColorSentinelsNotRGB(t *testing.T) {
	if _, ok := ColorDefault.RGB(); ok {
		t.Fatal("ColorDefault should not decode as RGB")
	}
	if _, ok := ColorUnchanged.RGB(); ok {
		t.Fatal("ColorUnchanged should not decode as RGB")
	}
	if !ColorDefault.IsDefault() {
		t.Fatal("IsDefault false for ColorDefault")
	}
	if !ColorUnchanged.IsUnchanged() {
		t.Fatal("IsUnchanged false for ColorUnchanged")
	}
}

func TestRGBTo256Extremes(t *testing.T) {
	if idx := RGBTo256(RGB{0, 0, 0}); idx != 16 {
		t.Fatalf("black -> %d, want 16", idx)
	}
	if idx := RGBTo256(RGB{255, 255, 255}); idx != 231 {
		t.Fatalf("white -> %d, want 231", idx)
	}
}

func TestDetectColorModeTrueColorFromColorterm(t *testing.T) {
	t.Setenv("COLORTERM", "truecolor")
	t.Setenv("TERM", "xterm")
	t.Setenv("KITTY_WINDOW_ID", "")
	t.Setenv("KONSOLE_VERSION", "")
	t.Setenv("ITERM_SESSION_ID", "")
	t.Setenv("ALACRITTY_WINDOW_ID", "")
	t.Setenv("ALACRITTY_LOG", "")
	t.Setenv("WEZTERM_PANE", "")

	if mode := DetectColorMode(); mode != ColorModeTrueColor {
		t.Fatalf("got %v, want ColorModeTrueColor", mode)
	}
}

func TestDetectColorModeDefaultsTo256(t *testing.T) {
	t.Setenv("COLORTERM", "")
	t.Setenv("TERM", "xterm")
	t.Setenv("KITTY_WINDOW_ID", "")
	t.Setenv("KONSOLE_VERSION", "")
	t.Setenv("ITERM_SESSION_ID", "")
	t.Setenv("ALACRITTY_WINDOW_ID", "")
	t.Setenv("ALACRITTY_LOG", "")
	t.Setenv("WEZTERM_PANE", "")

	if mode := DetectColorMode(); mode != ColorMode256 {
		t.Fatalf("got %v, want ColorMode256", mode)
	}
}
