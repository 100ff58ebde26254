package window

import "testing"

func TestCursorTrackerFirstPositionIsOrigin(t *testing.T) {
	var c cursorTracker
	c.move(400, 300)
	if _, _, moved := c.flush(); moved {
		t.Fatal("first cursor position reported as motion")
	}
}

func TestCursorTrackerSumsDeltas(t *testing.T) {
	var c cursorTracker
	c.move(10, 10)
	c.move(15, 8)
	c.move(12, 20)

	dx, dy, moved := c.flush()
	if !moved || dx != 2 || dy != 10 {
		t.Fatalf("flush() = (%v, %v, %v), want (2, 10, true)", dx, dy, moved)
	}
	if _, _, moved := c.flush(); moved {
		t.Fatal("second flush reported motion")
	}
}

func TestCursorTrackerReset(t *testing.T) {
	var c cursorTracker
	c.move(0, 0)
	c.reset()
	c.move(500, 500)
	if dx, dy, moved := c.flush(); moved {
		t.Fatalf("motion across reset = (%v, %v)", dx, dy)
	}
	c.move(501, 499)
	if dx, dy, _ := c.flush(); dx != 1 || dy != -1 {
		t.Fatalf("flush() = (%v, %v), want (1, -1)", dx, dy)
	}
}

func TestBuilderOptions(t *testing.T) {
	w := &engineWindow{captureCursor: true}
	for _, opt := range []WindowBuilderOption{
		WithTitle("demo"),
		WithWidth(640),
		WithHeight(480),
		WithMinWidth(10),
		WithMinHeight(20),
		WithMaxWidth(1000),
		WithMaxHeight(900),
		WithCursorCapture(false),
	} {
		opt(w)
	}
	if w.title != "demo" || w.Width() != 640 || w.Height() != 480 {
		t.Errorf("title/size = %q %dx%d", w.title, w.Width(), w.Height())
	}
	if w.minWidth != 10 || w.minHeight != 20 || w.maxWidth != 1000 || w.maxHeight != 900 {
		t.Errorf("limits = %d %d %d %d", w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)
	}
	if w.captureCursor {
		t.Error("cursor capture still enabled")
	}
	if w.IsRunning() || w.SurfaceDescriptor() != nil {
		t.Error("unspawned window reports running or a surface")
	}
	if err := w.Close(); err == nil {
		t.Error("Close() on unspawned window succeeded")
	}
}
