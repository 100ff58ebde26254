package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetKeyCallback sets the callback for key transitions. Escape is handled by the window
	// itself and never forwarded.
	//
	// Parameters:
	//   - callback: function receiving the GLFW key code and true on press or repeat, false on release
	SetKeyCallback(callback func(keyCode int, pressed bool))

	// SetMouseMotionCallback sets the callback for relative mouse motion. Deltas from all cursor
	// events of one message loop iteration are summed and delivered once, before the update callback.
	//
	// Parameters:
	//   - callback: function receiving the horizontal and vertical movement in pixels
	SetMouseMotionCallback(callback func(dx, dy float64))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// RequestClose asks the message loop to stop after the current iteration.
	RequestClose()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height track the framebuffer, not the window, size.
	width  int
	height int

	// captureCursor hides and grabs the cursor so motion is unbounded.
	captureCursor bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	cursor cursorTracker

	onUpdate      func()
	onResize      func(width, height int)
	onKey         func(keyCode int, pressed bool)
	onMouseMotion func(dx, dy float64)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order. Must be called from the main goroutine.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
//   - error: an error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:         "flycam",
		maxWidth:      3840,
		maxHeight:     2160,
		minWidth:      320,
		minHeight:     200,
		width:         1280,
		height:        720,
		captureCursor: true,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetKeyCallback(callback func(keyCode int, pressed bool)) {
	w.onKey = callback
}

func (w *engineWindow) SetMouseMotionCallback(callback func(dx, dy float64)) {
	w.onMouseMotion = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if dx, dy, moved := w.cursor.flush(); moved && w.onMouseMotion != nil {
			w.onMouseMotion(dx, dy)
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// cursorTracker turns absolute cursor positions into summed relative motion.
// The first position after creation or reset only establishes the origin.
type cursorTracker struct {
	lastX, lastY float64
	hasLast      bool
	pendX, pendY float64
}

// move records a cursor position and accumulates the delta from the previous one.
func (c *cursorTracker) move(x, y float64) {
	if c.hasLast {
		c.pendX += x - c.lastX
		c.pendY += y - c.lastY
	}
	c.lastX, c.lastY = x, y
	c.hasLast = true
}

// flush returns and clears the accumulated motion. moved is false when nothing moved.
func (c *cursorTracker) flush() (dx, dy float64, moved bool) {
	dx, dy = c.pendX, c.pendY
	c.pendX, c.pendY = 0, 0
	return dx, dy, dx != 0 || dy != 0
}

// reset forgets the last position, e.g. after the cursor mode changes and GLFW re-centers it.
func (c *cursorTracker) reset() {
	c.hasLast = false
}
