package camera

// CameraController defines the interface for first-person fly controls.
// A controller turns key and mouse input into movement impulses and rotation deltas, and applies
// them to a Camera once per update.
type CameraController interface {
	// HandleKeyboard records a key transition. W/S/A/D set the forward/backward/left/right
	// impulse to 1 on press and 0 on release. Other keys are ignored.
	//
	// Parameters:
	//   - keyCode: the GLFW key code
	//   - pressed: true on press or repeat, false on release
	//
	// Returns:
	//   - bool: true if the key is bound to a movement impulse
	HandleKeyboard(keyCode int, pressed bool) bool

	// HandleMouseMotion stores the latest raw mouse delta. Only the last delta before
	// an update is applied.
	//
	// Parameters:
	//   - dx: horizontal delta in device units
	//   - dy: vertical delta in device units
	HandleMouseMotion(dx, dy float64)

	// UpdateCamera moves and turns the camera by the stored input over dt seconds, then
	// clears the mouse delta.
	//
	// Parameters:
	//   - cam: the camera to update
	//   - dt: elapsed seconds since the previous update
	UpdateCamera(cam Camera, dt float32)

	// Speed returns the movement speed in world units per second.
	//
	// Returns:
	//   - float32: the speed
	Speed() float32

	// Sensitivity returns the rotation factor applied to mouse deltas.
	//
	// Returns:
	//   - float32: the sensitivity
	Sensitivity() float32
}
