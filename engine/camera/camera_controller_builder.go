package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithSpeed sets the movement speed.
//
// Parameters:
//   - speed: world units per second
//
// Returns:
//   - CameraControllerOption: functional option to set the speed
func WithSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.speed = speed
	}
}

// WithSensitivity sets the mouse rotation factor.
//
// Parameters:
//   - sensitivity: radians per device unit per second
//
// Returns:
//   - CameraControllerOption: functional option to set the sensitivity
func WithSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.sensitivity = sensitivity
	}
}
