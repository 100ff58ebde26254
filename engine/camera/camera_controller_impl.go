package camera

import (
	"sync"

	"github.com/Carmen-Shannon/flycam/common"
)

type cameraControllerImpl struct {
	mu *sync.Mutex

	amountForward  float32
	amountBackward float32
	amountLeft     float32
	amountRight    float32

	rotateHorizontal float32
	rotateVertical   float32

	speed       float32
	sensitivity float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller with speed 2.5 and sensitivity 1.0.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:          &sync.Mutex{},
		speed:       2.5,
		sensitivity: 1.0,
	}
	for _, opt := range options {
		opt(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) HandleKeyboard(keyCode int, pressed bool) bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	var amount float32
	if pressed {
		amount = 1
	}
	switch keyCode {
	case common.KeyW:
		cc.amountForward = amount
	case common.KeyS:
		cc.amountBackward = amount
	case common.KeyA:
		cc.amountLeft = amount
	case common.KeyD:
		cc.amountRight = amount
	default:
		return false
	}
	return true
}

func (cc *cameraControllerImpl) HandleMouseMotion(dx, dy float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.rotateHorizontal = float32(dx)
	cc.rotateVertical = float32(dy)
}

func (cc *cameraControllerImpl) UpdateCamera(cam Camera, dt float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	pos := cam.Position()
	pos = pos.Add(cam.Front().Mul((cc.amountForward - cc.amountBackward) * cc.speed * dt))
	pos = pos.Add(cam.Right().Mul((cc.amountRight - cc.amountLeft) * cc.speed * dt))
	cam.SetPosition(pos)

	yaw := cam.Yaw() + cc.rotateHorizontal*cc.sensitivity*dt
	pitch := cam.Pitch() - cc.rotateVertical*cc.sensitivity*dt
	cam.SetOrientation(yaw, pitch)

	cc.rotateHorizontal = 0
	cc.rotateVertical = 0
}

func (cc *cameraControllerImpl) Speed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.speed
}

func (cc *cameraControllerImpl) Sensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.sensitivity
}
