package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-morph/common"
	"github.com/Carmen-Shannon/oxy-morph/engine/signal"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type orbit struct {
	radius, azimuth, elevation float32
}

type cameraControllerImpl struct {
	mu *sync.Mutex

	target   mgl32.Vec3
	position mgl32.Vec3

	radius    float32
	azimuth   float32
	elevation float32

	minRadius, maxRadius       float32
	minElevation, maxElevation float32

	autoRotate float32

	handAzimuth   float32
	handElevation float32
	handRate      float32
	biasAzimuth   float32
	biasElevation float32

	home          orbit
	resetFrom     orbit
	resetTween    *gween.Tween
	resetDuration float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates an orbit controller.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},

		radius:    28,
		elevation: 0.2,

		minRadius:    8,
		maxRadius:    80,
		minElevation: -0.3,
		maxElevation: math32.Pi/2 - 0.1,

		autoRotate: 0.1,

		handAzimuth:   0.8,
		handElevation: 0.4,
		handRate:      3,

		resetDuration: 1.2,
	}
	for _, option := range options {
		option(cc)
	}
	cc.elevation = common.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)
	cc.home = orbit{radius: cc.radius, azimuth: cc.azimuth, elevation: cc.elevation}

	cc.updatePosition()
	return cc
}

func (cc *cameraControllerImpl) Update(dt float32, hand signal.Hand) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if cc.resetTween != nil {
		t, done := cc.resetTween.Update(dt)
		cc.radius = common.Lerp(cc.resetFrom.radius, cc.home.radius, t)
		cc.azimuth = common.Lerp(cc.resetFrom.azimuth, cc.home.azimuth, t)
		cc.elevation = common.Lerp(cc.resetFrom.elevation, cc.home.elevation, t)
		if done {
			cc.resetTween = nil
		}
	} else {
		cc.azimuth += cc.autoRotate * dt
	}

	var goalAzimuth, goalElevation float32
	if hand.Active {
		goalAzimuth = hand.X * cc.handAzimuth
		goalElevation = hand.Y * cc.handElevation
	}
	cc.biasAzimuth = common.Damp(cc.biasAzimuth, goalAzimuth, cc.handRate, dt)
	cc.biasElevation = common.Damp(cc.biasElevation, goalElevation, cc.handRate, dt)

	cc.updatePosition()
}

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) Target() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth + cc.biasAzimuth
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.effectiveElevation()
}

func (cc *cameraControllerImpl) HandBias() (float32, float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.biasAzimuth, cc.biasElevation
}

func (cc *cameraControllerImpl) Orbit(deltaAzimuth, deltaElevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.resetTween = nil
	cc.azimuth += deltaAzimuth
	cc.elevation = common.Clamp(cc.elevation+deltaElevation, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.resetTween = nil
	cc.radius = common.Clamp(cc.radius+delta, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) SetAutoRotate(speed float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.autoRotate = speed
}

func (cc *cameraControllerImpl) Reset() {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	// unwind whole turns so the glide takes the short way home
	turn := 2 * math32.Pi
	az := cc.azimuth - turn*math32.Floor((cc.azimuth-cc.home.azimuth)/turn+0.5)

	cc.resetFrom = orbit{radius: cc.radius, azimuth: az, elevation: cc.elevation}
	cc.resetTween = gween.New(0, 1, cc.resetDuration, ease.OutCubic)
}

func (cc *cameraControllerImpl) Resetting() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.resetTween != nil
}

// --- internal helpers ---

// effectiveElevation is the base elevation plus hand bias, clamped.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) effectiveElevation() float32 {
	return common.Clamp(cc.elevation+cc.biasElevation, cc.minElevation, cc.maxElevation)
}

// updatePosition recomputes the eye from spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	sinElev, cosElev := math32.Sincos(cc.effectiveElevation())
	sinAzim, cosAzim := math32.Sincos(cc.azimuth + cc.biasAzimuth)

	cc.position = cc.target.Add(mgl32.Vec3{
		cc.radius * cosElev * sinAzim,
		cc.radius * sinElev,
		cc.radius * cosElev * cosAzim,
	})
}
