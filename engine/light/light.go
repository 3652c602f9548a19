package light

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-morph/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
)

var lightCount atomic.Uint64

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu *sync.Mutex

	direction mgl32.Vec3
	color     mgl32.Vec3
	intensity float32
	ambient   mgl32.Vec3

	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Light is the directional key light of a scene together with its ambient term.
// Lit mesh programs read it from a single uniform block each frame; particle
// programs are emissive and ignore it.
type Light interface {
	// Direction returns the normalized direction the light travels.
	Direction() mgl32.Vec3

	// Color returns the light's RGB color.
	Color() mgl32.Vec3

	// Intensity returns the scalar multiplier applied to Color.
	Intensity() float32

	// Ambient returns the RGB light added regardless of orientation.
	Ambient() mgl32.Vec3

	// SetDirection sets the direction the light travels. Zero vectors are ignored.
	//
	// Parameters:
	//   - d: the direction, normalized on store
	SetDirection(d mgl32.Vec3)

	// SetColor sets the light's RGB color.
	SetColor(c mgl32.Vec3)

	// SetIntensity sets the scalar multiplier. Negative values clamp to 0.
	SetIntensity(intensity float32)

	// SetAmbient sets the ambient RGB term.
	SetAmbient(c mgl32.Vec3)

	// Uniform packs the light for upload.
	//
	// Returns:
	//   - GPULightUniform: the uniform block
	Uniform() GPULightUniform

	// BindGroupProvider returns the light's bind group provider for GPU resources.
	BindGroupProvider() bind_group_provider.BindGroupProvider
}

var _ Light = &lightImpl{}

// NewLight creates a cool moonlit key light from above with any provided options
// applied.
//
// Parameters:
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(opts ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:        &sync.Mutex{},
		direction: mgl32.Vec3{-0.4, -0.9, -0.3}.Normalize(),
		color:     mgl32.Vec3{1, 0.95, 0.88},
		intensity: 1,
		ambient:   mgl32.Vec3{0.12, 0.14, 0.2},
		bindGroupProvider: bind_group_provider.NewBindGroupProvider(
			"light_" + strconv.FormatUint(lightCount.Add(1), 10),
		),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.direction
}

func (l *lightImpl) Color() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intensity
}

func (l *lightImpl) Ambient() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ambient
}

func (l *lightImpl) SetDirection(d mgl32.Vec3) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setDirection(d)
}

func (l *lightImpl) setDirection(d mgl32.Vec3) {
	if d.Len() == 0 {
		return
	}
	l.direction = d.Normalize()
}

func (l *lightImpl) SetColor(c mgl32.Vec3) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = c
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.intensity = max(intensity, 0)
}

func (l *lightImpl) SetAmbient(c mgl32.Vec3) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ambient = c
}

func (l *lightImpl) Uniform() GPULightUniform {
	l.mu.Lock()
	defer l.mu.Unlock()
	return GPULightUniform{
		Direction: l.direction,
		Intensity: l.intensity,
		Color:     l.color,
		Ambient:   l.ambient,
	}
}

func (l *lightImpl) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return l.bindGroupProvider
}
