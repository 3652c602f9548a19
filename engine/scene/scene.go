package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-morph/engine/camera"
	"github.com/Carmen-Shannon/oxy-morph/engine/light"
	"github.com/Carmen-Shannon/oxy-morph/engine/renderer"
	"github.com/Carmen-Shannon/oxy-morph/engine/renderer/bind_group_provider"
)

// Scene is an ordered set of components sharing one camera and renderer. Every
// component sees the same Frame; drawing follows insertion order.
// Scenes can be hot-swapped via the Active flag.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is updated and drawn.
	Active() bool

	// SetActive sets whether this scene is updated and drawn.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Light returns the key light shading the scene's meshes.
	Light() light.Light

	// Renderer returns the scene's renderer, or nil when running headless.
	Renderer() renderer.Renderer

	// SetRenderer attaches the renderer GPU resources are created on.
	//
	// Parameters:
	//   - r: the renderer
	SetRenderer(r renderer.Renderer)

	// Add appends components to the draw order.
	//
	// Parameters:
	//   - components: the components to add
	Add(components ...Component)

	// Component returns the first component called name, or nil.
	Component(name string) Component

	// Components returns the components in draw order.
	Components() []Component

	// Count returns the number of elements rendered across every component.
	Count() int

	// Update hands f to every component in order.
	//
	// Parameters:
	//   - f: the frame
	Update(f Frame)

	// Arrived reports whether every component has settled on target.
	Arrived(target float32) bool

	// Prepare uploads the camera uniform and each component's staged buffers,
	// creating GPU resources on first use. Must be called before BeginFrame.
	//
	// Returns:
	//   - error: the joined errors of every component that failed to prepare
	Prepare() error

	// DrawCalls encodes every component's draw call.
	// Must be called within a BeginFrame/EndFrame block on the renderer.
	//
	// Returns:
	//   - error: error if a draw call fails
	DrawCalls() error

	// Release frees every component's GPU resources.
	Release()
}

type scene struct {
	mu *sync.RWMutex

	name       string
	active     bool
	cam        camera.Camera
	light      light.Light
	r          renderer.Renderer
	components []Component

	cameraReady bool
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene viewed through cam. The renderer may be attached
// later; without one the scene updates headless.
//
// Panics if cam is nil.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}

	s := &scene{
		mu:   &sync.RWMutex{},
		name: name,
		cam:  cam,
	}
	for _, option := range options {
		option(s)
	}
	if s.light == nil {
		s.light = light.NewLight()
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Light() light.Light {
	return s.light
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) SetRenderer(r renderer.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r = r
	s.cameraReady = false
}

func (s *scene) Add(components ...Component) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.components = append(s.components, components...)
}

func (s *scene) Component(name string) Component {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.components {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

func (s *scene) Components() []Component {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Component(nil), s.components...)
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, c := range s.components {
		total += c.Count()
	}
	return total
}

func (s *scene) Update(f Frame) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.components {
		c.Update(f)
	}
}

func (s *scene) Arrived(target float32) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.components {
		if !c.Arrived(target) {
			return false
		}
	}
	return true
}

func (s *scene) Prepare() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.r == nil {
		return errors.New("scene: no renderer attached")
	}

	bgp := s.cam.BindGroupProvider()
	lbgp := s.light.BindGroupProvider()
	if !s.cameraReady {
		if err := s.r.InitBindGroup(bgp, cameraLayout()); err != nil {
			return fmt.Errorf("scene %s: camera bind group: %w", s.name, err)
		}
		if err := s.r.InitBindGroup(lbgp, lightLayout()); err != nil {
			return fmt.Errorf("scene %s: light bind group: %w", s.name, err)
		}
		s.cameraReady = true
	}
	u := s.cam.Uniform()
	lu := s.light.Uniform()
	s.r.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: bgp, Index: 0, Data: u.Marshal()},
		{Provider: lbgp, Index: 0, Data: lu.Marshal()},
	})

	var errs []error
	for _, c := range s.components {
		if err := c.Prepare(s.r); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("scene %s: %w", s.name, err)
	}
	return nil
}

func (s *scene) DrawCalls() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.r == nil || !s.cameraReady {
		return nil
	}
	env := Bindings{
		Camera: s.cam.BindGroupProvider(),
		Light:  s.light.BindGroupProvider(),
	}
	for _, c := range s.components {
		if err := c.Draw(s.r, env); err != nil {
			return fmt.Errorf("scene %s: draw %s: %w", s.name, c.Name(), err)
		}
	}
	return nil
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.components {
		c.Release()
	}
	s.cameraReady = false
}
