package engine

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-morph/common"
	"github.com/Carmen-Shannon/oxy-morph/engine/profiler"
	"github.com/Carmen-Shannon/oxy-morph/engine/scene"
	"github.com/Carmen-Shannon/oxy-morph/engine/signal"
	"github.com/Carmen-Shannon/oxy-morph/engine/window"
)

// DefaultMaxDeltaTime caps a single frame's delta so a stall (window drag, debugger
// pause) does not teleport every population in one step.
const DefaultMaxDeltaTime = 0.1

// engine implements the Engine interface.
// Update and render run back to back on the window's thread.
type engine struct {
	mu *sync.Mutex

	running  bool
	quitOnce sync.Once

	window window.Window
	signal signal.Source

	handEnabled bool

	profiler         *profiler.Profiler
	profilingEnabled bool

	elapsed      float32
	maxDeltaTime float32
	lastFrame    time.Time
	tickCallback func(f scene.Frame)

	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It owns the signal source, steps every active scene once per frame and renders them.
type Engine interface {
	// Window returns the underlying window, or nil when running headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Signal returns the source producers write the formed/scattered state and hand to.
	//
	// Returns:
	//   - signal.Source: the engine's signal source
	Signal() signal.Source

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// ToggleProfiler flips performance profiling output.
	ToggleProfiler()

	// SetTickCallback registers a function called after each Step with the frame
	// the scenes observed.
	//
	// Parameters:
	//   - callback: function to call each frame
	SetTickCallback(callback func(f scene.Frame))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// Scenes are updated and rendered in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining render order (lower renders first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Step advances every active scene by one frame without rendering. The signal is
	// snapshotted once, so every component in every scene sees the same state, hand
	// and clock. dt is clamped to [0, max delta].
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	//
	// Returns:
	//   - scene.Frame: the frame handed to the last updated scene
	Step(dt float32) scene.Frame

	// Render prepares and draws every active scene into one render pass.
	//
	// Returns:
	//   - error: error if a scene failed to prepare or draw
	Render() error

	// Elapsed returns the accumulated frame time in seconds.
	Elapsed() float32

	// Run drives Step and Render from the window's message loop and blocks until
	// the window closes or Quit is called.
	Run()

	// Quit stops the loop and closes the window.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options. When a window
// is supplied, its input is wired to the signal source and the scene cameras:
//
//   - Space toggles the state, F forms, S scatters
//   - R glides the cameras home, P toggles the profiler, H toggles hand tracking
//   - the cursor drives the hand, dragging orbits and scrolling zooms
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:           &sync.Mutex{},
		signal:       signal.NewSource(signal.StateScattered),
		handEnabled:  true,
		scenes:       make(map[int]scene.Scene),
		profiler:     profiler.NewProfiler(),
		maxDeltaTime: DefaultMaxDeltaTime,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.bindInput()
	}

	return e
}

// bindInput routes window callbacks to the signal source and scene cameras.
func (e *engine) bindInput() {
	e.window.SetResizeCallback(func(width, height int) {
		for _, s := range e.activeScenes() {
			if r := s.Renderer(); r != nil {
				r.Resize(width, height)
			}
			if height > 0 {
				s.Camera().SetAspect(float32(width) / float32(height))
			}
		}
	})

	e.window.SetKeyDownCallback(func(keyCode uint32) {
		switch keyCode {
		case common.KeySpace:
			log.Printf("[Engine] state -> %s", e.signal.Toggle())
		case common.KeyF:
			e.signal.SetState(signal.StateFormed)
		case common.KeyS:
			e.signal.SetState(signal.StateScattered)
		case common.KeyR:
			for _, s := range e.activeScenes() {
				if cc := s.Camera().Controller(); cc != nil {
					cc.Reset()
				}
			}
		case common.KeyP:
			e.ToggleProfiler()
		case common.KeyH:
			e.handEnabled = !e.handEnabled
			if !e.handEnabled {
				e.signal.SetHand(signal.Hand{})
			}
			log.Printf("[Engine] hand tracking %v", e.handEnabled)
		}
	})

	e.window.SetHandCallback(func(hand signal.Hand) {
		if e.handEnabled {
			e.signal.SetHand(hand)
		}
	})

	e.window.SetDragCallback(func(dx, dy float32) {
		for _, s := range e.activeScenes() {
			if cc := s.Camera().Controller(); cc != nil {
				cc.Orbit(-dx*dragSensitivity, dy*dragSensitivity)
			}
		}
	})

	e.window.SetScrollCallback(func(delta float32) {
		for _, s := range e.activeScenes() {
			if cc := s.Camera().Controller(); cc != nil {
				cc.Zoom(-delta)
			}
		}
	})
}

// dragSensitivity converts cursor pixels to radians.
const dragSensitivity = 0.005

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Signal() signal.Source {
	return e.signal
}

// activeScenes returns the active scenes in ascending z-index order.
func (e *engine) activeScenes() []scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()

	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	active := make([]scene.Scene, 0, len(keys))
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			active = append(active, s)
		}
	}
	return active
}

func (e *engine) Step(dt float32) scene.Frame {
	if !(dt > 0) {
		dt = 0
	}
	dt = min(dt, e.maxDeltaTime)

	e.mu.Lock()
	e.elapsed += dt
	elapsed := e.elapsed
	e.mu.Unlock()

	snap := e.signal.Snapshot()
	frame := scene.Frame{DT: dt, Elapsed: elapsed, Signal: snap}
	for _, s := range e.activeScenes() {
		cam := s.Camera()
		cam.Update(dt, snap.Hand)
		frame.Eye = cam.Position()
		s.Update(frame)
	}

	if e.tickCallback != nil {
		e.tickCallback(frame)
	}
	return frame
}

func (e *engine) Render() error {
	active := e.activeScenes()
	if len(active) == 0 {
		return nil
	}

	// The first active scene's renderer owns the frame; every scene draws into its pass.
	frameRenderer := active[0].Renderer()
	if frameRenderer == nil {
		return nil
	}

	for _, s := range active {
		if err := s.Prepare(); err != nil {
			return err
		}
	}

	if err := frameRenderer.BeginFrame(); err != nil {
		// Surface loss during resize is transient; skip the frame.
		return nil
	}
	var drawErr error
	for _, s := range active {
		if err := s.DrawCalls(); err != nil {
			drawErr = err
			break
		}
	}
	frameRenderer.EndFrame()
	frameRenderer.Present()
	return drawErr
}

func (e *engine) Elapsed() float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.elapsed
}

// frame is the window update callback: one Step, one Render, then profiling and
// frame limiting.
func (e *engine) frame() {
	if !e.running {
		return
	}

	now := time.Now()
	dt := float32(now.Sub(e.lastFrame).Seconds())
	e.lastFrame = now

	e.Step(dt)
	if err := e.Render(); err != nil {
		log.Printf("[Engine] render failed: %v", err)
		e.Quit()
		return
	}

	if e.profilingEnabled && e.profiler != nil {
		count := 0
		for _, s := range e.activeScenes() {
			count += s.Count()
		}
		e.profiler.Tick(count)
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

func (e *engine) Run() {
	if e.window == nil {
		log.Printf("[Engine] Run requires a window")
		return
	}

	e.running = true
	e.lastFrame = time.Now()
	e.window.SetUpdateCallback(e.frame)
	log.Printf("[Engine] running %d scene(s)", len(e.Scenes()))
	e.window.ProcessMessages()
	e.Quit()
}

// Quit stops the loop and closes the window.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.running = false
		if e.window != nil && e.window.IsRunning() {
			if err := e.window.Close(); err != nil {
				log.Printf("[Engine] close window: %v", err)
			}
		}
		log.Printf("[Engine] stopped after %.1fs", e.Elapsed())
	})
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) ToggleProfiler() {
	e.profilingEnabled = !e.profilingEnabled
}

func (e *engine) SetTickCallback(callback func(f scene.Frame)) {
	e.tickCallback = callback
}

// SetRenderFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}
