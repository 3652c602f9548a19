// Command morph opens a window on the morphing tree: Space toggles between the
// formed tree and the scattered cloud, the cursor leans the camera.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-morph/config"
	"github.com/Carmen-Shannon/oxy-morph/engine"
	"github.com/Carmen-Shannon/oxy-morph/engine/camera"
	"github.com/Carmen-Shannon/oxy-morph/engine/light"
	"github.com/Carmen-Shannon/oxy-morph/engine/renderer"
	"github.com/Carmen-Shannon/oxy-morph/engine/scene"
	"github.com/Carmen-Shannon/oxy-morph/engine/signal"
	"github.com/Carmen-Shannon/oxy-morph/engine/window"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a JSON scene config")
	seed := flag.Int64("seed", 0, "Random seed (default: config)")
	particles := flag.Int("particles", 0, "Foliage particle count (default: config)")
	width := flag.Int("width", 0, "Window width")
	height := flag.Int("height", 0, "Window height")
	workers := flag.Int("workers", 0, "Worker goroutines for generation (default: NumCPU-1)")
	vsync := flag.Bool("vsync", false, "Wait for vertical blank")
	profile := flag.Bool("profile", false, "Log FPS and memory once a second")
	fps := flag.Float64("fps", 0, "Frame rate cap (0 = uncapped)")
	formed := flag.Bool("formed", false, "Start in the formed state")

	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		log.Printf("[Config] loaded %s", *configFile)
	}

	// CLI flags given explicitly override the config file, zero values included
	var overrides config.Flags
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			overrides.Seed = seed
		case "particles":
			overrides.Particles = particles
		case "width":
			overrides.Width = width
		case "height":
			overrides.Height = height
		case "workers":
			overrides.Workers = workers
		case "vsync":
			overrides.VSync = vsync
		case "profile":
			overrides.Profile = profile
		}
	})
	cfg.Resolve(overrides)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config:\n%v\n", err)
		os.Exit(1)
	}

	pool := worker.NewDynamicWorkerPool(cfg.Workers, 256, time.Second)
	defer pool.Stop()

	initial := signal.StateScattered
	if *formed {
		initial = signal.StateFormed
	}

	// ── Engine + Window ─────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithProfiling(cfg.Profiling.Enabled),
		engine.WithRenderFrameLimit(*fps),
		engine.WithSignal(signal.NewSource(initial)),
		engine.WithWindow(window.NewWindow(
			window.WithTitle(cfg.Window.Title),
			window.WithSize(cfg.Window.Width, cfg.Window.Height),
		)),
	)

	// ── Renderer ────────────────────────────────────────────────────────
	r := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		eng.Window(),
		renderer.WithPresentMode(renderer.PresentModeFor(cfg.Window.VSync)),
		renderer.WithMSAA(renderer.MSAAFor(cfg.Window.MSAA)),
	)
	defer r.Release()

	// ── Camera ──────────────────────────────────────────────────────────
	cam := camera.NewCamera(
		camera.WithFov(float32(45.0*math.Pi/180.0)),
		camera.WithAspect(float32(eng.Window().Width())/float32(eng.Window().Height())),
		camera.WithController(camera.NewCameraController(
			camera.WithTarget(scene.Center(cfg.Tree)),
			camera.WithRadius(cfg.Camera.Radius),
			camera.WithElevation(cfg.Camera.Elevation),
			camera.WithAutoRotate(cfg.Camera.AutoRotate),
			camera.WithHandRange(cfg.Camera.HandAzimuth, cfg.Camera.HandElevation),
			camera.WithHandRate(cfg.Camera.HandRate),
		)),
	)

	// ── Scene ───────────────────────────────────────────────────────────
	sc := scene.NewScene("tree", cam,
		scene.WithActive(true),
		scene.WithRenderer(r),
		scene.WithLight(light.NewLight(
			light.WithDirection(cfg.Light.Direction),
			light.WithColor(cfg.Light.Color),
			light.WithIntensity(cfg.Light.Intensity),
			light.WithAmbient(cfg.Light.Ambient),
		)),
		scene.WithComponents(scene.Compose(cfg, pool)...),
	)
	defer sc.Release()
	eng.AddScene(0, sc)

	log.Printf("[Engine] %d elements; Space toggles, F/S form/scatter, R resets camera, H hand, P profiler", sc.Count())
	eng.Run()
}
