package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
)

// Config holds the population and presentation settings of the demo. Every
// population reads its seed from Seed so one value reproduces the whole scene.
type Config struct {
	Seed    int64 `json:"seed"`
	Workers int   `json:"workers"`

	Window    WindowConfig    `json:"window"`
	Tree      TreeConfig      `json:"tree"`
	Foliage   FoliageConfig   `json:"foliage"`
	Haze      HazeConfig      `json:"haze"`
	Ornaments ElementConfig   `json:"ornaments"`
	Gifts     ElementConfig   `json:"gifts"`
	Photos    PhotoConfig     `json:"photos"`
	Emblem    EmblemConfig    `json:"emblem"`
	Snow      SnowConfig      `json:"snow"`
	Camera    CameraConfig    `json:"camera"`
	Light     LightConfig     `json:"light"`
	Profiling ProfilingConfig `json:"profiling"`
}

// WindowConfig holds window and presentation settings.
type WindowConfig struct {
	Title  string `json:"title"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	VSync  bool   `json:"vsync"`
	MSAA   int    `json:"msaa"`
}

// TreeConfig is the silhouette shared by foliage, ornaments and photos.
type TreeConfig struct {
	Height   float32 `json:"height"`
	Radius   float32 `json:"radius"`
	Exponent float32 `json:"exponent"`
	FloorY   float32 `json:"floor_y"`
}

// FoliageConfig configures the large GPU-evaluated particle population.
type FoliageConfig struct {
	Count         int     `json:"count"`
	Rate          float32 `json:"rate"`
	ScatterRadius float32 `json:"scatter_radius"`
	SizeMin       float32 `json:"size_min"`
	SizeMax       float32 `json:"size_max"`

	AccentProbability float32      `json:"accent_probability"`
	AccentSizeMin     float32      `json:"accent_size_min"`
	AccentSizeMax     float32      `json:"accent_size_max"`
	Palette           []mgl32.Vec3 `json:"palette"`
	AccentPalette     []mgl32.Vec3 `json:"accent_palette"`

	DriftSpeed     float32 `json:"drift_speed"`
	DriftAmplitude float32 `json:"drift_amplitude"`
	Twinkle        float32 `json:"twinkle"`
}

// HazeConfig configures the soft background particle cloud.
type HazeConfig struct {
	Count         int          `json:"count"`
	Rate          float32      `json:"rate"`
	Radius        float32      `json:"radius"`
	ScatterRadius float32      `json:"scatter_radius"`
	SizeMin       float32      `json:"size_min"`
	SizeMax       float32      `json:"size_max"`
	Palette       []mgl32.Vec3 `json:"palette"`
}

// ElementConfig configures a CPU-updated population of meshes.
type ElementConfig struct {
	Count         int          `json:"count"`
	Rate          float32      `json:"rate"`
	ScatterRadius float32      `json:"scatter_radius"`
	ScaleMin      float32      `json:"scale_min"`
	ScaleMax      float32      `json:"scale_max"`
	Palette       []mgl32.Vec3 `json:"palette"`

	// Radius is the mound radius for gifts; unused by tree populations.
	Radius float32 `json:"radius"`
}

// PhotoConfig configures the photo frame population. Count slots are reserved and
// the first Active are shown.
type PhotoConfig struct {
	ElementConfig
	Active int     `json:"active"`
	Tilt   float32 `json:"tilt"`
}

// EmblemConfig configures the single top element.
type EmblemConfig struct {
	Rate  float32    `json:"rate"`
	Color mgl32.Vec3 `json:"color"`
	Size  float32    `json:"size"`
}

// SnowConfig configures the ambient snowfall.
type SnowConfig struct {
	Count        int        `json:"count"`
	HalfExtent   float32    `json:"half_extent"`
	Top          float32    `json:"top"`
	Bottom       float32    `json:"bottom"`
	SpeedMin     float32    `json:"speed_min"`
	SpeedMax     float32    `json:"speed_max"`
	SizeMin      float32    `json:"size_min"`
	SizeMax      float32    `json:"size_max"`
	Wind         mgl32.Vec2 `json:"wind"`
	WindStrength float32    `json:"wind_strength"`
	Sway         float32    `json:"sway"`
}

// CameraConfig configures the orbit rig.
type CameraConfig struct {
	Radius        float32 `json:"radius"`
	Elevation     float32 `json:"elevation"`
	AutoRotate    float32 `json:"auto_rotate"`
	HandAzimuth   float32 `json:"hand_azimuth"`
	HandElevation float32 `json:"hand_elevation"`
	HandRate      float32 `json:"hand_rate"`
}

// LightConfig is the key light shading the ornaments, gifts, photos and star.
type LightConfig struct {
	Direction mgl32.Vec3 `json:"direction"`
	Color     mgl32.Vec3 `json:"color"`
	Intensity float32    `json:"intensity"`
	Ambient   mgl32.Vec3 `json:"ambient"`
}

// ProfilingConfig toggles the periodic frame log.
type ProfilingConfig struct {
	Enabled bool `json:"enabled"`
}

// Flags holds CLI flag values that override config file settings.
// A nil field was not given on the command line and leaves the file setting in
// place; a non-nil field overrides it even when zero or false.
type Flags struct {
	Seed      *int64
	Particles *int
	Width     *int
	Height    *int
	Workers   *int
	VSync     *bool
	Profile   *bool
}

// Load reads a JSON config file on top of Default.
// Fields not set in the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies CLI overrides and fills derived defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.Seed != nil {
		c.Seed = *flags.Seed
	}
	if flags.Particles != nil {
		c.Foliage.Count = *flags.Particles
	}
	if flags.Width != nil {
		c.Window.Width = *flags.Width
	}
	if flags.Height != nil {
		c.Window.Height = *flags.Height
	}
	if flags.Workers != nil {
		c.Workers = *flags.Workers
	}
	if flags.VSync != nil {
		c.Window.VSync = *flags.VSync
	}
	if flags.Profile != nil {
		c.Profiling.Enabled = *flags.Profile
	}

	if c.Workers <= 0 {
		c.Workers = max(runtime.NumCPU()-1, 1)
	}
	if c.Photos.Active > c.Photos.Count {
		c.Photos.Active = c.Photos.Count
	}
}

// Validate reports every out-of-range field at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window: size %dx%d must be positive", c.Window.Width, c.Window.Height)
	check(c.Window.MSAA == 1 || c.Window.MSAA == 4, "window: msaa %d must be 1 or 4", c.Window.MSAA)

	check(c.Tree.Height > 0, "tree: height %v must be positive", c.Tree.Height)
	check(c.Tree.Exponent > 0, "tree: exponent %v must be positive", c.Tree.Exponent)
	check(c.Tree.Radius > 0, "tree: radius %v must be positive", c.Tree.Radius)

	check(c.Foliage.Count >= 0, "foliage: count %d must not be negative", c.Foliage.Count)
	check(c.Foliage.Rate > 0, "foliage: rate %v must be positive", c.Foliage.Rate)
	check(c.Foliage.AccentProbability >= 0 && c.Foliage.AccentProbability <= 1,
		"foliage: accent probability %v must be within [0, 1]", c.Foliage.AccentProbability)
	check(c.Foliage.SizeMin <= c.Foliage.SizeMax, "foliage: size range [%v, %v] is inverted", c.Foliage.SizeMin, c.Foliage.SizeMax)

	check(c.Haze.Count >= 0, "haze: count %d must not be negative", c.Haze.Count)
	check(c.Haze.Rate > 0, "haze: rate %v must be positive", c.Haze.Rate)

	elements := []struct {
		name string
		cfg  ElementConfig
	}{
		{"ornaments", c.Ornaments},
		{"gifts", c.Gifts},
		{"photos", c.Photos.ElementConfig},
	}
	for _, el := range elements {
		name, e := el.name, el.cfg
		check(e.Count >= 0, "%s: count %d must not be negative", name, e.Count)
		check(e.Rate > 0, "%s: rate %v must be positive", name, e.Rate)
		check(e.ScaleMin <= e.ScaleMax, "%s: scale range [%v, %v] is inverted", name, e.ScaleMin, e.ScaleMax)
	}
	check(c.Photos.Active >= 0 && c.Photos.Active <= c.Photos.Count,
		"photos: active %d must be within [0, %d]", c.Photos.Active, c.Photos.Count)
	check(c.Emblem.Rate > 0, "emblem: rate %v must be positive", c.Emblem.Rate)

	check(c.Snow.Count >= 0, "snow: count %d must not be negative", c.Snow.Count)
	check(c.Snow.Top > c.Snow.Bottom, "snow: top %v must be above bottom %v", c.Snow.Top, c.Snow.Bottom)
	check(c.Snow.SpeedMin <= c.Snow.SpeedMax, "snow: speed range [%v, %v] is inverted", c.Snow.SpeedMin, c.Snow.SpeedMax)

	check(c.Camera.Radius > 0, "camera: radius %v must be positive", c.Camera.Radius)
	check(c.Light.Direction.Len() > 0, "light: direction must not be zero")
	check(c.Light.Intensity >= 0, "light: intensity %v must not be negative", c.Light.Intensity)

	return errors.Join(errs...)
}
