package config

import "github.com/go-gl/mathgl/mgl32"

// Default returns the authored scene.
func Default() Config {
	return Config{
		Seed: 1225,

		Window: WindowConfig{
			Title:  "oxy-morph",
			Width:  1280,
			Height: 720,
			MSAA:   4,
		},
		Tree: TreeConfig{
			Height:   14,
			Radius:   5.5,
			Exponent: 1.3,
			FloorY:   -7,
		},
		Foliage: FoliageConfig{
			Count:             100000,
			Rate:              1.5,
			ScatterRadius:     30,
			SizeMin:           0.05,
			SizeMax:           0.14,
			AccentProbability: 0.06,
			AccentSizeMin:     0.16,
			AccentSizeMax:     0.28,
			Palette: []mgl32.Vec3{
				{0.05, 0.35, 0.12},
				{0.08, 0.45, 0.18},
				{0.12, 0.55, 0.22},
			},
			AccentPalette: []mgl32.Vec3{
				{1.0, 0.84, 0.35},
				{0.95, 0.25, 0.2},
			},
			DriftSpeed:     0.6,
			DriftAmplitude: 0.35,
			Twinkle:        0.4,
		},
		Haze: HazeConfig{
			Count:         6000,
			Rate:          1.2,
			Radius:        12,
			ScatterRadius: 40,
			SizeMin:       0.2,
			SizeMax:       0.6,
			Palette: []mgl32.Vec3{
				{0.35, 0.45, 0.7},
				{0.6, 0.55, 0.4},
			},
		},
		Ornaments: ElementConfig{
			Count:         180,
			Rate:          2,
			ScatterRadius: 22,
			ScaleMin:      0.25,
			ScaleMax:      0.45,
			Palette: []mgl32.Vec3{
				{0.85, 0.1, 0.12},
				{0.95, 0.75, 0.2},
				{0.75, 0.78, 0.85},
			},
		},
		Gifts: ElementConfig{
			Count:         24,
			Rate:          1.8,
			ScatterRadius: 20,
			ScaleMin:      0.7,
			ScaleMax:      1.4,
			Radius:        6,
			Palette: []mgl32.Vec3{
				{0.7, 0.1, 0.15},
				{0.1, 0.35, 0.6},
				{0.9, 0.85, 0.75},
			},
		},
		Photos: PhotoConfig{
			ElementConfig: ElementConfig{
				Count:         48,
				Rate:          1.6,
				ScatterRadius: 18,
				ScaleMin:      0.9,
				ScaleMax:      1.1,
				Palette:       []mgl32.Vec3{{0.95, 0.93, 0.88}},
			},
			Active: 24,
			Tilt:   0.12,
		},
		Emblem: EmblemConfig{
			Rate:  3,
			Color: mgl32.Vec3{1.0, 0.85, 0.3},
			Size:  1.1,
		},
		Snow: SnowConfig{
			Count:        4000,
			HalfExtent:   30,
			Top:          25,
			Bottom:       -8,
			SpeedMin:     0.6,
			SpeedMax:     1.6,
			SizeMin:      0.03,
			SizeMax:      0.08,
			Wind:         mgl32.Vec2{1, 0.3},
			WindStrength: 0.8,
			Sway:         0.4,
		},
		Camera: CameraConfig{
			Radius:        28,
			Elevation:     0.15,
			AutoRotate:    0.08,
			HandAzimuth:   0.8,
			HandElevation: 0.4,
			HandRate:      3,
		},
		Light: LightConfig{
			Direction: mgl32.Vec3{-0.4, -0.9, -0.3},
			Color:     mgl32.Vec3{1, 0.95, 0.88},
			Intensity: 1,
			Ambient:   mgl32.Vec3{0.12, 0.14, 0.2},
		},
	}
}
