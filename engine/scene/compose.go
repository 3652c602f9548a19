package scene

import (
	"log"
	"math/rand"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-morph/config"
	"github.com/Carmen-Shannon/oxy-morph/engine/layout"
	"github.com/Carmen-Shannon/oxy-morph/engine/particle"
	"github.com/go-gl/mathgl/mgl32"
)

// Per-population seed salts. Each population draws from its own generator so
// changing one count never reshuffles another.
const (
	saltFoliage int64 = iota + 1
	saltHaze
	saltOrnaments
	saltGifts
	saltPhotos
	saltSnow
)

// Compose builds every component of the scene from cfg, in draw order: opaque
// meshes first, then additive particle clouds, then the alpha-blended snow.
//
// Parameters:
//   - cfg: the resolved configuration
//   - pool: optional worker pool used for bulk generation and large updates
//
// Returns:
//   - []Component: the components in draw order
func Compose(cfg config.Config, pool worker.DynamicWorkerPool) []Component {
	seeded := func(salt int64) *rand.Rand {
		return rand.New(rand.NewSource(cfg.Seed*7919 + salt))
	}
	tree := cfg.Tree

	foliage := layout.Particles(seeded(saltFoliage), cfg.Foliage.Count, layout.ParticleOptions{
		Height:            tree.Height,
		Radius:            tree.Radius,
		Exponent:          tree.Exponent,
		Offset:            treeOffset(tree),
		ScatterRadius:     cfg.Foliage.ScatterRadius,
		Palette:           cfg.Foliage.Palette,
		SizeMin:           cfg.Foliage.SizeMin,
		SizeMax:           cfg.Foliage.SizeMax,
		AccentProbability: cfg.Foliage.AccentProbability,
		AccentPalette:     cfg.Foliage.AccentPalette,
		AccentSizeMin:     cfg.Foliage.AccentSizeMin,
		AccentSizeMax:     cfg.Foliage.AccentSizeMax,
	}, pool)

	haze := layout.Halo(seeded(saltHaze), cfg.Haze.Count, layout.HaloOptions{
		Radius:        cfg.Haze.Radius,
		Center:        treeOffset(tree),
		ScatterRadius: cfg.Haze.ScatterRadius,
		Palette:       cfg.Haze.Palette,
		SizeMin:       cfg.Haze.SizeMin,
		SizeMax:       cfg.Haze.SizeMax,
	})

	snow := particle.NewSnow(seeded(saltSnow), particle.SnowOptions{
		Count:        cfg.Snow.Count,
		HalfExtent:   cfg.Snow.HalfExtent,
		Top:          cfg.Snow.Top,
		Bottom:       cfg.Snow.Bottom,
		SpeedMin:     cfg.Snow.SpeedMin,
		SpeedMax:     cfg.Snow.SpeedMax,
		SizeMin:      cfg.Snow.SizeMin,
		SizeMax:      cfg.Snow.SizeMax,
		Wind:         cfg.Snow.Wind,
		WindStrength: cfg.Snow.WindStrength,
		Sway:         cfg.Snow.Sway,
	})

	components := []Component{
		NewGifts(seeded(saltGifts), tree, cfg.Gifts),
		NewOrnaments(seeded(saltOrnaments), tree, cfg.Ornaments, pool),
		NewPhotos(seeded(saltPhotos), tree, cfg.Photos),
		NewEmblem(tree, cfg.Emblem),
		NewParticleCloud("foliage", CloudFoliage, particle.NewCloud(foliage, particle.CloudParams{
			Rate:           cfg.Foliage.Rate,
			DriftSpeed:     cfg.Foliage.DriftSpeed,
			DriftAmplitude: cfg.Foliage.DriftAmplitude,
			SizeScale:      1,
			ScatterSize:    1.6,
			ScatterAlpha:   0.55,
			Twinkle:        cfg.Foliage.Twinkle,
		})),
		NewParticleCloud("haze", CloudHaze, particle.NewCloud(haze, particle.CloudParams{
			Rate:           cfg.Haze.Rate,
			DriftSpeed:     0.25,
			DriftAmplitude: 0.8,
			SizeScale:      1,
			ScatterSize:    1.2,
			ScatterAlpha:   0.35,
			Twinkle:        0.2,
		})),
		NewSnowfall("snow", snow),
	}

	total := 0
	for _, c := range components {
		total += c.Count()
	}
	log.Printf("[Scene] composed %d components, %d elements (seed %d)", len(components), total, cfg.Seed)
	return components
}

// Center returns the point the camera orbits: the middle of the tree.
func Center(tree config.TreeConfig) mgl32.Vec3 {
	return treeOffset(tree)
}
