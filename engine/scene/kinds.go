package scene

import (
	"math/rand"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-morph/config"
	"github.com/Carmen-Shannon/oxy-morph/engine/layout"
	"github.com/Carmen-Shannon/oxy-morph/engine/morph"
	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
)

// ornamentFloat is the peak vertical bob of a fully scattered ornament.
const ornamentFloat = 0.6

// treeOffset lifts the centred cone so its base rests on the floor.
func treeOffset(tree config.TreeConfig) mgl32.Vec3 {
	return mgl32.Vec3{0, tree.FloorY + tree.Height/2, 0}
}

// NewOrnaments builds the ornament population: octahedra on the outer shell of the
// tree that tumble while scattered, settle to their base rotation once formed, and
// pulse their glow out of phase with each other. While loose they also bob on a
// noise curve that fades out as each one arrives.
//
// Parameters:
//   - rng: source of uniform randomness for the layout and noise seed
//   - tree: the shared silhouette
//   - cfg: the ornament settings
//   - pool: optional worker pool for large populations
//
// Returns:
//   - *Elements: the component
func NewOrnaments(rng *rand.Rand, tree config.TreeConfig, cfg config.ElementConfig, pool worker.DynamicWorkerPool) *Elements {
	pop := layout.Tree(rng, cfg.Count, layout.TreeOptions{
		Height:            tree.Height,
		Radius:            tree.Radius * 1.02,
		Exponent:          tree.Exponent,
		MinRadiusFraction: 0.8,
		Offset:            treeOffset(tree),
		ScatterRadius:     cfg.ScatterRadius,
		ScaleMin:          cfg.ScaleMin,
		ScaleMax:          cfg.ScaleMax,
		Palette:           cfg.Palette,
	})
	updater := morph.NewUpdater(pop,
		morph.WithMode(morph.ModeTumble),
		morph.WithRate(cfg.Rate),
		morph.WithScale(1.6, 1),
		morph.WithPulse(0.35, 2.2),
		morph.WithPool(pool, 2048),
	)

	noise := perlin.NewPerlin(2, 2, 3, rng.Int63())
	bob := func(f Frame, i int, tr morph.Transform) morph.Transform {
		loose := 1 - updater.Progress(i)
		if loose <= 0 {
			return tr
		}
		n := float32(noise.Noise2D(float64(pop.At(i).Phase), float64(f.Elapsed)*0.25))
		tr.Position = tr.Position.Add(mgl32.Vec3{0, n * ornamentFloat * loose, 0})
		return tr
	}

	return NewElements("ornaments", Octahedron(1), updater, WithDecorator(bob))
}

// NewGifts builds the gift boxes heaped on the floor. Once formed they settle flat,
// keeping only their yaw.
func NewGifts(rng *rand.Rand, tree config.TreeConfig, cfg config.ElementConfig) *Elements {
	pop := layout.Mound(rng, cfg.Count, layout.MoundOptions{
		Radius:        cfg.Radius,
		FloorY:        tree.FloorY,
		ScatterRadius: cfg.ScatterRadius,
		ScaleMin:      cfg.ScaleMin,
		ScaleMax:      cfg.ScaleMax,
		Palette:       cfg.Palette,
	})
	updater := morph.NewUpdater(pop,
		morph.WithMode(morph.ModeSettleFloor),
		morph.WithRate(cfg.Rate),
		morph.WithScale(1.4, 1),
		morph.WithTumbleSpeed(0.6),
	)
	return NewElements("gifts", Box(1, 1, 1), updater)
}

// NewPhotos builds the photo frames. Slots follow a golden-angle spiral so even a
// handful cover the tree; only the first cfg.Active are shown. Frames turn to the
// camera while scattered and hang facing outward once formed.
func NewPhotos(rng *rand.Rand, tree config.TreeConfig, cfg config.PhotoConfig) *Elements {
	pop := layout.Tree(rng, cfg.Count, layout.TreeOptions{
		Height:            tree.Height * 0.85,
		Radius:            tree.Radius * 1.1,
		Exponent:          tree.Exponent,
		MinRadiusFraction: 0.95,
		Spiral:            true,
		Offset:            treeOffset(tree),
		ScatterRadius:     cfg.ScatterRadius,
		ScaleMin:          cfg.ScaleMin,
		ScaleMax:          cfg.ScaleMax,
		Palette:           cfg.Palette,
		Tilt:              cfg.Tilt,
	})
	updater := morph.NewUpdater(pop,
		morph.WithMode(morph.ModeCameraFacing),
		morph.WithRate(cfg.Rate),
		morph.WithScale(1.8, 1),
		morph.WithFaceRate(6),
		morph.WithSway(0.06, 1.1),
	)
	updater.SetActive(cfg.Active)
	return NewElements("photos", Box(1, 1.25, 0.06), updater)
}
