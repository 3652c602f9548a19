package layout

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ConeSample describes one draw from a cone volume.
type ConeSample struct {
	// Height of the cone.
	Height float32

	// Radius of the base.
	Radius float32

	// Exponent biases height toward the base; 1 is uniform, 1.2-1.5 gives a dense trunk.
	Exponent float32

	// MinRadiusFraction hollows the cone: the radius is drawn in [min, 1] * rMax(y).
	// Zero fills the whole disk.
	MinRadiusFraction float32
}

// ConePoint samples a point inside a cone whose base sits at y = -Height/2 and apex at
// y = +Height/2. The azimuth is supplied by the caller so spiral and random layouts
// share the radial math.
//
// Parameters:
//   - rng: source of uniform randomness
//   - c: cone parameters
//   - azimuth: angle around the y axis in radians
//
// Returns:
//   - mgl32.Vec3: the sampled point
func ConePoint(rng *rand.Rand, c ConeSample, azimuth float32) mgl32.Vec3 {
	y := math32.Pow(uniform(rng), c.Exponent) * c.Height
	rMax := ConeRadiusAt(c.Height, c.Radius, y-c.Height/2)
	// sqrt keeps areal density uniform inside the disk
	f := c.MinRadiusFraction + (1-c.MinRadiusFraction)*math32.Sqrt(uniform(rng))
	r := f * rMax
	s, co := math32.Sincos(azimuth)
	return mgl32.Vec3{r * co, y - c.Height/2, r * s}
}

// ConeRadiusAt returns the silhouette radius at a re-centred height y. A cone with
// no height collapses onto its axis.
func ConeRadiusAt(height, radius, y float32) float32 {
	if height <= 0 {
		return 0
	}
	return radius * (1 - (y+height/2)/height)
}

// SpherePoint samples a point uniformly by volume inside a ball of the given radius
// centred on the origin.
func SpherePoint(rng *rand.Rand, radius float32) mgl32.Vec3 {
	r := math32.Cbrt(uniform(rng)) * radius
	theta := 2 * math32.Pi * uniform(rng)
	phi := math32.Acos(2*uniform(rng) - 1)
	sp, cp := math32.Sincos(phi)
	st, ct := math32.Sincos(theta)
	return mgl32.Vec3{r * sp * ct, r * cp, r * sp * st}
}

// MoundPoint samples a point in a heap resting on floorY: the planar position is
// uniform in the disk and the height is a uniform fraction of a pile profile that
// falls linearly from peak at the centre to zero at the rim.
func MoundPoint(rng *rand.Rand, radius, floorY, peak float32) mgl32.Vec3 {
	r := math32.Sqrt(uniform(rng)) * radius
	a := uniform(rng) * 2 * math32.Pi
	y := floorY + uniform(rng)*PileHeightAt(r, radius, peak)
	s, c := math32.Sincos(a)
	return mgl32.Vec3{r * c, y, r * s}
}

// PileHeightAt is the mound profile at planar distance r.
func PileHeightAt(r, radius, peak float32) float32 {
	if radius <= 0 {
		return 0
	}
	return math32.Max(0, peak*(1-r/radius))
}
