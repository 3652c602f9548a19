package morph

import (
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-morph/common"
	"github.com/Carmen-Shannon/oxy-morph/engine/layout"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Mode selects the rotation regime an Updater applies.
type Mode uint8

const (
	// ModeTumble spins freely below the settle threshold and damps toward the base
	// rotation above it.
	ModeTumble Mode = iota

	// ModeCameraFacing turns toward the camera below the threshold and hangs facing
	// outward from the vertical axis, rolled by the baked tilt plus a sway, above it.
	ModeCameraFacing

	// ModeSettleFloor tumbles below the threshold and, above it, damps pitch and roll
	// to zero while keeping the base yaw.
	ModeSettleFloor
)

// Input is everything an Updater reads for one frame. Every updater in a frame
// receives the same Target and Elapsed values.
type Input struct {
	DT      float32
	Elapsed float32
	Target  float32
	Camera  mgl32.Vec3
}

// Transform is the live state of one element.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    float32

	// Glow is a cosmetic intensity multiplier around 1.
	Glow float32
}

// Updater owns the mutable morph state of one population. The population's
// endpoint table is never modified; progress, orientation and transforms live in
// parallel arrays indexed like the population.
type Updater interface {
	// Update advances every active element by one frame.
	//
	// Parameters:
	//   - in: the frame input shared by all elements
	Update(in Input)

	// Len returns the population size.
	Len() int

	// Active returns how many leading elements are updated and rendered.
	Active() int

	// SetActive limits updating to the first n elements, clamped to [0, Len()].
	SetActive(n int)

	// Progress returns the raw progress of element i.
	Progress(i int) float32

	// Transform returns the live transform of element i.
	Transform(i int) Transform

	// Model returns the world matrix of element i.
	Model(i int) mgl32.Mat4

	// Population returns the endpoint table.
	Population() layout.Population

	// Arrived reports whether every active element is within ArriveEpsilon of target.
	Arrived(target float32) bool
}

type updater struct {
	population layout.Population
	mode       Mode
	ease       EaseFunc

	rate           float32
	rotationRate   float32
	faceRate       float32
	settleAt       float32
	scatteredScale float32
	formedScale    float32
	tumbleSpeed    float32
	pulseAmplitude float32
	pulseSpeed     float32
	swayAmplitude  float32
	swaySpeed      float32

	pool      worker.DynamicWorkerPool
	chunkSize int

	active     int
	progress   []float32
	euler      []mgl32.Vec3
	orient     []mgl32.Quat
	transforms []Transform
}

var _ Updater = &updater{}

// NewUpdater creates an Updater for population. All elements start at progress 0
// (scattered) with their base rotation.
//
// Parameters:
//   - population: the endpoint table
//   - options: functional options
//
// Returns:
//   - Updater: the new updater
func NewUpdater(population layout.Population, options ...UpdaterBuilderOption) Updater {
	u := &updater{
		population:     population,
		mode:           ModeTumble,
		ease:           Ease,
		rate:           2,
		rotationRate:   3,
		faceRate:       5,
		settleAt:       0.85,
		scatteredScale: 1.5,
		formedScale:    1,
		tumbleSpeed:    1,
		swaySpeed:      1.2,
		chunkSize:      2048,
	}
	for _, option := range options {
		option(u)
	}

	n := population.Len()
	u.active = n
	u.progress = make([]float32, n)
	u.euler = make([]mgl32.Vec3, n)
	u.orient = make([]mgl32.Quat, n)
	u.transforms = make([]Transform, n)
	for i := 0; i < n; i++ {
		e := population.At(i)
		u.euler[i] = e.Rotation
		u.orient[i] = EulerToQuat(e.Rotation)
		u.transforms[i] = Transform{
			Position: e.Scattered,
			Rotation: u.orient[i],
			Scale:    e.Scale * u.scatteredScale,
			Glow:     1,
		}
	}
	return u
}

func (u *updater) Update(in Input) {
	if u.pool == nil || u.active <= u.chunkSize {
		u.updateRange(in, 0, u.active)
		return
	}

	var wg sync.WaitGroup
	for id, span := range common.Chunks(u.active, u.chunkSize) {
		wg.Add(1)
		u.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				u.updateRange(in, span.Start, span.End)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

// updateRange writes only indices in [start, end), so disjoint ranges may run
// concurrently.
func (u *updater) updateRange(in Input, start, end int) {
	for i := start; i < end; i++ {
		u.updateOne(in, i)
	}
}

func (u *updater) updateOne(in Input, i int) {
	e := u.population.At(i)

	p := Advance(u.progress[i], in.Target, u.rate, in.DT)
	u.progress[i] = p
	t := u.ease(p)

	tr := Transform{
		Position: Blend(e.Scattered, e.Formed, t),
		Scale:    e.Scale * common.Lerp(u.scatteredScale, u.formedScale, t),
		Glow:     1 + u.pulseAmplitude*math32.Sin(in.Elapsed*u.pulseSpeed+e.Phase),
	}

	switch u.mode {
	case ModeCameraFacing:
		var goal mgl32.Quat
		var rate float32
		if p < u.settleAt {
			look, ok := FacingQuat(tr.Position, in.Camera)
			if !ok {
				look = u.orient[i]
			}
			goal, rate = look, u.faceRate
		} else {
			sway := u.swayAmplitude * math32.Sin(in.Elapsed*u.swaySpeed+e.Phase)
			goal, rate = HangQuat(e.Formed, e.Rotation.Z()+sway), u.rotationRate
		}
		u.orient[i] = slerpToward(u.orient[i], goal, common.DampFactor(rate, in.DT))
		tr.Rotation = u.orient[i]

	default:
		if p < u.settleAt {
			u.euler[i] = u.euler[i].Add(u.spin(e.Phase).Mul(in.DT))
		} else {
			target := e.Rotation
			if u.mode == ModeSettleFloor {
				target = mgl32.Vec3{0, e.Rotation.Y(), 0}
			}
			u.euler[i] = dampEuler(u.euler[i], target, u.rotationRate, in.DT)
		}
		tr.Rotation = EulerToQuat(u.euler[i])
	}

	u.transforms[i] = tr
}

// spin is the per-element tumble angular velocity, varied by phase so neighbours
// do not rotate in lockstep.
func (u *updater) spin(phase float32) mgl32.Vec3 {
	s, c := math32.Sincos(phase)
	return mgl32.Vec3{0.6 + 0.3*s, 0.8 + 0.2*c, 0.4 + 0.3*s*c}.Mul(u.tumbleSpeed)
}

func (u *updater) Len() int {
	return u.population.Len()
}

func (u *updater) Active() int {
	return u.active
}

func (u *updater) SetActive(n int) {
	u.active = max(0, min(n, u.population.Len()))
}

func (u *updater) Progress(i int) float32 {
	return u.progress[i]
}

func (u *updater) Transform(i int) Transform {
	return u.transforms[i]
}

func (u *updater) Model(i int) mgl32.Mat4 {
	tr := u.transforms[i]
	return common.ModelMatrix(tr.Position, tr.Rotation, tr.Scale)
}

func (u *updater) Population() layout.Population {
	return u.population
}

func (u *updater) Arrived(target float32) bool {
	for i := 0; i < u.active; i++ {
		if !Arrived(u.progress[i], target) {
			return false
		}
	}
	return true
}
