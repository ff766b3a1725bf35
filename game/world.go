package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/bytearena/streetboids/common/assert"
	"github.com/bytearena/streetboids/common/utils"
	"github.com/bytearena/streetboids/common/utils/vector"
	"github.com/bytearena/streetboids/game/boid"
	"github.com/bytearena/streetboids/game/collision"
	"github.com/bytearena/streetboids/game/street"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	"golang.org/x/sync/errgroup"
)

// NominalTick is one rendered frame; velocities are in units per frame.
// Every tunable is calibrated for it, other dt values change the feel.
const NominalTick = 1.0

const (
	DefaultCaution          = 0.5
	DefaultQuickness        = 1.0
	DefaultMaxSpawnAttempts = 1000
)

type Options struct {
	Width  float64
	Height float64

	// NumBoids <= 0 derives the count from the viewport.
	NumBoids int
	Seed     int64

	Caution   float64
	Quickness float64
	Disabled  []boid.Type

	// Parallelism > 1 fans the force computation out over that many workers.
	Parallelism      int
	MaxSpawnAttempts int
	BroadPhase       bool

	// Streets and Boids replace the generated network and roster when set.
	Streets *street.Network
	Boids   []boid.Params
}

func DefaultOptions(width, height float64) Options {
	return Options{
		Width:            width,
		Height:           height,
		Seed:             time.Now().UnixNano(),
		Caution:          DefaultCaution,
		Quickness:        DefaultQuickness,
		MaxSpawnAttempts: DefaultMaxSpawnAttempts,
	}
}

func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return errors.Errorf("viewport must have a positive size, got %vx%v", o.Width, o.Height)
	}

	if o.Caution < 0 {
		return errors.Errorf("caution must be positive, got %v", o.Caution)
	}

	if o.Quickness < 0 {
		return errors.Errorf("quickness must be positive, got %v", o.Quickness)
	}

	for _, t := range o.Disabled {
		if !t.IsValid() {
			return errors.Errorf("unknown boid type %d", int(t))
		}
	}

	if o.Streets != nil && o.Streets.Len() == 0 {
		return errors.New("street network is empty")
	}

	return nil
}

// TickReport sums up one step.
type TickReport struct {
	Turn       utils.Tickturn
	Active     int
	Collisions collision.Report
	Duration   time.Duration
}

// World owns the roster and the street network. It is not safe for
// concurrent use; callers serialize Step and the parameter setters.
type World struct {
	id       uuid.UUID
	rnd      *rand.Rand
	viewport Viewport

	streets *street.Network
	boids   []*boid.Boid

	globals boid.Globals
	enabled map[boid.Type]bool

	baseRadius  float64
	parallelism int
	detector    collision.Detector

	turn utils.Tickturn
}

func NewWorld(opts Options) (*World, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid world options")
	}

	if opts.MaxSpawnAttempts <= 0 {
		opts.MaxSpawnAttempts = DefaultMaxSpawnAttempts
	}

	w := &World{
		id:       uuid.NewV4(),
		rnd:      rand.New(rand.NewSource(opts.Seed)),
		viewport: Viewport{Width: opts.Width, Height: opts.Height},
		globals: boid.Globals{
			Caution:    opts.Caution,
			Quickness:  opts.Quickness,
			SpeedIndex: SpeedIndex(opts.Width),
		},
		enabled:     make(map[boid.Type]bool),
		baseRadius:  BaseRadius(opts.Width),
		parallelism: opts.Parallelism,
		detector:    collision.BruteForce{},
	}

	if opts.BroadPhase {
		w.detector = collision.BroadPhase{}
	}

	for _, t := range boid.Types {
		w.enabled[t] = true
	}

	for _, t := range opts.Disabled {
		w.enabled[t] = false
	}

	w.streets = opts.Streets
	if w.streets == nil {
		w.streets = street.GenerateNetwork(w.rnd, opts.Width, opts.Height)
	}

	if opts.Boids != nil {
		for _, params := range opts.Boids {
			assert.Assertf(
				params.StreetIdx >= 0 && params.StreetIdx < w.streets.Len(),
				"boid %d assigned to street %d, network has %d", params.ID, params.StreetIdx, w.streets.Len(),
			)
			w.boids = append(w.boids, boid.MakeBoid(params, w.globals))
		}
	} else {
		numBoids := opts.NumBoids
		if numBoids <= 0 {
			numBoids = DefaultBoidCount(opts.Width, opts.Height)
		}

		w.spawn(numBoids, opts.MaxSpawnAttempts)
	}

	utils.DebugWithContext("world", "world created", utils.Context{
		"id":      w.id.String(),
		"boids":   len(w.boids),
		"streets": w.streets.Len(),
	})

	return w, nil
}

// spawn places boids at random, re-drawing positions that overlap an
// already placed boid. Past maxAttempts the last drawn position is kept.
func (w *World) spawn(numBoids int, maxAttempts int) {
	factory := boid.NewFactory(w.rnd)

	for i := 0; i < numBoids; i++ {
		t := factory.RollType()
		b := factory.Make(i, t, vector.MakeNullVector2(), w.streets.RandomIndex(w.rnd), w.baseRadius, w.globals)

		for attempt := 0; attempt < maxAttempts; attempt++ {
			b.SetPosition(w.randomSpawnPosition())
			if !w.overlapsRoster(b) {
				break
			}
		}

		w.boids = append(w.boids, b)
	}
}

func (w *World) randomSpawnPosition() vector.Vector2 {
	r := w.baseRadius
	x := math.Ceil(w.rnd.Float64()*(w.viewport.Width-r*2)) + r
	y := math.Ceil(w.rnd.Float64()*(w.viewport.Height-r*2)) + r
	return vector.MakeVector2(x, y)
}

func (w *World) overlapsRoster(b *boid.Boid) bool {
	candidate := b.State()
	for _, other := range w.boids {
		if collision.Overlaps(candidate, other.State()) {
			return true
		}
	}

	return false
}

func (w *World) activeBoids() []*boid.Boid {
	active := make([]*boid.Boid, 0, len(w.boids))
	for _, b := range w.boids {
		if w.enabled[b.GetType()] {
			active = append(active, b)
		}
	}

	return active
}

func (w *World) Tick() TickReport {
	return w.Step(NominalTick)
}

// Step advances the simulation by dt. Steering reads a snapshot taken before
// any boid moves; integration, edge handling and collisions then run on the
// live roster, in roster order. Disabled types sit the tick out entirely.
func (w *World) Step(dt float64) TickReport {
	assert.Assertf(dt > 0, "dt must be positive, got %v", dt)

	start := time.Now()

	active := w.activeBoids()

	snapshot := make([]boid.State, len(active))
	streets := make([]street.Street, len(active))
	for k, b := range active {
		snapshot[k] = b.State()
		streets[k] = w.streets.Get(b.GetStreetIdx())
	}

	forces := w.computeForces(active, snapshot, streets)

	for k, b := range active {
		b.ApplyForces(forces[k], dt)
		b.Integrate(dt)
		b.CheckEdges(streets[k], w.viewport.Width, w.viewport.Height)
	}

	report := collision.Process(w.detector, active)

	w.turn = w.turn.Next()

	return TickReport{
		Turn:       w.turn,
		Active:     len(active),
		Collisions: report,
		Duration:   time.Since(start),
	}
}

func (w *World) computeForces(active []*boid.Boid, snapshot []boid.State, streets []street.Street) []boid.Forces {
	forces := make([]boid.Forces, len(active))

	if w.parallelism <= 1 {
		for k, b := range active {
			forces[k] = b.Steering(snapshot, streets[k])
		}
		return forces
	}

	var g errgroup.Group
	g.SetLimit(w.parallelism)

	for k, b := range active {
		k, b := k, b
		g.Go(func() error {
			forces[k] = b.Steering(snapshot, streets[k])
			return nil
		})
	}

	utils.Check(g.Wait(), "steering worker failed")

	return forces
}

// SetCaution recomputes the caution of every boid right away.
func (w *World) SetCaution(value float64) {
	w.globals.Caution = value
	for _, b := range w.boids {
		b.SetCaution(value)
	}
}

// SetQuickness recomputes quickness and max speed of every boid right away.
func (w *World) SetQuickness(value float64) {
	w.globals.Quickness = value
	for _, b := range w.boids {
		b.SetQuickness(value)
	}
}

func (w *World) SetTypeEnabled(t boid.Type, enabled bool) {
	assert.Assertf(t.IsValid(), "unknown boid type %d", int(t))
	w.enabled[t] = enabled
}

func (w *World) IsTypeEnabled(t boid.Type) bool {
	return w.enabled[t]
}

// Resize changes the viewport used by wrapping from the next step on. The
// street network and the boid limits keep their creation-time scale.
func (w *World) Resize(width, height float64) {
	assert.Assertf(width > 0 && height > 0, "viewport must have a positive size, got %vx%v", width, height)
	w.viewport = Viewport{Width: width, Height: height}
}

func (w *World) GetId() uuid.UUID {
	return w.id
}

func (w *World) GetTurn() utils.Tickturn {
	return w.turn
}

func (w *World) GetViewport() Viewport {
	return w.viewport
}

func (w *World) GetGlobals() boid.Globals {
	return w.globals
}

func (w *World) GetStreets() *street.Network {
	return w.streets
}

// Boids returns the live roster, in creation order. Callers must not mutate it.
func (w *World) Boids() []*boid.Boid {
	return w.boids
}

func (w *World) Render(renderer Renderer) {
	for _, s := range w.streets.Streets() {
		renderer.DrawStreet(s.StartingPoint, s.End(), s.Width, street.Color)
	}

	for _, b := range w.activeBoids() {
		renderer.DrawBoid(b.GetId(), b.GetPosition(), b.GetRadius(), b.GetColor())
	}
}
