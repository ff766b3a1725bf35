package boid

import (
	"math"

	"github.com/bytearena/streetboids/common/utils/vector"
)

const (
	MaxForce         = 0.5 // max magnitude of a single steering force
	NeighborDistance = 50.0
	BrakingDistance  = 100.0
	CautionSpacing   = 25.0
)

// Globals are the world-wide tunables every boid derives its limits from.
type Globals struct {
	Caution    float64
	Quickness  float64
	SpeedIndex float64
}

// Params is everything fixed when a boid is created.
type Params struct {
	ID        int
	Type      Type
	Position  vector.Vector2
	Velocity  vector.Vector2
	Radius    float64
	StreetIdx int

	CautionCoefficient   float64
	QuicknessCoefficient float64
	Cohesiveness         float64
}

type Boid struct {
	id        int
	boidtype  Type
	position  vector.Vector2
	velocity  vector.Vector2
	radius    float64
	mass      float64
	streetIdx int

	cautionCoefficient   float64
	quicknessCoefficient float64
	cohesiveness         float64

	caution    float64
	quickness  float64
	maxSpeed   float64
	maxForce   float64
	speedIndex float64
}

func MakeBoid(p Params, globals Globals) *Boid {
	b := &Boid{
		id:        p.ID,
		boidtype:  p.Type,
		position:  p.Position,
		radius:    p.Radius,
		mass:      (4.0 / 3.0) * math.Pi * math.Pow(p.Radius, 3),
		streetIdx: p.StreetIdx,

		cautionCoefficient:   p.CautionCoefficient,
		quicknessCoefficient: p.QuicknessCoefficient,
		cohesiveness:         p.Cohesiveness,

		maxForce: MaxForce,
	}

	b.ApplyGlobals(globals)
	b.velocity = p.Velocity.Limit(b.maxSpeed)

	return b
}

// ApplyGlobals recomputes the derived tunables.
func (b *Boid) ApplyGlobals(g Globals) {
	b.speedIndex = g.SpeedIndex
	b.SetCaution(g.Caution)
	b.SetQuickness(g.Quickness)
}

func (b *Boid) SetCaution(globalCaution float64) {
	b.caution = globalCaution * b.cautionCoefficient
}

// SetQuickness also clamps the current velocity, so a boid that sits out
// the next ticks still respects its new max speed.
func (b *Boid) SetQuickness(globalQuickness float64) {
	b.quickness = globalQuickness * b.quicknessCoefficient
	b.maxSpeed = b.speedIndex * b.quickness
	b.velocity = b.velocity.Limit(b.maxSpeed)
}

func (b *Boid) GetId() int {
	return b.id
}

func (b *Boid) GetType() Type {
	return b.boidtype
}

func (b *Boid) GetColor() string {
	return b.boidtype.Specs().Color
}

func (b *Boid) GetPosition() vector.Vector2 {
	return b.position
}

func (b *Boid) SetPosition(p vector.Vector2) {
	b.position = p
}

func (b *Boid) GetVelocity() vector.Vector2 {
	return b.velocity
}

// SetVelocity stores v clamped to the boid's max speed.
func (b *Boid) SetVelocity(v vector.Vector2) {
	b.velocity = v.Limit(b.maxSpeed)
}

func (b *Boid) GetRadius() float64 {
	return b.radius
}

func (b *Boid) GetMass() float64 {
	return b.mass
}

func (b *Boid) GetStreetIdx() int {
	return b.streetIdx
}

func (b *Boid) GetCautionCoefficient() float64 {
	return b.cautionCoefficient
}

func (b *Boid) GetQuicknessCoefficient() float64 {
	return b.quicknessCoefficient
}

func (b *Boid) GetCohesiveness() float64 {
	return b.cohesiveness
}

func (b *Boid) GetCaution() float64 {
	return b.caution
}

func (b *Boid) GetQuickness() float64 {
	return b.quickness
}

func (b *Boid) GetMaxSpeed() float64 {
	return b.maxSpeed
}

func (b *Boid) GetMaxForce() float64 {
	return b.maxForce
}

// State is a read-only copy of a boid, as seen by its neighbours during a tick.
type State struct {
	ID        int            `json:"id"`
	Type      Type           `json:"type"`
	Position  vector.Vector2 `json:"position"`
	Velocity  vector.Vector2 `json:"velocity"`
	Radius    float64        `json:"radius"`
	StreetIdx int            `json:"street"`
}

func (b *Boid) State() State {
	return State{
		ID:        b.id,
		Type:      b.boidtype,
		Position:  b.position,
		Velocity:  b.velocity,
		Radius:    b.radius,
		StreetIdx: b.streetIdx,
	}
}
