package boid

import (
	"github.com/bytearena/streetboids/common/utils/vector"
	"github.com/bytearena/streetboids/game/street"
)

const (
	AlignWeight    = 1.0
	SeparateWeight = 2.5
)

// Forces holds the four steering forces of one boid for one tick.
type Forces struct {
	Align    vector.Vector2
	Separate vector.Vector2
	Cohesion vector.Vector2
	Street   vector.Vector2
}

// Seek steers towards target. targetRadius <= 0 means the target is a bare
// point, in which case the buffer is computed as if it had the seeker's size.
func (b *Boid) Seek(target vector.Vector2, targetRadius float64) vector.Vector2 {
	diff := target.Sub(b.position)

	buffer := b.radius*2 + 1
	if targetRadius > 0 {
		buffer = targetRadius + b.radius + 1
	}

	var desired vector.Vector2
	dist := diff.Mag()

	if dist < buffer {
		desired = vector.MakeNullVector2()
	} else if dist <= BrakingDistance {
		desired = diff.Normalize().MultScalar(b.maxSpeed * dist / BrakingDistance)
	} else {
		desired = diff.Normalize().MultScalar(b.maxSpeed)
	}

	return desired.Sub(b.velocity).Limit(b.maxForce)
}

// Separate pushes away from every boid closer than the combined radii plus
// a caution margin, weighting closer boids more.
func (b *Boid) Separate(neighbors []State) vector.Vector2 {
	sum := vector.MakeNullVector2()
	count := 0

	for _, other := range neighbors {
		if other.ID == b.id {
			continue
		}

		desiredSeparation := b.radius + other.Radius + CautionSpacing*b.caution
		sep := b.position.Distance(other.Position)

		if sep > 0 && sep < desiredSeparation {
			diff := b.position.Sub(other.Position).Normalize().DivScalar(sep)
			sum = sum.Add(diff)
			count++
		}
	}

	if count == 0 {
		return sum
	}

	return sum.
		DivScalar(float64(count)).
		Normalize().
		MultScalar(b.maxSpeed).
		Sub(b.velocity).
		Limit(b.maxForce)
}

// Align matches the mean heading of nearby boids on the same street.
func (b *Boid) Align(neighbors []State) vector.Vector2 {
	sum := vector.MakeNullVector2()
	count := 0

	for _, other := range neighbors {
		if !b.isLaneNeighbor(other) {
			continue
		}

		sum = sum.Add(other.Velocity)
		count++
	}

	if count == 0 {
		return sum
	}

	return sum.
		DivScalar(float64(count)).
		Normalize().
		MultScalar(b.maxSpeed).
		Sub(b.velocity).
		Limit(b.maxForce)
}

// Cohesion seeks the centroid of nearby boids on the same street.
func (b *Boid) Cohesion(neighbors []State) vector.Vector2 {
	sum := vector.MakeNullVector2()
	count := 0

	for _, other := range neighbors {
		if !b.isLaneNeighbor(other) {
			continue
		}

		sum = sum.Add(other.Position)
		count++
	}

	if count == 0 {
		return sum
	}

	return b.Seek(sum.DivScalar(float64(count)), 0)
}

// Directionality is the constant pull of the street towards its travel direction.
func (b *Boid) Directionality(s street.Street) vector.Vector2 {
	return s.Direction.Normalize().Limit(b.maxForce)
}

func (b *Boid) isLaneNeighbor(other State) bool {
	if other.ID == b.id || other.StreetIdx != b.streetIdx {
		return false
	}

	dist := b.position.Distance(other.Position)
	return dist > 0 && dist < NeighborDistance
}

// Steering computes all forces against a snapshot of the roster. It does not
// mutate the boid.
func (b *Boid) Steering(neighbors []State, s street.Street) Forces {
	return Forces{
		Align:    b.Align(neighbors),
		Separate: b.Separate(neighbors),
		Cohesion: b.Cohesion(neighbors),
		Street:   b.Directionality(s),
	}
}

// ApplyForces adds each weighted force to the velocity, clamping to max
// speed after every addition. Forces scale with dt.
func (b *Boid) ApplyForces(f Forces, dt float64) {
	b.applyForce(f.Align, AlignWeight*dt)
	b.applyForce(f.Separate, SeparateWeight*dt)
	b.applyForce(f.Cohesion, b.cohesiveness*dt)
	b.applyForce(f.Street, b.boidtype.Specs().StreetWeight*dt)
}

func (b *Boid) applyForce(force vector.Vector2, coefficient float64) {
	b.velocity = b.velocity.Add(force.MultScalar(coefficient)).Limit(b.maxSpeed)
}

// Integrate advances the position by one explicit Euler step.
func (b *Boid) Integrate(dt float64) {
	b.position = b.position.Add(b.velocity.MultScalar(dt))
}
