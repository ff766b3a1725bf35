package collision

import (
	"math"

	"github.com/bytearena/streetboids/game/boid"
)

// Pair references two roster indices, always with I < J.
type Pair struct {
	I int
	J int
}

// Overlaps reports whether two discs interpenetrate. Discs that exactly
// touch do not overlap.
func Overlaps(a, b boid.State) bool {
	return a.Position.Distance(b.Position)-(a.Radius+b.Radius) < 0
}

// Detector finds overlapping pairs in a roster.
type Detector interface {
	DetectPairs(boids []*boid.Boid) []Pair
}

// BruteForce scans every pair.
type BruteForce struct{}

func (BruteForce) DetectPairs(boids []*boid.Boid) []Pair {
	pairs := make([]Pair, 0)

	for i := 0; i < len(boids); i++ {
		a := boids[i].State()
		for j := i + 1; j < len(boids); j++ {
			if Overlaps(a, boids[j].State()) {
				pairs = append(pairs, Pair{I: i, J: j})
			}
		}
	}

	return pairs
}

// Resolve applies an elastic collision between a and b when they are
// closing in, and reports whether velocities changed. Positions are not
// separated: overlap may persist until the new velocities carry the pair apart.
func Resolve(a, b *boid.Boid) bool {
	velocityDiff := a.GetVelocity().Sub(b.GetVelocity())
	dist := b.GetPosition().Sub(a.GetPosition())

	if velocityDiff.Dot(dist) < 0 {
		return false
	}

	angle := -math.Atan2(dist.GetY(), dist.GetX())

	m1 := a.GetMass()
	m2 := b.GetMass()
	total := m1 + m2

	u1 := a.GetVelocity().Rotate(angle)
	u2 := b.GetVelocity().Rotate(angle)

	v1 := u1.SetX(u1.GetX()*(m1-m2)/total + u2.GetX()*2*m2/total)
	v2 := u2.SetX(u2.GetX()*(m2-m1)/total + u1.GetX()*2*m1/total)

	a.SetVelocity(v1.Rotate(-angle))
	b.SetVelocity(v2.Rotate(-angle))

	return true
}

// ResolvePairs resolves pairs in the given order and returns how many were
// actually resolved.
func ResolvePairs(boids []*boid.Boid, pairs []Pair) int {
	resolved := 0

	for _, pair := range pairs {
		if Resolve(boids[pair.I], boids[pair.J]) {
			resolved++
		}
	}

	return resolved
}

// Report summarizes one collision pass.
type Report struct {
	Overlapping int
	Resolved    int
}

// Process detects then resolves collisions for a roster.
func Process(detector Detector, boids []*boid.Boid) Report {
	pairs := detector.DetectPairs(boids)

	return Report{
		Overlapping: len(pairs),
		Resolved:    ResolvePairs(boids, pairs),
	}
}
