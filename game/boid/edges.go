package boid

import (
	"github.com/bytearena/streetboids/common/utils/vector"
	"github.com/bytearena/streetboids/game/street"
)

// Confine stops the boid on the edge of its lane corridor. Velocity is kept.
func (b *Boid) Confine(s street.Street) {
	b.position = s.BoundingBox(b.radius).Clamp(b.position)
}

// Wrap moves a boid that left the viewport to the opposite edge.
func (b *Boid) Wrap(width, height float64) {
	x, y := b.position.Get()

	if x < 0 {
		x = width
	} else if x > width {
		x = 0
	}

	if y < 0 {
		y = height
	} else if y > height {
		y = 0
	}

	b.position = vector.MakeVector2(x, y)
}

// CheckEdges confines to the lane first, then wraps at the viewport.
func (b *Boid) CheckEdges(s street.Street, width, height float64) {
	b.Confine(s)
	b.Wrap(width, height)
}
