package street

import (
	"github.com/bytearena/streetboids/common/assert"
	"github.com/bytearena/streetboids/common/utils/number"
	"github.com/bytearena/streetboids/common/utils/vector"
)

const Color = "grey"

// Street is an axis-aligned lane. Direction runs from StartingPoint to the
// far end of the lane and is not normalized; its sign is the travel direction.
type Street struct {
	StartingPoint vector.Vector2 `json:"start"`
	Direction     vector.Vector2 `json:"direction"`
	Width         float64        `json:"width"`
}

func MakeStreet(start vector.Vector2, direction vector.Vector2, width float64) Street {
	s := Street{
		StartingPoint: start,
		Direction:     direction,
		Width:         width,
	}

	assert.Assert(s.IsAxisAligned(), "street must be axis-aligned, got direction "+direction.String())
	assert.Assert(width > 0, "street width must be positive")

	return s
}

func (s Street) IsHorizontal() bool {
	return s.Direction.GetX() != 0 && s.Direction.GetY() == 0
}

func (s Street) IsVertical() bool {
	return s.Direction.GetY() != 0 && s.Direction.GetX() == 0
}

func (s Street) IsAxisAligned() bool {
	return s.IsHorizontal() || s.IsVertical()
}

func (s Street) End() vector.Vector2 {
	return s.StartingPoint.Add(s.Direction)
}

// Box is an axis-aligned rectangle; Min is always <= Max on both axes.
type Box struct {
	Min vector.Vector2
	Max vector.Vector2
}

func (b Box) Contains(p vector.Vector2) bool {
	x, y := p.Get()
	return x >= b.Min.GetX() && x <= b.Max.GetX() && y >= b.Min.GetY() && y <= b.Max.GetY()
}

// Clamp moves p onto the nearest point of the box.
func (b Box) Clamp(p vector.Vector2) vector.Vector2 {
	x, y := p.Get()

	if x <= b.Min.GetX() {
		x = b.Min.GetX()
	} else if x >= b.Max.GetX() {
		x = b.Max.GetX()
	}

	if y <= b.Min.GetY() {
		y = b.Min.GetY()
	} else if y >= b.Max.GetY() {
		y = b.Max.GetY()
	}

	return vector.MakeVector2(x, y)
}

// BoundingBox is the corridor a body of the given radius can occupy on the
// street: the half width applies across the travel axis only, and every edge
// is pulled in by radius so the body stays on the painted lane.
func (s Street) BoundingBox(radius float64) Box {
	relativeWidthX := 0.0
	if s.Direction.GetY() != 0 {
		relativeWidthX = s.Width / 2
	}

	relativeWidthY := 0.0
	if s.Direction.GetX() != 0 {
		relativeWidthY = s.Width / 2
	}

	sx, sy := s.StartingPoint.Get()
	dx, dy := s.Direction.Get()

	// order the painted span first, so the corridor shrinks by radius
	// whatever the travel direction
	loX, hiX := number.MinMax(sx, sx+dx)
	loY, hiY := number.MinMax(sy, sy+dy)

	// a body wider than the lane collapses the cross axis; keep it ordered
	minX, maxX := number.MinMax(loX-relativeWidthX+radius, hiX+relativeWidthX-radius)
	minY, maxY := number.MinMax(loY-relativeWidthY+radius, hiY+relativeWidthY-radius)

	return Box{
		Min: vector.MakeVector2(minX, minY),
		Max: vector.MakeVector2(maxX, maxY),
	}
}
