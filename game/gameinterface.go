package game

import (
	"github.com/bytearena/streetboids/common/utils/vector"
	"github.com/bytearena/streetboids/game/boid"
)

// GameInterface is what a runner drives: a stepped, tunable simulation.
type GameInterface interface {
	Step(dt float64) TickReport
	Tick() TickReport
	Render(renderer Renderer)
	Snapshot() Frame

	SetCaution(value float64)
	SetQuickness(value float64)
	SetTypeEnabled(t boid.Type, enabled bool)
	Resize(width, height float64)
}

var _ GameInterface = (*World)(nil)

// Renderer draws one frame. Streets are drawn first, then every active boid.
type Renderer interface {
	DrawStreet(from, to vector.Vector2, width float64, color string)
	DrawBoid(id int, position vector.Vector2, radius float64, color string)
}
