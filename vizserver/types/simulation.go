package types

import (
	"github.com/bytearena/streetboids/game"
	"github.com/bytearena/streetboids/game/boid"
)

// SimulationInstance is the running simulation as seen by the viz server.
type SimulationInstance interface {
	GetWorldId() string
	GetTps() int

	Snapshot() game.Frame
	GetParams() game.Params

	SubscribeStateObservation() chan game.Frame
	UnsubscribeStateObservation(ch chan game.Frame)

	SetCaution(value float64) error
	SetQuickness(value float64) error
	SetTypeEnabled(t boid.Type, enabled bool) error
	Resize(width, height float64) error
}
