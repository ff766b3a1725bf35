package game

import (
	"github.com/bytearena/streetboids/game/boid"
)

const (
	MinQuickness = 0.5
	sliderScale  = 8.0
)

// CautionFromSlider converts the 0..8 caution slider of the viz client.
func CautionFromSlider(value float64) float64 {
	return value / sliderScale
}

// QuicknessFromSlider converts the 0..8 quickness slider; the slowest
// setting is MinQuickness, not zero.
func QuicknessFromSlider(value float64) float64 {
	return value/sliderScale + MinQuickness
}

// Params is the user-tunable state of a world.
type Params struct {
	Caution   float64            `json:"caution"`
	Quickness float64            `json:"quickness"`
	Enabled   map[boid.Type]bool `json:"enabled"`
}

func (w *World) GetParams() Params {
	enabled := make(map[boid.Type]bool, len(w.enabled))
	for t, e := range w.enabled {
		enabled[t] = e
	}

	return Params{
		Caution:   w.globals.Caution,
		Quickness: w.globals.Quickness,
		Enabled:   enabled,
	}
}
