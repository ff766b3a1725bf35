package game

import (
	"math"

	"github.com/bytearena/streetboids/common/utils/number"
)

type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BaseRadius scales boids with the screen width, within [3, 5].
func BaseRadius(width float64) float64 {
	return number.ClampFloat(width/288, 3, 5)
}

// SpeedIndex maps the screen width to the speed multiplier of every boid.
func SpeedIndex(width float64) float64 {
	if width/160 < 5 {
		return 2
	} else if width/180 > 8 {
		return 5
	}

	return width / 720
}

const (
	MinBoids = 250
	MaxBoids = 500
)

func DefaultBoidCount(width, height float64) int {
	return int(number.ClampFloat(math.Sqrt(width*height)/2, MinBoids, MaxBoids))
}
