package random

import (
	"math"
	"math/rand"
)

// FoldedNormal draws from N(mean, stdev) and reflects negative draws to
// their absolute value. The folding shifts the effective mean up and
// narrows the variance when mean/stdev is small; coefficient tables are
// calibrated against that shape, not against the nominal Gaussian.
//
// Draws use the Marsaglia polar method; each accepted pair yields two
// samples, the second being kept for the next call.
type FoldedNormal struct {
	mean  float64
	stdev float64
	rnd   *rand.Rand

	spare    float64
	hasSpare bool
}

func NewFoldedNormal(rnd *rand.Rand, mean, stdev float64) *FoldedNormal {
	return &FoldedNormal{
		mean:  mean,
		stdev: stdev,
		rnd:   rnd,
	}
}

func (g *FoldedNormal) Draw() float64 {
	var y float64

	if g.hasSpare {
		y = g.spare
		g.hasSpare = false
	} else {
		var x1, x2, w float64
		for {
			x1 = 2.0*g.rnd.Float64() - 1.0
			x2 = 2.0*g.rnd.Float64() - 1.0
			w = x1*x1 + x2*x2
			if w < 1.0 && w > 0 {
				break
			}
		}

		w = math.Sqrt((-2.0 * math.Log(w)) / w)
		y = x1 * w
		g.spare = x2 * w
		g.hasSpare = true
	}

	return math.Abs(g.mean + g.stdev*y)
}

// FoldedNormalDraw is a one-shot draw that never reuses a cached sample.
func FoldedNormalDraw(rnd *rand.Rand, mean, stdev float64) float64 {
	return NewFoldedNormal(rnd, mean, stdev).Draw()
}

// IntBetween returns an integer uniformly drawn in [min, max].
func IntBetween(rnd *rand.Rand, min, max int) int {
	return rnd.Intn(max-min+1) + min
}
