package random

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldedNormalNeverNegative(t *testing.T) {
	g := NewFoldedNormal(rand.New(rand.NewSource(1)), 0, 5)

	for i := 0; i < 10000; i++ {
		assert.GreaterOrEqual(t, g.Draw(), 0.0)
	}
}

func TestFoldedNormalMeanIsShiftedUp(t *testing.T) {
	g := NewFoldedNormal(rand.New(rand.NewSource(42)), 2, 2)

	n := 200000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += g.Draw()
	}
	mean := sum / float64(n)

	// E|X| for X ~ N(2, 2) is ~2.33
	expected := 2*math.Sqrt(2/math.Pi)*math.Exp(-0.5) + 2*(1-2*normalCDF(-1))
	assert.InDelta(t, expected, mean, 0.03)
	assert.Greater(t, mean, 2.0)
}

func TestFoldedNormalWideMeanIsUnaffected(t *testing.T) {
	g := NewFoldedNormal(rand.New(rand.NewSource(7)), 70, 9)

	n := 100000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += g.Draw()
	}
	assert.InDelta(t, 70.0, sum/float64(n), 0.2)
}

func TestFoldedNormalIsDeterministicPerSeed(t *testing.T) {
	a := NewFoldedNormal(rand.New(rand.NewSource(3)), 10, 3)
	b := NewFoldedNormal(rand.New(rand.NewSource(3)), 10, 3)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Draw(), b.Draw())
	}
}

func TestIntBetween(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	for i := 0; i < 1000; i++ {
		v := IntBetween(rnd, -99, 100)
		assert.True(t, v >= -99 && v <= 100)
	}
}

func normalCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}
