package number

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampFloat(t *testing.T) {
	assert.Equal(t, 3.0, ClampFloat(1, 3, 5))
	assert.Equal(t, 5.0, ClampFloat(7, 3, 5))
	assert.Equal(t, 4.0, ClampFloat(4, 3, 5))
	assert.Equal(t, 3.0, ClampFloat(1, 5, 3))
}

func TestMinMax(t *testing.T) {
	lo, hi := MinMax(10, -2)
	assert.Equal(t, -2.0, lo)
	assert.Equal(t, 10.0, hi)
}

func TestIsZero(t *testing.T) {
	assert.True(t, IsZero(0.0000001))
	assert.False(t, IsZero(0.001))
}
