package vector

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 1e-9

func TestNormalizeNullVector(t *testing.T) {
	n := MakeNullVector2().Normalize()

	assert.False(t, math.IsNaN(n.GetX()))
	assert.False(t, math.IsNaN(n.GetY()))
	assert.Equal(t, MakeNullVector2(), n)
}

func TestNormalize(t *testing.T) {
	n := MakeVector2(3, 4).Normalize()
	assert.InDelta(t, 0.6, n.GetX(), delta)
	assert.InDelta(t, 0.8, n.GetY(), delta)
	assert.InDelta(t, 1.0, n.Mag(), delta)
}

func TestLimit(t *testing.T) {
	v := MakeVector2(30, 40)

	limited := v.Limit(5)
	assert.InDelta(t, 5.0, limited.Mag(), delta)
	assert.InDelta(t, 3.0, limited.GetX(), delta)

	// never amplifies
	short := MakeVector2(1, 1)
	assert.Equal(t, short, short.Limit(10))
}

func TestLimitIsIdempotent(t *testing.T) {
	for _, v := range []Vector2{
		MakeVector2(30, 40),
		MakeVector2(-0.2, 0.1),
		MakeVector2(1e6, -3),
		MakeNullVector2(),
	} {
		once := v.Limit(2.5)
		twice := once.Limit(2.5)
		assert.InDelta(t, once.GetX(), twice.GetX(), delta, v.String())
		assert.InDelta(t, once.GetY(), twice.GetY(), delta, v.String())
	}
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, MakeVector2(1, 1).Distance(MakeVector2(4, 5)), delta)
	assert.InDelta(t, 0.0, MakeVector2(1, 1).Distance(MakeVector2(1, 1)), delta)
}

func TestRotate(t *testing.T) {
	r := MakeVector2(1, 0).Rotate(math.Pi / 2)
	assert.InDelta(t, 0.0, r.GetX(), delta)
	assert.InDelta(t, 1.0, r.GetY(), delta)

	v := MakeVector2(2, -7)
	back := v.Rotate(0.7).Rotate(-0.7)
	assert.True(t, v.Equals(back))
}

func TestMult(t *testing.T) {
	assert.Equal(t, MakeVector2(8, -3), MakeVector2(2, 3).Mult(MakeVector2(4, -1)))
	assert.Equal(t, MakeVector2(0, 5), MakeVector2(7, 5).Mult(MakeVector2(0, 1)))
}

func TestImmutableOperations(t *testing.T) {
	v := MakeVector2(1, 2)
	_ = v.Add(MakeVector2(10, 10))
	_ = v.Scale(3)
	_ = v.Normalize()
	assert.Equal(t, MakeVector2(1, 2), v)
}

func TestJSON(t *testing.T) {
	data, err := json.Marshal(MakeVector2(1.5, -2))
	require.NoError(t, err)
	assert.Equal(t, "[1.5000,-2.0000]", string(data))

	var v Vector2
	require.NoError(t, json.Unmarshal(data, &v))
	assert.Equal(t, MakeVector2(1.5, -2), v)
}
