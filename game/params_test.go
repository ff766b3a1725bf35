package game

import (
	"encoding/json"
	"testing"

	"github.com/bytearena/streetboids/game/boid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliderConversions(t *testing.T) {
	assert.Equal(t, 0.0, CautionFromSlider(0))
	assert.Equal(t, 0.5, CautionFromSlider(4))
	assert.Equal(t, MinQuickness, QuicknessFromSlider(0))
	assert.Equal(t, 1.5, QuicknessFromSlider(8))
}

func TestParamsReflectSetters(t *testing.T) {
	opts := seededOptions(800, 600, 2)
	opts.NumBoids = 5
	opts.Disabled = []boid.Type{boid.Moto}
	w := makeWorld(t, opts)

	w.SetCaution(0.25)
	w.SetQuickness(1.25)

	params := w.GetParams()
	assert.Equal(t, 0.25, params.Caution)
	assert.Equal(t, 1.25, params.Quickness)
	assert.Equal(t, map[boid.Type]bool{boid.Moto: false, boid.Car: true, boid.Bus: true}, params.Enabled)

	params.Enabled[boid.Car] = false
	assert.True(t, w.IsTypeEnabled(boid.Car))

	data, err := json.Marshal(w.GetParams())
	require.NoError(t, err)
	assert.JSONEq(t, `{"caution":0.25,"quickness":1.25,"enabled":{"moto":false,"car":true,"bus":true}}`, string(data))
}
