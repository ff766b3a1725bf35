package boid

import (
	"math"
	"math/rand"
	"testing"

	"github.com/bytearena/streetboids/common/utils/vector"
	"github.com/bytearena/streetboids/game/street"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

var testGlobals = Globals{Caution: 0.5, Quickness: 1, SpeedIndex: 4}

func makeTestBoid(id int, t Type, pos, vel vector.Vector2, streetIdx int) *Boid {
	return MakeBoid(Params{
		ID:                   id,
		Type:                 t,
		Position:             pos,
		Velocity:             vel,
		Radius:               5,
		StreetIdx:            streetIdx,
		CautionCoefficient:   0.5,
		QuicknessCoefficient: 0.5,
		Cohesiveness:         1,
	}, testGlobals)
}

var westEast = street.MakeStreet(vector.MakeVector2(-100, 100), vector.MakeVector2(1000, 0), 30)

func TestDerivedFields(t *testing.T) {
	b := makeTestBoid(0, Car, vector.MakeVector2(0, 0), vector.MakeNullVector2(), 0)

	assert.InDelta(t, 0.25, b.GetCaution(), eps)
	assert.InDelta(t, 0.5, b.GetQuickness(), eps)
	assert.InDelta(t, 2.0, b.GetMaxSpeed(), eps)
	assert.Equal(t, MaxForce, b.GetMaxForce())
	assert.InDelta(t, 4.0/3.0*math.Pi*125, b.GetMass(), eps)

	b.SetCaution(0.8)
	assert.InDelta(t, 0.4, b.GetCaution(), eps)

	b.SetQuickness(2)
	assert.InDelta(t, 1.0, b.GetQuickness(), eps)
	assert.InDelta(t, 4.0, b.GetMaxSpeed(), eps)
}

func TestInitialVelocityIsClamped(t *testing.T) {
	b := makeTestBoid(0, Car, vector.MakeVector2(0, 0), vector.MakeVector2(100, 0), 0)
	assert.InDelta(t, b.GetMaxSpeed(), b.GetVelocity().Mag(), eps)
}

func TestSetQuicknessClampsVelocity(t *testing.T) {
	b := makeTestBoid(0, Car, vector.MakeVector2(0, 0), vector.MakeVector2(100, 0), 0)
	require.InDelta(t, 2.0, b.GetVelocity().Mag(), eps)

	b.SetQuickness(0.5)

	assert.InDelta(t, 1.0, b.GetMaxSpeed(), eps)
	assert.InDelta(t, 1.0, b.GetVelocity().GetX(), eps)

	b.SetQuickness(2)
	assert.InDelta(t, 1.0, b.GetVelocity().Mag(), eps)
}

func TestSeekInsideBufferStops(t *testing.T) {
	b := makeTestBoid(0, Car, vector.MakeVector2(0, 0), vector.MakeVector2(0.2, 0), 0)

	// buffer with a radius-5 target is 11
	force := b.Seek(vector.MakeVector2(10, 0), 5)
	assert.InDelta(t, -0.2, force.GetX(), eps)
	assert.InDelta(t, 0.0, force.GetY(), eps)

	// a bare point uses 2r+1
	force = b.Seek(vector.MakeVector2(10.5, 0), 0)
	assert.InDelta(t, -0.2, force.GetX(), eps)
}

func TestSeekBrakesProportionally(t *testing.T) {
	b := makeTestBoid(0, Car, vector.MakeVector2(0, 0), vector.MakeNullVector2(), 0)
	b.maxForce = 100 // observe the raw desired velocity

	force := b.Seek(vector.MakeVector2(50, 0), 0)
	assert.InDelta(t, b.GetMaxSpeed()*0.5, force.GetX(), eps)

	far := b.Seek(vector.MakeVector2(0, 400), 0)
	assert.InDelta(t, b.GetMaxSpeed(), far.GetY(), eps)
}

func TestSeekIsClampedToMaxForce(t *testing.T) {
	b := makeTestBoid(0, Car, vector.MakeVector2(0, 0), vector.MakeNullVector2(), 0)

	force := b.Seek(vector.MakeVector2(500, 0), 0)
	assert.InDelta(t, MaxForce, force.Mag(), eps)
}

func TestSeparate(t *testing.T) {
	b := makeTestBoid(0, Car, vector.MakeVector2(0, 0), vector.MakeNullVector2(), 0)

	assert.Equal(t, vector.MakeNullVector2(), b.Separate(nil))
	assert.Equal(t, vector.MakeNullVector2(), b.Separate([]State{b.State()}))

	// desired separation is 5+5+25*0.25 = 16.25
	far := makeTestBoid(1, Car, vector.MakeVector2(17, 0), vector.MakeNullVector2(), 1)
	assert.Equal(t, vector.MakeNullVector2(), b.Separate([]State{far.State()}))

	near := makeTestBoid(2, Car, vector.MakeVector2(12, 0), vector.MakeNullVector2(), 1)
	force := b.Separate([]State{b.State(), near.State(), far.State()})
	assert.InDelta(t, -MaxForce, force.GetX(), eps)
	assert.InDelta(t, 0.0, force.GetY(), eps)
}

func TestAlignOnlyConsidersSameStreet(t *testing.T) {
	b := makeTestBoid(0, Car, vector.MakeVector2(0, 0), vector.MakeNullVector2(), 0)

	otherLane := makeTestBoid(1, Car, vector.MakeVector2(10, 0), vector.MakeVector2(0, 1), 1)
	assert.Equal(t, vector.MakeNullVector2(), b.Align([]State{otherLane.State()}))

	tooFar := makeTestBoid(2, Car, vector.MakeVector2(60, 0), vector.MakeVector2(0, 1), 0)
	assert.Equal(t, vector.MakeNullVector2(), b.Align([]State{tooFar.State()}))

	sameLane := makeTestBoid(3, Car, vector.MakeVector2(10, 0), vector.MakeVector2(0, 1), 0)
	force := b.Align([]State{otherLane.State(), tooFar.State(), sameLane.State()})
	assert.InDelta(t, 0.0, force.GetX(), eps)
	assert.InDelta(t, MaxForce, force.GetY(), eps)
}

func TestCohesion(t *testing.T) {
	b := makeTestBoid(0, Car, vector.MakeVector2(0, 0), vector.MakeNullVector2(), 0)

	assert.Equal(t, vector.MakeNullVector2(), b.Cohesion(nil))

	a1 := makeTestBoid(1, Car, vector.MakeVector2(40, 10), vector.MakeNullVector2(), 0)
	a2 := makeTestBoid(2, Car, vector.MakeVector2(40, -10), vector.MakeNullVector2(), 0)
	force := b.Cohesion([]State{a1.State(), a2.State()})

	assert.Greater(t, force.GetX(), 0.0)
	assert.InDelta(t, 0.0, force.GetY(), eps)
	assert.Equal(t, b.Seek(vector.MakeVector2(40, 0), 0), force)
}

func TestDirectionality(t *testing.T) {
	b := makeTestBoid(0, Car, vector.MakeVector2(0, 100), vector.MakeNullVector2(), 0)

	force := b.Directionality(westEast)
	assert.InDelta(t, MaxForce, force.GetX(), eps)
	assert.InDelta(t, 0.0, force.GetY(), eps)
}

func TestLoneBoidConvergesToStreetDirection(t *testing.T) {
	b := makeTestBoid(0, Car, vector.MakeVector2(300, 100), vector.MakeVector2(-1, 1.5), 0)

	for i := 0; i < 200; i++ {
		forces := b.Steering([]State{b.State()}, westEast)
		assert.Equal(t, vector.MakeNullVector2(), forces.Align)
		assert.Equal(t, vector.MakeNullVector2(), forces.Separate)
		assert.Equal(t, vector.MakeNullVector2(), forces.Cohesion)

		b.ApplyForces(forces, 1)
		b.Integrate(1)
		b.CheckEdges(westEast, 800, 600)

		assert.LessOrEqual(t, b.GetVelocity().Mag(), b.GetMaxSpeed()+eps)
	}

	assert.InDelta(t, b.GetMaxSpeed(), b.GetVelocity().GetX(), 1e-6)
	assert.InDelta(t, 0.0, b.GetVelocity().GetY(), 1e-6)
}

func TestConfineClampsPositionOnly(t *testing.T) {
	// lane corridor in y is [90, 110] for radius 5
	b := makeTestBoid(0, Car, vector.MakeVector2(200, 112), vector.MakeVector2(0, 1.5), 0)

	b.Confine(westEast)

	assert.Equal(t, vector.MakeVector2(200, 110), b.GetPosition())
	assert.Equal(t, vector.MakeVector2(0, 1.5), b.GetVelocity())
	assert.True(t, westEast.BoundingBox(b.GetRadius()).Contains(b.GetPosition()))
}

func TestWrap(t *testing.T) {
	b := makeTestBoid(0, Car, vector.MakeVector2(-1, 300), vector.MakeNullVector2(), 0)
	b.Wrap(800, 600)
	assert.Equal(t, vector.MakeVector2(800, 300), b.GetPosition())

	b.SetPosition(vector.MakeVector2(801, 601))
	b.Wrap(800, 600)
	assert.Equal(t, vector.MakeVector2(0, 0), b.GetPosition())

	b.SetPosition(vector.MakeVector2(400, -3))
	b.Wrap(800, 600)
	assert.Equal(t, vector.MakeVector2(400, 600), b.GetPosition())
}

func TestFactory(t *testing.T) {
	f := NewFactory(rand.New(rand.NewSource(9)))

	for i, tp := range []Type{Moto, Car, Bus, Car, Moto} {
		b := f.Make(i, tp, vector.MakeVector2(10, 10), 2, 4, testGlobals)
		specs := tp.Specs()

		require.Equal(t, tp, b.GetType())
		assert.Contains(t, []float64{4 * specs.RadiusCoefficients[0], 4 * specs.RadiusCoefficients[1]}, b.GetRadius())
		assert.GreaterOrEqual(t, b.GetCautionCoefficient(), 0.0)
		assert.GreaterOrEqual(t, b.GetQuicknessCoefficient(), 0.0)
		assert.GreaterOrEqual(t, b.GetCohesiveness(), 0.0)
		assert.InDelta(t, b.GetMaxSpeed()*0.5, b.GetVelocity().Mag(), 1e-9)
		assert.Equal(t, 2, b.GetStreetIdx())
	}
}

func TestTypeFromRoll(t *testing.T) {
	assert.Equal(t, Bus, TypeFromRoll(0))
	assert.Equal(t, Bus, TypeFromRoll(10))
	assert.Equal(t, Car, TypeFromRoll(11))
	assert.Equal(t, Car, TypeFromRoll(40))
	assert.Equal(t, Moto, TypeFromRoll(41))
	assert.Equal(t, Moto, TypeFromRoll(99))
}

func TestTypeText(t *testing.T) {
	var tp Type
	require.NoError(t, tp.UnmarshalText([]byte("bus")))
	assert.Equal(t, Bus, tp)
	assert.Error(t, tp.UnmarshalText([]byte("tram")))

	text, err := Car.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "car", string(text))

	assert.Panics(t, func() { Type(7).Specs() })
}
