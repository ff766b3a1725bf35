package boid

import (
	"math"
	"math/rand"

	"github.com/bytearena/streetboids/common/utils/random"
	"github.com/bytearena/streetboids/common/utils/vector"
)

type samplers struct {
	caution      *random.FoldedNormal
	quickness    *random.FoldedNormal
	cohesiveness *random.FoldedNormal
}

// Factory draws per-individual coefficients. Each type keeps its own
// samplers so consecutive draws of one type share the cached polar sample.
type Factory struct {
	rnd      *rand.Rand
	samplers map[Type]samplers
}

func NewFactory(rnd *rand.Rand) *Factory {
	f := &Factory{
		rnd:      rnd,
		samplers: make(map[Type]samplers),
	}

	for _, t := range Types {
		specs := t.Specs()
		f.samplers[t] = samplers{
			caution:      random.NewFoldedNormal(rnd, specs.Caution.Mean, specs.Caution.Stdev),
			quickness:    random.NewFoldedNormal(rnd, specs.Quickness.Mean, specs.Quickness.Stdev),
			cohesiveness: random.NewFoldedNormal(rnd, specs.Cohesiveness.Mean, specs.Cohesiveness.Stdev),
		}
	}

	return f
}

func (f *Factory) RollType() Type {
	return TypeFromRoll(f.rnd.Intn(100))
}

// Make creates a boid of type t with freshly sampled coefficients, a radius
// derived from baseRadius, and a random heading at half its max speed.
func (f *Factory) Make(id int, t Type, position vector.Vector2, streetIdx int, baseRadius float64, globals Globals) *Boid {
	specs := t.Specs()
	s := f.samplers[t]

	params := Params{
		ID:        id,
		Type:      t,
		Position:  position,
		Radius:    baseRadius * specs.RadiusCoefficients[f.rnd.Intn(len(specs.RadiusCoefficients))],
		StreetIdx: streetIdx,

		CautionCoefficient:   s.caution.Draw() / 100,
		QuicknessCoefficient: s.quickness.Draw() / 100,
		Cohesiveness:         s.cohesiveness.Draw() / 100,
	}

	b := MakeBoid(params, globals)

	radians := math.Pi * float64(random.IntBetween(f.rnd, -99, 100)) / 100
	b.velocity = vector.MakeVector2FromAngle(radians, b.maxSpeed*0.5)

	return b
}
