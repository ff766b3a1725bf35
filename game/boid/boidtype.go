package boid

import (
	"github.com/bytearena/streetboids/common/assert"
)

type Type int

const (
	Moto Type = iota
	Car
	Bus
)

// Types lists every boid type, in spawn-table order.
var Types = []Type{Moto, Car, Bus}

type Distribution struct {
	Mean  float64 `json:"mean"`
	Stdev float64 `json:"stdev"`
}

type Specs struct {
	Name  string `json:"name"`
	Color string `json:"color"`

	// Coefficient distributions, in percent
	Caution      Distribution `json:"caution"`
	Quickness    Distribution `json:"quickness"`
	Cohesiveness Distribution `json:"cohesiveness"`

	RadiusCoefficients []float64 `json:"radiuscoefficients"` // one is picked uniformly per boid
	StreetWeight       float64   `json:"streetweight"`       // weight of the lane direction force
}

var motoSpecs = Specs{
	Name:               "moto",
	Color:              "#f9f9f9",
	Caution:            Distribution{40, 9},
	Quickness:          Distribution{75, 7.5},
	Cohesiveness:       Distribution{100, 50},
	RadiusCoefficients: []float64{.5, .6},
	StreetWeight:       0.6,
}

var carSpecs = Specs{
	Name:               "car",
	Color:              "#41f4a0",
	Caution:            Distribution{70, 9},
	Quickness:          Distribution{45, 7.5},
	Cohesiveness:       Distribution{100, 30},
	RadiusCoefficients: []float64{.8, 1},
	StreetWeight:       1,
}

var busSpecs = Specs{
	Name:               "bus",
	Color:              "#f4416a",
	Caution:            Distribution{50, 9},
	Quickness:          Distribution{55, 7.5},
	Cohesiveness:       Distribution{20, 20},
	RadiusCoefficients: []float64{1.5, 1.7},
	StreetWeight:       1,
}

func (t Type) Specs() Specs {
	switch t {
	case Moto:
		return motoSpecs
	case Car:
		return carSpecs
	case Bus:
		return busSpecs
	}

	assert.Assertf(false, "unknown boid type %d", int(t))
	return Specs{}
}

func (t Type) String() string {
	return t.Specs().Name
}

func (t Type) IsValid() bool {
	return t >= Moto && t <= Bus
}

// ParseType resolves a type from its name.
func ParseType(name string) (Type, bool) {
	for _, t := range Types {
		if t.Specs().Name == name {
			return t, true
		}
	}

	return Moto, false
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	parsed, ok := ParseType(string(text))
	if !ok {
		return &UnknownTypeError{Name: string(text)}
	}

	*t = parsed
	return nil
}

type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return "unknown boid type \"" + e.Name + "\""
}

// Percentages of the spawn mix; motos take the remainder.
const (
	PercentBus = 10
	PercentCar = 30
)

// TypeFromRoll maps a roll in [0, 100) onto the spawn mix.
func TypeFromRoll(roll int) Type {
	if roll <= PercentBus {
		return Bus
	} else if roll <= PercentBus+PercentCar {
		return Car
	}

	return Moto
}
