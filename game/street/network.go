package street

import (
	"math"
	"math/rand"

	"github.com/bytearena/streetboids/common/assert"
	"github.com/bytearena/streetboids/common/utils/random"
	"github.com/bytearena/streetboids/common/utils/vector"
)

// Generation constants, in canvas units.
const (
	LaneWidth   = 30.0
	LaneSpacing = 100.0
	FirstLane   = 100.0

	HorizontalOverrun = 150.0
	VerticalOverrun   = 100.0

	westEastStartX   = -100.0
	northSouthStartY = -200.0

	HorizontalMean  = 2.0
	HorizontalStdev = 2.0
	VerticalMean    = 3.0
	VerticalStdev   = 2.0

	maxGenerationAttempts = 10
)

type Network struct {
	streets []Street
}

func NewNetwork(streets []Street) *Network {
	cp := make([]Street, len(streets))
	copy(cp, streets)

	return &Network{
		streets: cp,
	}
}

// GenerateNetwork draws lane counts from folded normals and lays lanes out
// on a fixed grid over a screen of the given size. An empty draw is retried;
// past the attempt cap a single west-east lane is laid so the network is
// never empty.
func GenerateNetwork(rnd *rand.Rand, screenWidth, screenHeight float64) *Network {
	for attempt := 0; attempt < maxGenerationAttempts; attempt++ {
		numHorizontal := laneCount(random.FoldedNormalDraw(rnd, HorizontalMean, HorizontalStdev))
		numVertical := laneCount(random.FoldedNormalDraw(rnd, VerticalMean, VerticalStdev))

		if numHorizontal+numVertical == 0 {
			continue
		}

		return generate(rnd, screenWidth, screenHeight, numHorizontal, numVertical)
	}

	return NewNetwork([]Street{horizontalLane(0, screenWidth, true)})
}

// GenerateNetworkWithCounts lays out exactly the requested lanes.
func GenerateNetworkWithCounts(rnd *rand.Rand, screenWidth, screenHeight float64, numHorizontal, numVertical int) *Network {
	assert.Assert(numHorizontal+numVertical > 0, "a street network needs at least one lane")
	return generate(rnd, screenWidth, screenHeight, numHorizontal, numVertical)
}

// a lane is laid for every integer i < draw
func laneCount(draw float64) int {
	return int(math.Ceil(draw))
}

func generate(rnd *rand.Rand, screenWidth, screenHeight float64, numHorizontal, numVertical int) *Network {
	streets := make([]Street, 0, numHorizontal+numVertical)

	for i := 0; i < numHorizontal; i++ {
		streets = append(streets, horizontalLane(i, screenWidth, rnd.Float64() < 0.5))
	}

	for i := 0; i < numVertical; i++ {
		streets = append(streets, verticalLane(i, screenHeight, rnd.Float64() < 0.5))
	}

	return &Network{streets: streets}
}

// Lanes of both directions paint the same segment, which overruns the
// screen on both ends so that a body clamped to its corridor can still
// leave the viewport and wrap.
func horizontalLane(i int, screenWidth float64, westEast bool) Street {
	y := FirstLane + LaneSpacing*float64(i)
	east := screenWidth + HorizontalOverrun
	span := east - westEastStartX

	if westEast {
		return MakeStreet(vector.MakeVector2(westEastStartX, y), vector.MakeVector2(span, 0), LaneWidth)
	}

	return MakeStreet(vector.MakeVector2(east, y), vector.MakeVector2(-span, 0), LaneWidth)
}

func verticalLane(i int, screenHeight float64, northSouth bool) Street {
	x := FirstLane + LaneSpacing*float64(i)
	south := screenHeight + VerticalOverrun
	span := south - northSouthStartY

	if northSouth {
		return MakeStreet(vector.MakeVector2(x, northSouthStartY), vector.MakeVector2(0, span), LaneWidth)
	}

	return MakeStreet(vector.MakeVector2(x, south), vector.MakeVector2(0, -span), LaneWidth)
}

func (n *Network) Len() int {
	return len(n.streets)
}

// Get panics when idx is outside the network.
func (n *Network) Get(idx int) Street {
	assert.Assertf(idx >= 0 && idx < len(n.streets), "street index %d out of range [0, %d)", idx, len(n.streets))
	return n.streets[idx]
}

func (n *Network) Streets() []Street {
	res := make([]Street, len(n.streets))
	copy(res, n.streets)
	return res
}

func (n *Network) RandomIndex(rnd *rand.Rand) int {
	return rnd.Intn(len(n.streets))
}
