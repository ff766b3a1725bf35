package collision

import (
	"sort"

	"github.com/bytearena/streetboids/common/utils"
	"github.com/bytearena/streetboids/game/boid"
	"github.com/dhconnelly/rtreego"
)

const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50
)

type boidRtreeWrapper struct {
	index int
	rect  *rtreego.Rect
}

func (w *boidRtreeWrapper) Bounds() *rtreego.Rect {
	return w.rect
}

// BroadPhase prunes candidate pairs with an R-tree of boid bounding boxes
// before the exact disc test. It yields the same pairs, in the same order,
// as BruteForce.
type BroadPhase struct{}

func (BroadPhase) DetectPairs(boids []*boid.Boid) []Pair {
	tree := rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren)
	wrappers := make([]*boidRtreeWrapper, len(boids))

	for i, b := range boids {
		rect, err := boundingRect(b.State())
		utils.Check(err, "rtreego Error")

		wrappers[i] = &boidRtreeWrapper{index: i, rect: rect}
		tree.Insert(wrappers[i])
	}

	pairs := make([]Pair, 0)

	for i, w := range wrappers {
		matching := tree.SearchIntersect(w.rect)
		candidates := make([]int, 0, len(matching))

		for _, spatial := range matching {
			other := spatial.(*boidRtreeWrapper)
			if other.index > i {
				candidates = append(candidates, other.index)
			}
		}

		sort.Ints(candidates)

		a := boids[i].State()
		for _, j := range candidates {
			if Overlaps(a, boids[j].State()) {
				pairs = append(pairs, Pair{I: i, J: j})
			}
		}
	}

	return pairs
}

func boundingRect(s boid.State) (*rtreego.Rect, error) {
	x, y := s.Position.Get()
	return rtreego.NewRect(
		rtreego.Point{x - s.Radius, y - s.Radius},
		[]float64{s.Radius * 2, s.Radius * 2},
	)
}
