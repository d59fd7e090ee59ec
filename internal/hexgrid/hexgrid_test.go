package hexgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNeighborOppositeRoundTrip(t *testing.T) {
	g := NewGrid(20, 20)
	p := Point{X: 5, Y: 5}
	for d := Direction(0); d < DirectionCount; d++ {
		n := g.Neighbor(p, d)
		back := g.Neighbor(n, d.Opposite())
		assert.Equal(t, p, back, "direction %v should round-trip via its opposite", d)
	}
}

func TestDistanceToSelfIsZero(t *testing.T) {
	g := NewGrid(10, 10)
	p := Point{X: 3, Y: 4}
	assert.Equal(t, 0, g.Distance(p, p))
}

func TestDistanceToNeighborIsOne(t *testing.T) {
	g := NewGrid(10, 10)
	p := Point{X: 4, Y: 4}
	for d := Direction(0); d < DirectionCount; d++ {
		n := g.Neighbor(p, d)
		assert.Equal(t, 1, g.Distance(p, n), "direction %v", d)
	}
}

func TestFloodFillVisitsOnlyReachable(t *testing.T) {
	g := NewGrid(6, 6)
	start := Point{X: 0, Y: 0}
	allowed := map[Point]bool{start: true}
	// Only allow stepping East from the start, once.
	stepOk := func(p Point, d Direction) bool {
		return p == start && d == East
	}
	var visited []Point
	g.FloodFill(start, stepOk, func(p Point) { visited = append(visited, p) })
	require.Len(t, visited, 2)
	assert.Equal(t, start, visited[0])
	assert.Equal(t, g.Neighbor(start, East), visited[1])
	_ = allowed
}

func TestAStarFindsDirectRoute(t *testing.T) {
	g := NewGrid(12, 12)
	start := Point{X: 0, Y: 0}
	target := g.Neighbor(g.Neighbor(start, East), East)
	stepOk := func(Point, Direction) bool { return true }
	cost := func(Point, Direction) float64 { return 1 }
	route, ok := g.AStar(start, stepOk, func(p Point) bool { return p == target }, g.HexDistanceHeuristic(target), cost)
	require.True(t, ok)
	assert.Equal(t, g.Distance(start, target), len(route))

	cur := start
	for _, d := range route {
		cur = g.Neighbor(cur, d)
	}
	assert.Equal(t, target, cur)
}

func TestAStarFailsWhenBlocked(t *testing.T) {
	g := NewGrid(8, 8)
	start := Point{X: 0, Y: 0}
	target := Point{X: 4, Y: 4}
	stepOk := func(Point, Direction) bool { return false }
	_, ok := g.AStar(start, stepOk, func(p Point) bool { return p == target }, g.HexDistanceHeuristic(target), func(Point, Direction) float64 { return 1 })
	assert.False(t, ok)
}

func TestNearestOrdersByDistance(t *testing.T) {
	g := NewGrid(20, 20)
	pt := Point{X: 10, Y: 10}
	candidates := []Point{
		{X: 15, Y: 15},
		{X: 11, Y: 10},
		{X: 10, Y: 12},
	}
	nearest := g.Nearest(pt, candidates, 2)
	require.Len(t, nearest, 2)
	assert.Equal(t, Point{X: 11, Y: 10}, nearest[0])
}

// Property: hex distance is symmetric and never negative, for any two
// points on any reasonably sized toroidal grid.
func TestDistanceIsSymmetric(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.IntRange(4, 40).Draw(rt, "width")
		h := rapid.IntRange(4, 40).Draw(rt, "height")
		g := NewGrid(w, h)
		a := Point{X: rapid.IntRange(0, w-1).Draw(rt, "ax"), Y: rapid.IntRange(0, h-1).Draw(rt, "ay")}
		b := Point{X: rapid.IntRange(0, w-1).Draw(rt, "bx"), Y: rapid.IntRange(0, h-1).Draw(rt, "by")}

		dab := g.Distance(a, b)
		dba := g.Distance(b, a)
		if dab != dba {
			rt.Fatalf("distance not symmetric: d(a,b)=%d d(b,a)=%d", dab, dba)
		}
		if dab < 0 {
			rt.Fatalf("negative distance: %d", dab)
		}
	})
}

// Property: every neighbor of a point is at distance 1.
func TestNeighborsAreAlwaysDistanceOne(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.IntRange(4, 40).Draw(rt, "width")
		h := rapid.IntRange(4, 40).Draw(rt, "height")
		g := NewGrid(w, h)
		p := Point{X: rapid.IntRange(0, w-1).Draw(rt, "px"), Y: rapid.IntRange(0, h-1).Draw(rt, "py")}
		d := Direction(rapid.IntRange(0, DirectionCount-1).Draw(rt, "dir"))
		n := g.Neighbor(p, d)
		if g.Distance(p, n) != 1 {
			rt.Fatalf("neighbor %v of %v in direction %v is at distance %d", n, p, d, g.Distance(p, n))
		}
	})
}
