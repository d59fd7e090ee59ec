package hexgrid

import "container/heap"

// CostFn returns the additional cost of stepping from p in direction d.
// A negative or zero value is treated as an unusable edge by the caller's
// stepOk, not by the cost function.
type CostFn func(p Point, d Direction) float64

// HeuristicFn must be admissible: it must never overestimate the true
// remaining cost from p to the (unknown in advance) goal.
type HeuristicFn func(p Point) float64

// AtEnd reports whether p satisfies the search's goal condition.
type AtEnd func(p Point) bool

// Route is the ordered list of directions from a search's start point to
// the first point satisfying AtEnd.
type Route []Direction

type openEntry struct {
	point     Point
	g, f      float64
	cameFrom  Direction
	hasParent bool
	heapIndex int
}

type openQueue []*openEntry

func (q openQueue) Len() int { return len(q) }
func (q openQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	// Tie-break: lowest total estimate first is already handled by f;
	// among equal f, prefer the lower linearised point index for
	// determinism (spec §4.1).
	return q[i].point.Y*1_000_003+q[i].point.X < q[j].point.Y*1_000_003+q[j].point.X
}
func (q openQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].heapIndex = i
	q[j].heapIndex = j
}
func (q *openQueue) Push(x any) {
	e := x.(*openEntry)
	e.heapIndex = len(*q)
	*q = append(*q, e)
}
func (q *openQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

// AStar runs a best-first search from start to the first point
// satisfying atEnd, returning the direction sequence to reach it.
// Returns (nil, false) if the open set is exhausted without success.
//
// Grounded on the teacher's pathfinding.go PathNodeHeap (container/heap,
// HeapIndex-tracked) generalised from a grid-coordinate A* to hex
// directions, and on the RueaEconomyStudio astar.go priority-queue shape.
func (g Grid) AStar(start Point, stepOk StepOk, atEnd AtEnd, heuristic HeuristicFn, cost CostFn) (Route, bool) {
	if atEnd(start) {
		return Route{}, true
	}

	gScore := make(map[int]float64, 64)
	cameFromDir := make(map[int]Direction, 64)
	cameFromPoint := make(map[int]Point, 64)
	closed := make(map[int]bool, 64)

	startIdx := g.Index(start)
	gScore[startIdx] = 0

	oq := &openQueue{}
	heap.Init(oq)
	heap.Push(oq, &openEntry{point: start, g: 0, f: heuristic(start)})

	for oq.Len() > 0 {
		cur := heap.Pop(oq).(*openEntry)
		curIdx := g.Index(cur.point)
		if closed[curIdx] {
			continue
		}
		if atEnd(cur.point) {
			return g.reconstruct(cur.point, cameFromDir, cameFromPoint, startIdx), true
		}
		closed[curIdx] = true

		for d := Direction(0); d < DirectionCount; d++ {
			if !stepOk(cur.point, d) {
				continue
			}
			next := g.Neighbor(cur.point, d)
			nextIdx := g.Index(next)
			if closed[nextIdx] {
				continue
			}
			tentativeG := cur.g + cost(cur.point, d)
			if existing, ok := gScore[nextIdx]; ok && tentativeG >= existing {
				continue
			}
			gScore[nextIdx] = tentativeG
			cameFromDir[nextIdx] = d
			cameFromPoint[nextIdx] = cur.point
			heap.Push(oq, &openEntry{point: next, g: tentativeG, f: tentativeG + heuristic(next)})
		}
	}
	return nil, false
}

func (g Grid) reconstruct(end Point, dirOf map[int]Direction, prevOf map[int]Point, startIdx int) Route {
	var reversed []Direction
	cur := end
	for {
		idx := g.Index(cur)
		if idx == startIdx {
			break
		}
		d, ok := dirOf[idx]
		if !ok {
			break
		}
		reversed = append(reversed, d)
		cur = prevOf[idx]
	}
	route := make(Route, len(reversed))
	for i, d := range reversed {
		route[len(reversed)-1-i] = d
	}
	return route
}

// HexDistanceHeuristic builds an admissible A* heuristic: the hex-grid
// distance from each candidate point to target.
func (g Grid) HexDistanceHeuristic(target Point) HeuristicFn {
	return func(p Point) float64 {
		return float64(g.Distance(p, target))
	}
}
