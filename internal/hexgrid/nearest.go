package hexgrid

import "container/heap"

type candidate struct {
	point Point
	dist  int
}

type maxHeap []candidate

func (h maxHeap) Len() int            { return len(h) }
func (h maxHeap) Less(i, j int) bool  { return h[i].dist > h[j].dist } // max at root
func (h maxHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *maxHeap) Push(x any)         { *h = append(*h, x.(candidate)) }
func (h *maxHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// Nearest returns the n points from candidates closest to pt by hex
// distance, ascending. Uses a bounded max-heap of capacity n so a large
// candidate list never requires a full sort.
func (g Grid) Nearest(pt Point, candidates []Point, n int) []Point {
	if n <= 0 || len(candidates) == 0 {
		return nil
	}
	h := make(maxHeap, 0, n+1)
	for _, c := range candidates {
		d := g.Distance(pt, c)
		if h.Len() < n {
			heap.Push(&h, candidate{point: c, dist: d})
			continue
		}
		if h.Len() > 0 && d < h[0].dist {
			heap.Pop(&h)
			heap.Push(&h, candidate{point: c, dist: d})
		}
	}
	out := make([]Point, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&h).(candidate).point
	}
	return out
}
