// Shortest-path search, adapted from
// github.com/katalvlaran/lvlath's graph/algorithms/dijkstra.go: the same
// heap-based runner shape (init / processQueue / relaxEdges), generalized
// from int64 edge weight to a caller-supplied WeightFunc over float64 so
// the router can switch between the "delay" and "bandwidth_inverse"
// routing_weight configurations (spec.md §6) without a second algorithm.
package topology

import (
	"container/heap"
	"errors"
	"math"
)

// ErrNoPath indicates no path exists between the requested endpoints.
var ErrNoPath = errors.New("topology: no path between nodes")

// WeightFunc returns the routing cost of the edge between from and to.
// A negative or NaN result is treated as +Inf (edge unusable).
type WeightFunc func(attrs EdgeAttrs) float64

// DelayWeight is the default routing_weight: the edge's latency.
func DelayWeight(attrs EdgeAttrs) float64 { return attrs.Delay }

// ShortestPath returns the node-id path from startID to endID with minimum
// total weight under weightFn, using Dijkstra's algorithm. Neighbors are
// visited in sorted order (via Graph.Neighbors) so that the result is
// reproducible for identical topology state, per spec.md §4.4.
func (g *Graph) ShortestPath(startID, endID string, weightFn WeightFunc) ([]string, error) {
	if !g.HasNode(startID) || !g.HasNode(endID) {
		return nil, ErrNodeNotFound
	}
	if startID == endID {
		return []string{startID}, nil
	}

	r := &dijkstraRunner{
		g:       g,
		weightFn: weightFn,
		dist:    make(map[string]float64),
		parent:  make(map[string]string),
		visited: make(map[string]bool),
		pq:      make(nodePQ, 0, 16),
	}
	r.dist[startID] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: startID, dist: 0})

	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id
		if r.visited[u] {
			continue
		}
		r.visited[u] = true
		if u == endID {
			break
		}
		r.relax(u)
	}

	if _, ok := r.dist[endID]; !ok {
		return nil, ErrNoPath
	}

	// Reconstruct path end -> start, then reverse.
	path := []string{endID}
	cur := endID
	for cur != startID {
		p, ok := r.parent[cur]
		if !ok {
			return nil, ErrNoPath
		}
		path = append(path, p)
		cur = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

type dijkstraRunner struct {
	g        *Graph
	weightFn WeightFunc
	dist     map[string]float64
	parent   map[string]string
	visited  map[string]bool
	pq       nodePQ
}

func (r *dijkstraRunner) relax(u string) {
	for _, v := range r.g.Neighbors(u) {
		if r.visited[v] {
			continue
		}
		attrs, err := r.g.EdgeAttrsOf(u, v)
		if err != nil {
			continue
		}
		w := r.weightFn(attrs)
		if w < 0 || math.IsNaN(w) {
			w = math.Inf(1)
		}
		if math.IsInf(w, 1) {
			continue
		}
		cur, known := r.dist[u]
		if !known {
			continue
		}
		newDist := cur + w
		best, ok := r.dist[v]
		if !ok || newDist < best {
			r.dist[v] = newDist
			r.parent[v] = u
			heap.Push(&r.pq, &nodeItem{id: v, dist: newDist})
		}
	}
}

type nodeItem struct {
	id   string
	dist float64
}

type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]
	return it
}
