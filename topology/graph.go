package topology

import "sort"

// AddNode inserts a node of the given kind. A duplicate id is a no-op,
// mirroring graph/core.Graph.AddVertex's idempotent insert.
func (g *Graph) AddNode(id string, kind NodeKind) {
	g.muNode.Lock()
	defer g.muNode.Unlock()

	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = Node{ID: id, Kind: kind}

	g.muEdge.Lock()
	g.adjacency[id] = make(map[string]edge)
	g.muEdge.Unlock()
}

// RemoveNode deletes id and every edge incident to it.
func (g *Graph) RemoveNode(id string) {
	g.muNode.Lock()
	defer g.muNode.Unlock()
	delete(g.nodes, id)

	g.muEdge.Lock()
	defer g.muEdge.Unlock()
	delete(g.adjacency, id)
	for _, nbrs := range g.adjacency {
		delete(nbrs, id)
	}
}

// HasNode reports whether id is present.
func (g *Graph) HasNode(id string) bool {
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	_, ok := g.nodes[id]
	return ok
}

// Node returns the node for id.
func (g *Graph) Node(id string) (Node, error) {
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, ErrNodeNotFound
	}
	return n, nil
}

// Nodes returns every node, in a deterministic id-sorted order.
func (g *Graph) Nodes() []Node {
	g.muNode.RLock()
	defer g.muNode.RUnlock()

	out := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AddEdge inserts an undirected edge between from and to with the given
// attributes, mirror-inserting the reverse half the way
// graph/core.Graph.AddEdge mirrors for undirected graphs. Both endpoints
// must already exist.
func (g *Graph) AddEdge(from, to string, attrs EdgeAttrs) error {
	if !g.HasNode(from) {
		return ErrNodeNotFound
	}
	if !g.HasNode(to) {
		return ErrNodeNotFound
	}

	g.muEdge.Lock()
	defer g.muEdge.Unlock()
	g.adjacency[from][to] = edge{to: to, attrs: attrs}
	g.adjacency[to][from] = edge{to: from, attrs: attrs}
	return nil
}

// RemoveEdge deletes the edge between from and to, if any.
func (g *Graph) RemoveEdge(from, to string) {
	g.muEdge.Lock()
	defer g.muEdge.Unlock()
	if nbrs, ok := g.adjacency[from]; ok {
		delete(nbrs, to)
	}
	if nbrs, ok := g.adjacency[to]; ok {
		delete(nbrs, from)
	}
}

// HasEdge reports whether an edge exists between from and to.
func (g *Graph) HasEdge(from, to string) bool {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()
	nbrs, ok := g.adjacency[from]
	if !ok {
		return false
	}
	_, ok = nbrs[to]
	return ok
}

// EdgeAttrsOf returns the attribute bundle for the edge between from and to.
func (g *Graph) EdgeAttrsOf(from, to string) (EdgeAttrs, error) {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()
	nbrs, ok := g.adjacency[from]
	if !ok {
		return EdgeAttrs{}, ErrEdgeNotFound
	}
	e, ok := nbrs[to]
	if !ok {
		return EdgeAttrs{}, ErrEdgeNotFound
	}
	return e.attrs, nil
}

// SetEdgeAttrs overwrites the attribute bundle for an existing edge between
// from and to (both mirrored halves).
func (g *Graph) SetEdgeAttrs(from, to string, attrs EdgeAttrs) error {
	g.muEdge.Lock()
	defer g.muEdge.Unlock()
	if _, ok := g.adjacency[from][to]; !ok {
		return ErrEdgeNotFound
	}
	g.adjacency[from][to] = edge{to: to, attrs: attrs}
	g.adjacency[to][from] = edge{to: from, attrs: attrs}
	return nil
}

// Neighbors returns the ids reachable from id, in sorted order so that
// callers iterating them (Dijkstra relaxation, in particular) get
// reproducible results given identical topology state, per spec.md §4.4's
// tie-breaking requirement.
func (g *Graph) Neighbors(id string) []string {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()

	nbrs, ok := g.adjacency[id]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(nbrs))
	for to := range nbrs {
		out = append(out, to)
	}
	sort.Strings(out)
	return out
}

// Edges returns every undirected edge once, as (from, to, attrs) triples
// with from < to, in deterministic order.
func (g *Graph) Edges() []struct {
	From, To string
	Attrs    EdgeAttrs
} {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()

	var out []struct {
		From, To string
		Attrs    EdgeAttrs
	}
	for from, nbrs := range g.adjacency {
		for to, e := range nbrs {
			if from < to {
				out = append(out, struct {
					From, To string
					Attrs    EdgeAttrs
				}{From: from, To: to, Attrs: e.attrs})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// Suspend removes the edge between from and to and returns its attribute
// bundle so the caller (router) can push it onto a suspend stack and later
// Restore it. Suspending an absent edge is an error.
func (g *Graph) Suspend(from, to string) (EdgeAttrs, error) {
	attrs, err := g.EdgeAttrsOf(from, to)
	if err != nil {
		return EdgeAttrs{}, err
	}
	g.RemoveEdge(from, to)
	return attrs, nil
}

// Restore re-inserts an edge previously removed by Suspend, with its
// original attributes. Both endpoints must still exist.
func (g *Graph) Restore(from, to string, attrs EdgeAttrs) error {
	return g.AddEdge(from, to, attrs)
}
