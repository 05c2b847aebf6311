package snapshot

import (
	"sort"

	"github.com/0C3L0T/vnfnet/topology"
)

// AdjacencyMatrix is a dense square re-indexing of a topology.Graph,
// adapted from graph/matrix.AdjacencyMatrix: the same Index map plus
// square Data slab, generalized from lvlath's int64 edge weight to the
// Delay (ms) each routing edge carries, and from that package's directed
// flag to none — a topology.Graph is always undirected.
type AdjacencyMatrix struct {
	Index map[string]int
	Data  [][]float64
}

// NewAdjacencyMatrix snapshots g's current nodes and edges into a dense
// matrix, ordering rows/columns by node id for reproducibility.
func NewAdjacencyMatrix(g *topology.Graph) *AdjacencyMatrix {
	nodes := g.Nodes()
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	sort.Strings(ids)

	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	data := make([][]float64, len(ids))
	for i := range data {
		data[i] = make([]float64, len(ids))
	}

	for _, e := range g.Edges() {
		i, okI := index[e.From]
		j, okJ := index[e.To]
		if !okI || !okJ {
			continue
		}
		data[i][j] = e.Attrs.Delay
		data[j][i] = e.Attrs.Delay
	}

	return &AdjacencyMatrix{Index: index, Data: data}
}

// Neighbors returns the ids adjacent to id in the matrix, mirroring
// graph/matrix.AdjacencyMatrix.Neighbors's row-scan idiom.
func (m *AdjacencyMatrix) Neighbors(id string) []string {
	row, ok := m.Index[id]
	if !ok {
		return nil
	}

	rev := make([]string, len(m.Index))
	for nodeID, idx := range m.Index {
		rev[idx] = nodeID
	}

	var out []string
	for col, weight := range m.Data[row] {
		if weight != 0 {
			out = append(out, rev[col])
		}
	}
	sort.Strings(out)
	return out
}
