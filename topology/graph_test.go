package topology_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0C3L0T/vnfnet/topology"
)

func TestAddEdgeMirrorsUndirected(t *testing.T) {
	g := topology.NewGraph()
	g.AddNode("A", topology.NodeHost)
	g.AddNode("B", topology.NodeHost)

	require.NoError(t, g.AddEdge("A", "B", topology.EdgeAttrs{LinkID: "L1", Delay: 5}))
	require.True(t, g.HasEdge("A", "B"))
	require.True(t, g.HasEdge("B", "A"))

	attrs, err := g.EdgeAttrsOf("B", "A")
	require.NoError(t, err)
	require.Equal(t, 5.0, attrs.Delay)
}

func TestAddEdgeMissingNode(t *testing.T) {
	g := topology.NewGraph()
	g.AddNode("A", topology.NodeHost)
	require.ErrorIs(t, g.AddEdge("A", "B", topology.EdgeAttrs{}), topology.ErrNodeNotFound)
}

func TestRemoveNodeDropsIncidentEdges(t *testing.T) {
	g := topology.NewGraph()
	g.AddNode("A", topology.NodeHost)
	g.AddNode("B", topology.NodeHost)
	require.NoError(t, g.AddEdge("A", "B", topology.EdgeAttrs{Delay: 1}))

	g.RemoveNode("B")
	require.False(t, g.HasNode("B"))
	require.False(t, g.HasEdge("A", "B"))
}

func TestSuspendRestoreRoundTrip(t *testing.T) {
	g := topology.NewGraph()
	g.AddNode("A", topology.NodeHost)
	g.AddNode("B", topology.NodeHost)
	require.NoError(t, g.AddEdge("A", "B", topology.EdgeAttrs{LinkID: "L1", Delay: 3, Color: "skyblue"}))

	attrs, err := g.Suspend("A", "B")
	require.NoError(t, err)
	require.False(t, g.HasEdge("A", "B"))

	require.NoError(t, g.Restore("A", "B", attrs))
	require.True(t, g.HasEdge("A", "B"))
	got, err := g.EdgeAttrsOf("A", "B")
	require.NoError(t, err)
	require.Equal(t, attrs, got)
}

func TestShortestPathSimple(t *testing.T) {
	g := topology.NewGraph()
	for _, id := range []string{"A", "B", "C", "D"} {
		g.AddNode(id, topology.NodeHost)
	}
	require.NoError(t, g.AddEdge("A", "B", topology.EdgeAttrs{Delay: 4}))
	require.NoError(t, g.AddEdge("B", "C", topology.EdgeAttrs{Delay: 1}))
	require.NoError(t, g.AddEdge("A", "C", topology.EdgeAttrs{Delay: 10}))
	require.NoError(t, g.AddEdge("C", "D", topology.EdgeAttrs{Delay: 2}))

	path, err := g.ShortestPath("A", "D", topology.DelayWeight)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C", "D"}, path)
}

func TestShortestPathNoRoute(t *testing.T) {
	g := topology.NewGraph()
	g.AddNode("A", topology.NodeHost)
	g.AddNode("B", topology.NodeHost)

	_, err := g.ShortestPath("A", "B", topology.DelayWeight)
	require.ErrorIs(t, err, topology.ErrNoPath)
}

func TestShortestPathSameNode(t *testing.T) {
	g := topology.NewGraph()
	g.AddNode("A", topology.NodeHost)

	path, err := g.ShortestPath("A", "A", topology.DelayWeight)
	require.NoError(t, err)
	require.Equal(t, []string{"A"}, path)
}
