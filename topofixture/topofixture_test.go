package topofixture_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0C3L0T/vnfnet/substrate"
	"github.com/0C3L0T/vnfnet/topofixture"
)

func newSub() *substrate.Substrate {
	return substrate.New(slog.Default())
}

func TestPathLinksConsecutiveHosts(t *testing.T) {
	sub := newSub()
	ids, err := topofixture.Path(sub, 4, topofixture.DefaultLinkSpec)
	require.NoError(t, err)
	require.Len(t, ids, 4)

	for i := 0; i+1 < len(ids); i++ {
		require.True(t, sub.Graph().HasEdge(ids[i], ids[i+1]))
	}
	require.False(t, sub.Graph().HasEdge(ids[0], ids[3]))
}

func TestStarHubReachesEveryLeaf(t *testing.T) {
	sub := newSub()
	ids, err := topofixture.Star(sub, 5, topofixture.DefaultLinkSpec)
	require.NoError(t, err)

	hub := ids[0]
	for _, leaf := range ids[1:] {
		require.True(t, sub.Graph().HasEdge(hub, leaf))
	}
	require.False(t, sub.Graph().HasEdge(ids[1], ids[2]))
}

func TestCompleteLinksEveryPair(t *testing.T) {
	sub := newSub()
	ids, err := topofixture.Complete(sub, 4, topofixture.DefaultLinkSpec)
	require.NoError(t, err)

	for i := range ids {
		for j := range ids {
			if i == j {
				continue
			}
			require.True(t, sub.Graph().HasEdge(ids[i], ids[j]), "expected edge %d-%d", i, j)
		}
	}
}

func TestGridLinksOrthogonalNeighborsOnly(t *testing.T) {
	sub := newSub()
	ids, err := topofixture.Grid(sub, 2, 3, topofixture.DefaultLinkSpec)
	require.NoError(t, err)
	require.Len(t, ids, 6)

	// (0,0)-(0,1) and (0,0)-(1,0) are orthogonal neighbors; (0,0)-(1,1) is a
	// diagonal and must not be linked.
	require.True(t, sub.Graph().HasEdge(ids[0], ids[1]))
	require.True(t, sub.Graph().HasEdge(ids[0], ids[3]))
	require.False(t, sub.Graph().HasEdge(ids[0], ids[4]))
}

func TestRejectsTooFewHosts(t *testing.T) {
	sub := newSub()
	_, err := topofixture.Star(sub, 1, topofixture.DefaultLinkSpec)
	require.Error(t, err)
}
