package snapshot_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0C3L0T/vnfnet/resource"
	"github.com/0C3L0T/vnfnet/snapshot"
	"github.com/0C3L0T/vnfnet/substrate"
)

func newSubstrate(t *testing.T) (*substrate.Substrate, string, string) {
	t.Helper()
	sub := substrate.New(slog.Default())
	h1 := sub.AddHost(4, 8, 128, resource.HostPhysical{})
	h2 := sub.AddHost(4, 8, 128, resource.HostPhysical{})
	_, err := sub.AddLink(h1, h2, 10, 5, 0)
	require.NoError(t, err)
	return sub, h1, h2
}

func TestCaptureReflectsSubstrateState(t *testing.T) {
	sub, h1, h2 := newSubstrate(t)

	state := snapshot.Capture(sub)
	require.Len(t, state.Hosts, 2)
	require.Len(t, state.Links, 1)
	require.Equal(t, 4.0, state.Bounds.MaxCPU)
	require.Equal(t, 10.0, state.Bounds.MaxBandwidth)

	_ = h1
	_ = h2
}

func TestEncodeDecodeRoundTrips(t *testing.T) {
	sub, _, _ := newSubstrate(t)
	state := snapshot.Capture(sub)

	var buf bytes.Buffer
	require.NoError(t, snapshot.Encode(&buf, state))

	decoded, err := snapshot.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, state, decoded)
}

func TestStringSummariesAreNonEmpty(t *testing.T) {
	sub, _, _ := newSubstrate(t)
	state := snapshot.Capture(sub)

	require.Contains(t, state.String(), "2 hosts")
	require.Contains(t, state.String(), "1 links")
	require.NotEmpty(t, state.HostSummaries())
}

func TestAdjacencyMatrixMarksDirectNeighbors(t *testing.T) {
	sub, h1, h2 := newSubstrate(t)

	m := snapshot.NewAdjacencyMatrix(sub.Graph())
	require.Len(t, m.Index, 2)

	neighbors := m.Neighbors(h1)
	require.Equal(t, []string{h2}, neighbors)
}

func TestAdjacencyMatrixUnknownNodeHasNoNeighbors(t *testing.T) {
	sub, _, _ := newSubstrate(t)
	m := snapshot.NewAdjacencyMatrix(sub.Graph())
	require.Nil(t, m.Neighbors("does-not-exist"))
}
