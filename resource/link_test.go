package resource_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0C3L0T/vnfnet/resource"
)

func TestLinkEstablishCloseRoundTrip(t *testing.T) {
	l := resource.NewLink("l1", "h1", "h2", 10, 5, -2, 0)

	require.NoError(t, l.Establish(resource.Reservation{ID: "c1", Amount: 1}))
	require.Equal(t, 1.0, l.BandwidthUsed)
	require.Equal(t, 9.0, l.Residual())

	require.NoError(t, l.Close("c1"))
	require.Equal(t, 0.0, l.BandwidthUsed)
}

func TestLinkEstablishCapacityExceeded(t *testing.T) {
	l := resource.NewLink("l1", "h1", "h3", 0.5, 2, -2, 0)
	err := l.Establish(resource.Reservation{ID: "c1", Amount: 1})
	var capErr *resource.CapacityExceededError
	require.ErrorAs(t, err, &capErr)
	require.Equal(t, 0.0, l.BandwidthUsed)
}

func TestLinkCloseNotEstablished(t *testing.T) {
	l := resource.NewLink("l1", "h1", "h2", 10, 5, -2, 0)
	require.ErrorIs(t, l.Close("ghost"), resource.ErrNotEstablished)
}

func TestLinkSampleEnergyZeroUsed(t *testing.T) {
	l := resource.NewLink("l1", "h1", "h2", 10, 5, -2, 0)
	require.Equal(t, 0.0, l.SampleEnergy(8_440_000))
}

func TestLinkSampleEnergySingleHop(t *testing.T) {
	l := resource.NewLink("l1", "h1", "h2", 10, 5, -2, 0)
	require.NoError(t, l.Establish(resource.Reservation{ID: "c1", Amount: 5}))

	got := l.SampleEnergy(8_440_000)
	want := -(-2.0) * (8_440_000.0 / 5.0) * 1e-9
	require.InDelta(t, want, got, 1e-12)
	require.True(t, math.Abs(got-3.376e-3) < 1e-6)
}
