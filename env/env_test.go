package env_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0C3L0T/vnfnet/catalog"
	"github.com/0C3L0T/vnfnet/env"
	"github.com/0C3L0T/vnfnet/orchestrator"
	"github.com/0C3L0T/vnfnet/resource"
	"github.com/0C3L0T/vnfnet/simclock"
	"github.com/0C3L0T/vnfnet/substrate"
)

type staticSource struct {
	req env.Request
	hit bool
}

func (s *staticSource) NextRequest() (env.Request, bool) {
	if s.hit {
		return env.Request{}, false
	}
	s.hit = true
	return s.req, true
}

func newEnvironment(source env.RequestSource) (*substrate.Substrate, *catalog.Catalog, *env.Environment) {
	sub := substrate.New(slog.Default())
	cat := catalog.New(sub, slog.Default())
	orc := orchestrator.New(sub, cat, slog.Default(), nil)
	clock := simclock.New(cat, orc, sub, slog.Default())
	return sub, cat, env.New(sub, cat, orc, clock, source, slog.Default())
}

func TestPollReturnsSnapshotAndRequest(t *testing.T) {
	sub, cat, e := newEnvironment(&staticSource{req: env.Request{Title: "web", ServiceIDs: []string{"svc-1"}, SLA: 50, TimeToLive: 10}})
	h1 := sub.AddHost(4, 8, 128, resource.HostPhysical{})

	snap, req, ok := e.Poll()
	require.True(t, ok)
	require.Equal(t, "web", req.Title)
	require.Len(t, snap.Hosts, 1)
	require.Equal(t, h1, snap.Hosts[0].ID)

	_, _, ok = e.Poll()
	require.False(t, ok, "static source only has one request to offer")

	_ = cat
}

func TestPollWithNilSourceNeverOffersRequests(t *testing.T) {
	_, _, e := newEnvironment(nil)
	_, _, ok := e.Poll()
	require.False(t, ok)
}

func TestEmbedInstantiatesChain(t *testing.T) {
	sub, cat, e := newEnvironment(nil)
	h1 := sub.AddHost(4, 8, 128, resource.HostPhysical{})
	svc := cat.AddService("S", 1, 1, 1, 1)

	chain, err := e.Embed(env.Placement{
		Request: env.Request{Title: "chain", ServiceIDs: []string{svc}, SLA: 50, TimeToLive: 10},
		HostIDs: []string{h1},
	})
	require.NoError(t, err)
	require.Len(t, chain.VMIDs, 1)
}

func TestStepDrivesSimclock(t *testing.T) {
	sub, cat, e := newEnvironment(nil)
	h1 := sub.AddHost(4, 8, 128, resource.HostPhysical{})
	svc := cat.AddService("S", 1, 1, 1, 1)

	chain, err := e.Embed(env.Placement{
		Request: env.Request{Title: "chain", ServiceIDs: []string{svc}, SLA: 50, TimeToLive: 5},
		HostIDs: []string{h1},
	})
	require.NoError(t, err)

	e.Step(10)
	_, err = cat.Chain(chain.ID)
	require.ErrorIs(t, err, catalog.ErrChainNotFound)
}
