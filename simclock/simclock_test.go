package simclock_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0C3L0T/vnfnet/catalog"
	"github.com/0C3L0T/vnfnet/orchestrator"
	"github.com/0C3L0T/vnfnet/resource"
	"github.com/0C3L0T/vnfnet/simclock"
	"github.com/0C3L0T/vnfnet/substrate"
)

func TestStepExpiresChainPastTTL(t *testing.T) {
	sub := substrate.New(slog.Default())
	cat := catalog.New(sub, slog.Default())
	orc := orchestrator.New(sub, cat, slog.Default(), nil)
	clock := simclock.New(cat, orc, sub, slog.Default())

	h1 := sub.AddHost(4, 8, 128, resource.HostPhysical{})
	svc := cat.AddService("S", 1, 1, 1, 1)
	chain, err := cat.EmbedChain("chain", []string{svc}, []string{h1}, 50, 10)
	require.NoError(t, err)
	sub.AddUser("U", chain.ID, 1, substrate.Reserved)

	clock.Step(5)
	_, err = cat.Chain(chain.ID)
	require.NoError(t, err, "chain must survive before its TTL elapses")

	clock.Step(10)
	_, err = cat.Chain(chain.ID)
	require.ErrorIs(t, err, catalog.ErrChainNotFound)
}

func TestStepAdvancesNow(t *testing.T) {
	sub := substrate.New(slog.Default())
	cat := catalog.New(sub, slog.Default())
	orc := orchestrator.New(sub, cat, slog.Default(), nil)
	clock := simclock.New(cat, orc, sub, slog.Default())

	clock.Step(2.5)
	clock.Step(2.5)
	require.Equal(t, 5.0, clock.Now())
}
