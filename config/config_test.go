package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0C3L0T/vnfnet/catalog"
	"github.com/0C3L0T/vnfnet/config"
	"github.com/0C3L0T/vnfnet/router"
	"github.com/0C3L0T/vnfnet/substrate"
	"github.com/0C3L0T/vnfnet/topology"
)

const scenarioYAML = `
routing_weight: delay
hosts:
  - id: h1
    cpu: 4
    ram: 8
    storage: 128
  - id: h2
    cpu: 4
    ram: 8
    storage: 128
links:
  - src: h1
    dst: h2
    bandwidth_gbps: 10
    delay_ms: 5
services:
  - id: svc-fw
    title: firewall
    cpu_req: 1
    ram_req: 2
    store_req: 4
    bandwidth_req: 1
`

func writeScenario(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioYAML), 0o600))
	return path
}

func TestLoadParsesScenario(t *testing.T) {
	cfg, err := config.Load(writeScenario(t))
	require.NoError(t, err)
	require.Equal(t, "delay", cfg.RoutingWeight)
	require.Len(t, cfg.Hosts, 2)
	require.Len(t, cfg.Links, 1)
	require.Len(t, cfg.Services, 1)
}

func TestLoadRejectsUnknownRoutingWeight(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("routing_weight: nonsense\n"), 0o600))
	_, err := config.Load(path)
	require.Error(t, err)
}

func TestBootstrapMaterializesHostsLinksServices(t *testing.T) {
	cfg, err := config.Load(writeScenario(t))
	require.NoError(t, err)

	sub := substrate.New(slog.Default())
	cat := catalog.New(sub, slog.Default())
	ids, err := config.Bootstrap(cfg, sub, cat)
	require.NoError(t, err)

	require.Len(t, ids.Hosts, 2)
	require.Len(t, ids.Services, 1)

	h1 := ids.Hosts["h1"]
	h2 := ids.Hosts["h2"]
	require.True(t, sub.Graph().HasEdge(h1, h2))
}

func TestWeightFuncDefaultsToDelay(t *testing.T) {
	sub := substrate.New(slog.Default())
	cfg := config.Default()
	wf := cfg.WeightFunc(sub)
	require.NotNil(t, wf)
	attrs := topology.EdgeAttrs{Delay: 7}
	require.Equal(t, router.DelayWeight(attrs), wf(attrs))
}
