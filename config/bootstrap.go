package config

import (
	"fmt"

	"github.com/0C3L0T/vnfnet/catalog"
	"github.com/0C3L0T/vnfnet/resource"
	"github.com/0C3L0T/vnfnet/router"
	"github.com/0C3L0T/vnfnet/substrate"
)

// Ids is the mapping from a ScenarioConfig's declarative labels (HostConfig.ID,
// ServiceConfig.ID) to the guids Substrate/Catalog actually assigned, so a
// caller can resolve "h1" back to the real host id after Bootstrap runs.
type Ids struct {
	Hosts    map[string]string
	Services map[string]string
}

// Bootstrap materializes a ScenarioConfig's hosts, links, and services
// into sub and cat, in declaration order, and returns the label→guid
// mapping. Users are left to the caller (scenario users typically
// reference a chain id produced by a later Embed call, not one known
// ahead of time at config-load time).
func Bootstrap(cfg ScenarioConfig, sub *substrate.Substrate, cat *catalog.Catalog) (Ids, error) {
	ids := Ids{Hosts: make(map[string]string), Services: make(map[string]string)}

	for _, h := range cfg.Hosts {
		physical := resource.HostPhysical{
			CPUFrequencyHz:       h.Physical.CPUFrequencyHz,
			CyclesPerSample:      h.Physical.CyclesPerSample,
			EffectiveCapacitance: h.Physical.EffectiveCapacitance,
			BitsOverhead:         h.Physical.BitsOverhead,
		}
		ids.Hosts[h.ID] = sub.AddHost(h.CPU, h.RAM, h.Storage, physical)
	}

	for _, l := range cfg.Links {
		srcID, ok := ids.Hosts[l.Src]
		if !ok {
			return ids, fmt.Errorf("config: link references unknown host label %q", l.Src)
		}
		dstID, ok := ids.Hosts[l.Dst]
		if !ok {
			return ids, fmt.Errorf("config: link references unknown host label %q", l.Dst)
		}
		if _, err := sub.AddLink(srcID, dstID, l.BandwidthGbps, l.DelayMs, l.Loss); err != nil {
			return ids, fmt.Errorf("config: adding link %s-%s: %w", l.Src, l.Dst, err)
		}
	}

	for _, s := range cfg.Services {
		ids.Services[s.ID] = cat.AddService(s.Title, s.CPUReq, s.RAMReq, s.StoreReq, s.BandwidthReq)
	}

	return ids, nil
}

// WeightFunc resolves the ScenarioConfig's routing_weight option into the
// router.WeightFunc the orchestrator should route with.
func (c ScenarioConfig) WeightFunc(sub *substrate.Substrate) router.WeightFunc {
	if c.RoutingWeight == "bandwidth_inverse" {
		return router.BandwidthInverseWeight(sub)
	}
	return router.DelayWeight
}
