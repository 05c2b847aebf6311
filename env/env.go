// Package env implements the external-agent facade spec.md §4.7 names:
// poll, embed, step. It does not translate results into sentinel values:
// the null-connection sentinels (SENTINEL_DENIED and friends) are returned
// by orchestrator's ServicePing/ServiceData/ServicePerformanceScore. Grounded on
// original_source/Environment.py's three-method shape
// (poll/embed/step wrapping a Simulation and a TrafficGenerator).
package env

import (
	"log/slog"

	"github.com/0C3L0T/vnfnet/catalog"
	"github.com/0C3L0T/vnfnet/orchestrator"
	"github.com/0C3L0T/vnfnet/simclock"
	"github.com/0C3L0T/vnfnet/snapshot"
	"github.com/0C3L0T/vnfnet/substrate"
)

// RequestSource is the external traffic-generator collaborator point,
// grounded on original_source/TrafficGenerator.py's create_request_chain
// (itself explicitly called out there as a stand-in interface point:
// "we could change this into an interface to allow for multiple
// implementations"). NextRequest returns ok=false when it has nothing to
// offer this poll.
type RequestSource interface {
	NextRequest() (request Request, ok bool)
}

// Request is an unembedded chain request: a title, an ordered list of
// service ids with no host assignments yet, an SLA budget, and an expiry.
// This is what Poll hands the external placement agent.
type Request struct {
	Title      string
	ServiceIDs []string
	SLA        float64
	TimeToLive float64
}

// Placement is Request plus the agent's chosen host for each slot, in
// the same order as ServiceIDs — what Embed consumes.
type Placement struct {
	Request Request
	HostIDs []string
}

// Snapshot is the deep-copied substrate state Poll hands the agent
// alongside a Request, safe to serialize across a process boundary. It is
// exactly snapshot.State — the facade and the wire format describe the
// same data, so Environment reuses it rather than keeping a second,
// field-for-field copy in sync.
type Snapshot = snapshot.State

// Environment ties a Substrate/Catalog/Orchestrator/Clock to a
// RequestSource behind the three-operation facade an external placement
// agent drives.
type Environment struct {
	sub    *substrate.Substrate
	cat    *catalog.Catalog
	orc    *orchestrator.Orchestrator
	clock  *simclock.Clock
	source RequestSource
	log    *slog.Logger
}

// New constructs an Environment. source may be nil, in which case Poll
// always returns ok=false for the request half (useful for
// traffic-generator-less scenarios built entirely through direct
// Substrate/Catalog calls).
func New(sub *substrate.Substrate, cat *catalog.Catalog, orc *orchestrator.Orchestrator, clock *simclock.Clock, source RequestSource, logger *slog.Logger) *Environment {
	return &Environment{sub: sub, cat: cat, orc: orc, clock: clock, source: source, log: logger}
}

// Poll returns a deep-copied snapshot of the substrate plus the next
// unembedded chain request, if the RequestSource has one.
func (e *Environment) Poll() (Snapshot, Request, bool) {
	snap := snapshot.Capture(e.sub)
	if e.source == nil {
		return snap, Request{}, false
	}
	req, ok := e.source.NextRequest()
	return snap, req, ok
}

// Embed instantiates one VM per slot in p at the agent's chosen host and
// registers the resulting live Chain. Per spec.md §4.3, a capacity
// failure on any slot leaves no VM behind (catalog.EmbedChain rolls back
// every slot already instantiated in the same call).
func (e *Environment) Embed(p Placement) (*catalog.Chain, error) {
	chain, err := e.cat.EmbedChain(p.Request.Title, p.Request.ServiceIDs, p.HostIDs, p.Request.SLA, p.Request.TimeToLive)
	if err != nil {
		e.log.Warn("embed failed", slog.String("title", p.Request.Title), slog.String("error", err.Error()))
		return nil, err
	}
	e.log.Info("embed succeeded", slog.String("chain_id", chain.ID), slog.String("title", p.Request.Title))
	return chain, nil
}

// Step advances the simulation clock by dt, expiring any chain whose TTL
// has elapsed.
func (e *Environment) Step(dt float64) {
	e.clock.Step(dt)
}
