// Package router implements spec.md §4.4's per-hop shortest-path routing
// with suspend-and-retry: it walks a chain's waypoints (user, then each
// VM's host in order), committing bandwidth on every hop, and backs out
// of an over-subscribed edge by suspending it from the graph and
// restarting from the first waypoint.
//
// Grounded on graph/algorithms/dijkstra.go for the underlying shortest
// path call (via topology.Graph.ShortestPath) and on original_source's
// Router.createConnection for the suspend-stack shape; the per-pass
// atomic commit/rollback is this implementation's resolution of the
// Open Question spec.md §9 flags (see DESIGN.md).
package router

import (
	"errors"
	"fmt"
	"math"

	"github.com/0C3L0T/vnfnet/resource"
	"github.com/0C3L0T/vnfnet/substrate"
	"github.com/0C3L0T/vnfnet/topology"
)

// ErrNoRouteAvailable is returned when no feasible path exists between two
// waypoints, or every retry has exhausted the graph's edges.
var ErrNoRouteAvailable = errors.New("router: no route available")

// WeightFunc selects the edge cost Dijkstra minimizes.
type WeightFunc = topology.WeightFunc

// DelayWeight is the default routing_weight (spec.md §6): pure propagation
// delay, ignoring residual bandwidth entirely (suspend-and-retry handles
// bandwidth admission separately).
var DelayWeight = topology.DelayWeight

// BandwidthInverseWeight is the alternate routing_weight: routes away from
// congested links. Residual bandwidth lives on the resource.Link, not the
// graph edge (topology deliberately drops the duplicate field — see
// topology.EdgeAttrs), so this reads through sub to find it.
func BandwidthInverseWeight(sub *substrate.Substrate) WeightFunc {
	return func(attrs topology.EdgeAttrs) float64 {
		link, err := sub.Link(attrs.LinkID)
		if err != nil {
			return math.Inf(1)
		}
		residual := link.Residual()
		if residual <= 0 {
			return math.Inf(1)
		}
		return 1 / residual
	}
}

type suspendedEdge struct {
	a, b  string
	attrs topology.EdgeAttrs
}

// FindPath walks waypoints = [user, host(vm1), ..., host(vmk)] and returns
// the full node path, having committed reservationID for bandwidthGbps on
// every hop's resource.Link. weightFn selects the Dijkstra cost; nil
// defaults to DelayWeight.
//
// On an over-subscribed edge, every reservation already committed in the
// current pass is rolled back before the edge is suspended and the whole
// walk restarts from the first waypoint (the atomic-pass resolution of
// spec.md §9's flagged ambiguity). On final success every suspended edge
// is restored. On abort (no path at all) every suspended edge is restored
// and ErrNoRouteAvailable is returned.
func FindPath(sub *substrate.Substrate, waypoints []string, bandwidthGbps float64, reservationID string, weightFn WeightFunc) ([]string, error) {
	if weightFn == nil {
		weightFn = DelayWeight
	}
	if len(waypoints) < 2 {
		return nil, fmt.Errorf("router: at least two waypoints required: %w", ErrNoRouteAvailable)
	}

	graph := sub.Graph()
	var suspended []suspendedEdge

	restoreAll := func() {
		for i := len(suspended) - 1; i >= 0; i-- {
			s := suspended[i]
			_ = graph.Restore(s.a, s.b, s.attrs)
		}
		suspended = nil
	}

	for {
		path, err := walkWaypoints(graph, waypoints, weightFn)
		if err != nil {
			restoreAll()
			return nil, ErrNoRouteAvailable
		}

		suspendedThisPass, ok, err := commitPath(sub, path, bandwidthGbps, reservationID)
		if err != nil {
			restoreAll()
			return nil, err
		}
		if !ok {
			suspended = append(suspended, suspendedThisPass)
			continue
		}

		restoreAll()
		return path, nil
	}
}

// walkWaypoints computes a shortest path across every consecutive
// waypoint pair, joining each hop's path at its shared endpoint
// (spec.md §4.4 step 3a).
func walkWaypoints(graph *topology.Graph, waypoints []string, weightFn WeightFunc) ([]string, error) {
	path := make([]string, 0)
	for i := 0; i+1 < len(waypoints); i++ {
		a, b := waypoints[i], waypoints[i+1]
		sp, err := graph.ShortestPath(a, b, weightFn)
		if err != nil {
			return nil, err
		}
		if len(path) > 0 {
			path = path[:len(path)-1]
		}
		path = append(path, sp...)
	}
	return path, nil
}

// commitPath reserves bandwidthGbps under reservationID on every edge of
// path. If an edge can't absorb the reservation, every reservation
// already made in this call is rolled back and the offending edge is
// suspended; the caller is expected to retry from walkWaypoints. Returns
// ok=false with the suspended edge's descriptor when that happens.
func commitPath(sub *substrate.Substrate, path []string, bandwidthGbps float64, reservationID string) (suspendedEdge, bool, error) {
	graph := sub.Graph()
	committed := make([]*resource.Link, 0, len(path))

	rollback := func() {
		for _, link := range committed {
			_ = link.Close(reservationID)
		}
	}

	for i := 0; i+1 < len(path); i++ {
		x, y := path[i], path[i+1]
		attrs, err := graph.EdgeAttrsOf(x, y)
		if err != nil {
			rollback()
			return suspendedEdge{}, false, ErrNoRouteAvailable
		}
		link, err := sub.Link(attrs.LinkID)
		if err != nil {
			rollback()
			return suspendedEdge{}, false, ErrNoRouteAvailable
		}

		if link.Residual() < bandwidthGbps {
			rollback()
			suspendedAttrs, err := graph.Suspend(x, y)
			if err != nil {
				return suspendedEdge{}, false, ErrNoRouteAvailable
			}
			return suspendedEdge{a: x, b: y, attrs: suspendedAttrs}, false, nil
		}

		if err := link.Establish(resource.Reservation{ID: reservationID, Amount: bandwidthGbps}); err != nil {
			rollback()
			return suspendedEdge{}, false, err
		}
		committed = append(committed, link)
	}

	return suspendedEdge{}, true, nil
}

// ReleasePath undoes a reservation previously committed by FindPath,
// closing reservationID on every link along path (orchestrator.StopTraffic
// calls this).
func ReleasePath(sub *substrate.Substrate, path []string, reservationID string) error {
	graph := sub.Graph()
	for i := 0; i+1 < len(path); i++ {
		x, y := path[i], path[i+1]
		attrs, err := graph.EdgeAttrsOf(x, y)
		if err != nil {
			return fmt.Errorf("router: release path edge %s-%s: %w", x, y, err)
		}
		link, err := sub.Link(attrs.LinkID)
		if err != nil {
			return fmt.Errorf("router: release path edge %s-%s: %w", x, y, err)
		}
		if err := link.Close(reservationID); err != nil {
			return err
		}
	}
	return nil
}

// PathDelay sums propagation delay along path, as service_ping (spec.md
// §4.5) needs.
func PathDelay(sub *substrate.Substrate, path []string) float64 {
	graph := sub.Graph()
	var total float64
	for i := 0; i+1 < len(path); i++ {
		attrs, err := graph.EdgeAttrsOf(path[i], path[i+1])
		if err != nil {
			continue
		}
		total += attrs.Delay
	}
	return total
}
