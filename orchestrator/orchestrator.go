// Package orchestrator implements spec.md §4.5's traffic lifecycle:
// start_traffic, stop_traffic, migrate_vm, and the three "service_*"
// read-only probes, on top of router's suspend-and-retry path search.
//
// Grounded on original_source/vnfnet.py's startTraffic/stopTraffic/
// migrateVM/servicePing/serviceData/servicePerformanceScore, generalized
// from Python's ad hoc False/None sentinels to typed Go errors, and with
// the migration ordering spec.md §9 recommends (see DESIGN.md).
package orchestrator

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/0C3L0T/vnfnet/catalog"
	"github.com/0C3L0T/vnfnet/router"
	"github.com/0C3L0T/vnfnet/substrate"
	"github.com/0C3L0T/vnfnet/topology"
)

// Connection is a live, admitted traffic flow: an ordered node path
// through the graph, reserved for one user's declared bandwidth.
type Connection struct {
	ID       string
	UserID   string
	NodePath []string
}

// Orchestrator drives traffic and VM lifecycle atop a Substrate and
// Catalog, holding both by reference.
type Orchestrator struct {
	mu sync.RWMutex

	sub *substrate.Substrate
	cat *catalog.Catalog
	log *slog.Logger

	weightFn router.WeightFunc

	flows map[string]*Connection
}

// New constructs an Orchestrator bound to sub and cat. weightFn selects
// the routing_weight (spec.md §6); nil defaults to router.DelayWeight.
func New(sub *substrate.Substrate, cat *catalog.Catalog, logger *slog.Logger, weightFn router.WeightFunc) *Orchestrator {
	if weightFn == nil {
		weightFn = router.DelayWeight
	}
	return &Orchestrator{
		sub:      sub,
		cat:      cat,
		log:      logger,
		weightFn: weightFn,
		flows:    make(map[string]*Connection),
	}
}

// waypointsFor resolves [user, host(vm1), ..., host(vmk)] for the chain
// attached to userID.
func (o *Orchestrator) waypointsFor(userID string) ([]string, error) {
	user, err := o.sub.User(userID)
	if err != nil {
		return nil, err
	}
	chain, err := o.cat.Chain(user.ChainID)
	if err != nil {
		return nil, err
	}
	waypoints := make([]string, 0, len(chain.VMIDs)+1)
	waypoints = append(waypoints, userID)
	for _, vmID := range chain.VMIDs {
		vm, err := o.cat.VM(vmID)
		if err != nil {
			return nil, err
		}
		waypoints = append(waypoints, vm.HostID)
	}
	return waypoints, nil
}

// StartTraffic invokes the router for userID's chain and, on success,
// registers a fresh Connection. On ErrNoRouteAvailable it returns
// ErrDenied (router.FindPath has already restored any suspended edges).
func (o *Orchestrator) StartTraffic(userID string) (*Connection, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	user, err := o.sub.User(userID)
	if err != nil {
		return nil, err
	}
	waypoints, err := o.waypointsFor(userID)
	if err != nil {
		return nil, err
	}

	connID := o.sub.IDs().Next()
	path, err := router.FindPath(o.sub, waypoints, user.Bandwidth, connID, o.weightFn)
	if err != nil {
		o.log.Warn("traffic denied", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, ErrDenied
	}

	conn := &Connection{ID: connID, UserID: userID, NodePath: path}
	o.flows[connID] = conn
	o.log.Info("traffic started", slog.String("conn_id", connID), slog.String("user_id", userID))
	return conn, nil
}

// StopTraffic releases a Connection's bandwidth reservation and removes
// it from active_flows.
func (o *Orchestrator) StopTraffic(connID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stopTrafficLocked(connID)
}

func (o *Orchestrator) stopTrafficLocked(connID string) error {
	conn, ok := o.flows[connID]
	if !ok {
		return fmt.Errorf("orchestrator: connection %q: %w", connID, ErrUnknownConnection)
	}
	if err := router.ReleasePath(o.sub, conn.NodePath, connID); err != nil {
		return err
	}
	delete(o.flows, connID)
	o.log.Info("traffic stopped", slog.String("conn_id", connID))
	return nil
}

// Connection returns the live connection registered under id.
func (o *Orchestrator) Connection(id string) (*Connection, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	conn, ok := o.flows[id]
	if !ok {
		return nil, fmt.Errorf("orchestrator: connection %q: %w", id, ErrUnknownConnection)
	}
	return conn, nil
}

// ActiveConnections returns every live connection.
func (o *Orchestrator) ActiveConnections() []*Connection {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]*Connection, 0, len(o.flows))
	for _, c := range o.flows {
		out = append(out, c)
	}
	return out
}

// MigrateVM moves vmID from its current host to dstHostID, atomically
// across four phases (spec.md §4.5, reordered per spec.md §9 — see
// DESIGN.md): reserve on dst first, then stop affected traffic, then
// release src and move the pin edge, then restart affected traffic.
//
// A Phase A failure touches no traffic and returns *MigrationFailedError.
// A Phase D failure returns *PartialMigrationError: the VM has already
// moved and is not rolled back, matching spec.md's own contract.
func (o *Orchestrator) MigrateVM(vmID, dstHostID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	vm, err := o.cat.VM(vmID)
	if err != nil {
		return err
	}
	srcHostID := vm.HostID
	if srcHostID == dstHostID {
		return nil
	}
	svc, err := o.cat.Service(vm.ServiceID)
	if err != nil {
		return err
	}

	affected := o.affectedConnectionsLocked(srcHostID)

	// Phase A: reserve on destination first.
	if err := o.sub.ReserveOnHost(dstHostID, svc.Demand(vmID)); err != nil {
		return &MigrationFailedError{VMID: vmID, HostID: dstHostID, Reason: err}
	}

	// Phase B: stop traffic for every connection routed through vm's
	// current host.
	affectedUserIDs := make([]string, 0, len(affected))
	for _, conn := range affected {
		affectedUserIDs = append(affectedUserIDs, conn.UserID)
		if err := o.stopTrafficLocked(conn.ID); err != nil {
			o.log.Warn("migrate: stop traffic failed", slog.String("conn_id", conn.ID), slog.String("error", err.Error()))
		}
	}

	// Phase C: release source, move the pin edge, update the VM record.
	if err := o.sub.ReleaseFromHost(srcHostID, vmID); err != nil {
		o.log.Warn("migrate: release source failed", slog.String("vm_id", vmID), slog.String("error", err.Error()))
	}
	if err := o.sub.MovePinEdge(vmID, srcHostID, dstHostID); err != nil {
		return &MigrationFailedError{VMID: vmID, HostID: dstHostID, Reason: err}
	}
	if err := o.cat.SetVMHost(vmID, dstHostID); err != nil {
		return &MigrationFailedError{VMID: vmID, HostID: dstHostID, Reason: err}
	}

	// Phase D: restart traffic for every affected user.
	var failed []string
	for _, userID := range affectedUserIDs {
		if _, err := o.startTrafficLocked(userID); err != nil {
			o.log.Warn("migrate: restart traffic refused", slog.String("user_id", userID))
			failed = append(failed, userID)
		}
	}
	if len(failed) > 0 {
		return &PartialMigrationError{VMID: vmID, FailedUserIDs: failed}
	}
	return nil
}

// startTrafficLocked is StartTraffic's body without re-acquiring o.mu,
// for use from within MigrateVM's Phase D.
func (o *Orchestrator) startTrafficLocked(userID string) (*Connection, error) {
	user, err := o.sub.User(userID)
	if err != nil {
		return nil, err
	}
	waypoints, err := o.waypointsFor(userID)
	if err != nil {
		return nil, err
	}
	connID := o.sub.IDs().Next()
	path, err := router.FindPath(o.sub, waypoints, user.Bandwidth, connID, o.weightFn)
	if err != nil {
		return nil, ErrDenied
	}
	conn := &Connection{ID: connID, UserID: userID, NodePath: path}
	o.flows[connID] = conn
	return conn, nil
}

// affectedConnectionsLocked returns every live connection whose node path
// touches hostID.
func (o *Orchestrator) affectedConnectionsLocked(hostID string) []*Connection {
	var out []*Connection
	for _, conn := range o.flows {
		for _, node := range conn.NodePath {
			if node == hostID {
				out = append(out, conn)
				break
			}
		}
	}
	return out
}

// ServicePing returns the sum of propagation delay along conn's node
// path. conn == nil represents a denied/null connection and returns
// spec.md §4.5's SENTINEL_DENIED.
func (o *Orchestrator) ServicePing(conn *Connection) float64 {
	if conn == nil {
		return SentinelDenied
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	return router.PathDelay(o.sub, conn.NodePath)
}

// ServiceData returns the sum of each hop's link.sample_energy along
// conn's node path (spec.md §4.5). Each edge's energy is sampled using
// the bits_overhead of whichever endpoint is a registered Host — the
// hop leaving the user node has no host on its source side, so that one
// hop falls back to the destination host's bits_overhead, which is the
// nearest physical node the formula can anchor to. Returns
// SentinelDataDenied for a null connection.
func (o *Orchestrator) ServiceData(conn *Connection) (float64, error) {
	if conn == nil {
		return SentinelDataDenied, nil
	}
	o.mu.RLock()
	defer o.mu.RUnlock()

	path := conn.NodePath
	graph := o.sub.Graph()
	var total float64
	for i := 0; i+1 < len(path); i++ {
		attrs, err := graph.EdgeAttrsOf(path[i], path[i+1])
		if err != nil {
			return 0, err
		}
		link, err := o.sub.Link(attrs.LinkID)
		if err != nil {
			return 0, err
		}
		overhead, err := o.bitsOverheadFor(path[i], path[i+1])
		if err != nil {
			return 0, err
		}
		total += link.SampleEnergy(overhead)
	}
	if total == 0 {
		return 0, fmt.Errorf("orchestrator: service data integrity: %w", ErrZeroEnergy)
	}
	return total, nil
}

// bitsOverheadFor resolves the bits_overhead constant for one hop,
// preferring the source node when it is a Host and falling back to the
// destination node otherwise (see ServiceData's doc comment).
func (o *Orchestrator) bitsOverheadFor(srcID, dstID string) (float64, error) {
	if h, err := o.sub.Host(srcID); err == nil {
		return h.Physical.BitsOverhead, nil
	}
	if h, err := o.sub.Host(dstID); err == nil {
		return h.Physical.BitsOverhead, nil
	}
	return 0, fmt.Errorf("orchestrator: neither endpoint of %s-%s is a host: %w", srcID, dstID, topology.ErrNodeNotFound)
}

// ServicePerformanceScore returns the user's current traffic-pattern
// output divided by conn's service_ping, per spec.md §4.5.
func (o *Orchestrator) ServicePerformanceScore(conn *Connection) (float64, error) {
	if conn == nil {
		return SentinelPerfDenied, nil
	}
	o.mu.Lock()
	user, err := o.sub.User(conn.UserID)
	o.mu.Unlock()
	if err != nil {
		return 0, err
	}
	ping := o.ServicePing(conn)
	if ping == 0 {
		return 0, ErrZeroPing
	}
	return user.PatternOutput() / ping, nil
}

// FreeChain stops every connection and terminates every VM belonging to
// a chain, per spec.md §4.6's TTL expiry. userIDs lists every user
// consuming chainID (a chain may be shared by more than one user), and
// is supplied by the caller since Chain itself holds no back-reference
// to its users (spec.md §9's non-owning-reference rule).
func (o *Orchestrator) FreeChain(chainID string, userIDs []string) error {
	o.mu.Lock()
	for _, conn := range o.flows {
		for _, uid := range userIDs {
			if conn.UserID == uid {
				_ = o.stopTrafficLocked(conn.ID)
				break
			}
		}
	}
	o.mu.Unlock()

	chain, err := o.cat.Chain(chainID)
	if err != nil {
		return err
	}
	for _, vmID := range chain.VMIDs {
		if err := o.cat.TerminateVM(vmID); err != nil {
			o.log.Warn("free chain: terminate vm failed", slog.String("vm_id", vmID), slog.String("error", err.Error()))
		}
	}
	return o.cat.RemoveChain(chainID)
}
