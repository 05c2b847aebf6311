// Package substrate owns the physical layer of a simulation run: hosts,
// links, the topology graph, and the users attached to it. It is the only
// object shared across a single simulation's components (spec.md §5);
// every mutation of a Host, Link, or the Graph happens through a
// Substrate (or Orchestrator) method, never directly.
//
// Grounded on vnfnet.py's Network class for the add/remove surface
// (addHost, addLink, addUser, removeUser, removeLink) and on
// original_source/Substrate.py for the admit/release error-result shape,
// generalized from Python's Result[T, str] to Go's (T, error).
package substrate

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/0C3L0T/vnfnet/guid"
	"github.com/0C3L0T/vnfnet/resource"
	"github.com/0C3L0T/vnfnet/topology"
)

// Sentinel errors.
var (
	ErrHostNotFound = errors.New("substrate: host not found")
	ErrLinkNotFound = errors.New("substrate: link not found")
	ErrUserNotFound = errors.New("substrate: user not found")
	ErrSelfLoop     = errors.New("substrate: self-loop links are not allowed")
)

// Substrate is the physical layer: capacitated hosts and links wired into
// one topology graph, plus the users currently attached to it.
type Substrate struct {
	mu sync.RWMutex

	ids *guid.Counter
	log *slog.Logger

	graph *topology.Graph

	hosts   map[string]*resource.Host
	links   map[string]*resource.Link
	users   map[string]*User
	domains map[string]Domain

	bounds Bounds
}

// New constructs an empty Substrate. logger must not be nil; pass
// slog.Default() if the caller has no logging preference.
func New(logger *slog.Logger) *Substrate {
	return &Substrate{
		ids:     guid.New(),
		log:     logger,
		graph:   topology.NewGraph(),
		hosts:   make(map[string]*resource.Host),
		links:   make(map[string]*resource.Link),
		users:   make(map[string]*User),
		domains: make(map[string]Domain),
	}
}

// IDs returns the shared identifier counter, so catalog.Catalog (and any
// other component minting substrate-visible ids) draws from the same
// namespace as hosts, links, and users.
func (s *Substrate) IDs() *guid.Counter { return s.ids }

// Graph returns the topology graph. Callers outside this package are
// expected to use it read-mostly (router's Suspend/Restore is the one
// sanctioned external mutator, during routing).
func (s *Substrate) Graph() *topology.Graph { return s.graph }

// AddHost registers a new host with the given capacities and physical
// constants, adds its graph node, and returns its id.
func (s *Substrate) AddHost(cpuCap, ramCap, storageCap float64, physical resource.HostPhysical) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.ids.Next()
	s.hosts[id] = resource.NewHost(id, cpuCap, ramCap, storageCap, physical)
	s.graph.AddNode(id, topology.NodeHost)
	s.bounds.observeHost(cpuCap, ramCap, storageCap)

	s.log.Info("host added", slog.String("host_id", id), slog.Float64("cpu_cap", cpuCap),
		slog.Float64("ram_cap", ramCap), slog.Float64("storage_cap", storageCap))
	return id
}

// Host returns the host registered under id.
func (s *Substrate) Host(id string) (*resource.Host, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.hosts[id]
	if !ok {
		return nil, fmt.Errorf("substrate: host %q: %w", id, ErrHostNotFound)
	}
	return h, nil
}

// AddLink registers a new bidirectional link between srcID and dstID,
// adds its graph edge, and returns its id. loss > 0 marks the link
// wireless for visualization only (spec.md §6); it has no bearing on
// admission.
//
// Either endpoint may be a host or a user: vnfnet.py's addLink took two
// objects duck-typed only on their uid, so a scenario like "User U at
// H1" (spec.md §8 scenario 1) is wired the same way any two hosts are —
// there is no separate user-attachment primitive. Only the graph node
// needs to exist; the endpoint need not be present in s.hosts.
func (s *Substrate) AddLink(srcID, dstID string, bandwidthGbps, delayMs, loss float64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if srcID == dstID {
		return "", ErrSelfLoop
	}
	if !s.graph.HasNode(srcID) {
		return "", fmt.Errorf("substrate: link src %q: %w", srcID, ErrHostNotFound)
	}
	if !s.graph.HasNode(dstID) {
		return "", fmt.Errorf("substrate: link dst %q: %w", dstID, ErrHostNotFound)
	}

	id := s.ids.Next()
	s.links[id] = resource.NewLink(id, srcID, dstID, bandwidthGbps, delayMs, -2, loss)

	color, style := "skyblue", "solid"
	if loss > 0 {
		color, style = "m", "dashed"
	}
	if err := s.graph.AddEdge(srcID, dstID, topology.EdgeAttrs{
		LinkID: id,
		Delay:  delayMs,
		Loss:   loss,
		Color:  color,
		Style:  style,
		Weight: bandwidthGbps / 12,
	}); err != nil {
		delete(s.links, id)
		return "", err
	}
	s.bounds.observeLink(bandwidthGbps, delayMs)

	s.log.Info("link added", slog.String("link_id", id), slog.String("src", srcID),
		slog.String("dst", dstID), slog.Float64("bandwidth_gbps", bandwidthGbps), slog.Float64("delay_ms", delayMs))
	return id, nil
}

// Link returns the link registered under id.
func (s *Substrate) Link(id string) (*resource.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.links[id]
	if !ok {
		return nil, fmt.Errorf("substrate: link %q: %w", id, ErrLinkNotFound)
	}
	return l, nil
}

// RemoveLink deletes linkID and its graph edge. Per spec.md §9's flagged
// ambiguity (some revisions wanted a (src, dst) signature), this
// implementation takes the single link id: links are already uniquely
// identified, and resolving by id (not by endpoint pair, which breaks once
// parallel links exist) keeps removal correct under future topology
// expansion.
func (s *Substrate) RemoveLink(linkID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.links[linkID]
	if !ok {
		return fmt.Errorf("substrate: link %q: %w", linkID, ErrLinkNotFound)
	}
	s.graph.RemoveEdge(l.SrcID, l.DstID)
	delete(s.links, linkID)
	s.log.Info("link removed", slog.String("link_id", linkID))
	return nil
}

// AddUser registers a new user consuming chainID at the given bandwidth and
// traffic pattern, adds its graph node, and returns its id.
func (s *Substrate) AddUser(name, chainID string, bandwidth float64, pattern TrafficPattern) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.ids.Next()
	s.users[id] = &User{ID: id, Name: name, ChainID: chainID, Bandwidth: bandwidth, Pattern: pattern}
	s.graph.AddNode(id, topology.NodeUser)

	s.log.Info("user added", slog.String("user_id", id), slog.String("name", name), slog.String("chain_id", chainID))
	return id
}

// User returns the user registered under id.
func (s *Substrate) User(id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("substrate: user %q: %w", id, ErrUserNotFound)
	}
	return u, nil
}

// RemoveUser deletes userID and its graph node.
func (s *Substrate) RemoveUser(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return fmt.Errorf("substrate: user %q: %w", userID, ErrUserNotFound)
	}
	delete(s.users, userID)
	s.graph.RemoveNode(userID)
	s.log.Info("user removed", slog.String("user_id", userID))
	return nil
}

// ReserveOnHost reserves demand's footprint on hostID, delegating to
// resource.Host.InstantiateService.
func (s *Substrate) ReserveOnHost(hostID string, demand resource.ServiceDemand) error {
	h, err := s.Host(hostID)
	if err != nil {
		return err
	}
	return h.InstantiateService(demand)
}

// ReleaseFromHost releases serviceID's footprint from hostID, delegating to
// resource.Host.KillService.
func (s *Substrate) ReleaseFromHost(hostID, serviceID string) error {
	h, err := s.Host(hostID)
	if err != nil {
		return err
	}
	return h.KillService(serviceID)
}

// AddPinEdge attaches vmID to hostID with a zero-bandwidth "pin" edge
// (DelayNoRoute so the router never crosses it), and registers vmID as a
// graph node. Ported from vnfnet.py's instantiateVM, which adds the same
// (color='g', style='dashed', delay=99999, bandwidth=0) edge.
func (s *Substrate) AddPinEdge(vmID, hostID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph.AddNode(vmID, topology.NodeVM)
	return s.graph.AddEdge(vmID, hostID, topology.EdgeAttrs{
		Delay: topology.DelayNoRoute,
		Color: "g",
		Style: "dashed",
	})
}

// RemovePinEdge detaches vmID from hostID and removes vmID's graph node.
func (s *Substrate) RemovePinEdge(vmID, hostID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph.RemoveEdge(vmID, hostID)
	s.graph.RemoveNode(vmID)
}

// MovePinEdge moves vmID's pin edge from srcHostID to dstHostID atomically
// from the graph's point of view (used by orchestrator.MigrateVM's Phase C).
func (s *Substrate) MovePinEdge(vmID, srcHostID, dstHostID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph.RemoveEdge(vmID, srcHostID)
	return s.graph.AddEdge(vmID, dstHostID, topology.EdgeAttrs{
		Delay: topology.DelayNoRoute,
		Color: "g",
		Style: "dashed",
	})
}

// AddDomain registers a named grouping of hosts and links (see Domain).
func (s *Substrate) AddDomain(name string, hostIDs, linkIDs []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.ids.Next()
	s.domains[id] = Domain{ID: id, Name: name, HostIDs: hostIDs, LinkIDs: linkIDs}
	return id
}

// Domains returns every registered domain.
func (s *Substrate) Domains() []Domain {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Domain, 0, len(s.domains))
	for _, d := range s.domains {
		out = append(out, d)
	}
	return out
}

// Bounds returns the running maximum of each substrate dimension observed
// so far.
func (s *Substrate) Bounds() Bounds {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bounds
}

// HostIDs returns every registered host id.
func (s *Substrate) HostIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.hosts))
	for id := range s.hosts {
		out = append(out, id)
	}
	return out
}

// LinkIDs returns every registered link id.
func (s *Substrate) LinkIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.links))
	for id := range s.links {
		out = append(out, id)
	}
	return out
}

// UsersOfChain returns the ids of every user currently consuming chainID.
// Chain itself holds no back-reference to its users (spec.md §9's
// non-owning-reference rule), so simclock resolves this through Substrate
// instead.
func (s *Substrate) UsersOfChain(chainID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, u := range s.users {
		if u.ChainID == chainID {
			out = append(out, u.ID)
		}
	}
	return out
}

// UserIDs returns every registered user id.
func (s *Substrate) UserIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.users))
	for id := range s.users {
		out = append(out, id)
	}
	return out
}
