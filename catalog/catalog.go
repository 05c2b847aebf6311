package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/0C3L0T/vnfnet/substrate"
)

// Sentinel errors.
var (
	ErrServiceNotFound = errors.New("catalog: service not found")
	ErrChainNotFound   = errors.New("catalog: chain not found")
	ErrVMNotFound      = errors.New("catalog: vm not found")
	ErrEmptyChain      = errors.New("catalog: chain must have at least one function")
)

// ChainTemplate is an unembedded chain definition: an ordered list of
// service ids with no host assignments yet, exactly as spec.md §4.3's
// add_chain(title, [services], sla) registers it. Its Title, ServiceIDs and
// SLA are what EmbedChain takes, with one host per slot, to build a live
// Chain. env.Environment does not read ChainTemplates: its Poll hands the
// agent an env.Request supplied by a RequestSource.
type ChainTemplate struct {
	ID        string
	Title     string
	ServiceIDs []string
	SLA       float64
}

// Catalog owns Service templates, Chain templates, VM instances, and
// embedded Chains. It holds the substrate by reference (never by
// ownership) to reserve host capacity and maintain pin edges when VMs are
// instantiated or terminated.
type Catalog struct {
	mu sync.RWMutex

	sub *substrate.Substrate
	log *slog.Logger

	services map[string]Service
	templates map[string]ChainTemplate
	vms      map[string]*VM
	chains   map[string]*Chain
}

// New constructs a Catalog bound to sub. logger must not be nil.
func New(sub *substrate.Substrate, logger *slog.Logger) *Catalog {
	return &Catalog{
		sub:       sub,
		log:       logger,
		services:  make(map[string]Service),
		templates: make(map[string]ChainTemplate),
		vms:       make(map[string]*VM),
		chains:    make(map[string]*Chain),
	}
}

// AddService registers a new immutable service template and returns its id.
func (c *Catalog) AddService(title string, cpuReq, ramReq, storeReq, bandwidthReq float64) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.sub.IDs().Next()
	c.services[id] = Service{ID: id, Title: title, CPUReq: cpuReq, RAMReq: ramReq, StoreReq: storeReq, BandwidthReq: bandwidthReq}
	c.log.Info("service added", slog.String("service_id", id), slog.String("title", title))
	return id
}

// Service returns the service template registered under id.
func (c *Catalog) Service(id string) (Service, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.services[id]
	if !ok {
		return Service{}, fmt.Errorf("catalog: service %q: %w", id, ErrServiceNotFound)
	}
	return s, nil
}

// AddChain registers a new chain template: title, ordered service ids, and
// an SLA latency budget. len(serviceIDs) must be >= 1 (spec.md §3's
// chain-order invariant).
func (c *Catalog) AddChain(title string, serviceIDs []string, sla float64) (string, error) {
	if len(serviceIDs) == 0 {
		return "", ErrEmptyChain
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.sub.IDs().Next()
	cp := make([]string, len(serviceIDs))
	copy(cp, serviceIDs)
	c.templates[id] = ChainTemplate{ID: id, Title: title, ServiceIDs: cp, SLA: sla}
	c.log.Info("chain template added", slog.String("chain_id", id), slog.String("title", title), slog.Int("length", len(cp)))
	return id, nil
}

// ChainTemplate returns the chain template registered under id.
func (c *Catalog) ChainTemplate(id string) (ChainTemplate, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.templates[id]
	if !ok {
		return ChainTemplate{}, fmt.Errorf("catalog: chain template %q: %w", id, ErrChainNotFound)
	}
	return t, nil
}

// InstantiateVM reserves serviceID's footprint on hostID and, on success,
// registers a new VM and a graph pin edge. On CapacityExceeded the
// substrate's graph is left untouched, per spec.md §4.3.
func (c *Catalog) InstantiateVM(serviceID, hostID string) (string, error) {
	svc, err := c.Service(serviceID)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	vmID := c.sub.IDs().Next()
	if err := c.sub.ReserveOnHost(hostID, svc.Demand(vmID)); err != nil {
		return "", err
	}
	if err := c.sub.AddPinEdge(vmID, hostID); err != nil {
		// Roll back the reservation: the graph mutation failed but the
		// capacity claim already succeeded, and resource primitives must
		// never be left holding a reservation with no corresponding VM.
		_ = c.sub.ReleaseFromHost(hostID, vmID)
		return "", err
	}

	c.vms[vmID] = &VM{ID: vmID, Name: svc.Title + vmID, ServiceID: serviceID, HostID: hostID}
	c.log.Info("vm instantiated", slog.String("vm_id", vmID), slog.String("service_id", serviceID), slog.String("host_id", hostID))
	return vmID, nil
}

// VM returns the VM registered under id.
func (c *Catalog) VM(id string) (*VM, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	vm, ok := c.vms[id]
	if !ok {
		return nil, fmt.Errorf("catalog: vm %q: %w", id, ErrVMNotFound)
	}
	return vm, nil
}

// SetVMHost updates a VM's host reference in place (migrate_vm's Phase C);
// it does not touch reservations or the graph pin edge — callers (the
// orchestrator) are responsible for those.
func (c *Catalog) SetVMHost(vmID, hostID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	vm, ok := c.vms[vmID]
	if !ok {
		return fmt.Errorf("catalog: vm %q: %w", vmID, ErrVMNotFound)
	}
	vm.HostID = hostID
	return nil
}

// TerminateVM releases the VM's service footprint from its host, removes the
// pin edge, and deletes the VM.
func (c *Catalog) TerminateVM(vmID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	vm, ok := c.vms[vmID]
	if !ok {
		return fmt.Errorf("catalog: vm %q: %w", vmID, ErrVMNotFound)
	}
	if err := c.sub.ReleaseFromHost(vm.HostID, vmID); err != nil {
		return err
	}
	c.sub.RemovePinEdge(vmID, vm.HostID)
	delete(c.vms, vmID)
	c.log.Info("vm terminated", slog.String("vm_id", vmID))
	return nil
}

// EmbedChain instantiates one VM per serviceID (in order, at the matching
// hostID) and records the resulting ordered VM sequence as a live Chain
// with the given SLA and expiry. If any instantiation fails, every VM
// already instantiated in this call is torn down before the error is
// returned, so a partially-embeddable chain never leaves live VMs behind.
func (c *Catalog) EmbedChain(title string, serviceIDs, hostIDs []string, sla, timeToLive float64) (*Chain, error) {
	if len(serviceIDs) == 0 || len(serviceIDs) != len(hostIDs) {
		return nil, ErrEmptyChain
	}

	vmIDs := make([]string, 0, len(serviceIDs))
	for i, svcID := range serviceIDs {
		vmID, err := c.InstantiateVM(svcID, hostIDs[i])
		if err != nil {
			for _, done := range vmIDs {
				_ = c.TerminateVM(done)
			}
			return nil, err
		}
		vmIDs = append(vmIDs, vmID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	chainID := c.sub.IDs().Next()
	chain := &Chain{ID: chainID, Title: title, VMIDs: vmIDs, SLA: sla, TimeToLive: timeToLive}
	c.chains[chainID] = chain
	c.log.Info("chain embedded", slog.String("chain_id", chainID), slog.Int("length", len(vmIDs)))
	return chain, nil
}

// Chain returns the embedded chain registered under id.
func (c *Catalog) Chain(id string) (*Chain, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ch, ok := c.chains[id]
	if !ok {
		return nil, fmt.Errorf("catalog: chain %q: %w", id, ErrChainNotFound)
	}
	return ch, nil
}

// Chains returns every embedded chain.
func (c *Catalog) Chains() []*Chain {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Chain, 0, len(c.chains))
	for _, ch := range c.chains {
		out = append(out, ch)
	}
	return out
}

// RemoveChain forgets a live chain (its VMs are not touched — callers that
// want to tear down VMs too should TerminateVM each of Chain.VMIDs first,
// e.g. via orchestrator.FreeChain).
func (c *Catalog) RemoveChain(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.chains[id]; !ok {
		return fmt.Errorf("catalog: chain %q: %w", id, ErrChainNotFound)
	}
	delete(c.chains, id)
	return nil
}
