// Package catalog holds the service templates, VM instances, and chain
// definitions a simulation run offers for embedding. Catalog owns VMs and
// Chains (spec.md §3's ownership rule); the substrate they are reserved
// against is held by reference, never owned.
package catalog

import "github.com/0C3L0T/vnfnet/resource"

// Service is an immutable resource-demand template, ported from
// vnfnet.py's Service class plus the bandwidth_req field spec.md §3 adds.
// BandwidthReq is copied into ServiceDemand.Bandwidth, but no reservation
// reads it: Host accounting uses CPU, RAM and storage only, and Link
// reservations are sized by the consuming User's Bandwidth.
type Service struct {
	ID      string
	Title   string
	CPUReq  float64
	RAMReq  float64
	StoreReq float64
	BandwidthReq float64
}

// Demand converts the immutable template into the resource.ServiceDemand
// shape Host.InstantiateService/KillService operate on, keyed by a specific
// VM instance id rather than the shared service id — two VMs of the same
// service running on the same host must be independently releasable.
func (s Service) Demand(instanceID string) resource.ServiceDemand {
	return resource.ServiceDemand{
		ID:        instanceID,
		CPU:       s.CPUReq,
		RAM:       s.RAMReq,
		Storage:   s.StoreReq,
		Bandwidth: s.BandwidthReq,
	}
}

// VM is a running instance of a Service pinned to one host. HostID is the
// only mutable field (migrate_vm), and is a non-owning reference — resolved
// through substrate.Substrate.Host, never a pointer, per spec.md §9's
// back-reference design note.
type VM struct {
	ID        string
	Name      string
	ServiceID string
	HostID    string
}

// Chain is an ordered, non-empty sequence of VM ids a user's traffic must
// traverse, plus its SLA latency budget and expiry time.
type Chain struct {
	ID          string
	Title       string
	VMIDs       []string
	SLA         float64
	TimeToLive  float64
}
