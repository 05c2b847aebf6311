package resource

// ServiceDemand is the resource footprint of a single service instance,
// as declared by its catalog.Service template. Host and Link accounting
// only ever need this shape, not the full catalog type, which keeps
// resource free of an import cycle back to catalog.
type ServiceDemand struct {
	ID        string
	CPU       float64
	RAM       float64
	Storage   float64
	Bandwidth float64
}

// HostPhysical holds the fixed physical constants spec.md §3 lists for a
// Host, used only by SampleEnergy.
type HostPhysical struct {
	CPUFrequencyHz         float64
	CyclesPerSample        float64
	EffectiveCapacitance   float64
	BitsOverhead           float64
}

// Host is a physical compute node: capacities, live utilization, and the
// services currently resident on it. The zero value is not usable; build
// one with NewHost.
type Host struct {
	ID string

	CPUCap     float64
	RAMCap     float64
	StorageCap float64

	CPUUsed     float64
	RAMUsed     float64
	StorageUsed float64

	Physical HostPhysical

	running map[string]ServiceDemand
}

// NewHost constructs a Host with zeroed utilization.
func NewHost(id string, cpuCap, ramCap, storageCap float64, physical HostPhysical) *Host {
	return &Host{
		ID:         id,
		CPUCap:     cpuCap,
		RAMCap:     ramCap,
		StorageCap: storageCap,
		Physical:   physical,
		running:    make(map[string]ServiceDemand),
	}
}

// CanHost reports whether every dimension has enough headroom for d.
func (h *Host) CanHost(d ServiceDemand) bool {
	return h.CPUUsed+d.CPU <= h.CPUCap &&
		h.RAMUsed+d.RAM <= h.RAMCap &&
		h.StorageUsed+d.Storage <= h.StorageCap
}

// InstantiateService reserves d's footprint on h, or fails with
// CapacityExceededError naming the first insufficient dimension. On
// failure h is left untouched.
func (h *Host) InstantiateService(d ServiceDemand) error {
	switch {
	case h.CPUUsed+d.CPU > h.CPUCap:
		return &CapacityExceededError{EntityID: h.ID, Dim: DimCPU}
	case h.RAMUsed+d.RAM > h.RAMCap:
		return &CapacityExceededError{EntityID: h.ID, Dim: DimRAM}
	case h.StorageUsed+d.Storage > h.StorageCap:
		return &CapacityExceededError{EntityID: h.ID, Dim: DimStorage}
	}

	h.CPUUsed += d.CPU
	h.RAMUsed += d.RAM
	h.StorageUsed += d.Storage
	h.running[d.ID] = d
	return nil
}

// KillService releases the footprint declared by the service template
// (looked up by serviceID among currently-resident demands, never by
// whatever the caller happens to pass), ensuring symmetric accounting per
// spec.md §4.1. Each dimension clamps at zero; clamping returns an
// OverReleaseWarning alongside the otherwise-successful release.
func (h *Host) KillService(serviceID string) error {
	d, ok := h.running[serviceID]
	if !ok {
		return &NotResidentError{HostID: h.ID, ServiceID: serviceID}
	}
	delete(h.running, serviceID)

	var warn error
	h.CPUUsed, warn = clampRelease(h.CPUUsed, d.CPU, h.ID, DimCPU, warn)
	h.RAMUsed, warn = clampRelease(h.RAMUsed, d.RAM, h.ID, DimRAM, warn)
	h.StorageUsed, warn = clampRelease(h.StorageUsed, d.Storage, h.ID, DimStorage, warn)
	return warn
}

func clampRelease(used, amount float64, entityID string, dim Dimension, warn error) (float64, error) {
	next := used - amount
	if next < 0 {
		if warn == nil {
			warn = &OverReleaseWarning{EntityID: entityID, Dim: dim}
		}
		return 0, warn
	}
	return next, warn
}

// SampleEnergy returns the host's instantaneous power draw, derived purely
// from current utilization and the host's physical constants — it never
// mutates state. Formula ported verbatim from vnfnet.py
// Host.sampleEnergyConsumption.
func (h *Host) SampleEnergy() float64 {
	return h.CPUUsed * h.Physical.EffectiveCapacitance * h.Physical.CyclesPerSample *
		h.Physical.BitsOverhead * h.Physical.CPUFrequencyHz * h.Physical.CPUFrequencyHz
}

// RunningServiceIDs returns the ids of services currently resident on h, in
// no particular order.
func (h *Host) RunningServiceIDs() []string {
	ids := make([]string, 0, len(h.running))
	for id := range h.running {
		ids = append(ids, id)
	}
	return ids
}
