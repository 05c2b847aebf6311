package substrate

// Domain is a named grouping of hosts and links, restored from
// vnfnet.py's Domain class (spec.md's distillation dropped it). It has no
// effect on admission or routing — the original never special-cased
// routing per domain either — and exists purely so a caller can query
// "which hosts/links belong to site X" for multi-site topologies.
type Domain struct {
	ID      string
	Name    string
	HostIDs []string
	LinkIDs []string
}

// Bounds is the running maximum of each substrate dimension observed so
// far, restored from vnfnet.py's maxNetCPU/maxNetRAM/maxNetStorage/
// maxNetLatency/maxNetBandwidth fields (that file's own comment: "Used for
// ML regularization"). An agent normalizing observations against the
// substrate's scale can read this instead of scanning every host and link
// itself.
type Bounds struct {
	MaxCPU       float64
	MaxRAM       float64
	MaxStorage   float64
	MaxLatencyMs float64
	MaxBandwidth float64
}

func (b *Bounds) observeHost(cpuCap, ramCap, storageCap float64) {
	if cpuCap > b.MaxCPU {
		b.MaxCPU = cpuCap
	}
	if ramCap > b.MaxRAM {
		b.MaxRAM = ramCap
	}
	if storageCap > b.MaxStorage {
		b.MaxStorage = storageCap
	}
}

func (b *Bounds) observeLink(bandwidthCap, delayMs float64) {
	if delayMs > b.MaxLatencyMs {
		b.MaxLatencyMs = delayMs
	}
	if bandwidthCap > b.MaxBandwidth {
		b.MaxBandwidth = bandwidthCap
	}
}
