// Package snapshot is the wire format spec.md §4.7 calls "opaque
// serialization hooks": a canonical JSON encoding of substrate state for
// crossing a process boundary to an external placement agent, plus
// Stringer summaries that restore vnfnet.py's printUsers/printUserSnap
// family as idiomatic String() methods instead of direct prints.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/0C3L0T/vnfnet/substrate"
)

// State is a deep-copied, JSON-serializable view of a Substrate at one
// instant.
type State struct {
	Hosts  []substrate.HostView `json:"hosts"`
	Links  []substrate.LinkView `json:"links"`
	Bounds substrate.Bounds     `json:"bounds"`
}

// Capture deep-copies sub's hosts, links, and bounds into a State.
func Capture(sub *substrate.Substrate) State {
	return State{
		Hosts:  sub.QueryAllHosts(),
		Links:  sub.QueryAllLinks(),
		Bounds: sub.Bounds(),
	}
}

// Encode writes s to w as canonical (deterministic key order, since
// every field is already a struct, not a map) JSON.
func Encode(w io.Writer, s State) error {
	enc := json.NewEncoder(w)
	return enc.Encode(s)
}

// Decode reads a State previously written by Encode.
func Decode(r io.Reader) (State, error) {
	var s State
	dec := json.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		return State{}, fmt.Errorf("snapshot: decode: %w", err)
	}
	return s, nil
}

// String renders a short human-readable summary, the Go equivalent of
// vnfnet.py's printTopology header line.
func (s State) String() string {
	return fmt.Sprintf("substrate snapshot: %d hosts, %d links (max cpu=%.2f ram=%.2f storage=%.2f bandwidth=%.2f delay=%.2fms)",
		len(s.Hosts), len(s.Links), s.Bounds.MaxCPU, s.Bounds.MaxRAM, s.Bounds.MaxStorage, s.Bounds.MaxBandwidth, s.Bounds.MaxLatencyMs)
}

// HostSummaries renders one line per host, restoring vnfnet.py's
// printUserSnap's per-entity listing idiom.
func (s State) HostSummaries() string {
	var b strings.Builder
	for _, h := range s.Hosts {
		fmt.Fprintf(&b, "host %s: cpu %.1f/%.1f ram %.1f/%.1f storage %.1f/%.1f running=%v\n",
			h.ID, h.CPUUsed, h.CPUCap, h.RAMUsed, h.RAMCap, h.StorageUsed, h.StorageCap, h.RunningServiceIDs)
	}
	return b.String()
}
