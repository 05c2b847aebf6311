// Package topofixture builds small, deterministic substrate topologies for
// tests, adapted from builder's Path/Star/Grid/Complete constructors: the
// same fixed-ID, deterministic-order generation shape, generalized from
// core.Graph's int64-weighted AddVertex/AddEdge to substrate.Substrate's
// AddHost/AddLink, with every edge sharing one uniform Link spec instead of
// a per-edge weightFn/rng draw (a fixture's links don't need to vary).
package topofixture

import (
	"fmt"

	"github.com/0C3L0T/vnfnet/resource"
	"github.com/0C3L0T/vnfnet/substrate"
)

// LinkSpec is the uniform bandwidth/delay/loss every fixture edge gets.
type LinkSpec struct {
	BandwidthGbps float64
	DelayMs       float64
	Loss          float64
}

// DefaultLinkSpec is a generous link any fixture can route traffic over
// without tuning.
var DefaultLinkSpec = LinkSpec{BandwidthGbps: 10, DelayMs: 2, Loss: 0}

const minHosts = 1

// Path builds a simple path of n hosts, host[i] linked to host[i+1] for
// i = 0..n-2, mirroring builder.Path(n)'s linear-chain shape.
func Path(sub *substrate.Substrate, n int, link LinkSpec) ([]string, error) {
	if n < minHosts {
		return nil, fmt.Errorf("topofixture: Path: n=%d must be >= %d", n, minHosts)
	}

	ids := addHosts(sub, n)
	for i := 0; i+1 < n; i++ {
		if _, err := sub.AddLink(ids[i], ids[i+1], link.BandwidthGbps, link.DelayMs, link.Loss); err != nil {
			return nil, fmt.Errorf("topofixture: Path: linking host %d-%d: %w", i, i+1, err)
		}
	}
	return ids, nil
}

// Star builds one hub host connected to n-1 leaf hosts, mirroring
// builder.Star(n)'s hub-and-spoke shape. ids[0] is the hub.
func Star(sub *substrate.Substrate, n int, link LinkSpec) ([]string, error) {
	if n < 2 {
		return nil, fmt.Errorf("topofixture: Star: n=%d must be >= 2", n)
	}

	ids := addHosts(sub, n)
	hub := ids[0]
	for i := 1; i < n; i++ {
		if _, err := sub.AddLink(hub, ids[i], link.BandwidthGbps, link.DelayMs, link.Loss); err != nil {
			return nil, fmt.Errorf("topofixture: Star: linking hub-%d: %w", i, err)
		}
	}
	return ids, nil
}

// Complete builds the complete graph K_n over n hosts, every pair directly
// linked, mirroring builder.Complete(n)'s lexicographic pair emission.
func Complete(sub *substrate.Substrate, n int, link LinkSpec) ([]string, error) {
	if n < minHosts {
		return nil, fmt.Errorf("topofixture: Complete: n=%d must be >= %d", n, minHosts)
	}

	ids := addHosts(sub, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if _, err := sub.AddLink(ids[i], ids[j], link.BandwidthGbps, link.DelayMs, link.Loss); err != nil {
				return nil, fmt.Errorf("topofixture: Complete: linking %d-%d: %w", i, j, err)
			}
		}
	}
	return ids, nil
}

// Grid builds a rows x cols orthogonal grid with 4-neighborhood (right and
// bottom neighbors per cell), mirroring builder.Grid(rows, cols). The
// returned slice is row-major: ids[r*cols+c] is cell (r, c).
func Grid(sub *substrate.Substrate, rows, cols int, link LinkSpec) ([]string, error) {
	if rows < minHosts || cols < minHosts {
		return nil, fmt.Errorf("topofixture: Grid: rows=%d, cols=%d must each be >= %d", rows, cols, minHosts)
	}

	ids := addHosts(sub, rows*cols)
	at := func(r, c int) string { return ids[r*cols+c] }

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				if _, err := sub.AddLink(at(r, c), at(r, c+1), link.BandwidthGbps, link.DelayMs, link.Loss); err != nil {
					return nil, fmt.Errorf("topofixture: Grid: linking (%d,%d)-(%d,%d): %w", r, c, r, c+1, err)
				}
			}
			if r+1 < rows {
				if _, err := sub.AddLink(at(r, c), at(r+1, c), link.BandwidthGbps, link.DelayMs, link.Loss); err != nil {
					return nil, fmt.Errorf("topofixture: Grid: linking (%d,%d)-(%d,%d): %w", r, c, r+1, c, err)
				}
			}
		}
	}
	return ids, nil
}

// addHosts adds n identical, generously-resourced hosts and returns their
// assigned ids in insertion order.
func addHosts(sub *substrate.Substrate, n int) []string {
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = sub.AddHost(8, 16, 256, resource.HostPhysical{
			CPUFrequencyHz:       2.4e9,
			CyclesPerSample:      1000,
			EffectiveCapacitance: 1e-9,
			BitsOverhead:         64,
		})
	}
	return ids
}
