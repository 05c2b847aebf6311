// Package guid implements the single monotonic identifier counter shared
// by every entity kind in a simulation run (hosts, links, users, VMs,
// chains, services, domains).
//
// Sharding this counter per entity kind would let two unrelated entities
// collide on the same numeric id, which breaks the topology graph's
// assumption that vertex ids are unique across hosts, VMs, and users.
package guid

import (
	"strconv"
	"sync/atomic"
)

// Counter is an atomic, monotonically increasing identifier source.
// The zero value is ready to use and starts at "1".
type Counter struct {
	n uint64
}

// New returns a Counter starting at 1.
func New() *Counter {
	return &Counter{}
}

// Next allocates and returns the next identifier in the shared namespace.
func (c *Counter) Next() string {
	return strconv.FormatUint(atomic.AddUint64(&c.n, 1), 10)
}
