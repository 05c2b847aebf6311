// Package simclock holds the simulation's discrete time axis. Grounded on
// spec.md §4.6 and the tick-driven loop original_source/vnfnet.py's
// simulation/Simulation.py and VirtualLink.py sketch, generalized to an
// explicit Step call rather than a background thread, matching spec.md
// §5's single-threaded cooperative scheduling model.
package simclock

import (
	"log/slog"
	"sync"

	"github.com/0C3L0T/vnfnet/catalog"
	"github.com/0C3L0T/vnfnet/orchestrator"
)

// ChainUsers resolves the user ids currently consuming a chain, since
// Chain itself holds no back-reference to its users (spec.md §9's
// non-owning-reference rule). The simclock package takes this as a
// collaborator rather than owning a user→chain index itself.
type ChainUsers interface {
	UsersOfChain(chainID string) []string
}

// Clock advances current_time and expires chains whose TimeToLive has
// elapsed.
type Clock struct {
	mu sync.Mutex

	current float64

	cat   *catalog.Catalog
	orc   *orchestrator.Orchestrator
	users ChainUsers
	log   *slog.Logger
}

// New constructs a Clock at time zero.
func New(cat *catalog.Catalog, orc *orchestrator.Orchestrator, users ChainUsers, logger *slog.Logger) *Clock {
	return &Clock{cat: cat, orc: orc, users: users, log: logger}
}

// Now returns current_time.
func (c *Clock) Now() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Step advances current_time by dt and frees every chain whose
// TimeToLive has fallen below the new current_time, per spec.md §4.6.
func (c *Clock) Step(dt float64) {
	c.mu.Lock()
	c.current += dt
	now := c.current
	c.mu.Unlock()

	for _, chain := range c.cat.Chains() {
		if chain.TimeToLive < now {
			userIDs := c.users.UsersOfChain(chain.ID)
			if err := c.orc.FreeChain(chain.ID, userIDs); err != nil {
				c.log.Warn("simclock: free chain failed", slog.String("chain_id", chain.ID), slog.String("error", err.Error()))
			}
		}
	}
}
