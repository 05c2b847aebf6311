package orchestrator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDenied is returned by StartTraffic when the router finds no feasible
// path; spec.md §4.5 calls this the Connection | Denied result.
var ErrDenied = errors.New("orchestrator: traffic denied, no route available")

// ErrUnknownConnection is returned by StopTraffic for a connection id not
// in active_flows.
var ErrUnknownConnection = errors.New("orchestrator: unknown connection")

// ErrZeroEnergy reports that service_data summed to zero across a live
// connection's path — spec.md §4.5 calls this a data-integrity error
// that "must be reported, not silently coerced".
var ErrZeroEnergy = errors.New("orchestrator: service data sampled zero energy on a live connection")

// ErrZeroPing reports a zero-delay path, which would make
// service_performance_score's division undefined.
var ErrZeroPing = errors.New("orchestrator: service ping is zero, cannot compute performance score")

// Sentinel values emitted by the service_* probes for a null connection,
// per spec.md §4.5/§9's "error-return vs sentinel value" contract. These
// belong to the public, agent-visible surface; internally every other
// component returns a proper (T, error) pair.
const (
	SentinelDenied     = 99999.0
	SentinelDataDenied = -1.0
	SentinelPerfDenied = 0.0
)

// MigrationFailedError reports that migrate_vm could not move the VM. From
// Phase A (destination reservation) it is returned before any traffic is
// touched; it is also returned if Phase C's pin-edge move or VM-record
// update fails, after affected traffic has already been stopped.
type MigrationFailedError struct {
	VMID   string
	HostID string
	Reason error
}

func (e *MigrationFailedError) Error() string {
	return fmt.Sprintf("orchestrator: migrate vm %s to host %s: %v", e.VMID, e.HostID, e.Reason)
}

func (e *MigrationFailedError) Unwrap() error { return e.Reason }

func (e *MigrationFailedError) Is(target error) bool {
	_, ok := target.(*MigrationFailedError)
	return ok
}

// PartialMigrationError reports that the VM move itself (Phases A-C)
// succeeded but one or more affected users could not be restarted on the
// new topology (Phase D). The VM stays on the destination host; no
// rollback of the move is attempted, per spec.md §4.5 step 6.
type PartialMigrationError struct {
	VMID          string
	FailedUserIDs []string
}

func (e *PartialMigrationError) Error() string {
	return fmt.Sprintf("orchestrator: partial migration of vm %s, refused users: %s",
		e.VMID, strings.Join(e.FailedUserIDs, ","))
}

func (e *PartialMigrationError) Is(target error) bool {
	_, ok := target.(*PartialMigrationError)
	return ok
}
