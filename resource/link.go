package resource

// Reservation is a unit of bandwidth held against a Link, keyed by an
// arbitrary id (a connection id, in practice) rather than a full catalog
// Service, since traffic reservations are sized by a User's bandwidth, not
// by a service template. Host capacity reservations use ServiceDemand
// instead; Link bandwidth reservations use Reservation.
type Reservation struct {
	ID     string
	Amount float64
}

// Link is an undirected edge between two hosts: bandwidth capacity, live
// utilization, and the physical constants spec.md §3 lists for visualization
// and energy sampling.
type Link struct {
	ID     string
	SrcID  string
	DstID  string

	BandwidthCap  float64
	BandwidthUsed float64

	LatencyMs        float64
	OpticalPowerTxDbm float64
	Loss             float64 // > 0 marks the link wireless (visual only)

	reservations map[string]float64
}

// NewLink constructs a Link with zero bandwidth in use.
func NewLink(id, srcID, dstID string, bandwidthCap, latencyMs, opticalPowerTxDbm, loss float64) *Link {
	return &Link{
		ID:                id,
		SrcID:             srcID,
		DstID:             dstID,
		BandwidthCap:      bandwidthCap,
		LatencyMs:         latencyMs,
		OpticalPowerTxDbm: opticalPowerTxDbm,
		Loss:              loss,
		reservations:      make(map[string]float64),
	}
}

// Residual returns the link's unreserved bandwidth.
func (l *Link) Residual() float64 {
	return l.BandwidthCap - l.BandwidthUsed
}

// Establish reserves r.Amount of bandwidth under r.ID, or fails with
// CapacityExceededError leaving l untouched.
func (l *Link) Establish(r Reservation) error {
	if l.BandwidthUsed+r.Amount > l.BandwidthCap {
		return &CapacityExceededError{EntityID: l.ID, Dim: DimBandwidth}
	}
	l.BandwidthUsed += r.Amount
	l.reservations[r.ID] = r.Amount
	return nil
}

// Close releases the reservation named by reservationID, failing with
// NotEstablishedError if absent. Release clamps at zero, matching Host's
// over-release handling.
func (l *Link) Close(reservationID string) error {
	amount, ok := l.reservations[reservationID]
	if !ok {
		return &NotEstablishedError{LinkID: l.ID, ReservationID: reservationID}
	}
	delete(l.reservations, reservationID)

	next := l.BandwidthUsed - amount
	if next < 0 {
		l.BandwidthUsed = 0
		return &OverReleaseWarning{EntityID: l.ID, Dim: DimBandwidth}
	}
	l.BandwidthUsed = next
	return nil
}

// SampleEnergy returns the link's instantaneous transmit energy for
// datasizeBits of traffic. Per spec.md §9's resolved Open Question, a link
// with no active reservation (BandwidthUsed == 0) returns 0 rather than
// dividing by zero — the original vnfnet.py formula is undefined there.
func (l *Link) SampleEnergy(datasizeBits float64) float64 {
	if l.BandwidthUsed == 0 {
		return 0
	}
	return -l.OpticalPowerTxDbm * (datasizeBits / l.BandwidthUsed) * 1e-9
}
