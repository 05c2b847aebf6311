package substrate

// TrafficPattern selects the datarate-over-time function a User emits,
// ported from vnfnet.py's User.trafficPatternGenerator.
type TrafficPattern int

const (
	// Reserved holds the user's declared bandwidth constant over time.
	Reserved TrafficPattern = iota
	// Square alternates between 30% and 100% of declared bandwidth.
	Square
	// Saw ramps 0%..90% of declared bandwidth in 10% steps, then resets.
	Saw
)

// User is an endpoint attached to the topology graph that consumes a
// chain (referenced non-owningly by ChainID, per spec.md §9's back-reference
// design note — Users never hold a *catalog.Chain) at a declared bandwidth
// and traffic pattern.
type User struct {
	ID        string
	Name      string
	ChainID   string
	Bandwidth float64
	Pattern   TrafficPattern

	counter uint64
}

// PatternOutput advances the user's counter and returns the instantaneous
// datarate for the current tick, reproducing vnfnet.py's
// trafficPatternGenerator exactly:
//
//	Square: counter even -> 0.3*bandwidth, odd -> 1.0*bandwidth
//	Saw:    (counter mod 10) * 0.1 * bandwidth
//	Reserved: bandwidth, unconditionally
func (u *User) PatternOutput() float64 {
	var out float64
	switch u.Pattern {
	case Square:
		if u.counter%2 == 0 {
			out = 0.3 * u.Bandwidth
		} else {
			out = u.Bandwidth
		}
	case Saw:
		out = float64(u.counter%10) * 0.1 * u.Bandwidth
	default:
		out = u.Bandwidth
	}
	u.counter++
	return out
}
