package substrate

// HostView is a deep-copied, read-only snapshot of a Host, safe to hand to
// an external agent without risking a reference back into live state.
type HostView struct {
	ID string

	CPUCap, RAMCap, StorageCap       float64
	CPUUsed, RAMUsed, StorageUsed    float64
	RunningServiceIDs                []string
}

// LinkView is a deep-copied, read-only snapshot of a Link.
type LinkView struct {
	ID            string
	SrcID, DstID  string
	BandwidthCap  float64
	BandwidthUsed float64
	LatencyMs     float64
	Loss          float64
}

// QueryHost returns a deep-copied snapshot of the host registered under id.
func (s *Substrate) QueryHost(id string) (HostView, error) {
	h, err := s.Host(id)
	if err != nil {
		return HostView{}, err
	}
	ids := h.RunningServiceIDs()
	cp := make([]string, len(ids))
	copy(cp, ids)
	return HostView{
		ID:                h.ID,
		CPUCap:            h.CPUCap,
		RAMCap:            h.RAMCap,
		StorageCap:        h.StorageCap,
		CPUUsed:           h.CPUUsed,
		RAMUsed:           h.RAMUsed,
		StorageUsed:       h.StorageUsed,
		RunningServiceIDs: cp,
	}, nil
}

// QueryLink returns a deep-copied snapshot of the link registered under id.
func (s *Substrate) QueryLink(id string) (LinkView, error) {
	l, err := s.Link(id)
	if err != nil {
		return LinkView{}, err
	}
	return LinkView{
		ID:            l.ID,
		SrcID:         l.SrcID,
		DstID:         l.DstID,
		BandwidthCap:  l.BandwidthCap,
		BandwidthUsed: l.BandwidthUsed,
		LatencyMs:     l.LatencyMs,
		Loss:          l.Loss,
	}, nil
}

// QueryAllHosts returns a deep-copied snapshot of every host.
func (s *Substrate) QueryAllHosts() []HostView {
	ids := s.HostIDs()
	out := make([]HostView, 0, len(ids))
	for _, id := range ids {
		v, err := s.QueryHost(id)
		if err == nil {
			out = append(out, v)
		}
	}
	return out
}

// QueryAllLinks returns a deep-copied snapshot of every link.
func (s *Substrate) QueryAllLinks() []LinkView {
	ids := s.LinkIDs()
	out := make([]LinkView, 0, len(ids))
	for _, id := range ids {
		v, err := s.QueryLink(id)
		if err == nil {
			out = append(out, v)
		}
	}
	return out
}
