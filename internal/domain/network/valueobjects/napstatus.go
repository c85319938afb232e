package valueobjects

type NAPStatus string

const (
	NAPStatusActive      NAPStatus = "active"
	NAPStatusMaintenance NAPStatus = "maintenance"
	NAPStatusSaturated   NAPStatus = "saturated"
)

func (s NAPStatus) String() string {
	return string(s)
}

// Operational reports whether the NAP participates in capacity accounting.
// Maintenance NAPs are skipped by the capacity scan.
func (s NAPStatus) Operational() bool {
	return s == NAPStatusActive || s == NAPStatusSaturated
}

func (s NAPStatus) CanTransitionTo(target NAPStatus) bool {
	transitions := map[NAPStatus][]NAPStatus{
		NAPStatusActive:      {NAPStatusMaintenance, NAPStatusSaturated},
		NAPStatusMaintenance: {NAPStatusActive},
		NAPStatusSaturated:   {NAPStatusActive, NAPStatusMaintenance},
	}

	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

var ValidNAPStatuses = map[NAPStatus]bool{
	NAPStatusActive:      true,
	NAPStatusMaintenance: true,
	NAPStatusSaturated:   true,
}
