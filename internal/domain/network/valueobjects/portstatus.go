package valueobjects

type PortStatus string

const (
	PortStatusFree        PortStatus = "free"
	PortStatusOccupied    PortStatus = "occupied"
	PortStatusMaintenance PortStatus = "maintenance"
)

func (s PortStatus) String() string {
	return string(s)
}

// Allocatable reports whether a connection may be bound to a port in this
// status.
func (s PortStatus) Allocatable() bool {
	return s == PortStatusFree
}

var ValidPortStatuses = map[PortStatus]bool{
	PortStatusFree:        true,
	PortStatusOccupied:    true,
	PortStatusMaintenance: true,
}
