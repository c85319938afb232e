package valueobjects

type ConnectionStatus string

const (
	StatusActive    ConnectionStatus = "active"
	StatusSuspended ConnectionStatus = "suspended"
	StatusFinalized ConnectionStatus = "finalized"
)

func (s ConnectionStatus) String() string {
	return string(s)
}

// Live reports whether the connection currently occupies its port.
func (s ConnectionStatus) Live() bool {
	return s == StatusActive || s == StatusSuspended
}

// Terminal reports whether no further transition is allowed.
func (s ConnectionStatus) Terminal() bool {
	return s == StatusFinalized
}

// CanTransitionTo enforces the monotonic lifecycle:
// active<->suspended, and either into finalized; finalized is terminal.
func (s ConnectionStatus) CanTransitionTo(target ConnectionStatus) bool {
	transitions := map[ConnectionStatus][]ConnectionStatus{
		StatusActive:    {StatusSuspended, StatusFinalized},
		StatusSuspended: {StatusActive, StatusFinalized},
		StatusFinalized: {},
	}

	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

var ValidStatuses = map[ConnectionStatus]bool{
	StatusActive:    true,
	StatusSuspended: true,
	StatusFinalized: true,
}

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (ConnectionStatus, bool) {
	s := ConnectionStatus(raw)
	return s, ValidStatuses[s]
}
