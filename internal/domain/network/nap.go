package network

import (
	"fmt"
	"time"

	vo "naplink/internal/domain/network/valueobjects"
)

const (
	// MinTotalPorts and MaxTotalPorts bound the physical capacity of a NAP.
	MinTotalPorts = 1
	MaxTotalPorts = 1000
)

// NAP represents a network access point: a physical distribution device
// exposing a fixed number of ports. Capacity is immutable after creation;
// the saturated status is derived from port occupancy, while maintenance
// is operator-set.
type NAP struct {
	id         uint
	code       string
	name       string
	totalPorts int
	status     vo.NAPStatus
	latitude   float64
	longitude  float64
	address    string
	createdAt  time.Time
	updatedAt  time.Time
}

// NewNAP creates a new NAP with all ports expected to be provisioned by the
// caller.
func NewNAP(code, name string, totalPorts int, latitude, longitude float64, address string) (*NAP, error) {
	if code == "" {
		return nil, fmt.Errorf("nap code is required")
	}
	if len(code) > 50 {
		return nil, fmt.Errorf("nap code too long")
	}
	if name == "" {
		return nil, fmt.Errorf("nap name is required")
	}
	if totalPorts < MinTotalPorts || totalPorts > MaxTotalPorts {
		return nil, fmt.Errorf("total ports must be between %d and %d", MinTotalPorts, MaxTotalPorts)
	}
	if latitude < -90 || latitude > 90 {
		return nil, fmt.Errorf("latitude out of range")
	}
	if longitude < -180 || longitude > 180 {
		return nil, fmt.Errorf("longitude out of range")
	}

	now := time.Now().UTC()
	return &NAP{
		code:       code,
		name:       name,
		totalPorts: totalPorts,
		status:     vo.NAPStatusActive,
		latitude:   latitude,
		longitude:  longitude,
		address:    address,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructNAP reconstructs a NAP from persistence.
func ReconstructNAP(
	id uint,
	code, name string,
	totalPorts int,
	status vo.NAPStatus,
	latitude, longitude float64,
	address string,
	createdAt, updatedAt time.Time,
) (*NAP, error) {
	if id == 0 {
		return nil, fmt.Errorf("nap ID cannot be zero")
	}
	if !vo.ValidNAPStatuses[status] {
		return nil, fmt.Errorf("invalid nap status: %s", status)
	}

	return &NAP{
		id:         id,
		code:       code,
		name:       name,
		totalPorts: totalPorts,
		status:     status,
		latitude:   latitude,
		longitude:  longitude,
		address:    address,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (n *NAP) ID() uint { return n.id }
func (n *NAP) Code() string { return n.code }
func (n *NAP) Name() string { return n.name }
func (n *NAP) TotalPorts() int { return n.totalPorts }
func (n *NAP) Status() vo.NAPStatus { return n.status }
func (n *NAP) Latitude() float64 { return n.latitude }
func (n *NAP) Longitude() float64 { return n.longitude }
func (n *NAP) Address() string { return n.address }
func (n *NAP) CreatedAt() time.Time { return n.createdAt }
func (n *NAP) UpdatedAt() time.Time { return n.updatedAt }

// SetID sets the NAP ID (only for persistence layer use)
func (n *NAP) SetID(id uint) error {
	if n.id != 0 {
		return fmt.Errorf("nap ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("nap ID cannot be zero")
	}
	n.id = id
	return nil
}

// MarkSaturated flips the NAP to saturated. Only meaningful at 100%
// occupancy; callers verify occupancy before invoking.
func (n *NAP) MarkSaturated() error {
	if n.status == vo.NAPStatusSaturated {
		return nil
	}
	if !n.status.CanTransitionTo(vo.NAPStatusSaturated) {
		return fmt.Errorf("cannot saturate nap with status %s", n.status)
	}
	n.status = vo.NAPStatusSaturated
	n.updatedAt = time.Now().UTC()
	return nil
}

// ClearSaturation returns a saturated NAP to active once occupancy drops
// below 100%.
func (n *NAP) ClearSaturation() error {
	if n.status == vo.NAPStatusActive {
		return nil
	}
	if n.status != vo.NAPStatusSaturated {
		return fmt.Errorf("cannot clear saturation on nap with status %s", n.status)
	}
	n.status = vo.NAPStatusActive
	n.updatedAt = time.Now().UTC()
	return nil
}

// EnterMaintenance is operator-set and overrides capacity-derived state.
func (n *NAP) EnterMaintenance() error {
	if n.status == vo.NAPStatusMaintenance {
		return nil
	}
	n.status = vo.NAPStatusMaintenance
	n.updatedAt = time.Now().UTC()
	return nil
}

// Activate returns a maintenance NAP to service.
func (n *NAP) Activate() error {
	if n.status == vo.NAPStatusActive {
		return nil
	}
	if !n.status.CanTransitionTo(vo.NAPStatusActive) {
		return fmt.Errorf("cannot activate nap with status %s", n.status)
	}
	n.status = vo.NAPStatusActive
	n.updatedAt = time.Now().UTC()
	return nil
}

// Rename updates the display name and address.
func (n *NAP) Rename(name, address string) error {
	if name == "" {
		return fmt.Errorf("nap name is required")
	}
	n.name = name
	n.address = address
	n.updatedAt = time.Now().UTC()
	return nil
}
