package network

import (
	"fmt"
	"time"

	vo "naplink/internal/domain/network/valueobjects"
)

// Port is an addressable physical connection point on a NAP. A port is
// exclusively owned by its NAP and is never re-parented. At most one live
// connection may occupy a port at any time.
type Port struct {
	id        uint
	napID     uint
	number    int
	status    vo.PortStatus
	note      string
	createdAt time.Time
	updatedAt time.Time
}

// NewPort creates a free port on the given NAP.
func NewPort(napID uint, number int) (*Port, error) {
	if napID == 0 {
		return nil, fmt.Errorf("nap ID is required")
	}
	if number < 1 {
		return nil, fmt.Errorf("port number must be positive")
	}

	now := time.Now().UTC()
	return &Port{
		napID:     napID,
		number:    number,
		status:    vo.PortStatusFree,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructPort reconstructs a port from persistence.
func ReconstructPort(
	id, napID uint,
	number int,
	status vo.PortStatus,
	note string,
	createdAt, updatedAt time.Time,
) (*Port, error) {
	if id == 0 {
		return nil, fmt.Errorf("port ID cannot be zero")
	}
	if napID == 0 {
		return nil, fmt.Errorf("nap ID is required")
	}
	if !vo.ValidPortStatuses[status] {
		return nil, fmt.Errorf("invalid port status: %s", status)
	}

	return &Port{
		id:        id,
		napID:     napID,
		number:    number,
		status:    status,
		note:      note,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (p *Port) ID() uint { return p.id }
func (p *Port) NAPID() uint { return p.napID }
func (p *Port) Number() int { return p.number }
func (p *Port) Status() vo.PortStatus { return p.status }
func (p *Port) Note() string { return p.note }
func (p *Port) CreatedAt() time.Time { return p.createdAt }
func (p *Port) UpdatedAt() time.Time { return p.updatedAt }

// SetID sets the port ID (only for persistence layer use)
func (p *Port) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("port ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("port ID cannot be zero")
	}
	p.id = id
	return nil
}

// IsFree reports whether the port can accept a new connection.
func (p *Port) IsFree() bool {
	return p.status.Allocatable()
}

// Occupy marks the port as occupied by a live connection.
func (p *Port) Occupy() error {
	if !p.status.Allocatable() {
		return fmt.Errorf("cannot occupy port with status %s", p.status)
	}
	p.status = vo.PortStatusOccupied
	p.updatedAt = time.Now().UTC()
	return nil
}

// Release frees an occupied port. Releasing an already-free port is a no-op.
func (p *Port) Release() error {
	if p.status == vo.PortStatusFree {
		return nil
	}
	if p.status == vo.PortStatusMaintenance {
		return fmt.Errorf("cannot release port under maintenance")
	}
	p.status = vo.PortStatusFree
	p.updatedAt = time.Now().UTC()
	return nil
}

// EnterMaintenance takes a free port out of service.
func (p *Port) EnterMaintenance() error {
	if p.status == vo.PortStatusMaintenance {
		return nil
	}
	if p.status == vo.PortStatusOccupied {
		return fmt.Errorf("cannot put occupied port under maintenance")
	}
	p.status = vo.PortStatusMaintenance
	p.updatedAt = time.Now().UTC()
	return nil
}

// ReturnToService frees a maintenance port.
func (p *Port) ReturnToService() error {
	if p.status != vo.PortStatusMaintenance {
		return fmt.Errorf("port is not under maintenance")
	}
	p.status = vo.PortStatusFree
	p.updatedAt = time.Now().UTC()
	return nil
}

// UpdateNote updates the free-text note on the port.
func (p *Port) UpdateNote(note string) {
	if p.note == note {
		return
	}
	p.note = note
	p.updatedAt = time.Now().UTC()
}
