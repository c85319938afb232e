// Package connection holds the Connection aggregate: the binding of a
// client and a plan to a physical port for a span of time. The central
// invariant of the allocation core lives here together with the port state:
// a port carries at most one live (active or suspended) connection.
package connection

import (
	"fmt"
	"time"

	vo "naplink/internal/domain/connection/valueobjects"
)

type Connection struct {
	id        uint
	portID    uint
	clientID  uint
	planID    uint
	status    vo.ConnectionStatus
	startDate time.Time
	endDate   *time.Time
	createdBy uint
	note      string
	createdAt time.Time
	updatedAt time.Time
}

// NewConnection creates a connection in the given initial status. Only
// active and suspended are legal at creation; finalized connections can
// only come out of a transition.
func NewConnection(portID, clientID, planID uint, initialStatus vo.ConnectionStatus, startDate time.Time, createdBy uint) (*Connection, error) {
	if portID == 0 {
		return nil, fmt.Errorf("port ID is required")
	}
	if clientID == 0 {
		return nil, fmt.Errorf("client ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if !initialStatus.Live() {
		return nil, fmt.Errorf("initial status must be active or suspended, got %s", initialStatus)
	}
	if startDate.IsZero() {
		startDate = time.Now().UTC()
	}

	now := time.Now().UTC()
	return &Connection{
		portID:    portID,
		clientID:  clientID,
		planID:    planID,
		status:    initialStatus,
		startDate: startDate,
		createdBy: createdBy,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructConnection reconstructs a connection from persistence.
func ReconstructConnection(
	id, portID, clientID, planID uint,
	status vo.ConnectionStatus,
	startDate time.Time,
	endDate *time.Time,
	createdBy uint,
	note string,
	createdAt, updatedAt time.Time,
) (*Connection, error) {
	if id == 0 {
		return nil, fmt.Errorf("connection ID cannot be zero")
	}
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid connection status: %s", status)
	}

	return &Connection{
		id:        id,
		portID:    portID,
		clientID:  clientID,
		planID:    planID,
		status:    status,
		startDate: startDate,
		endDate:   endDate,
		createdBy: createdBy,
		note:      note,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (c *Connection) ID() uint { return c.id }
func (c *Connection) PortID() uint { return c.portID }
func (c *Connection) ClientID() uint { return c.clientID }
func (c *Connection) PlanID() uint { return c.planID }
func (c *Connection) Status() vo.ConnectionStatus { return c.status }
func (c *Connection) StartDate() time.Time { return c.startDate }
func (c *Connection) EndDate() *time.Time { return c.endDate }
func (c *Connection) CreatedBy() uint { return c.createdBy }
func (c *Connection) Note() string { return c.note }
func (c *Connection) CreatedAt() time.Time { return c.createdAt }
func (c *Connection) UpdatedAt() time.Time { return c.updatedAt }

// SetID sets the connection ID (only for persistence layer use)
func (c *Connection) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("connection ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("connection ID cannot be zero")
	}
	c.id = id
	return nil
}

// IsLive reports whether the connection occupies its port.
func (c *Connection) IsLive() bool {
	return c.status.Live()
}

// IsFinalized reports whether the connection reached its terminal state.
func (c *Connection) IsFinalized() bool {
	return c.status.Terminal()
}

// Suspend pauses an active connection. The port remains occupied.
func (c *Connection) Suspend() error {
	if c.status == vo.StatusSuspended {
		return nil
	}
	if !c.status.CanTransitionTo(vo.StatusSuspended) {
		return fmt.Errorf("cannot suspend connection with status %s", c.status)
	}
	c.status = vo.StatusSuspended
	c.updatedAt = time.Now().UTC()
	return nil
}

// Reactivate resumes a suspended connection.
func (c *Connection) Reactivate() error {
	if c.status == vo.StatusActive {
		return nil
	}
	if !c.status.CanTransitionTo(vo.StatusActive) {
		return fmt.Errorf("cannot reactivate connection with status %s", c.status)
	}
	c.status = vo.StatusActive
	c.updatedAt = time.Now().UTC()
	return nil
}

// Finalize ends the connection. The end date is stamped with the given time
// only when not already set. Finalized is terminal.
func (c *Connection) Finalize(at time.Time) error {
	if !c.status.CanTransitionTo(vo.StatusFinalized) {
		return fmt.Errorf("cannot finalize connection with status %s", c.status)
	}
	c.status = vo.StatusFinalized
	if c.endDate == nil {
		t := at.UTC()
		c.endDate = &t
	}
	c.updatedAt = time.Now().UTC()
	return nil
}

// ChangePlan switches the connection to a different plan while live.
func (c *Connection) ChangePlan(planID uint) error {
	if planID == 0 {
		return fmt.Errorf("plan ID is required")
	}
	if planID == c.planID {
		return nil
	}
	if !c.status.Live() {
		return fmt.Errorf("cannot change plan on connection with status %s", c.status)
	}
	c.planID = planID
	c.updatedAt = time.Now().UTC()
	return nil
}

// UpdateNote updates the free-text note.
func (c *Connection) UpdateNote(note string) {
	if c.note == note {
		return
	}
	c.note = note
	c.updatedAt = time.Now().UTC()
}
