// Package plan holds the service Plan aggregate. Plans are reference data:
// a connection points at one plan and the plan's bandwidth is immutable
// during the connection's life.
package plan

import (
	"fmt"
	"time"
)

type Plan struct {
	id           uint
	name         string
	downloadMbps int
	uploadMbps   int
	priceCents   int64
	active       bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NewPlan creates a new active plan.
func NewPlan(name string, downloadMbps, uploadMbps int, priceCents int64) (*Plan, error) {
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if downloadMbps <= 0 || uploadMbps <= 0 {
		return nil, fmt.Errorf("bandwidth must be positive")
	}
	if priceCents < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}

	now := time.Now().UTC()
	return &Plan{
		name:         name,
		downloadMbps: downloadMbps,
		uploadMbps:   uploadMbps,
		priceCents:   priceCents,
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructPlan reconstructs a plan from persistence.
func ReconstructPlan(
	id uint,
	name string,
	downloadMbps, uploadMbps int,
	priceCents int64,
	active bool,
	createdAt, updatedAt time.Time,
) (*Plan, error) {
	if id == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}

	return &Plan{
		id:           id,
		name:         name,
		downloadMbps: downloadMbps,
		uploadMbps:   uploadMbps,
		priceCents:   priceCents,
		active:       active,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (p *Plan) ID() uint { return p.id }
func (p *Plan) Name() string { return p.name }
func (p *Plan) DownloadMbps() int { return p.downloadMbps }
func (p *Plan) UploadMbps() int { return p.uploadMbps }
func (p *Plan) PriceCents() int64 { return p.priceCents }
func (p *Plan) IsActive() bool { return p.active }
func (p *Plan) CreatedAt() time.Time { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time { return p.updatedAt }

// SetID sets the plan ID (only for persistence layer use)
func (p *Plan) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = id
	return nil
}

// Deactivate retires the plan from new allocations. Existing connections
// keep referencing it.
func (p *Plan) Deactivate() {
	if !p.active {
		return
	}
	p.active = false
	p.updatedAt = time.Now().UTC()
}

// Rename updates the display name.
func (p *Plan) Rename(name string) error {
	if name == "" {
		return fmt.Errorf("plan name is required")
	}
	p.name = name
	p.updatedAt = time.Now().UTC()
	return nil
}
