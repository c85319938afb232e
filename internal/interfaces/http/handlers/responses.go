// Package handlers exposes the HTTP boundary: request DTOs, response
// shaping and use case dispatch.
package handlers

import (
	"time"

	"naplink/internal/domain/audit"
	"naplink/internal/domain/client"
	"naplink/internal/domain/connection"
	"naplink/internal/domain/network"
	"naplink/internal/domain/plan"
)

type NAPResponse struct {
	ID         uint    `json:"id"`
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	TotalPorts int     `json:"total_ports"`
	Status     string  `json:"status"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Address    string  `json:"address,omitempty"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

func ToNAPResponse(n *network.NAP) NAPResponse {
	return NAPResponse{
		ID:         n.ID(),
		Code:       n.Code(),
		Name:       n.Name(),
		TotalPorts: n.TotalPorts(),
		Status:     n.Status().String(),
		Latitude:   n.Latitude(),
		Longitude:  n.Longitude(),
		Address:    n.Address(),
		CreatedAt:  n.CreatedAt().Format(time.RFC3339),
		UpdatedAt:  n.UpdatedAt().Format(time.RFC3339),
	}
}

type CapacityResponse struct {
	TotalPorts    int  `json:"total_ports"`
	OccupiedPorts int  `json:"occupied_ports"`
	Percent       int  `json:"percent"`
	Saturated     bool `json:"saturated"`
}

func ToCapacityResponse(r network.CapacityReport) CapacityResponse {
	return CapacityResponse{
		TotalPorts:    r.TotalPorts,
		OccupiedPorts: r.OccupiedPorts,
		Percent:       r.Percent,
		Saturated:     r.Saturated(),
	}
}

type PortResponse struct {
	ID        uint   `json:"id"`
	NAPID     uint   `json:"nap_id"`
	Number    int    `json:"number"`
	Status    string `json:"status"`
	Note      string `json:"note,omitempty"`
	UpdatedAt string `json:"updated_at"`
}

func ToPortResponse(p *network.Port) PortResponse {
	return PortResponse{
		ID:        p.ID(),
		NAPID:     p.NAPID(),
		Number:    p.Number(),
		Status:    p.Status().String(),
		Note:      p.Note(),
		UpdatedAt: p.UpdatedAt().Format(time.RFC3339),
	}
}

type ClientResponse struct {
	ID             uint   `json:"id"`
	DocumentNumber string `json:"document_number"`
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	CreatedAt      string `json:"created_at"`
}

func ToClientResponse(c *client.Client) ClientResponse {
	return ClientResponse{
		ID:             c.ID(),
		DocumentNumber: c.DocumentNumber(),
		Name:           c.Name(),
		Email:          c.Email(),
		Phone:          c.Phone(),
		Address:        c.Address(),
		CreatedAt:      c.CreatedAt().Format(time.RFC3339),
	}
}

type PlanResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	DownloadMbps int    `json:"download_mbps"`
	UploadMbps   int    `json:"upload_mbps"`
	PriceCents   int64  `json:"price_cents"`
	Active       bool   `json:"active"`
}

func ToPlanResponse(p *plan.Plan) PlanResponse {
	return PlanResponse{
		ID:           p.ID(),
		Name:         p.Name(),
		DownloadMbps: p.DownloadMbps(),
		UploadMbps:   p.UploadMbps(),
		PriceCents:   p.PriceCents(),
		Active:       p.IsActive(),
	}
}

type ConnectionResponse struct {
	ID        uint    `json:"id"`
	PortID    uint    `json:"port_id"`
	ClientID  uint    `json:"client_id"`
	PlanID    uint    `json:"plan_id"`
	Status    string  `json:"status"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date,omitempty"`
	CreatedBy uint    `json:"created_by"`
	Note      string  `json:"note,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func ToConnectionResponse(c *connection.Connection) ConnectionResponse {
	resp := ConnectionResponse{
		ID:        c.ID(),
		PortID:    c.PortID(),
		ClientID:  c.ClientID(),
		PlanID:    c.PlanID(),
		Status:    c.Status().String(),
		StartDate: c.StartDate().Format(time.RFC3339),
		CreatedBy: c.CreatedBy(),
		Note:      c.Note(),
		CreatedAt: c.CreatedAt().Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt().Format(time.RFC3339),
	}
	if end := c.EndDate(); end != nil {
		formatted := end.Format(time.RFC3339)
		resp.EndDate = &formatted
	}
	return resp
}

func ToConnectionResponses(conns []*connection.Connection) []ConnectionResponse {
	out := make([]ConnectionResponse, 0, len(conns))
	for _, c := range conns {
		out = append(out, ToConnectionResponse(c))
	}
	return out
}

type AuditRecordResponse struct {
	ID        uint           `json:"id"`
	Table     string         `json:"table"`
	RecordID  uint           `json:"record_id"`
	Action    string         `json:"action"`
	Before    map[string]any `json:"before,omitempty"`
	After     map[string]any `json:"after,omitempty"`
	ActorID   uint           `json:"actor_id"`
	CreatedAt string         `json:"created_at"`
}

func ToAuditRecordResponse(r *audit.Record) AuditRecordResponse {
	return AuditRecordResponse{
		ID:        r.ID(),
		Table:     r.TableName(),
		RecordID:  r.RecordID(),
		Action:    r.Action().String(),
		Before:    r.Before(),
		After:     r.After(),
		ActorID:   r.ActorID(),
		CreatedAt: r.CreatedAt().Format(time.RFC3339),
	}
}
