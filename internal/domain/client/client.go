// Package client holds the Client aggregate: a natural person identified by
// a unique document number. Clients are created or updated as a side effect
// of port allocation (upsert by document number) and otherwise live an
// independent lifecycle.
package client

import (
	"fmt"
	"strings"
	"time"
)

type Client struct {
	id             uint
	documentNumber string
	name           string
	email          string
	phone          string
	address        string
	createdAt      time.Time
	updatedAt      time.Time
}

// NewClient creates a new client.
func NewClient(documentNumber, name, email, phone, address string) (*Client, error) {
	documentNumber = strings.TrimSpace(documentNumber)
	if documentNumber == "" {
		return nil, fmt.Errorf("document number is required")
	}
	if name == "" {
		return nil, fmt.Errorf("client name is required")
	}

	now := time.Now().UTC()
	return &Client{
		documentNumber: documentNumber,
		name:           name,
		email:          email,
		phone:          phone,
		address:        address,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructClient reconstructs a client from persistence.
func ReconstructClient(
	id uint,
	documentNumber, name, email, phone, address string,
	createdAt, updatedAt time.Time,
) (*Client, error) {
	if id == 0 {
		return nil, fmt.Errorf("client ID cannot be zero")
	}
	if documentNumber == "" {
		return nil, fmt.Errorf("document number is required")
	}

	return &Client{
		id:             id,
		documentNumber: documentNumber,
		name:           name,
		email:          email,
		phone:          phone,
		address:        address,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (c *Client) ID() uint { return c.id }
func (c *Client) DocumentNumber() string { return c.documentNumber }
func (c *Client) Name() string { return c.name }
func (c *Client) Email() string { return c.email }
func (c *Client) Phone() string { return c.phone }
func (c *Client) Address() string { return c.address }
func (c *Client) CreatedAt() time.Time { return c.createdAt }
func (c *Client) UpdatedAt() time.Time { return c.updatedAt }

// SetID sets the client ID (only for persistence layer use)
func (c *Client) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("client ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("client ID cannot be zero")
	}
	c.id = id
	return nil
}

// UpdateContact replaces the contact fields. The document number is the
// client's identity and never changes here.
func (c *Client) UpdateContact(name, email, phone, address string) error {
	if name == "" {
		return fmt.Errorf("client name is required")
	}
	c.name = name
	c.email = email
	c.phone = phone
	c.address = address
	c.updatedAt = time.Now().UTC()
	return nil
}
