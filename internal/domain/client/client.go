package client

import (
	"context"
	"strings"

	"github.com/petit-bistro/service-reservation/internal/domain"
)

// Client is a registered restaurant guest. The reservation core only reads
// and compares client identity; account state changes happen through the
// account service.
type Client struct {
	id           uint
	email        string
	passwordHash string
	name         string
	phone        string
	isActive     bool
}

// NewClient creates a client record pending its first login.
func NewClient(email, passwordHash, name, phone string) (*Client, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("a valid email address is required")
	}
	if passwordHash == "" {
		return nil, domain.NewValidationError("password hash is required")
	}
	return &Client{
		email:        email,
		passwordHash: passwordHash,
		name:         name,
		phone:        phone,
	}, nil
}

// Reconstruct rebuilds a Client from persistence data (no validation).
func Reconstruct(id uint, email, passwordHash, name, phone string, isActive bool) *Client {
	return &Client{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		name:         name,
		phone:        phone,
		isActive:     isActive,
	}
}

// ID returns the client's stable identifier.
func (c *Client) ID() uint { return c.id }

// Email returns the client's login email.
func (c *Client) Email() string { return c.email }

// PasswordHash returns the stored bcrypt hash.
func (c *Client) PasswordHash() string { return c.passwordHash }

// Name returns the client's display name.
func (c *Client) Name() string { return c.name }

// Phone returns the client's contact number.
func (c *Client) Phone() string { return c.phone }

// IsActive reports whether the client has an active session.
func (c *Client) IsActive() bool { return c.isActive }

// Activate marks the client as signed in.
func (c *Client) Activate() { c.isActive = true }

// Deactivate marks the client as signed out.
func (c *Client) Deactivate() { c.isActive = false }

// Repository defines the persistence contract for clients.
type Repository interface {
	// FindByEmail retrieves a client by login email.
	FindByEmail(ctx context.Context, email string) (*Client, error)

	// Save persists a new client and assigns its identifier.
	Save(ctx context.Context, c *Client) error

	// Update persists changes to an existing client.
	Update(ctx context.Context, c *Client) error
}
