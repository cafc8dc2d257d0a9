package domain

import (
	"time"

	"github.com/google/uuid"
)

// Provider identifies an integrated external custodian platform.
type Provider string

const (
	ProviderAnchorage  Provider = "ANCHORAGE"
	ProviderFireblocks Provider = "FIREBLOCKS"
	ProviderBitGo      Provider = "BITGO"
)

// Valid reports whether p is one of the integrated providers.
func (p Provider) Valid() bool {
	switch p {
	case ProviderAnchorage, ProviderFireblocks, ProviderBitGo:
		return true
	}
	return false
}

// ConnectionStatus represents the lifecycle state of a custodian connection.
type ConnectionStatus string

const (
	ConnectionStatusPending ConnectionStatus = "PENDING"
	ConnectionStatusActive  ConnectionStatus = "ACTIVE"
	ConnectionStatusRevoked ConnectionStatus = "REVOKED"
)

// Connection represents a client's link to an external custodian.
// The (ClientID, ID) pair is immutable once created; a revoked connection
// can never be reactivated.
type Connection struct {
	ID       uuid.UUID        `json:"id"`
	ClientID uuid.UUID        `json:"client_id"`
	Provider Provider         `json:"provider"`
	Status   ConnectionStatus `json:"status"`
	URL      string           `json:"url,omitempty"` // mandatory once active
	Label    string           `json:"label,omitempty"`

	// PublicKey is the base64 X25519 key a caller seals credentials with.
	// Exposed only while the connection is pending.
	PublicKey string `json:"public_key,omitempty"`

	// EncryptedBoxKey is the connection's sealing private key, encrypted
	// at rest. Never exposed.
	EncryptedBoxKey string `json:"-"`

	// SealedCredentials is the caller-submitted credential blob, sealed
	// to PublicKey. Resolvable only through the registry.
	SealedCredentials []byte `json:"-"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// IsActive returns true if the connection can serve provider calls.
func (c *Connection) IsActive() bool {
	return c.Status == ConnectionStatusActive
}

// CanTransitionTo reports whether moving to the target status is legal.
// The only legal edges are pending->active and active->revoked.
func (c *Connection) CanTransitionTo(target ConnectionStatus) bool {
	switch c.Status {
	case ConnectionStatusPending:
		return target == ConnectionStatusActive
	case ConnectionStatusActive:
		return target == ConnectionStatusRevoked
	}
	return false
}
