package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// KnownDestination is a vetted, provider-attested payout address.
// Address is always normalized to lower case before comparison or storage.
type KnownDestination struct {
	ID                     uuid.UUID `json:"id"`
	ExternalID             string    `json:"external_id"`
	ClientID               uuid.UUID `json:"client_id"`
	ConnectionID           uuid.UUID `json:"connection_id"`
	Provider               Provider  `json:"provider"`
	Address                string    `json:"address"`
	ExternalClassification string    `json:"external_classification,omitempty"`
	AssetID                string    `json:"asset_id,omitempty"`
	NetworkID              string    `json:"network_id"`
	Label                  string    `json:"label,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// NormalizeAddress lower-cases an on-chain address for comparison and storage.
func NormalizeAddress(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}
