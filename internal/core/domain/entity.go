package domain

import (
	"time"

	"github.com/google/uuid"
)

// Wallet mirrors a provider's top-level custody resource (vault or
// vault account, depending on the provider). ExternalID is the provider's
// identifier and is unique within (ClientID, Provider).
type Wallet struct {
	ID           uuid.UUID `json:"id"`
	ExternalID   string    `json:"external_id"`
	ClientID     uuid.UUID `json:"client_id"`
	ConnectionID uuid.UUID `json:"connection_id"`
	Provider     Provider  `json:"provider"`
	Label        string    `json:"label,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Account mirrors a provider's second-tier resource (asset wallet or
// sub-account) under a Wallet.
type Account struct {
	ID           uuid.UUID `json:"id"`
	ExternalID   string    `json:"external_id"`
	WalletID     uuid.UUID `json:"wallet_id"`
	ClientID     uuid.UUID `json:"client_id"`
	ConnectionID uuid.UUID `json:"connection_id"`
	Provider     Provider  `json:"provider"`
	AssetID      string    `json:"asset_id,omitempty"`
	Label        string    `json:"label,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Address mirrors a provider deposit address under an Account.
// Address strings are stored lower-cased.
type Address struct {
	ID           uuid.UUID `json:"id"`
	ExternalID   string    `json:"external_id"`
	AccountID    uuid.UUID `json:"account_id"`
	ClientID     uuid.UUID `json:"client_id"`
	ConnectionID uuid.UUID `json:"connection_id"`
	Provider     Provider  `json:"provider"`
	Address      string    `json:"address"`
	NetworkID    string    `json:"network_id,omitempty"`
	AssetID      string    `json:"asset_id,omitempty"`
	Label        string    `json:"label,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
