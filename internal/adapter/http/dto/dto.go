package dto

import "time"

// CreateConnectionRequest is the request body for creating a connection.
type CreateConnectionRequest struct {
	Provider string `json:"provider" binding:"required"`
	Label    string `json:"label,omitempty" binding:"max=100"`
}

// ActivateConnectionRequest is the request body for activating a pending
// connection. SealedCredentials is the credential JSON sealed to the
// connection's public key, base64-encoded.
type ActivateConnectionRequest struct {
	URL               string `json:"url,omitempty" binding:"omitempty,url"`
	SealedCredentials string `json:"sealed_credentials" binding:"required"`
}

// ConnectionResponse is the public view of a connection. PublicKey is
// present only while the connection is pending.
type ConnectionResponse struct {
	ID        string     `json:"id"`
	Provider  string     `json:"provider"`
	Status    string     `json:"status"`
	URL       string     `json:"url,omitempty"`
	Label     string     `json:"label,omitempty"`
	PublicKey string     `json:"public_key,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// TransferPartyDTO references an internal entity by type and id, or a raw
// external address.
type TransferPartyDTO struct {
	Type    string `json:"type,omitempty"`
	ID      string `json:"id,omitempty"`
	Address string `json:"address,omitempty"`
}

// SendTransferRequest is the request body for submitting a transfer.
type SendTransferRequest struct {
	IdempotenceKey string           `json:"idempotence_key" binding:"required,max=128"`
	Source         TransferPartyDTO `json:"source" binding:"required"`
	Destination    TransferPartyDTO `json:"destination" binding:"required"`
	AssetID        string           `json:"asset_id" binding:"required"`
	NetworkID      string           `json:"network_id,omitempty"`
	GrossAmount    string           `json:"gross_amount" binding:"required"`
	FeeAttribution string           `json:"network_fee_attribution,omitempty"`
	Memo           string           `json:"memo,omitempty"`
}

// TransferResponse is the persisted view of a transfer. Status is absent:
// it is only reported on reads, live from the provider.
type TransferResponse struct {
	ID             string           `json:"id"`
	ConnectionID   string           `json:"connection_id"`
	Provider       string           `json:"provider"`
	ExternalID     string           `json:"external_id"`
	IdempotenceKey string           `json:"idempotence_key"`
	Source         TransferPartyDTO `json:"source"`
	Destination    TransferPartyDTO `json:"destination"`
	AssetID        string           `json:"asset_id"`
	NetworkID      string           `json:"network_id,omitempty"`
	GrossAmount    string           `json:"gross_amount"`
	FeeAttribution string           `json:"network_fee_attribution"`
	Memo           string           `json:"memo,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// TransferFeeDTO is one fee line of a resolved transfer.
type TransferFeeDTO struct {
	Type    string `json:"type"`
	AssetID string `json:"asset_id,omitempty"`
	Amount  string `json:"amount"`
}

// ResolvedTransferResponse combines the stored transfer with the live
// provider status and fees.
type ResolvedTransferResponse struct {
	TransferResponse
	Status string           `json:"status"`
	Fees   []TransferFeeDTO `json:"fees"`
}

// KnownDestinationResponse is one provider-attested destination.
type KnownDestinationResponse struct {
	ExternalID     string `json:"external_id"`
	Address        string `json:"address"`
	Classification string `json:"external_classification,omitempty"`
	AssetID        string `json:"asset_id,omitempty"`
	NetworkID      string `json:"network_id,omitempty"`
	Label          string `json:"label,omitempty"`
}

// SyncOperationDTO is one reconciliation outcome line.
type SyncOperationDTO struct {
	Type       string            `json:"type"`
	ExternalID string            `json:"external_id,omitempty"`
	EntityID   string            `json:"entity_id,omitempty"`
	Message    string            `json:"message,omitempty"`
	Context    map[string]string `json:"context,omitempty"`
}

// SyncResultResponse reports the outcome of one reconciliation pass.
type SyncResultResponse struct {
	Mutations         int                `json:"mutations"`
	Wallets           []SyncOperationDTO `json:"wallets"`
	Accounts          []SyncOperationDTO `json:"accounts"`
	Addresses         []SyncOperationDTO `json:"addresses"`
	KnownDestinations []SyncOperationDTO `json:"known_destinations"`
}
