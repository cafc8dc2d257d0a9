package domain

import (
	"time"

	"github.com/google/uuid"
)

// NetworkFeeAttribution declares who absorbs the network fee of a transfer.
type NetworkFeeAttribution string

const (
	// FeeOnTop adds the network fee on top of the requested amount (default).
	FeeOnTop NetworkFeeAttribution = "ON_TOP"
	// FeeDeduct subtracts the network fee from the requested amount.
	FeeDeduct NetworkFeeAttribution = "DEDUCT"
)

// DeductFeeFromAmount maps the attribution to the provider-facing flag.
// An unset attribution behaves like ON_TOP.
func (a NetworkFeeAttribution) DeductFeeFromAmount() bool {
	return a == FeeDeduct
}

// TransferPartyType identifies what an internal transfer party references.
type TransferPartyType string

const (
	PartyTypeWallet  TransferPartyType = "WALLET"
	PartyTypeAccount TransferPartyType = "ACCOUNT"
	PartyTypeAddress TransferPartyType = "ADDRESS"
)

// TransferParty is either a reference to an internal entity (Type+ID) or a
// raw untracked address (Address set, Type empty). Immutable after send.
type TransferParty struct {
	Type    TransferPartyType `json:"type,omitempty"`
	ID      uuid.UUID         `json:"id,omitempty"`
	Address string            `json:"address,omitempty"`
}

// IsRawAddress returns true when the party is an untracked external address.
func (p TransferParty) IsRawAddress() bool {
	return p.Type == "" && p.Address != ""
}

// TransferStatus is the normalized transfer state, re-derived from the
// provider at read time and never persisted.
type TransferStatus string

const (
	TransferStatusProcessing TransferStatus = "PROCESSING"
	TransferStatusSuccess    TransferStatus = "SUCCESS"
	TransferStatusFailed     TransferStatus = "FAILED"
)

// TransferFee is a single fee line reported by the provider.
type TransferFee struct {
	Type    string `json:"type"`
	AssetID string `json:"asset_id,omitempty"`
	Amount  string `json:"amount"`
}

// Transfer is the persisted record of a fund movement: what was requested
// plus what the system and the provider assigned. Status is deliberately
// absent; it lives on ResolvedTransfer only.
type Transfer struct {
	ID             uuid.UUID             `json:"id"`
	ClientID       uuid.UUID             `json:"client_id"`
	ConnectionID   uuid.UUID             `json:"connection_id"`
	Provider       Provider              `json:"provider"`
	ExternalID     string                `json:"external_id"`
	IdempotenceKey string                `json:"idempotence_key"`
	Source         TransferParty         `json:"source"`
	Destination    TransferParty         `json:"destination"`
	AssetID        string                `json:"asset_id"`
	NetworkID      string                `json:"network_id,omitempty"`
	GrossAmount    string                `json:"gross_amount"` // decimal string
	FeeAttribution NetworkFeeAttribution `json:"network_fee_attribution"`
	Memo           string                `json:"memo,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
}

// ResolvedTransfer combines the persisted transfer with a live
// provider-queried status and fee breakdown.
type ResolvedTransfer struct {
	Transfer
	Status TransferStatus `json:"status"`
	Fees   []TransferFee  `json:"fees"`
}

// TransferIntentState tracks the write-ahead record around a provider call.
type TransferIntentState string

const (
	IntentStateSubmitting TransferIntentState = "SUBMITTING"
	IntentStateCompleted  TransferIntentState = "COMPLETED"
)

// TransferIntent is persisted before the provider is called, so a crash
// between the provider accepting the transfer and the local record being
// written leaves a SUBMITTING row to reconcile instead of a silent gap.
// The (ClientID, IdempotenceKey) pair carries a unique constraint that
// backstops duplicate submissions.
type TransferIntent struct {
	ID             uuid.UUID           `json:"id"`
	ClientID       uuid.UUID           `json:"client_id"`
	ConnectionID   uuid.UUID           `json:"connection_id"`
	IdempotenceKey string              `json:"idempotence_key"`
	State          TransferIntentState `json:"state"`
	ExternalID     string              `json:"external_id,omitempty"` // set on completion
	CreatedAt      time.Time           `json:"created_at"`
}
