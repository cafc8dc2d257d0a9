package ports

import (
	"context"

	"custody-broker/internal/core/domain"
)

//go:generate mockgen -source=adapters.go -destination=mocks/adapters_mock.go -package=mocks

// ConnectionContext bundles a resolved connection with its decrypted
// credentials for the duration of one provider operation.
type ConnectionContext struct {
	Connection  domain.Connection
	Credentials domain.Credentials
}

// RemoteWallet is a provider top-tier resource, normalized.
type RemoteWallet struct {
	ExternalID string
	Label      string
}

// RemoteAccount is a provider second-tier resource, normalized.
type RemoteAccount struct {
	ExternalID       string
	WalletExternalID string
	AssetID          string
	Label            string
}

// RemoteAddress is a provider deposit address, normalized.
type RemoteAddress struct {
	ExternalID        string
	AccountExternalID string
	Address           string
	NetworkID         string
	AssetID           string
	Label             string
}

// RemoteKnownDestination is a provider-attested payout address, normalized.
type RemoteKnownDestination struct {
	ExternalID     string
	Address        string
	Classification string
	AssetID        string
	NetworkID      string
	Label          string
}

// SyncAdapter fetches a provider's resource hierarchy for reconciliation.
// Implementations follow pagination to exhaustion and never expose
// provider-specific cursor shapes.
type SyncAdapter interface {
	FetchWallets(ctx context.Context, cc ConnectionContext) ([]RemoteWallet, error)
	FetchAccounts(ctx context.Context, cc ConnectionContext, walletExternalIDs []string) ([]RemoteAccount, error)
	FetchAddresses(ctx context.Context, cc ConnectionContext, accounts []RemoteAccount) ([]RemoteAddress, error)
	FetchKnownDestinations(ctx context.Context, cc ConnectionContext) ([]RemoteKnownDestination, error)
}

// ProviderParty is a transfer endpoint resolved to provider-native terms.
type ProviderParty struct {
	Kind       domain.TransferPartyType // empty for raw external addresses
	ExternalID string
	Address    string
}

// CreateTransferParams carries everything a provider needs to move funds.
type CreateTransferParams struct {
	IdempotenceKey      string
	Source              ProviderParty
	Destination         ProviderParty
	AssetID             string
	NetworkID           string
	Amount              string
	DeductFeeFromAmount bool
	Memo                string
}

// RemoteTransfer is the provider's acknowledgement of a created transfer.
type RemoteTransfer struct {
	ExternalID string
}

// RemoteTransferState is the provider-queried status and fee breakdown.
type RemoteTransferState struct {
	Status domain.TransferStatus
	Fees   []domain.TransferFee
}

// TransferAdapter executes and inspects fund movements at one provider.
type TransferAdapter interface {
	CreateTransfer(ctx context.Context, cc ConnectionContext, params CreateTransferParams) (*RemoteTransfer, error)
	// GetTransfer maps the provider-native status through a total mapping;
	// an unmapped status string is a fatal typed error, never a default.
	GetTransfer(ctx context.Context, cc ConnectionContext, externalID string) (*RemoteTransferState, error)
}

// KnownDestinationAdapter lists the provider's vetted payout addresses.
type KnownDestinationAdapter interface {
	ListKnownDestinations(ctx context.Context, cc ConnectionContext) ([]RemoteKnownDestination, error)
}

// ProxyRequest is an arbitrary request forwarded to the provider's raw API.
type ProxyRequest struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

// ProxyResponse is the provider's raw reply.
type ProxyResponse struct {
	StatusCode int
	Body       []byte
}

// ProxyAdapter forwards signed requests to the provider's raw API surface.
type ProxyAdapter interface {
	Forward(ctx context.Context, cc ConnectionContext, req ProxyRequest) (*ProxyResponse, error)
}

// AdapterRegistry resolves the capability set for a provider. Requesting a
// capability the provider does not implement returns a typed error naming
// the provider.
type AdapterRegistry interface {
	Sync(provider domain.Provider) (SyncAdapter, error)
	Transfer(provider domain.Provider) (TransferAdapter, error)
	KnownDestinations(provider domain.Provider) (KnownDestinationAdapter, error)
	Proxy(provider domain.Provider) (ProxyAdapter, error)
}
