package ports

import (
	"context"
	"time"

	"custody-broker/internal/core/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=services.go -destination=mocks/services_mock.go -package=mocks

// CreateConnectionParams holds input for creating a pending connection.
type CreateConnectionParams struct {
	ClientID uuid.UUID
	Provider domain.Provider
	Label    string
}

// ActivateConnectionParams holds input for activating a pending connection.
// SealedCredentials is the credential JSON sealed to the connection's
// public key by the caller.
type ActivateConnectionParams struct {
	ClientID          uuid.UUID
	ConnectionID      uuid.UUID
	URL               string
	SealedCredentials []byte
}

// ConnectionRegistry owns connection lifecycle and credential resolution.
type ConnectionRegistry interface {
	Create(ctx context.Context, params CreateConnectionParams) (*domain.Connection, error)
	Activate(ctx context.Context, params ActivateConnectionParams) (*domain.Connection, error)
	Revoke(ctx context.Context, clientID, connectionID uuid.UUID) (*domain.Connection, error)
	List(ctx context.Context, clientID uuid.UUID) ([]domain.Connection, error)
	// FindWithCredentialsByID resolves a connection together with its
	// decrypted credentials. Fatal NotFound if absent; credentials only
	// resolve for active connections.
	FindWithCredentialsByID(ctx context.Context, clientID, connectionID uuid.UUID) (*ConnectionContext, error)
}

// SendTransferRequest holds validated input for sending a transfer.
type SendTransferRequest struct {
	IdempotenceKey string
	Source         domain.TransferParty
	Destination    domain.TransferParty
	AssetID        string
	NetworkID      string
	GrossAmount    string
	FeeAttribution domain.NetworkFeeAttribution
	Memo           string
}

// TransferService moves funds through providers with idempotency and
// fee-attribution semantics.
type TransferService interface {
	Send(ctx context.Context, clientID, connectionID uuid.UUID, req SendTransferRequest) (*domain.Transfer, error)
	// FindByID merges the persisted transfer with a live provider status
	// query; status is never read from storage.
	FindByID(ctx context.Context, clientID, connectionID, transferID uuid.UUID) (*domain.ResolvedTransfer, error)
}

// SyncService reconciles one connection's resources against the provider.
// The computed result is applied through the SyncRepository and returned.
type SyncService interface {
	Run(ctx context.Context, clientID, connectionID uuid.UUID) (*domain.SyncResult, error)
}

// KnownDestinationService is a pure read-through to the provider.
type KnownDestinationService interface {
	FindAll(ctx context.Context, clientID, connectionID uuid.UUID) ([]domain.KnownDestination, error)
}

// ProxyService forwards raw requests to providers that support it.
type ProxyService interface {
	Forward(ctx context.Context, clientID, connectionID uuid.UUID, req ProxyRequest) (*ProxyResponse, error)
}

// CredentialCipher encrypts secrets at rest (AES-256-GCM).
type CredentialCipher interface {
	Encrypt(plaintext []byte) (string, error)
	Decrypt(ciphertext string) ([]byte, error)
}

// IdempotencyStore reserves idempotence keys ahead of provider calls.
type IdempotencyStore interface {
	// Reserve atomically claims (clientID, key). Returns true if the key
	// is new, false if it was already used.
	Reserve(ctx context.Context, clientID uuid.UUID, key string, ttl time.Duration) (bool, error)
}
