package ports

import (
	"context"

	"custody-broker/internal/core/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=repositories.go -destination=mocks/repositories_mock.go -package=mocks

// ConnectionRepository defines persistence operations for connections.
type ConnectionRepository interface {
	Create(ctx context.Context, conn *domain.Connection) error
	GetByID(ctx context.Context, clientID, id uuid.UUID) (*domain.Connection, error)
	Update(ctx context.Context, conn *domain.Connection) error
	List(ctx context.Context, clientID uuid.UUID) ([]domain.Connection, error)
}

// WalletRepository defines persistence operations for synced wallets.
type WalletRepository interface {
	GetByID(ctx context.Context, clientID, id uuid.UUID) (*domain.Wallet, error)
	// ListByExternalIDs pre-filters local wallets by the candidate external
	// ids of one reconciliation pass.
	ListByExternalIDs(ctx context.Context, clientID uuid.UUID, provider domain.Provider, externalIDs []string) ([]domain.Wallet, error)
}

// AccountRepository defines persistence operations for synced accounts.
type AccountRepository interface {
	GetByID(ctx context.Context, clientID, id uuid.UUID) (*domain.Account, error)
	ListByExternalIDs(ctx context.Context, clientID uuid.UUID, provider domain.Provider, externalIDs []string) ([]domain.Account, error)
}

// AddressRepository defines persistence operations for synced addresses.
type AddressRepository interface {
	GetByID(ctx context.Context, clientID, id uuid.UUID) (*domain.Address, error)
	ListByExternalIDs(ctx context.Context, clientID uuid.UUID, provider domain.Provider, externalIDs []string) ([]domain.Address, error)
}

// KnownDestinationRepository defines persistence operations for known
// destinations. The synchronization engine is their only writer.
type KnownDestinationRepository interface {
	ListByConnection(ctx context.Context, clientID, connectionID uuid.UUID) ([]domain.KnownDestination, error)
}

// TransferRepository defines persistence for transfers and their
// write-ahead intents.
type TransferRepository interface {
	Create(ctx context.Context, transfer *domain.Transfer) error
	GetByID(ctx context.Context, clientID, id uuid.UUID) (*domain.Transfer, error)
	GetByIdempotenceKey(ctx context.Context, clientID uuid.UUID, key string) (*domain.Transfer, error)
	// CreateIntent inserts the write-ahead record. A duplicate
	// (client_id, idempotence_key) pair returns an idempotence conflict.
	CreateIntent(ctx context.Context, intent *domain.TransferIntent) error
	CompleteIntent(ctx context.Context, intentID uuid.UUID, externalID string) error
}

// SyncRepository is the persistence collaborator that applies a
// reconciliation result: CREATE/UPDATE/DELETE are executed atomically,
// SKIP/FAILED are ignored except for logging.
type SyncRepository interface {
	Apply(ctx context.Context, result *domain.SyncResult) error
}
