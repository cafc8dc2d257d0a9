package postgres

import (
	"context"
	"errors"
	"fmt"

	"custody-broker/internal/core/domain"
	"custody-broker/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// TransferRepo implements ports.TransferRepository.
type TransferRepo struct {
	pool Pool
}

// NewTransferRepo creates a new TransferRepo.
func NewTransferRepo(pool Pool) *TransferRepo {
	return &TransferRepo{pool: pool}
}

const transferColumns = `id, client_id, connection_id, provider, external_id, idempotence_key,
	source_type, source_id, source_address, destination_type, destination_id, destination_address,
	asset_id, network_id, gross_amount, network_fee_attribution, memo, created_at`

// Create inserts a transfer. Source and destination parties are stored
// flattened into typed columns.
func (r *TransferRepo) Create(ctx context.Context, t *domain.Transfer) error {
	query := `INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := r.pool.Exec(ctx, query,
		t.ID, t.ClientID, t.ConnectionID, t.Provider, t.ExternalID, t.IdempotenceKey,
		t.Source.Type, nullableUUID(t.Source.ID), t.Source.Address,
		t.Destination.Type, nullableUUID(t.Destination.ID), t.Destination.Address,
		t.AssetID, t.NetworkID, t.GrossAmount, t.FeeAttribution, t.Memo, t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.ErrIdempotenceConflict(t.IdempotenceKey)
		}
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID fetches a transfer scoped to a client. Returns nil, nil when no
// row matches.
func (r *TransferRepo) GetByID(ctx context.Context, clientID, id uuid.UUID) (*domain.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE client_id = $1 AND id = $2`
	return r.scanTransfer(r.pool.QueryRow(ctx, query, clientID, id))
}

// GetByIdempotenceKey fetches the transfer created under a key, if any.
func (r *TransferRepo) GetByIdempotenceKey(ctx context.Context, clientID uuid.UUID, key string) (*domain.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE client_id = $1 AND idempotence_key = $2`
	return r.scanTransfer(r.pool.QueryRow(ctx, query, clientID, key))
}

// CreateIntent inserts the write-ahead record. The unique
// (client_id, idempotence_key) index turns concurrent submissions with the
// same key into an idempotence conflict.
func (r *TransferRepo) CreateIntent(ctx context.Context, intent *domain.TransferIntent) error {
	query := `INSERT INTO transfer_intents (id, client_id, connection_id, idempotence_key, state, external_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		intent.ID, intent.ClientID, intent.ConnectionID, intent.IdempotenceKey,
		intent.State, intent.ExternalID, intent.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.ErrIdempotenceConflict(intent.IdempotenceKey)
		}
		return fmt.Errorf("insert transfer intent: %w", err)
	}
	return nil
}

// CompleteIntent marks an intent completed and records the provider id.
func (r *TransferRepo) CompleteIntent(ctx context.Context, intentID uuid.UUID, externalID string) error {
	query := `UPDATE transfer_intents SET state = $1, external_id = $2 WHERE id = $3`

	tag, err := r.pool.Exec(ctx, query, domain.IntentStateCompleted, externalID, intentID)
	if err != nil {
		return fmt.Errorf("complete transfer intent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transfer intent not found: %s", intentID)
	}
	return nil
}

func (r *TransferRepo) scanTransfer(row pgx.Row) (*domain.Transfer, error) {
	t := &domain.Transfer{}
	var sourceID, destinationID *uuid.UUID
	err := row.Scan(
		&t.ID, &t.ClientID, &t.ConnectionID, &t.Provider, &t.ExternalID, &t.IdempotenceKey,
		&t.Source.Type, &sourceID, &t.Source.Address,
		&t.Destination.Type, &destinationID, &t.Destination.Address,
		&t.AssetID, &t.NetworkID, &t.GrossAmount, &t.FeeAttribution, &t.Memo, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transfer: %w", err)
	}
	if sourceID != nil {
		t.Source.ID = *sourceID
	}
	if destinationID != nil {
		t.Destination.ID = *destinationID
	}
	return t, nil
}

// nullableUUID maps the zero uuid (raw-address parties) to NULL.
func nullableUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
