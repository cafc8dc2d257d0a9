package postgres

import (
	"context"
	"errors"
	"fmt"

	"custody-broker/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AccountRepo implements ports.AccountRepository.
type AccountRepo struct {
	pool Pool
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

const accountColumns = `id, external_id, wallet_id, client_id, connection_id, provider, asset_id, label, created_at, updated_at`

func (r *AccountRepo) GetByID(ctx context.Context, clientID, id uuid.UUID) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE client_id = $1 AND id = $2`

	a := &domain.Account{}
	err := r.pool.QueryRow(ctx, query, clientID, id).Scan(
		&a.ID, &a.ExternalID, &a.WalletID, &a.ClientID, &a.ConnectionID,
		&a.Provider, &a.AssetID, &a.Label, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return a, nil
}

func (r *AccountRepo) ListByExternalIDs(ctx context.Context, clientID uuid.UUID, provider domain.Provider, externalIDs []string) ([]domain.Account, error) {
	if len(externalIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts
		WHERE client_id = $1 AND provider = $2 AND external_id = ANY($3)`

	rows, err := r.pool.Query(ctx, query, clientID, provider, externalIDs)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(
			&a.ID, &a.ExternalID, &a.WalletID, &a.ClientID, &a.ConnectionID,
			&a.Provider, &a.AssetID, &a.Label, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}
	return accounts, nil
}
