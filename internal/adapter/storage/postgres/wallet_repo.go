package postgres

import (
	"context"
	"errors"
	"fmt"

	"custody-broker/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

const walletColumns = `id, external_id, client_id, connection_id, provider, label, created_at, updated_at`

// GetByID fetches a wallet scoped to a client. Returns nil, nil when no
// row matches.
func (r *WalletRepo) GetByID(ctx context.Context, clientID, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE client_id = $1 AND id = $2`

	w := &domain.Wallet{}
	err := r.pool.QueryRow(ctx, query, clientID, id).Scan(
		&w.ID, &w.ExternalID, &w.ClientID, &w.ConnectionID,
		&w.Provider, &w.Label, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan wallet: %w", err)
	}
	return w, nil
}

// ListByExternalIDs fetches the wallets whose external ids appear in the
// given candidate set.
func (r *WalletRepo) ListByExternalIDs(ctx context.Context, clientID uuid.UUID, provider domain.Provider, externalIDs []string) ([]domain.Wallet, error) {
	if len(externalIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + walletColumns + ` FROM wallets
		WHERE client_id = $1 AND provider = $2 AND external_id = ANY($3)`

	rows, err := r.pool.Query(ctx, query, clientID, provider, externalIDs)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []domain.Wallet
	for rows.Next() {
		var w domain.Wallet
		if err := rows.Scan(
			&w.ID, &w.ExternalID, &w.ClientID, &w.ConnectionID,
			&w.Provider, &w.Label, &w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan wallet row: %w", err)
		}
		wallets = append(wallets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallet rows: %w", err)
	}
	return wallets, nil
}
