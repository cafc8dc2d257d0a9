package postgres

import (
	"context"
	"errors"
	"fmt"

	"custody-broker/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AddressRepo implements ports.AddressRepository.
type AddressRepo struct {
	pool Pool
}

// NewAddressRepo creates a new AddressRepo.
func NewAddressRepo(pool Pool) *AddressRepo {
	return &AddressRepo{pool: pool}
}

const addressColumns = `id, external_id, account_id, client_id, connection_id, provider, address, network_id, asset_id, label, created_at, updated_at`

func (r *AddressRepo) GetByID(ctx context.Context, clientID, id uuid.UUID) (*domain.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE client_id = $1 AND id = $2`

	a := &domain.Address{}
	err := r.pool.QueryRow(ctx, query, clientID, id).Scan(
		&a.ID, &a.ExternalID, &a.AccountID, &a.ClientID, &a.ConnectionID,
		&a.Provider, &a.Address, &a.NetworkID, &a.AssetID, &a.Label,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan address: %w", err)
	}
	return a, nil
}

func (r *AddressRepo) ListByExternalIDs(ctx context.Context, clientID uuid.UUID, provider domain.Provider, externalIDs []string) ([]domain.Address, error) {
	if len(externalIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + addressColumns + ` FROM addresses
		WHERE client_id = $1 AND provider = $2 AND external_id = ANY($3)`

	rows, err := r.pool.Query(ctx, query, clientID, provider, externalIDs)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	var addresses []domain.Address
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(
			&a.ID, &a.ExternalID, &a.AccountID, &a.ClientID, &a.ConnectionID,
			&a.Provider, &a.Address, &a.NetworkID, &a.AssetID, &a.Label,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan address row: %w", err)
		}
		addresses = append(addresses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate address rows: %w", err)
	}
	return addresses, nil
}
