package postgres

import (
	"context"
	"fmt"

	"custody-broker/internal/core/domain"

	"github.com/google/uuid"
)

// KnownDestinationRepo implements ports.KnownDestinationRepository. Rows
// are written by sync passes only, so the read surface is deliberately
// narrow.
type KnownDestinationRepo struct {
	pool Pool
}

// NewKnownDestinationRepo creates a new KnownDestinationRepo.
func NewKnownDestinationRepo(pool Pool) *KnownDestinationRepo {
	return &KnownDestinationRepo{pool: pool}
}

const knownDestinationColumns = `id, external_id, client_id, connection_id, provider, address,
	external_classification, asset_id, network_id, label, created_at, updated_at`

// ListByConnection fetches all known destinations synced for a connection.
func (r *KnownDestinationRepo) ListByConnection(ctx context.Context, clientID, connectionID uuid.UUID) ([]domain.KnownDestination, error) {
	query := `SELECT ` + knownDestinationColumns + ` FROM known_destinations
		WHERE client_id = $1 AND connection_id = $2 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, clientID, connectionID)
	if err != nil {
		return nil, fmt.Errorf("list known destinations: %w", err)
	}
	defer rows.Close()

	var dests []domain.KnownDestination
	for rows.Next() {
		var d domain.KnownDestination
		if err := rows.Scan(
			&d.ID, &d.ExternalID, &d.ClientID, &d.ConnectionID, &d.Provider,
			&d.Address, &d.ExternalClassification, &d.AssetID, &d.NetworkID,
			&d.Label, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan known destination row: %w", err)
		}
		dests = append(dests, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate known destination rows: %w", err)
	}
	return dests, nil
}
