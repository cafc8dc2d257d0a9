package postgres

import (
	"context"
	"errors"
	"fmt"

	"custody-broker/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ConnectionRepo implements ports.ConnectionRepository.
type ConnectionRepo struct {
	pool Pool
}

// NewConnectionRepo creates a new ConnectionRepo.
func NewConnectionRepo(pool Pool) *ConnectionRepo {
	return &ConnectionRepo{pool: pool}
}

const connectionColumns = `id, client_id, provider, status, url, label,
	public_key, encrypted_box_key, sealed_credentials, created_at, updated_at, revoked_at`

// Create inserts a new connection.
func (r *ConnectionRepo) Create(ctx context.Context, c *domain.Connection) error {
	query := `INSERT INTO connections (` + connectionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.ClientID, c.Provider, c.Status, c.URL, c.Label,
		c.PublicKey, c.EncryptedBoxKey, c.SealedCredentials,
		c.CreatedAt, c.UpdatedAt, c.RevokedAt,
	)
	if err != nil {
		return fmt.Errorf("insert connection: %w", err)
	}
	return nil
}

// GetByID fetches a connection scoped to a client. Returns nil, nil when
// no row matches.
func (r *ConnectionRepo) GetByID(ctx context.Context, clientID, id uuid.UUID) (*domain.Connection, error) {
	query := `SELECT ` + connectionColumns + ` FROM connections WHERE client_id = $1 AND id = $2`
	return r.scanConnection(r.pool.QueryRow(ctx, query, clientID, id))
}

// Update persists all mutable connection fields.
func (r *ConnectionRepo) Update(ctx context.Context, c *domain.Connection) error {
	query := `UPDATE connections SET status = $1, url = $2, label = $3,
		encrypted_box_key = $4, sealed_credentials = $5, updated_at = $6, revoked_at = $7
		WHERE client_id = $8 AND id = $9`

	tag, err := r.pool.Exec(ctx, query,
		c.Status, c.URL, c.Label, c.EncryptedBoxKey, c.SealedCredentials,
		c.UpdatedAt, c.RevokedAt, c.ClientID, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update connection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("connection not found: %s", c.ID)
	}
	return nil
}

// List fetches all connections of a client, newest first.
func (r *ConnectionRepo) List(ctx context.Context, clientID uuid.UUID) ([]domain.Connection, error) {
	query := `SELECT ` + connectionColumns + ` FROM connections
		WHERE client_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	defer rows.Close()

	var conns []domain.Connection
	for rows.Next() {
		var c domain.Connection
		if err := rows.Scan(
			&c.ID, &c.ClientID, &c.Provider, &c.Status, &c.URL, &c.Label,
			&c.PublicKey, &c.EncryptedBoxKey, &c.SealedCredentials,
			&c.CreatedAt, &c.UpdatedAt, &c.RevokedAt,
		); err != nil {
			return nil, fmt.Errorf("scan connection row: %w", err)
		}
		conns = append(conns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate connection rows: %w", err)
	}
	return conns, nil
}

func (r *ConnectionRepo) scanConnection(row pgx.Row) (*domain.Connection, error) {
	c := &domain.Connection{}
	err := row.Scan(
		&c.ID, &c.ClientID, &c.Provider, &c.Status, &c.URL, &c.Label,
		&c.PublicKey, &c.EncryptedBoxKey, &c.SealedCredentials,
		&c.CreatedAt, &c.UpdatedAt, &c.RevokedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan connection: %w", err)
	}
	return c, nil
}
