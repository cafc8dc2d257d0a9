package postgres

import (
	"context"
	"fmt"

	"custody-broker/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// SyncRepo implements ports.SyncRepository. A whole reconciliation pass is
// applied in a single database transaction: either every proposed mutation
// lands or none does.
type SyncRepo struct {
	pool Pool
}

// NewSyncRepo creates a new SyncRepo.
func NewSyncRepo(pool Pool) *SyncRepo {
	return &SyncRepo{pool: pool}
}

// Apply executes the CREATE, UPDATE and DELETE operations of a sync result
// atomically. SKIP and FAILED operations are diagnostics and are not
// persisted.
func (r *SyncRepo) Apply(ctx context.Context, result *domain.SyncResult) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin sync transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := r.applyWallets(ctx, tx, result.Wallets); err != nil {
		return err
	}
	if err := r.applyAccounts(ctx, tx, result.Accounts); err != nil {
		return err
	}
	if err := r.applyAddresses(ctx, tx, result.Addresses); err != nil {
		return err
	}
	if err := r.applyKnownDestinations(ctx, tx, result.KnownDestinations); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit sync transaction: %w", err)
	}
	return nil
}

func (r *SyncRepo) applyWallets(ctx context.Context, tx pgx.Tx, ops []domain.SyncOperation[domain.Wallet]) error {
	for _, op := range ops {
		switch op.Type {
		case domain.SyncOpCreate:
			w := op.Create
			_, err := tx.Exec(ctx,
				`INSERT INTO wallets (id, external_id, client_id, connection_id, provider, label, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				w.ID, w.ExternalID, w.ClientID, w.ConnectionID, w.Provider, w.Label, w.CreatedAt, w.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("insert wallet %s: %w", w.ExternalID, err)
			}
		case domain.SyncOpUpdate:
			w := op.Update
			_, err := tx.Exec(ctx,
				`UPDATE wallets SET label = $1, updated_at = $2 WHERE id = $3`,
				w.Label, w.UpdatedAt, w.ID,
			)
			if err != nil {
				return fmt.Errorf("update wallet %s: %w", w.ID, err)
			}
		}
	}
	return nil
}

func (r *SyncRepo) applyAccounts(ctx context.Context, tx pgx.Tx, ops []domain.SyncOperation[domain.Account]) error {
	for _, op := range ops {
		switch op.Type {
		case domain.SyncOpCreate:
			a := op.Create
			_, err := tx.Exec(ctx,
				`INSERT INTO accounts (id, external_id, wallet_id, client_id, connection_id, provider, asset_id, label, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				a.ID, a.ExternalID, a.WalletID, a.ClientID, a.ConnectionID, a.Provider, a.AssetID, a.Label, a.CreatedAt, a.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("insert account %s: %w", a.ExternalID, err)
			}
		case domain.SyncOpUpdate:
			a := op.Update
			_, err := tx.Exec(ctx,
				`UPDATE accounts SET asset_id = $1, label = $2, updated_at = $3 WHERE id = $4`,
				a.AssetID, a.Label, a.UpdatedAt, a.ID,
			)
			if err != nil {
				return fmt.Errorf("update account %s: %w", a.ID, err)
			}
		}
	}
	return nil
}

func (r *SyncRepo) applyAddresses(ctx context.Context, tx pgx.Tx, ops []domain.SyncOperation[domain.Address]) error {
	for _, op := range ops {
		switch op.Type {
		case domain.SyncOpCreate:
			a := op.Create
			_, err := tx.Exec(ctx,
				`INSERT INTO addresses (id, external_id, account_id, client_id, connection_id, provider, address, network_id, asset_id, label, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
				a.ID, a.ExternalID, a.AccountID, a.ClientID, a.ConnectionID, a.Provider,
				a.Address, a.NetworkID, a.AssetID, a.Label, a.CreatedAt, a.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("insert address %s: %w", a.ExternalID, err)
			}
		case domain.SyncOpUpdate:
			a := op.Update
			_, err := tx.Exec(ctx,
				`UPDATE addresses SET address = $1, network_id = $2, asset_id = $3, label = $4, updated_at = $5 WHERE id = $6`,
				a.Address, a.NetworkID, a.AssetID, a.Label, a.UpdatedAt, a.ID,
			)
			if err != nil {
				return fmt.Errorf("update address %s: %w", a.ID, err)
			}
		}
	}
	return nil
}

func (r *SyncRepo) applyKnownDestinations(ctx context.Context, tx pgx.Tx, ops []domain.SyncOperation[domain.KnownDestination]) error {
	for _, op := range ops {
		switch op.Type {
		case domain.SyncOpCreate:
			d := op.Create
			_, err := tx.Exec(ctx,
				`INSERT INTO known_destinations (id, external_id, client_id, connection_id, provider, address, external_classification, asset_id, network_id, label, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
				d.ID, d.ExternalID, d.ClientID, d.ConnectionID, d.Provider, d.Address,
				d.ExternalClassification, d.AssetID, d.NetworkID, d.Label, d.CreatedAt, d.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("insert known destination %s: %w", d.ExternalID, err)
			}
		case domain.SyncOpUpdate:
			d := op.Update
			_, err := tx.Exec(ctx,
				`UPDATE known_destinations SET address = $1, external_classification = $2, asset_id = $3, network_id = $4, label = $5, updated_at = $6 WHERE id = $7`,
				d.Address, d.ExternalClassification, d.AssetID, d.NetworkID, d.Label, d.UpdatedAt, d.ID,
			)
			if err != nil {
				return fmt.Errorf("update known destination %s: %w", d.ID, err)
			}
		case domain.SyncOpDelete:
			_, err := tx.Exec(ctx,
				`DELETE FROM known_destinations WHERE id = $1`, op.EntityID,
			)
			if err != nil {
				return fmt.Errorf("delete known destination %s: %w", op.EntityID, err)
			}
		}
	}
	return nil
}
