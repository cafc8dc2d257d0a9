package service

import (
	"context"
	"fmt"
	"time"

	"custody-broker/internal/core/domain"
	"custody-broker/internal/core/ports"
	"custody-broker/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type syncService struct {
	registry    ports.ConnectionRegistry
	adapters    ports.AdapterRegistry
	walletRepo  ports.WalletRepository
	accountRepo ports.AccountRepository
	addressRepo ports.AddressRepository
	kdRepo      ports.KnownDestinationRepository
	syncRepo    ports.SyncRepository
	log         zerolog.Logger
}

// NewSyncService creates the reconciliation engine.
func NewSyncService(
	registry ports.ConnectionRegistry,
	adapters ports.AdapterRegistry,
	walletRepo ports.WalletRepository,
	accountRepo ports.AccountRepository,
	addressRepo ports.AddressRepository,
	kdRepo ports.KnownDestinationRepository,
	syncRepo ports.SyncRepository,
	log zerolog.Logger,
) ports.SyncService {
	return &syncService{
		registry:    registry,
		adapters:    adapters,
		walletRepo:  walletRepo,
		accountRepo: accountRepo,
		addressRepo: addressRepo,
		kdRepo:      kdRepo,
		syncRepo:    syncRepo,
		log:         log,
	}
}

// pendingIndex maps external ids of entities CREATEd earlier in the same
// pass to their freshly minted internal ids, so child tiers can resolve
// parents that are not in storage yet.
type pendingIndex map[string]uuid.UUID

// Run reconciles all four resource tiers in dependency order and applies
// the resulting mutations through the persistence collaborator.
func (s *syncService) Run(ctx context.Context, clientID, connectionID uuid.UUID) (*domain.SyncResult, error) {
	cc, err := s.registry.FindWithCredentialsByID(ctx, clientID, connectionID)
	if err != nil {
		return nil, err
	}
	adapter, err := s.adapters.Sync(cc.Connection.Provider)
	if err != nil {
		return nil, err
	}

	result := &domain.SyncResult{}

	walletIdx, walletExternalIDs, err := s.syncWallets(ctx, cc, adapter, result)
	if err != nil {
		return nil, err
	}
	accountIdx, remoteAccounts, err := s.syncAccounts(ctx, cc, adapter, walletIdx, walletExternalIDs, result)
	if err != nil {
		return nil, err
	}
	if err := s.syncAddresses(ctx, cc, adapter, accountIdx, remoteAccounts, result); err != nil {
		return nil, err
	}
	if err := s.syncKnownDestinations(ctx, cc, adapter, result); err != nil {
		return nil, err
	}

	for _, op := range skippedOps(result) {
		s.log.Warn().
			Str("connection_id", connectionID.String()).
			Str("type", op.kind).
			Str("external_id", op.externalID).
			Str("reason", op.message).
			Msg("sync item not applied")
	}

	if err := s.syncRepo.Apply(ctx, result); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("applying sync result: %w", err))
	}

	s.log.Info().
		Str("connection_id", connectionID.String()).
		Str("provider", string(cc.Connection.Provider)).
		Int("mutations", result.Mutations()).
		Msg("sync pass applied")

	return result, nil
}

func (s *syncService) syncWallets(
	ctx context.Context,
	cc *ports.ConnectionContext,
	adapter ports.SyncAdapter,
	result *domain.SyncResult,
) (pendingIndex, []string, error) {
	remotes, err := adapter.FetchWallets(ctx, *cc)
	if err != nil {
		return nil, nil, err
	}
	remotes = dedupeLastWins(remotes, func(w ports.RemoteWallet) string { return w.ExternalID })

	externalIDs := make([]string, 0, len(remotes))
	for _, r := range remotes {
		externalIDs = append(externalIDs, r.ExternalID)
	}
	locals, err := s.walletRepo.ListByExternalIDs(ctx, cc.Connection.ClientID, cc.Connection.Provider, externalIDs)
	if err != nil {
		return nil, nil, apperror.InternalError(err)
	}
	byExternal := make(map[string]domain.Wallet, len(locals))
	for _, l := range locals {
		byExternal[l.ExternalID] = l
	}

	idx := make(pendingIndex)
	now := time.Now().UTC()
	for _, r := range remotes {
		local, exists := byExternal[r.ExternalID]
		if !exists {
			created := domain.Wallet{
				ID:           uuid.New(),
				ClientID:     cc.Connection.ClientID,
				ConnectionID: cc.Connection.ID,
				Provider:     cc.Connection.Provider,
				ExternalID:   r.ExternalID,
				Label:        r.Label,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			idx[r.ExternalID] = created.ID
			result.Wallets = append(result.Wallets, domain.SyncOperation[domain.Wallet]{
				Type:   domain.SyncOpCreate,
				Create: &created,
			})
			continue
		}
		idx[r.ExternalID] = local.ID
		if local.Label == r.Label {
			continue // no-op, nothing emitted
		}
		updated := local
		updated.Label = r.Label
		updated.UpdatedAt = now
		result.Wallets = append(result.Wallets, domain.SyncOperation[domain.Wallet]{
			Type:   domain.SyncOpUpdate,
			Update: &updated,
		})
	}
	return idx, externalIDs, nil
}

func (s *syncService) syncAccounts(
	ctx context.Context,
	cc *ports.ConnectionContext,
	adapter ports.SyncAdapter,
	walletIdx pendingIndex,
	walletExternalIDs []string,
	result *domain.SyncResult,
) (pendingIndex, []ports.RemoteAccount, error) {
	remotes, err := adapter.FetchAccounts(ctx, *cc, walletExternalIDs)
	if err != nil {
		return nil, nil, err
	}
	remotes = dedupeLastWins(remotes, func(a ports.RemoteAccount) string { return a.ExternalID })

	externalIDs := make([]string, 0, len(remotes))
	for _, r := range remotes {
		externalIDs = append(externalIDs, r.ExternalID)
	}
	locals, err := s.accountRepo.ListByExternalIDs(ctx, cc.Connection.ClientID, cc.Connection.Provider, externalIDs)
	if err != nil {
		return nil, nil, apperror.InternalError(err)
	}
	byExternal := make(map[string]domain.Account, len(locals))
	for _, l := range locals {
		byExternal[l.ExternalID] = l
	}

	idx := make(pendingIndex)
	resolved := make([]ports.RemoteAccount, 0, len(remotes))
	now := time.Now().UTC()
	for _, r := range remotes {
		walletID, ok := walletIdx[r.WalletExternalID]
		if !ok {
			result.Accounts = append(result.Accounts, domain.SyncOperation[domain.Account]{
				Type:       domain.SyncOpSkip,
				ExternalID: r.ExternalID,
				Message:    "parent wallet not found",
				Context:    map[string]string{"wallet_external_id": r.WalletExternalID},
			})
			continue
		}
		resolved = append(resolved, r)

		local, exists := byExternal[r.ExternalID]
		if !exists {
			created := domain.Account{
				ID:           uuid.New(),
				ClientID:     cc.Connection.ClientID,
				ConnectionID: cc.Connection.ID,
				Provider:     cc.Connection.Provider,
				ExternalID:   r.ExternalID,
				WalletID:     walletID,
				AssetID:      r.AssetID,
				Label:        r.Label,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			idx[r.ExternalID] = created.ID
			result.Accounts = append(result.Accounts, domain.SyncOperation[domain.Account]{
				Type:   domain.SyncOpCreate,
				Create: &created,
			})
			continue
		}
		idx[r.ExternalID] = local.ID
		if local.Label == r.Label && local.AssetID == r.AssetID {
			continue
		}
		updated := local
		updated.Label = r.Label
		updated.AssetID = r.AssetID
		updated.UpdatedAt = now
		result.Accounts = append(result.Accounts, domain.SyncOperation[domain.Account]{
			Type:   domain.SyncOpUpdate,
			Update: &updated,
		})
	}
	return idx, resolved, nil
}

func (s *syncService) syncAddresses(
	ctx context.Context,
	cc *ports.ConnectionContext,
	adapter ports.SyncAdapter,
	accountIdx pendingIndex,
	remoteAccounts []ports.RemoteAccount,
	result *domain.SyncResult,
) error {
	remotes, err := adapter.FetchAddresses(ctx, *cc, remoteAccounts)
	if err != nil {
		return err
	}
	remotes = dedupeLastWins(remotes, func(a ports.RemoteAddress) string { return a.ExternalID })

	externalIDs := make([]string, 0, len(remotes))
	for _, r := range remotes {
		externalIDs = append(externalIDs, r.ExternalID)
	}
	locals, err := s.addressRepo.ListByExternalIDs(ctx, cc.Connection.ClientID, cc.Connection.Provider, externalIDs)
	if err != nil {
		return apperror.InternalError(err)
	}
	byExternal := make(map[string]domain.Address, len(locals))
	for _, l := range locals {
		byExternal[l.ExternalID] = l
	}

	now := time.Now().UTC()
	for _, r := range remotes {
		accountID, ok := accountIdx[r.AccountExternalID]
		if !ok {
			result.Addresses = append(result.Addresses, domain.SyncOperation[domain.Address]{
				Type:       domain.SyncOpSkip,
				ExternalID: r.ExternalID,
				Message:    "parent account not found",
				Context:    map[string]string{"account_external_id": r.AccountExternalID},
			})
			continue
		}
		if r.Address == "" {
			result.Addresses = append(result.Addresses, domain.SyncOperation[domain.Address]{
				Type:       domain.SyncOpFailed,
				ExternalID: r.ExternalID,
				Message:    "remote address is empty",
			})
			continue
		}

		local, exists := byExternal[r.ExternalID]
		if !exists {
			created := domain.Address{
				ID:           uuid.New(),
				ClientID:     cc.Connection.ClientID,
				ConnectionID: cc.Connection.ID,
				Provider:     cc.Connection.Provider,
				ExternalID:   r.ExternalID,
				AccountID:    accountID,
				Address:      domain.NormalizeAddress(r.Address),
				NetworkID:    r.NetworkID,
				AssetID:      r.AssetID,
				Label:        r.Label,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			result.Addresses = append(result.Addresses, domain.SyncOperation[domain.Address]{
				Type:   domain.SyncOpCreate,
				Create: &created,
			})
			continue
		}
		if local.Label == r.Label && local.Address == domain.NormalizeAddress(r.Address) {
			continue
		}
		updated := local
		updated.Label = r.Label
		updated.Address = domain.NormalizeAddress(r.Address)
		updated.UpdatedAt = now
		result.Addresses = append(result.Addresses, domain.SyncOperation[domain.Address]{
			Type:   domain.SyncOpUpdate,
			Update: &updated,
		})
	}
	return nil
}

// syncKnownDestinations is the only tier with delete semantics: a local
// known destination absent from the provider list gets a DELETE operation.
func (s *syncService) syncKnownDestinations(
	ctx context.Context,
	cc *ports.ConnectionContext,
	adapter ports.SyncAdapter,
	result *domain.SyncResult,
) error {
	remotes, err := adapter.FetchKnownDestinations(ctx, *cc)
	if err != nil {
		return err
	}
	remotes = dedupeLastWins(remotes, func(d ports.RemoteKnownDestination) string { return d.ExternalID })

	locals, err := s.kdRepo.ListByConnection(ctx, cc.Connection.ClientID, cc.Connection.ID)
	if err != nil {
		return apperror.InternalError(err)
	}
	byExternal := make(map[string]domain.KnownDestination, len(locals))
	for _, l := range locals {
		byExternal[l.ExternalID] = l
	}

	now := time.Now().UTC()
	seen := make(map[string]bool, len(remotes))
	for _, r := range remotes {
		seen[r.ExternalID] = true

		local, exists := byExternal[r.ExternalID]
		if !exists {
			created := domain.KnownDestination{
				ID:                     uuid.New(),
				ClientID:               cc.Connection.ClientID,
				ConnectionID:           cc.Connection.ID,
				Provider:               cc.Connection.Provider,
				ExternalID:             r.ExternalID,
				Address:                domain.NormalizeAddress(r.Address),
				ExternalClassification: r.Classification,
				AssetID:                r.AssetID,
				NetworkID:              r.NetworkID,
				Label:                  r.Label,
				CreatedAt:              now,
				UpdatedAt:              now,
			}
			result.KnownDestinations = append(result.KnownDestinations, domain.SyncOperation[domain.KnownDestination]{
				Type:   domain.SyncOpCreate,
				Create: &created,
			})
			continue
		}
		if local.Address == domain.NormalizeAddress(r.Address) &&
			local.ExternalClassification == r.Classification &&
			local.Label == r.Label {
			continue
		}
		updated := local
		updated.Address = domain.NormalizeAddress(r.Address)
		updated.ExternalClassification = r.Classification
		updated.Label = r.Label
		updated.UpdatedAt = now
		result.KnownDestinations = append(result.KnownDestinations, domain.SyncOperation[domain.KnownDestination]{
			Type:   domain.SyncOpUpdate,
			Update: &updated,
		})
	}
	for _, l := range locals {
		if !seen[l.ExternalID] {
			result.KnownDestinations = append(result.KnownDestinations, domain.SyncOperation[domain.KnownDestination]{
				Type:     domain.SyncOpDelete,
				EntityID: l.ID,
			})
		}
	}
	return nil
}

// dedupeLastWins collapses duplicate external ids keeping the later
// occurrence, preserving first-seen order.
func dedupeLastWins[T any](items []T, key func(T) string) []T {
	pos := make(map[string]int, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if i, seen := pos[k]; seen {
			out[i] = item
			continue
		}
		pos[k] = len(out)
		out = append(out, item)
	}
	return out
}

type diagnosticOp struct {
	kind       string
	externalID string
	message    string
}

func skippedOps(result *domain.SyncResult) []diagnosticOp {
	var out []diagnosticOp
	out = append(out, diagnostics("wallet", result.Wallets)...)
	out = append(out, diagnostics("account", result.Accounts)...)
	out = append(out, diagnostics("address", result.Addresses)...)
	out = append(out, diagnostics("known_destination", result.KnownDestinations)...)
	return out
}

func diagnostics[E any](kind string, ops []domain.SyncOperation[E]) []diagnosticOp {
	var out []diagnosticOp
	for _, op := range ops {
		if op.Type == domain.SyncOpSkip || op.Type == domain.SyncOpFailed {
			out = append(out, diagnosticOp{kind: kind, externalID: op.ExternalID, message: op.Message})
		}
	}
	return out
}
