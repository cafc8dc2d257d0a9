package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"custody-broker/internal/core/domain"
	"custody-broker/internal/core/ports"
	"custody-broker/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// idempotencyTTL bounds the redis reservation; the database unique
// constraint backstops keys that outlive it.
const idempotencyTTL = 24 * time.Hour

type transferService struct {
	registry     ports.ConnectionRegistry
	adapters     ports.AdapterRegistry
	walletRepo   ports.WalletRepository
	accountRepo  ports.AccountRepository
	addressRepo  ports.AddressRepository
	transferRepo ports.TransferRepository
	idempStore   ports.IdempotencyStore
	log          zerolog.Logger
}

// NewTransferService creates the transfer service.
func NewTransferService(
	registry ports.ConnectionRegistry,
	adapters ports.AdapterRegistry,
	walletRepo ports.WalletRepository,
	accountRepo ports.AccountRepository,
	addressRepo ports.AddressRepository,
	transferRepo ports.TransferRepository,
	idempStore ports.IdempotencyStore,
	log zerolog.Logger,
) ports.TransferService {
	return &transferService{
		registry:     registry,
		adapters:     adapters,
		walletRepo:   walletRepo,
		accountRepo:  accountRepo,
		addressRepo:  addressRepo,
		transferRepo: transferRepo,
		idempStore:   idempStore,
		log:          log,
	}
}

func (s *transferService) Send(ctx context.Context, clientID, connectionID uuid.UUID, req ports.SendTransferRequest) (*domain.Transfer, error) {
	if err := validateSendRequest(req); err != nil {
		return nil, err
	}

	cc, err := s.registry.FindWithCredentialsByID(ctx, clientID, connectionID)
	if err != nil {
		return nil, err
	}
	adapter, err := s.adapters.Transfer(cc.Connection.Provider)
	if err != nil {
		return nil, err
	}

	source, err := s.resolveParty(ctx, cc, req.Source, true)
	if err != nil {
		return nil, err
	}
	destination, err := s.resolveParty(ctx, cc, req.Destination, false)
	if err != nil {
		return nil, err
	}

	// Layer 1: redis reservation.
	fresh, err := s.idempStore.Reserve(ctx, clientID, req.IdempotenceKey, idempotencyTTL)
	if err != nil {
		s.log.Warn().Err(err).Str("key", req.IdempotenceKey).
			Msg("redis idempotency check failed, falling through to DB")
	} else if !fresh {
		return nil, apperror.ErrIdempotenceConflict(req.IdempotenceKey)
	}

	// Layer 2: persisted transfers.
	existing, err := s.transferRepo.GetByIdempotenceKey(ctx, clientID, req.IdempotenceKey)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("db idempotency check: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrIdempotenceConflict(req.IdempotenceKey)
	}

	// Write-ahead intent: a crash after the provider accepts but before the
	// transfer row lands leaves a SUBMITTING intent to reconcile, and the
	// unique (client_id, idempotence_key) constraint backstops races.
	intent := &domain.TransferIntent{
		ID:             uuid.New(),
		ClientID:       clientID,
		ConnectionID:   connectionID,
		IdempotenceKey: req.IdempotenceKey,
		State:          domain.IntentStateSubmitting,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.transferRepo.CreateIntent(ctx, intent); err != nil {
		return nil, err
	}

	remote, err := adapter.CreateTransfer(ctx, *cc, ports.CreateTransferParams{
		IdempotenceKey:      req.IdempotenceKey,
		Source:              source,
		Destination:         destination,
		AssetID:             req.AssetID,
		NetworkID:           req.NetworkID,
		Amount:              req.GrossAmount,
		DeductFeeFromAmount: req.FeeAttribution.DeductFeeFromAmount(),
		Memo:                req.Memo,
	})
	if err != nil {
		return nil, err
	}

	transfer := &domain.Transfer{
		ID:             uuid.New(),
		ClientID:       clientID,
		ConnectionID:   connectionID,
		Provider:       cc.Connection.Provider,
		ExternalID:     remote.ExternalID,
		IdempotenceKey: req.IdempotenceKey,
		Source:         req.Source,
		Destination:    req.Destination,
		AssetID:        req.AssetID,
		NetworkID:      req.NetworkID,
		GrossAmount:    req.GrossAmount,
		FeeAttribution: normalizedAttribution(req.FeeAttribution),
		Memo:           req.Memo,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.transferRepo.Create(ctx, transfer); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("persisting transfer: %w", err))
	}
	if err := s.transferRepo.CompleteIntent(ctx, intent.ID, remote.ExternalID); err != nil {
		// The transfer row exists; a stale SUBMITTING intent is noise for
		// the reconciler, not data loss.
		s.log.Warn().Err(err).Str("intent_id", intent.ID.String()).
			Msg("completing transfer intent failed")
	}

	s.log.Info().
		Str("transfer_id", transfer.ID.String()).
		Str("provider", string(transfer.Provider)).
		Str("external_id", transfer.ExternalID).
		Msg("transfer submitted")

	return transfer, nil
}

func (s *transferService) FindByID(ctx context.Context, clientID, connectionID, transferID uuid.UUID) (*domain.ResolvedTransfer, error) {
	transfer, err := s.transferRepo.GetByID(ctx, clientID, transferID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if transfer == nil || transfer.ConnectionID != connectionID {
		return nil, apperror.ErrTransferNotFound(transferID.String())
	}

	cc, err := s.registry.FindWithCredentialsByID(ctx, clientID, connectionID)
	if err != nil {
		return nil, err
	}
	adapter, err := s.adapters.Transfer(cc.Connection.Provider)
	if err != nil {
		return nil, err
	}

	// Status and fees are always re-derived from the provider.
	state, err := adapter.GetTransfer(ctx, *cc, transfer.ExternalID)
	if err != nil {
		return nil, err
	}
	return &domain.ResolvedTransfer{
		Transfer: *transfer,
		Status:   state.Status,
		Fees:     state.Fees,
	}, nil
}

// resolveParty turns a request party into provider-native terms. Sources
// must reference an internal entity; destinations may also be raw addresses.
func (s *transferService) resolveParty(ctx context.Context, cc *ports.ConnectionContext, party domain.TransferParty, isSource bool) (ports.ProviderParty, error) {
	clientID := cc.Connection.ClientID

	if party.IsRawAddress() {
		if isSource {
			return ports.ProviderParty{}, apperror.ErrInvalidTransferParty("source cannot be a raw address")
		}
		return ports.ProviderParty{Address: domain.NormalizeAddress(party.Address)}, nil
	}

	switch party.Type {
	case domain.PartyTypeWallet:
		wallet, err := s.walletRepo.GetByID(ctx, clientID, party.ID)
		if err != nil {
			return ports.ProviderParty{}, apperror.InternalError(err)
		}
		if wallet == nil || wallet.ConnectionID != cc.Connection.ID {
			return ports.ProviderParty{}, apperror.ErrInvalidTransferParty(
				fmt.Sprintf("wallet %s not found on this connection", party.ID))
		}
		return ports.ProviderParty{Kind: party.Type, ExternalID: wallet.ExternalID}, nil

	case domain.PartyTypeAccount:
		account, err := s.accountRepo.GetByID(ctx, clientID, party.ID)
		if err != nil {
			return ports.ProviderParty{}, apperror.InternalError(err)
		}
		if account == nil || account.ConnectionID != cc.Connection.ID {
			return ports.ProviderParty{}, apperror.ErrInvalidTransferParty(
				fmt.Sprintf("account %s not found on this connection", party.ID))
		}
		return ports.ProviderParty{Kind: party.Type, ExternalID: account.ExternalID}, nil

	case domain.PartyTypeAddress:
		address, err := s.addressRepo.GetByID(ctx, clientID, party.ID)
		if err != nil {
			return ports.ProviderParty{}, apperror.InternalError(err)
		}
		if address == nil || address.ConnectionID != cc.Connection.ID {
			return ports.ProviderParty{}, apperror.ErrInvalidTransferParty(
				fmt.Sprintf("address %s not found on this connection", party.ID))
		}
		if isSource {
			return ports.ProviderParty{}, apperror.ErrInvalidTransferParty("source cannot be an address")
		}
		return ports.ProviderParty{Kind: party.Type, ExternalID: address.ExternalID, Address: address.Address}, nil
	}

	return ports.ProviderParty{}, apperror.ErrInvalidTransferParty(
		fmt.Sprintf("unknown party type %q", party.Type))
}

func validateSendRequest(req ports.SendTransferRequest) error {
	if req.IdempotenceKey == "" {
		return apperror.Validation("idempotence_key is required")
	}
	if req.AssetID == "" {
		return apperror.Validation("asset_id is required")
	}
	amount, err := strconv.ParseFloat(req.GrossAmount, 64)
	if err != nil || amount <= 0 {
		return apperror.ErrInvalidAmount(req.GrossAmount)
	}
	switch req.FeeAttribution {
	case "", domain.FeeOnTop, domain.FeeDeduct:
	default:
		return apperror.Validation(fmt.Sprintf("unknown network_fee_attribution %q", req.FeeAttribution))
	}
	return nil
}

// normalizedAttribution makes the ON_TOP default explicit in storage.
func normalizedAttribution(a domain.NetworkFeeAttribution) domain.NetworkFeeAttribution {
	if a == "" {
		return domain.FeeOnTop
	}
	return a
}
