package service

import (
	"context"
	"errors"
	"testing"

	"custody-broker/internal/core/domain"
	"custody-broker/internal/core/ports"
	"custody-broker/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type syncFixture struct {
	svc         ports.SyncService
	registry    *mocks.MockConnectionRegistry
	adapters    *mocks.MockAdapterRegistry
	adapter     *mocks.MockSyncAdapter
	walletRepo  *mocks.MockWalletRepository
	accountRepo *mocks.MockAccountRepository
	addressRepo *mocks.MockAddressRepository
	kdRepo      *mocks.MockKnownDestinationRepository
	syncRepo    *mocks.MockSyncRepository
	cc          *ports.ConnectionContext
}

func newSyncFixture(t *testing.T, ctrl *gomock.Controller) *syncFixture {
	t.Helper()
	f := &syncFixture{
		registry:    mocks.NewMockConnectionRegistry(ctrl),
		adapters:    mocks.NewMockAdapterRegistry(ctrl),
		adapter:     mocks.NewMockSyncAdapter(ctrl),
		walletRepo:  mocks.NewMockWalletRepository(ctrl),
		accountRepo: mocks.NewMockAccountRepository(ctrl),
		addressRepo: mocks.NewMockAddressRepository(ctrl),
		kdRepo:      mocks.NewMockKnownDestinationRepository(ctrl),
		syncRepo:    mocks.NewMockSyncRepository(ctrl),
	}
	f.cc = &ports.ConnectionContext{
		Connection: domain.Connection{
			ID:       uuid.New(),
			ClientID: uuid.New(),
			Provider: domain.ProviderAnchorage,
			Status:   domain.ConnectionStatusActive,
			URL:      "https://anchorage.example.com",
		},
	}
	f.svc = NewSyncService(
		f.registry, f.adapters,
		f.walletRepo, f.accountRepo, f.addressRepo, f.kdRepo, f.syncRepo,
		zerolog.Nop(),
	)
	return f
}

func (f *syncFixture) expectResolution() {
	f.registry.EXPECT().
		FindWithCredentialsByID(gomock.Any(), f.cc.Connection.ClientID, f.cc.Connection.ID).
		Return(f.cc, nil)
	f.adapters.EXPECT().Sync(domain.ProviderAnchorage).Return(f.adapter, nil)
}

func opTypes[E any](ops []domain.SyncOperation[E]) []domain.SyncOpType {
	out := make([]domain.SyncOpType, 0, len(ops))
	for _, op := range ops {
		out = append(out, op.Type)
	}
	return out
}

func TestSyncService_Run_FullPass(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newSyncFixture(t, ctrl)
	f.expectResolution()

	clientID := f.cc.Connection.ClientID
	connID := f.cc.Connection.ID

	existingWallet := domain.Wallet{
		ID: uuid.New(), ClientID: clientID, ConnectionID: connID,
		Provider: domain.ProviderAnchorage, ExternalID: "v-2", Label: "old label",
	}
	unchangedWallet := domain.Wallet{
		ID: uuid.New(), ClientID: clientID, ConnectionID: connID,
		Provider: domain.ProviderAnchorage, ExternalID: "v-3", Label: "steady",
	}

	f.adapter.EXPECT().FetchWallets(gomock.Any(), gomock.Any()).Return([]ports.RemoteWallet{
		{ExternalID: "v-1", Label: "fresh"},
		{ExternalID: "v-2", Label: "new label"},
		{ExternalID: "v-3", Label: "steady"},
	}, nil)
	f.walletRepo.EXPECT().
		ListByExternalIDs(gomock.Any(), clientID, domain.ProviderAnchorage, []string{"v-1", "v-2", "v-3"}).
		Return([]domain.Wallet{existingWallet, unchangedWallet}, nil)

	// One account under the freshly created wallet, one orphan.
	f.adapter.EXPECT().
		FetchAccounts(gomock.Any(), gomock.Any(), []string{"v-1", "v-2", "v-3"}).
		Return([]ports.RemoteAccount{
			{ExternalID: "w-1", WalletExternalID: "v-1", AssetID: "BTC"},
			{ExternalID: "w-orphan", WalletExternalID: "v-unknown", AssetID: "ETH"},
		}, nil)
	f.accountRepo.EXPECT().
		ListByExternalIDs(gomock.Any(), clientID, domain.ProviderAnchorage, []string{"w-1", "w-orphan"}).
		Return(nil, nil)

	// Addresses only fetched for resolvable accounts; one valid, one broken.
	f.adapter.EXPECT().
		FetchAddresses(gomock.Any(), gomock.Any(), []ports.RemoteAccount{
			{ExternalID: "w-1", WalletExternalID: "v-1", AssetID: "BTC"},
		}).
		Return([]ports.RemoteAddress{
			{ExternalID: "a-1", AccountExternalID: "w-1", Address: "bc1qnew", AssetID: "BTC"},
			{ExternalID: "a-2", AccountExternalID: "w-1", Address: "", AssetID: "BTC"},
		}, nil)
	f.addressRepo.EXPECT().
		ListByExternalIDs(gomock.Any(), clientID, domain.ProviderAnchorage, []string{"a-1", "a-2"}).
		Return(nil, nil)

	// Known destinations: one new remote, one local gone from the provider.
	staleLocal := domain.KnownDestination{
		ID: uuid.New(), ClientID: clientID, ConnectionID: connID,
		Provider: domain.ProviderAnchorage, ExternalID: "td-stale", Address: "0xstale",
	}
	f.adapter.EXPECT().FetchKnownDestinations(gomock.Any(), gomock.Any()).
		Return([]ports.RemoteKnownDestination{
			{ExternalID: "td-1", Address: "0xNEW", Classification: "EXCHANGE", NetworkID: "ethereum"},
		}, nil)
	f.kdRepo.EXPECT().ListByConnection(gomock.Any(), clientID, connID).
		Return([]domain.KnownDestination{staleLocal}, nil)

	var applied *domain.SyncResult
	f.syncRepo.EXPECT().Apply(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, result *domain.SyncResult) error {
			applied = result
			return nil
		})

	result, err := f.svc.Run(context.Background(), clientID, connID)
	require.NoError(t, err)
	assert.Same(t, applied, result)

	// Wallets: CREATE for v-1, UPDATE for v-2, nothing for unchanged v-3.
	require.Len(t, result.Wallets, 2)
	assert.Equal(t, []domain.SyncOpType{domain.SyncOpCreate, domain.SyncOpUpdate}, opTypes(result.Wallets))
	assert.Equal(t, "fresh", result.Wallets[0].Create.Label)
	assert.Equal(t, existingWallet.ID, result.Wallets[1].Update.ID, "updates keep the internal id")
	assert.Equal(t, "new label", result.Wallets[1].Update.Label)

	// Accounts: CREATE linked to the in-pass wallet id, SKIP for the orphan.
	require.Len(t, result.Accounts, 2)
	assert.Equal(t, domain.SyncOpCreate, result.Accounts[0].Type)
	assert.Equal(t, result.Wallets[0].Create.ID, result.Accounts[0].Create.WalletID,
		"child resolves the parent created in the same pass")
	assert.Equal(t, domain.SyncOpSkip, result.Accounts[1].Type)
	assert.Equal(t, "w-orphan", result.Accounts[1].ExternalID)
	assert.Equal(t, "v-unknown", result.Accounts[1].Context["wallet_external_id"])

	// Addresses: CREATE plus FAILED for the empty address.
	require.Len(t, result.Addresses, 2)
	assert.Equal(t, domain.SyncOpCreate, result.Addresses[0].Type)
	assert.Equal(t, result.Accounts[0].Create.ID, result.Addresses[0].Create.AccountID)
	assert.Equal(t, domain.SyncOpFailed, result.Addresses[1].Type)

	// Known destinations: CREATE with normalized address, DELETE for stale.
	require.Len(t, result.KnownDestinations, 2)
	assert.Equal(t, domain.SyncOpCreate, result.KnownDestinations[0].Type)
	assert.Equal(t, "0xnew", result.KnownDestinations[0].Create.Address)
	assert.Equal(t, domain.SyncOpDelete, result.KnownDestinations[1].Type)
	assert.Equal(t, staleLocal.ID, result.KnownDestinations[1].EntityID)

	// SKIP and FAILED are diagnostics, not mutations.
	assert.Equal(t, 6, result.Mutations())
}

func TestSyncService_Run_UnchangedStateEmitsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newSyncFixture(t, ctrl)
	f.expectResolution()

	clientID := f.cc.Connection.ClientID
	connID := f.cc.Connection.ID

	wallet := domain.Wallet{
		ID: uuid.New(), ClientID: clientID, ConnectionID: connID,
		Provider: domain.ProviderAnchorage, ExternalID: "v-1", Label: "steady",
	}
	account := domain.Account{
		ID: uuid.New(), ClientID: clientID, ConnectionID: connID,
		Provider: domain.ProviderAnchorage, ExternalID: "w-1",
		WalletID: wallet.ID, AssetID: "BTC", Label: "main",
	}
	address := domain.Address{
		ID: uuid.New(), ClientID: clientID, ConnectionID: connID,
		Provider: domain.ProviderAnchorage, ExternalID: "a-1",
		AccountID: account.ID, Address: "bc1qsteady", AssetID: "BTC",
	}
	dest := domain.KnownDestination{
		ID: uuid.New(), ClientID: clientID, ConnectionID: connID,
		Provider: domain.ProviderAnchorage, ExternalID: "td-1",
		Address: "0xcafe", ExternalClassification: "EXCHANGE", Label: "ex",
	}

	f.adapter.EXPECT().FetchWallets(gomock.Any(), gomock.Any()).
		Return([]ports.RemoteWallet{{ExternalID: "v-1", Label: "steady"}}, nil)
	f.walletRepo.EXPECT().
		ListByExternalIDs(gomock.Any(), clientID, domain.ProviderAnchorage, []string{"v-1"}).
		Return([]domain.Wallet{wallet}, nil)

	f.adapter.EXPECT().FetchAccounts(gomock.Any(), gomock.Any(), []string{"v-1"}).
		Return([]ports.RemoteAccount{
			{ExternalID: "w-1", WalletExternalID: "v-1", AssetID: "BTC", Label: "main"},
		}, nil)
	f.accountRepo.EXPECT().
		ListByExternalIDs(gomock.Any(), clientID, domain.ProviderAnchorage, []string{"w-1"}).
		Return([]domain.Account{account}, nil)

	f.adapter.EXPECT().FetchAddresses(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]ports.RemoteAddress{
			{ExternalID: "a-1", AccountExternalID: "w-1", Address: "BC1QSTEADY", AssetID: "BTC"},
		}, nil)
	f.addressRepo.EXPECT().
		ListByExternalIDs(gomock.Any(), clientID, domain.ProviderAnchorage, []string{"a-1"}).
		Return([]domain.Address{address}, nil)

	f.adapter.EXPECT().FetchKnownDestinations(gomock.Any(), gomock.Any()).
		Return([]ports.RemoteKnownDestination{
			{ExternalID: "td-1", Address: "0xCAFE", Classification: "EXCHANGE", Label: "ex"},
		}, nil)
	f.kdRepo.EXPECT().ListByConnection(gomock.Any(), clientID, connID).
		Return([]domain.KnownDestination{dest}, nil)
	f.syncRepo.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(nil)

	result, err := f.svc.Run(context.Background(), clientID, connID)
	require.NoError(t, err)
	assert.Empty(t, result.Wallets)
	assert.Empty(t, result.Accounts)
	assert.Empty(t, result.Addresses)
	assert.Empty(t, result.KnownDestinations)
	assert.Zero(t, result.Mutations(), "a second pass over settled state mutates nothing")
}

func TestSyncService_Run_TierFailureIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newSyncFixture(t, ctrl)
	f.expectResolution()

	f.adapter.EXPECT().FetchWallets(gomock.Any(), gomock.Any()).
		Return([]ports.RemoteWallet{{ExternalID: "v-1"}}, nil)
	f.walletRepo.EXPECT().
		ListByExternalIDs(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil)
	f.adapter.EXPECT().FetchAccounts(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("provider 502"))

	// No Apply expectation: nothing may be persisted.
	_, err := f.svc.Run(context.Background(), f.cc.Connection.ClientID, f.cc.Connection.ID)
	require.Error(t, err)
}

func TestSyncService_Run_InactiveConnection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newSyncFixture(t, ctrl)

	wantErr := errors.New("connection is pending")
	f.registry.EXPECT().
		FindWithCredentialsByID(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, wantErr)

	_, err := f.svc.Run(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, wantErr)
}

func TestSyncService_Run_DuplicateExternalIDLastWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newSyncFixture(t, ctrl)
	f.expectResolution()

	clientID := f.cc.Connection.ClientID
	connID := f.cc.Connection.ID

	f.adapter.EXPECT().FetchWallets(gomock.Any(), gomock.Any()).Return([]ports.RemoteWallet{
		{ExternalID: "v-1", Label: "first"},
		{ExternalID: "v-1", Label: "second"},
	}, nil)
	f.walletRepo.EXPECT().
		ListByExternalIDs(gomock.Any(), clientID, domain.ProviderAnchorage, []string{"v-1"}).
		Return(nil, nil)
	f.adapter.EXPECT().FetchAccounts(gomock.Any(), gomock.Any(), []string{"v-1"}).Return(nil, nil)
	f.accountRepo.EXPECT().
		ListByExternalIDs(gomock.Any(), clientID, domain.ProviderAnchorage, []string{}).
		Return(nil, nil)
	f.adapter.EXPECT().FetchAddresses(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	f.addressRepo.EXPECT().
		ListByExternalIDs(gomock.Any(), clientID, domain.ProviderAnchorage, []string{}).
		Return(nil, nil)
	f.adapter.EXPECT().FetchKnownDestinations(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.kdRepo.EXPECT().ListByConnection(gomock.Any(), clientID, connID).Return(nil, nil)
	f.syncRepo.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(nil)

	result, err := f.svc.Run(context.Background(), clientID, connID)
	require.NoError(t, err)
	require.Len(t, result.Wallets, 1)
	assert.Equal(t, "second", result.Wallets[0].Create.Label)
}
