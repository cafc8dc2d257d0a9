package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestProvider_Valid(t *testing.T) {
	assert.True(t, ProviderAnchorage.Valid())
	assert.True(t, ProviderFireblocks.Valid())
	assert.True(t, ProviderBitGo.Valid())
	assert.False(t, Provider("COINBASE").Valid())
	assert.False(t, Provider("").Valid())
}

func TestConnection_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    ConnectionStatus
		to      ConnectionStatus
		allowed bool
	}{
		{"pending to active", ConnectionStatusPending, ConnectionStatusActive, true},
		{"active to revoked", ConnectionStatusActive, ConnectionStatusRevoked, true},
		{"pending to revoked", ConnectionStatusPending, ConnectionStatusRevoked, false},
		{"active to pending", ConnectionStatusActive, ConnectionStatusPending, false},
		{"revoked to active", ConnectionStatusRevoked, ConnectionStatusActive, false},
		{"revoked to pending", ConnectionStatusRevoked, ConnectionStatusPending, false},
		{"pending to pending", ConnectionStatusPending, ConnectionStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Connection{Status: tt.from}
			assert.Equal(t, tt.allowed, c.CanTransitionTo(tt.to))
		})
	}
}

func TestCredentials_Validate(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
		creds    Credentials
		wantErr  bool
	}{
		{"anchorage complete", ProviderAnchorage, Credentials{AccessKey: "ak", SigningKey: "sk"}, false},
		{"anchorage missing signing key", ProviderAnchorage, Credentials{AccessKey: "ak"}, true},
		{"fireblocks complete", ProviderFireblocks, Credentials{APIKey: "key", PrivateKey: "pem"}, false},
		{"fireblocks missing api key", ProviderFireblocks, Credentials{PrivateKey: "pem"}, true},
		{"bitgo token only", ProviderBitGo, Credentials{AccessToken: "tok"}, false},
		{"bitgo with passphrase", ProviderBitGo, Credentials{AccessToken: "tok", WalletPassphrase: "pw"}, false},
		{"bitgo empty", ProviderBitGo, Credentials{}, true},
		{"unknown provider", Provider("NOPE"), Credentials{AccessToken: "tok"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate(tt.provider)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNetworkFeeAttribution_DeductFeeFromAmount(t *testing.T) {
	assert.True(t, FeeDeduct.DeductFeeFromAmount())
	assert.False(t, FeeOnTop.DeductFeeFromAmount())
	assert.False(t, NetworkFeeAttribution("").DeductFeeFromAmount())
}

func TestTransferParty_IsRawAddress(t *testing.T) {
	raw := TransferParty{Address: "0xAbC"}
	assert.True(t, raw.IsRawAddress())

	ref := TransferParty{Type: PartyTypeWallet, ID: uuid.New()}
	assert.False(t, ref.IsRawAddress())
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t, "0xabcdef", NormalizeAddress("0xABCdef"))
	assert.Equal(t, "bc1qxyz", NormalizeAddress("  bc1qXYZ "))
}

func TestSyncResult_Mutations(t *testing.T) {
	r := &SyncResult{
		Wallets: []SyncOperation[Wallet]{
			{Type: SyncOpCreate, Create: &Wallet{}},
			{Type: SyncOpSkip, ExternalID: "w-2"},
		},
		Accounts: []SyncOperation[Account]{
			{Type: SyncOpUpdate, Update: &Account{}},
			{Type: SyncOpFailed, ExternalID: "a-9"},
		},
		KnownDestinations: []SyncOperation[KnownDestination]{
			{Type: SyncOpDelete, EntityID: uuid.New()},
		},
	}

	assert.Equal(t, 3, r.Mutations())
}
