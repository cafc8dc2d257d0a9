package bitgo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"custody-broker/internal/core/domain"
	"custody-broker/internal/core/ports"
	"custody-broker/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConnection(url string) ports.ConnectionContext {
	return ports.ConnectionContext{
		Connection: domain.Connection{
			ID:       uuid.New(),
			ClientID: uuid.New(),
			Provider: domain.ProviderBitGo,
			Status:   domain.ConnectionStatusActive,
			URL:      url,
		},
		Credentials: domain.Credentials{
			AccessToken:      "v2x-token",
			WalletPassphrase: "hunter2",
		},
	}
}

func newAdapter(t *testing.T, handler http.Handler) (*Adapter, ports.ConnectionContext) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAdapter(NewClient(srv.Client()), 2), testConnection(srv.URL)
}

func TestAdapter_FetchWallets_FollowsPagination(t *testing.T) {
	requests := 0
	adapter, cc := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		require.Equal(t, "/api/v2/wallets", r.URL.Path)
		require.Equal(t, "Bearer v2x-token", r.Header.Get("Authorization"))

		switch r.URL.Query().Get("prevId") {
		case "":
			fmt.Fprint(w, `{"wallets":[{"id":"w-1","coin":"btc","label":"Cold"},{"id":"w-2","coin":"eth"}],"nextBatchPrevId":"w-2"}`)
		case "w-2":
			fmt.Fprint(w, `{"wallets":[{"id":"w-3","coin":"sol"}]}`)
		default:
			t.Fatalf("unexpected cursor %q", r.URL.Query().Get("prevId"))
		}
	}))

	wallets, err := adapter.FetchWallets(context.Background(), cc)
	require.NoError(t, err)
	require.Len(t, wallets, 3)
	assert.Equal(t, "w-1", wallets[0].ExternalID)
	assert.Equal(t, "Cold", wallets[0].Label)
	assert.Equal(t, "w-3", wallets[2].ExternalID)
	assert.Equal(t, 2, requests)
}

func TestAdapter_FetchWallets_RejectsWrongProvider(t *testing.T) {
	adapter, cc := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	cc.Connection.Provider = domain.ProviderFireblocks

	_, err := adapter.FetchWallets(context.Background(), cc)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CON_003", appErr.Code)
}

func TestAdapter_FetchAccounts_OnePerWalletCoin(t *testing.T) {
	adapter, cc := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v2/wallet/w-1":
			fmt.Fprint(w, `{"id":"w-1","coin":"btc","label":"Cold"}`)
		case "/api/v2/wallet/w-2":
			fmt.Fprint(w, `{"id":"w-2","coin":"eth"}`)
		default:
			http.NotFound(w, r)
		}
	}))

	accounts, err := adapter.FetchAccounts(context.Background(), cc, []string{"w-1", "w-2"})
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "w-1:btc", accounts[0].ExternalID)
	assert.Equal(t, "w-1", accounts[0].WalletExternalID)
	assert.Equal(t, "btc", accounts[0].AssetID)
	assert.Equal(t, "w-2:eth", accounts[1].ExternalID)
}

func TestAdapter_FetchAddresses_NormalizesAndPaginates(t *testing.T) {
	requests := 0
	adapter, cc := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		require.Equal(t, "/api/v2/eth/wallet/w-2/addresses", r.URL.Path)

		switch r.URL.Query().Get("prevId") {
		case "":
			fmt.Fprint(w, `{"addresses":[{"id":"a-1","address":"0xABCdef","label":"deposit"}],"nextBatchPrevId":"a-1"}`)
		case "a-1":
			fmt.Fprint(w, `{"addresses":[{"id":"a-2","address":"0x1234AB"}]}`)
		default:
			t.Fatalf("unexpected cursor %q", r.URL.Query().Get("prevId"))
		}
	}))

	addrs, err := adapter.FetchAddresses(context.Background(), cc, []ports.RemoteAccount{
		{ExternalID: "w-2:eth", WalletExternalID: "w-2", AssetID: "eth"},
	})
	require.NoError(t, err)
	require.Len(t, addrs, 2)
	assert.Equal(t, "a-1", addrs[0].ExternalID)
	assert.Equal(t, "0xabcdef", addrs[0].Address, "addresses are lower-cased")
	assert.Equal(t, "w-2:eth", addrs[0].AccountExternalID)
	assert.Equal(t, 2, requests)
}

func TestAdapter_ListKnownDestinations(t *testing.T) {
	adapter, cc := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v2/addressbook", r.URL.Path)
		fmt.Fprint(w, `{"entries":[{"id":"ab-1","coin":"btc","address":"bc1QQQ","label":"Exchange","type":"exchange"}]}`)
	}))

	dests, err := adapter.ListKnownDestinations(context.Background(), cc)
	require.NoError(t, err)
	require.Len(t, dests, 1)
	assert.Equal(t, "ab-1", dests[0].ExternalID)
	assert.Equal(t, "bc1qqq", dests[0].Address)
	assert.Equal(t, "exchange", dests[0].Classification)
	assert.Equal(t, "btc", dests[0].AssetID)
}

func TestAdapter_CreateTransfer_PassphraseAndSequenceInBody(t *testing.T) {
	var got sendCoinsRequest
	adapter, cc := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v2/btc/wallet/w-1/sendcoins", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"transfer":{"id":"t-7","state":"signed"},"txid":"deadbeef"}`)
	}))

	created, err := adapter.CreateTransfer(context.Background(), cc, ports.CreateTransferParams{
		IdempotenceKey:      "idem-1",
		Source:              ports.ProviderParty{Kind: domain.PartyTypeAccount, ExternalID: "w-1:btc"},
		Destination:         ports.ProviderParty{Address: "bc1qdest"},
		AssetID:             "BTC",
		Amount:              "25000",
		DeductFeeFromAmount: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "w-1:btc:t-7", created.ExternalID)

	assert.Equal(t, "bc1qdest", got.Address)
	assert.Equal(t, "25000", got.Amount)
	assert.Equal(t, "idem-1", got.SequenceID)
	assert.Equal(t, "hunter2", got.WalletPassphrase)
	assert.True(t, got.DeductFeeFromAmount)
}

func TestAdapter_CreateTransfer_WalletSourceDerivesCoinFromAsset(t *testing.T) {
	adapter, cc := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v2/eth/wallet/w-9/sendcoins", r.URL.Path)
		fmt.Fprint(w, `{"transfer":{"id":"t-1","state":"initialized"}}`)
	}))

	created, err := adapter.CreateTransfer(context.Background(), cc, ports.CreateTransferParams{
		IdempotenceKey: "idem-2",
		Source:         ports.ProviderParty{Kind: domain.PartyTypeWallet, ExternalID: "w-9"},
		Destination:    ports.ProviderParty{Address: "0xdest"},
		AssetID:        "ETH",
		Amount:         "1",
	})
	require.NoError(t, err)
	assert.Equal(t, "w-9:eth:t-1", created.ExternalID)
}

func TestAdapter_CreateTransfer_RejectsAddresslessDestination(t *testing.T) {
	adapter, cc := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no provider call expected")
	}))

	_, err := adapter.CreateTransfer(context.Background(), cc, ports.CreateTransferParams{
		Source:      ports.ProviderParty{Kind: domain.PartyTypeAccount, ExternalID: "w-1:btc"},
		Destination: ports.ProviderParty{Kind: domain.PartyTypeWallet, ExternalID: "w-2"},
		Amount:      "1",
	})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "TRF_002", appErr.Code)
}

func TestAdapter_GetTransfer_StatusMapping(t *testing.T) {
	tests := []struct {
		provider string
		want     domain.TransferStatus
	}{
		{"initialized", domain.TransferStatusProcessing},
		{"pendingApproval", domain.TransferStatusProcessing},
		{"signed", domain.TransferStatusProcessing},
		{"unconfirmed", domain.TransferStatusProcessing},
		{"confirmed", domain.TransferStatusSuccess},
		{"failed", domain.TransferStatusFailed},
		{"removed", domain.TransferStatusFailed},
		{"rejected", domain.TransferStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			adapter, cc := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/api/v2/btc/wallet/w-1/transfer/t-7", r.URL.Path)
				fmt.Fprintf(w, `{"id":"t-7","state":%q,"coin":"btc","feeString":"120"}`, tt.provider)
			}))

			state, err := adapter.GetTransfer(context.Background(), cc, "w-1:btc:t-7")
			require.NoError(t, err)
			assert.Equal(t, tt.want, state.Status)
			require.Len(t, state.Fees, 1)
			assert.Equal(t, "NETWORK", state.Fees[0].Type)
			assert.Equal(t, "btc", state.Fees[0].AssetID)
			assert.Equal(t, "120", state.Fees[0].Amount)
		})
	}
}

func TestAdapter_GetTransfer_UnmappedStatus(t *testing.T) {
	adapter, cc := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"t-7","state":"replaced"}`)
	}))

	_, err := adapter.GetTransfer(context.Background(), cc, "w-1:btc:t-7")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PRV_002", appErr.Code)
}

func TestAdapter_GetTransfer_MalformedCompositeID(t *testing.T) {
	adapter, cc := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no provider call expected")
	}))

	_, err := adapter.GetTransfer(context.Background(), cc, "t-7")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SYS_001", appErr.Code)
}

func TestAdapter_ProviderError(t *testing.T) {
	adapter, cc := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"unauthorized"}`)
	}))

	_, err := adapter.FetchWallets(context.Background(), cc)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PRV_001", appErr.Code)
}
