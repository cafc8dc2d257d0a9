package bitgo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"custody-broker/internal/adapter/custodian"
	"custody-broker/internal/core/domain"
	"custody-broker/pkg/apperror"
)

// Client is the typed wrapper around the bitgo HTTP API.
type Client struct {
	http *custodian.Client
}

// NewClient creates a bitgo client over the given transport.
func NewClient(doer custodian.HTTPDoer) *Client {
	return &Client{
		http: &custodian.Client{
			Provider: domain.ProviderBitGo,
			Signer:   NewSigner(),
			Doer:     doer,
		},
	}
}

type walletDTO struct {
	ID    string `json:"id"`
	Coin  string `json:"coin"`
	Label string `json:"label,omitempty"`
}

type listWalletsResponse struct {
	Wallets         []walletDTO `json:"wallets"`
	NextBatchPrevID string      `json:"nextBatchPrevId,omitempty"`
}

type addressDTO struct {
	ID      string `json:"id"`
	Address string `json:"address"`
	Coin    string `json:"coin,omitempty"`
	Label   string `json:"label,omitempty"`
}

type listAddressesResponse struct {
	Addresses       []addressDTO `json:"addresses"`
	NextBatchPrevID string       `json:"nextBatchPrevId,omitempty"`
}

type addressBookEntryDTO struct {
	ID    string `json:"id"`
	Coin  string `json:"coin"`
	Addr  string `json:"address"`
	Label string `json:"label,omitempty"`
	Type  string `json:"type,omitempty"`
}

type listAddressBookResponse struct {
	Entries         []addressBookEntryDTO `json:"entries"`
	NextBatchPrevID string                `json:"nextBatchPrevId,omitempty"`
}

type sendCoinsRequest struct {
	Address             string `json:"address"`
	Amount              string `json:"amount"`
	SequenceID          string `json:"sequenceId"`
	WalletPassphrase    string `json:"walletPassphrase"`
	DeductFeeFromAmount bool   `json:"deductFeeFromAmount"`
	Memo                string `json:"memo,omitempty"`
}

type transferDTO struct {
	ID        string `json:"id"`
	State     string `json:"state"`
	Coin      string `json:"coin,omitempty"`
	FeeString string `json:"feeString,omitempty"`
}

type sendCoinsResponse struct {
	Transfer transferDTO `json:"transfer"`
	TxID     string      `json:"txid,omitempty"`
}

func cursorSuffix(cursor custodian.Cursor) string {
	if cursor == "" {
		return ""
	}
	return "?prevId=" + url.QueryEscape(string(cursor))
}

// ListWallets fetches all wallets, following batch pagination.
func (c *Client) ListWallets(ctx context.Context, base string, creds domain.Credentials) ([]walletDTO, error) {
	return custodian.FetchAll(ctx, func(ctx context.Context, cursor custodian.Cursor) (custodian.Page[walletDTO], error) {
		u := strings.TrimRight(base, "/") + "/api/v2/wallets" + cursorSuffix(cursor)
		var resp listWalletsResponse
		if err := c.http.Do(ctx, creds, &custodian.UnsignedRequest{URL: u, Method: http.MethodGet}, &resp); err != nil {
			return custodian.Page[walletDTO]{}, err
		}
		return custodian.Page[walletDTO]{Items: resp.Wallets, Next: custodian.Cursor(resp.NextBatchPrevID)}, nil
	})
}

// GetWallet fetches one wallet by id.
func (c *Client) GetWallet(ctx context.Context, base string, creds domain.Credentials, walletID string) (*walletDTO, error) {
	var resp walletDTO
	u := strings.TrimRight(base, "/") + "/api/v2/wallet/" + url.PathEscape(walletID)
	if err := c.http.Do(ctx, creds, &custodian.UnsignedRequest{URL: u, Method: http.MethodGet}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListAddresses fetches all receive addresses of one wallet.
func (c *Client) ListAddresses(ctx context.Context, base string, creds domain.Credentials, coin, walletID string) ([]addressDTO, error) {
	return custodian.FetchAll(ctx, func(ctx context.Context, cursor custodian.Cursor) (custodian.Page[addressDTO], error) {
		u := fmt.Sprintf("%s/api/v2/%s/wallet/%s/addresses%s",
			strings.TrimRight(base, "/"), url.PathEscape(coin), url.PathEscape(walletID), cursorSuffix(cursor))
		var resp listAddressesResponse
		if err := c.http.Do(ctx, creds, &custodian.UnsignedRequest{URL: u, Method: http.MethodGet}, &resp); err != nil {
			return custodian.Page[addressDTO]{}, err
		}
		return custodian.Page[addressDTO]{Items: resp.Addresses, Next: custodian.Cursor(resp.NextBatchPrevID)}, nil
	})
}

// ListAddressBook fetches the whitelisted payout entries.
func (c *Client) ListAddressBook(ctx context.Context, base string, creds domain.Credentials) ([]addressBookEntryDTO, error) {
	return custodian.FetchAll(ctx, func(ctx context.Context, cursor custodian.Cursor) (custodian.Page[addressBookEntryDTO], error) {
		u := strings.TrimRight(base, "/") + "/api/v2/addressbook" + cursorSuffix(cursor)
		var resp listAddressBookResponse
		if err := c.http.Do(ctx, creds, &custodian.UnsignedRequest{URL: u, Method: http.MethodGet}, &resp); err != nil {
			return custodian.Page[addressBookEntryDTO]{}, err
		}
		return custodian.Page[addressBookEntryDTO]{Items: resp.Entries, Next: custodian.Cursor(resp.NextBatchPrevID)}, nil
	})
}

// SendCoins submits a spend from one wallet. The wallet passphrase travels
// in the body, never in a header.
func (c *Client) SendCoins(ctx context.Context, base string, creds domain.Credentials, coin, walletID string, body sendCoinsRequest) (*transferDTO, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("marshal sendcoins: %w", err))
	}
	var resp sendCoinsResponse
	req := &custodian.UnsignedRequest{
		URL: fmt.Sprintf("%s/api/v2/%s/wallet/%s/sendcoins",
			strings.TrimRight(base, "/"), url.PathEscape(coin), url.PathEscape(walletID)),
		Method: http.MethodPost,
		Body:   payload,
	}
	if err := c.http.Do(ctx, creds, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Transfer, nil
}

// GetTransfer fetches one transfer of one wallet.
func (c *Client) GetTransfer(ctx context.Context, base string, creds domain.Credentials, coin, walletID, transferID string) (*transferDTO, error) {
	var resp transferDTO
	u := fmt.Sprintf("%s/api/v2/%s/wallet/%s/transfer/%s",
		strings.TrimRight(base, "/"), url.PathEscape(coin), url.PathEscape(walletID), url.PathEscape(transferID))
	if err := c.http.Do(ctx, creds, &custodian.UnsignedRequest{URL: u, Method: http.MethodGet}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
