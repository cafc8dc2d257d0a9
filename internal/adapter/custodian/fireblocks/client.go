package fireblocks

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

// Client is the typed wrapper around the fireblocks HTTP API.
type Client struct {
	http *custodian.Client
}

// NewClient creates a fireblocks client over the given transport.
func NewClient(doer custodian.HTTPDoer) *Client {
	return &Client{
		http: &custodian.Client{
			Provider: domain.ProviderFireblocks,
			Signer:   NewSigner(),
			Doer:     doer,
		},
	}
}

type vaultAccountDTO struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type paging struct {
	After string `json:"after,omitempty"`
}

type listVaultAccountsResponse struct {
	Accounts []vaultAccountDTO `json:"accounts"`
	Paging   paging            `json:"paging,omitempty"`
}

type vaultAssetDTO struct {
	ID    string `json:"id"`
	Total string `json:"total,omitempty"`
}

type vaultAccountDetailDTO struct {
	ID     string          `json:"id"`
	Name   string          `json:"name,omitempty"`
	Assets []vaultAssetDTO `json:"assets,omitempty"`
}

type depositAddressDTO struct {
	AssetID     string `json:"assetId"`
	Address     string `json:"address"`
	Description string `json:"description,omitempty"`
	Tag         string `json:"tag,omitempty"`
}

type externalWalletAssetDTO struct {
	ID      string `json:"id"`
	Address string `json:"address"`
	Status  string `json:"status,omitempty"`
}

type externalWalletDTO struct {
	ID     string                   `json:"id"`
	Name   string                   `json:"name,omitempty"`
	Assets []externalWalletAssetDTO `json:"assets,omitempty"`
}

type txPartyDTO struct {
	Type           string          `json:"type"`
	ID             string          `json:"id,omitempty"`
	OneTimeAddress *oneTimeAddress `json:"oneTimeAddress,omitempty"`
}

type oneTimeAddress struct {
	Address string `json:"address"`
}

type createTransactionRequest struct {
	AssetID            string     `json:"assetId"`
	Amount             string     `json:"amount"`
	Source             txPartyDTO `json:"source"`
	Destination        txPartyDTO `json:"destination"`
	TreatAsGrossAmount bool       `json:"treatAsGrossAmount"`
	Note               string     `json:"note,omitempty"`
	ExternalTxID       string     `json:"externalTxId"`
}

type feeInfoDTO struct {
	NetworkFee string `json:"networkFee,omitempty"`
	ServiceFee string `json:"serviceFee,omitempty"`
}

type transactionDTO struct {
	ID      string      `json:"id"`
	Status  string      `json:"status"`
	AssetID string      `json:"assetId,omitempty"`
	FeeInfo *feeInfoDTO `json:"feeInfo,omitempty"`
}

// ListVaultAccounts fetches all vault accounts, following pagination.
func (c *Client) ListVaultAccounts(ctx context.Context, base string, creds domain.Credentials) ([]vaultAccountDTO, error) {
	return custodian.FetchAll(ctx, func(ctx context.Context, cursor custodian.Cursor) (custodian.Page[vaultAccountDTO], error) {
		u := strings.TrimRight(base, "/") + "/v1/vault/accounts_paged"
		if cursor != "" {
			u += "?after=" + url.QueryEscape(string(cursor))
		}
		var resp listVaultAccountsResponse
		if err := c.http.Do(ctx, creds, &custodian.UnsignedRequest{URL: u, Method: http.MethodGet}, &resp); err != nil {
			return custodian.Page[vaultAccountDTO]{}, err
		}
		return custodian.Page[vaultAccountDTO]{Items: resp.Accounts, Next: custodian.Cursor(resp.Paging.After)}, nil
	})
}

// GetVaultAccount fetches one vault account with its asset wallets.
func (c *Client) GetVaultAccount(ctx context.Context, base string, creds domain.Credentials, accountID string) (*vaultAccountDetailDTO, error) {
	var resp vaultAccountDetailDTO
	u := strings.TrimRight(base, "/") + "/v1/vault/accounts/" + url.PathEscape(accountID)
	if err := c.http.Do(ctx, creds, &custodian.UnsignedRequest{URL: u, Method: http.MethodGet}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListDepositAddresses fetches the deposit addresses of one asset wallet.
func (c *Client) ListDepositAddresses(ctx context.Context, base string, creds domain.Credentials, accountID, assetID string) ([]depositAddressDTO, error) {
	var resp []depositAddressDTO
	u := fmt.Sprintf("%s/v1/vault/accounts/%s/%s/addresses",
		strings.TrimRight(base, "/"), url.PathEscape(accountID), url.PathEscape(assetID))
	if err := c.http.Do(ctx, creds, &custodian.UnsignedRequest{URL: u, Method: http.MethodGet}, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ListExternalWallets fetches the whitelisted external wallets.
func (c *Client) ListExternalWallets(ctx context.Context, base string, creds domain.Credentials) ([]externalWalletDTO, error) {
	var resp []externalWalletDTO
	u := strings.TrimRight(base, "/") + "/v1/external_wallets"
	if err := c.http.Do(ctx, creds, &custodian.UnsignedRequest{URL: u, Method: http.MethodGet}, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateTransaction submits a transaction and returns the provider record.
func (c *Client) CreateTransaction(ctx context.Context, base string, creds domain.Credentials, body createTransactionRequest) (*transactionDTO, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("marshal transaction: %w", err))
	}
	var resp transactionDTO
	req := &custodian.UnsignedRequest{
		URL:    strings.TrimRight(base, "/") + "/v1/transactions",
		Method: http.MethodPost,
		Body:   payload,
	}
	if err := c.http.Do(ctx, creds, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetTransaction fetches one transaction with status and fees.
func (c *Client) GetTransaction(ctx context.Context, base string, creds domain.Credentials, txID string) (*transactionDTO, error) {
	var resp transactionDTO
	u := strings.TrimRight(base, "/") + "/v1/transactions/" + url.PathEscape(txID)
	if err := c.http.Do(ctx, creds, &custodian.UnsignedRequest{URL: u, Method: http.MethodGet}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Forward signs and relays a raw request, returning status and body verbatim.
func (c *Client) Forward(ctx context.Context, base string, creds domain.Credentials, method, path, query string, body []byte) (int, []byte, error) {
	u := strings.TrimRight(base, "/") + path
	if query != "" {
		u += "?" + query
	}
	return c.http.DoRaw(ctx, creds, &custodian.UnsignedRequest{URL: u, Method: method, Body: body})
}
