package anchorage

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

// Client is the typed wrapper around the anchorage HTTP API. It builds
// paths and bodies, delegates signing, validates responses, and follows
// pagination.
type Client struct {
	http *custodian.Client
}

// NewClient creates an anchorage client over the given transport.
func NewClient(doer custodian.HTTPDoer) *Client {
	return &Client{
		http: &custodian.Client{
			Provider: domain.ProviderAnchorage,
			Signer:   NewSigner(),
			Doer:     doer,
		},
	}
}

type pageInfo struct {
	Next string `json:"next,omitempty"`
}

type vaultDTO struct {
	VaultID string `json:"vaultId"`
	Name    string `json:"name,omitempty"`
}

type listVaultsResponse struct {
	Vaults []vaultDTO `json:"vaults"`
	Page   pageInfo   `json:"page,omitempty"`
}

type walletDTO struct {
	WalletID  string `json:"walletId"`
	VaultID   string `json:"vaultId"`
	AssetType string `json:"assetType,omitempty"`
	Name      string `json:"name,omitempty"`
}

type listWalletsResponse struct {
	Wallets []walletDTO `json:"wallets"`
	Page    pageInfo    `json:"page,omitempty"`
}

type addressDTO struct {
	AddressID string `json:"addressId"`
	Address   string `json:"address"`
	AssetType string `json:"assetType,omitempty"`
	NetworkID string `json:"networkId,omitempty"`
}

type listAddressesResponse struct {
	Addresses []addressDTO `json:"addresses"`
	Page      pageInfo     `json:"page,omitempty"`
}

type trustedDestinationDTO struct {
	ID             string `json:"id"`
	Address        string `json:"address"`
	AssetType      string `json:"assetType,omitempty"`
	NetworkID      string `json:"networkId,omitempty"`
	Classification string `json:"classification,omitempty"`
	Label          string `json:"label,omitempty"`
}

type listTrustedDestinationsResponse struct {
	Destinations []trustedDestinationDTO `json:"trustedDestinations"`
	Page         pageInfo                `json:"page,omitempty"`
}

type transferPartyDTO struct {
	Type    string `json:"type,omitempty"`
	ID      string `json:"id,omitempty"`
	Address string `json:"address,omitempty"`
}

type createTransferRequest struct {
	IdempotentID        string           `json:"idempotentId"`
	Source              transferPartyDTO `json:"source"`
	Destination         transferPartyDTO `json:"destination"`
	AssetType           string           `json:"assetType"`
	Amount              string           `json:"amount"`
	DeductFeeFromAmount bool             `json:"deductFeeFromAmount"`
	Memo                string           `json:"memo,omitempty"`
}

type feeDTO struct {
	Type      string `json:"type"`
	AssetType string `json:"assetType,omitempty"`
	Amount    string `json:"amount"`
}

type transferDTO struct {
	TransferID string   `json:"transferId"`
	Status     string   `json:"status"`
	Fees       []feeDTO `json:"fees,omitempty"`
}

func listURL(base, path string, cursor custodian.Cursor) string {
	u := strings.TrimRight(base, "/") + path
	if cursor != "" {
		u += "?afterId=" + url.QueryEscape(string(cursor))
	}
	return u
}

// ListVaults fetches all vaults, following pagination to exhaustion.
func (c *Client) ListVaults(ctx context.Context, base string, creds domain.Credentials) ([]vaultDTO, error) {
	return custodian.FetchAll(ctx, func(ctx context.Context, cursor custodian.Cursor) (custodian.Page[vaultDTO], error) {
		var resp listVaultsResponse
		req := &custodian.UnsignedRequest{URL: listURL(base, "/v2/vaults", cursor), Method: http.MethodGet}
		if err := c.http.Do(ctx, creds, req, &resp); err != nil {
			return custodian.Page[vaultDTO]{}, err
		}
		return custodian.Page[vaultDTO]{Items: resp.Vaults, Next: custodian.Cursor(resp.Page.Next)}, nil
	})
}

// ListWallets fetches all wallets of one vault.
func (c *Client) ListWallets(ctx context.Context, base string, creds domain.Credentials, vaultID string) ([]walletDTO, error) {
	path := fmt.Sprintf("/v2/vaults/%s/wallets", url.PathEscape(vaultID))
	return custodian.FetchAll(ctx, func(ctx context.Context, cursor custodian.Cursor) (custodian.Page[walletDTO], error) {
		var resp listWalletsResponse
		req := &custodian.UnsignedRequest{URL: listURL(base, path, cursor), Method: http.MethodGet}
		if err := c.http.Do(ctx, creds, req, &resp); err != nil {
			return custodian.Page[walletDTO]{}, err
		}
		return custodian.Page[walletDTO]{Items: resp.Wallets, Next: custodian.Cursor(resp.Page.Next)}, nil
	})
}

// ListAddresses fetches all deposit addresses of one wallet.
func (c *Client) ListAddresses(ctx context.Context, base string, creds domain.Credentials, walletID string) ([]addressDTO, error) {
	path := fmt.Sprintf("/v2/wallets/%s/addresses", url.PathEscape(walletID))
	return custodian.FetchAll(ctx, func(ctx context.Context, cursor custodian.Cursor) (custodian.Page[addressDTO], error) {
		var resp listAddressesResponse
		req := &custodian.UnsignedRequest{URL: listURL(base, path, cursor), Method: http.MethodGet}
		if err := c.http.Do(ctx, creds, req, &resp); err != nil {
			return custodian.Page[addressDTO]{}, err
		}
		return custodian.Page[addressDTO]{Items: resp.Addresses, Next: custodian.Cursor(resp.Page.Next)}, nil
	})
}

// ListTrustedDestinations fetches the vetted payout addresses.
func (c *Client) ListTrustedDestinations(ctx context.Context, base string, creds domain.Credentials) ([]trustedDestinationDTO, error) {
	return custodian.FetchAll(ctx, func(ctx context.Context, cursor custodian.Cursor) (custodian.Page[trustedDestinationDTO], error) {
		var resp listTrustedDestinationsResponse
		req := &custodian.UnsignedRequest{URL: listURL(base, "/v2/trusted-destinations", cursor), Method: http.MethodGet}
		if err := c.http.Do(ctx, creds, req, &resp); err != nil {
			return custodian.Page[trustedDestinationDTO]{}, err
		}
		return custodian.Page[trustedDestinationDTO]{Items: resp.Destinations, Next: custodian.Cursor(resp.Page.Next)}, nil
	})
}

// CreateTransfer submits a transfer and returns the provider's record.
func (c *Client) CreateTransfer(ctx context.Context, base string, creds domain.Credentials, body createTransferRequest) (*transferDTO, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("marshal transfer: %w", err))
	}
	var resp transferDTO
	req := &custodian.UnsignedRequest{
		URL:    strings.TrimRight(base, "/") + "/v2/transfers",
		Method: http.MethodPost,
		Body:   payload,
	}
	if err := c.http.Do(ctx, creds, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetTransfer fetches one transfer with its status and fees.
func (c *Client) GetTransfer(ctx context.Context, base string, creds domain.Credentials, transferID string) (*transferDTO, error) {
	var resp transferDTO
	req := &custodian.UnsignedRequest{
		URL:    strings.TrimRight(base, "/") + "/v2/transfers/" + url.PathEscape(transferID),
		Method: http.MethodGet,
	}
	if err := c.http.Do(ctx, creds, req, &resp); err != nil {
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
