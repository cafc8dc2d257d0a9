package anchorage

import (
	"context"

	"custody-broker/internal/adapter/custodian"
	"custody-broker/internal/core/domain"
	"custody-broker/internal/core/ports"
	"custody-broker/pkg/apperror"
)

// transferStatusMap is the total mapping from anchorage transfer statuses
// to the normalized set. An absent key is a fatal typed error.
var transferStatusMap = map[string]domain.TransferStatus{
	"QUEUED":      domain.TransferStatusProcessing,
	"IN_PROGRESS": domain.TransferStatusProcessing,
	"COMPLETE":    domain.TransferStatusSuccess,
	"FAILED":      domain.TransferStatusFailed,
	"REJECTED":    domain.TransferStatusFailed,
	"CANCELLED":   domain.TransferStatusFailed,
}

// Adapter implements the sync, transfer, known-destination, and proxy
// capabilities against anchorage's vault hierarchy.
type Adapter struct {
	client    *Client
	syncWidth int
}

// NewAdapter creates an anchorage adapter. syncWidth bounds per-vault and
// per-wallet fan-out during synchronization.
func NewAdapter(client *Client, syncWidth int) *Adapter {
	return &Adapter{client: client, syncWidth: syncWidth}
}

func (a *Adapter) guard(cc ports.ConnectionContext) error {
	return custodian.EnsureProvider(cc.Connection, domain.ProviderAnchorage)
}

// FetchWallets maps anchorage vaults onto the top resource tier.
func (a *Adapter) FetchWallets(ctx context.Context, cc ports.ConnectionContext) ([]ports.RemoteWallet, error) {
	if err := a.guard(cc); err != nil {
		return nil, err
	}
	vaults, err := a.client.ListVaults(ctx, cc.Connection.URL, cc.Credentials)
	if err != nil {
		return nil, err
	}
	remotes := make([]ports.RemoteWallet, 0, len(vaults))
	for _, v := range vaults {
		remotes = append(remotes, ports.RemoteWallet{ExternalID: v.VaultID, Label: v.Name})
	}
	return remotes, nil
}

// FetchAccounts maps anchorage wallets (per vault) onto the account tier.
func (a *Adapter) FetchAccounts(ctx context.Context, cc ports.ConnectionContext, walletExternalIDs []string) ([]ports.RemoteAccount, error) {
	if err := a.guard(cc); err != nil {
		return nil, err
	}
	return custodian.ForEachBounded(ctx, a.syncWidth, walletExternalIDs,
		func(ctx context.Context, vaultID string) ([]ports.RemoteAccount, error) {
			wallets, err := a.client.ListWallets(ctx, cc.Connection.URL, cc.Credentials, vaultID)
			if err != nil {
				return nil, err
			}
			accounts := make([]ports.RemoteAccount, 0, len(wallets))
			for _, w := range wallets {
				accounts = append(accounts, ports.RemoteAccount{
					ExternalID:       w.WalletID,
					WalletExternalID: w.VaultID,
					AssetID:          w.AssetType,
					Label:            w.Name,
				})
			}
			return accounts, nil
		})
}

// FetchAddresses maps anchorage deposit addresses (per wallet) onto the
// address tier.
func (a *Adapter) FetchAddresses(ctx context.Context, cc ports.ConnectionContext, accounts []ports.RemoteAccount) ([]ports.RemoteAddress, error) {
	if err := a.guard(cc); err != nil {
		return nil, err
	}
	return custodian.ForEachBounded(ctx, a.syncWidth, accounts,
		func(ctx context.Context, account ports.RemoteAccount) ([]ports.RemoteAddress, error) {
			addrs, err := a.client.ListAddresses(ctx, cc.Connection.URL, cc.Credentials, account.ExternalID)
			if err != nil {
				return nil, err
			}
			remotes := make([]ports.RemoteAddress, 0, len(addrs))
			for _, addr := range addrs {
				remotes = append(remotes, ports.RemoteAddress{
					ExternalID:        addr.AddressID,
					AccountExternalID: account.ExternalID,
					Address:           domain.NormalizeAddress(addr.Address),
					NetworkID:         addr.NetworkID,
					AssetID:           addr.AssetType,
				})
			}
			return remotes, nil
		})
}

// FetchKnownDestinations lists anchorage trusted destinations.
func (a *Adapter) FetchKnownDestinations(ctx context.Context, cc ports.ConnectionContext) ([]ports.RemoteKnownDestination, error) {
	return a.ListKnownDestinations(ctx, cc)
}

// ListKnownDestinations implements the known-destination capability.
func (a *Adapter) ListKnownDestinations(ctx context.Context, cc ports.ConnectionContext) ([]ports.RemoteKnownDestination, error) {
	if err := a.guard(cc); err != nil {
		return nil, err
	}
	dests, err := a.client.ListTrustedDestinations(ctx, cc.Connection.URL, cc.Credentials)
	if err != nil {
		return nil, err
	}
	remotes := make([]ports.RemoteKnownDestination, 0, len(dests))
	for _, d := range dests {
		remotes = append(remotes, ports.RemoteKnownDestination{
			ExternalID:     d.ID,
			Address:        domain.NormalizeAddress(d.Address),
			Classification: d.Classification,
			AssetID:        d.AssetType,
			NetworkID:      d.NetworkID,
			Label:          d.Label,
		})
	}
	return remotes, nil
}

// CreateTransfer executes a fund movement.
func (a *Adapter) CreateTransfer(ctx context.Context, cc ports.ConnectionContext, params ports.CreateTransferParams) (*ports.RemoteTransfer, error) {
	if err := a.guard(cc); err != nil {
		return nil, err
	}
	body := createTransferRequest{
		IdempotentID:        params.IdempotenceKey,
		Source:              toPartyDTO(params.Source),
		Destination:         toPartyDTO(params.Destination),
		AssetType:           params.AssetID,
		Amount:              params.Amount,
		DeductFeeFromAmount: params.DeductFeeFromAmount,
		Memo:                params.Memo,
	}
	created, err := a.client.CreateTransfer(ctx, cc.Connection.URL, cc.Credentials, body)
	if err != nil {
		return nil, err
	}
	return &ports.RemoteTransfer{ExternalID: created.TransferID}, nil
}

// GetTransfer queries live transfer state, mapping the status totally.
func (a *Adapter) GetTransfer(ctx context.Context, cc ports.ConnectionContext, externalID string) (*ports.RemoteTransferState, error) {
	if err := a.guard(cc); err != nil {
		return nil, err
	}
	remote, err := a.client.GetTransfer(ctx, cc.Connection.URL, cc.Credentials, externalID)
	if err != nil {
		return nil, err
	}
	status, ok := transferStatusMap[remote.Status]
	if !ok {
		return nil, apperror.ErrUnmappedProviderStatus(string(domain.ProviderAnchorage), remote.Status)
	}
	fees := make([]domain.TransferFee, 0, len(remote.Fees))
	for _, f := range remote.Fees {
		fees = append(fees, domain.TransferFee{Type: f.Type, AssetID: f.AssetType, Amount: f.Amount})
	}
	return &ports.RemoteTransferState{Status: status, Fees: fees}, nil
}

// Forward relays a raw signed request to anchorage.
func (a *Adapter) Forward(ctx context.Context, cc ports.ConnectionContext, req ports.ProxyRequest) (*ports.ProxyResponse, error) {
	if err := a.guard(cc); err != nil {
		return nil, err
	}
	status, body, err := a.client.Forward(ctx, cc.Connection.URL, cc.Credentials, req.Method, req.Path, req.Query, req.Body)
	if err != nil {
		return nil, err
	}
	return &ports.ProxyResponse{StatusCode: status, Body: body}, nil
}

func toPartyDTO(p ports.ProviderParty) transferPartyDTO {
	if p.Kind == "" {
		return transferPartyDTO{Address: p.Address}
	}
	return transferPartyDTO{Type: string(p.Kind), ID: p.ExternalID}
}
