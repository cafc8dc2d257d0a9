package bitgo

import (
	"context"
	"fmt"
	"strings"

	"custody-broker/internal/adapter/custodian"
	"custody-broker/internal/core/domain"
	"custody-broker/internal/core/ports"
	"custody-broker/pkg/apperror"
)

// Account-tier and transfer external ids are composite, colon-separated:
// walletID:coin and walletID:coin:transferID. The composites never leave
// this package.
const compositeSep = ":"

// transferStatusMap is the total mapping from bitgo transfer states to the
// normalized set.
var transferStatusMap = map[string]domain.TransferStatus{
	"initialized":     domain.TransferStatusProcessing,
	"pendingApproval": domain.TransferStatusProcessing,
	"signed":          domain.TransferStatusProcessing,
	"unconfirmed":     domain.TransferStatusProcessing,
	"confirmed":       domain.TransferStatusSuccess,
	"failed":          domain.TransferStatusFailed,
	"removed":         domain.TransferStatusFailed,
	"rejected":        domain.TransferStatusFailed,
}

// Adapter implements the sync, transfer, and known-destination capabilities
// against bitgo's flat wallet model. Proxy forwarding is deliberately not
// implemented for this provider.
type Adapter struct {
	client    *Client
	syncWidth int
}

// NewAdapter creates a bitgo adapter.
func NewAdapter(client *Client, syncWidth int) *Adapter {
	return &Adapter{client: client, syncWidth: syncWidth}
}

func (a *Adapter) guard(cc ports.ConnectionContext) error {
	return custodian.EnsureProvider(cc.Connection, domain.ProviderBitGo)
}

// FetchWallets maps bitgo wallets onto the top resource tier.
func (a *Adapter) FetchWallets(ctx context.Context, cc ports.ConnectionContext) ([]ports.RemoteWallet, error) {
	if err := a.guard(cc); err != nil {
		return nil, err
	}
	wallets, err := a.client.ListWallets(ctx, cc.Connection.URL, cc.Credentials)
	if err != nil {
		return nil, err
	}
	remotes := make([]ports.RemoteWallet, 0, len(wallets))
	for _, w := range wallets {
		remotes = append(remotes, ports.RemoteWallet{ExternalID: w.ID, Label: w.Label})
	}
	return remotes, nil
}

// FetchAccounts derives one account per wallet from its coin, one detail
// lookup per wallet in bounded batches.
func (a *Adapter) FetchAccounts(ctx context.Context, cc ports.ConnectionContext, walletExternalIDs []string) ([]ports.RemoteAccount, error) {
	if err := a.guard(cc); err != nil {
		return nil, err
	}
	return custodian.ForEachBounded(ctx, a.syncWidth, walletExternalIDs,
		func(ctx context.Context, walletID string) ([]ports.RemoteAccount, error) {
			w, err := a.client.GetWallet(ctx, cc.Connection.URL, cc.Credentials, walletID)
			if err != nil {
				return nil, err
			}
			return []ports.RemoteAccount{{
				ExternalID:       w.ID + compositeSep + w.Coin,
				WalletExternalID: w.ID,
				AssetID:          w.Coin,
				Label:            w.Label,
			}}, nil
		})
}

// FetchAddresses lists each wallet's receive addresses.
func (a *Adapter) FetchAddresses(ctx context.Context, cc ports.ConnectionContext, accounts []ports.RemoteAccount) ([]ports.RemoteAddress, error) {
	if err := a.guard(cc); err != nil {
		return nil, err
	}
	return custodian.ForEachBounded(ctx, a.syncWidth, accounts,
		func(ctx context.Context, account ports.RemoteAccount) ([]ports.RemoteAddress, error) {
			addrs, err := a.client.ListAddresses(ctx, cc.Connection.URL, cc.Credentials,
				account.AssetID, account.WalletExternalID)
			if err != nil {
				return nil, err
			}
			remotes := make([]ports.RemoteAddress, 0, len(addrs))
			for _, addr := range addrs {
				remotes = append(remotes, ports.RemoteAddress{
					ExternalID:        addr.ID,
					AccountExternalID: account.ExternalID,
					Address:           domain.NormalizeAddress(addr.Address),
					NetworkID:         account.AssetID,
					AssetID:           account.AssetID,
					Label:             addr.Label,
				})
			}
			return remotes, nil
		})
}

// FetchKnownDestinations lists the whitelisted address book.
func (a *Adapter) FetchKnownDestinations(ctx context.Context, cc ports.ConnectionContext) ([]ports.RemoteKnownDestination, error) {
	return a.ListKnownDestinations(ctx, cc)
}

// ListKnownDestinations implements the known-destination capability.
func (a *Adapter) ListKnownDestinations(ctx context.Context, cc ports.ConnectionContext) ([]ports.RemoteKnownDestination, error) {
	if err := a.guard(cc); err != nil {
		return nil, err
	}
	entries, err := a.client.ListAddressBook(ctx, cc.Connection.URL, cc.Credentials)
	if err != nil {
		return nil, err
	}
	remotes := make([]ports.RemoteKnownDestination, 0, len(entries))
	for _, e := range entries {
		remotes = append(remotes, ports.RemoteKnownDestination{
			ExternalID:     e.ID,
			Address:        domain.NormalizeAddress(e.Addr),
			Classification: e.Type,
			AssetID:        e.Coin,
			NetworkID:      e.Coin,
			Label:          e.Label,
		})
	}
	return remotes, nil
}

// CreateTransfer spends from the source wallet. The idempotence key maps to
// bitgo's sequenceId and the wallet passphrase rides in the request body.
func (a *Adapter) CreateTransfer(ctx context.Context, cc ports.ConnectionContext, params ports.CreateTransferParams) (*ports.RemoteTransfer, error) {
	if err := a.guard(cc); err != nil {
		return nil, err
	}
	walletID, coin, err := sourceWallet(params)
	if err != nil {
		return nil, err
	}
	if params.Destination.Address == "" {
		return nil, apperror.ErrInvalidTransferParty("destination has no address")
	}
	body := sendCoinsRequest{
		Address:             params.Destination.Address,
		Amount:              params.Amount,
		SequenceID:          params.IdempotenceKey,
		WalletPassphrase:    cc.Credentials.WalletPassphrase,
		DeductFeeFromAmount: params.DeductFeeFromAmount,
		Memo:                params.Memo,
	}
	created, err := a.client.SendCoins(ctx, cc.Connection.URL, cc.Credentials, coin, walletID, body)
	if err != nil {
		return nil, err
	}
	composite := strings.Join([]string{walletID, coin, created.ID}, compositeSep)
	return &ports.RemoteTransfer{ExternalID: composite}, nil
}

// GetTransfer queries live transfer state, mapping the provider state totally.
func (a *Adapter) GetTransfer(ctx context.Context, cc ports.ConnectionContext, externalID string) (*ports.RemoteTransferState, error) {
	if err := a.guard(cc); err != nil {
		return nil, err
	}
	parts := strings.SplitN(externalID, compositeSep, 3)
	if len(parts) != 3 {
		return nil, apperror.InternalError(fmt.Errorf("malformed bitgo transfer id %q", externalID))
	}
	walletID, coin, transferID := parts[0], parts[1], parts[2]

	transfer, err := a.client.GetTransfer(ctx, cc.Connection.URL, cc.Credentials, coin, walletID, transferID)
	if err != nil {
		return nil, err
	}
	status, ok := transferStatusMap[transfer.State]
	if !ok {
		return nil, apperror.ErrUnmappedProviderStatus(string(domain.ProviderBitGo), transfer.State)
	}
	var fees []domain.TransferFee
	if transfer.FeeString != "" {
		fees = append(fees, domain.TransferFee{Type: "NETWORK", AssetID: coin, Amount: transfer.FeeString})
	}
	return &ports.RemoteTransferState{Status: status, Fees: fees}, nil
}

func sourceWallet(params ports.CreateTransferParams) (walletID, coin string, err error) {
	id := params.Source.ExternalID
	if id == "" {
		return "", "", apperror.ErrInvalidTransferParty("source has no external id")
	}
	if idx := strings.Index(id, compositeSep); idx > 0 {
		return id[:idx], id[idx+1:], nil
	}
	// Top-tier source: the coin comes from the requested asset.
	if params.AssetID == "" {
		return "", "", apperror.ErrInvalidTransferParty("wallet source requires an asset id")
	}
	return id, strings.ToLower(params.AssetID), nil
}
