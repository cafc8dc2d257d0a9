package fireblocks

import (
	"context"
	"fmt"
	"strings"

	"custody-broker/internal/adapter/custodian"
	"custody-broker/internal/core/domain"
	"custody-broker/internal/core/ports"
	"custody-broker/pkg/apperror"
)

// Account-tier external ids are composite: vaultAccountID/assetID. The
// composite never leaves this package.
const compositeSep = "/"

// transferStatusMap is the total mapping from fireblocks transaction
// statuses to the normalized set.
var transferStatusMap = map[string]domain.TransferStatus{
	"SUBMITTED":             domain.TransferStatusProcessing,
	"QUEUED":                domain.TransferStatusProcessing,
	"PENDING_SIGNATURE":     domain.TransferStatusProcessing,
	"PENDING_AUTHORIZATION": domain.TransferStatusProcessing,
	"BROADCASTING":          domain.TransferStatusProcessing,
	"CONFIRMING":            domain.TransferStatusProcessing,
	"COMPLETED":             domain.TransferStatusSuccess,
	"CANCELLED":             domain.TransferStatusFailed,
	"BLOCKED":               domain.TransferStatusFailed,
	"REJECTED":              domain.TransferStatusFailed,
	"FAILED":                domain.TransferStatusFailed,
}

// Adapter implements the sync, transfer, known-destination, and proxy
// capabilities against fireblocks' vault-account hierarchy.
type Adapter struct {
	client    *Client
	syncWidth int
}

// NewAdapter creates a fireblocks adapter.
func NewAdapter(client *Client, syncWidth int) *Adapter {
	return &Adapter{client: client, syncWidth: syncWidth}
}

func (a *Adapter) guard(cc ports.ConnectionContext) error {
	return custodian.EnsureProvider(cc.Connection, domain.ProviderFireblocks)
}

// FetchWallets maps fireblocks vault accounts onto the top resource tier.
func (a *Adapter) FetchWallets(ctx context.Context, cc ports.ConnectionContext) ([]ports.RemoteWallet, error) {
	if err := a.guard(cc); err != nil {
		return nil, err
	}
	accounts, err := a.client.ListVaultAccounts(ctx, cc.Connection.URL, cc.Credentials)
	if err != nil {
		return nil, err
	}
	remotes := make([]ports.RemoteWallet, 0, len(accounts))
	for _, acc := range accounts {
		remotes = append(remotes, ports.RemoteWallet{ExternalID: acc.ID, Label: acc.Name})
	}
	return remotes, nil
}

// FetchAccounts maps each vault account's asset wallets onto the account
// tier, one detail lookup per vault account in bounded batches.
func (a *Adapter) FetchAccounts(ctx context.Context, cc ports.ConnectionContext, walletExternalIDs []string) ([]ports.RemoteAccount, error) {
	if err := a.guard(cc); err != nil {
		return nil, err
	}
	return custodian.ForEachBounded(ctx, a.syncWidth, walletExternalIDs,
		func(ctx context.Context, accountID string) ([]ports.RemoteAccount, error) {
			detail, err := a.client.GetVaultAccount(ctx, cc.Connection.URL, cc.Credentials, accountID)
			if err != nil {
				return nil, err
			}
			accounts := make([]ports.RemoteAccount, 0, len(detail.Assets))
			for _, asset := range detail.Assets {
				accounts = append(accounts, ports.RemoteAccount{
					ExternalID:       detail.ID + compositeSep + asset.ID,
					WalletExternalID: detail.ID,
					AssetID:          asset.ID,
					Label:            detail.Name,
				})
			}
			return accounts, nil
		})
}

// FetchAddresses lists deposit addresses per asset wallet. Fireblocks
// addresses carry no id of their own, so the address string serves as the
// external id.
func (a *Adapter) FetchAddresses(ctx context.Context, cc ports.ConnectionContext, accounts []ports.RemoteAccount) ([]ports.RemoteAddress, error) {
	if err := a.guard(cc); err != nil {
		return nil, err
	}
	return custodian.ForEachBounded(ctx, a.syncWidth, accounts,
		func(ctx context.Context, account ports.RemoteAccount) ([]ports.RemoteAddress, error) {
			addrs, err := a.client.ListDepositAddresses(ctx, cc.Connection.URL, cc.Credentials,
				account.WalletExternalID, account.AssetID)
			if err != nil {
				return nil, err
			}
			remotes := make([]ports.RemoteAddress, 0, len(addrs))
			for _, addr := range addrs {
				normalized := domain.NormalizeAddress(addr.Address)
				remotes = append(remotes, ports.RemoteAddress{
					ExternalID:        normalized,
					AccountExternalID: account.ExternalID,
					Address:           normalized,
					AssetID:           addr.AssetID,
					Label:             addr.Description,
				})
			}
			return remotes, nil
		})
}

// FetchKnownDestinations flattens whitelisted external wallets, one entry
// per wallet asset.
func (a *Adapter) FetchKnownDestinations(ctx context.Context, cc ports.ConnectionContext) ([]ports.RemoteKnownDestination, error) {
	return a.ListKnownDestinations(ctx, cc)
}

// ListKnownDestinations implements the known-destination capability.
func (a *Adapter) ListKnownDestinations(ctx context.Context, cc ports.ConnectionContext) ([]ports.RemoteKnownDestination, error) {
	if err := a.guard(cc); err != nil {
		return nil, err
	}
	wallets, err := a.client.ListExternalWallets(ctx, cc.Connection.URL, cc.Credentials)
	if err != nil {
		return nil, err
	}
	var remotes []ports.RemoteKnownDestination
	for _, w := range wallets {
		for _, asset := range w.Assets {
			remotes = append(remotes, ports.RemoteKnownDestination{
				ExternalID:     w.ID + compositeSep + asset.ID,
				Address:        domain.NormalizeAddress(asset.Address),
				Classification: asset.Status,
				AssetID:        asset.ID,
				NetworkID:      asset.ID,
				Label:          w.Name,
			})
		}
	}
	return remotes, nil
}

// CreateTransfer executes a fund movement. DeductFeeFromAmount maps to the
// provider's treatAsGrossAmount flag.
func (a *Adapter) CreateTransfer(ctx context.Context, cc ports.ConnectionContext, params ports.CreateTransferParams) (*ports.RemoteTransfer, error) {
	if err := a.guard(cc); err != nil {
		return nil, err
	}
	source, err := toTxParty(params.Source)
	if err != nil {
		return nil, err
	}
	destination, err := toTxParty(params.Destination)
	if err != nil {
		return nil, err
	}
	body := createTransactionRequest{
		AssetID:            params.AssetID,
		Amount:             params.Amount,
		Source:             source,
		Destination:        destination,
		TreatAsGrossAmount: params.DeductFeeFromAmount,
		Note:               params.Memo,
		ExternalTxID:       params.IdempotenceKey,
	}
	created, err := a.client.CreateTransaction(ctx, cc.Connection.URL, cc.Credentials, body)
	if err != nil {
		return nil, err
	}
	return &ports.RemoteTransfer{ExternalID: created.ID}, nil
}

// GetTransfer queries live transaction state, mapping the status totally.
func (a *Adapter) GetTransfer(ctx context.Context, cc ports.ConnectionContext, externalID string) (*ports.RemoteTransferState, error) {
	if err := a.guard(cc); err != nil {
		return nil, err
	}
	tx, err := a.client.GetTransaction(ctx, cc.Connection.URL, cc.Credentials, externalID)
	if err != nil {
		return nil, err
	}
	status, ok := transferStatusMap[tx.Status]
	if !ok {
		return nil, apperror.ErrUnmappedProviderStatus(string(domain.ProviderFireblocks), tx.Status)
	}
	var fees []domain.TransferFee
	if tx.FeeInfo != nil {
		if tx.FeeInfo.NetworkFee != "" {
			fees = append(fees, domain.TransferFee{Type: "NETWORK", AssetID: tx.AssetID, Amount: tx.FeeInfo.NetworkFee})
		}
		if tx.FeeInfo.ServiceFee != "" {
			fees = append(fees, domain.TransferFee{Type: "SERVICE", AssetID: tx.AssetID, Amount: tx.FeeInfo.ServiceFee})
		}
	}
	return &ports.RemoteTransferState{Status: status, Fees: fees}, nil
}

// Forward relays a raw signed request to fireblocks.
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

func toTxParty(p ports.ProviderParty) (txPartyDTO, error) {
	if p.Kind == "" {
		if p.Address == "" {
			return txPartyDTO{}, apperror.ErrInvalidTransferParty("raw party has no address")
		}
		return txPartyDTO{Type: "ONE_TIME_ADDRESS", OneTimeAddress: &oneTimeAddress{Address: p.Address}}, nil
	}
	// Composite account ids resolve to the owning vault account.
	id := p.ExternalID
	if idx := strings.Index(id, compositeSep); idx > 0 {
		id = id[:idx]
	}
	if id == "" {
		return txPartyDTO{}, apperror.ErrInvalidTransferParty(fmt.Sprintf("party kind %s has no external id", p.Kind))
	}
	return txPartyDTO{Type: "VAULT_ACCOUNT", ID: id}, nil
}
