package custodian

import (
	"custody-broker/internal/core/domain"
	"custody-broker/internal/core/ports"
	"custody-broker/pkg/apperror"
)

// Capabilities is a provider's implemented adapter set. Nil entries mean
// the provider does not support that capability.
type Capabilities struct {
	Sync              ports.SyncAdapter
	Transfer          ports.TransferAdapter
	KnownDestinations ports.KnownDestinationAdapter
	Proxy             ports.ProxyAdapter
}

// Registry implements ports.AdapterRegistry, keyed by provider.
type Registry struct {
	providers map[domain.Provider]Capabilities
}

// NewRegistry creates an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[domain.Provider]Capabilities)}
}

// Register installs a provider's capability set.
func (r *Registry) Register(provider domain.Provider, caps Capabilities) {
	r.providers[provider] = caps
}

// Sync resolves the synchronization adapter for a provider.
func (r *Registry) Sync(provider domain.Provider) (ports.SyncAdapter, error) {
	caps, ok := r.providers[provider]
	if !ok || caps.Sync == nil {
		return nil, apperror.ErrCapabilityNotSupported(string(provider), "sync")
	}
	return caps.Sync, nil
}

// Transfer resolves the transfer adapter for a provider.
func (r *Registry) Transfer(provider domain.Provider) (ports.TransferAdapter, error) {
	caps, ok := r.providers[provider]
	if !ok || caps.Transfer == nil {
		return nil, apperror.ErrCapabilityNotSupported(string(provider), "transfer")
	}
	return caps.Transfer, nil
}

// KnownDestinations resolves the known-destination adapter for a provider.
func (r *Registry) KnownDestinations(provider domain.Provider) (ports.KnownDestinationAdapter, error) {
	caps, ok := r.providers[provider]
	if !ok || caps.KnownDestinations == nil {
		return nil, apperror.ErrCapabilityNotSupported(string(provider), "known-destinations")
	}
	return caps.KnownDestinations, nil
}

// Proxy resolves the proxy adapter for a provider. Providers without raw
// forwarding (bitgo) fail with a typed not-implemented error.
func (r *Registry) Proxy(provider domain.Provider) (ports.ProxyAdapter, error) {
	caps, ok := r.providers[provider]
	if !ok || caps.Proxy == nil {
		return nil, apperror.ErrProxyNotSupported(string(provider))
	}
	return caps.Proxy, nil
}
