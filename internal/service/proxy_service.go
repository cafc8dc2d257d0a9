package service

import (
	"context"

	"custody-broker/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type proxyService struct {
	registry ports.ConnectionRegistry
	adapters ports.AdapterRegistry
	log      zerolog.Logger
}

// NewProxyService creates the raw-request forwarder.
func NewProxyService(
	registry ports.ConnectionRegistry,
	adapters ports.AdapterRegistry,
	log zerolog.Logger,
) ports.ProxyService {
	return &proxyService{
		registry: registry,
		adapters: adapters,
		log:      log,
	}
}

// Forward signs and relays an arbitrary request, returning the provider's
// status and body untouched. Providers without proxy support fail with a
// typed error before any network call.
func (s *proxyService) Forward(ctx context.Context, clientID, connectionID uuid.UUID, req ports.ProxyRequest) (*ports.ProxyResponse, error) {
	cc, err := s.registry.FindWithCredentialsByID(ctx, clientID, connectionID)
	if err != nil {
		return nil, err
	}
	adapter, err := s.adapters.Proxy(cc.Connection.Provider)
	if err != nil {
		return nil, err
	}

	resp, err := adapter.Forward(ctx, *cc, req)
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("connection_id", connectionID.String()).
		Str("provider", string(cc.Connection.Provider)).
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status", resp.StatusCode).
		Msg("proxied provider request")

	return resp, nil
}
