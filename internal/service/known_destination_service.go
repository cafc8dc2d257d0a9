package service

import (
	"context"
	"time"

	"custody-broker/internal/core/domain"
	"custody-broker/internal/core/ports"

	"github.com/google/uuid"
)

type knownDestinationService struct {
	registry ports.ConnectionRegistry
	adapters ports.AdapterRegistry
}

// NewKnownDestinationService creates the known-destination read-through.
func NewKnownDestinationService(
	registry ports.ConnectionRegistry,
	adapters ports.AdapterRegistry,
) ports.KnownDestinationService {
	return &knownDestinationService{
		registry: registry,
		adapters: adapters,
	}
}

// FindAll lists the provider's attested destinations live; local rows only
// change through sync passes.
func (s *knownDestinationService) FindAll(ctx context.Context, clientID, connectionID uuid.UUID) ([]domain.KnownDestination, error) {
	cc, err := s.registry.FindWithCredentialsByID(ctx, clientID, connectionID)
	if err != nil {
		return nil, err
	}
	adapter, err := s.adapters.KnownDestinations(cc.Connection.Provider)
	if err != nil {
		return nil, err
	}

	remotes, err := adapter.ListKnownDestinations(ctx, *cc)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	out := make([]domain.KnownDestination, 0, len(remotes))
	for _, r := range remotes {
		out = append(out, domain.KnownDestination{
			ClientID:               clientID,
			ConnectionID:           connectionID,
			Provider:               cc.Connection.Provider,
			ExternalID:             r.ExternalID,
			Address:                domain.NormalizeAddress(r.Address),
			ExternalClassification: r.Classification,
			AssetID:                r.AssetID,
			NetworkID:              r.NetworkID,
			Label:                  r.Label,
			CreatedAt:              now,
			UpdatedAt:              now,
		})
	}
	return out, nil
}
