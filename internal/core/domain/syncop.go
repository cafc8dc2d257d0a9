package domain

import "github.com/google/uuid"

// SyncOpType discriminates the reconciliation operation variants.
type SyncOpType string

const (
	SyncOpCreate SyncOpType = "CREATE"
	SyncOpUpdate SyncOpType = "UPDATE"
	SyncOpSkip   SyncOpType = "SKIP"
	SyncOpFailed SyncOpType = "FAILED"
	SyncOpDelete SyncOpType = "DELETE"
)

// SyncOperation is a single proposed mutation produced by reconciliation.
// It is a proposal, not a side effect: the persistence collaborator applies
// CREATE/UPDATE/DELETE and ignores SKIP/FAILED except for logging.
type SyncOperation[E any] struct {
	Type SyncOpType `json:"type"`

	// Create / Update payloads, set for the matching Type only.
	Create *E `json:"create,omitempty"`
	Update *E `json:"update,omitempty"`

	// SKIP / FAILED diagnostics.
	ExternalID string            `json:"external_id,omitempty"`
	Message    string            `json:"message,omitempty"`
	Context    map[string]string `json:"context,omitempty"`

	// DELETE target.
	EntityID uuid.UUID `json:"entity_id,omitempty"`
}

// SyncResult holds the full ordered output of one reconciliation pass,
// one operation list per resource tier.
type SyncResult struct {
	Wallets           []SyncOperation[Wallet]           `json:"wallets"`
	Accounts          []SyncOperation[Account]          `json:"accounts"`
	Addresses         []SyncOperation[Address]          `json:"addresses"`
	KnownDestinations []SyncOperation[KnownDestination] `json:"known_destinations"`
}

// Mutations counts the operations the persistence collaborator will apply.
func (r *SyncResult) Mutations() int {
	n := 0
	n += countMutations(r.Wallets)
	n += countMutations(r.Accounts)
	n += countMutations(r.Addresses)
	n += countMutations(r.KnownDestinations)
	return n
}

func countMutations[E any](ops []SyncOperation[E]) int {
	n := 0
	for _, op := range ops {
		switch op.Type {
		case SyncOpCreate, SyncOpUpdate, SyncOpDelete:
			n++
		}
	}
	return n
}
