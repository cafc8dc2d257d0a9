package postgres

import (
	"context"
	"testing"
	"time"

	"custody-broker/internal/core/domain"
	"custody-broker/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransfer() *domain.Transfer {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Transfer{
		ID:             uuid.New(),
		ClientID:       uuid.New(),
		ConnectionID:   uuid.New(),
		Provider:       domain.ProviderFireblocks,
		ExternalID:     "tx-42",
		IdempotenceKey: "key-42",
		Source:         domain.TransferParty{Type: domain.PartyTypeAccount, ID: uuid.New()},
		Destination:    domain.TransferParty{Address: "0xdest"},
		AssetID:        "ETH",
		GrossAmount:    "2.5",
		FeeAttribution: domain.FeeOnTop,
		Memo:           "settlement",
		CreatedAt:      now,
	}
}

func transferColumnNames() []string {
	return []string{"id", "client_id", "connection_id", "provider", "external_id", "idempotence_key",
		"source_type", "source_id", "source_address", "destination_type", "destination_id", "destination_address",
		"asset_id", "network_id", "gross_amount", "network_fee_attribution", "memo", "created_at"}
}

func transferRow(tr *domain.Transfer) *pgxmock.Rows {
	return pgxmock.NewRows(transferColumnNames()).AddRow(
		tr.ID, tr.ClientID, tr.ConnectionID, tr.Provider, tr.ExternalID, tr.IdempotenceKey,
		tr.Source.Type, nullableUUID(tr.Source.ID), tr.Source.Address,
		tr.Destination.Type, nullableUUID(tr.Destination.ID), tr.Destination.Address,
		tr.AssetID, tr.NetworkID, tr.GrossAmount, tr.FeeAttribution, tr.Memo, tr.CreatedAt,
	)
}

func TestTransferRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransferRepo(mock)
	tr := newTestTransfer()

	mock.ExpectExec("INSERT INTO transfers").
		WithArgs(tr.ID, tr.ClientID, tr.ConnectionID, tr.Provider, tr.ExternalID, tr.IdempotenceKey,
			tr.Source.Type, nullableUUID(tr.Source.ID), tr.Source.Address,
			tr.Destination.Type, nullableUUID(tr.Destination.ID), tr.Destination.Address,
			tr.AssetID, tr.NetworkID, tr.GrossAmount, tr.FeeAttribution, tr.Memo, tr.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), tr)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepo_Create_UniqueViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransferRepo(mock)
	tr := newTestTransfer()

	mock.ExpectExec("INSERT INTO transfers").
		WithArgs(tr.ID, tr.ClientID, tr.ConnectionID, tr.Provider, tr.ExternalID, tr.IdempotenceKey,
			tr.Source.Type, nullableUUID(tr.Source.ID), tr.Source.Address,
			tr.Destination.Type, nullableUUID(tr.Destination.ID), tr.Destination.Address,
			tr.AssetID, tr.NetworkID, tr.GrossAmount, tr.FeeAttribution, tr.Memo, tr.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

	err = repo.Create(context.Background(), tr)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "TRF_001", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepo_GetByIdempotenceKey(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransferRepo(mock)
	tr := newTestTransfer()

	mock.ExpectQuery("SELECT .+ FROM transfers WHERE client_id .+ idempotence_key").
		WithArgs(tr.ClientID, tr.IdempotenceKey).
		WillReturnRows(transferRow(tr))

	result, err := repo.GetByIdempotenceKey(context.Background(), tr.ClientID, tr.IdempotenceKey)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, tr.ID, result.ID)
	assert.Equal(t, tr.Source.ID, result.Source.ID)
	assert.Equal(t, uuid.Nil, result.Destination.ID, "raw destination has no entity id")
	assert.Equal(t, "0xdest", result.Destination.Address)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransferRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM transfers WHERE client_id").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(transferColumnNames()))

	result, err := repo.GetByID(context.Background(), uuid.New(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepo_CreateIntent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransferRepo(mock)
	intent := &domain.TransferIntent{
		ID:             uuid.New(),
		ClientID:       uuid.New(),
		ConnectionID:   uuid.New(),
		IdempotenceKey: "key-42",
		State:          domain.IntentStateSubmitting,
		CreatedAt:      time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO transfer_intents").
		WithArgs(intent.ID, intent.ClientID, intent.ConnectionID, intent.IdempotenceKey,
			intent.State, intent.ExternalID, intent.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.CreateIntent(context.Background(), intent)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepo_CreateIntent_Conflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransferRepo(mock)
	intent := &domain.TransferIntent{
		ID:             uuid.New(),
		ClientID:       uuid.New(),
		ConnectionID:   uuid.New(),
		IdempotenceKey: "key-dup",
		State:          domain.IntentStateSubmitting,
		CreatedAt:      time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO transfer_intents").
		WithArgs(intent.ID, intent.ClientID, intent.ConnectionID, intent.IdempotenceKey,
			intent.State, intent.ExternalID, intent.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "transfer_intents_client_key_idx"})

	err = repo.CreateIntent(context.Background(), intent)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "TRF_001", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepo_CompleteIntent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransferRepo(mock)
	intentID := uuid.New()

	mock.ExpectExec("UPDATE transfer_intents SET").
		WithArgs(domain.IntentStateCompleted, "tx-42", intentID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.CompleteIntent(context.Background(), intentID, "tx-42")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
