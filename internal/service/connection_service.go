package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"custody-broker/internal/core/domain"
	"custody-broker/internal/core/ports"
	"custody-broker/pkg/apperror"

	"github.com/google/uuid"
	"golang.org/x/crypto/nacl/box"
)

type connectionService struct {
	connRepo    ports.ConnectionRepository
	cipher      ports.CredentialCipher
	defaultURLs map[domain.Provider]string
}

// NewConnectionService creates the connection registry. defaultURLs maps
// providers to their configured base URL, used when activation does not
// supply one.
func NewConnectionService(
	connRepo ports.ConnectionRepository,
	cipher ports.CredentialCipher,
	defaultURLs map[domain.Provider]string,
) ports.ConnectionRegistry {
	return &connectionService{
		connRepo:    connRepo,
		cipher:      cipher,
		defaultURLs: defaultURLs,
	}
}

func (s *connectionService) Create(ctx context.Context, params ports.CreateConnectionParams) (*domain.Connection, error) {
	if !params.Provider.Valid() {
		return nil, apperror.Validation(fmt.Sprintf("unknown provider %q", params.Provider))
	}

	// Each connection gets its own sealing keypair. The caller encrypts
	// credentials to the public key; the private key only exists wrapped.
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, apperror.ErrSealingFailure(err)
	}
	encryptedPriv, err := s.cipher.Encrypt(priv[:])
	if err != nil {
		return nil, apperror.ErrSealingFailure(err)
	}

	now := time.Now().UTC()
	conn := &domain.Connection{
		ID:              uuid.New(),
		ClientID:        params.ClientID,
		Provider:        params.Provider,
		Status:          domain.ConnectionStatusPending,
		Label:           params.Label,
		PublicKey:       base64.StdEncoding.EncodeToString(pub[:]),
		EncryptedBoxKey: encryptedPriv,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.connRepo.Create(ctx, conn); err != nil {
		return nil, apperror.InternalError(err)
	}
	return conn, nil
}

func (s *connectionService) Activate(ctx context.Context, params ports.ActivateConnectionParams) (*domain.Connection, error) {
	conn, err := s.getConnection(ctx, params.ClientID, params.ConnectionID)
	if err != nil {
		return nil, err
	}
	if !conn.CanTransitionTo(domain.ConnectionStatusActive) {
		return nil, apperror.ErrConnectionInvalidStatus(
			params.ClientID.String(), params.ConnectionID.String(),
			string(conn.Status), string(domain.ConnectionStatusActive))
	}
	if params.URL == "" {
		params.URL = s.defaultURLs[conn.Provider]
	}
	if params.URL == "" {
		return nil, apperror.Validation("an active connection requires a provider url")
	}
	if len(params.SealedCredentials) == 0 {
		return nil, apperror.Validation("an active connection requires sealed credentials")
	}

	conn.URL = params.URL
	conn.SealedCredentials = params.SealedCredentials

	// Unseal once now so a credential blob that does not open or does not
	// match the provider schema fails activation instead of the first call.
	if _, err := s.unseal(conn); err != nil {
		return nil, err
	}

	conn.Status = domain.ConnectionStatusActive
	conn.UpdatedAt = time.Now().UTC()
	if err := s.connRepo.Update(ctx, conn); err != nil {
		return nil, apperror.InternalError(err)
	}
	return redacted(conn), nil
}

func (s *connectionService) Revoke(ctx context.Context, clientID, connectionID uuid.UUID) (*domain.Connection, error) {
	conn, err := s.getConnection(ctx, clientID, connectionID)
	if err != nil {
		return nil, err
	}
	if !conn.CanTransitionTo(domain.ConnectionStatusRevoked) {
		return nil, apperror.ErrConnectionInvalidStatus(
			clientID.String(), connectionID.String(),
			string(conn.Status), string(domain.ConnectionStatusRevoked))
	}

	now := time.Now().UTC()
	conn.Status = domain.ConnectionStatusRevoked
	conn.RevokedAt = &now
	conn.UpdatedAt = now
	// Credentials are dropped irrecoverably: without the wrapped private
	// key the sealed blob can never be opened again.
	conn.SealedCredentials = nil
	conn.EncryptedBoxKey = ""

	if err := s.connRepo.Update(ctx, conn); err != nil {
		return nil, apperror.InternalError(err)
	}
	return redacted(conn), nil
}

func (s *connectionService) List(ctx context.Context, clientID uuid.UUID) ([]domain.Connection, error) {
	conns, err := s.connRepo.List(ctx, clientID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	for i := range conns {
		if conns[i].Status != domain.ConnectionStatusPending {
			conns[i].PublicKey = ""
		}
	}
	return conns, nil
}

func (s *connectionService) FindWithCredentialsByID(ctx context.Context, clientID, connectionID uuid.UUID) (*ports.ConnectionContext, error) {
	conn, err := s.getConnection(ctx, clientID, connectionID)
	if err != nil {
		return nil, err
	}
	if !conn.IsActive() {
		return nil, apperror.ErrConnectionNotActive(connectionID.String(), string(conn.Status))
	}
	creds, err := s.unseal(conn)
	if err != nil {
		return nil, err
	}
	return &ports.ConnectionContext{Connection: *conn, Credentials: *creds}, nil
}

func (s *connectionService) getConnection(ctx context.Context, clientID, connectionID uuid.UUID) (*domain.Connection, error) {
	conn, err := s.connRepo.GetByID(ctx, clientID, connectionID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if conn == nil {
		return nil, apperror.ErrConnectionNotFound(clientID.String(), connectionID.String())
	}
	return conn, nil
}

// unseal opens the sealed credential blob with the connection's keypair and
// checks it against the provider's credential schema.
func (s *connectionService) unseal(conn *domain.Connection) (*domain.Credentials, error) {
	privBytes, err := s.cipher.Decrypt(conn.EncryptedBoxKey)
	if err != nil {
		return nil, apperror.ErrSealingFailure(fmt.Errorf("unwrapping box key: %w", err))
	}
	pubBytes, err := base64.StdEncoding.DecodeString(conn.PublicKey)
	if err != nil {
		return nil, apperror.ErrSealingFailure(fmt.Errorf("decoding public key: %w", err))
	}
	if len(privBytes) != 32 || len(pubBytes) != 32 {
		return nil, apperror.ErrSealingFailure(fmt.Errorf("box key material has wrong size"))
	}
	var pub, priv [32]byte
	copy(pub[:], pubBytes)
	copy(priv[:], privBytes)

	plaintext, ok := box.OpenAnonymous(nil, conn.SealedCredentials, &pub, &priv)
	if !ok {
		return nil, apperror.ErrInvalidCredentials(string(conn.Provider),
			fmt.Errorf("sealed credentials do not open with the connection key"))
	}

	var creds domain.Credentials
	if err := json.Unmarshal(plaintext, &creds); err != nil {
		return nil, apperror.ErrInvalidCredentials(string(conn.Provider), err)
	}
	if err := creds.Validate(conn.Provider); err != nil {
		return nil, apperror.ErrInvalidCredentials(string(conn.Provider), err)
	}
	return &creds, nil
}

// redacted hides the sealing public key once the connection left pending.
func redacted(conn *domain.Connection) *domain.Connection {
	out := *conn
	if out.Status != domain.ConnectionStatusPending {
		out.PublicKey = ""
	}
	return &out
}
