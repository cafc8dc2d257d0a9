package fireblocks

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"net/http"
	"strings"
	"testing"
	"time"

	"custody-broker/internal/adapter/custodian"
	"custody-broker/internal/core/domain"
	"custody-broker/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCredentials(t *testing.T) (domain.Credentials, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	keyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	return domain.Credentials{
		APIKey:     "test-api-key",
		PrivateKey: string(keyPEM),
	}, key
}

func parseToken(t *testing.T, signed *custodian.SignedRequest, key *rsa.PrivateKey) jwt.MapClaims {
	t.Helper()
	auth := signed.Headers.Get("Authorization")
	require.True(t, strings.HasPrefix(auth, "Bearer "))

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimPrefix(auth, "Bearer "), claims,
		func(tok *jwt.Token) (any, error) { return &key.PublicKey, nil },
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithoutClaimsValidation())
	require.NoError(t, err)
	require.True(t, token.Valid)
	return claims
}

func TestSigner_Sign_Claims(t *testing.T) {
	signer := NewSigner()
	creds, key := testCredentials(t)
	now := time.Unix(1700000000, 0)

	body := []byte(`{"assetId":"BTC"}`)
	req := &custodian.UnsignedRequest{
		URL:    "https://api.example.com/v1/transactions?limit=5",
		Method: http.MethodPost,
		Body:   body,
	}

	signed, err := signer.Sign(req, creds, now)
	require.NoError(t, err)

	assert.Equal(t, "test-api-key", signed.Headers.Get("X-API-Key"))
	assert.Equal(t, body, signed.Body)

	claims := parseToken(t, signed, key)
	assert.Equal(t, "/v1/transactions?limit=5", claims["uri"])
	assert.Equal(t, "test-api-key", claims["sub"])

	// iat is backdated to tolerate clock skew, exp bounds the window.
	assert.Equal(t, float64(1700000000-10), claims["iat"])
	assert.Equal(t, float64(1700000000-10+30), claims["exp"])

	sum := sha256.Sum256(body)
	assert.Equal(t, hex.EncodeToString(sum[:]), claims["bodyHash"])

	_, err = uuid.Parse(claims["nonce"].(string))
	assert.NoError(t, err)
}

func TestSigner_Sign_NonceUniquePerCall(t *testing.T) {
	signer := NewSigner()
	creds, key := testCredentials(t)
	now := time.Unix(1700000000, 0)

	req := &custodian.UnsignedRequest{
		URL:    "https://api.example.com/v1/vault/accounts_paged",
		Method: http.MethodGet,
	}

	first, err := signer.Sign(req, creds, now)
	require.NoError(t, err)
	second, err := signer.Sign(req, creds, now)
	require.NoError(t, err)

	assert.NotEqual(t,
		parseToken(t, first, key)["nonce"],
		parseToken(t, second, key)["nonce"])
}

func TestSigner_Sign_EmptyBodyHash(t *testing.T) {
	signer := NewSigner()
	creds, key := testCredentials(t)

	req := &custodian.UnsignedRequest{
		URL:    "https://api.example.com/v1/vault/accounts_paged",
		Method: http.MethodGet,
	}

	signed, err := signer.Sign(req, creds, time.Unix(1700000000, 0))
	require.NoError(t, err)

	sum := sha256.Sum256(nil)
	assert.Equal(t, hex.EncodeToString(sum[:]), parseToken(t, signed, key)["bodyHash"])
}

func TestSigner_Sign_BadPrivateKey(t *testing.T) {
	signer := NewSigner()
	creds := domain.Credentials{APIKey: "k", PrivateKey: "not a pem key"}

	req := &custodian.UnsignedRequest{
		URL:    "https://api.example.com/v1/vault/accounts_paged",
		Method: http.MethodGet,
	}

	_, err := signer.Sign(req, creds, time.Now())
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CON_004", appErr.Code)
}

func TestSigner_Sign_MalformedRequest(t *testing.T) {
	signer := NewSigner()
	creds, _ := testCredentials(t)

	_, err := signer.Sign(&custodian.UnsignedRequest{URL: "https://api.example.com/v1/x"}, creds, time.Now())
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SGN_001", appErr.Code)
}
