package bitgo

import (
	"net/http"
	"testing"
	"time"

	"custody-broker/internal/adapter/custodian"
	"custody-broker/internal/core/domain"
	"custody-broker/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_Sign_BearerTokenOnly(t *testing.T) {
	signer := NewSigner()
	creds := domain.Credentials{AccessToken: "v2x-token", WalletPassphrase: "hunter2"}

	body := []byte(`{"address":"bc1q"}`)
	signed, err := signer.Sign(&custodian.UnsignedRequest{
		URL:    "https://api.example.com/api/v2/wallets",
		Method: http.MethodPost,
		Body:   body,
	}, creds, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "Bearer v2x-token", signed.Headers.Get("Authorization"))
	assert.Equal(t, body, signed.Body)
	// The passphrase authorizes spends in the body, never in a header.
	assert.Len(t, signed.Headers, 1)
}

func TestSigner_Sign_MissingToken(t *testing.T) {
	signer := NewSigner()

	_, err := signer.Sign(&custodian.UnsignedRequest{
		URL:    "https://api.example.com/api/v2/wallets",
		Method: http.MethodGet,
	}, domain.Credentials{}, time.Now())

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CON_004", appErr.Code)
}

func TestSigner_Sign_MalformedRequest(t *testing.T) {
	signer := NewSigner()
	creds := domain.Credentials{AccessToken: "v2x-token"}

	_, err := signer.Sign(&custodian.UnsignedRequest{Method: http.MethodGet}, creds, time.Now())

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SGN_001", appErr.Code)
}
