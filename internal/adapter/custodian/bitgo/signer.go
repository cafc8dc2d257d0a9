package bitgo

import (
	"errors"
	"net/http"
	"time"

	"custody-broker/internal/adapter/custodian"
	"custody-broker/internal/core/domain"
	"custody-broker/pkg/apperror"
)

// Signer attaches the long-lived API access token. The MPC custodian does
// no per-request message construction; authorization for spends happens
// inside the request body via the wallet passphrase.
type Signer struct{}

// NewSigner creates a bitgo request signer.
func NewSigner() *Signer {
	return &Signer{}
}

// Sign sets the bearer token header.
func (s *Signer) Sign(req *custodian.UnsignedRequest, creds domain.Credentials, _ time.Time) (*custodian.SignedRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if creds.AccessToken == "" {
		return nil, apperror.ErrInvalidCredentials(string(domain.ProviderBitGo),
			errors.New("access token is empty"))
	}

	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+creds.AccessToken)

	return &custodian.SignedRequest{Headers: headers, Body: req.Body}, nil
}
