package fireblocks

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"custody-broker/internal/adapter/custodian"
	"custody-broker/internal/core/domain"
	"custody-broker/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	headerAPIKey = "X-API-Key"

	// tokenLifetime bounds each token's validity window.
	tokenLifetime = 30 * time.Second
	// issuedAtSkew backdates iat to tolerate clock skew between the
	// caller and the provider.
	issuedAtSkew = 10 * time.Second
)

// Signer implements the hot-wallet custodian's per-request JWT protocol:
// RS256 over claims {uri, nonce, iat, exp, sub, bodyHash}. The nonce makes
// every signed call unique, even on retry.
type Signer struct{}

// NewSigner creates a fireblocks request signer.
func NewSigner() *Signer {
	return &Signer{}
}

// Sign produces the API-key and bearer-token headers.
func (s *Signer) Sign(req *custodian.UnsignedRequest, creds domain.Credentials, now time.Time) (*custodian.SignedRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	parsed, err := url.Parse(req.URL)
	if err != nil {
		return nil, apperror.ErrMalformedSignRequest(fmt.Sprintf("unparsable url %q", req.URL))
	}
	uri := parsed.Path
	if parsed.RawQuery != "" {
		uri += "?" + parsed.RawQuery
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(creds.PrivateKey))
	if err != nil {
		return nil, apperror.ErrInvalidCredentials(string(domain.ProviderFireblocks),
			fmt.Errorf("private key is not a PEM RSA key: %w", err))
	}

	bodyHash := sha256.Sum256(req.Body)

	iat := now.Add(-issuedAtSkew)
	claims := jwt.MapClaims{
		"uri":      uri,
		"nonce":    uuid.NewString(),
		"iat":      iat.Unix(),
		"exp":      iat.Add(tokenLifetime).Unix(),
		"sub":      creds.APIKey,
		"bodyHash": hex.EncodeToString(bodyHash[:]),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return nil, apperror.Wrap("SGN_001", "Cannot sign request: token signing failed",
			http.StatusInternalServerError, err)
	}

	headers := http.Header{}
	headers.Set(headerAPIKey, creds.APIKey)
	headers.Set("Authorization", "Bearer "+token)

	return &custodian.SignedRequest{Headers: headers, Body: req.Body}, nil
}
