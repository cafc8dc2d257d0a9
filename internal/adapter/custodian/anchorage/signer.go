package anchorage

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"custody-broker/internal/adapter/custodian"
	"custody-broker/internal/core/domain"
	"custody-broker/pkg/apperror"
)

const (
	headerAccessKey = "Api-Access-Key"
	headerSignature = "Api-Signature"
	headerTimestamp = "Api-Timestamp"
)

var versionedPathRe = regexp.MustCompile(`/v\d+/`)

// ParseEndpoint returns the suffix of rawURL starting at the first
// versioned path segment (/vN/...), query string included. A URL without
// such a segment is a caller bug or a provider URL format change, so the
// failure is a fatal typed error rather than a silent default.
func ParseEndpoint(rawURL string) (string, error) {
	loc := versionedPathRe.FindStringIndex(rawURL)
	if loc == nil {
		return "", apperror.ErrURLParsing(rawURL)
	}
	return rawURL[loc[0]:], nil
}

// Signer implements the vault custodian's Ed25519 request protocol.
// Canonical message: unixSeconds + METHOD + versionedPath(+query) + body,
// signed over its hex encoding. Deterministic for a fixed timestamp.
type Signer struct{}

// NewSigner creates an anchorage request signer.
func NewSigner() *Signer {
	return &Signer{}
}

// Sign produces the access-key, signature, and timestamp headers.
func (s *Signer) Sign(req *custodian.UnsignedRequest, creds domain.Credentials, now time.Time) (*custodian.SignedRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	endpoint, err := ParseEndpoint(req.URL)
	if err != nil {
		return nil, err
	}

	seed, err := hex.DecodeString(creds.SigningKey)
	if err != nil {
		return nil, apperror.ErrInvalidCredentials(string(domain.ProviderAnchorage),
			fmt.Errorf("signing key is not hex: %w", err))
	}
	if len(seed) != ed25519.SeedSize {
		return nil, apperror.ErrInvalidCredentials(string(domain.ProviderAnchorage),
			fmt.Errorf("signing key must be %d bytes, got %d", ed25519.SeedSize, len(seed)))
	}

	timestamp := strconv.FormatInt(now.Unix(), 10)
	message := timestamp + req.Method + endpoint
	if req.Method != http.MethodGet && len(req.Body) > 0 {
		message += string(req.Body)
	}

	key := ed25519.NewKeyFromSeed(seed)
	signature := ed25519.Sign(key, []byte(hex.EncodeToString([]byte(message))))

	headers := http.Header{}
	headers.Set(headerAccessKey, creds.AccessKey)
	headers.Set(headerSignature, hex.EncodeToString(signature))
	headers.Set(headerTimestamp, timestamp)

	return &custodian.SignedRequest{Headers: headers, Body: req.Body}, nil
}
