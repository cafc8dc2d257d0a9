package custodian

import (
	"net/http"
	"time"

	"custody-broker/internal/core/domain"
	"custody-broker/pkg/apperror"
)

// UnsignedRequest is a provider HTTP request descriptor before signing.
type UnsignedRequest struct {
	URL    string
	Method string
	Body   []byte // nil for body-less methods
}

// Validate rejects malformed descriptors before any signing is attempted.
func (r *UnsignedRequest) Validate() error {
	if r == nil {
		return apperror.ErrMalformedSignRequest("nil request")
	}
	if r.URL == "" {
		return apperror.ErrMalformedSignRequest("missing url")
	}
	if r.Method == "" {
		return apperror.ErrMalformedSignRequest("missing method")
	}
	return nil
}

// SignedRequest carries the headers and body to send to the provider.
type SignedRequest struct {
	Headers http.Header
	Body    []byte
}

// Signer turns an unsigned request descriptor into a signed one using
// provider-specific cryptography and time-bounded validity.
type Signer interface {
	Sign(req *UnsignedRequest, creds domain.Credentials, now time.Time) (*SignedRequest, error)
}

// EnsureProvider guards an adapter against being handed a connection for a
// different provider. A mismatch is fatal, never a silent coercion.
func EnsureProvider(conn domain.Connection, want domain.Provider) error {
	if conn.Provider != want {
		return apperror.ErrConnectionProviderMismatch(conn.ID.String(), string(conn.Provider), string(want))
	}
	return nil
}
