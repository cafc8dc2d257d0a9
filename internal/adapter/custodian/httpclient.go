package custodian

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"custody-broker/internal/core/domain"
	"custody-broker/pkg/apperror"
)

const maxErrorBodyBytes = 4 << 10

// HTTPDoer is the outbound transport collaborator.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client signs and executes provider requests with strict response decoding.
// One Client is shared by all adapters of a provider.
type Client struct {
	Provider domain.Provider
	Signer   Signer
	Doer     HTTPDoer
}

// Do signs req, executes it, and decodes a successful JSON response into
// out. A non-2xx response becomes a ProviderHTTP error wrapping the raw
// status and body; a schema mismatch on a 2xx body is a fatal parse error.
func (c *Client) Do(ctx context.Context, creds domain.Credentials, req *UnsignedRequest, out any) error {
	if err := req.Validate(); err != nil {
		return err
	}

	signed, err := c.Signer.Sign(req, creds, time.Now().UTC())
	if err != nil {
		return err
	}

	var bodyReader io.Reader
	if len(signed.Body) > 0 {
		bodyReader = bytes.NewReader(signed.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("build %s request: %w", c.Provider, err))
	}
	for key, values := range signed.Headers {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	if len(signed.Body) > 0 && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Doer.Do(httpReq)
	if err != nil {
		return apperror.Wrap("PRV_001", fmt.Sprintf("Provider %s request failed", c.Provider),
			http.StatusBadGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return apperror.ErrProviderHTTP(string(c.Provider), resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}

	dec := json.NewDecoder(resp.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return apperror.ErrProviderSchema(string(c.Provider), err)
	}
	return nil
}

// DoRaw signs and executes req without interpreting the response beyond
// reading it. Used by the proxy capability: the caller gets the provider's
// status and body verbatim, success or not.
func (c *Client) DoRaw(ctx context.Context, creds domain.Credentials, req *UnsignedRequest) (int, []byte, error) {
	if err := req.Validate(); err != nil {
		return 0, nil, err
	}

	signed, err := c.Signer.Sign(req, creds, time.Now().UTC())
	if err != nil {
		return 0, nil, err
	}

	var bodyReader io.Reader
	if len(signed.Body) > 0 {
		bodyReader = bytes.NewReader(signed.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return 0, nil, apperror.InternalError(fmt.Errorf("build %s request: %w", c.Provider, err))
	}
	for key, values := range signed.Headers {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	resp, err := c.Doer.Do(httpReq)
	if err != nil {
		return 0, nil, apperror.Wrap("PRV_001", fmt.Sprintf("Provider %s request failed", c.Provider),
			http.StatusBadGateway, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, apperror.Wrap("PRV_001", fmt.Sprintf("Provider %s response read failed", c.Provider),
			http.StatusBadGateway, err)
	}
	return resp.StatusCode, body, nil
}
