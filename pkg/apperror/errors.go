package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Connections (CON) ----

func ErrConnectionNotFound(clientID, connectionID string) *AppError {
	return New("CON_001",
		fmt.Sprintf("Connection %s not found for client %s", connectionID, clientID),
		http.StatusNotFound)
}

func ErrConnectionInvalidStatus(clientID, connectionID, from, to string) *AppError {
	return New("CON_002",
		fmt.Sprintf("Connection %s (client %s) cannot transition from %s to %s", connectionID, clientID, from, to),
		http.StatusUnprocessableEntity)
}

func ErrConnectionProviderMismatch(connectionID, have, want string) *AppError {
	return New("CON_003",
		fmt.Sprintf("Connection %s is for provider %s, adapter expects %s", connectionID, have, want),
		http.StatusUnprocessableEntity)
}

func ErrInvalidCredentials(provider string, err error) *AppError {
	return Wrap("CON_004",
		fmt.Sprintf("Credentials do not match the %s schema", provider),
		http.StatusUnprocessableEntity, err)
}

func ErrConnectionNotActive(connectionID, status string) *AppError {
	return New("CON_005",
		fmt.Sprintf("Connection %s is %s, operation requires an active connection", connectionID, status),
		http.StatusUnprocessableEntity)
}

// ---- Provider URLs (URL) ----

func ErrURLParsing(url string) *AppError {
	return New("URL_001",
		fmt.Sprintf("No versioned path segment (/vN/...) found in provider URL %q", url),
		http.StatusInternalServerError)
}

// ---- Provider calls (PRV) ----

func ErrProviderHTTP(provider string, status int, body string) *AppError {
	return New("PRV_001",
		fmt.Sprintf("Provider %s responded %d: %s", provider, status, body),
		http.StatusBadGateway)
}

func ErrUnmappedProviderStatus(provider, status string) *AppError {
	return New("PRV_002",
		fmt.Sprintf("Provider %s returned unmapped transfer status %q", provider, status),
		http.StatusInternalServerError)
}

func ErrProxyNotSupported(provider string) *AppError {
	return New("PRV_003",
		fmt.Sprintf("Proxy forwarding is not implemented for provider %s", provider),
		http.StatusNotImplemented)
}

func ErrProviderSchema(provider string, err error) *AppError {
	return Wrap("PRV_004",
		fmt.Sprintf("Provider %s response did not match the expected schema", provider),
		http.StatusBadGateway, err)
}

func ErrCapabilityNotSupported(provider, capability string) *AppError {
	return New("PRV_005",
		fmt.Sprintf("Provider %s does not support capability %s", provider, capability),
		http.StatusNotImplemented)
}

// ---- Transfers (TRF) ----

func ErrIdempotenceConflict(key string) *AppError {
	return New("TRF_001",
		fmt.Sprintf("Idempotence key %q has already been used", key),
		http.StatusConflict)
}

func ErrInvalidTransferParty(reason string) *AppError {
	return New("TRF_002", fmt.Sprintf("Invalid transfer party: %s", reason), http.StatusBadRequest)
}

func ErrInvalidAmount(amount string) *AppError {
	return New("TRF_003", fmt.Sprintf("Invalid transfer amount %q", amount), http.StatusBadRequest)
}

func ErrTransferNotFound(transferID string) *AppError {
	return New("TRF_004", fmt.Sprintf("Transfer %s not found", transferID), http.StatusNotFound)
}

// ---- Signing (SGN) ----

func ErrMalformedSignRequest(reason string) *AppError {
	return New("SGN_001", fmt.Sprintf("Cannot sign request: %s", reason), http.StatusInternalServerError)
}

// ---- Rate limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrSealingFailure(err error) *AppError {
	return Wrap("SYS_002", "Credential sealing failure", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}
