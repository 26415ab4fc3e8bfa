package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string   `json:"error_code"`
	Message    string   `json:"message"`
	HTTPStatus int      `json:"-"`
	Details    []string `json:"details,omitempty"`
	Err        error    `json:"-"` // Wrapped internal error (not exposed to client)
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

// HasCode reports whether err is an *AppError carrying code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// ---- Validation (VAL) ----

func ErrInvalidAddress(addr string) *AppError {
	return New("VAL_001", fmt.Sprintf("Invalid address format: %s", addr), http.StatusBadRequest)
}

func ErrInvalidAmount(amount string) *AppError {
	return New("VAL_002", fmt.Sprintf("Invalid amount: %q", amount), http.StatusBadRequest)
}

func ErrUnsupportedAction(action string) *AppError {
	return New("VAL_003", fmt.Sprintf("Unsupported action: %s", action), http.StatusBadRequest)
}

// Validation returns a generic VAL_000 validation error.
func Validation(message string) *AppError {
	return New("VAL_000", message, http.StatusBadRequest)
}

// ---- Policy (POL) ----

// ErrPolicyViolation joins the violation messages into a single rejection.
func ErrPolicyViolation(violations []string) *AppError {
	e := New("POL_001", "Policy violation: "+strings.Join(violations, "; "), http.StatusForbidden)
	e.Details = violations
	return e
}

func ErrPolicyStorage(err error) *AppError {
	return Wrap("POL_002", "Failed to store payment policy", http.StatusServiceUnavailable, err)
}

// ---- Signature & replay (SIG) ----

func ErrInvalidSignature() *AppError {
	return New("SIG_001", "Invalid signature", http.StatusUnauthorized)
}

func ErrPaymentExpired() *AppError {
	return New("SIG_002", "Payment authorization expired", http.StatusForbidden)
}

func ErrNonceUsed() *AppError {
	return New("SIG_003", "Nonce has already been used", http.StatusConflict)
}

func ErrSigningFailed(err error) *AppError {
	return Wrap("SIG_004", "Failed to sign payload", http.StatusInternalServerError, err)
}

// ---- Sessions (SES) ----

func ErrSessionNotFound() *AppError {
	return New("SES_001", "Payment session not found or expired", http.StatusNotFound)
}

// ---- Chain gateway (CHN) ----

func ErrChainUnavailable(err error) *AppError {
	return Wrap("CHN_001", "Chain gateway unavailable", http.StatusBadGateway, err)
}

func ErrDispatchFailed(err error) *AppError {
	return Wrap("CHN_002", "Chain action failed", http.StatusBadGateway, err)
}

// ErrExecutionStatusUnknown signals a dispatch that timed out; the transaction may still land.
func ErrExecutionStatusUnknown(err error) *AppError {
	return Wrap("CHN_003", "Payment status unknown, reconcile before retrying", http.StatusGatewayTimeout, err)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid wallet signature", http.StatusUnauthorized)
}

func ErrTimestampExpired() *AppError {
	return New("AUTH_002", "Login timestamp expired", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrForbidden() *AppError {
	return New("AUTH_004", "Operation not permitted", http.StatusForbidden)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrStorage(err error) *AppError {
	return Wrap("SYS_001", "Ledger storage failure", http.StatusServiceUnavailable, err)
}

// InternalError wraps an internal error as a SYS_000 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_000", "Internal server error", http.StatusInternalServerError, err)
}
