// Package response writes the API's JSON envelopes.
package response

import (
	"errors"
	"net/http"
	"time"

	"agent-payment-engine/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestIDKey matches the key the request id middleware sets.
const requestIDKey = "request_id"

// SuccessResponse is the standard success envelope.
type SuccessResponse struct {
	Data      any    `json:"data"`
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse is the standard error envelope. Retryable tells an agent
// that the same request may succeed later. A 504 is not retryable: the
// payment may have gone through and must be reconciled first.
type ErrorResponse struct {
	ErrorCode string   `json:"error_code"`
	Message   string   `json:"message"`
	Details   []string `json:"details,omitempty"`
	Retryable bool     `json:"retryable"`
	RequestID string   `json:"request_id"`
	Timestamp string   `json:"timestamp"`
}

// OK sends a 200 response with data.
func OK(c *gin.Context, data any) {
	JSON(c, http.StatusOK, data)
}

// Created sends a 201 response with data.
func Created(c *gin.Context, data any) {
	JSON(c, http.StatusCreated, data)
}

// JSON sends data in the success envelope with an explicit status, for
// outcomes such as a rejected verification that are results, not errors.
func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, SuccessResponse{
		Data:      data,
		RequestID: requestID(c),
		Timestamp: now(),
	})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error writes err as an error envelope. Errors that are not an
// *apperror.AppError anywhere in their chain become SYS_000.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = apperror.InternalError(err)
	}
	c.JSON(appErr.HTTPStatus, ErrorResponse{
		ErrorCode: appErr.Code,
		Message:   appErr.Message,
		Details:   appErr.Details,
		Retryable: retryable(appErr.HTTPStatus),
		RequestID: requestID(c),
		Timestamp: now(),
	})
}

func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable:
		return true
	}
	return false
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// requestID returns the request's id, minting and storing one when the
// middleware did not run.
func requestID(c *gin.Context) string {
	if s := c.GetString(requestIDKey); s != "" {
		return s
	}
	id := uuid.NewString()
	c.Set(requestIDKey, id)
	return id
}
