// Package api holds what the HTTP-facing adapters share: mapping service
// errors onto transport status codes.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/youridegraef/qash-backend-sub000/internal/service"
)

// Error codes exposed to clients that do not speak HTTP status codes.
const (
	CodeNotFound             = "NOT_FOUND"
	CodeValidationFailed     = "VALIDATION_FAILED"
	CodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	CodeAlreadyExists        = "ALREADY_EXISTS"
	CodeInternal             = "INTERNAL"
)

// StatusCode maps a service error to an HTTP status.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAuthenticationFailed):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Code maps a service error to one of the Code* constants.
func Code(err error) string {
	switch StatusCode(err) {
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusBadRequest:
		return CodeValidationFailed
	case http.StatusUnauthorized:
		return CodeAuthenticationFailed
	case http.StatusConflict:
		return CodeAlreadyExists
	default:
		return CodeInternal
	}
}

// Message returns the text that is safe to show a client. Errors outside
// the service taxonomy are replaced by a generic message.
func Message(err error) string {
	if Code(err) == CodeInternal && !errors.Is(err, service.ErrStorage) {
		return "internal error"
	}
	return err.Error()
}
