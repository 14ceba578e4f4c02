package errors

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

func TestMapErrorToHTTP(t *testing.T) {
	mapper := NewMapper(zerolog.Nop())

	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"Validation", NewValidationError("subscription already requested"), fasthttp.StatusBadRequest, "subscription already requested"},
		{"Unauthorized", NewUnauthorizedError("not authorized to update the subscription"), fasthttp.StatusUnauthorized, "not authorized to update the subscription"},
		{"Permission", NewPermissionError("forbidden"), fasthttp.StatusForbidden, "forbidden"},
		{"NotFound", NewNotFoundError("no subscription found"), fasthttp.StatusNotFound, "no subscription found"},
		{"Conflict", NewConflictError("conflict"), fasthttp.StatusConflict, "conflict"},
		{"ServiceUnavailable", NewServiceUnavailableError("try later"), fasthttp.StatusServiceUnavailable, "try later"},
		{"Internal", NewInternalError("could not request the subscription"), fasthttp.StatusInternalServerError, "could not request the subscription"},
		{"Nil", nil, fasthttp.StatusOK, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, message := mapper.MapErrorToHTTP(tc.err)
			if status != tc.status {
				t.Errorf("Expected status %d, got %d", tc.status, status)
			}
			if message != tc.message {
				t.Errorf("Expected message %q, got %q", tc.message, message)
			}
		})
	}
}

func TestMapErrorToHTTP_WrappedError(t *testing.T) {
	mapper := NewMapper(zerolog.Nop())

	wrapped := fmt.Errorf("request failed: %w", NewValidationError("public key already used"))
	status, message := mapper.MapErrorToHTTP(wrapped)
	if status != fasthttp.StatusBadRequest {
		t.Errorf("Expected status 400 for wrapped validation error, got %d", status)
	}
	if message != "public key already used" {
		t.Errorf("Expected unwrapped message, got %q", message)
	}
}

func TestMapErrorToHTTP_UnknownErrorSanitized(t *testing.T) {
	var buf bytes.Buffer
	mapper := NewMapper(zerolog.New(&buf))

	status, message := mapper.MapErrorToHTTP(errors.New("pq: connection refused"))
	if status != fasthttp.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", status)
	}
	if message != "internal server error" {
		t.Errorf("Expected sanitized message, got %q", message)
	}
	if !strings.Contains(buf.String(), "pq: connection refused") {
		t.Error("Expected the internal cause to be logged")
	}
}
