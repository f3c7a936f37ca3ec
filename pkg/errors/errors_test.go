package errors

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	plain := New(CodeNotFound, "listing not found", http.StatusNotFound)
	if got := plain.Error(); got != "NOT_FOUND: listing not found" {
		t.Errorf("unexpected error string: %s", got)
	}

	cause := errors.New("connection refused")
	wrapped := Wrap(cause, CodeUnavailable, "store unreachable", http.StatusServiceUnavailable)
	if !strings.Contains(wrapped.Error(), "connection refused") {
		t.Errorf("wrapped error should mention cause, got: %s", wrapped.Error())
	}
	if !errors.Is(wrapped, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestConstructors_StatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"not found", NotFoundWithID("Listing", "abc"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("missing field", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("bad id"), CodeInvalidInput, http.StatusBadRequest},
		{"unauthorized", Unauthorized("bad credentials"), CodeUnauthorized, http.StatusUnauthorized},
		{"conflict", Conflict("duplicate owner"), CodeConflict, http.StatusConflict},
		{"write conflict", WriteConflict("Listing", "abc"), CodeConflict, http.StatusConflict},
		{"internal", Internal("boom", errors.New("x")), CodeInternal, http.StatusInternalServerError},
		{"unavailable", Unavailable("MongoDB"), CodeUnavailable, http.StatusServiceUnavailable},
		{"upstream", Upstream("assistant", errors.New("bad payload")), CodeUpstream, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.code)
			}
			if tt.err.StatusCode() != tt.status {
				t.Errorf("status = %d, want %d", tt.err.StatusCode(), tt.status)
			}
		})
	}
}

func TestWriteConflict_Details(t *testing.T) {
	err := WriteConflict("Listing", "id-1")
	if err.Details["id"] != "id-1" {
		t.Errorf("expected id detail, got %v", err.Details)
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("Listing")
	if AsAppError(appErr) != appErr {
		t.Error("AsAppError should return the same AppError")
	}

	converted := AsAppError(errors.New("raw"))
	if converted.Code != CodeInternal {
		t.Errorf("raw errors should convert to internal, got %s", converted.Code)
	}
	if !IsAppError(converted) {
		t.Error("converted error should be an AppError")
	}
}
