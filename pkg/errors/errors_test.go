package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", NotFound("Booking"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("validation failed", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("bad request"), CodeInvalidInput, http.StatusBadRequest},
		{"unauthorized", Unauthorized("token required"), CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden("access denied"), CodeForbidden, http.StatusForbidden},
		{"conflict", Conflict("already exists"), CodeConflict, http.StatusConflict},
		{"internal", Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
		{"unavailable", Unavailable("Mongo"), CodeUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, tt.err.Code)
			}
			if tt.err.HTTPStatus != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, tt.err.HTTPStatus)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("StatusCode() = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
		})
	}
}

func TestNotFound_Message(t *testing.T) {
	err := NotFound("Doctor")
	if err.Message != "Doctor not found" {
		t.Errorf("expected message 'Doctor not found', got %s", err.Message)
	}
}

func TestNotFoundWithID_Details(t *testing.T) {
	err := NotFoundWithID("Booking", "650000000000000000000001")

	if err.Details["resource"] != "Booking" {
		t.Errorf("expected resource 'Booking', got %v", err.Details["resource"])
	}
	if err.Details["id"] != "650000000000000000000001" {
		t.Errorf("expected id in details, got %v", err.Details["id"])
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			appErr:   &AppError{Code: CodeNotFound, Message: "booking not found"},
			expected: "NOT_FOUND: booking not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("mongo: no reachable servers"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: mongo: no reachable servers)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	appErr := Wrap(cause, CodeInternal, "wrapped", http.StatusInternalServerError)

	if errors.Unwrap(appErr) != cause {
		t.Errorf("Unwrap() should return the original error")
	}
	if !errors.Is(appErr, cause) {
		t.Errorf("errors.Is should match through AppError")
	}
}

func TestAppError_WithDetails(t *testing.T) {
	err := Validation("validation failed", nil).WithDetails(map[string]any{
		"field": "email",
	})

	if err.Details["field"] != "email" {
		t.Errorf("expected field 'email', got %v", err.Details["field"])
	}
}

func TestIsAppError(t *testing.T) {
	if !IsAppError(NotFound("User")) {
		t.Errorf("IsAppError() should return true for AppError")
	}
	if IsAppError(errors.New("plain error")) {
		t.Errorf("IsAppError() should return false for plain error")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("User")
	if AsAppError(appErr) != appErr {
		t.Errorf("AsAppError() should return the same AppError")
	}

	plain := errors.New("plain error")
	wrapped := AsAppError(plain)
	if wrapped.Code != CodeInternal {
		t.Errorf("AsAppError() should wrap plain errors as internal, got %s", wrapped.Code)
	}
	if wrapped.Err != plain {
		t.Errorf("AsAppError() should keep the original error")
	}
}
