package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAPIError(t *testing.T) {
	err := NewAPIError(http.StatusNotFound, "order not found", nil)

	if err.Code() != http.StatusNotFound {
		t.Errorf("Code() = %d, want 404", err.Code())
	}
	if err.Message() != "order not found" {
		t.Errorf("Message() = %q, want order not found", err.Message())
	}
	if got, want := err.Error(), "api error 404: order not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	cause := errors.New("sql: no rows in result set")
	withCause := NewAPIError(http.StatusNotFound, "order not found", cause)
	if got, want := withCause.Error(), "api error 404: order not found: sql: no rows in result set"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(withCause, cause) {
		t.Error("APIError should unwrap to its cause")
	}
}

func TestAuthenticationError(t *testing.T) {
	err := NewAuthenticationError("invalid or missing API key")

	if got, want := err.Error(), "authentication failed: invalid or missing API key"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrAuthentication) {
		t.Error("AuthenticationError should match ErrAuthentication")
	}

	wrapped := fmt.Errorf("status update rejected: %w", err)
	if !errors.Is(wrapped, ErrAuthentication) {
		t.Error("wrapped AuthenticationError should still match ErrAuthentication")
	}
	var target *AuthenticationError
	if !errors.As(wrapped, &target) {
		t.Error("errors.As should extract the AuthenticationError")
	}
}

func TestServerError(t *testing.T) {
	err := NewServerError(http.StatusServiceUnavailable, "database unavailable")

	if err.StatusCode() != http.StatusServiceUnavailable {
		t.Errorf("StatusCode() = %d, want 503", err.StatusCode())
	}
	if got, want := err.Error(), "server error 503: database unavailable"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrServer) {
		t.Error("ServerError should match ErrServer")
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, map[string]any{"id": "ORD001"})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["id"] != "ORD001" {
		t.Errorf("id = %v, want ORD001", body["id"])
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "api error uses its code and message",
			err:        NewAPIError(http.StatusNotFound, "order not found", nil),
			wantStatus: http.StatusNotFound,
			wantMsg:    "order not found",
		},
		{
			name:       "wrapped api error still recognized",
			err:        fmt.Errorf("lookup: %w", NewAPIError(http.StatusBadRequest, "order_id is required", nil)),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "order_id is required",
		},
		{
			name:       "server error uses its status",
			err:        NewServerError(http.StatusServiceUnavailable, "database unavailable"),
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    "database unavailable",
		},
		{
			name:       "authentication error maps to 401",
			err:        NewAuthenticationError("invalid or missing API key"),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "authentication failed: invalid or missing API key",
		},
		{
			name:       "unknown error hides internals behind a 500",
			err:        errors.New("dial tcp 10.0.0.5:5432: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil)
			w := httptest.NewRecorder()

			WriteError(w, req, tt.err, nil)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}
			if body["error"] != tt.wantMsg {
				t.Errorf("error = %q, want %q", body["error"], tt.wantMsg)
			}
		})
	}
}
