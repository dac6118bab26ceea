package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"minibrain/internal/apperr"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", &apperr.ValidationError{Field: "content", Message: "must not be empty"}, http.StatusBadRequest, "content must not be empty"},
		{"invalid input", fmt.Errorf("parse: %w", apperr.ErrInvalidInput), http.StatusBadRequest, "Invalid input"},
		{"unauthenticated", apperr.ErrUnauthenticated, http.StatusUnauthorized, "Unauthenticated"},
		{"wrapped not found", fmt.Errorf("get note: %w", apperr.ErrNotFound), http.StatusNotFound, "Note not found"},
		{"provider", &apperr.ProviderError{Op: "embed", Err: errors.New("429")}, http.StatusBadGateway, "provider down"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeServiceError(context.Background(), w, tt.err, "provider down")

			if w.Code != tt.wantStatus {
				t.Errorf("status = %v, want %v", w.Code, tt.wantStatus)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Error != tt.wantMsg {
				t.Errorf("error = %q, want %q", resp.Error, tt.wantMsg)
			}
		})
	}
}
