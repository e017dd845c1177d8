package services

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"lankarail-console/internal/models"
)

func TestParseErrorMessage(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message wins over error", 400, `{"message":"m","error":"e"}`, "m"},
		{"error field", 500, `{"error":"e"}`, "e"},
		{"json string", 500, `"plain json string"`, "plain json string"},
		{"empty message falls through", 400, `{"message":"","error":"e"}`, "e"},
		{"object without known keys", 500, `{"status":500}`, `{"status":500}`},
		{"whitespace only", 503, "  \n", "Service Unavailable"},
		{"unknown status", 599, "", "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseErrorMessage(tt.status, []byte(tt.body)))
		})
	}
}

func TestAPIError_Is(t *testing.T) {
	assert.ErrorIs(t, newAPIError(http.MethodGet, "/x", http.StatusUnauthorized, nil), models.ErrUnauthorized)
	assert.ErrorIs(t, newAPIError(http.MethodGet, "/x", http.StatusNotFound, nil), models.ErrNotFound)
	assert.NotErrorIs(t, newAPIError(http.MethodGet, "/x", http.StatusInternalServerError, nil), models.ErrUnauthorized)
}

func TestValidationMessage(t *testing.T) {
	local := fmt.Errorf("%w: capacity must be a whole number", models.ErrInvalidInput)
	assert.Equal(t, "capacity must be a whole number", ValidationMessage(local))

	backend := newAPIError(http.MethodPost, "/api/admin/trains", http.StatusBadRequest, []byte(`{"message":"Name already taken"}`))
	assert.Equal(t, "Name already taken", ValidationMessage(backend))

	wrapped := fmt.Errorf("create train: %w", backend)
	assert.Equal(t, "Name already taken", ValidationMessage(wrapped))
}
