package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lankarail-console/internal/logger"
	"lankarail-console/internal/metrics"
	"lankarail-console/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*APIClient, *metrics.Metrics) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	m := metrics.New()
	return NewAPIClient(server.URL, 0, nil, m), m
}

func TestAPIClient_Do_ForwardsIdentity(t *testing.T) {
	var gotAuth, gotCookie, gotRequestID, gotContentType string
	var gotBody string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if c, err := r.Cookie("JSESSIONID"); err == nil {
			gotCookie = c.Value
		}
		gotRequestID = r.Header.Get("X-Request-ID")
		gotContentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 3, "name": "Udarata Menike", "type": "InterCity", "capacity": 400}`))
	})

	sess := &models.Session{
		Email:          "a@b.lk",
		Token:          "tok",
		BackendCookies: []*http.Cookie{{Name: "JSESSIONID", Value: "abc"}},
	}
	ctx := logger.ContextWithRequestID(context.Background(), "req-9")

	var train models.Train
	err := client.Do(ctx, sess, http.MethodPut, "/api/admin/trains/3", models.TrainRequest{Name: "Udarata Menike"}, &train)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "abc", gotCookie)
	assert.Equal(t, "req-9", gotRequestID)
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"name":"Udarata Menike","type":"","capacity":0}`, gotBody)
	assert.Equal(t, int64(3), train.ID)
	require.NotNil(t, train.Capacity)
	assert.Equal(t, 400, *train.Capacity)
}

func TestAPIClient_Do_NoContent(t *testing.T) {
	client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	var out models.Train
	err := client.Do(context.Background(), nil, http.MethodDelete, "/api/admin/trains/1", nil, &out)
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BackendRequestsTotal.WithLabelValues("trains", "DELETE", "ok")))
}

func TestAPIClient_Do_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantIs      error
	}{
		{"json message", http.StatusBadRequest, `{"message":"Bad schedule"}`, "Bad schedule", models.ErrInvalidInput},
		{"json error", http.StatusInternalServerError, `{"status":500,"error":"Schedule not found: 9"}`, "Schedule not found: 9", nil},
		{"json errors list", http.StatusBadRequest, `{"status":400,"errors":["seats: At least 1 seat must be booked","userId: userId is required"]}`, "seats: At least 1 seat must be booked, userId: userId is required", models.ErrInvalidInput},
		{"plain text", http.StatusBadGateway, "upstream down", "upstream down", nil},
		{"empty body", http.StatusNotFound, "", "Not Found", models.ErrNotFound},
		{"unauthorized", http.StatusUnauthorized, "", "Unauthorized", models.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, `{"error":"You do not own this booking."}`, "You do not own this booking.", models.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			err := client.Do(context.Background(), nil, http.MethodGet, "/api/admin/trains", nil, nil)
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantMessage, UserMessage(err))
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			assert.Equal(t, tt.status == http.StatusUnauthorized, IsUnauthorized(err))
		})
	}
}

func TestAPIClient_Do_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	m := metrics.New()
	client := NewAPIClient(url, 0, nil, m)
	err := client.Do(context.Background(), nil, http.MethodGet, "/api/admin/users", nil, nil)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Contains(t, UserMessage(err), "Network error")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BackendRequestsTotal.WithLabelValues("users", "GET", "transport_error")))
}

func TestAPIClient_Do_DecodeError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>login</html>`))
	})

	var trains []models.Train
	err := client.Do(context.Background(), nil, http.MethodGet, "/api/admin/trains", nil, &trains)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "Unexpected response from server", UserMessage(err))
}

func TestRawText(t *testing.T) {
	withBody := &APIError{Status: 500, Message: "boom", Body: `{"error":"boom"}`}
	assert.Equal(t, `{"error":"boom"}`, RawText(withBody))

	noBody := &APIError{Status: 404, Message: "Not Found"}
	assert.Equal(t, "404 Not Found", RawText(noBody))

	assert.Equal(t, "other", RawText(errors.New("other")))
}

func TestResourceLabel(t *testing.T) {
	assert.Equal(t, "trains", resourceLabel("/api/admin/trains/12"))
	assert.Equal(t, "bookings", resourceLabel("/api/bookings/my-bookings"))
	assert.Equal(t, "schedules", resourceLabel("/api/schedules/search?from=a&to=b"))
	assert.Equal(t, "auth", resourceLabel("/api/auth/login"))
	assert.Equal(t, "unknown", resourceLabel("/api/"))
}
