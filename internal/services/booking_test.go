package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lankarail-console/internal/models"
)

func TestBookingService_Endpoints(t *testing.T) {
	var calls []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch {
		case r.URL.Path == "/api/bookings/my-bookings":
			w.Write([]byte(`[{"id":1,"userId":4,"scheduleId":9,"seats":2,"status":"CONFIRMED"}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/bookings":
			var req models.BookingCreateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, models.BookingCreateRequest{ScheduleID: 9, UserID: 4, Seats: 2}, req)
			w.Write([]byte(`{"id":2,"userId":4,"scheduleId":9,"seats":2}`))
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.Write([]byte(`{"id":2,"paymentStatus":"PAID"}`))
		}
	})

	svc := NewBookingService(client)
	ctx := context.Background()
	sess := &models.Session{UserID: 4, Email: "p@lankarail.lk"}

	mine, err := svc.MyBookings(ctx, sess)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	_, err = svc.Create(ctx, sess, models.BookingCreateRequest{ScheduleID: 9, UserID: 4, Seats: 2})
	require.NoError(t, err)

	_, err = svc.Get(ctx, sess, 2)
	require.NoError(t, err)
	_, err = svc.Pay(ctx, sess, 2)
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(ctx, sess, 2))
	_, err = svc.ConfirmPayment(ctx, sess, 2)
	require.NoError(t, err)
	_, err = svc.RejectPayment(ctx, sess, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"GET /api/bookings/my-bookings",
		"POST /api/bookings",
		"GET /api/bookings/2",
		"POST /api/bookings/2/pay",
		"DELETE /api/bookings/2",
		"PUT /api/admin/bookings/2/confirm-payment",
		"PUT /api/admin/bookings/2/reject-payment",
	}, calls)
}
