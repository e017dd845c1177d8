package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingDisplay(t *testing.T) {
	b := &Booking{}
	assert.Equal(t, BookingPending, b.DisplayStatus())
	assert.Equal(t, PaymentPending, b.DisplayPaymentStatus())
	assert.Equal(t, 1, b.SeatCount())
	assert.True(t, b.Payable())
	assert.False(t, b.AwaitingReview())

	seats := 3
	b = &Booking{Status: "confirmed", PaymentStatus: "paid", Seats: &seats}
	assert.Equal(t, BookingConfirmed, b.DisplayStatus())
	assert.Equal(t, 3, b.SeatCount())
	assert.False(t, b.Payable())
	assert.True(t, b.AwaitingReview())
}

func TestBookingPayable(t *testing.T) {
	tests := []struct {
		name    string
		booking Booking
		want    bool
	}{
		{"pending", Booking{Status: BookingPending}, true},
		{"rejected payment", Booking{Status: BookingPending, PaymentStatus: PaymentRejected}, true},
		{"cancelled", Booking{Status: BookingCancelled}, false},
		{"approved", Booking{Status: BookingConfirmed, PaymentStatus: PaymentApproved}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.booking.Payable())
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "2024-05-01 08:30", FormatTimestamp("2024-05-01T08:30:00"))
	assert.Equal(t, "2024-05-01 08:30", FormatTimestamp("2024-05-01T08:30"))
	assert.Equal(t, "-", FormatTimestamp(""))
	assert.Equal(t, "tomorrow", FormatTimestamp("tomorrow"))
}

func TestNormalizeTimestamp(t *testing.T) {
	assert.Equal(t, "2024-05-01T08:30:00", NormalizeTimestamp("2024-05-01T08:30"))
	assert.Equal(t, "2024-05-01T08:30:15", NormalizeTimestamp(" 2024-05-01T08:30:15 "))
}

func TestScheduleLabel(t *testing.T) {
	s := &Schedule{DepartureStation: "Colombo Fort", ArrivalStation: "Kandy", DepartureTime: "2024-05-01T08:30:00"}
	assert.Equal(t, "Colombo Fort → Kandy, 2024-05-01 08:30", s.Label())
}
