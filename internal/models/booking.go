package models

import "strings"

// Booking statuses
const (
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELED"
	BookingPending   = "PENDING"
)

// Payment statuses
const (
	PaymentPending  = "PENDING"
	PaymentPaid     = "PAID"
	PaymentApproved = "APPROVED"
	PaymentRejected = "REJECTED"
)

// Booking reserves seats on a schedule for a user
type Booking struct {
	ID            int64    `json:"id"`
	UserID        int64    `json:"userId"`
	ScheduleID    int64    `json:"scheduleId"`
	Seats         *int     `json:"seats"`
	TotalPrice    *float64 `json:"totalPrice"`
	Status        string   `json:"status"`
	PaymentStatus string   `json:"paymentStatus"`
	CreatedAt     string   `json:"createdAt,omitempty"`
}

// BookingCreateRequest is the body of POST /api/bookings
type BookingCreateRequest struct {
	ScheduleID int64 `json:"scheduleId"`
	UserID     int64 `json:"userId"`
	Seats      int   `json:"seats"`
}

// DisplayStatus falls back to PENDING when the backend omits a status
func (b *Booking) DisplayStatus() string {
	if b.Status == "" {
		return BookingPending
	}
	return strings.ToUpper(b.Status)
}

// DisplayPaymentStatus falls back to PENDING when no payment state is known
func (b *Booking) DisplayPaymentStatus() string {
	if b.PaymentStatus == "" {
		return PaymentPending
	}
	return strings.ToUpper(b.PaymentStatus)
}

// SeatCount returns 1 when seats is missing, as the passenger list always did
func (b *Booking) SeatCount() int {
	if b.Seats == nil {
		return 1
	}
	return *b.Seats
}

// Payable reports whether a passenger may still pay for the booking
func (b *Booking) Payable() bool {
	switch b.DisplayPaymentStatus() {
	case PaymentPaid, PaymentApproved:
		return false
	}
	return b.DisplayStatus() != BookingCancelled
}

// AwaitingReview reports whether an admin can confirm or reject payment
func (b *Booking) AwaitingReview() bool {
	return b.DisplayPaymentStatus() == PaymentPaid
}
