package services

import (
	"context"
	"net/http"
	"strconv"

	"lankarail-console/internal/models"
)

// BookingService covers the booking calls that are not plain CRUD
type BookingService struct {
	client *APIClient
}

func NewBookingService(client *APIClient) *BookingService {
	return &BookingService{client: client}
}

// MyBookings lists the signed in passenger's bookings
func (s *BookingService) MyBookings(ctx context.Context, sess *models.Session) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.client.Do(ctx, sess, http.MethodGet, "/api/bookings/my-bookings", nil, &bookings); err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

// Get fetches one of the passenger's bookings
func (s *BookingService) Get(ctx context.Context, sess *models.Session, id int64) (*models.Booking, error) {
	var booking models.Booking
	if err := s.client.Do(ctx, sess, http.MethodGet, bookingPath(id, ""), nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// Create books seats on a schedule
func (s *BookingService) Create(ctx context.Context, sess *models.Session, req models.BookingCreateRequest) (*models.Booking, error) {
	var booking models.Booking
	if err := s.client.Do(ctx, sess, http.MethodPost, "/api/bookings", req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// Cancel deletes one of the passenger's bookings
func (s *BookingService) Cancel(ctx context.Context, sess *models.Session, id int64) error {
	return s.client.Do(ctx, sess, http.MethodDelete, bookingPath(id, ""), nil, nil)
}

// Pay marks the booking as paid, pending admin review
func (s *BookingService) Pay(ctx context.Context, sess *models.Session, id int64) (*models.Booking, error) {
	var booking models.Booking
	if err := s.client.Do(ctx, sess, http.MethodPost, bookingPath(id, "/pay"), nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// ConfirmPayment approves a paid booking (admin)
func (s *BookingService) ConfirmPayment(ctx context.Context, sess *models.Session, id int64) (*models.Booking, error) {
	return s.review(ctx, sess, id, "/confirm-payment")
}

// RejectPayment rejects a paid booking (admin)
func (s *BookingService) RejectPayment(ctx context.Context, sess *models.Session, id int64) (*models.Booking, error) {
	return s.review(ctx, sess, id, "/reject-payment")
}

func (s *BookingService) review(ctx context.Context, sess *models.Session, id int64, suffix string) (*models.Booking, error) {
	var booking models.Booking
	path := "/api/admin/bookings/" + strconv.FormatInt(id, 10) + suffix
	if err := s.client.Do(ctx, sess, http.MethodPut, path, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func bookingPath(id int64, suffix string) string {
	return "/api/bookings/" + strconv.FormatInt(id, 10) + suffix
}
