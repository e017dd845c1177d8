package services

import (
	"context"

	"lankarail-console/internal/models"
)

// ResourceServiceInterface is the generic CRUD contract of one REST collection
type ResourceServiceInterface[T any] interface {
	List(ctx context.Context, sess *models.Session) ([]T, error)
	Get(ctx context.Context, sess *models.Session, id int64) (*T, error)
	Create(ctx context.Context, sess *models.Session, body interface{}) (*T, error)
	Update(ctx context.Context, sess *models.Session, id int64, body interface{}) (*T, error)
	Delete(ctx context.Context, sess *models.Session, id int64) error
}

// AuthServiceInterface defines the interface for authentication services
type AuthServiceInterface interface {
	Register(ctx context.Context, creds models.Credentials) (*models.User, error)
	Login(ctx context.Context, creds models.Credentials) (*models.Session, error)
	Logout(ctx context.Context, sess *models.Session)
	Me(ctx context.Context, sess *models.Session) (*models.User, error)
}

// BookingServiceInterface defines booking calls beyond plain CRUD
type BookingServiceInterface interface {
	MyBookings(ctx context.Context, sess *models.Session) ([]models.Booking, error)
	Get(ctx context.Context, sess *models.Session, id int64) (*models.Booking, error)
	Create(ctx context.Context, sess *models.Session, req models.BookingCreateRequest) (*models.Booking, error)
	Cancel(ctx context.Context, sess *models.Session, id int64) error
	Pay(ctx context.Context, sess *models.Session, id int64) (*models.Booking, error)
	ConfirmPayment(ctx context.Context, sess *models.Session, id int64) (*models.Booking, error)
	RejectPayment(ctx context.Context, sess *models.Session, id int64) (*models.Booking, error)
}

// ScheduleServiceInterface defines the journey search
type ScheduleServiceInterface interface {
	Search(ctx context.Context, sess *models.Session, from, to, date string) ([]models.Schedule, error)
}

// AdminServiceInterface defines admin calls outside the collections
type AdminServiceInterface interface {
	Stats(ctx context.Context, sess *models.Session) (*models.DashboardStats, error)
	CreateAdmin(ctx context.Context, sess *models.Session, req models.CreateUserRequest) (*models.User, error)
	ToggleUser(ctx context.Context, sess *models.Session, id int64, current bool) (*models.User, error)
}

var (
	_ ResourceServiceInterface[models.Train] = (*Resource[models.Train])(nil)
	_ AuthServiceInterface                   = (*AuthService)(nil)
	_ BookingServiceInterface                = (*BookingService)(nil)
	_ ScheduleServiceInterface               = (*ScheduleService)(nil)
	_ AdminServiceInterface                  = (*AdminService)(nil)
)
