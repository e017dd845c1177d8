package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	"lankarail-console/internal/middleware"
	"lankarail-console/internal/models"
	"lankarail-console/internal/services"
)

// MockResource for testing any REST collection
type MockResource[T any] struct {
	mock.Mock
}

func (m *MockResource[T]) List(ctx context.Context, sess *models.Session) ([]T, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockResource[T]) Get(ctx context.Context, sess *models.Session, id int64) (*T, error) {
	args := m.Called(ctx, sess, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockResource[T]) Create(ctx context.Context, sess *models.Session, body interface{}) (*T, error) {
	args := m.Called(ctx, sess, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockResource[T]) Update(ctx context.Context, sess *models.Session, id int64, body interface{}) (*T, error) {
	args := m.Called(ctx, sess, id, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockResource[T]) Delete(ctx context.Context, sess *models.Session, id int64) error {
	args := m.Called(ctx, sess, id)
	return args.Error(0)
}

// MockAuthService for testing
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, creds models.Credentials) (*models.User, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, sess *models.Session) {
	m.Called(ctx, sess)
}

func (m *MockAuthService) Me(ctx context.Context, sess *models.Session) (*models.User, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockBookingService for testing
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) booking(args mock.Arguments) (*models.Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) MyBookings(ctx context.Context, sess *models.Session) ([]models.Booking, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingService) Get(ctx context.Context, sess *models.Session, id int64) (*models.Booking, error) {
	return m.booking(m.Called(ctx, sess, id))
}

func (m *MockBookingService) Create(ctx context.Context, sess *models.Session, req models.BookingCreateRequest) (*models.Booking, error) {
	return m.booking(m.Called(ctx, sess, req))
}

func (m *MockBookingService) Cancel(ctx context.Context, sess *models.Session, id int64) error {
	return m.Called(ctx, sess, id).Error(0)
}

func (m *MockBookingService) Pay(ctx context.Context, sess *models.Session, id int64) (*models.Booking, error) {
	return m.booking(m.Called(ctx, sess, id))
}

func (m *MockBookingService) ConfirmPayment(ctx context.Context, sess *models.Session, id int64) (*models.Booking, error) {
	return m.booking(m.Called(ctx, sess, id))
}

func (m *MockBookingService) RejectPayment(ctx context.Context, sess *models.Session, id int64) (*models.Booking, error) {
	return m.booking(m.Called(ctx, sess, id))
}

// MockScheduleService for testing
type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) Search(ctx context.Context, sess *models.Session, from, to, date string) ([]models.Schedule, error) {
	args := m.Called(ctx, sess, from, to, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Schedule), args.Error(1)
}

// MockAdminService for testing
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) Stats(ctx context.Context, sess *models.Session) (*models.DashboardStats, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

func (m *MockAdminService) CreateAdmin(ctx context.Context, sess *models.Session, req models.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, sess, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAdminService) ToggleUser(ctx context.Context, sess *models.Session, id int64, current bool) (*models.User, error) {
	args := m.Called(ctx, sess, id, current)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

var (
	_ services.ResourceServiceInterface[models.Train] = (*MockResource[models.Train])(nil)
	_ services.AuthServiceInterface                   = (*MockAuthService)(nil)
	_ services.BookingServiceInterface                = (*MockBookingService)(nil)
	_ services.ScheduleServiceInterface               = (*MockScheduleService)(nil)
	_ services.AdminServiceInterface                  = (*MockAdminService)(nil)
)

func adminSession() *models.Session {
	return &models.Session{UserID: 1, Email: "admin@lankarail.lk", Role: models.RoleAdmin, Token: "admin-token", CSRFToken: "csrf"}
}

func passengerSession() *models.Session {
	return &models.Session{UserID: 42, Email: "nimal@example.lk", Role: models.RoleMember, Token: "member-token", CSRFToken: "csrf"}
}

func newTestBase() *Base {
	store := middleware.NewCookieStore("test-session-secret-0123456789abcdef", 3600, false)
	return NewBase(middleware.NewSessionManager(store), nil)
}

func unauthorized() error {
	return &services.APIError{Method: http.MethodGet, Path: "/api/admin/trains", Status: http.StatusUnauthorized, Message: "Unauthorized", Body: `{"message":"Unauthorized"}`}
}

// newRequest builds a request the way the router would hand it over: with
// the session in context and, when htmx is set, the HX-Request header.
func newRequest(method, target string, form url.Values, sess *models.Session, htmx bool) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	if sess != nil {
		req = req.WithContext(middleware.SetSessionContext(req.Context(), sess))
	}
	return req
}

// serve routes req through a one-route chi router so {id} params resolve
func serve(method, pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

var apiFailure = services.APIError{Method: http.MethodGet, Path: "/api/admin/users", Status: http.StatusInternalServerError, Message: "Something went wrong"}
