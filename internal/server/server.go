package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"lankarail-console/internal/config"
	"lankarail-console/internal/handlers"
	"lankarail-console/internal/metrics"
	"lankarail-console/internal/middleware"
	"lankarail-console/internal/services"
)

// Server owns the console's handlers and the router that serves them
type Server struct {
	cfg          *config.Config
	logger       *zap.Logger
	metrics      *metrics.Metrics
	sessions     *middleware.SessionManager
	auth         *middleware.AuthMiddleware
	loginLimiter *middleware.LoginRateLimiter

	authHandler      *handlers.AuthHandler
	adminHandler     *handlers.AdminHandler
	passengerHandler *handlers.PassengerHandler
}

// New wires the backend client, services and handlers. m may be nil when
// metrics are disabled.
func New(cfg *config.Config, log *zap.Logger, m *metrics.Metrics) *Server {
	client := services.NewAPIClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log, m)
	catalog := services.NewCatalog(client)
	authService := services.NewAuthService(client)
	bookingService := services.NewBookingService(client)

	sessions := middleware.NewSessionManager(
		middleware.NewCookieStore(cfg.Session.Secret, cfg.Session.MaxAge, cfg.Session.Secure),
	)
	base := handlers.NewBase(sessions, log)

	return &Server{
		cfg:          cfg,
		logger:       log,
		metrics:      m,
		sessions:     sessions,
		auth:         middleware.NewAuthMiddleware(sessions, log),
		loginLimiter: middleware.NewLoginRateLimiter(cfg.RateLimit.LoginPerMinute),

		authHandler: handlers.NewAuthHandler(base, authService),
		adminHandler: handlers.NewAdminHandler(base, handlers.AdminResources{
			Trains:    catalog.AdminTrains,
			Stations:  catalog.AdminStations,
			Routes:    catalog.AdminRoutes,
			Schedules: catalog.AdminSchedules,
			Users:     catalog.AdminUsers,
			Bookings:  catalog.AdminBookings,
		}, bookingService, services.NewAdminService(client)),
		passengerHandler: handlers.NewPassengerHandler(base, handlers.PassengerResources{
			Trains:    catalog.Trains,
			Schedules: catalog.Schedules,
		}, bookingService, services.NewScheduleService(client), authService),
	}
}

// Close stops background work started by New
func (s *Server) Close() {
	s.loginLimiter.Stop()
}

// Routes builds the router
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	// sessions load before logging so request lines carry the user
	r.Use(s.auth.LoadSession)
	r.Use(middleware.Logging(s.logger))
	r.Use(middleware.Recoverer(s.logger))
	r.Use(middleware.Metrics(s.metrics))
	r.Use(middleware.SecureHeaders)

	r.NotFound(middleware.NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler().ServeHTTP)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if s.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRFProtection)

		r.Get("/", s.authHandler.Home)
		r.Post("/logout", s.authHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(s.auth.RedirectIfAuthenticated)
			r.Use(middleware.RateLimitLogin(s.loginLimiter))
			r.Get("/login", s.authHandler.LoginPage)
			r.Post("/login", s.authHandler.LoginSubmit)
			r.Get("/register", s.authHandler.RegisterPage)
			r.Post("/register", s.authHandler.RegisterSubmit)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.auth.RequireAdmin)
			s.adminRoutes(r)
		})

		r.Route("/passenger", func(r chi.Router) {
			r.Use(s.auth.RequireAuth)
			s.passengerRoutes(r)
		})
	})

	return r
}

func (s *Server) adminRoutes(r chi.Router) {
	h := s.adminHandler

	r.Get("/dashboard", h.Dashboard)

	r.Get("/panels/stats", h.StatsPanel())
	r.Get("/panels/trains", h.TrainsPanel())
	r.Get("/panels/stations", h.StationsPanel())
	r.Get("/panels/routes", h.RoutesPanel())
	r.Get("/panels/schedules", h.SchedulesPanel())
	r.Get("/panels/users", h.UsersPanel())
	r.Get("/panels/bookings", h.BookingsPanel())

	for _, resource := range []string{"trains", "stations", "routes", "schedules"} {
		create, update, del := h.ResourceActions(resource)
		r.Get("/"+resource+"/new", h.NewForm(resource))
		r.Post("/"+resource, create)
		r.Get("/"+resource+"/{id}/edit", h.EditForm(resource))
		r.Post("/"+resource+"/{id}", update)
		r.Post("/"+resource+"/{id}/delete", del)
	}

	_, updateUser, deleteUser := h.ResourceActions("users")
	r.Get("/users/new-admin", h.NewForm("admins"))
	r.Post("/users/create-admin", h.CreateAdmin())
	r.Get("/users/{id}/edit", h.EditForm("users"))
	r.Post("/users/{id}", updateUser)
	r.Post("/users/{id}/toggle", h.ToggleUser())
	r.Post("/users/{id}/delete", deleteUser)

	r.Post("/bookings/{id}/delete", h.DeleteBooking())
	r.Post("/bookings/{id}/confirm-payment", h.ConfirmPayment())
	r.Post("/bookings/{id}/reject-payment", h.RejectPayment())
}

func (s *Server) passengerRoutes(r chi.Router) {
	h := s.passengerHandler

	r.Get("/dashboard", h.Dashboard)
	r.Get("/panels/profile", h.ProfilePanel())
	r.Get("/panels/my-bookings", h.MyBookingsPanel())
	r.Get("/search", h.Search)
	r.Get("/book/{id}", h.BookForm)
	r.Post("/bookings", h.CreateBooking())
	r.Post("/bookings/{id}/cancel", h.CancelBooking())
	r.Post("/bookings/{id}/pay", h.PayBooking())
	r.Get("/tickets/{id}", h.Ticket)
}
