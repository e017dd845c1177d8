package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/a-h/templ"

	"lankarail-console/internal/models"
	"lankarail-console/internal/services"
	"lankarail-console/web/templates/components"
	"lankarail-console/web/templates/pages"
)

// AdminResources are the collections the admin console manages
type AdminResources struct {
	Trains    services.ResourceServiceInterface[models.Train]
	Stations  services.ResourceServiceInterface[models.Station]
	Routes    services.ResourceServiceInterface[models.Route]
	Schedules services.ResourceServiceInterface[models.Schedule]
	Users     services.ResourceServiceInterface[models.User]
	Bookings  services.ResourceServiceInterface[models.Booking]
}

// AdminHandler serves the admin dashboard, its panels and its actions
type AdminHandler struct {
	*Base
	res      AdminResources
	bookings services.BookingServiceInterface
	admin    services.AdminServiceInterface
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(base *Base, res AdminResources, bookings services.BookingServiceInterface, admin services.AdminServiceInterface) *AdminHandler {
	return &AdminHandler{Base: base, res: res, bookings: bookings, admin: admin}
}

// Dashboard renders the admin page shell
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pages.AdminDashboard(h.session(r)))
}

// StatsPanel renders the headline counters
func (h *AdminHandler) StatsPanel() http.HandlerFunc {
	return h.Fragment("stats", func(ctx context.Context, sess *models.Session) (templ.Component, error) {
		stats, err := h.admin.Stats(ctx, sess)
		if err != nil {
			return nil, err
		}
		return components.StatsCards(stats), nil
	})
}

// TrainsPanel lists trains
func (h *AdminHandler) TrainsPanel() http.HandlerFunc {
	return Panel[models.Train]{
		Name:   "trains",
		Title:  "trains",
		Fetch:  h.res.Trains.List,
		Render: components.TrainsTable,
	}.Handler(h.Base)
}

// StationsPanel lists stations
func (h *AdminHandler) StationsPanel() http.HandlerFunc {
	return Panel[models.Station]{
		Name:   "stations",
		Title:  "stations",
		Fetch:  h.res.Stations.List,
		Render: components.StationsTable,
	}.Handler(h.Base)
}

// RoutesPanel lists routes
func (h *AdminHandler) RoutesPanel() http.HandlerFunc {
	return Panel[models.Route]{
		Name:   "routes",
		Title:  "routes",
		Fetch:  h.res.Routes.List,
		Render: components.RoutesTable,
	}.Handler(h.Base)
}

// SchedulesPanel lists schedules with their train names
func (h *AdminHandler) SchedulesPanel() http.HandlerFunc {
	return Panel[models.Schedule]{
		Name:  "schedules",
		Title: "schedules",
		Fetch: h.res.Schedules.List,
	}.Joined(h.Base, func(ctx context.Context, sess *models.Session, schedules []models.Schedule) (templ.Component, error) {
		trains, err := h.res.Trains.List(ctx, sess)
		if err != nil {
			return nil, err
		}
		return components.SchedulesTable(JoinScheduleTrains(schedules, trains)), nil
	})
}

// UsersPanel lists accounts
func (h *AdminHandler) UsersPanel() http.HandlerFunc {
	return Panel[models.User]{
		Name:   "users",
		Title:  "users",
		Fetch:  h.res.Users.List,
		Render: components.UsersTable,
	}.Handler(h.Base)
}

// BookingsPanel lists every booking with its user, schedule and train
func (h *AdminHandler) BookingsPanel() http.HandlerFunc {
	return h.Fragment("bookings", func(ctx context.Context, sess *models.Session) (templ.Component, error) {
		var (
			bookings  []models.Booking
			users     []models.User
			schedules []models.Schedule
			trains    []models.Train
		)
		err := FetchAll(ctx,
			func(ctx context.Context) (err error) { bookings, err = h.res.Bookings.List(ctx, sess); return },
			func(ctx context.Context) (err error) { users, err = h.res.Users.List(ctx, sess); return },
			func(ctx context.Context) (err error) { schedules, err = h.res.Schedules.List(ctx, sess); return },
			func(ctx context.Context) (err error) { trains, err = h.res.Trains.List(ctx, sess); return },
		)
		if err != nil {
			return nil, err
		}
		if len(bookings) == 0 {
			return components.EmptyState("No bookings available."), nil
		}
		return components.AdminBookingsTable(JoinBookings(bookings, users, schedules, trains)), nil
	})
}

// NewForm opens an empty create form for resource
func (h *AdminHandler) NewForm(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch resource {
		case "trains":
			h.modal(w, r, "Add train", components.TrainForm(nil))
		case "stations":
			h.modal(w, r, "Add station", components.StationForm(nil))
		case "routes":
			h.modal(w, r, "Add route", components.RouteForm(nil))
		case "schedules":
			trains, err := h.res.Trains.List(r.Context(), h.session(r))
			if err != nil {
				h.failed(w, r, "Could not load trains", err)
				return
			}
			h.modal(w, r, "Add schedule", components.ScheduleForm(nil, trains))
		case "admins":
			h.modal(w, r, "Create admin", components.CreateAdminForm())
		default:
			http.NotFound(w, r)
		}
	}
}

// EditForm opens the edit form for one record of resource
func (h *AdminHandler) EditForm(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			h.notifyError(w, r, services.ValidationMessage(err))
			return
		}
		ctx, sess := r.Context(), h.session(r)

		var (
			title string
			form  templ.Component
		)
		switch resource {
		case "trains":
			var t *models.Train
			if t, err = h.res.Trains.Get(ctx, sess, id); err == nil {
				title, form = "Edit train", components.TrainForm(t)
			}
		case "stations":
			var s *models.Station
			if s, err = h.res.Stations.Get(ctx, sess, id); err == nil {
				title, form = "Edit station", components.StationForm(s)
			}
		case "routes":
			var rt *models.Route
			if rt, err = h.res.Routes.Get(ctx, sess, id); err == nil {
				title, form = "Edit route", components.RouteForm(rt)
			}
		case "schedules":
			var (
				s      *models.Schedule
				trains []models.Train
			)
			err = FetchAll(ctx,
				func(ctx context.Context) (err error) { s, err = h.res.Schedules.Get(ctx, sess, id); return },
				func(ctx context.Context) (err error) { trains, err = h.res.Trains.List(ctx, sess); return },
			)
			if err == nil {
				title, form = "Edit schedule", components.ScheduleForm(s, trains)
			}
		case "users":
			var u *models.User
			if u, err = h.res.Users.Get(ctx, sess, id); err == nil {
				title, form = "Edit user", components.UserForm(u)
			}
		default:
			http.NotFound(w, r)
			return
		}
		if err != nil {
			h.failed(w, r, "Could not load record", err)
			return
		}
		h.modal(w, r, title, form)
	}
}

func trainRequest(req ActionRequest) (interface{}, error) {
	capacity, err := req.Int("capacity")
	if err != nil {
		return nil, err
	}
	return models.TrainRequest{Name: req.String("name"), Type: req.String("type"), Capacity: capacity}, nil
}

func stationRequest(req ActionRequest) (interface{}, error) {
	return models.StationRequest{Name: req.String("name"), City: req.String("city")}, nil
}

func routeRequest(req ActionRequest) (interface{}, error) {
	distance, err := req.Float("distanceKm")
	if err != nil {
		return nil, err
	}
	return models.RouteRequest{
		Name:        req.String("name"),
		Origin:      req.String("origin"),
		Destination: req.String("destination"),
		DistanceKm:  distance,
	}, nil
}

func scheduleRequest(req ActionRequest) (interface{}, error) {
	trainID, err := req.Int64("trainId")
	if err != nil {
		return nil, err
	}
	price, err := req.Float("price")
	if err != nil {
		return nil, err
	}
	return models.ScheduleRequest{
		TrainID:          trainID,
		DepartureStation: req.String("departureStation"),
		ArrivalStation:   req.String("arrivalStation"),
		DepartureTime:    models.NormalizeTimestamp(req.String("departureTime")),
		ArrivalTime:      models.NormalizeTimestamp(req.String("arrivalTime")),
		Price:            price,
	}, nil
}

func userRequest(req ActionRequest) (interface{}, error) {
	return models.UserUpdateRequest{
		Email:    req.String("email"),
		Password: req.String("password"),
		Role:     models.NormalizeRole(req.String("role")),
		Enabled:  req.Bool("enabled"),
	}, nil
}

// crud is the create, update and delete actions of one collection
type crud[T any] struct {
	svc      services.ResourceServiceInterface[T]
	panel    string
	noun     string
	required []string
	body     func(ActionRequest) (interface{}, error)
}

func (c crud[T]) create() Action {
	return Action{
		Verb:     "Create",
		Panels:   []string{c.panel, "stats"},
		Required: c.required,
		Call: func(ctx context.Context, sess *models.Session, req ActionRequest) error {
			body, err := c.body(req)
			if err != nil {
				return err
			}
			_, err = c.svc.Create(ctx, sess, body)
			return err
		},
		Success:  c.noun + " created",
		Redirect: "/admin/dashboard",
	}
}

func (c crud[T]) update() Action {
	return Action{
		Verb:     "Update",
		Panels:   []string{c.panel},
		Required: c.required,
		Confirm:  confirmf("Save changes to " + c.noun + " #%d?"),
		Call: func(ctx context.Context, sess *models.Session, req ActionRequest) error {
			body, err := c.body(req)
			if err != nil {
				return err
			}
			_, err = c.svc.Update(ctx, sess, req.ID, body)
			return err
		},
		Success:  c.noun + " updated",
		Redirect: "/admin/dashboard",
	}
}

func (c crud[T]) delete() Action {
	return Action{
		Verb:    "Delete",
		Panels:  []string{c.panel, "stats"},
		Confirm: confirmf("Delete " + c.noun + " #%d?"),
		Call: func(ctx context.Context, sess *models.Session, req ActionRequest) error {
			return c.svc.Delete(ctx, sess, req.ID)
		},
		Success:  c.noun + " deleted",
		Redirect: "/admin/dashboard",
	}
}

// ResourceActions returns create, update and delete handlers for resource
func (h *AdminHandler) ResourceActions(resource string) (create, update, del http.HandlerFunc) {
	var acts [3]Action
	switch resource {
	case "trains":
		c := crud[models.Train]{h.res.Trains, "trains", "Train", []string{"name", "type", "capacity"}, trainRequest}
		acts = [3]Action{c.create(), c.update(), c.delete()}
	case "stations":
		c := crud[models.Station]{h.res.Stations, "stations", "Station", []string{"name", "city"}, stationRequest}
		acts = [3]Action{c.create(), c.update(), c.delete()}
	case "routes":
		c := crud[models.Route]{h.res.Routes, "routes", "Route", []string{"name", "origin", "destination"}, routeRequest}
		acts = [3]Action{c.create(), c.update(), c.delete()}
	case "schedules":
		c := crud[models.Schedule]{h.res.Schedules, "schedules", "Schedule",
			[]string{"trainId", "departureStation", "arrivalStation", "departureTime", "arrivalTime", "price"}, scheduleRequest}
		acts = [3]Action{c.create(), c.update(), c.delete()}
	case "users":
		c := crud[models.User]{h.res.Users, "users", "User", []string{"email"}, userRequest}
		acts = [3]Action{c.create(), c.update(), c.delete()}
	default:
		panic("handlers: unknown admin resource " + resource)
	}
	return h.Dispatch(acts[0]), h.Dispatch(acts[1]), h.Dispatch(acts[2])
}

// DeleteBooking removes a booking
func (h *AdminHandler) DeleteBooking() http.HandlerFunc {
	return h.Dispatch(crud[models.Booking]{svc: h.res.Bookings, panel: "bookings", noun: "Booking"}.delete())
}

// ToggleUser flips a user's enabled flag. The current value comes from the
// row that was clicked and the backend receives its negation.
func (h *AdminHandler) ToggleUser() http.HandlerFunc {
	return h.Dispatch(Action{
		Verb:     "Update",
		Panels:   []string{"users"},
		Required: []string{"enabled"},
		Confirm: func(req ActionRequest) string {
			if req.Bool("enabled") {
				return fmt.Sprintf("Disable user #%d?", req.ID)
			}
			return fmt.Sprintf("Enable user #%d?", req.ID)
		},
		Call: func(ctx context.Context, sess *models.Session, req ActionRequest) error {
			_, err := h.admin.ToggleUser(ctx, sess, req.ID, req.Bool("enabled"))
			return err
		},
		Success:  "User updated",
		Redirect: "/admin/dashboard",
	})
}

// CreateAdmin creates an account with the admin role
func (h *AdminHandler) CreateAdmin() http.HandlerFunc {
	return h.Dispatch(Action{
		Verb:     "Create",
		Panels:   []string{"users", "stats"},
		Required: []string{"email", "password"},
		Call: func(ctx context.Context, sess *models.Session, req ActionRequest) error {
			_, err := h.admin.CreateAdmin(ctx, sess, models.CreateUserRequest{
				Email:    req.String("email"),
				Password: req.Form.Get("password"),
				Role:     models.RoleAdmin,
			})
			return err
		},
		Success:  "Admin created",
		Redirect: "/admin/dashboard",
	})
}

// ConfirmPayment approves a paid booking
func (h *AdminHandler) ConfirmPayment() http.HandlerFunc {
	return h.reviewPayment("Confirm", "Confirm payment for booking #%d?", "Payment confirmed", h.bookings.ConfirmPayment)
}

// RejectPayment rejects a paid booking
func (h *AdminHandler) RejectPayment() http.HandlerFunc {
	return h.reviewPayment("Reject", "Reject payment for booking #%d?", "Payment rejected", h.bookings.RejectPayment)
}

func (h *AdminHandler) reviewPayment(verb, question, success string, call func(context.Context, *models.Session, int64) (*models.Booking, error)) http.HandlerFunc {
	return h.Dispatch(Action{
		Verb:    verb,
		Panels:  []string{"bookings", "stats"},
		Confirm: confirmf(question),
		Call: func(ctx context.Context, sess *models.Session, req ActionRequest) error {
			_, err := call(ctx, sess, req.ID)
			return err
		},
		Success:  success,
		Redirect: "/admin/dashboard",
	})
}
