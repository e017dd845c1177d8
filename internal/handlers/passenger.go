package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"lankarail-console/internal/models"
	"lankarail-console/internal/services"
	"lankarail-console/internal/types"
	"lankarail-console/web/templates/components"
	"lankarail-console/web/templates/pages"
)

// PassengerResources are the public collections a passenger reads
type PassengerResources struct {
	Trains    services.ResourceServiceInterface[models.Train]
	Schedules services.ResourceServiceInterface[models.Schedule]
}

// PassengerHandler serves the passenger dashboard, search and bookings
type PassengerHandler struct {
	*Base
	res       PassengerResources
	bookings  services.BookingServiceInterface
	schedules services.ScheduleServiceInterface
	auth      services.AuthServiceInterface
}

// NewPassengerHandler creates a new passenger handler
func NewPassengerHandler(base *Base, res PassengerResources, bookings services.BookingServiceInterface, schedules services.ScheduleServiceInterface, auth services.AuthServiceInterface) *PassengerHandler {
	return &PassengerHandler{Base: base, res: res, bookings: bookings, schedules: schedules, auth: auth}
}

// Dashboard renders the passenger page shell
func (h *PassengerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pages.PassengerDashboard(h.session(r)))
}

// ProfilePanel shows the signed in account as the backend knows it
func (h *PassengerHandler) ProfilePanel() http.HandlerFunc {
	return h.Fragment("profile", func(ctx context.Context, sess *models.Session) (templ.Component, error) {
		user, err := h.auth.Me(ctx, sess)
		if err != nil {
			return nil, err
		}
		return components.ProfileCard(user), nil
	})
}

func (h *PassengerHandler) lookups(ctx context.Context, sess *models.Session) ([]models.Schedule, []models.Train, error) {
	var (
		schedules []models.Schedule
		trains    []models.Train
	)
	err := FetchAll(ctx,
		func(ctx context.Context) (err error) { schedules, err = h.res.Schedules.List(ctx, sess); return },
		func(ctx context.Context) (err error) { trains, err = h.res.Trains.List(ctx, sess); return },
	)
	return schedules, trains, err
}

// MyBookingsPanel lists the passenger's bookings with schedule and train
func (h *PassengerHandler) MyBookingsPanel() http.HandlerFunc {
	return Panel[models.Booking]{
		Name:      "my-bookings",
		Title:     "bookings",
		Fetch:     h.bookings.MyBookings,
		EmptyText: "No bookings yet. Search for a train to create one.",
	}.Joined(h.Base, func(ctx context.Context, sess *models.Session, bookings []models.Booking) (templ.Component, error) {
		schedules, trains, err := h.lookups(ctx, sess)
		if err != nil {
			return nil, err
		}
		return components.MyBookingsList(JoinBookings(bookings, nil, schedules, trains)), nil
	})
}

// Search finds schedules between two stations, optionally on a date
func (h *PassengerHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := types.SearchQuery{
		From: strings.TrimSpace(r.URL.Query().Get("from")),
		To:   strings.TrimSpace(r.URL.Query().Get("to")),
		Date: strings.TrimSpace(r.URL.Query().Get("date")),
	}
	if q.From == "" || q.To == "" {
		h.notifyError(w, r, "Please enter both origin and destination.")
		return
	}

	h.Fragment("search results", func(ctx context.Context, sess *models.Session) (templ.Component, error) {
		found, err := h.schedules.Search(ctx, sess, q.From, q.To, q.Date)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return components.EmptyState("No trains found for this route and date."), nil
		}
		trains, err := h.res.Trains.List(ctx, sess)
		if err != nil {
			return nil, err
		}
		h.log(r).Debug("search", zap.String("from", q.From), zap.String("to", q.To), zap.Int("results", len(found)))
		return components.SearchResults(JoinScheduleTrains(found, trains)), nil
	})(w, r)
}

// BookForm opens the booking modal for one schedule
func (h *PassengerHandler) BookForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.notifyError(w, r, services.ValidationMessage(err))
		return
	}
	schedule, err := h.res.Schedules.Get(r.Context(), h.session(r), id)
	if err != nil {
		h.failed(w, r, "Could not load schedule", err)
		return
	}
	h.modal(w, r, "Book a seat", components.BookingForm(schedule))
}

// CreateBooking books seats for the signed in passenger
func (h *PassengerHandler) CreateBooking() http.HandlerFunc {
	return h.Dispatch(Action{
		Verb:     "Create",
		Panels:   []string{"my-bookings"},
		Required: []string{"scheduleId", "seats"},
		Call: func(ctx context.Context, sess *models.Session, req ActionRequest) error {
			scheduleID, err := req.Int64("scheduleId")
			if err != nil {
				return err
			}
			seats, err := req.Int("seats")
			if err != nil {
				return err
			}
			if seats < 1 {
				return fmt.Errorf("%w: seats must be at least 1", models.ErrInvalidInput)
			}

			userID := sess.UserID
			if userID == 0 {
				user, err := h.auth.Me(ctx, sess)
				if err != nil {
					return err
				}
				userID = user.ID
			}

			_, err = h.bookings.Create(ctx, sess, models.BookingCreateRequest{
				ScheduleID: scheduleID,
				UserID:     userID,
				Seats:      seats,
			})
			return err
		},
		Success:  "Booking created",
		Redirect: "/passenger/dashboard",
	})
}

// CancelBooking cancels one of the passenger's bookings after confirmation
func (h *PassengerHandler) CancelBooking() http.HandlerFunc {
	return h.Dispatch(Action{
		Verb:    "Cancel",
		Panels:  []string{"my-bookings"},
		Confirm: confirmf("Cancel booking #%d?"),
		Call: func(ctx context.Context, sess *models.Session, req ActionRequest) error {
			return h.bookings.Cancel(ctx, sess, req.ID)
		},
		Success:  "Booking cancelled",
		Redirect: "/passenger/dashboard",
	})
}

// PayBooking marks a booking as paid; an admin reviews it afterwards
func (h *PassengerHandler) PayBooking() http.HandlerFunc {
	return h.Dispatch(Action{
		Verb:   "Payment",
		Panels: []string{"my-bookings"},
		Call: func(ctx context.Context, sess *models.Session, req ActionRequest) error {
			_, err := h.bookings.Pay(ctx, sess, req.ID)
			return err
		},
		Success:  "Payment submitted",
		Redirect: "/passenger/dashboard",
	})
}

// Ticket renders the printable ticket for one booking
func (h *PassengerHandler) Ticket(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.notifyError(w, r, services.ValidationMessage(err))
		return
	}
	ctx, sess := r.Context(), h.session(r)

	var (
		booking   *models.Booking
		schedules []models.Schedule
		trains    []models.Train
	)
	err = FetchAll(ctx,
		func(ctx context.Context) (err error) { booking, err = h.bookings.Get(ctx, sess, id); return },
		func(ctx context.Context) (err error) { schedules, trains, err = h.lookups(ctx, sess); return },
	)
	if err != nil {
		h.failed(w, r, "Could not load ticket", err)
		return
	}

	rows := JoinBookings([]models.Booking{*booking}, nil, schedules, trains)
	h.render(w, r, http.StatusOK, pages.TicketPage(sess, types.TicketView{Row: rows[0], Passenger: sess.Email}))
}
