package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lankarail-console/internal/models"
)

type adminMocks struct {
	trains    *MockResource[models.Train]
	stations  *MockResource[models.Station]
	routes    *MockResource[models.Route]
	schedules *MockResource[models.Schedule]
	users     *MockResource[models.User]
	bookings  *MockResource[models.Booking]
	review    *MockBookingService
	admin     *MockAdminService
}

func newAdminHandler() (*AdminHandler, *adminMocks) {
	m := &adminMocks{
		trains:    new(MockResource[models.Train]),
		stations:  new(MockResource[models.Station]),
		routes:    new(MockResource[models.Route]),
		schedules: new(MockResource[models.Schedule]),
		users:     new(MockResource[models.User]),
		bookings:  new(MockResource[models.Booking]),
		review:    new(MockBookingService),
		admin:     new(MockAdminService),
	}
	h := NewAdminHandler(newTestBase(), AdminResources{
		Trains:    m.trains,
		Stations:  m.stations,
		Routes:    m.routes,
		Schedules: m.schedules,
		Users:     m.users,
		Bookings:  m.bookings,
	}, m.review, m.admin)
	return h, m
}

func hxTrigger(t *testing.T, header http.Header) map[string]interface{} {
	t.Helper()
	var trigger map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(header.Get("HX-Trigger")), &trigger))
	return trigger
}

func TestAdminHandler_StatsPanel(t *testing.T) {
	h, m := newAdminHandler()
	m.admin.On("Stats", mock.Anything, mock.Anything).Return(&models.DashboardStats{TotalTrains: 12, TotalUsers: 340}, nil)

	rec := serve(http.MethodGet, "/admin/panels/stats", h.StatsPanel(),
		newRequest(http.MethodGet, "/admin/panels/stats", nil, adminSession(), true))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "340")
	m.admin.AssertExpectations(t)
}

func TestAdminHandler_SchedulesPanelNamesTrains(t *testing.T) {
	h, m := newAdminHandler()
	m.schedules.On("List", mock.Anything, mock.Anything).Return(testSchedules, nil)
	m.trains.On("List", mock.Anything, mock.Anything).Return(testTrains, nil)

	rec := serve(http.MethodGet, "/admin/panels/schedules", h.SchedulesPanel(),
		newRequest(http.MethodGet, "/admin/panels/schedules", nil, adminSession(), true))

	body := rec.Body.String()
	assert.Contains(t, body, "Udarata Menike")
	assert.Contains(t, body, "Unknown train (#7)")
}

func TestAdminHandler_BookingsPanelJoinsReferences(t *testing.T) {
	h, m := newAdminHandler()
	m.bookings.On("List", mock.Anything, mock.Anything).Return([]models.Booking{
		{ID: 5, UserID: 42, ScheduleID: 10, PaymentStatus: models.PaymentPaid},
		{ID: 6, UserID: 42, ScheduleID: 99},
	}, nil)
	m.users.On("List", mock.Anything, mock.Anything).Return(testUsers, nil)
	m.schedules.On("List", mock.Anything, mock.Anything).Return(testSchedules, nil)
	m.trains.On("List", mock.Anything, mock.Anything).Return(testTrains, nil)

	rec := serve(http.MethodGet, "/admin/panels/bookings", h.BookingsPanel(),
		newRequest(http.MethodGet, "/admin/panels/bookings", nil, adminSession(), true))

	body := rec.Body.String()
	assert.Contains(t, body, "nimal@example.lk")
	assert.Contains(t, body, "Udarata Menike")
	assert.Contains(t, body, "Unknown schedule (#99)")
	assert.Contains(t, body, "/admin/bookings/5/confirm-payment")
	assert.NotContains(t, body, "/admin/bookings/6/confirm-payment")
}

func TestAdminHandler_BookingsPanelFailsAsAWhole(t *testing.T) {
	h, m := newAdminHandler()
	m.bookings.On("List", mock.Anything, mock.Anything).Return([]models.Booking{{ID: 5, UserID: 42, ScheduleID: 10}}, nil)
	m.users.On("List", mock.Anything, mock.Anything).Return(nil, &apiFailure)
	m.schedules.On("List", mock.Anything, mock.Anything).Return(testSchedules, nil)
	m.trains.On("List", mock.Anything, mock.Anything).Return(testTrains, nil)

	rec := serve(http.MethodGet, "/admin/panels/bookings", h.BookingsPanel(),
		newRequest(http.MethodGet, "/admin/panels/bookings", nil, adminSession(), true))

	body := rec.Body.String()
	assert.Contains(t, body, "Failed to load bookings")
	assert.NotContains(t, body, "<table")
}

func TestAdminHandler_CreateTrain(t *testing.T) {
	h, m := newAdminHandler()
	m.trains.On("Create", mock.Anything, mock.Anything, models.TrainRequest{Name: "Ruhunu Kumari", Type: "Intercity", Capacity: 480}).
		Return(&models.Train{ID: 9}, nil)

	create, _, _ := h.ResourceActions("trains")
	form := url.Values{"name": {"Ruhunu Kumari"}, "type": {"Intercity"}, "capacity": {"480"}}
	rec := serve(http.MethodPost, "/admin/trains", create, newRequest(http.MethodPost, "/admin/trains", form, adminSession(), true))

	assert.Equal(t, http.StatusOK, rec.Code)
	trigger := hxTrigger(t, rec.Header())
	assert.Equal(t, true, trigger["reload-trains"])
	assert.Equal(t, true, trigger["reload-stats"])
	assert.Equal(t, "Train created", trigger["notify"])
	m.trains.AssertExpectations(t)
}

func TestAdminHandler_CreateTrainRejectsBadCapacity(t *testing.T) {
	h, m := newAdminHandler()

	create, _, _ := h.ResourceActions("trains")
	form := url.Values{"name": {"Ruhunu Kumari"}, "type": {"Intercity"}, "capacity": {"many"}}
	rec := serve(http.MethodPost, "/admin/trains", create, newRequest(http.MethodPost, "/admin/trains", form, adminSession(), true))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Create failed: capacity must be a whole number")
	m.trains.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminHandler_CreateScheduleNormalizesTimes(t *testing.T) {
	h, m := newAdminHandler()
	m.schedules.On("Create", mock.Anything, mock.Anything, models.ScheduleRequest{
		TrainID:          1,
		DepartureStation: "Colombo",
		ArrivalStation:   "Kandy",
		DepartureTime:    "2024-05-01T08:30:00",
		ArrivalTime:      "2024-05-01T11:00:00",
		Price:            950,
	}).Return(&models.Schedule{ID: 12}, nil)

	create, _, _ := h.ResourceActions("schedules")
	form := url.Values{
		"trainId":          {"1"},
		"departureStation": {"Colombo"},
		"arrivalStation":   {"Kandy"},
		"departureTime":    {"2024-05-01T08:30"},
		"arrivalTime":      {"2024-05-01T11:00"},
		"price":            {"950"},
	}
	rec := serve(http.MethodPost, "/admin/schedules", create, newRequest(http.MethodPost, "/admin/schedules", form, adminSession(), true))

	assert.Equal(t, http.StatusOK, rec.Code)
	m.schedules.AssertExpectations(t)
}

func TestAdminHandler_UpdateAsksFirst(t *testing.T) {
	h, m := newAdminHandler()

	_, update, _ := h.ResourceActions("stations")
	form := url.Values{"name": {"Fort"}, "city": {"Colombo"}}
	rec := serve(http.MethodPost, "/admin/stations/{id}", update, newRequest(http.MethodPost, "/admin/stations/4", form, adminSession(), true))

	body := rec.Body.String()
	assert.Contains(t, body, "Save changes to Station #4?")
	assert.Contains(t, body, `name="city" value="Colombo"`)
	m.stations.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminHandler_UpdateUser(t *testing.T) {
	h, m := newAdminHandler()
	m.users.On("Update", mock.Anything, mock.Anything, int64(42), models.UserUpdateRequest{
		Email:   "nimal@example.lk",
		Role:    models.RoleAdmin,
		Enabled: true,
	}).Return(&models.User{ID: 42}, nil)

	_, update, _ := h.ResourceActions("users")
	form := url.Values{"email": {"nimal@example.lk"}, "role": {"admin"}, "enabled": {"true"}, "confirmed": {"yes"}}
	rec := serve(http.MethodPost, "/admin/users/{id}", update, newRequest(http.MethodPost, "/admin/users/42", form, adminSession(), true))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, hxTrigger(t, rec.Header())["reload-users"])
	m.users.AssertExpectations(t)
}

func TestAdminHandler_DeleteRoute(t *testing.T) {
	h, m := newAdminHandler()
	m.routes.On("Delete", mock.Anything, mock.Anything, int64(8)).Return(nil)

	_, _, del := h.ResourceActions("routes")
	rec := serve(http.MethodPost, "/admin/routes/{id}/delete", del,
		newRequest(http.MethodPost, "/admin/routes/8/delete", url.Values{"confirmed": {"yes"}}, adminSession(), true))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Route deleted", hxTrigger(t, rec.Header())["notify"])
	m.routes.AssertExpectations(t)
}

func TestAdminHandler_ToggleUserPassesCurrentFlag(t *testing.T) {
	h, m := newAdminHandler()
	m.admin.On("ToggleUser", mock.Anything, mock.Anything, int64(42), true).Return(&models.User{ID: 42, Enabled: false}, nil)

	form := url.Values{"enabled": {"true"}, "confirmed": {"yes"}}
	rec := serve(http.MethodPost, "/admin/users/{id}/toggle", h.ToggleUser(),
		newRequest(http.MethodPost, "/admin/users/42/toggle", form, adminSession(), true))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, hxTrigger(t, rec.Header())["reload-users"])
	m.admin.AssertExpectations(t)
}

func TestAdminHandler_ToggleUserConfirmWording(t *testing.T) {
	h, m := newAdminHandler()

	rec := serve(http.MethodPost, "/admin/users/{id}/toggle", h.ToggleUser(),
		newRequest(http.MethodPost, "/admin/users/42/toggle", url.Values{"enabled": {"false"}}, adminSession(), true))

	assert.Contains(t, rec.Body.String(), "Enable user #42?")
	m.admin.AssertNotCalled(t, "ToggleUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminHandler_CreateAdmin(t *testing.T) {
	h, m := newAdminHandler()
	m.admin.On("CreateAdmin", mock.Anything, mock.Anything, models.CreateUserRequest{
		Email: "ops@lankarail.lk", Password: "s3cret-pass", Role: models.RoleAdmin,
	}).Return(&models.User{ID: 50}, nil)

	form := url.Values{"email": {"ops@lankarail.lk"}, "password": {"s3cret-pass"}}
	rec := serve(http.MethodPost, "/admin/users/create-admin", h.CreateAdmin(),
		newRequest(http.MethodPost, "/admin/users/create-admin", form, adminSession(), true))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Admin created", hxTrigger(t, rec.Header())["notify"])
	m.admin.AssertExpectations(t)
}

func TestAdminHandler_ConfirmPayment(t *testing.T) {
	h, m := newAdminHandler()
	m.review.On("ConfirmPayment", mock.Anything, mock.Anything, int64(5)).Return(&models.Booking{ID: 5}, nil)

	rec := serve(http.MethodPost, "/admin/bookings/{id}/confirm-payment", h.ConfirmPayment(),
		newRequest(http.MethodPost, "/admin/bookings/5/confirm-payment", url.Values{"confirmed": {"yes"}}, adminSession(), true))

	trigger := hxTrigger(t, rec.Header())
	assert.Equal(t, true, trigger["reload-bookings"])
	assert.Equal(t, "Payment confirmed", trigger["notify"])
	m.review.AssertExpectations(t)
}

func TestAdminHandler_RejectPaymentFailure(t *testing.T) {
	h, m := newAdminHandler()
	m.review.On("RejectPayment", mock.Anything, mock.Anything, int64(5)).Return(nil, &apiFailure)

	rec := serve(http.MethodPost, "/admin/bookings/{id}/reject-payment", h.RejectPayment(),
		newRequest(http.MethodPost, "/admin/bookings/5/reject-payment", url.Values{"confirmed": {"yes"}}, adminSession(), true))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Reject failed: Something went wrong")
}

func TestAdminHandler_EditFormLoadsRecord(t *testing.T) {
	h, m := newAdminHandler()
	m.schedules.On("Get", mock.Anything, mock.Anything, int64(10)).Return(&testSchedules[0], nil)
	m.trains.On("List", mock.Anything, mock.Anything).Return(testTrains, nil)

	rec := serve(http.MethodGet, "/admin/schedules/{id}/edit", h.EditForm("schedules"),
		newRequest(http.MethodGet, "/admin/schedules/10/edit", nil, adminSession(), true))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "Edit schedule")
	assert.Contains(t, body, `hx-post="/admin/schedules/10"`)
	assert.Contains(t, body, `value="2024-05-01T08:30"`)
}

func TestAdminHandler_NewFormWithoutHTMXRendersPage(t *testing.T) {
	h, _ := newAdminHandler()

	rec := serve(http.MethodGet, "/admin/trains/new", h.NewForm("trains"),
		newRequest(http.MethodGet, "/admin/trains/new", nil, adminSession(), false))

	body := rec.Body.String()
	assert.Contains(t, body, "<html")
	assert.Contains(t, body, "Add train")
	assert.Contains(t, body, `hx-post="/admin/trains"`)
}
