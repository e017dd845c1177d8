package components

import (
	"bytes"
	"context"
	"net/url"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lankarail-console/internal/middleware"
	"lankarail-console/internal/models"
	"lankarail-console/internal/types"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	ctx := middleware.SetSessionContext(context.Background(), &models.Session{CSRFToken: "tok"})
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func TestLoadingPanel(t *testing.T) {
	html := render(t, LoadingPanel("my-bookings", "bookings", "/passenger/panels/my-bookings"))

	assert.Contains(t, html, `id="panel-my-bookings"`)
	assert.Contains(t, html, `hx-get="/passenger/panels/my-bookings"`)
	assert.Contains(t, html, `hx-trigger="load, reload-my-bookings from:body"`)
	assert.Contains(t, html, `hx-sync="this:replace"`)
	assert.Contains(t, html, "Loading bookings...")
}

func TestEmptyStateAndPanelError(t *testing.T) {
	assert.Contains(t, render(t, EmptyState("No trains available.")), "No trains available.")

	html := render(t, PanelError("trains", `{"message":"<down>"}`))
	assert.Contains(t, html, "Failed to load trains")
	assert.Contains(t, html, "&lt;down&gt;")
	assert.NotContains(t, html, "<down>")
}

func TestNotificationEscapes(t *testing.T) {
	html := render(t, Notification(NotifyError, `Delete failed: <script>alert(1)</script>`))

	assert.Contains(t, html, "alert-danger")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.NotContains(t, html, "<script>")
}

func TestConfirmDialogRepostsForm(t *testing.T) {
	form := url.Values{
		"enabled":    {"true"},
		"csrf_token": {"stale"},
		"confirmed":  {"no"},
	}

	html := render(t, ConfirmDialog("Disable user #42?", "/admin/users/42/toggle", form))

	assert.Contains(t, html, "Disable user #42?")
	assert.Contains(t, html, `hx-post="/admin/users/42/toggle"`)
	assert.Contains(t, html, `name="enabled" value="true"`)
	assert.Contains(t, html, `name="csrf_token" value="tok"`)
	assert.NotContains(t, html, "stale")
	assert.Contains(t, html, `name="confirmed" value="yes"`)
	assert.NotContains(t, html, `value="no"`)
	assert.Contains(t, html, `data-dismiss="modal"`)
}

func TestUsersTableToggleCarriesCurrentFlag(t *testing.T) {
	html := render(t, UsersTable([]models.User{
		{ID: 7, Email: "a@lankarail.lk", Role: models.RoleAdmin, Enabled: true},
	}))

	assert.Contains(t, html, `hx-post="/admin/users/7/toggle"`)
	assert.Contains(t, html, "a@lankarail.lk")
	assert.Contains(t, html, "Disable")
}

func TestSchedulesTableUsesResolvedTrain(t *testing.T) {
	p := 950.0
	html := render(t, SchedulesTable([]types.ScheduleRow{{
		Schedule:   models.Schedule{ID: 10, TrainID: 7, DepartureStation: "Colombo", ArrivalStation: "Kandy", DepartureTime: "2024-05-01T08:30:00", Price: &p},
		TrainLabel: "Unknown train (#7)",
	}}))

	assert.Contains(t, html, "Unknown train (#7)")
	assert.Contains(t, html, "2024-05-01 08:30")
	assert.Contains(t, html, "LKR 950.00")
}

func TestMyBookingsListActions(t *testing.T) {
	html := render(t, MyBookingsList([]types.BookingRow{
		{Booking: models.Booking{ID: 5, PaymentStatus: models.PaymentApproved, Status: models.BookingConfirmed}, TrainLabel: "Yal Devi", ScheduleLabel: "Colombo → Jaffna"},
		{Booking: models.Booking{ID: 6, Status: models.BookingCancelled}, TrainLabel: "-", ScheduleLabel: "Unknown schedule (#99)"},
	}))

	assert.Contains(t, html, "/passenger/tickets/5")
	assert.NotContains(t, html, "/passenger/bookings/5/pay")
	assert.Contains(t, html, "/passenger/bookings/5/cancel")
	assert.NotContains(t, html, "/passenger/bookings/6/cancel")
	assert.Contains(t, html, "Unknown schedule (#99)")
}

func TestFormsPostToTheirCollection(t *testing.T) {
	assert.Contains(t, render(t, TrainForm(nil)), `hx-post="/admin/trains"`)
	assert.Contains(t, render(t, TrainForm(&models.Train{ID: 3, Name: "Yal Devi"})), `hx-post="/admin/trains/3"`)
	assert.Contains(t, render(t, CreateAdminForm()), `hx-post="/admin/users/create-admin"`)

	html := render(t, UserForm(&models.User{ID: 4, Email: "x@lankarail.lk", Role: "ROLE_MEMBER", Enabled: true}))
	assert.Contains(t, html, `hx-post="/admin/users/4"`)
	assert.Contains(t, html, `value="ROLE_MEMBER" selected`)
	assert.Contains(t, html, `value="true" checked`)
}

func TestCSRFFieldReadsSessionToken(t *testing.T) {
	assert.Equal(t, `<input type="hidden" name="csrf_token" value="tok">`, render(t, CSRFField()))
}

func TestBookingFormEscapesScheduleText(t *testing.T) {
	p := 1200.0
	html := render(t, BookingForm(&models.Schedule{ID: 10, DepartureStation: `Fort"><b>`, ArrivalStation: "Kandy", DepartureTime: "2024-05-01T08:30:00", Price: &p}))

	assert.Contains(t, html, "Fort&#34;&gt;&lt;b&gt;")
	assert.NotContains(t, html, "<b>")
	assert.Contains(t, html, "(LKR 1200.00 per seat)")
	assert.Contains(t, html, `name="scheduleId" value="10"`)
	assert.Contains(t, html, `min="1"`)
	assert.Contains(t, html, `hx-post="/passenger/bookings"`)
}

func TestFormatters(t *testing.T) {
	seats := 3
	km := 115.5
	assert.Equal(t, "-", money(nil))
	assert.Equal(t, "3", optionalInt(&seats))
	assert.Equal(t, "-", optionalInt(nil))
	assert.Equal(t, "115.5 km", optionalKm(&km))
	assert.Equal(t, "2024-05-01T08:30", datetimeLocal("2024-05-01T08:30:00"))
	assert.Equal(t, "panel-stats", PanelID("stats"))
	assert.Equal(t, "reload-stats", ReloadEvent("stats"))
}
