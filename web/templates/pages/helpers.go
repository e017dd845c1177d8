package pages

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/a-h/templ"

	"lankarail-console/internal/middleware"
	"lankarail-console/internal/models"
	"lankarail-console/internal/types"
)

// csrfHeaders is the hx-headers value that sends the token with every HTMX request
func csrfHeaders(ctx context.Context) string {
	headers, _ := json.Marshal(map[string]string{"X-CSRF-Token": middleware.CSRFToken(ctx)})
	return string(headers)
}

type adminPanel struct {
	name    string
	heading string
	title   string
	newURL  string
	newText string
}

func (p adminPanel) actions() templ.Component {
	if p.newURL == "" {
		return templ.NopComponent
	}
	return modalButton(p.newURL, p.newText)
}

// adminPanels lists the admin dashboard's panels in display order
var adminPanels = []adminPanel{
	{"trains", "Trains", "trains", "/admin/trains/new", "Add train"},
	{"stations", "Stations", "stations", "/admin/stations/new", "Add station"},
	{"routes", "Routes", "routes", "/admin/routes/new", "Add route"},
	{"schedules", "Schedules", "schedules", "/admin/schedules/new", "Add schedule"},
	{"users", "Users", "users", "/admin/users/new-admin", "Create admin"},
	{"bookings", "Bookings", "bookings", "", ""},
}

func bookingNumber(view types.TicketView) string {
	return strconv.FormatInt(view.Row.Booking.ID, 10)
}

type ticketItem struct {
	label string
	value string
}

// ticketItems falls back to the resolved journey label when the schedule
// itself could not be loaded
func ticketItems(view types.TicketView) []ticketItem {
	row := view.Row
	bk := row.Booking
	items := []ticketItem{
		{"Passenger", view.Passenger},
		{"Train", row.TrainLabel},
	}
	if s := row.Schedule; s != nil {
		items = append(items,
			ticketItem{"From", s.DepartureStation},
			ticketItem{"To", s.ArrivalStation},
			ticketItem{"Departs", models.FormatTimestamp(s.DepartureTime)},
			ticketItem{"Arrives", models.FormatTimestamp(s.ArrivalTime)},
		)
	} else {
		items = append(items, ticketItem{"Journey", row.ScheduleLabel})
	}
	items = append(items, ticketItem{"Seats", strconv.Itoa(bk.SeatCount())})
	if bk.TotalPrice != nil {
		items = append(items, ticketItem{"Total", "LKR " + strconv.FormatFloat(*bk.TotalPrice, 'f', 2, 64)})
	}
	return append(items,
		ticketItem{"Status", bk.DisplayStatus()},
		ticketItem{"Payment", bk.DisplayPaymentStatus()},
	)
}
