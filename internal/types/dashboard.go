package types

import "lankarail-console/internal/models"

// ScheduleRow is a schedule with its train resolved for display
type ScheduleRow struct {
	Schedule   models.Schedule
	TrainLabel string
}

// BookingRow is a booking with its foreign keys resolved for display.
// Schedule and Train are nil when the referenced record was not found.
type BookingRow struct {
	Booking       models.Booking
	UserLabel     string
	ScheduleLabel string
	TrainLabel    string
	Schedule      *models.Schedule
	Train         *models.Train
}

// TicketView is everything the printable ticket page shows
type TicketView struct {
	Row       BookingRow
	Passenger string
}

// SearchQuery echoes the passenger search form back into the page
type SearchQuery struct {
	From string
	To   string
	Date string
}

// AuthForm carries login and register form state between submissions
type AuthForm struct {
	Email    string
	Redirect string
	Error    string
	Notice   string
}
