package services

import "lankarail-console/internal/models"

// Catalog groups the REST collections the dashboards read and write
type Catalog struct {
	AdminTrains    *Resource[models.Train]
	AdminStations  *Resource[models.Station]
	AdminRoutes    *Resource[models.Route]
	AdminSchedules *Resource[models.Schedule]
	AdminUsers     *Resource[models.User]
	AdminBookings  *Resource[models.Booking]

	Trains    *Resource[models.Train]
	Schedules *Resource[models.Schedule]
}

// NewCatalog binds every collection to client
func NewCatalog(client *APIClient) *Catalog {
	return &Catalog{
		AdminTrains:    NewResource[models.Train](client, "/api/admin/trains"),
		AdminStations:  NewResource[models.Station](client, "/api/admin/stations"),
		AdminRoutes:    NewResource[models.Route](client, "/api/admin/routes"),
		AdminSchedules: NewResource[models.Schedule](client, "/api/admin/schedules"),
		AdminUsers:     NewResource[models.User](client, "/api/admin/users"),
		AdminBookings:  NewResource[models.Booking](client, "/api/admin/bookings"),

		Trains:    NewResource[models.Train](client, "/api/trains"),
		Schedules: NewResource[models.Schedule](client, "/api/schedules"),
	}
}
