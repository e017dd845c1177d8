package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCatalog_Paths(t *testing.T) {
	c := NewCatalog(NewAPIClient("http://backend", 0, nil, nil))

	assert.Equal(t, "/api/admin/trains/3", c.AdminTrains.Path(3))
	assert.Equal(t, "/api/admin/stations", c.AdminStations.Path())
	assert.Equal(t, "/api/admin/routes", c.AdminRoutes.Path())
	assert.Equal(t, "/api/admin/schedules", c.AdminSchedules.Path())
	assert.Equal(t, "/api/admin/users/7", c.AdminUsers.Path(7))
	assert.Equal(t, "/api/admin/bookings", c.AdminBookings.Path())
	assert.Equal(t, "/api/trains", c.Trains.Path())
	assert.Equal(t, "/api/schedules/10", c.Schedules.Path(10))
}
