package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lankarail-console/internal/models"
	"lankarail-console/internal/services"
	"lankarail-console/web/templates/components"
)

func trainsPanel(trains *MockResource[models.Train]) Panel[models.Train] {
	return Panel[models.Train]{
		Name:   "trains",
		Title:  "trains",
		Fetch:  trains.List,
		Render: components.TrainsTable,
	}
}

func TestPanel_RendersItems(t *testing.T) {
	trains := new(MockResource[models.Train])
	trains.On("List", mock.Anything, mock.Anything).Return([]models.Train{{ID: 3, Name: "Udarata Menike", Type: "Express"}}, nil)

	rec := serve(http.MethodGet, "/admin/panels/trains", trainsPanel(trains).Handler(newTestBase()),
		newRequest(http.MethodGet, "/admin/panels/trains", nil, adminSession(), true))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Udarata Menike")
	assert.NotContains(t, rec.Body.String(), "No trains available.")
	trains.AssertExpectations(t)
}

func TestPanel_EmptyListShowsEmptyState(t *testing.T) {
	trains := new(MockResource[models.Train])
	trains.On("List", mock.Anything, mock.Anything).Return([]models.Train{}, nil)

	rec := serve(http.MethodGet, "/admin/panels/trains", trainsPanel(trains).Handler(newTestBase()),
		newRequest(http.MethodGet, "/admin/panels/trains", nil, adminSession(), true))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No trains available.")
	assert.NotContains(t, rec.Body.String(), "<table")
}

func TestPanel_CustomEmptyText(t *testing.T) {
	p := Panel[models.Train]{Title: "trains", EmptyText: "Nothing here yet."}
	assert.Equal(t, "Nothing here yet.", p.emptyText())
	assert.Equal(t, "No trains available.", Panel[models.Train]{Title: "trains"}.emptyText())
}

func TestPanel_ErrorReplacesBody(t *testing.T) {
	trains := new(MockResource[models.Train])
	trains.On("List", mock.Anything, mock.Anything).Return(nil, &services.APIError{
		Method: http.MethodGet, Path: "/api/admin/trains", Status: 500, Message: "database down", Body: "database down",
	})

	rec := serve(http.MethodGet, "/admin/panels/trains", trainsPanel(trains).Handler(newTestBase()),
		newRequest(http.MethodGet, "/admin/panels/trains", nil, adminSession(), true))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Failed to load trains")
	assert.Contains(t, body, "database down")
	assert.NotContains(t, body, "<table")
	assert.NotContains(t, body, "No trains available.")
}

func TestPanel_NetworkErrorIsShown(t *testing.T) {
	trains := new(MockResource[models.Train])
	trains.On("List", mock.Anything, mock.Anything).Return(nil, &services.TransportError{
		Method: http.MethodGet, Path: "/api/admin/trains", Err: errors.New("connection refused"),
	})

	rec := serve(http.MethodGet, "/admin/panels/trains", trainsPanel(trains).Handler(newTestBase()),
		newRequest(http.MethodGet, "/admin/panels/trains", nil, adminSession(), true))

	assert.Contains(t, rec.Body.String(), "Network error: connection refused")
}

func TestPanel_UnauthorizedSignsOut(t *testing.T) {
	trains := new(MockResource[models.Train])
	trains.On("List", mock.Anything, mock.Anything).Return(nil, unauthorized())

	rec := serve(http.MethodGet, "/admin/panels/trains", trainsPanel(trains).Handler(newTestBase()),
		newRequest(http.MethodGet, "/admin/panels/trains", nil, adminSession(), true))

	assert.Equal(t, "/login", rec.Header().Get("HX-Redirect"))
	cookie := rec.Header().Get("Set-Cookie")
	require.NotEmpty(t, cookie)
	assert.Contains(t, cookie, "lankarail_session=")
	assert.Contains(t, cookie, "Max-Age=0")
	assert.NotContains(t, rec.Body.String(), "Failed to load")
}

func TestPanel_UnauthorizedWithoutHTMXRedirects(t *testing.T) {
	trains := new(MockResource[models.Train])
	trains.On("List", mock.Anything, mock.Anything).Return(nil, unauthorized())

	rec := serve(http.MethodGet, "/admin/panels/trains", trainsPanel(trains).Handler(newTestBase()),
		newRequest(http.MethodGet, "/admin/panels/trains", nil, adminSession(), false))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestPanel_JoinSkippedWhenEmpty(t *testing.T) {
	schedules := new(MockResource[models.Schedule])
	schedules.On("List", mock.Anything, mock.Anything).Return([]models.Schedule{}, nil)

	joined := false
	h := Panel[models.Schedule]{Name: "schedules", Title: "schedules", Fetch: schedules.List}.
		Joined(newTestBase(), func(ctx context.Context, sess *models.Session, items []models.Schedule) (templ.Component, error) {
			joined = true
			return components.EmptyState("unreachable"), nil
		})

	rec := serve(http.MethodGet, "/admin/panels/schedules", h,
		newRequest(http.MethodGet, "/admin/panels/schedules", nil, adminSession(), true))

	assert.False(t, joined)
	assert.Contains(t, rec.Body.String(), "No schedules available.")
}

func TestFragment_FullPageWithoutHTMX(t *testing.T) {
	b := newTestBase()
	h := b.Fragment("stats", func(ctx context.Context, sess *models.Session) (templ.Component, error) {
		return components.EmptyState("nothing"), nil
	})

	rec := serve(http.MethodGet, "/admin/panels/stats", h,
		newRequest(http.MethodGet, "/admin/panels/stats", nil, adminSession(), false))

	assert.Contains(t, rec.Body.String(), "<html")
	assert.Contains(t, rec.Body.String(), "nothing")
}
