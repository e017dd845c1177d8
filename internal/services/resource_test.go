package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lankarail-console/internal/models"
)

func TestResource_CRUD(t *testing.T) {
	var calls []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			if r.URL.Path == "/api/admin/stations" {
				w.Write([]byte(`[{"id":1,"name":"Fort","city":"Colombo"},{"id":2,"name":"Kandy","city":"Kandy"}]`))
				return
			}
			w.Write([]byte(`{"id":2,"name":"Kandy","city":"Kandy"}`))
		case http.MethodPost, http.MethodPut:
			var req models.StationRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			json.NewEncoder(w).Encode(models.Station{ID: 5, Name: req.Name, City: req.City})
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})

	stations := NewResource[models.Station](client, "/api/admin/stations")
	ctx := context.Background()

	list, err := stations.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	one, err := stations.Get(ctx, nil, 2)
	require.NoError(t, err)
	assert.Equal(t, "Kandy", one.Name)

	created, err := stations.Create(ctx, nil, models.StationRequest{Name: "Galle", City: "Galle"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)

	updated, err := stations.Update(ctx, nil, 5, models.StationRequest{Name: "Galle Fort", City: "Galle"})
	require.NoError(t, err)
	assert.Equal(t, "Galle Fort", updated.Name)

	require.NoError(t, stations.Delete(ctx, nil, 5))

	assert.Equal(t, []string{
		"GET /api/admin/stations",
		"GET /api/admin/stations/2",
		"POST /api/admin/stations",
		"PUT /api/admin/stations/5",
		"DELETE /api/admin/stations/5",
	}, calls)
}

func TestResource_ListNullIsEmpty(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	})

	list, err := NewResource[models.Train](client, "/api/trains").List(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestResource_Path(t *testing.T) {
	r := NewResource[models.Route](nil, "/api/admin/routes")
	assert.Equal(t, "/api/admin/routes", r.Path())
	assert.Equal(t, "/api/admin/routes/42", r.Path(42))
}
