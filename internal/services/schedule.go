package services

import (
	"context"
	"net/http"
	"net/url"

	"lankarail-console/internal/models"
)

// ScheduleService runs the passenger journey search
type ScheduleService struct {
	client *APIClient
}

func NewScheduleService(client *APIClient) *ScheduleService {
	return &ScheduleService{client: client}
}

// Search finds schedules between two stations, optionally on a date (yyyy-mm-dd)
func (s *ScheduleService) Search(ctx context.Context, sess *models.Session, from, to, date string) ([]models.Schedule, error) {
	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)
	if date != "" {
		q.Set("date", date)
	}

	var schedules []models.Schedule
	if err := s.client.Do(ctx, sess, http.MethodGet, "/api/schedules/search?"+q.Encode(), nil, &schedules); err != nil {
		return nil, err
	}
	if schedules == nil {
		schedules = []models.Schedule{}
	}
	return schedules, nil
}
