package models

import (
	"strings"
	"time"
)

// BackendTimeLayout is the zone-less timestamp format the backend emits
const BackendTimeLayout = "2006-01-02T15:04:05"

// Schedule is one departure of a train between two stations
type Schedule struct {
	ID               int64    `json:"id"`
	TrainID          int64    `json:"trainId"`
	DepartureStation string   `json:"departureStation"`
	ArrivalStation   string   `json:"arrivalStation"`
	DepartureTime    string   `json:"departureTime"`
	ArrivalTime      string   `json:"arrivalTime"`
	Price            *float64 `json:"price"`
	CreatedAt        string   `json:"createdAt,omitempty"`
}

// ScheduleRequest is the body for creating or updating a schedule
type ScheduleRequest struct {
	TrainID          int64   `json:"trainId"`
	DepartureStation string  `json:"departureStation"`
	ArrivalStation   string  `json:"arrivalStation"`
	DepartureTime    string  `json:"departureTime"`
	ArrivalTime      string  `json:"arrivalTime"`
	Price            float64 `json:"price"`
}

// Label describes a schedule as "Colombo → Kandy, 2024-05-01 08:30"
func (s *Schedule) Label() string {
	return s.DepartureStation + " → " + s.ArrivalStation + ", " + FormatTimestamp(s.DepartureTime)
}

// FormatTimestamp renders a backend timestamp for display and
// falls back to the raw value when it cannot be parsed.
func FormatTimestamp(raw string) string {
	if raw == "" {
		return "-"
	}
	for _, layout := range []string{BackendTimeLayout, "2006-01-02T15:04", time.RFC3339, "2006-01-02T15:04:05.999999999"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02 15:04")
		}
	}
	return raw
}

// NormalizeTimestamp turns an HTML datetime-local value (no seconds) into
// the backend layout. Values already carrying seconds pass through.
func NormalizeTimestamp(raw string) string {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01-02T15:04", raw); err == nil {
		return t.Format(BackendTimeLayout)
	}
	return raw
}
