package models

// Train is a rolling stock entry
type Train struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Capacity  *int   `json:"capacity"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// TrainRequest is the body for creating or updating a train
type TrainRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Capacity int    `json:"capacity"`
}

// Station is a stop on the network
type Station struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	City      string `json:"city"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// StationRequest is the body for creating or updating a station
type StationRequest struct {
	Name string `json:"name"`
	City string `json:"city"`
}

// Route connects an origin and a destination
type Route struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	DistanceKm  *float64 `json:"distanceKm"`
	CreatedAt   string   `json:"createdAt,omitempty"`
}

// RouteRequest is the body for creating or updating a route
type RouteRequest struct {
	Name        string  `json:"name"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	DistanceKm  float64 `json:"distanceKm"`
}
