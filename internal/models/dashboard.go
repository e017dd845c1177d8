package models

// DashboardStats is returned by GET /api/admin/dashboard/stats
type DashboardStats struct {
	TotalTrains     int64 `json:"totalTrains"`
	TotalSchedules  int64 `json:"totalSchedules"`
	PendingBookings int64 `json:"pendingBookings"`
	TotalUsers      int64 `json:"totalUsers"`
	TotalBookings   int64 `json:"totalBookings,omitempty"`
}
