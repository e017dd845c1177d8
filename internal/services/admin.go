package services

import (
	"context"
	"net/http"
	"strconv"

	"lankarail-console/internal/models"
)

// AdminService covers admin calls outside the generic collections
type AdminService struct {
	client *APIClient
}

func NewAdminService(client *APIClient) *AdminService {
	return &AdminService{client: client}
}

// Stats returns the dashboard counters
func (s *AdminService) Stats(ctx context.Context, sess *models.Session) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := s.client.Do(ctx, sess, http.MethodGet, "/api/admin/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// CreateAdmin creates an account with the admin role
func (s *AdminService) CreateAdmin(ctx context.Context, sess *models.Session, req models.CreateUserRequest) (*models.User, error) {
	req.Role = models.RoleAdmin
	var user models.User
	if err := s.client.Do(ctx, sess, http.MethodPost, "/api/admin/users/create-admin", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ToggleUser flips a user's enabled flag. current is the state the admin saw.
func (s *AdminService) ToggleUser(ctx context.Context, sess *models.Session, id int64, current bool) (*models.User, error) {
	var user models.User
	path := "/api/admin/users/" + strconv.FormatInt(id, 10)
	if err := s.client.Do(ctx, sess, http.MethodPut, path, models.UserStatusRequest{Enabled: !current}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
