package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"lankarail-console/internal/auth"
	"lankarail-console/internal/logger"
	"lankarail-console/internal/models"
)

// AuthService signs users in and out of the railway backend
type AuthService struct {
	client *APIClient
}

// NewAuthService creates a new authentication service
func NewAuthService(client *APIClient) *AuthService {
	return &AuthService{client: client}
}

// Register creates a member account
func (s *AuthService) Register(ctx context.Context, creds models.Credentials) (*models.User, error) {
	if err := validateCredentials(creds); err != nil {
		return nil, err
	}
	var user models.User
	if err := s.client.Do(ctx, nil, http.MethodPost, "/api/auth/register", creds, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates against the backend and returns a populated session.
// The backend's session cookie and token are kept so later calls act as this user.
func (s *AuthService) Login(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	if err := validateCredentials(creds); err != nil {
		return nil, err
	}

	var resp models.LoginResponse
	header, err := s.client.send(ctx, nil, http.MethodPost, "/api/auth/login", creds, &resp)
	if err != nil {
		return nil, err
	}

	sess := &models.Session{
		UserID:         resp.ID,
		Email:          resp.Email,
		Role:           resp.PrimaryRole(),
		Token:          resp.Token,
		BackendCookies: cookiesFromHeader(header),
	}
	if sess.Email == "" {
		if claims, err := auth.ParseToken(resp.Token); err == nil && claims.Subject != "" {
			sess.Email = claims.Subject
		} else {
			sess.Email = creds.Email
		}
	}

	me, err := s.Me(ctx, sess)
	switch {
	case err == nil:
		sess.UserID = me.ID
		if me.Email != "" {
			sess.Email = me.Email
		}
		if me.Role != "" {
			sess.Role = me.Role
		}
	case IsUnauthorized(err):
		return nil, err
	default:
		// The login itself succeeded; keep what the login response told us.
		logger.For(ctx, s.client.logger).Warn("profile lookup after login failed", zap.Error(err))
	}

	return sess, nil
}

// Logout ends the backend session. Failures are logged and otherwise ignored
// because the console clears its own session regardless.
func (s *AuthService) Logout(ctx context.Context, sess *models.Session) {
	if err := s.client.Do(ctx, sess, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		logger.For(ctx, s.client.logger).Info("backend logout failed", zap.Error(err))
	}
}

// Me returns the signed in user's profile
func (s *AuthService) Me(ctx context.Context, sess *models.Session) (*models.User, error) {
	var user models.User
	if err := s.client.Do(ctx, sess, http.MethodGet, "/api/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func validateCredentials(creds models.Credentials) error {
	if !models.ValidEmail(strings.TrimSpace(creds.Email)) {
		return fmt.Errorf("%w: please enter a valid email", models.ErrInvalidInput)
	}
	if len(creds.Password) < models.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", models.ErrInvalidInput, models.MinPasswordLength)
	}
	return nil
}

func cookiesFromHeader(header http.Header) []*http.Cookie {
	if header == nil {
		return nil
	}
	resp := http.Response{Header: header}
	var out []*http.Cookie
	for _, c := range resp.Cookies() {
		if c.Value == "" || c.MaxAge < 0 {
			continue
		}
		out = append(out, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	return out
}

// ValidationMessage strips the sentinel prefix from a locally raised input
// error. Backend errors keep the server's own message.
func ValidationMessage(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) && errors.Is(err, models.ErrInvalidInput) {
		return strings.TrimPrefix(err.Error(), models.ErrInvalidInput.Error()+": ")
	}
	return UserMessage(err)
}
