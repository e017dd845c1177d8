package models

import (
	"regexp"
	"strings"
)

// Role names as issued by the backend
const (
	RoleMember = "ROLE_MEMBER"
	RoleAdmin  = "ROLE_ADMIN"
)

// User is a backend account as returned by /api/admin/users and /api/users/me
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Enabled   bool   `json:"enabled"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// IsAdmin reports whether the user's role names the admin role
func (u *User) IsAdmin() bool {
	return IsAdminRole(u.Role)
}

// DisplayRole strips the ROLE_ prefix for presentation
func (u *User) DisplayRole() string {
	return DisplayRole(u.Role)
}

// UserUpdateRequest is the body of PUT /api/admin/users/{id}.
// Enabled is always sent; the backend overwrites it unconditionally.
type UserUpdateRequest struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
	Enabled  bool   `json:"enabled"`
}

// UserStatusRequest toggles only the enabled flag
type UserStatusRequest struct {
	Enabled bool `json:"enabled"`
}

// CreateUserRequest creates an account from the admin console
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// ValidEmail applies the same loose check the login and signup forms use
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// MinPasswordLength is enforced on login and registration forms
const MinPasswordLength = 8

// NormalizeRole upper-cases a role and adds the ROLE_ prefix when missing
func NormalizeRole(role string) string {
	role = strings.TrimSpace(role)
	if role == "" {
		return ""
	}
	role = strings.ToUpper(role)
	if !strings.HasPrefix(role, "ROLE_") {
		role = "ROLE_" + role
	}
	return role
}

// IsAdminRole reports whether any comma separated role contains ADMIN
func IsAdminRole(role string) bool {
	return strings.Contains(strings.ToUpper(role), "ADMIN")
}

// DisplayRole renders "ROLE_ADMIN,ROLE_MEMBER" as "Admin, Member"
func DisplayRole(role string) string {
	var out []string
	for _, part := range strings.Split(role, ",") {
		r := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(part)), "ROLE_")
		if r == "" {
			continue
		}
		out = append(out, r[:1]+strings.ToLower(r[1:]))
	}
	return strings.Join(out, ", ")
}
