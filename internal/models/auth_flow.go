package models

import (
	"encoding/json"
	"strings"
)

// Credentials is the body of login and register calls
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is what POST /api/auth/login returns
type LoginResponse struct {
	Message string          `json:"message"`
	Email   string          `json:"email"`
	Role    string          `json:"role"`
	Roles   json.RawMessage `json:"roles,omitempty"`
	Token   string          `json:"token"`
	ID      int64           `json:"id,omitempty"`
}

// RoleNames flattens roles, which the backend may send as strings or as
// {"authority": "..."} objects, and falls back to the single role field.
func (l *LoginResponse) RoleNames() []string {
	var names []string
	if len(l.Roles) > 0 {
		var raw []json.RawMessage
		if err := json.Unmarshal(l.Roles, &raw); err == nil {
			for _, item := range raw {
				var s string
				if err := json.Unmarshal(item, &s); err == nil {
					if s != "" {
						names = append(names, s)
					}
					continue
				}
				var obj struct {
					Authority string `json:"authority"`
					Role      string `json:"role"`
				}
				if err := json.Unmarshal(item, &obj); err == nil {
					if obj.Authority != "" {
						names = append(names, obj.Authority)
					} else if obj.Role != "" {
						names = append(names, obj.Role)
					}
				}
			}
		}
	}
	if len(names) == 0 && l.Role != "" {
		names = []string{l.Role}
	}
	return names
}

// PrimaryRole joins all role names so display and redirect checks see every role
func (l *LoginResponse) PrimaryRole() string {
	names := l.RoleNames()
	if len(names) == 0 {
		return RoleMember
	}
	return strings.Join(names, ",")
}
