package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"admin", "ROLE_ADMIN"},
		{" member ", "ROLE_MEMBER"},
		{"ROLE_ADMIN", "ROLE_ADMIN"},
		{"role_member", "ROLE_MEMBER"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRole(tt.in))
		})
	}
}

func TestDisplayRole(t *testing.T) {
	assert.Equal(t, "Admin", DisplayRole("ROLE_ADMIN"))
	assert.Equal(t, "Admin, Member", DisplayRole("ROLE_ADMIN,ROLE_MEMBER"))
	assert.Equal(t, "", DisplayRole(""))

	u := &User{Role: "ROLE_MEMBER"}
	assert.Equal(t, "Member", u.DisplayRole())
	assert.False(t, u.IsAdmin())
}

func TestIsAdminRole(t *testing.T) {
	assert.True(t, IsAdminRole("ROLE_ADMIN"))
	assert.True(t, IsAdminRole("ROLE_MEMBER,ROLE_ADMIN"))
	assert.True(t, IsAdminRole("admin"))
	assert.False(t, IsAdminRole("ROLE_MEMBER"))
	assert.False(t, IsAdminRole(""))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("nimal@example.lk"))
	assert.False(t, ValidEmail("nimal"))
	assert.False(t, ValidEmail("nimal@example"))
	assert.False(t, ValidEmail(""))
}

func TestSession(t *testing.T) {
	var anon *Session
	assert.False(t, anon.Authenticated())
	assert.False(t, anon.IsAdmin())
	assert.Equal(t, "", anon.DisplayName())

	s := &Session{Email: "admin@lankarail.lk", Role: "ROLE_ADMIN"}
	assert.True(t, s.Authenticated())
	assert.True(t, s.IsAdmin())
	assert.Equal(t, "admin@lankarail.lk • Admin", s.DisplayName())

	s.Role = ""
	assert.Equal(t, "admin@lankarail.lk", s.DisplayName())
}

func TestLoginResponseRoles(t *testing.T) {
	t.Run("mixed role shapes", func(t *testing.T) {
		l := &LoginResponse{Roles: []byte(`["ROLE_ADMIN", {"authority": "ROLE_MEMBER"}]`)}
		assert.Equal(t, []string{"ROLE_ADMIN", "ROLE_MEMBER"}, l.RoleNames())
		assert.Equal(t, "ROLE_ADMIN,ROLE_MEMBER", l.PrimaryRole())
	})

	t.Run("single role field", func(t *testing.T) {
		l := &LoginResponse{Role: "ROLE_ADMIN"}
		assert.Equal(t, []string{"ROLE_ADMIN"}, l.RoleNames())
	})

	t.Run("no roles defaults to member", func(t *testing.T) {
		l := &LoginResponse{}
		assert.Empty(t, l.RoleNames())
		assert.Equal(t, RoleMember, l.PrimaryRole())
	})
}
