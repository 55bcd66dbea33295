package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuzzyshak/narah/internal/models"
)

func userWithRole(t *testing.T, role models.UserRole) *models.User {
	t.Helper()
	perms, err := models.DefaultPermissions(role)
	require.NoError(t, err)
	return &models.User{ID: "user-1", Role: role, Permissions: perms}
}

func TestResolve(t *testing.T) {
	manager := userWithRole(t, models.RoleManager)
	regular := userWithRole(t, models.RoleUser)

	tests := []struct {
		name     string
		status   SessionStatus
		user     *models.User
		required models.Permission
		want     Verdict
	}{
		{"loading defers even with a user", SessionLoading, manager, models.PermManageVenues, VerdictDefer},
		{"loading defers without a user", SessionLoading, nil, "", VerdictDefer},
		{"unauthenticated is sent to sign in", SessionResolved, nil, "", VerdictSignIn},
		{"unauthenticated with permission still signs in", SessionResolved, nil, models.PermManageVenues, VerdictSignIn},
		{"authenticated, no permission required", SessionResolved, regular, "", VerdictAllow},
		{"authenticated but lacking permission", SessionResolved, regular, models.PermManageVenues, VerdictForbidden},
		{"authenticated with permission", SessionResolved, manager, models.PermManageVenues, VerdictAllow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.status, tt.user, tt.required))
		})
	}
}

// The guard holds independently of role because it consults the permission
// set, never the role name.
func TestResolveConsultsPermissionsNotRole(t *testing.T) {
	staff := userWithRole(t, models.RoleStaff)

	assert.Equal(t, VerdictAllow, Resolve(SessionResolved, staff, models.PermManageBookings))
	assert.Equal(t, VerdictForbidden, Resolve(SessionResolved, staff, models.PermManageVenues))
}
