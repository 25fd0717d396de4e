package rbac

import (
	"path/filepath"
	"testing"

	"go-presensi/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer(
		filepath.Join("infra", "model.conf"),
		filepath.Join("infra", "policy.csv"),
	)
	assert.NoError(t, err)
	return NewService(enforcer)
}

func TestService_Enforce_UserPermissions(t *testing.T) {
	svc := newTestService(t)

	allowed, err := svc.Enforce("user", "attendance", "create")
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Enforce("user", "attendance", "review")
	assert.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = svc.Enforce("user", "report", "read")
	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestService_Enforce_AdminInheritsUser(t *testing.T) {
	svc := newTestService(t)

	// Hak langsung admin.
	allowed, err := svc.Enforce("admin", "attendance", "review")
	assert.NoError(t, err)
	assert.True(t, allowed)

	// Hak warisan dari role user.
	allowed, err = svc.Enforce("admin", "attendance", "create")
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Enforce("admin", "office", "write")
	assert.NoError(t, err)
	assert.True(t, allowed)
}

func TestService_Enforce_UnknownRole(t *testing.T) {
	svc := newTestService(t)

	allowed, err := svc.Enforce("intern", "attendance", "create")
	assert.NoError(t, err)
	assert.False(t, allowed)
}
