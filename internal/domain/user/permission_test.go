package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleAdmin, PermissionPayrollRun))
	assert.True(t, HasPermission(RoleHR, PermissionLeaveApprove))
	assert.True(t, HasPermission(RoleEmployee, PermissionLeaveCreate))
	assert.False(t, HasPermission(RoleEmployee, PermissionPayrollRun))
	assert.False(t, HasPermission(Role("guest"), PermissionRecordsView))
}

func TestUser_CanManagePayroll(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).CanManagePayroll())
	assert.True(t, (&User{Role: RoleHR}).CanManagePayroll())
	assert.False(t, (&User{Role: RoleEmployee}).CanManagePayroll())
}
