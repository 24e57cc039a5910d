package user

type Permission string

const (
	PermissionRecordsView   Permission = "records.view"
	PermissionRecordsManage Permission = "records.manage"
	PermissionPayrollRun    Permission = "payroll.run"
	PermissionLeaveCreate   Permission = "leave.create"
	PermissionLeaveApprove  Permission = "leave.approve"
	PermissionDocumentsEdit Permission = "documents.edit"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionRecordsView,
		PermissionRecordsManage,
		PermissionPayrollRun,
		PermissionLeaveCreate,
		PermissionLeaveApprove,
		PermissionDocumentsEdit,
	},
	RoleHR: {
		PermissionRecordsView,
		PermissionRecordsManage,
		PermissionPayrollRun,
		PermissionLeaveCreate,
		PermissionLeaveApprove,
		PermissionDocumentsEdit,
	},
	RoleEmployee: {
		PermissionRecordsView,
		PermissionLeaveCreate,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
