package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access
	RoleHR       Role = "hr"       // Runs payroll, approves leave
	RoleEmployee Role = "employee" // Read access, own leave requests
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleHR || r == RoleEmployee
}

type User struct {
	ID           int64
	Email        string
	PasswordHash *string
	Role         Role
	EmployeeID   *string
	GoogleID     *string
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanManagePayroll checks if user may run payroll and approve leave
func (u *User) CanManagePayroll() bool {
	return u.Role == RoleAdmin || u.Role == RoleHR
}
