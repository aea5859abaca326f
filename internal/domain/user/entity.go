package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access, manages work sites and employees
	RoleManager  Role = "manager"  // Reads all attendance, leads and reports
	RoleEmployee Role = "employee" // Sales rep / field employee
)

type User struct {
	ID              string
	Email           string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	LastSeenAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO / Join
	EmployeeID *string
}

// IsAdmin checks if user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager checks if user is manager or admin
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

// CanReadAllAttendance checks if user may read other employees' records
func (u *User) CanReadAllAttendance() bool {
	return u.IsManager()
}
