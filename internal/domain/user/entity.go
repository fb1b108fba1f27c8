package user

import "time"

type Role string

const (
	RoleEmployee Role = "employee" // Checks in and out
	RoleManager  Role = "manager"  // Reads every record and the dashboard
)

// DefaultDepartment is assigned when registration leaves the department blank.
const DefaultDepartment = "IT"

func (r Role) IsValid() bool {
	return r == RoleEmployee || r == RoleManager
}

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	EmployeeCode string
	Department   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsManager checks if user can read other users' attendance
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}
