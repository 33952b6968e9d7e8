package entity

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleStudent indicates a student account.
	RoleStudent Role = "student"
	// RoleTeacher indicates a teacher account.
	RoleTeacher Role = "teacher"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher:
		return true
	default:
		return false
	}
}
