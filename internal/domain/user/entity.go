package user

import "time"

type Role string

const (
	RoleAdmin       Role = "admin"       // System administrator - full access
	RoleKepegawaian Role = "kepegawaian" // HR officer - manages employees, quotas and records
	RolePimpinan    Role = "pimpinan"    // Head of agency - final approver
	RoleAtasan      Role = "atasan"      // Direct supervisor - first approver
	RolePegawai     Role = "pegawai"     // Regular employee
)

func AllRoles() []Role {
	return []Role{RoleAdmin, RoleKepegawaian, RolePimpinan, RoleAtasan, RolePegawai}
}

func ParseRole(s string) (Role, bool) {
	for _, r := range AllRoles() {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash *string
	Role         Role
	EmployeeID   *string
	IsActive     bool
	GoogleID     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	EmployeeName *string
}

// IsAdmin checks if user is a system administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsHR checks if user manages personnel records
func (u *User) IsHR() bool {
	return u.Role == RoleKepegawaian || u.Role == RoleAdmin
}

// DisplayName is the employee name when linked, otherwise the username.
func (u *User) DisplayName() string {
	if u.EmployeeName != nil && *u.EmployeeName != "" {
		return *u.EmployeeName
	}
	return u.Username
}
