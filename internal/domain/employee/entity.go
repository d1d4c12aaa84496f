package employee

import (
	"time"
)

type Role string

const (
	RoleEmployee         Role = "employee"
	RoleReportingManager Role = "reporting_manager"
	RoleSuperAdmin       Role = "super_admin"
)

func IsValidRole(r Role) bool {
	switch r {
	case RoleEmployee, RoleReportingManager, RoleSuperAdmin:
		return true
	}
	return false
}

type Employee struct {
	ID                 string
	OrganizationID     string
	Name               string
	Email              string
	Username           string
	PasswordHash       string
	Role               Role
	IsActive           bool
	Salary             float64
	JoinDate           time.Time
	CheckInTime        string // "HH:MM", falls back to the organization default
	CheckOutTime       string
	WorkDurationHours  float64
	AllotedLeave       int
	LeaveTaken         int
	ReportingManagerID *string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined for responses
	ReportingManagerName *string
}

// Actor is the authenticated principal performing an operation, as
// carried by the JWT claims.
type Actor struct {
	ID             string
	OrganizationID string
	Role           Role
}

// CanDecideFor reports whether the actor has approval authority over the
// employee: super admins always, reporting managers only for their own
// reports.
func (a Actor) CanDecideFor(emp Employee) bool {
	if a.Role == RoleSuperAdmin {
		return true
	}
	return emp.ReportingManagerID != nil && *emp.ReportingManagerID == a.ID
}
