package types

import "time"

// Employee roles.
const (
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// Employee statuses.
const (
	EmployeeActive   = "active"
	EmployeeInactive = "inactive"
)

// Employee is a member of shop staff. Email identifies the employee at login.
type Employee struct {
	EmployeeID string    `json:"employee_id" yaml:"employee_id"`
	Name       string    `json:"name" yaml:"name"`
	Email      string    `json:"email" yaml:"email"`
	Phone      string    `json:"phone" yaml:"phone"`
	Role       string    `json:"role" yaml:"role"`
	Status     string    `json:"status" yaml:"status"`
	JoinedAt   time.Time `json:"joined_at" yaml:"joined_at"`
}

// ValidRole reports whether r is a recognized role.
func ValidRole(r string) bool {
	return r == RoleManager || r == RoleStaff
}

// Validate checks the fields required to persist the employee.
func (e *Employee) Validate() error {
	if e.Name == "" || e.Email == "" {
		return ErrInvalidName
	}
	if !ValidRole(e.Role) {
		return ErrInvalidRole
	}
	if e.Status != EmployeeActive && e.Status != EmployeeInactive {
		return ErrInvalidState
	}
	return nil
}

// IsActive reports whether the employee may log in.
func (e *Employee) IsActive() bool {
	return e.Status == EmployeeActive
}

// Activate marks the employee active. Idempotent.
func (e *Employee) Activate() {
	e.Status = EmployeeActive
}

// Deactivate marks the employee inactive. Idempotent.
func (e *Employee) Deactivate() {
	e.Status = EmployeeInactive
}
