// Package session keeps track of the employee signed in to teashop. A
// session is resolved from an active employee's email; there are no
// passwords or tokens. The session lives in session.yaml in the config
// directory.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/mesh-intelligence/teashop/pkg/types"
)

// ErrInactive is returned when an inactive employee tries to sign in.
var ErrInactive = errors.New("employee is inactive")

// managerOnly lists the tables restricted to managers.
var managerOnly = map[string]bool{
	types.EmployeesTable: true,
	types.ReportsTable:   true,
}

// Session is the signed-in employee.
type Session struct {
	EmployeeID string    `json:"employee_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	StartedAt  time.Time `json:"started_at"`
}

// sessionFile is the on-disk form of a Session.
type sessionFile struct {
	EmployeeID string `yaml:"employee_id"`
	Name       string `yaml:"name"`
	Email      string `yaml:"email"`
	Role       string `yaml:"role"`
	StartedAt  string `yaml:"started_at"`
}

// Login resolves email to an active employee and starts a session.
// Returns ErrNotFound for an unknown email and ErrInactive for an inactive
// employee.
func Login(shop types.Shop, email string, now time.Time) (*Session, error) {
	tbl, err := shop.GetTable(types.EmployeesTable)
	if err != nil {
		return nil, fmt.Errorf("opening employees table: %w", err)
	}
	results, err := tbl.Fetch(types.Filter{"email": email})
	if err != nil {
		return nil, fmt.Errorf("looking up employee: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("employee %s: %w", email, types.ErrNotFound)
	}
	e, ok := results[0].(*types.Employee)
	if !ok {
		return nil, types.ErrInvalidData
	}
	if !e.IsActive() {
		return nil, fmt.Errorf("employee %s: %w", e.Email, ErrInactive)
	}
	return &Session{
		EmployeeID: e.EmployeeID,
		Name:       e.Name,
		Email:      e.Email,
		Role:       e.Role,
		StartedAt:  now.UTC().Truncate(time.Second),
	}, nil
}

// IsManager reports whether the session belongs to a manager.
func (s *Session) IsManager() bool {
	return s != nil && s.Role == types.RoleManager
}

// RequireRole returns ErrNotLoggedIn for a nil session and ErrForbidden
// unless the session holds role. Managers satisfy every role.
func (s *Session) RequireRole(role string) error {
	if s == nil {
		return types.ErrNotLoggedIn
	}
	if s.Role == role || s.IsManager() {
		return nil
	}
	return fmt.Errorf("%s requires %s: %w", s.Email, role, types.ErrForbidden)
}

// Authorize checks whether the session may view table. Employees and
// reports are manager-only.
func (s *Session) Authorize(table string) error {
	if managerOnly[table] {
		return s.RequireRole(types.RoleManager)
	}
	return s.RequireRole(types.RoleStaff)
}

// CanView reports whether Authorize(table) would succeed.
func (s *Session) CanView(table string) bool {
	return s.Authorize(table) == nil
}

// Load reads the session stored at path. Returns ErrNotLoggedIn when no
// session file exists.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, types.ErrNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var f sessionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}
	if f.EmployeeID == "" {
		return nil, types.ErrNotLoggedIn
	}
	started, err := time.Parse(time.RFC3339, f.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing session start: %w", err)
	}
	return &Session{
		EmployeeID: f.EmployeeID,
		Name:       f.Name,
		Email:      f.Email,
		Role:       f.Role,
		StartedAt:  started,
	}, nil
}

// Save writes s to path, creating the directory if needed.
func Save(path string, s *Session) error {
	data, err := yaml.Marshal(sessionFile{
		EmployeeID: s.EmployeeID,
		Name:       s.Name,
		Email:      s.Email,
		Role:       s.Role,
		StartedAt:  s.StartedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// Clear removes the session at path. Clearing a missing session succeeds.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}
