package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mesh-intelligence/teashop/pkg/types"
)

const employeeColumns = "employee_id, name, email, phone, role, status, joined_at"

// employeesTable implements types.Table for employees.
type employeesTable struct {
	backend *Backend
}

var _ types.Table = (*employeesTable)(nil)

// Get retrieves an employee by ID.
func (t *employeesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if err := t.backend.readLock(); err != nil {
		return nil, err
	}
	defer t.backend.mu.RUnlock()

	row := t.backend.db.QueryRow(
		"SELECT "+employeeColumns+" FROM employees WHERE employee_id = ?", id)
	return scanEmployee(row)
}

// Set creates or updates an employee. New employees default to active and
// are stamped with JoinedAt. Email is normalized to lower case and must be
// unique; a clash returns ErrDuplicate.
func (t *employeesTable) Set(id string, data any) (string, error) {
	e, ok := data.(*types.Employee)
	if !ok || e == nil {
		return "", types.ErrInvalidData
	}
	e.Email = strings.ToLower(strings.TrimSpace(e.Email))
	if e.Status == "" {
		e.Status = types.EmployeeActive
	}
	if err := e.Validate(); err != nil {
		return "", err
	}
	if err := t.backend.writeLock(); err != nil {
		return "", err
	}
	defer t.backend.mu.Unlock()

	switch {
	case id != "":
		e.EmployeeID = id
	case e.EmployeeID == "":
		e.EmployeeID = newUUID()
	}
	if e.JoinedAt.IsZero() {
		e.JoinedAt = time.Now()
	}

	var owner string
	err := t.backend.db.QueryRow(
		"SELECT employee_id FROM employees WHERE email = ?", e.Email).Scan(&owner)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return "", fmt.Errorf("checking employee email: %w", err)
	case owner != e.EmployeeID:
		return "", fmt.Errorf("employee email %s: %w", e.Email, types.ErrDuplicate)
	}

	if err := insertEmployee(t.backend.db, e); err != nil {
		return "", err
	}
	if err := t.backend.persistEmployees(); err != nil {
		return "", err
	}
	return e.EmployeeID, nil
}

// Delete removes an employee.
func (t *employeesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	if err := t.backend.writeLock(); err != nil {
		return err
	}
	defer t.backend.mu.Unlock()

	if err := t.backend.deleteRow("employees", "employee_id", id); err != nil {
		return err
	}
	return t.backend.persistEmployees()
}

// Fetch returns employees ordered by name.
// Filter keys: "role" and "status" (string or []string), "email" (string,
// matched case-insensitively), "limit" and "offset".
func (t *employeesTable) Fetch(filter types.Filter) ([]any, error) {
	var where whereClause

	roles, err := filterStrings(filter, "role")
	if err != nil {
		return nil, err
	}
	where.addIn("role", roles)

	statuses, err := filterStrings(filter, "status")
	if err != nil {
		return nil, err
	}
	where.addIn("status", statuses)

	email, err := filterString(filter, "email")
	if err != nil {
		return nil, err
	}
	if email != "" {
		where.add("email = ?", strings.ToLower(strings.TrimSpace(email)))
	}

	page, err := limitOffset(filter)
	if err != nil {
		return nil, err
	}

	if err := t.backend.readLock(); err != nil {
		return nil, err
	}
	defer t.backend.mu.RUnlock()

	employees, err := t.backend.queryEmployees(
		"SELECT "+employeeColumns+" FROM employees"+where.String()+
			" ORDER BY name COLLATE NOCASE, employee_id"+page, where.args...)
	if err != nil {
		return nil, err
	}
	results := make([]any, len(employees))
	for i, e := range employees {
		results[i] = e
	}
	return results, nil
}

func (b *Backend) queryEmployees(query string, args ...any) ([]*types.Employee, error) {
	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching employees: %w", err)
	}
	defer rows.Close()

	var employees []*types.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func scanEmployee(row rowScanner) (*types.Employee, error) {
	var e types.Employee
	var joinedAt string
	err := row.Scan(&e.EmployeeID, &e.Name, &e.Email, &e.Phone, &e.Role, &e.Status, &joinedAt)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning employee: %w", err)
	}
	if e.JoinedAt, err = parseTime(joinedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func insertEmployee(ex execer, e *types.Employee) error {
	_, err := ex.Exec(`
		INSERT INTO employees (`+employeeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			phone = excluded.phone,
			role = excluded.role,
			status = excluded.status,
			joined_at = excluded.joined_at`,
		e.EmployeeID, e.Name, e.Email, e.Phone, e.Role, e.Status, formatTime(e.JoinedAt))
	if err != nil {
		return fmt.Errorf("upserting employee: %w", err)
	}
	return nil
}

func loadEmployeeRecord(ex execer, rec json.RawMessage) error {
	var e types.Employee
	if err := decodeRecord(rec, &e, func() string { return e.EmployeeID }); err != nil {
		return err
	}
	return insertEmployee(ex, &e)
}

// persistEmployees rewrites employees.jsonl from the table.
func (b *Backend) persistEmployees() error {
	employees, err := b.queryEmployees("SELECT " + employeeColumns + " FROM employees ORDER BY employee_id")
	if err != nil {
		return err
	}
	records, err := marshalRecords(employees)
	if err != nil {
		return err
	}
	return writeJSONL(filepath.Join(b.config.DataDir, employeesFile), records)
}
