package sqlite

import (
	"database/sql"
	"fmt"
)

// Schema DDL for all tables.
const (
	createInventory = `CREATE TABLE inventory (
    item_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    current_stock REAL NOT NULL,
    threshold REAL NOT NULL,
    unit TEXT NOT NULL,
    supplier TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createEmployees = `CREATE TABLE employees (
    employee_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    phone TEXT NOT NULL,
    role TEXT NOT NULL,
    status TEXT NOT NULL,
    joined_at TEXT NOT NULL
);`

	createOrders = `CREATE TABLE orders (
    order_id TEXT PRIMARY KEY,
    customer TEXT NOT NULL,
    lines TEXT NOT NULL,
    status TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createReportLines = `CREATE TABLE report_lines (
    line_id TEXT PRIMARY KEY,
    date TEXT NOT NULL,
    product TEXT NOT NULL,
    category TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    revenue REAL NOT NULL,
    profit REAL NOT NULL
);`
)

// Index DDL for common queries.
const (
	idxInventoryCategory = `CREATE INDEX idx_inventory_category ON inventory(category);`
	idxEmployeesRole     = `CREATE INDEX idx_employees_role ON employees(role);`
	idxOrdersStatus      = `CREATE INDEX idx_orders_status ON orders(status);`
	idxOrdersCreated     = `CREATE INDEX idx_orders_created ON orders(created_at);`
	idxReportLinesDate   = `CREATE INDEX idx_report_lines_date ON report_lines(date);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createInventory,
	createEmployees,
	createOrders,
	createReportLines,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxInventoryCategory,
	idxEmployeesRole,
	idxOrdersStatus,
	idxOrdersCreated,
	idxReportLinesDate,
}

// createSchema executes every table and index statement.
func createSchema(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, stmt := range indexDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}
