package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mesh-intelligence/teashop/pkg/types"
)

const orderColumns = "order_id, customer, lines, status, created_at, updated_at"

// ordersTable implements types.Table for orders. Order lines are stored as a
// JSON array in the lines column.
type ordersTable struct {
	backend *Backend
}

var _ types.Table = (*ordersTable)(nil)

// Get retrieves an order by ID.
func (t *ordersTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if err := t.backend.readLock(); err != nil {
		return nil, err
	}
	defer t.backend.mu.RUnlock()

	row := t.backend.db.QueryRow(
		"SELECT "+orderColumns+" FROM orders WHERE order_id = ?", id)
	return scanOrder(row)
}

// Set creates or updates an order. New orders start pending and are stamped
// with CreatedAt; UpdatedAt is always stamped.
func (t *ordersTable) Set(id string, data any) (string, error) {
	o, ok := data.(*types.Order)
	if !ok || o == nil {
		return "", types.ErrInvalidData
	}
	if o.Status == "" {
		o.Status = types.OrderPending
	}
	if !types.ValidOrderStatus(o.Status) {
		return "", types.ErrInvalidState
	}
	if err := o.Validate(); err != nil {
		return "", err
	}
	if err := t.backend.writeLock(); err != nil {
		return "", err
	}
	defer t.backend.mu.Unlock()

	switch {
	case id != "":
		o.OrderID = id
	case o.OrderID == "":
		o.OrderID = newUUID()
	}
	now := time.Now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now

	if err := insertOrder(t.backend.db, o); err != nil {
		return "", err
	}
	if err := t.backend.persistOrders(); err != nil {
		return "", err
	}
	return o.OrderID, nil
}

// Delete removes an order.
func (t *ordersTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	if err := t.backend.writeLock(); err != nil {
		return err
	}
	defer t.backend.mu.Unlock()

	if err := t.backend.deleteRow("orders", "order_id", id); err != nil {
		return err
	}
	return t.backend.persistOrders()
}

// Fetch returns orders, newest first.
// Filter keys: "states" (string or []string of order statuses), "customer"
// (string), "limit" and "offset".
func (t *ordersTable) Fetch(filter types.Filter) ([]any, error) {
	var where whereClause

	states, err := filterStrings(filter, "states")
	if err != nil {
		return nil, err
	}
	where.addIn("status", states)

	customer, err := filterString(filter, "customer")
	if err != nil {
		return nil, err
	}
	if customer != "" {
		where.add("customer = ?", customer)
	}

	page, err := limitOffset(filter)
	if err != nil {
		return nil, err
	}

	if err := t.backend.readLock(); err != nil {
		return nil, err
	}
	defer t.backend.mu.RUnlock()

	orders, err := t.backend.queryOrders(
		"SELECT "+orderColumns+" FROM orders"+where.String()+
			" ORDER BY created_at DESC, order_id DESC"+page, where.args...)
	if err != nil {
		return nil, err
	}
	results := make([]any, len(orders))
	for i, o := range orders {
		results[i] = o
	}
	return results, nil
}

func (b *Backend) queryOrders(query string, args ...any) ([]*types.Order, error) {
	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching orders: %w", err)
	}
	defer rows.Close()

	var orders []*types.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func scanOrder(row rowScanner) (*types.Order, error) {
	var o types.Order
	var lines, createdAt, updatedAt string
	err := row.Scan(&o.OrderID, &o.Customer, &lines, &o.Status, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning order: %w", err)
	}
	if err := json.Unmarshal([]byte(lines), &o.Lines); err != nil {
		return nil, fmt.Errorf("parsing order lines: %w", err)
	}
	if o.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if o.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

func insertOrder(ex execer, o *types.Order) error {
	lines, err := json.Marshal(o.Lines)
	if err != nil {
		return fmt.Errorf("encoding order lines: %w", err)
	}
	_, err = ex.Exec(`
		INSERT INTO orders (`+orderColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(order_id) DO UPDATE SET
			customer = excluded.customer,
			lines = excluded.lines,
			status = excluded.status,
			updated_at = excluded.updated_at`,
		o.OrderID, o.Customer, string(lines), o.Status,
		formatTime(o.CreatedAt), formatTime(o.UpdatedAt))
	if err != nil {
		return fmt.Errorf("upserting order: %w", err)
	}
	return nil
}

func loadOrderRecord(ex execer, rec json.RawMessage) error {
	var o types.Order
	if err := decodeRecord(rec, &o, func() string { return o.OrderID }); err != nil {
		return err
	}
	if o.Lines == nil {
		o.Lines = []types.OrderLine{}
	}
	return insertOrder(ex, &o)
}

// persistOrders rewrites orders.jsonl from the table.
func (b *Backend) persistOrders() error {
	orders, err := b.queryOrders("SELECT " + orderColumns + " FROM orders ORDER BY created_at, order_id")
	if err != nil {
		return err
	}
	records, err := marshalRecords(orders)
	if err != nil {
		return err
	}
	return writeJSONL(filepath.Join(b.config.DataDir, ordersFile), records)
}
