package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mesh-intelligence/teashop/pkg/types"
)

const inventoryColumns = "item_id, name, category, current_stock, threshold, unit, supplier, updated_at"

// stockStatusExpr derives InventoryItem.Status in SQL.
const stockStatusExpr = `CASE
	WHEN current_stock <= 0 THEN 'out'
	WHEN current_stock < threshold THEN 'low'
	ELSE 'ok' END`

// inventoryTable implements types.Table for inventory items.
type inventoryTable struct {
	backend *Backend
}

var _ types.Table = (*inventoryTable)(nil)

// Get retrieves an inventory item by ID.
func (t *inventoryTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if err := t.backend.readLock(); err != nil {
		return nil, err
	}
	defer t.backend.mu.RUnlock()

	row := t.backend.db.QueryRow(
		"SELECT "+inventoryColumns+" FROM inventory WHERE item_id = ?", id)
	return scanInventory(row)
}

// Set creates or updates an inventory item. UpdatedAt is always stamped.
func (t *inventoryTable) Set(id string, data any) (string, error) {
	item, ok := data.(*types.InventoryItem)
	if !ok || item == nil {
		return "", types.ErrInvalidData
	}
	if err := item.Validate(); err != nil {
		return "", err
	}
	if err := t.backend.writeLock(); err != nil {
		return "", err
	}
	defer t.backend.mu.Unlock()

	switch {
	case id != "":
		item.ItemID = id
	case item.ItemID == "":
		item.ItemID = newUUID()
	}
	item.UpdatedAt = time.Now()

	if err := insertInventory(t.backend.db, item); err != nil {
		return "", err
	}
	if err := t.backend.persistInventory(); err != nil {
		return "", err
	}
	return item.ItemID, nil
}

// Delete removes an inventory item.
func (t *inventoryTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	if err := t.backend.writeLock(); err != nil {
		return err
	}
	defer t.backend.mu.Unlock()

	if err := t.backend.deleteRow("inventory", "item_id", id); err != nil {
		return err
	}
	return t.backend.persistInventory()
}

// Fetch returns inventory items ordered by name.
// Filter keys: "category" and "status" (string or []string), "supplier"
// (string), "limit" and "offset".
func (t *inventoryTable) Fetch(filter types.Filter) ([]any, error) {
	var where whereClause

	categories, err := filterStrings(filter, "category")
	if err != nil {
		return nil, err
	}
	where.addIn("category", categories)

	statuses, err := filterStrings(filter, "status")
	if err != nil {
		return nil, err
	}
	where.addIn("("+stockStatusExpr+")", statuses)

	supplier, err := filterString(filter, "supplier")
	if err != nil {
		return nil, err
	}
	if supplier != "" {
		where.add("supplier = ?", supplier)
	}

	page, err := limitOffset(filter)
	if err != nil {
		return nil, err
	}

	if err := t.backend.readLock(); err != nil {
		return nil, err
	}
	defer t.backend.mu.RUnlock()

	items, err := t.backend.queryInventory(
		"SELECT "+inventoryColumns+" FROM inventory"+where.String()+
			" ORDER BY name COLLATE NOCASE, item_id"+page, where.args...)
	if err != nil {
		return nil, err
	}
	results := make([]any, len(items))
	for i, item := range items {
		results[i] = item
	}
	return results, nil
}

func (b *Backend) queryInventory(query string, args ...any) ([]*types.InventoryItem, error) {
	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching inventory: %w", err)
	}
	defer rows.Close()

	var items []*types.InventoryItem
	for rows.Next() {
		item, err := scanInventory(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanInventory(row rowScanner) (*types.InventoryItem, error) {
	var item types.InventoryItem
	var updatedAt string
	err := row.Scan(&item.ItemID, &item.Name, &item.Category, &item.CurrentStock,
		&item.Threshold, &item.Unit, &item.Supplier, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning inventory item: %w", err)
	}
	if item.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}

func insertInventory(ex execer, item *types.InventoryItem) error {
	_, err := ex.Exec(`
		INSERT INTO inventory (`+inventoryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(item_id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			current_stock = excluded.current_stock,
			threshold = excluded.threshold,
			unit = excluded.unit,
			supplier = excluded.supplier,
			updated_at = excluded.updated_at`,
		item.ItemID, item.Name, item.Category, item.CurrentStock,
		item.Threshold, item.Unit, item.Supplier, formatTime(item.UpdatedAt))
	if err != nil {
		return fmt.Errorf("upserting inventory item: %w", err)
	}
	return nil
}

func loadInventoryRecord(ex execer, rec json.RawMessage) error {
	var item types.InventoryItem
	if err := decodeRecord(rec, &item, func() string { return item.ItemID }); err != nil {
		return err
	}
	return insertInventory(ex, &item)
}

// persistInventory rewrites inventory.jsonl from the table.
func (b *Backend) persistInventory() error {
	items, err := b.queryInventory("SELECT " + inventoryColumns + " FROM inventory ORDER BY item_id")
	if err != nil {
		return err
	}
	records, err := marshalRecords(items)
	if err != nil {
		return err
	}
	return writeJSONL(filepath.Join(b.config.DataDir, inventoryFile), records)
}
