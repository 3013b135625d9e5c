// JSONL loading for startup.

package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
)

// jsonlTableMapping maps JSONL filenames to their SQLite tables and the
// function that inserts one decoded record.
var jsonlTableMapping = []struct {
	file  string
	table string
	load  func(ex execer, rec json.RawMessage) error
}{
	{inventoryFile, "inventory", loadInventoryRecord},
	{employeesFile, "employees", loadEmployeeRecord},
	{ordersFile, "orders", loadOrderRecord},
	{reportsFile, "report_lines", loadReportRecord},
}

// loadAllJSONL reads each JSONL file from dataDir and inserts its records
// into the corresponding SQLite table. Loading is transactional: all files
// load or the database stays empty. Records that fail to decode or violate
// a constraint are skipped; unknown fields are ignored. Returns the number
// of records loaded.
func loadAllJSONL(db *sql.DB, dataDir string) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	loaded := 0
	for _, mapping := range jsonlTableMapping {
		records, err := readJSONL(filepath.Join(dataDir, mapping.file))
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", mapping.file, err)
		}
		for _, rec := range records {
			if err := mapping.load(tx, rec); err != nil {
				continue
			}
			loaded++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return loaded, nil
}

// decodeRecord unmarshals a JSONL record into v and rejects records without
// an id.
func decodeRecord(rec json.RawMessage, v any, id func() string) error {
	if err := json.Unmarshal(rec, v); err != nil {
		return fmt.Errorf("decoding record: %w", err)
	}
	if id() == "" {
		return fmt.Errorf("decoding record: %w", errMissingID)
	}
	return nil
}
