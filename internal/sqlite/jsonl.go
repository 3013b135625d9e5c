// JSONL read and write helpers with atomic persistence.

package sqlite

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// readJSONL returns each parseable line of a JSONL file as a
// json.RawMessage. Blank and malformed lines are skipped. Lines have no
// length limit, so orders with many drinks load intact.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadBytes('\n')
		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 && json.Valid(trimmed) {
			records = append(records, json.RawMessage(trimmed))
		}
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}
}

// writeJSONL replaces path with records, one per line. The data goes to a
// temp file in the same directory which is synced and then renamed over
// path, so readers see either the old file or the new one.
func writeJSONL(path string, records []json.RawMessage) (err error) {
	var buf bytes.Buffer
	for _, rec := range records {
		buf.Write(rec)
		buf.WriteByte('\n')
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// JSONL file names, one per table.
const (
	inventoryFile = "inventory.jsonl"
	employeesFile = "employees.jsonl"
	ordersFile    = "orders.jsonl"
	reportsFile   = "reports.jsonl"
)

// jsonlFiles lists every JSONL file the backend owns.
var jsonlFiles = []string{inventoryFile, employeesFile, ordersFile, reportsFile}

// initJSONLFiles creates any missing JSONL file in dataDir as an empty file.
// Existing files are left untouched.
func initJSONLFiles(dataDir string) error {
	for _, name := range jsonlFiles {
		path := filepath.Join(dataDir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("checking %s: %w", name, err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return fmt.Errorf("creating %s: %w", name, err)
		}
	}
	return nil
}

// marshalRecords encodes each entity as one JSONL record.
func marshalRecords[T any](entities []T) ([]json.RawMessage, error) {
	records := make([]json.RawMessage, 0, len(entities))
	for _, e := range entities {
		rec, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("encoding record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}
