package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mesh-intelligence/teashop/pkg/types"
)

const reportColumns = "line_id, date, product, category, quantity, revenue, profit"

// reportsTable implements types.Table for daily sales report lines.
// Dates are stored as YYYY-MM-DD.
type reportsTable struct {
	backend *Backend
}

var _ types.Table = (*reportsTable)(nil)

// Get retrieves a report line by ID.
func (t *reportsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if err := t.backend.readLock(); err != nil {
		return nil, err
	}
	defer t.backend.mu.RUnlock()

	row := t.backend.db.QueryRow(
		"SELECT "+reportColumns+" FROM report_lines WHERE line_id = ?", id)
	return scanReportLine(row)
}

// Set creates or updates a report line.
func (t *reportsTable) Set(id string, data any) (string, error) {
	r, ok := data.(*types.ReportLine)
	if !ok || r == nil {
		return "", types.ErrInvalidData
	}
	if err := r.Validate(); err != nil {
		return "", err
	}
	if err := t.backend.writeLock(); err != nil {
		return "", err
	}
	defer t.backend.mu.Unlock()

	switch {
	case id != "":
		r.LineID = id
	case r.LineID == "":
		r.LineID = newUUID()
	}
	if r.Date.IsZero() {
		r.Date = time.Now()
	}

	if err := insertReportLine(t.backend.db, r); err != nil {
		return "", err
	}
	if err := t.backend.persistReports(); err != nil {
		return "", err
	}
	return r.LineID, nil
}

// Delete removes a report line.
func (t *reportsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	if err := t.backend.writeLock(); err != nil {
		return err
	}
	defer t.backend.mu.Unlock()

	if err := t.backend.deleteRow("report_lines", "line_id", id); err != nil {
		return err
	}
	return t.backend.persistReports()
}

// Fetch returns report lines ordered by date then product.
// Filter keys: "category" (string or []string), "from" and "to"
// (time.Time, inclusive, compared by calendar date), "limit" and "offset".
func (t *reportsTable) Fetch(filter types.Filter) ([]any, error) {
	var where whereClause

	categories, err := filterStrings(filter, "category")
	if err != nil {
		return nil, err
	}
	where.addIn("category", categories)

	from, ok, err := filterTime(filter, "from")
	if err != nil {
		return nil, err
	}
	if ok {
		where.add("date >= ?", from.Format(types.ReportDateLayout))
	}
	to, ok, err := filterTime(filter, "to")
	if err != nil {
		return nil, err
	}
	if ok {
		where.add("date <= ?", to.Format(types.ReportDateLayout))
	}

	page, err := limitOffset(filter)
	if err != nil {
		return nil, err
	}

	if err := t.backend.readLock(); err != nil {
		return nil, err
	}
	defer t.backend.mu.RUnlock()

	lines, err := t.backend.queryReportLines(
		"SELECT "+reportColumns+" FROM report_lines"+where.String()+
			" ORDER BY date, product COLLATE NOCASE, line_id"+page, where.args...)
	if err != nil {
		return nil, err
	}
	results := make([]any, len(lines))
	for i, l := range lines {
		results[i] = l
	}
	return results, nil
}

func (b *Backend) queryReportLines(query string, args ...any) ([]*types.ReportLine, error) {
	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching report lines: %w", err)
	}
	defer rows.Close()

	var lines []*types.ReportLine
	for rows.Next() {
		l, err := scanReportLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func scanReportLine(row rowScanner) (*types.ReportLine, error) {
	var r types.ReportLine
	var date string
	err := row.Scan(&r.LineID, &date, &r.Product, &r.Category, &r.Quantity, &r.Revenue, &r.Profit)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning report line: %w", err)
	}
	if r.Date, err = time.Parse(types.ReportDateLayout, date); err != nil {
		return nil, fmt.Errorf("parsing report date %q: %w", date, err)
	}
	return &r, nil
}

func insertReportLine(ex execer, r *types.ReportLine) error {
	_, err := ex.Exec(`
		INSERT INTO report_lines (`+reportColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(line_id) DO UPDATE SET
			date = excluded.date,
			product = excluded.product,
			category = excluded.category,
			quantity = excluded.quantity,
			revenue = excluded.revenue,
			profit = excluded.profit`,
		r.LineID, r.Date.Format(types.ReportDateLayout), r.Product, r.Category,
		r.Quantity, r.Revenue, r.Profit)
	if err != nil {
		return fmt.Errorf("upserting report line: %w", err)
	}
	return nil
}

func loadReportRecord(ex execer, rec json.RawMessage) error {
	var r types.ReportLine
	if err := decodeRecord(rec, &r, func() string { return r.LineID }); err != nil {
		return err
	}
	return insertReportLine(ex, &r)
}

// persistReports rewrites reports.jsonl from the table.
func (b *Backend) persistReports() error {
	lines, err := b.queryReportLines("SELECT " + reportColumns + " FROM report_lines ORDER BY date, line_id")
	if err != nil {
		return err
	}
	records, err := marshalRecords(lines)
	if err != nil {
		return err
	}
	return writeJSONL(filepath.Join(b.config.DataDir, reportsFile), records)
}
