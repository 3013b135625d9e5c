package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/teashop/pkg/types"
)

var errMissingID = errors.New("record has no id")

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// newUUID generates a UUID v7 string, falling back to v4 if the clock
// source fails.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// formatTime stores timestamps as UTC RFC 3339 so they sort as text.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing time %q: %w", s, err)
	}
	return t, nil
}

// deleteRow removes the row whose idColumn equals id.
// Returns ErrNotFound when no row matched.
func (b *Backend) deleteRow(table, idColumn, id string) error {
	res, err := b.db.Exec(
		fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, idColumn), id)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// whereClause accumulates SQL conditions and their arguments for Fetch.
type whereClause struct {
	conditions []string
	args       []any
}

func (w *whereClause) add(cond string, args ...any) {
	w.conditions = append(w.conditions, cond)
	w.args = append(w.args, args...)
}

// addIn adds "expr IN (?, ...)" for a non-empty value list.
func (w *whereClause) addIn(expr string, values []string) {
	if len(values) == 0 {
		return
	}
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		w.args = append(w.args, v)
	}
	w.conditions = append(w.conditions, expr+" IN ("+strings.Join(placeholders, ",")+")")
}

func (w *whereClause) String() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conditions, " AND ")
}

// filterStrings reads a filter key holding either a string or a []string.
// An absent key or empty string yields nil. Returns ErrInvalidFilter for
// any other value type.
func filterStrings(filter types.Filter, key string) ([]string, error) {
	v, ok := filter[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch s := v.(type) {
	case string:
		if s == "" {
			return nil, nil
		}
		return []string{s}, nil
	case []string:
		return s, nil
	default:
		return nil, types.ErrInvalidFilter
	}
}

// filterString reads a filter key holding a string.
func filterString(filter types.Filter, key string) (string, error) {
	v, ok := filter[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", types.ErrInvalidFilter
	}
	return s, nil
}

// filterTime reads a filter key holding a time.Time.
func filterTime(filter types.Filter, key string) (time.Time, bool, error) {
	v, ok := filter[key]
	if !ok || v == nil {
		return time.Time{}, false, nil
	}
	t, ok := v.(time.Time)
	if !ok {
		return time.Time{}, false, types.ErrInvalidFilter
	}
	return t, !t.IsZero(), nil
}

// toInt converts various numeric types to int.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// limitOffset appends LIMIT and OFFSET clauses from the filter's "limit"
// and "offset" keys.
func limitOffset(filter types.Filter) (string, error) {
	var clause string
	if limit, ok := filter["limit"]; ok {
		l, ok := toInt(limit)
		if !ok {
			return "", types.ErrInvalidFilter
		}
		if l > 0 {
			clause += fmt.Sprintf(" LIMIT %d", l)
		}
	}
	if offset, ok := filter["offset"]; ok {
		o, ok := toInt(offset)
		if !ok {
			return "", types.ErrInvalidFilter
		}
		if o > 0 {
			if clause == "" {
				clause = " LIMIT -1"
			}
			clause += fmt.Sprintf(" OFFSET %d", o)
		}
	}
	return clause, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
