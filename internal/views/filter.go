package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/teashop/pkg/types"
)

// All is the facet value that disables a facet, as does the empty string.
const All = "all"

func facetOn(v string) bool {
	return v != "" && v != All
}

// contains reports whether any field holds needle, case-insensitively.
// An empty needle matches everything.
func contains(needle string, fields ...string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// InventoryFilter narrows the inventory screen. Search matches name or
// supplier.
type InventoryFilter struct {
	Search   string
	Category string
	Status   string
}

// Key identifies the filter for page-reset purposes.
func (f InventoryFilter) Key() string {
	return fmt.Sprintf("inventory|%s|%s|%s", strings.ToLower(strings.TrimSpace(f.Search)), f.Category, f.Status)
}

// Match reports whether item passes every active criterion.
func (f InventoryFilter) Match(item *types.InventoryItem) bool {
	if facetOn(f.Category) && item.Category != f.Category {
		return false
	}
	if facetOn(f.Status) && item.Status() != f.Status {
		return false
	}
	return contains(f.Search, item.Name, item.Supplier)
}

// Apply returns the matching items in their original order.
func (f InventoryFilter) Apply(items []*types.InventoryItem) []*types.InventoryItem {
	return filter(items, f.Match)
}

// Query returns the storage filter for the facets. Search stays client-side.
func (f InventoryFilter) Query() types.Filter {
	q := types.Filter{}
	if facetOn(f.Category) {
		q["category"] = f.Category
	}
	if facetOn(f.Status) {
		q["status"] = f.Status
	}
	return q
}

// EmployeeFilter narrows the employees screen. Search matches name, email
// or role.
type EmployeeFilter struct {
	Search string
	Role   string
	Status string
}

// Key identifies the filter for page-reset purposes.
func (f EmployeeFilter) Key() string {
	return fmt.Sprintf("employees|%s|%s|%s", strings.ToLower(strings.TrimSpace(f.Search)), f.Role, f.Status)
}

// Match reports whether e passes every active criterion.
func (f EmployeeFilter) Match(e *types.Employee) bool {
	if facetOn(f.Role) && e.Role != f.Role {
		return false
	}
	if facetOn(f.Status) && e.Status != f.Status {
		return false
	}
	return contains(f.Search, e.Name, e.Email, e.Role)
}

// Apply returns the matching employees in their original order.
func (f EmployeeFilter) Apply(employees []*types.Employee) []*types.Employee {
	return filter(employees, f.Match)
}

// Query returns the storage filter for the facets.
func (f EmployeeFilter) Query() types.Filter {
	q := types.Filter{}
	if facetOn(f.Role) {
		q["role"] = f.Role
	}
	if facetOn(f.Status) {
		q["status"] = f.Status
	}
	return q
}

// OrderFilter narrows the orders screen. Search matches order ID or
// customer.
type OrderFilter struct {
	Search string
	Status string
}

// Key identifies the filter for page-reset purposes.
func (f OrderFilter) Key() string {
	return fmt.Sprintf("orders|%s|%s", strings.ToLower(strings.TrimSpace(f.Search)), f.Status)
}

// Match reports whether o passes every active criterion.
func (f OrderFilter) Match(o *types.Order) bool {
	if facetOn(f.Status) && o.Status != f.Status {
		return false
	}
	return contains(f.Search, o.OrderID, o.Customer)
}

// Apply returns the matching orders in their original order.
func (f OrderFilter) Apply(orders []*types.Order) []*types.Order {
	return filter(orders, f.Match)
}

// Query returns the storage filter for the facets.
func (f OrderFilter) Query() types.Filter {
	q := types.Filter{}
	if facetOn(f.Status) {
		q["states"] = []string{f.Status}
	}
	return q
}

// ReportFilter narrows the reports screen to a category and an inclusive
// date range. Zero From or To leaves that end open. Search matches product
// or category.
type ReportFilter struct {
	Search   string
	Category string
	From     time.Time
	To       time.Time
}

// Key identifies the filter for page-reset purposes.
func (f ReportFilter) Key() string {
	return fmt.Sprintf("reports|%s|%s|%s|%s", strings.ToLower(strings.TrimSpace(f.Search)), f.Category, dateKey(f.From), dateKey(f.To))
}

func dateKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(types.ReportDateLayout)
}

// Match reports whether r passes every active criterion. Dates compare by
// calendar day.
func (f ReportFilter) Match(r *types.ReportLine) bool {
	if facetOn(f.Category) && r.Category != f.Category {
		return false
	}
	day := r.Date.Format(types.ReportDateLayout)
	if !f.From.IsZero() && day < dateKey(f.From) {
		return false
	}
	if !f.To.IsZero() && day > dateKey(f.To) {
		return false
	}
	return contains(f.Search, r.Product, r.Category)
}

// Apply returns the matching lines in their original order.
func (f ReportFilter) Apply(lines []*types.ReportLine) []*types.ReportLine {
	return filter(lines, f.Match)
}

// Query returns the storage filter for the category and date range.
func (f ReportFilter) Query() types.Filter {
	q := types.Filter{}
	if facetOn(f.Category) {
		q["category"] = f.Category
	}
	if !f.From.IsZero() {
		q["from"] = f.From
	}
	if !f.To.IsZero() {
		q["to"] = f.To
	}
	return q
}

func filter[T any](records []T, keep func(T) bool) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
