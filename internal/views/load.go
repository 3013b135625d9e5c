package views

import (
	"fmt"

	"github.com/mesh-intelligence/teashop/pkg/types"
)

// fetch loads every record of a table matching q and asserts its type.
func fetch[T any](shop types.Shop, table string, q types.Filter) ([]T, error) {
	tbl, err := shop.GetTable(table)
	if err != nil {
		return nil, fmt.Errorf("opening %s table: %w", table, err)
	}
	results, err := tbl.Fetch(q)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", table, err)
	}
	out := make([]T, 0, len(results))
	for _, r := range results {
		v, ok := r.(T)
		if !ok {
			return nil, fmt.Errorf("fetching %s: unexpected %T: %w", table, r, types.ErrInvalidData)
		}
		out = append(out, v)
	}
	return out, nil
}

// LoadInventory fetches inventory with the facets pushed to storage and
// the search applied client-side.
func LoadInventory(shop types.Shop, f InventoryFilter) ([]*types.InventoryItem, error) {
	items, err := fetch[*types.InventoryItem](shop, types.InventoryTable, f.Query())
	if err != nil {
		return nil, err
	}
	return f.Apply(items), nil
}

// LoadEmployees fetches employees matching f.
func LoadEmployees(shop types.Shop, f EmployeeFilter) ([]*types.Employee, error) {
	employees, err := fetch[*types.Employee](shop, types.EmployeesTable, f.Query())
	if err != nil {
		return nil, err
	}
	return f.Apply(employees), nil
}

// LoadOrders fetches orders matching f, newest first.
func LoadOrders(shop types.Shop, f OrderFilter) ([]*types.Order, error) {
	orders, err := fetch[*types.Order](shop, types.OrdersTable, f.Query())
	if err != nil {
		return nil, err
	}
	return f.Apply(orders), nil
}

// LoadReports fetches report lines matching f, oldest first.
func LoadReports(shop types.Shop, f ReportFilter) ([]*types.ReportLine, error) {
	lines, err := fetch[*types.ReportLine](shop, types.ReportsTable, f.Query())
	if err != nil {
		return nil, err
	}
	return f.Apply(lines), nil
}
