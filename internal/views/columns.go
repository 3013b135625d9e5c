package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/teashop/pkg/datatable"
	"github.com/mesh-intelligence/teashop/pkg/types"
)

// Empty-state messages per screen.
const (
	InventoryEmptyMessage = "No inventory items found."
	EmployeesEmptyMessage = "No employees found"
	OrdersEmptyMessage    = "No orders found"
	ReportsEmptyMessage   = "No report data for the selected period"
)

const dateLayout = "2006-01-02"

// StockBadge is the label shown for a stock status.
func StockBadge(status string) string {
	switch status {
	case types.StockOK:
		return "In Stock"
	case types.StockLow:
		return "Low Stock"
	case types.StockOut:
		return "Out of Stock"
	default:
		return "Unknown"
	}
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Money formats an amount as dollars and cents.
func Money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// ShortID keeps the last 8 characters of an ID for display. UUID v7 ids
// share their leading timestamp digits, so the tail is the distinctive part.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}

func quantity(v float64, unit string) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// InventoryColumns is the inventory screen's column set.
func InventoryColumns() []datatable.Column[*types.InventoryItem] {
	return []datatable.Column[*types.InventoryItem]{
		datatable.FieldColumn("id", "ID", func(i *types.InventoryItem) any { return ShortID(i.ItemID) }),
		datatable.FieldColumn("name", "Item Name", func(i *types.InventoryItem) any { return i.Name }),
		datatable.RenderColumn("category", "Category", func(i *types.InventoryItem) string { return Capitalize(i.Category) }),
		datatable.RenderColumn("stock", "Current Stock", func(i *types.InventoryItem) string {
			return quantity(i.CurrentStock, i.Unit)
		}).RightAligned(),
		datatable.RenderColumn("threshold", "Threshold", func(i *types.InventoryItem) string {
			return quantity(i.Threshold, i.Unit)
		}).RightAligned(),
		datatable.RenderColumn("status", "Status", func(i *types.InventoryItem) string { return StockBadge(i.Status()) }),
		datatable.FieldColumn("supplier", "Supplier", func(i *types.InventoryItem) any { return i.Supplier }),
		datatable.RenderColumn("updated", "Last Updated", func(i *types.InventoryItem) string {
			return i.UpdatedAt.Format(dateLayout)
		}),
	}
}

// EmployeeColumns is the employees screen's column set.
func EmployeeColumns() []datatable.Column[*types.Employee] {
	return []datatable.Column[*types.Employee]{
		datatable.FieldColumn("id", "ID", func(e *types.Employee) any { return ShortID(e.EmployeeID) }),
		datatable.FieldColumn("name", "Name", func(e *types.Employee) any { return e.Name }),
		datatable.RenderColumn("role", "Role", func(e *types.Employee) string { return Capitalize(e.Role) }),
		datatable.FieldColumn("email", "Email", func(e *types.Employee) any { return e.Email }),
		datatable.FieldColumn("phone", "Phone", func(e *types.Employee) any { return e.Phone }),
		datatable.RenderColumn("status", "Status", func(e *types.Employee) string { return Capitalize(e.Status) }),
		datatable.RenderColumn("joined", "Join Date", func(e *types.Employee) string {
			return e.JoinedAt.Format(dateLayout)
		}),
	}
}

// OrderColumns is the orders screen's column set.
func OrderColumns() []datatable.Column[*types.Order] {
	return []datatable.Column[*types.Order]{
		datatable.FieldColumn("id", "Order ID", func(o *types.Order) any { return ShortID(o.OrderID) }),
		datatable.FieldColumn("customer", "Customer", func(o *types.Order) any { return o.Customer }),
		datatable.RenderColumn("items", "Items", func(o *types.Order) string { return OrderSummary(o) }),
		datatable.RenderColumn("status", "Status", func(o *types.Order) string { return Capitalize(o.Status) }),
		datatable.RenderColumn("total", "Total", func(o *types.Order) string { return Money(o.Total()) }).RightAligned(),
		datatable.RenderColumn("date", "Date", func(o *types.Order) string {
			return o.CreatedAt.Local().Format("2006-01-02 15:04")
		}),
	}
}

// OrderSummary lists the drinks on an order, e.g. "2x Taro Milk Tea, Matcha Latte".
func OrderSummary(o *types.Order) string {
	parts := make([]string, len(o.Lines))
	for i, l := range o.Lines {
		if l.Quantity > 1 {
			parts[i] = fmt.Sprintf("%dx %s", l.Quantity, l.Drink)
		} else {
			parts[i] = l.Drink
		}
	}
	return strings.Join(parts, ", ")
}

// ReportColumns is the reports screen's column set.
func ReportColumns() []datatable.Column[*types.ReportLine] {
	return []datatable.Column[*types.ReportLine]{
		datatable.RenderColumn("date", "Date", func(r *types.ReportLine) string {
			return r.Date.Format(types.ReportDateLayout)
		}),
		datatable.FieldColumn("product", "Product", func(r *types.ReportLine) any { return r.Product }),
		datatable.FieldColumn("category", "Category", func(r *types.ReportLine) any { return r.Category }),
		datatable.FieldColumn("quantity", "Quantity", func(r *types.ReportLine) any { return r.Quantity }).RightAligned(),
		datatable.RenderColumn("revenue", "Revenue", func(r *types.ReportLine) string { return Money(r.Revenue) }).RightAligned(),
		datatable.RenderColumn("profit", "Profit", func(r *types.ReportLine) string { return Money(r.Profit) }).RightAligned(),
	}
}

// ReportFooter totals quantity, revenue and profit over every line of the
// filtered collection, aligned with ReportColumns.
func ReportFooter(lines []*types.ReportLine) []string {
	s := types.SummarizeReport(lines)
	return []string{"Total", "", "", strconv.Itoa(s.Quantity), Money(s.Revenue), Money(s.Profit)}
}

// Options returns datatable options with the given empty message.
func Options[T any](emptyMessage string) datatable.Options[T] {
	opts := datatable.DefaultOptions[T]()
	opts.EmptyMessage = emptyMessage
	return opts
}

// ReportOptions adds the totals footer to the reports screen options.
func ReportOptions() datatable.Options[*types.ReportLine] {
	opts := Options[*types.ReportLine](ReportsEmptyMessage)
	opts.Footer = ReportFooter
	return opts
}
