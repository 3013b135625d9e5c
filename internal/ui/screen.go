package ui

import (
	"github.com/mesh-intelligence/teashop/internal/views"
	"github.com/mesh-intelligence/teashop/pkg/datatable"
	"github.com/mesh-intelligence/teashop/pkg/types"
)

// screen is one browser tab.
type screen interface {
	Title() string
	Table() string
	Search() string
	// Load fetches records for search. A new search resets the page.
	Load(shop types.Shop, search string) error
	// Reload refetches under the current search and keeps the page when
	// it still exists.
	Reload(shop types.Shop) error
	Pager() *datatable.Pager
	Render() datatable.RenderedTable
}

// listingScreen adapts a views.Listing to a screen. query builds the
// filter key and records for a search string.
type listingScreen[T any] struct {
	title   string
	table   string
	search  string
	listing *views.Listing[T]
	query   func(shop types.Shop, search string) (string, []T, error)
}

func (s *listingScreen[T]) Title() string                   { return s.title }
func (s *listingScreen[T]) Table() string                   { return s.table }
func (s *listingScreen[T]) Search() string                  { return s.search }
func (s *listingScreen[T]) Pager() *datatable.Pager         { return s.listing.Pager() }
func (s *listingScreen[T]) Render() datatable.RenderedTable { return s.listing.Render() }

func (s *listingScreen[T]) Load(shop types.Shop, search string) error {
	key, records, err := s.query(shop, search)
	if err != nil {
		return err
	}
	s.search = search
	s.listing.Apply(key, records)
	return nil
}

func (s *listingScreen[T]) Reload(shop types.Shop) error {
	_, records, err := s.query(shop, s.search)
	if err != nil {
		return err
	}
	s.listing.Refresh(records)
	return nil
}

// newScreens returns every screen in tab order.
func newScreens(pageSize int, onPageChange func(int)) []screen {
	return []screen{
		&listingScreen[*types.InventoryItem]{
			title: "Inventory",
			table: types.InventoryTable,
			listing: views.NewListing(views.InventoryColumns(),
				views.Options[*types.InventoryItem](views.InventoryEmptyMessage), pageSize, onPageChange),
			query: func(shop types.Shop, search string) (string, []*types.InventoryItem, error) {
				f := views.InventoryFilter{Search: search}
				items, err := views.LoadInventory(shop, f)
				return f.Key(), items, err
			},
		},
		&listingScreen[*types.Order]{
			title: "Orders",
			table: types.OrdersTable,
			listing: views.NewListing(views.OrderColumns(),
				views.Options[*types.Order](views.OrdersEmptyMessage), pageSize, onPageChange),
			query: func(shop types.Shop, search string) (string, []*types.Order, error) {
				f := views.OrderFilter{Search: search}
				orders, err := views.LoadOrders(shop, f)
				return f.Key(), orders, err
			},
		},
		&listingScreen[*types.Employee]{
			title: "Employees",
			table: types.EmployeesTable,
			listing: views.NewListing(views.EmployeeColumns(),
				views.Options[*types.Employee](views.EmployeesEmptyMessage), pageSize, onPageChange),
			query: func(shop types.Shop, search string) (string, []*types.Employee, error) {
				f := views.EmployeeFilter{Search: search}
				employees, err := views.LoadEmployees(shop, f)
				return f.Key(), employees, err
			},
		},
		&listingScreen[*types.ReportLine]{
			title: "Reports",
			table: types.ReportsTable,
			listing: views.NewListing(views.ReportColumns(), views.ReportOptions(), pageSize, onPageChange),
			query: func(shop types.Shop, search string) (string, []*types.ReportLine, error) {
				f := views.ReportFilter{Search: search}
				lines, err := views.LoadReports(shop, f)
				return f.Key(), lines, err
			},
		},
	}
}
