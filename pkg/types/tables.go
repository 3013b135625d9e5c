package types

// Standard table names for Shop.GetTable.
const (
	InventoryTable = "inventory"
	EmployeesTable = "employees"
	OrdersTable    = "orders"
	ReportsTable   = "reports"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	InventoryTable,
	EmployeesTable,
	OrdersTable,
	ReportsTable,
}
