// Sample data seeding for `teashop init`.

package sqlite

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/goccy/go-yaml"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/teashop/pkg/types"
)

//go:embed seed.yaml
var seedYAML []byte

// seedDataset mirrors seed.yaml. Dates are strings so the file stays
// readable; they are parsed while building entities.
type seedDataset struct {
	Inventory []struct {
		Name         string  `yaml:"name"`
		Category     string  `yaml:"category"`
		CurrentStock float64 `yaml:"current_stock"`
		Threshold    float64 `yaml:"threshold"`
		Unit         string  `yaml:"unit"`
		Supplier     string  `yaml:"supplier"`
		UpdatedAt    string  `yaml:"updated_at"`
	} `yaml:"inventory"`
	Employees []struct {
		Name     string `yaml:"name"`
		Email    string `yaml:"email"`
		Phone    string `yaml:"phone"`
		Role     string `yaml:"role"`
		Status   string `yaml:"status"`
		JoinedAt string `yaml:"joined_at"`
	} `yaml:"employees"`
	Orders []struct {
		Customer  string            `yaml:"customer"`
		Status    string            `yaml:"status"`
		CreatedAt string            `yaml:"created_at"`
		Lines     []types.OrderLine `yaml:"lines"`
	} `yaml:"orders"`
	Reports []struct {
		Date     string  `yaml:"date"`
		Product  string  `yaml:"product"`
		Category string  `yaml:"category"`
		Quantity int     `yaml:"quantity"`
		Revenue  float64 `yaml:"revenue"`
		Profit   float64 `yaml:"profit"`
	} `yaml:"reports"`
}

// SeedResult reports how many records Seed inserted per table.
type SeedResult map[string]int

// Seed loads the embedded sample dataset into every table that is empty.
// Tables that already hold records are left alone, so Seed is idempotent.
func Seed(b *Backend) (SeedResult, error) {
	var data seedDataset
	if err := yaml.Unmarshal(seedYAML, &data); err != nil {
		return nil, fmt.Errorf("parsing seed data: %w", err)
	}

	if err := b.writeLock(); err != nil {
		return nil, err
	}
	defer b.mu.Unlock()

	result := SeedResult{}
	steps := []struct {
		table  string
		sql    string
		insert func(ex execer) (int, error)
		save   func() error
	}{
		{types.InventoryTable, "inventory", data.insertInventory, b.persistInventory},
		{types.EmployeesTable, "employees", data.insertEmployees, b.persistEmployees},
		{types.OrdersTable, "orders", data.insertOrders, b.persistOrders},
		{types.ReportsTable, "report_lines", data.insertReports, b.persistReports},
	}

	for _, step := range steps {
		var count int
		if err := b.db.QueryRow("SELECT COUNT(*) FROM " + step.sql).Scan(&count); err != nil {
			return nil, fmt.Errorf("counting %s: %w", step.table, err)
		}
		if count > 0 {
			result[step.table] = 0
			continue
		}

		tx, err := b.db.Begin()
		if err != nil {
			return nil, fmt.Errorf("beginning seed transaction: %w", err)
		}
		n, err := step.insert(tx)
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("seeding %s: %w", step.table, err)
		}
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("committing seed transaction: %w", err)
		}
		if err := step.save(); err != nil {
			return nil, fmt.Errorf("persisting seeded %s: %w", step.table, err)
		}
		result[step.table] = n
		b.logger.Debug("seeded table", zap.String("table", step.table), zap.Int("records", n))
	}
	return result, nil
}

func parseSeedTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(types.ReportDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing seed date %q: %w", s, err)
	}
	return t, nil
}

func (d *seedDataset) insertInventory(ex execer) (int, error) {
	for _, rec := range d.Inventory {
		updated, err := parseSeedTime(rec.UpdatedAt)
		if err != nil {
			return 0, err
		}
		item := &types.InventoryItem{
			ItemID:       newUUID(),
			Name:         rec.Name,
			Category:     rec.Category,
			CurrentStock: rec.CurrentStock,
			Threshold:    rec.Threshold,
			Unit:         rec.Unit,
			Supplier:     rec.Supplier,
			UpdatedAt:    updated,
		}
		if err := item.Validate(); err != nil {
			return 0, fmt.Errorf("item %s: %w", rec.Name, err)
		}
		if err := insertInventory(ex, item); err != nil {
			return 0, err
		}
	}
	return len(d.Inventory), nil
}

func (d *seedDataset) insertEmployees(ex execer) (int, error) {
	for _, rec := range d.Employees {
		joined, err := parseSeedTime(rec.JoinedAt)
		if err != nil {
			return 0, err
		}
		e := &types.Employee{
			EmployeeID: newUUID(),
			Name:       rec.Name,
			Email:      rec.Email,
			Phone:      rec.Phone,
			Role:       rec.Role,
			Status:     rec.Status,
			JoinedAt:   joined,
		}
		if err := e.Validate(); err != nil {
			return 0, fmt.Errorf("employee %s: %w", rec.Email, err)
		}
		if err := insertEmployee(ex, e); err != nil {
			return 0, err
		}
	}
	return len(d.Employees), nil
}

func (d *seedDataset) insertOrders(ex execer) (int, error) {
	for _, rec := range d.Orders {
		created, err := parseSeedTime(rec.CreatedAt)
		if err != nil {
			return 0, err
		}
		o := &types.Order{
			OrderID:   newUUID(),
			Customer:  rec.Customer,
			Lines:     rec.Lines,
			Status:    rec.Status,
			CreatedAt: created,
			UpdatedAt: created,
		}
		if err := o.Validate(); err != nil {
			return 0, fmt.Errorf("order for %s: %w", rec.Customer, err)
		}
		if err := insertOrder(ex, o); err != nil {
			return 0, err
		}
	}
	return len(d.Orders), nil
}

func (d *seedDataset) insertReports(ex execer) (int, error) {
	for _, rec := range d.Reports {
		date, err := parseSeedTime(rec.Date)
		if err != nil {
			return 0, err
		}
		r := &types.ReportLine{
			LineID:   newUUID(),
			Date:     date,
			Product:  rec.Product,
			Category: rec.Category,
			Quantity: rec.Quantity,
			Revenue:  rec.Revenue,
			Profit:   rec.Profit,
		}
		if err := r.Validate(); err != nil {
			return 0, fmt.Errorf("report line %s: %w", rec.Product, err)
		}
		if err := insertReportLine(ex, r); err != nil {
			return 0, err
		}
	}
	return len(d.Reports), nil
}
