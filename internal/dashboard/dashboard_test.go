package dashboard

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/teashop/internal/session"
	"github.com/mesh-intelligence/teashop/internal/sqlite"
	"github.com/mesh-intelligence/teashop/pkg/types"
)

func seededShop(t *testing.T) types.Shop {
	t.Helper()
	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	_, err := sqlite.Seed(b)
	require.NoError(t, err)
	return b
}

func day(s string) time.Time {
	t, err := time.Parse(types.ReportDateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func order(customer, status string, at time.Time, lines ...types.OrderLine) *types.Order {
	return &types.Order{Customer: customer, Status: status, CreatedAt: at, Lines: lines}
}

func line(drink string, qty int, price float64) types.OrderLine {
	return types.OrderLine{Drink: drink, Quantity: qty, UnitPrice: price}
}

func report(date, product string, qty int, revenue, profit float64) *types.ReportLine {
	return &types.ReportLine{Date: day(date), Product: product, Category: "Milk Tea", Quantity: qty, Revenue: revenue, Profit: profit}
}

func TestComputeDaily(t *testing.T) {
	at := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)
	orders := []*types.Order{
		order("Ana", types.OrderCompleted, at, line("Taro", 2, 5)),
		order("Ana", types.OrderPending, at.Add(time.Hour), line("Classic", 1, 10)),
		order("Ben", types.OrderProcessing, at, line("Classic", 1, 10), line("Matcha", 3, 1)),
		order("Cai", types.OrderCancelled, at, line("Taro", 9, 5)),
		order("Dee", types.OrderCompleted, at.AddDate(0, 0, -1), line("Taro", 1, 5)),
	}

	d := ComputeDaily(day("2024-03-05"), orders, 2)
	assert.Equal(t, 3, d.Orders)
	assert.Equal(t, 1, d.OrdersCompleted)
	assert.Equal(t, 2, d.Customers)
	assert.Equal(t, 2, d.InventoryAlerts)
	// 10.80 + 10.80 + 14.04
	assert.InDelta(t, 35.64, d.Sales, 0.001)
	assert.InDelta(t, 11.88, d.AverageOrderValue, 0.001)
	want := []ItemCount{{Name: "Matcha", Quantity: 3}, {Name: "Classic", Quantity: 2}, {Name: "Taro", Quantity: 2}}
	if diff := cmp.Diff(want, d.PopularItems); diff != "" {
		t.Errorf("PopularItems mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeDailyNoOrders(t *testing.T) {
	d := ComputeDaily(day("2024-03-05"), nil, 0)
	assert.Zero(t, d.Orders)
	assert.Zero(t, d.AverageOrderValue)
	assert.Empty(t, d.PopularItems)
}

func TestComputeDailyUsesDayLocation(t *testing.T) {
	loc := time.FixedZone("UTC-10", -10*3600)
	// 05:00 UTC on the 6th is still the 5th ten hours west.
	o := order("Ana", types.OrderCompleted, time.Date(2024, 3, 6, 5, 0, 0, 0, time.UTC), line("Taro", 1, 5))

	assert.Equal(t, 1, ComputeDaily(time.Date(2024, 3, 5, 12, 0, 0, 0, loc), []*types.Order{o}, 0).Orders)
	assert.Equal(t, 1, ComputeDaily(day("2024-03-06"), []*types.Order{o}, 0).Orders)
}

func TestComputePeriod(t *testing.T) {
	lines := []*types.ReportLine{
		report("2024-03-05", "Classic", 10, 40, 20),
		report("2024-02-28", "Taro", 5, 30, 6),
		report("2024-02-27", "Classic", 99, 999, 999),
	}
	orders := []*types.Order{
		order("Ana", types.OrderCompleted, day("2024-03-01"), line("Taro", 2, 5)),
		order("Ben", types.OrderCancelled, day("2024-03-01"), line("Taro", 2, 5)),
	}

	p := ComputePeriod("weekly", day("2024-03-05"), WeekDays, orders, lines)
	assert.Equal(t, "2024-02-28", p.From)
	assert.Equal(t, "2024-03-05", p.To)
	assert.Equal(t, 15, p.Quantity)
	assert.InDelta(t, 70, p.Revenue, 0.001)
	assert.InDelta(t, 26, p.Profit, 0.001)
	assert.InDelta(t, 37.14, p.Margin, 0.001)
	assert.Equal(t, 1, p.Orders)
	assert.InDelta(t, 10.8, p.AverageOrderValue, 0.001)

	empty := ComputePeriod("daily", day("2024-03-04"), 1, nil, lines)
	assert.Zero(t, empty.Revenue)
	assert.Zero(t, empty.Margin)
}

func TestComputeManager(t *testing.T) {
	lines := []*types.ReportLine{
		report("2024-03-05", "Classic", 10, 40, 20),
		report("2024-02-20", "Taro", 12, 48, 20),
		report("2024-02-10", "Matcha", 4, 20, 8),
		report("2024-01-01", "Mango", 500, 1, 1),
	}

	m := ComputeManager(day("2024-03-05"), nil, lines)
	require.Len(t, m.Periods, 3)
	assert.Equal(t, []string{"daily", "weekly", "monthly"}, []string{m.Periods[0].Name, m.Periods[1].Name, m.Periods[2].Name})
	assert.InDelta(t, 40, m.Periods[0].Revenue, 0.001)
	assert.InDelta(t, 40, m.Periods[1].Revenue, 0.001)
	assert.InDelta(t, 108, m.Periods[2].Revenue, 0.001)
	assert.Equal(t, []ItemCount{{Name: "Taro", Quantity: 12}, {Name: "Classic", Quantity: 10}, {Name: "Matcha", Quantity: 4}}, m.TopSellers)
}

func TestLoad(t *testing.T) {
	shop := seededShop(t)
	manager := &session.Session{Email: "john.doe@bubbletea.com", Role: types.RoleManager}
	staff := &session.Session{Email: "jane.smith@bubbletea.com", Role: types.RoleStaff}

	t.Run("manager sees periods", func(t *testing.T) {
		sum, err := Load(shop, manager, day("2023-06-17"))
		require.NoError(t, err)
		assert.Equal(t, "2023-06-17", sum.Date)
		assert.Equal(t, 4, sum.Daily.Orders)
		assert.Equal(t, 1, sum.Daily.OrdersCompleted)
		assert.Equal(t, 4, sum.Daily.Customers)
		assert.Equal(t, 3, sum.Daily.InventoryAlerts)
		assert.InDelta(t, 35.58, sum.Daily.Sales, 0.001)

		require.NotNil(t, sum.Manager)
		monthly := sum.Manager.Periods[2]
		assert.InDelta(t, 821.5, monthly.Revenue, 0.001)
		assert.InDelta(t, 376, monthly.Profit, 0.001)
		assert.Equal(t, 188, monthly.Quantity)
		assert.Zero(t, sum.Manager.Periods[1].Revenue)
		assert.Equal(t, "Brown Sugar Boba", sum.Manager.TopSellers[0].Name)
	})

	t.Run("staff gets no manager metrics", func(t *testing.T) {
		sum, err := Load(shop, staff, day("2023-06-17"))
		require.NoError(t, err)
		assert.Equal(t, 4, sum.Daily.Orders)
		assert.Nil(t, sum.Manager)
	})

	t.Run("no session", func(t *testing.T) {
		_, err := Load(shop, nil, day("2023-06-17"))
		assert.ErrorIs(t, err, types.ErrNotLoggedIn)
	})
}
