// Package dashboard summarizes a shop day: order metrics every employee
// sees and report-line period metrics for managers.
package dashboard

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/mesh-intelligence/teashop/internal/session"
	"github.com/mesh-intelligence/teashop/internal/views"
	"github.com/mesh-intelligence/teashop/pkg/types"
)

// TopN is how many items the popularity lists keep.
const TopN = 3

// Period lengths in days, counting the dashboard day itself.
const (
	WeekDays  = 7
	MonthDays = 30
)

// ItemCount pairs an item name with the quantity sold.
type ItemCount struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Daily holds the order metrics for one calendar day. Cancelled orders
// count toward nothing.
type Daily struct {
	Sales             float64     `json:"sales"`
	Orders            int         `json:"orders"`
	OrdersCompleted   int         `json:"orders_completed"`
	AverageOrderValue float64     `json:"average_order_value"`
	Customers         int         `json:"customers"`
	PopularItems      []ItemCount `json:"popular_items"`
	InventoryAlerts   int         `json:"inventory_alerts"`
}

// Period holds report and order metrics for an inclusive date range.
type Period struct {
	Name              string  `json:"name"`
	From              string  `json:"from"`
	To                string  `json:"to"`
	Revenue           float64 `json:"revenue"`
	Profit            float64 `json:"profit"`
	Quantity          int     `json:"quantity"`
	Margin            float64 `json:"margin"`
	Orders            int     `json:"orders"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// Manager holds the metrics restricted to managers.
type Manager struct {
	Periods    []Period    `json:"periods"`
	TopSellers []ItemCount `json:"top_sellers"`
}

// Summary is the whole dashboard for one day. Manager is nil when the
// viewer may not see reports.
type Summary struct {
	Date    string   `json:"date"`
	Daily   Daily    `json:"daily"`
	Manager *Manager `json:"manager,omitempty"`
}

// dayKey formats t as a calendar day in loc.
func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(types.ReportDateLayout)
}

func billable(o *types.Order) bool {
	return o.Status != types.OrderCancelled
}

// ComputeDaily derives the order metrics for the calendar day containing
// day, in day's location. alerts is the number of low or out-of-stock
// items.
func ComputeDaily(day time.Time, orders []*types.Order, alerts int) Daily {
	key := dayKey(day, day.Location())
	d := Daily{InventoryAlerts: alerts}
	customers := map[string]bool{}
	drinks := map[string]int{}
	for _, o := range orders {
		if !billable(o) || dayKey(o.CreatedAt, day.Location()) != key {
			continue
		}
		d.Orders++
		d.Sales += o.Total()
		if o.Status == types.OrderCompleted {
			d.OrdersCompleted++
		}
		customers[o.Customer] = true
		for _, l := range o.Lines {
			drinks[l.Drink] += l.Quantity
		}
	}
	d.Sales = roundCents(d.Sales)
	d.Customers = len(customers)
	d.AverageOrderValue = average(d.Sales, d.Orders)
	d.PopularItems = topItems(drinks, TopN)
	return d
}

// ComputePeriod derives report and order metrics for the days-long range
// ending on day.
func ComputePeriod(name string, day time.Time, days int, orders []*types.Order, lines []*types.ReportLine) Period {
	loc := day.Location()
	from := day.AddDate(0, 0, -(days - 1))
	p := Period{Name: name, From: dayKey(from, loc), To: dayKey(day, loc)}

	f := views.ReportFilter{From: from, To: day}
	s := types.SummarizeReport(f.Apply(lines))
	p.Revenue, p.Profit, p.Quantity = roundCents(s.Revenue), roundCents(s.Profit), s.Quantity
	if s.Revenue > 0 {
		p.Margin = math.Round(s.Profit/s.Revenue*10000) / 100
	}

	var sales float64
	for _, o := range orders {
		k := dayKey(o.CreatedAt, loc)
		if !billable(o) || k < p.From || k > p.To {
			continue
		}
		p.Orders++
		sales += o.Total()
	}
	p.AverageOrderValue = average(roundCents(sales), p.Orders)
	return p
}

// ComputeManager builds the daily, weekly and monthly periods plus the
// best-selling products of the month.
func ComputeManager(day time.Time, orders []*types.Order, lines []*types.ReportLine) *Manager {
	m := &Manager{
		Periods: []Period{
			ComputePeriod("daily", day, 1, orders, lines),
			ComputePeriod("weekly", day, WeekDays, orders, lines),
			ComputePeriod("monthly", day, MonthDays, orders, lines),
		},
	}
	f := views.ReportFilter{From: day.AddDate(0, 0, -(MonthDays - 1)), To: day}
	sold := map[string]int{}
	for _, l := range f.Apply(lines) {
		sold[l.Product] += l.Quantity
	}
	m.TopSellers = topItems(sold, TopN)
	return m
}

// Load fetches what the dashboard needs from shop and computes it for day.
// Manager metrics are included only when sess may view reports.
func Load(shop types.Shop, sess *session.Session, day time.Time) (*Summary, error) {
	if err := sess.Authorize(types.OrdersTable); err != nil {
		return nil, err
	}
	orders, err := views.LoadOrders(shop, views.OrderFilter{})
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	items, err := views.LoadInventory(shop, views.InventoryFilter{})
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	low := 0
	for _, it := range items {
		if st := it.Status(); st == types.StockLow || st == types.StockOut {
			low++
		}
	}

	sum := &Summary{
		Date:  dayKey(day, day.Location()),
		Daily: ComputeDaily(day, orders, low),
	}
	switch err := sess.Authorize(types.ReportsTable); {
	case err == nil:
		lines, err := views.LoadReports(shop, views.ReportFilter{})
		if err != nil {
			return nil, fmt.Errorf("load reports: %w", err)
		}
		sum.Manager = ComputeManager(day, orders, lines)
	case !errors.Is(err, types.ErrForbidden):
		return nil, err
	}
	return sum, nil
}

// topItems returns the n largest counts, ties broken by name.
func topItems(counts map[string]int, n int) []ItemCount {
	out := make([]ItemCount, 0, len(counts))
	for name, q := range counts {
		out = append(out, ItemCount{Name: name, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func average(total float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return roundCents(total / float64(n))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
