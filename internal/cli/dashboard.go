package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/teashop/internal/dashboard"
	"github.com/mesh-intelligence/teashop/internal/views"
)

func newDashboardCmd(a *app) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the day's sales metrics",
		Long: `Dashboard summarizes one day of orders: sales, order counts, average order
value, customers, the most popular drinks and inventory alerts. Managers also
see revenue, profit and margin from the sales reports for the day, the last
7 days and the last 30 days, with the month's best sellers.

Example:
  teashop dashboard
  teashop dashboard --date 2023-06-17`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDateFlag("date", date)
			if err != nil {
				return err
			}
			if day.IsZero() {
				now := time.Now()
				day = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			}
			sess, err := a.loadSession()
			if err != nil {
				return err
			}
			shop, err := a.attach()
			if err != nil {
				return err
			}
			defer shop.Detach()

			sum, err := dashboard.Load(shop, sess, day)
			if err != nil {
				return sysErr(err)
			}
			if a.jsonMode {
				return writeJSON(cmd, sum)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), formatDashboard(sum))
			return err
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to summarize, YYYY-MM-DD (default today)")
	return cmd
}

func formatDashboard(sum *dashboard.Summary) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	d := sum.Daily
	fmt.Fprintf(w, "Date:\t%s\n", sum.Date)
	fmt.Fprintf(w, "Sales today:\t%s\n", views.Money(d.Sales))
	fmt.Fprintf(w, "Orders today:\t%d\n", d.Orders)
	fmt.Fprintf(w, "Orders completed:\t%d\n", d.OrdersCompleted)
	fmt.Fprintf(w, "Average order value:\t%s\n", views.Money(d.AverageOrderValue))
	fmt.Fprintf(w, "Customers today:\t%d\n", d.Customers)
	fmt.Fprintf(w, "Most popular:\t%s\n", itemList(d.PopularItems))
	fmt.Fprintf(w, "Inventory alerts:\t%d\n", d.InventoryAlerts)
	if m := sum.Manager; m != nil {
		for _, p := range m.Periods {
			name := views.Capitalize(p.Name)
			fmt.Fprintf(w, "\n%s (%s to %s)\t\n", name, p.From, p.To)
			fmt.Fprintf(w, "  %s revenue:\t%s\n", name, views.Money(p.Revenue))
			fmt.Fprintf(w, "  %s profit:\t%s\n", name, views.Money(p.Profit))
			fmt.Fprintf(w, "  Profit margin:\t%.2f%%\n", p.Margin)
			fmt.Fprintf(w, "  Items sold:\t%d\n", p.Quantity)
			fmt.Fprintf(w, "  Orders:\t%d\n", p.Orders)
			fmt.Fprintf(w, "  Average order value:\t%s\n", views.Money(p.AverageOrderValue))
		}
		fmt.Fprintf(w, "\nTop sellers:\t%s\n", itemList(m.TopSellers))
	}
	w.Flush()
	return sb.String()
}

func itemList(items []dashboard.ItemCount) string {
	if len(items) == 0 {
		return "none"
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%s (%d)", it.Name, it.Quantity)
	}
	return strings.Join(parts, ", ")
}
