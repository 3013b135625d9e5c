package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/teashop/internal/render"
	"github.com/mesh-intelligence/teashop/internal/views"
	"github.com/mesh-intelligence/teashop/pkg/types"
)

func newReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "report",
		Aliases: []string{"reports"},
		Short:   "Sales reports (managers only)",
	}
	cmd.AddCommand(newReportListCmd(a))
	return cmd
}

func parseDateFlag(name, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(types.ReportDateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s %q must be YYYY-MM-DD: %w", name, v, types.ErrInvalidFilter)
	}
	return t, nil
}

func newReportListCmd(a *app) *cobra.Command {
	var (
		f        views.ReportFilter
		from, to string
		csvMode  bool
		pages    pageFlags
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sales report lines with totals",
		Long: `List shows one page of sales report lines for an inclusive date range, with
quantity, revenue and profit totals over the whole range. --csv writes every
matching line (not only one page) as CSV.

Example:
  teashop report list --from 2023-06-01 --to 2023-06-30
  teashop report list --category "Milk Tea"
  teashop report list --csv > report.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if f.From, err = parseDateFlag("from", from); err != nil {
				return err
			}
			if f.To, err = parseDateFlag("to", to); err != nil {
				return err
			}
			if _, err := a.requireSession(types.ReportsTable); err != nil {
				return err
			}
			size, err := a.pageSize(pages.pageSize)
			if err != nil {
				return err
			}
			shop, err := a.attach()
			if err != nil {
				return err
			}
			defer shop.Detach()

			lines, err := views.LoadReports(shop, f)
			if err != nil {
				return sysErr(err)
			}

			if csvMode {
				listing := views.NewListing(views.ReportColumns(), views.ReportOptions(), max(len(lines), 1), nil)
				return render.CSV(cmd.OutOrStdout(), listing.RenderPage(f.Key(), lines, 1))
			}
			listing := views.NewListing(views.ReportColumns(), views.ReportOptions(), size, nil)
			return a.writeTable(cmd, listing.RenderPage(f.Key(), lines, pages.page))
		},
	}
	cmd.Flags().StringVar(&f.Search, "search", "", "match product or category")
	cmd.Flags().StringVar(&f.Category, "category", "", "filter by product category")
	cmd.Flags().StringVar(&from, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last day, YYYY-MM-DD")
	cmd.Flags().BoolVar(&csvMode, "csv", false, "write all matching lines as CSV")
	pages.register(cmd)
	return cmd
}
