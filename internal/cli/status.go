package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/teashop/internal/netstatus"
	"github.com/mesh-intelligence/teashop/internal/session"
	"github.com/mesh-intelligence/teashop/internal/views"
	"github.com/mesh-intelligence/teashop/pkg/types"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show connectivity, the signed-in employee and record counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shop, err := a.attach()
			if err != nil {
				return err
			}
			defer shop.Detach()

			counts := map[string]int{}
			for _, name := range types.StandardTableNames {
				tbl, err := table(shop, name)
				if err != nil {
					return err
				}
				all, err := tbl.Fetch(nil)
				if err != nil {
					return sysErr(err)
				}
				counts[name] = len(all)
			}
			inv, err := table(shop, types.InventoryTable)
			if err != nil {
				return sysErr(err)
			}
			low, err := inv.Fetch(types.Filter{"status": []string{types.StockLow, types.StockOut}})
			if err != nil {
				return sysErr(err)
			}

			remote := netstatus.Unknown
			url := a.config.GetString(cfgKeyRemoteURL)
			if c := a.checker(); c != nil {
				remote = c.Check(context.Background())
			}

			user := "not logged in"
			sess, err := session.Load(a.sessionPath())
			switch {
			case err == nil:
				user = fmt.Sprintf("%s (%s)", sess.Name, views.Capitalize(sess.Role))
			case !errors.Is(err, types.ErrNotLoggedIn):
				return sysErr(err)
			}

			if a.jsonMode {
				return writeJSON(cmd, map[string]any{
					"data_dir":      shop.DataDir(),
					"user":          user,
					"remote_url":    url,
					"remote_status": remote.String(),
					"records":       counts,
					"low_stock":     len(low),
				})
			}

			var sb strings.Builder
			w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Data dir:\t%s\n", shop.DataDir())
			fmt.Fprintf(w, "User:\t%s\n", user)
			if url == "" {
				fmt.Fprintf(w, "Remote:\tnot configured\n")
			} else {
				fmt.Fprintf(w, "Remote:\t%s (%s)\n", url, remote)
			}
			for _, name := range types.StandardTableNames {
				fmt.Fprintf(w, "%s:\t%d\n", views.Capitalize(name), counts[name])
			}
			fmt.Fprintf(w, "Low stock:\t%d\n", len(low))
			w.Flush()
			_, err = fmt.Fprint(cmd.OutOrStdout(), sb.String())
			return err
		},
	}
}
