package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/teashop/internal/sqlite"
	"github.com/mesh-intelligence/teashop/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	var noSeed bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize teashop storage",
		Long: `Create the configuration and data directories, initialize the storage
backend and load the sample shop data into empty tables.

Running init again is safe: tables that already hold records are left alone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			shop, err := a.attach()
			if err != nil {
				return err
			}
			defer shop.Detach()

			seeded := sqlite.SeedResult{}
			if !noSeed {
				seeded, err = sqlite.Seed(shop)
				if err != nil {
					return sysErr(fmt.Errorf("seed shop: %w", err))
				}
			}

			if a.jsonMode {
				return writeJSON(cmd, map[string]any{
					"data_dir": shop.DataDir(),
					"seeded":   seeded,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Shop initialized at %s\n", shop.DataDir())
			for _, name := range types.StandardTableNames {
				if n := seeded[name]; n > 0 {
					fmt.Fprintf(out, "  seeded %d %s\n", n, name)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "do not load the sample data")
	return cmd
}
