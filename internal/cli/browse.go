package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/teashop/internal/netstatus"
	"github.com/mesh-intelligence/teashop/internal/ui"
)

// checker returns a connectivity checker for remote_url, or nil when none
// is configured.
func (a *app) checker() *netstatus.Checker {
	url := a.config.GetString(cfgKeyRemoteURL)
	if url == "" {
		return nil
	}
	return netstatus.New(url, a.logger)
}

func newBrowseCmd(a *app) *cobra.Command {
	var theme string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive terminal browser",
		Long: `Browse opens a full-screen browser with one tab per screen you may view.

Keys: ←/→ page, g/G first/last page, tab switch screen, / search,
r reload, t toggle theme, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.loadSession()
			if err != nil {
				return err
			}
			size, err := a.pageSize(0)
			if err != nil {
				return err
			}
			if theme == "" {
				theme = a.config.GetString(cfgKeyTheme)
			}
			shop, err := a.attach()
			if err != nil {
				return err
			}
			defer shop.Detach()

			m, err := ui.NewBrowser(shop, sess, ui.Options{
				Theme:    ui.ThemeByName(theme),
				PageSize: size,
				Checker:  a.checker(),
				Logger:   a.logger,
			})
			if err != nil {
				return err
			}
			return sysErr(ui.Run(m))
		},
	}
	cmd.Flags().StringVar(&theme, "theme", "", "light or dark (default: theme from config)")
	return cmd
}
