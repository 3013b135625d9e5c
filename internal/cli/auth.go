package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/teashop/internal/session"
	"github.com/mesh-intelligence/teashop/internal/views"
)

func newLoginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in as an active employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shop, err := a.attach()
			if err != nil {
				return err
			}
			defer shop.Detach()

			sess, err := session.Login(shop, args[0], time.Now())
			if err != nil {
				return err
			}
			if err := session.Save(a.sessionPath(), sess); err != nil {
				return sysErr(err)
			}
			a.logger.Info("login", zap.String("email", sess.Email), zap.String("role", sess.Role))

			if a.jsonMode {
				return writeJSON(cmd, sess)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", sess.Name, views.Capitalize(sess.Role))
			return nil
		},
	}
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := session.Clear(a.sessionPath()); err != nil {
				return sysErr(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.loadSession()
			if err != nil {
				return err
			}
			if a.jsonMode {
				return writeJSON(cmd, sess)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\nRole: %s\nSince: %s\n",
				sess.Name, sess.Email, views.Capitalize(sess.Role), sess.StartedAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
}
