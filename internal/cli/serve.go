package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/teashop/internal/httpapi"
	"github.com/mesh-intelligence/teashop/internal/netstatus"
)

// monitorInterval is how often serve rechecks remote_url.
const monitorInterval = time.Minute

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the shop's listings over HTTP",
		Long: `Serve starts the HTTP API with the signed-in employee's permissions and runs
until interrupted.

Endpoints:
  GET  /health
  GET  /api/inventory   ?page&page_size&q&category&status&format=csv
  GET  /api/inventory/{id}
  GET  /api/employees   ?page&page_size&q&role&status
  GET  /api/orders      ?page&page_size&q&status
  POST /api/orders/{id}/status   {"status":"processing"}
  GET  /api/reports     ?page&page_size&q&category&from&to&format=csv`,
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
			if addr == "" {
				addr = a.config.GetString(cfgKeyHTTPAddr)
			}
			shop, err := a.attach()
			if err != nil {
				return err
			}
			defer shop.Detach()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			g, ctx := errgroup.WithContext(ctx)

			srv := httpapi.NewServer(shop, httpapi.Config{
				Addr:     addr,
				PageSize: size,
				Session:  sess,
				Logger:   a.logger,
			})
			g.Go(func() error {
				return srv.Run(ctx)
			})
			if c := a.checker(); c != nil {
				g.Go(func() error {
					monitor(ctx, c, a.logger)
					return nil
				})
			}
			return sysErr(g.Wait())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: http_addr from config)")
	return cmd
}

// monitor logs connectivity changes until ctx is done.
func monitor(ctx context.Context, c *netstatus.Checker, logger *zap.Logger) {
	ticker := time.NewTicker(monitorInterval)
	defer ticker.Stop()

	last := netstatus.Unknown
	for {
		if status := c.Check(ctx); status != last {
			logger.Info("remote status", zap.String("url", c.URL), zap.Stringer("status", status))
			last = status
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
