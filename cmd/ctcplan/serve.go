package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ctcplan/ctc-planner/internal/api"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculation API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.settings.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := api.NewServer(a.engine, a.settings, a.logger)
			a.logger.Info("starting ctcplan server",
				"version", version, "policy", a.policy.Name, "addr", a.settings.Server.Addr)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return srv.Run(gctx) })
			g.Go(func() error {
				<-gctx.Done()
				if ctx.Err() != nil {
					a.logger.Info("shutdown signal received")
				}
				return nil
			})
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address override (e.g. :9090)")
	return cmd
}
