package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-simform/internal/server"
	"github.com/goliatone/go-simform/pkg/contract"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr     string
		upstream string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the host page and forward submissions upstream",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("upstream") {
				cfg.Upstream = upstream
			}

			bindings, err := contract.Default(cmd.Context())
			if err != nil {
				return err
			}
			renderer, err := newRenderer(a.cfg.Theme)
			if err != nil {
				return err
			}
			srv, err := server.New(cfg, bindings, renderer, a.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().StringVar(&upstream, "upstream", "", "simulator origin to forward submissions to")
	return cmd
}
