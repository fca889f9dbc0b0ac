package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/run-bigpig/carpick/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the consultation HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			applyLogLevel(cmd, cfg.LogLevel)

			orch, sessions, err := buildOrchestrator(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = cfg.Server.Addr
			}
			return server.New(orch, sessions).Run(ctx, addr)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default from config)")
	return cmd
}
