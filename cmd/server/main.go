package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/valentinokrauss/poker-voting/internal/app"
	"github.com/valentinokrauss/poker-voting/internal/config"
	"github.com/valentinokrauss/poker-voting/internal/log"
)

var version = "dev"

func main() {
	var (
		configPath string
		addr       string
		logLevel   string
	)

	root := &cobra.Command{
		Use:          "poker-voting",
		Short:        "Real-time planning poker voting server",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := log.New(logLevel)

			cfg, path, err := config.Load(logger, configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg.UpdateFrom(config.Config{Addr: addr, LogLevel: logLevel})

			logger = log.New(cfg.LogLevel)
			logger.Info().Str("addr", cfg.Addr).Str("config", path).Msg("starting poker-voting server")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := app.New(cfg, logger).Run(ctx); err != nil {
				return err
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}

	root.Flags().StringVar(&configPath, "config", "", "path to config file")
	root.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides config)")
	root.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
