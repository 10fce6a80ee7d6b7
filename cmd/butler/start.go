package main

import (
	"os"
	"os/signal"

	"github.com/sandevgo/butler/internal/core"
	"github.com/sandevgo/butler/pkg/log"
	"github.com/sandevgo/butler/pkg/srv"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the Telegram bot",
	Long:  `Starts the Telegram bot together with the idle-entry sweeper and, when METRICS_ADDR is set, the metrics server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Str("version", core.ButlerVersion).Msgf("starting %s", core.ButlerName)

		services := NewServices(ctx)

		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, services)
		logger.Info().Msgf("%s has been shut down gracefully", core.ButlerName)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
