package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/sandevgo/butler/internal/transport/cli"
	"github.com/sandevgo/butler/pkg/log"
	"github.com/sandevgo/butler/pkg/srv"
	"github.com/spf13/cobra"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Talk to the bot from the terminal",
	Long:  `Runs the same conversation as the Telegram bot in a local prompt. CSV exports are written to CONSOLE_EXPORT_DIR.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		a := newApp(ctx)
		rl, err := cli.NewReadLine(a.handler, a.cfg)
		if err != nil {
			return err
		}

		services := a.backgroundServices(ctx)
		srv.StartServices(ctx, services)

		runErr := rl.Start(ctx)

		// the prompt can end before any signal arrives
		stop()
		srv.ShutdownServices(ctx, append(services, rl))

		if runErr != nil && !errors.Is(runErr, context.Canceled) {
			log.FromCtx(ctx).Error().Err(runErr).Msg("console failed")
			return runErr
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}
