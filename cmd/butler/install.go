package main

import (
	"github.com/joho/godotenv"
	"github.com/sandevgo/butler/internal/config"
	"github.com/sandevgo/butler/internal/service/installer"
	"github.com/sandevgo/butler/pkg/log"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:           "install",
	Short:         "Write the Butler configuration interactively",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting installation process")

		runtimePath := config.GetRuntimePath()
		if _, err := installer.RunWizard(runtimePath); err != nil {
			return err
		}

		envPath := config.AppConfig{RuntimePath: runtimePath}.GetEnvPath()
		if err := godotenv.Load(envPath); err != nil {
			logger.Warn().Err(err).Str("path", envPath).Msg("failed to load .env file")
		}

		logger.Info().Msgf("configuration written to: %s", envPath)
		logger.Info().Msg("Installation complete! You can now run 'butler start'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
