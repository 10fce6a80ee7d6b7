package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/butler/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"BUTLER_RUNTIME_PATH" envDefault:".butler"`
	// Where the console transport writes CSV exports. Defaults to <runtime>/exports.
	ConsoleExportDir string `env:"CONSOLE_EXPORT_DIR"`
}

func LoadAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("failed to parse App config: %w", err)
	}
	c.RuntimePath = absRuntimePath(c.RuntimePath)
	return c, nil
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := LoadAppConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to load config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.RuntimePath, ".env")
}

func (c AppConfig) GetExportDir() string {
	if c.ConsoleExportDir != "" {
		return c.ConsoleExportDir
	}
	return filepath.Join(c.RuntimePath, "exports")
}
