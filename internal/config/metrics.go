package config

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/butler/pkg/log"
)

type MetricsConfig struct {
	// Listen address of /metrics and /healthz, e.g. ":9090". Empty disables the server.
	Addr      string `env:"METRICS_ADDR"`
	Namespace string `env:"METRICS_NAMESPACE" envDefault:"butler"`
}

func LoadMetricsConfig() (*MetricsConfig, error) {
	c := &MetricsConfig{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("failed to parse Metrics config: %w", err)
	}
	return c, nil
}

func NewMetricsConfig(ctx context.Context) *MetricsConfig {
	c, err := LoadMetricsConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to load config")
	}
	return c
}

func (c MetricsConfig) Enabled() bool {
	return c.Addr != ""
}
