package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/butler/internal/config"
	"github.com/sandevgo/butler/internal/core"
	"github.com/sandevgo/butler/internal/observability"
	"github.com/sandevgo/butler/internal/service/command"
	"github.com/sandevgo/butler/internal/service/conversation"
	"github.com/sandevgo/butler/internal/service/dispatch"
	"github.com/sandevgo/butler/internal/service/display"
	"github.com/sandevgo/butler/internal/service/export"
	"github.com/sandevgo/butler/internal/service/sweeper"
	"github.com/sandevgo/butler/internal/storage/memory"
	"github.com/sandevgo/butler/internal/transport/telegram"
	"github.com/sandevgo/butler/pkg/log"
	"github.com/sandevgo/butler/pkg/srv"
)

// app is the transport independent part of the bot.
type app struct {
	cfg        *config.AppConfig
	sessionCfg *config.SessionConfig
	metricsCfg *config.MetricsConfig
	sessions   *conversation.Sessions
	engine     *conversation.Engine
	metrics    *observability.Metrics
	handler    core.Handler
	router     core.CmdRouter
}

func newApp(ctx context.Context) *app {
	logger := log.FromCtx(ctx)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	sessionCfg := config.NewSessionConfig(ctx)
	metricsCfg := config.NewMetricsConfig(ctx)

	// 2. Storage and flows
	var store core.RecordStore = memory.NewStore()
	sessions := conversation.NewSessions()
	metrics := observability.NewMetrics(metricsCfg.Namespace, sessions.ActiveCount)
	engine := conversation.NewEngine(store, sessions, conversation.WithRecorder(metrics))

	// 3. Commands and dispatch
	exporter := export.NewExporter(store)
	router := command.New(command.NewCommands(
		engine,
		store,
		exporter,
		display.NewRenderer(store),
		metrics,
	))

	return &app{
		cfg:        appCfg,
		sessionCfg: sessionCfg,
		metricsCfg: metricsCfg,
		sessions:   sessions,
		engine:     engine,
		metrics:    metrics,
		handler:    dispatch.New(engine, router, exporter, metrics),
		router:     router,
	}
}

// backgroundServices are shared by every transport.
func (a *app) backgroundServices(ctx context.Context) []srv.Service {
	services := []srv.Service{
		// records live in memory only
		srv.NewCleanup(func() error {
			log.FromCtx(ctx).Warn().
				Int("unfinished_entries", a.sessions.ActiveCount()).
				Msg("in-memory records and drafts are discarded on exit")
			return nil
		}),
	}

	if a.sessionCfg.IdleTimeout > 0 {
		services = append(services, sweeper.New(a.engine, a.sessionCfg.SweepSpec, a.sessionCfg.IdleTimeout))
	}

	if a.metricsCfg.Enabled() {
		services = append(services, observability.NewServer(a.metricsCfg.Addr, a.metrics, a.sessions.ActiveCount))
	}
	return services
}

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	a := newApp(ctx)

	tgCfg := config.NewTelegramConfig(ctx)
	bot, err := telegram.NewBot(ctx, tgCfg, a.handler, a.router.ListCommands())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize telegram bot")
	}
	a.sessions.SetExpireHook(bot.ExpireHook(ctx))

	services := a.backgroundServices(ctx)
	return append(services, bot)
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
