package srv

import (
	"context"
	"time"

	"github.com/sandevgo/butler/pkg/log"
)

const shutdownTimeout = 10 * time.Second

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

func StartServices(ctx context.Context, services []Service) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			if err := service.Start(ctx); err != nil {
				logger.Fatal().Err(err).Msgf("%T failed to start", service)
			}
		}(service)
	}
}

// ShutdownServices waits for ctx to end, then stops services in reverse
// start order within shutdownTimeout.
func ShutdownServices(ctx context.Context, services []Service) {
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	logger := log.FromCtx(ctx)
	for i := len(services) - 1; i >= 0; i-- {
		service := services[i]
		if err := service.Shutdown(stopCtx); err != nil {
			logger.Error().Err(err).Msgf("%T failed to shutdown", service)
			continue
		}
		logger.Debug().Msgf("%T stopped", service)
	}
}
