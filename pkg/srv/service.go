package srv

import (
	"context"

	"github.com/sandevgo/campinnova/pkg/log"
)

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// StartServices starts every service in its own goroutine. A service that
// fails to start is fatal.
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

// ShutdownServices waits for ctx to be done, then stops the services in
// reverse start order so transports stop before the stores they write to.
func ShutdownServices(ctx context.Context, services []Service) {
	<-ctx.Done()
	StopServices(context.WithoutCancel(ctx), services)
}

func StopServices(ctx context.Context, services []Service) {
	logger := log.FromCtx(ctx)
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msgf("%T failed to shutdown", services[i])
		}
	}
}
