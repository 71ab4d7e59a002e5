// Package observability wires logging and metrics providers.
package observability

import (
	"github.com/meridiancrm/meridian/internal/config"
	"github.com/meridiancrm/meridian/internal/observability/logger"
	"github.com/meridiancrm/meridian/internal/observability/metrics"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(
		provideLoggerConfig,
		logger.New,
		provideHTTPMetrics,
	),
)

func provideLoggerConfig(cfg config.Config) logger.Config {
	return logger.Config{
		ServiceName: cfg.AppName,
		Environment: cfg.Environment,
		Version:     cfg.AppVersion,
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Debug:       cfg.Debug(),
	}
}

func provideHTTPMetrics(cfg config.Config) *metrics.HTTPMetrics {
	return metrics.NewHTTPMetrics(cfg.AppName)
}
