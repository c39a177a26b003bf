package observability

import (
	"github.com/smallbiznis/billora/internal/config"
	"github.com/smallbiznis/billora/internal/observability/logger"
	"github.com/smallbiznis/billora/internal/observability/metrics"
	"github.com/smallbiznis/billora/internal/observability/tracing"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("observability",
	logger.Module,
	fx.Provide(func(cfg config.Config) metrics.Config {
		return metrics.Config{
			ServiceName: cfg.ServiceName,
			Environment: cfg.Environment,
		}
	}),
	fx.Provide(func(cfg config.Config) (*metrics.Provider, error) {
		return metrics.NewProvider(cfg.Telemetry.MetricsEnabled)
	}),
	fx.Provide(func(cfg metrics.Config, provider *metrics.Provider) (*metrics.HTTPMetrics, error) {
		return metrics.NewHTTPMetrics(cfg, provider.Meter)
	}),
	fx.Provide(func(cfg metrics.Config, provider *metrics.Provider) *metrics.ExportMetrics {
		return metrics.NewExportMetrics(provider.Registry, cfg)
	}),
	fx.Invoke(func(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) error {
		_, err := tracing.NewProvider(lc, tracing.Config{
			Enabled:          cfg.Telemetry.TracingEnabled,
			ServiceName:      cfg.ServiceName,
			Environment:      cfg.Environment,
			ExporterEndpoint: cfg.Telemetry.ExporterEndpoint,
			ExporterProtocol: cfg.Telemetry.ExporterProtocol,
			SamplingRatio:    cfg.Telemetry.SamplingRatio,
		}, log)
		return err
	}),
)
