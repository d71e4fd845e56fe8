package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/goto/salt/log"
	"go.opentelemetry.io/contrib/instrumentation/host"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/contrib/samplers/probability/consistent"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
	"google.golang.org/grpc/encoding/gzip"
)

type OpenTelemetryConfig struct {
	Enabled                bool          `yaml:"enabled" mapstructure:"enabled" default:"false"`
	CollectorAddr          string        `yaml:"collector_addr" mapstructure:"collector_addr" default:"localhost:4317"`
	PeriodicReadInterval   time.Duration `yaml:"periodic_read_interval" mapstructure:"periodic_read_interval" default:"1s"`
	TraceSampleProbability float64       `yaml:"trace_sample_probability" mapstructure:"trace_sample_probability" default:"1"`
	// HostMetrics also exports cpu, memory and network usage of the host.
	HostMetrics bool `yaml:"host_metrics" mapstructure:"host_metrics" default:"true"`
}

// shutdowns runs registered cleanups in reverse order.
type shutdowns []func()

func (s shutdowns) run() {
	for i := len(s) - 1; i >= 0; i-- {
		s[i]()
	}
}

func initOTLP(ctx context.Context, cfg Config, logger log.Logger) (func(), error) {
	if !cfg.OpenTelemetry.Enabled {
		logger.Info("OpenTelemetry monitoring is disabled.")
		return noOp, nil
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var cleanups shutdowns

	shutdownMetric, err := initGlobalMetrics(ctx, res, cfg.OpenTelemetry, logger)
	if err != nil {
		return nil, err
	}
	cleanups = append(cleanups, shutdownMetric)

	shutdownTracer, err := initGlobalTracer(ctx, res, cfg.OpenTelemetry, logger)
	if err != nil {
		cleanups.run()
		return nil, err
	}
	cleanups = append(cleanups, shutdownTracer)

	if cfg.OpenTelemetry.HostMetrics {
		if err := host.Start(); err != nil {
			cleanups.run()
			return nil, fmt.Errorf("start host metrics: %w", err)
		}
	}
	if err := runtime.Start(runtime.WithMinimumReadMemStatsInterval(cfg.OpenTelemetry.PeriodicReadInterval)); err != nil {
		cleanups.run()
		return nil, fmt.Errorf("start runtime metrics: %w", err)
	}

	logger.Info("OpenTelemetry monitoring is enabled", "collector", cfg.OpenTelemetry.CollectorAddr)
	return cleanups.run, nil
}

func newResource(ctx context.Context, cfg Config) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithOS(),
		resource.WithHost(),
		resource.WithProcess(),
		resource.WithProcessRuntimeName(),
		resource.WithProcessRuntimeVersion(),
		resource.WithAttributes(
			semconv.ServiceName(cfg.AppName),
			semconv.ServiceVersion(cfg.AppVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}
	return res, nil
}

func initGlobalMetrics(ctx context.Context, res *resource.Resource, cfg OpenTelemetryConfig, logger log.Logger) (func(), error) {
	exporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(cfg.CollectorAddr),
		otlpmetricgrpc.WithCompressor(gzip.Name),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create metric exporter: %w", err)
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.PeriodicReadInterval))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader), sdkmetric.WithResource(res))
	otel.SetMeterProvider(provider)

	return shutdownWithGrace(logger, "metric", provider.Shutdown), nil
}

func initGlobalTracer(ctx context.Context, res *resource.Resource, cfg OpenTelemetryConfig, logger log.Logger) (func(), error) {
	exporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient(
		otlptracegrpc.WithEndpoint(cfg.CollectorAddr),
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithCompressor(gzip.Name),
	))
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(consistent.ProbabilityBased(cfg.TraceSampleProbability)),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(sdktrace.NewBatchSpanProcessor(exporter)),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	return shutdownWithGrace(logger, "trace", tracerProvider.Shutdown), nil
}

func shutdownWithGrace(logger log.Logger, provider string, shutdown func(context.Context) error) func() {
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), gracePeriod)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Error("otlp provider failed to shutdown", "provider", provider, "err", err)
		}
	}
}

func noOp() {}
