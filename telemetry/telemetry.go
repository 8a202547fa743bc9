// Package telemetry wires OpenTelemetry trace and log export for the
// lesson-engine binaries. Library packages only use the global otel APIs;
// nothing is exported unless a binary calls Initialize.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amp-labs/lesson-engine/build"
	"github.com/amp-labs/lesson-engine/envutil"
	"github.com/amp-labs/lesson-engine/logger"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

const defaultTimeout = 5 * time.Second

// Config holds the OpenTelemetry configuration.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Endpoint       string
	Enabled        bool
	ExportLogs     bool
	Timeout        time.Duration
}

// Provider owns the SDK providers created by Initialize.
type Provider struct {
	tracer *sdktrace.TracerProvider
	logs   *sdklog.LoggerProvider
}

// LoadConfigFromEnv loads OpenTelemetry configuration from environment variables.
func LoadConfigFromEnv(ctx context.Context, runningEnv string) (*Config, error) {
	enabled, err := envutil.Bool("OTEL_ENABLED", envutil.Default(false)).Value()
	if err != nil {
		return nil, err
	}

	exportLogs, err := envutil.Bool("OTEL_EXPORT_LOGS", envutil.Default(false)).Value()
	if err != nil {
		return nil, err
	}

	svcName, err := envutil.String("OTEL_SERVICE_NAME", envutil.Default(logger.GetSubsystem(ctx))).Value()
	if err != nil {
		return nil, err
	}

	svcVersion, err := envutil.String("OTEL_SERVICE_VERSION", envutil.Default(build.Current().Version)).Value()
	if err != nil {
		return nil, err
	}

	endpoint, err := envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", envutil.Default("")).Value()
	if err != nil {
		return nil, err
	}

	timeout, err := envutil.Duration("OTEL_EXPORTER_OTLP_TIMEOUT", envutil.Default(defaultTimeout)).Value()
	if err != nil {
		return nil, err
	}

	return &Config{
		ServiceName:    svcName,
		ServiceVersion: svcVersion,
		Environment:    runningEnv,
		Endpoint:       endpoint,
		Enabled:        enabled,
		ExportLogs:     exportLogs,
		Timeout:        timeout,
	}, nil
}

// Initialize sets up trace export (and, if configured, log export) and
// installs the providers globally. A disabled or endpoint-less config yields
// an inert Provider.
func Initialize(ctx context.Context, config *Config) (*Provider, error) {
	provider := &Provider{}

	if config == nil || !config.Enabled {
		slog.DebugContext(ctx, "OpenTelemetry is disabled")

		return provider, nil
	}

	if config.Endpoint == "" {
		slog.WarnContext(ctx, "OpenTelemetry endpoint not configured, telemetry will be disabled")

		return provider, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(config.ServiceName),
			semconv.ServiceVersionKey.String(config.ServiceVersion),
			semconv.DeploymentEnvironmentKey.String(config.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	traceExporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(config.Endpoint),
		otlptracehttp.WithTimeout(config.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	provider.tracer = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(provider.tracer)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if config.ExportLogs {
		logExporter, err := otlploghttp.New(ctx,
			otlploghttp.WithEndpointURL(config.Endpoint),
			otlploghttp.WithTimeout(config.Timeout),
		)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("failed to create OTLP log exporter: %w", err),
				provider.tracer.Shutdown(ctx))
		}

		provider.logs = sdklog.NewLoggerProvider(
			sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
			sdklog.WithResource(res),
		)

		global.SetLoggerProvider(provider.logs)
	}

	slog.InfoContext(ctx, "OpenTelemetry initialized",
		"service", config.ServiceName,
		"version", config.ServiceVersion,
		"environment", config.Environment,
		"endpoint", config.Endpoint,
		"logs", config.ExportLogs,
	)

	return provider, nil
}

// LogHandler returns an slog handler that forwards records to the OTLP log
// exporter, or nil when log export isn't active. Pass it to
// logger.WithHandlers to fan records out.
func (p *Provider) LogHandler(name string) slog.Handler {
	if p == nil || p.logs == nil {
		return nil
	}

	return otelslog.NewHandler(name, otelslog.WithLoggerProvider(p.logs))
}

// Enabled reports whether any exporter is active.
func (p *Provider) Enabled() bool {
	return p != nil && (p.tracer != nil || p.logs != nil)
}

// Shutdown flushes and stops every provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}

	var errs []error

	if p.tracer != nil {
		errs = append(errs, p.tracer.Shutdown(ctx))
	}

	if p.logs != nil {
		errs = append(errs, p.logs.Shutdown(ctx))
	}

	return errors.Join(errs...)
}
