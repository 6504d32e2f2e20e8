package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
)

// OTelConfig holds OpenTelemetry initialization settings.
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	TraceExporter  string // "stdout", "none"
	MetricExporter string // "prometheus", "none"
	SampleRate     float64
}

// DefaultOTelConfig returns the configuration used outside of tests:
// Prometheus metrics always on, stdout traces only in development.
func DefaultOTelConfig() *OTelConfig {
	traceExporter := "none"
	if os.Getenv("SCANPULSE_ENV") == "development" {
		traceExporter = "stdout"
	}

	return &OTelConfig{
		ServiceName:    "scanpulse",
		ServiceVersion: Version,
		Environment:    os.Getenv("SCANPULSE_ENV"),
		TraceExporter:  traceExporter,
		MetricExporter: "prometheus",
		SampleRate:     1.0,
	}
}

// OTelProviders bundles the initialized tracer and meter providers.
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
}

// InitializeOTel sets up tracing and metrics providers and installs them as
// the global OpenTelemetry providers.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create otel resource: %w", err)
	}

	providers := &OTelProviders{}

	tracerOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRate)),
	}
	if cfg.TraceExporter == "stdout" {
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout trace exporter: %w", err)
		}
		tracerOpts = append(tracerOpts, sdktrace.WithBatcher(exporter))
	}
	providers.TracerProvider = sdktrace.NewTracerProvider(tracerOpts...)
	otel.SetTracerProvider(providers.TracerProvider)

	meterOpts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	if cfg.MetricExporter == "prometheus" {
		// Registers on the default Prometheus registry, served at /metrics
		exporter, err := prometheus.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
		}
		meterOpts = append(meterOpts, sdkmetric.WithReader(exporter))
	}
	providers.MeterProvider = sdkmetric.NewMeterProvider(meterOpts...)
	otel.SetMeterProvider(providers.MeterProvider)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	providers.Tracer = providers.TracerProvider.Tracer(cfg.ServiceName)
	providers.Meter = providers.MeterProvider.Meter(cfg.ServiceName)

	logger.Info("OpenTelemetry initialized",
		slog.String("service", cfg.ServiceName),
		slog.String("trace_exporter", cfg.TraceExporter),
		slog.String("metric_exporter", cfg.MetricExporter))

	return providers, nil
}

// Shutdown flushes and stops both providers.
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var firstErr error
	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ScanMetrics holds the instruments recorded by the load pipeline and the
// HTTP layer.
type ScanMetrics struct {
	FilesParsed  metric.Int64Counter
	RowsLoaded   metric.Int64Counter
	LoadDuration metric.Float64Histogram
	HTTPRequests metric.Int64Counter
}

// NewScanMetrics creates the application's metric instruments.
func NewScanMetrics(meter metric.Meter) (*ScanMetrics, error) {
	filesParsed, err := meter.Int64Counter("scanpulse_files_parsed_total",
		metric.WithDescription("Scan files successfully parsed at startup"))
	if err != nil {
		return nil, err
	}

	rowsLoaded, err := meter.Int64Counter("scanpulse_rows_loaded_total",
		metric.WithDescription("Scan rows loaded into the merged dataset"))
	if err != nil {
		return nil, err
	}

	loadDuration, err := meter.Float64Histogram("scanpulse_load_duration_seconds",
		metric.WithDescription("Duration of the startup dataset build"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	httpRequests, err := meter.Int64Counter("scanpulse_http_requests_total",
		metric.WithDescription("HTTP requests served"))
	if err != nil {
		return nil, err
	}

	return &ScanMetrics{
		FilesParsed:  filesParsed,
		RowsLoaded:   rowsLoaded,
		LoadDuration: loadDuration,
		HTTPRequests: httpRequests,
	}, nil
}
