package observability

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config selects how logs, metrics and traces are produced.
type Config struct {
	ServiceName string
	Environment string
	LogLevel    string
}

// Provider owns the process-wide logger and tracer provider.
type Provider struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
}

// Registry hands out the instruments modules use.
type Registry struct {
	Tracer     trace.Tracer
	Prometheus *prometheus.Registry
	Metrics    OperationMetrics
}

// Observability bundles logging, tracing and metrics.
type Observability struct {
	Provider Provider
	Registry Registry
}

// Init builds the observability stack. Tracing uses the global otel provider,
// which is a no-op unless an exporter has been installed.
func Init(cfg Config) (*Observability, error) {
	logger := NewLogger(os.Stdout, cfg.Environment, cfg.LogLevel).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	metrics, err := NewPrometheusMetrics(reg, "ssbu_bot")
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	tp := otel.GetTracerProvider()

	return &Observability{
		Provider: Provider{Logger: logger, TracerProvider: tp},
		Registry: Registry{
			Tracer:     tp.Tracer(cfg.ServiceName),
			Prometheus: reg,
			Metrics:    metrics,
		},
	}, nil
}

// NewNoop returns an Observability that discards logs, spans and metrics.
func NewNoop() *Observability {
	tp := noop.NewTracerProvider()
	return &Observability{
		Provider: Provider{Logger: slog.New(slog.NewTextHandler(io.Discard, nil)), TracerProvider: tp},
		Registry: Registry{
			Tracer:     tp.Tracer("noop"),
			Prometheus: prometheus.NewRegistry(),
			Metrics:    NoOpMetrics{},
		},
	}
}

// NewLogger returns a JSON logger, or a text logger in development.
func NewLogger(w io.Writer, environment, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if environment == "development" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
