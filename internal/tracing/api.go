package tracing

import (
	"context"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
)

const TRACING_INSTRUMENTATION_NAME = "feedpipe"

const HONEYCOMB_ENDPOINT = "api.honeycomb.io:443"

func GetTracer() trace.Tracer {
	return otel.Tracer(TRACING_INSTRUMENTATION_NAME)
}

// ExporterConfig says where to send spans. An empty Endpoint means stderr
type ExporterConfig struct {
	Endpoint string
	Headers  map[string]string
	Insecure bool
}

// ExporterConfigFromEnv reads FEEDPIPE_OTLP_ENDPOINT and FEEDPIPE_OTLP_INSECURE, or
// HONEYCOMB_API_KEY and HONEYCOMB_DATASET, which take precedence
func ExporterConfigFromEnv() ExporterConfig {
	apiKey := os.Getenv("HONEYCOMB_API_KEY")
	dataset := os.Getenv("HONEYCOMB_DATASET")
	if apiKey != "" && dataset != "" {
		return ExporterConfig{
			Endpoint: HONEYCOMB_ENDPOINT,
			Headers: map[string]string{
				"x-honeycomb-team":    apiKey,
				"x-honeycomb-dataset": dataset,
			},
		}
	}

	insecure, _ := strconv.ParseBool(os.Getenv("FEEDPIPE_OTLP_INSECURE"))
	return ExporterConfig{
		Endpoint: os.Getenv("FEEDPIPE_OTLP_ENDPOINT"),
		Insecure: insecure,
	}
}

type TracingConfig struct {
	// The name of the service that is doing tracing
	ServiceName string

	// If true, only log spans to stderr, don't send them off (Default: false)
	Debug bool

	// The rate at which to sample (0 - 1), where 0 (default) is no sampling (send no spans)
	// and 1 is send all the spans
	SamplingRate float64

	// The span propagation format (Defaults to B3)
	Propagator propagation.TextMapPropagator

	Exporter ExporterConfig
}

// NewSampler treats rates above 1 as 1, and rates below 0 as 0
func NewSampler(rate float64) tracesdk.Sampler {
	switch {
	case rate >= 1:
		return tracesdk.AlwaysSample()
	case rate <= 0:
		return tracesdk.NeverSample()
	}

	return tracesdk.TraceIDRatioBased(rate)
}

func newExporter(config TracingConfig) (tracesdk.SpanExporter, error) {
	if config.Debug || config.Exporter.Endpoint == "" {
		// stdout is reserved for the report, so spans go to stderr
		log.Debug().Bool("debug", config.Debug).Msg("Initializing stderr tracing")
		return stdouttrace.New(stdouttrace.WithWriter(os.Stderr), stdouttrace.WithPrettyPrint())
	}

	log.Debug().Str("endpoint", config.Exporter.Endpoint).Msg("Initializing otlp tracing")
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(config.Exporter.Endpoint),
	}

	if len(config.Exporter.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(config.Exporter.Headers))
	}

	if config.Exporter.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	return otlptrace.New(context.Background(), otlptracehttp.NewClient(opts...))
}

// InitTracing sets up the global tracer provider. The caller should Shutdown
// the returned provider before exiting so that batched spans are flushed
func InitTracing(config TracingConfig) *tracesdk.TracerProvider {
	if config.Propagator == nil {
		config.Propagator = b3.New()
	}

	otel.SetTextMapPropagator(config.Propagator)

	opts := []tracesdk.TracerProviderOption{
		tracesdk.WithSampler(NewSampler(config.SamplingRate)),
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(config.ServiceName),
		)),
	}

	// Nothing would be exported anyway, so don't bother setting up an exporter
	if config.SamplingRate > 0 {
		exporter, err := newExporter(config)
		if err != nil {
			log.Warn().Err(err).Msg("Error initializing tracing")
		} else {
			opts = append(opts, tracesdk.WithBatcher(exporter))
		}
	}

	tp := tracesdk.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)

	return tp
}
