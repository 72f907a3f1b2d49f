package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider      *metric.MeterProvider
	meter              otelmetric.Meter
	invocationCounter  otelmetric.Int64Counter
	invocationDuration otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	invocationCounter, _ := meter.Int64Counter(
		"skills.invocations",
		otelmetric.WithDescription("Number of skill invocations processed"),
	)

	invocationDuration, _ := meter.Float64Histogram(
		"skills.invocation_duration",
		otelmetric.WithDescription("Skill invocation duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:      provider,
		meter:              meter,
		invocationCounter:  invocationCounter,
		invocationDuration: invocationDuration,
	}
}

func (o *Observability) RecordInvocation(ctx context.Context, skill, status string) {
	if o.invocationCounter != nil {
		o.invocationCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("skill", skill),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordInvocationDuration(ctx context.Context, skill string, duration time.Duration, status string) {
	if o.invocationDuration != nil {
		o.invocationDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("skill", skill),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = o.meterProvider.Shutdown(ctx)
	}
}
