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
	meterProvider  *metric.MeterProvider
	meter          otelmetric.Meter
	searchCounter  otelmetric.Int64Counter
	searchDuration otelmetric.Float64Histogram
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

	searchCounter, _ := meter.Int64Counter(
		"search.requests",
		otelmetric.WithDescription("Number of search requests processed"),
	)

	searchDuration, _ := meter.Float64Histogram(
		"search.duration",
		otelmetric.WithDescription("Search request processing duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:  provider,
		meter:          meter,
		searchCounter:  searchCounter,
		searchDuration: searchDuration,
	}
}

// RecordSearch records one completed search request. source is "cache" or
// "index", status is "ok" or "error".
func (o *Observability) RecordSearch(ctx context.Context, source, status string) {
	if o.searchCounter != nil {
		o.searchCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("source", source),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordSearchDuration(ctx context.Context, duration time.Duration, status string) {
	if o.searchDuration != nil {
		o.searchDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
