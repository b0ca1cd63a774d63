package observability

import (
	"context"
	"log"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "outreach-campaigns"

type Observability struct {
	meterProvider    *metric.MeterProvider
	meter            otelmetric.Meter
	tracer           trace.Tracer
	campaignCounter  otelmetric.Int64Counter
	campaignDuration otelmetric.Float64Histogram
	recipientCounter otelmetric.Int64Counter
}

// New wires an OpenTelemetry meter provider to a Prometheus exporter.
// A nil registerer falls back to the Prometheus default registry.
func New(serviceName string, registerer promclient.Registerer) *Observability {
	o := &Observability{tracer: otel.Tracer(instrumentationName)}

	opts := []prometheus.Option{}
	if registerer != nil {
		opts = append(opts, prometheus.WithRegisterer(registerer))
	}
	exporter, err := prometheus.New(opts...)
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return o
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	o.campaignCounter, _ = meter.Int64Counter(
		"campaigns.runs",
		otelmetric.WithDescription("Number of campaign runs"),
	)
	o.campaignDuration, _ = meter.Float64Histogram(
		"campaigns.duration",
		otelmetric.WithDescription("Campaign run duration"),
		otelmetric.WithUnit("ms"),
	)
	o.recipientCounter, _ = meter.Int64Counter(
		"campaigns.recipients",
		otelmetric.WithDescription("Dispatch outcomes per recipient"),
	)

	o.meterProvider = provider
	o.meter = meter
	return o
}

// StartSpan opens a span on the global tracer provider.
func (o *Observability) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := o.tracer
	if tracer == nil {
		tracer = otel.Tracer(instrumentationName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (o *Observability) RecordCampaignRun(ctx context.Context, mode string, duration time.Duration, sent, failed int) {
	attrs := otelmetric.WithAttributes(attribute.String("mode", mode))
	if o.campaignCounter != nil {
		o.campaignCounter.Add(ctx, 1, attrs)
	}
	if o.campaignDuration != nil {
		o.campaignDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
	if o.recipientCounter != nil {
		o.recipientCounter.Add(ctx, int64(sent), otelmetric.WithAttributes(attribute.String("status", "sent")))
		o.recipientCounter.Add(ctx, int64(failed), otelmetric.WithAttributes(attribute.String("status", "failed")))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = o.meterProvider.Shutdown(ctx)
	}
}
