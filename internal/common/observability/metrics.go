package observability

import (
	"context"
	"fmt"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability records per-stage timings of a run through an OTel meter
// exported to Prometheus.
type Observability struct {
	meterProvider *metric.MeterProvider
	stageCounter  otelmetric.Int64Counter
	stageDuration otelmetric.Float64Histogram
}

// New registers the exporter on the default Prometheus registerer.
func New(serviceName string) (*Observability, error) {
	return NewWithRegisterer(serviceName, promclient.DefaultRegisterer)
}

func NewWithRegisterer(serviceName string, reg promclient.Registerer) (*Observability, error) {
	exporter, err := prometheus.New(prometheus.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	stageCounter, err := meter.Int64Counter(
		"stages.processed",
		otelmetric.WithDescription("Number of pipeline stages executed"),
	)
	if err != nil {
		return nil, fmt.Errorf("create stage counter: %w", err)
	}

	stageDuration, err := meter.Float64Histogram(
		"stages.duration",
		otelmetric.WithDescription("Pipeline stage duration"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create stage histogram: %w", err)
	}

	return &Observability{
		meterProvider: provider,
		stageCounter:  stageCounter,
		stageDuration: stageDuration,
	}, nil
}

// RecordStage records one stage execution. status is "ok", "error" or "skipped".
func (o *Observability) RecordStage(ctx context.Context, stage string, duration time.Duration, status string) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("status", status),
	)
	o.stageCounter.Add(ctx, 1, attrs)
	o.stageDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
}

// TimeStage runs fn and records its duration and outcome.
func (o *Observability) TimeStage(ctx context.Context, stage string, fn func() error) error {
	start := time.Now()
	err := fn()
	status := "ok"
	if err != nil {
		status = "error"
	}
	o.RecordStage(ctx, stage, time.Since(start), status)
	return err
}

func (o *Observability) Shutdown() {
	if o == nil || o.meterProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = o.meterProvider.Shutdown(ctx)
}
