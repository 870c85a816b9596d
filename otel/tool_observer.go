// Package otel provides OpenTelemetry integration for gateway
// dispatch and probe signals.
package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/rationsmart/rationsmart/tool"
)

// ToolObserver records tool dispatches and backend probes into
// OpenTelemetry.
type ToolObserver struct {
	tracer trace.Tracer

	dispatches metric.Int64Counter
	failures   metric.Int64Counter
	probes     metric.Int64Counter
	latency    metric.Float64Histogram
}

// NewToolObserver creates an observer bound to the provided
// meter/tracer.
func NewToolObserver(meter metric.Meter, tracer trace.Tracer) (*ToolObserver, error) {
	dispatches, err := meter.Int64Counter(
		"rationsmart.tool.dispatches",
		metric.WithDescription("Number of tool dispatches"),
	)
	if err != nil {
		return nil, err
	}
	failures, err := meter.Int64Counter(
		"rationsmart.tool.failures",
		metric.WithDescription("Number of tool dispatches returning error text"),
	)
	if err != nil {
		return nil, err
	}
	probes, err := meter.Int64Counter(
		"rationsmart.backend.probes",
		metric.WithDescription("Number of backend reachability probes"),
	)
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram(
		"rationsmart.tool.latency",
		metric.WithDescription("Tool dispatch latency in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &ToolObserver{
		tracer:     tracer,
		dispatches: dispatches,
		failures:   failures,
		probes:     probes,
		latency:    latency,
	}, nil
}

// ObserveDispatch records one dispatcher invocation.
func (o *ToolObserver) ObserveDispatch(observation tool.DispatchObservation) {
	if o == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("tool_name", observation.Tool),
		attribute.Bool("is_error", observation.IsError),
	}
	if observation.Called != observation.Tool {
		attrs = append(attrs, attribute.String("called_as", observation.Called))
	}

	ctx := context.Background()
	options := metric.WithAttributes(attrs...)
	o.dispatches.Add(ctx, 1, options)
	if observation.IsError {
		o.failures.Add(ctx, 1, options)
	}
	o.latency.Record(ctx, float64(time.Duration(observation.DurationMS)*time.Millisecond)/float64(time.Second), options)

	if o.tracer == nil {
		return
	}
	_, span := o.tracer.Start(ctx, "tool.dispatch", trace.WithAttributes(attrs...))
	if observation.IsError {
		span.SetStatus(codes.Error, "tool returned error text")
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// ObserveProbe records one backend reachability check.
func (o *ToolObserver) ObserveProbe(observation tool.ProbeObservation) {
	if o == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.Bool("healthy", observation.Healthy),
	}
	if observation.StatusCode != 0 {
		attrs = append(attrs, attribute.Int("status_code", observation.StatusCode))
	}
	o.probes.Add(context.Background(), 1, metric.WithAttributes(attrs...))
}

var _ tool.Observer = (*ToolObserver)(nil)
