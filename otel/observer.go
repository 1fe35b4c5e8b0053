// Package otel provides OpenTelemetry integration for tool invocations.
package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// InvokeObservation is one finished tool invocation.
type InvokeObservation struct {
	Tool         string
	InvocationID string
	// Status is the remote status carried by the failure, 0 for transport
	// failures and for successes.
	Status   int
	Success  bool
	Duration time.Duration
}

// InvokeObserver records invocation signals into OpenTelemetry. A nil
// observer is valid and records nothing.
type InvokeObserver struct {
	tracer trace.Tracer

	invocations metric.Int64Counter
	latency     metric.Float64Histogram
}

// NewInvokeObserver creates an observer bound to the provided meter/tracer.
func NewInvokeObserver(meter metric.Meter, tracer trace.Tracer) (*InvokeObserver, error) {
	invocations, err := meter.Int64Counter(
		"timetrack_mcp.tool.invocations",
		metric.WithDescription("Number of tool invocations"),
	)
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram(
		"timetrack_mcp.tool.latency",
		metric.WithDescription("Tool invocation latency in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &InvokeObserver{
		tracer:      tracer,
		invocations: invocations,
		latency:     latency,
	}, nil
}

// Observe records one invocation result.
func (o *InvokeObserver) Observe(observation InvokeObservation) {
	if o == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("tool_name", observation.Tool),
		attribute.Bool("success", observation.Success),
	}
	if observation.Status != 0 {
		attrs = append(attrs, attribute.Int("remote_status", observation.Status))
	}
	if observation.InvocationID != "" {
		attrs = append(attrs, attribute.String("invocation_id", observation.InvocationID))
	}

	ctx := context.Background()
	options := metric.WithAttributes(attrs...)
	o.invocations.Add(ctx, 1, options)
	o.latency.Record(ctx, observation.Duration.Seconds(), options)

	if o.tracer == nil {
		return
	}
	_, span := o.tracer.Start(ctx, "tool.invoke", trace.WithAttributes(attrs...))
	if !observation.Success {
		span.SetStatus(codes.Error, observation.Tool)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
