package otel_test

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/trace/noop"

	trackotel "timetrack-mcp/otel"
)

func newTestMeter() (*metric.ManualReader, *metric.MeterProvider) {
	reader := metric.NewManualReader()
	mp := metric.NewMeterProvider(metric.WithReader(reader))
	return reader, mp
}

// collectMetrics reads all metrics from the reader.
func collectMetrics(t *testing.T, reader *metric.ManualReader) *metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	return &rm
}

// findMetric searches for a metric by name in the collected data.
func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, scope := range rm.ScopeMetrics {
		for i := range scope.Metrics {
			if scope.Metrics[i].Name == name {
				return &scope.Metrics[i]
			}
		}
	}
	return nil
}

func TestInvokeObserverRecordsMetrics(t *testing.T) {
	reader, mp := newTestMeter()
	meter := mp.Meter("test-invoke-observer")
	tracer := noop.NewTracerProvider().Tracer("test-invoke-observer")

	observer, err := trackotel.NewInvokeObserver(meter, tracer)
	if err != nil {
		t.Fatalf("NewInvokeObserver() error = %v", err)
	}

	observer.Observe(trackotel.InvokeObservation{
		Tool:         "start_timer",
		InvocationID: "inv-1",
		Status:       502,
		Success:      false,
		Duration:     120 * time.Millisecond,
	})
	observer.Observe(trackotel.InvokeObservation{
		Tool:         "list_projects",
		InvocationID: "inv-2",
		Success:      true,
		Duration:     40 * time.Millisecond,
	})

	rm := collectMetrics(t, reader)

	invocations := findMetric(rm, "timetrack_mcp.tool.invocations")
	if invocations == nil {
		t.Fatal("timetrack_mcp.tool.invocations metric not found")
	}
	sum, ok := invocations.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("timetrack_mcp.tool.invocations type = %T, want Sum[int64]", invocations.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	if total != 2 {
		t.Fatalf("invocation count = %d, want 2", total)
	}

	latency := findMetric(rm, "timetrack_mcp.tool.latency")
	if latency == nil {
		t.Fatal("timetrack_mcp.tool.latency metric not found")
	}
	if _, ok := latency.Data.(metricdata.Histogram[float64]); !ok {
		t.Fatalf("timetrack_mcp.tool.latency type = %T, want Histogram[float64]", latency.Data)
	}
}

func TestNilObserverIsSafe(t *testing.T) {
	var observer *trackotel.InvokeObserver
	observer.Observe(trackotel.InvokeObservation{Tool: "list_projects", Success: true})
}

func TestObserverWithoutTracer(t *testing.T) {
	reader, mp := newTestMeter()
	observer, err := trackotel.NewInvokeObserver(mp.Meter("test"), nil)
	if err != nil {
		t.Fatalf("NewInvokeObserver() error = %v", err)
	}
	observer.Observe(trackotel.InvokeObservation{Tool: "get_task", Success: true})

	rm := collectMetrics(t, reader)
	if findMetric(rm, "timetrack_mcp.tool.invocations") == nil {
		t.Fatal("metrics must be recorded even without a tracer")
	}
}
