// Package observe records planner metrics through the OpenTelemetry Metrics
// API.
//
// The game and the navplan tool use [DefaultMetrics], which is bound to the
// global meter provider. Tests should build their own instance with
// [NewMetrics] and an sdk ManualReader.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/milk9111/navshell"

// Plan results used as the "result" attribute of the plans counter.
const (
	ResultOK        = "ok"
	ResultOffMesh   = "off_mesh"
	ResultCancelled = "cancelled"
)

// Metrics holds the planner instruments. The OTel types handle their own
// synchronisation.
type Metrics struct {
	// PlanDuration tracks the latency of a single Plan call.
	PlanDuration metric.Float64Histogram

	// Plans counts plan requests by result and heuristic.
	Plans metric.Int64Counter

	// ViaPoints tracks how many corners a plan produced.
	ViaPoints metric.Int64Histogram

	// Agents tracks the number of live nav agents.
	Agents metric.Int64UpDownCounter
}

// Plans over a level-sized mesh take microseconds.
var latencyBuckets = []float64{
	0.000005, 0.00001, 0.000025, 0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.01,
}

var viaPointBuckets = []float64{0, 1, 2, 4, 8, 16, 32, 64}

// NewMetrics creates the instruments on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.PlanDuration, err = m.Float64Histogram("navshell.plan.duration",
		metric.WithDescription("Latency of a single navmesh plan."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Plans, err = m.Int64Counter("navshell.plans",
		metric.WithDescription("Total plan requests by result and heuristic."),
	); err != nil {
		return nil, err
	}
	if met.ViaPoints, err = m.Int64Histogram("navshell.plan.via_points",
		metric.WithDescription("Number of via-points per plan."),
		metric.WithExplicitBucketBoundaries(viaPointBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Agents, err = m.Int64UpDownCounter("navshell.agents",
		metric.WithDescription("Number of live nav agents."),
	); err != nil {
		return nil, err
	}
	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level instance bound to
// otel.GetMeterProvider, creating it on first use.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordPlan records a successful plan.
func (m *Metrics) RecordPlan(ctx context.Context, d time.Duration, viaPoints int, heuristic string) {
	h := metric.WithAttributes(attribute.String("heuristic", heuristic))
	m.PlanDuration.Record(ctx, d.Seconds(), h)
	m.ViaPoints.Record(ctx, int64(viaPoints), h)
	m.Plans.Add(ctx, 1, metric.WithAttributes(
		attribute.String("result", ResultOK),
		attribute.String("heuristic", heuristic),
	))
}

// RecordRejected records a plan request that never reached the planner.
func (m *Metrics) RecordRejected(ctx context.Context, result, heuristic string) {
	m.Plans.Add(ctx, 1, metric.WithAttributes(
		attribute.String("result", result),
		attribute.String("heuristic", heuristic),
	))
}
