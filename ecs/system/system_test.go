package system

import (
	"context"
	"testing"

	"github.com/milk9111/navshell/ecs"
	"github.com/milk9111/navshell/ecs/component"
	"github.com/milk9111/navshell/ecs/entity"
	"github.com/milk9111/navshell/levels"
	"github.com/milk9111/navshell/navmesh"
	"github.com/milk9111/navshell/observe"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// loadWorld builds a world from an embedded level.
func loadWorld(t *testing.T, name string) *ecs.World {
	t.Helper()
	prev := levels.DiskDir
	levels.DiskDir = t.TempDir()
	t.Cleanup(func() { levels.DiskDir = prev })

	lvl, err := levels.LoadLevel(name)
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	mesh, err := lvl.Bake()
	if err != nil {
		t.Fatalf("Bake: %v", err)
	}
	w := ecs.NewWorld()
	if err := entity.LoadLevelToWorld(w, lvl, mesh, 640, 480); err != nil {
		t.Fatalf("LoadLevelToWorld: %v", err)
	}
	return w
}

func agentNamed(t *testing.T, w *ecs.World, name string) (ecs.Entity, *component.NavAgent) {
	t.Helper()
	for _, e := range ecs.Query(w, component.NavAgentComponent.Kind()) {
		agent, _ := ecs.Get(w, e, component.NavAgentComponent.Kind())
		if agent.Name == name {
			return e, agent
		}
	}
	t.Fatalf("no agent %q", name)
	return 0, nil
}

func newTestMetrics(t *testing.T) (*observe.Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := observe.NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

// sumFor adds up the data points of an int64 sum, optionally filtered on the
// result attribute.
func sumFor(t *testing.T, reader *sdkmetric.ManualReader, name, result string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, met := range sm.Metrics {
			if met.Name != name {
				continue
			}
			sum, ok := met.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("metric %q is not a sum", name)
			}
			for _, dp := range sum.DataPoints {
				if result != "" {
					v, ok := dp.Attributes.Value(attribute.Key("result"))
					if !ok || v.AsString() != result {
						continue
					}
				}
				total += dp.Value
			}
		}
	}
	return total
}

func equalPath(a, b []navmesh.Vec2) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
