package navmesh

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Query is a single planning request.
type Query struct {
	StartCell uint32
	Start     Vec2
	GoalCell  uint32
	Goal      Vec2
}

// PlanBatch plans every query concurrently against the shared mesh. Results
// are aligned with queries. It stops early with ctx's error if ctx is done
// before all queries have been planned. An unreachable query panics, as Plan
// does.
func (m *NavMesh) PlanBatch(ctx context.Context, queries []Query) ([][]Vec2, error) {
	results := make([][]Vec2, len(queries))
	if len(queries) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, q := range queries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = m.Plan(q.StartCell, q.Start, q.GoalCell, q.Goal)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
