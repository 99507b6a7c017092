package system

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/navshell/ecs"
	"github.com/milk9111/navshell/ecs/component"
	"github.com/milk9111/navshell/levels"
	"github.com/milk9111/navshell/navmesh"
)

// scriptTimeout bounds a single script run so a runaway loop costs one slow
// frame.
const scriptTimeout = 50 * time.Millisecond

// ScriptLoader returns the source of a named script.
type ScriptLoader func(name string) ([]byte, error)

// NavScriptSystem lets tengo scripts pick goals for idle agents. A script
// runs whenever its agent has no goal or has arrived. It sees these globals:
//
//	x, y       agent position
//	arrived    whether the last goal was reached
//	waypoints  the level waypoints as [[x, y], ...]
//	state      a map kept between runs
//
// and requests a new goal by assigning [x, y] to `goal`.
type NavScriptSystem struct {
	load     ScriptLoader
	runtimes map[ecs.Entity]*navScriptRuntime
	// failed remembers scripts that did not compile so the log is not
	// flooded every frame.
	failed map[string]bool
}

type navScriptRuntime struct {
	script   string
	compiled *tengo.Compiled
	state    *tengo.Map
}

func NewNavScriptSystem(load ScriptLoader) *NavScriptSystem {
	if load == nil {
		load = levels.LoadScript
	}
	return &NavScriptSystem{
		load:     load,
		runtimes: make(map[ecs.Entity]*navScriptRuntime),
		failed:   make(map[string]bool),
	}
}

// Invalidate drops compiled copies of script so the next run reloads it.
// Per-agent state survives the reload.
func (s *NavScriptSystem) Invalidate(script string) {
	for _, rt := range s.runtimes {
		if sameScript(rt.script, script) {
			rt.compiled = nil
		}
	}
	for name := range s.failed {
		if sameScript(name, script) {
			delete(s.failed, name)
		}
	}
}

func (s *NavScriptSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	waypoints := s.waypoints(w)

	for e := range s.runtimes {
		if !ecs.Has(w, e, component.NavScriptComponent.Kind()) {
			delete(s.runtimes, e)
		}
	}

	ecs.ForEach3(w, component.NavScriptComponent.Kind(), component.NavAgentComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ns *component.NavScript, agent *component.NavAgent, t *component.Transform) {
		if agent.HasGoal && !agent.Arrived {
			return
		}

		rt, err := s.runtime(e, ns.Script)
		if err != nil {
			if !s.failed[ns.Script] {
				log.Printf("navscript: entity=%s load %s: %v", e, ns.Script, err)
				s.failed[ns.Script] = true
			}
			return
		}

		goal, ok, err := rt.run(t.X, t.Y, agent.Arrived, waypoints)
		if err != nil {
			log.Printf("navscript: entity=%s run %s: %v", e, ns.Script, err)
			return
		}
		if ok {
			agent.SetGoal(goal)
		}
	})
}

func (s *NavScriptSystem) runtime(e ecs.Entity, script string) (*navScriptRuntime, error) {
	rt, ok := s.runtimes[e]
	if ok && rt.script == script && rt.compiled != nil {
		return rt, nil
	}
	if s.failed[script] {
		return nil, fmt.Errorf("previous compile failed")
	}

	src, err := s.load(script)
	if err != nil {
		return nil, err
	}

	sc := tengo.NewScript(src)
	_ = sc.Add("x", 0.0)
	_ = sc.Add("y", 0.0)
	_ = sc.Add("arrived", false)
	_ = sc.Add("waypoints", []any{})
	_ = sc.Add("state", map[string]any{})
	_ = sc.Add("goal", nil)
	sc.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := sc.Compile()
	if err != nil {
		return nil, err
	}

	if !ok || rt.script != script {
		rt = &navScriptRuntime{
			script: script,
			state:  &tengo.Map{Value: map[string]tengo.Object{}},
		}
		s.runtimes[e] = rt
	}
	rt.compiled = compiled
	return rt, nil
}

func (rt *navScriptRuntime) run(x, y float64, arrived bool, waypoints []any) (navmesh.Vec2, bool, error) {
	c := rt.compiled
	for name, v := range map[string]any{
		"x":         x,
		"y":         y,
		"arrived":   arrived,
		"waypoints": waypoints,
		"state":     rt.state,
		"goal":      nil,
	} {
		if err := c.Set(name, v); err != nil {
			return navmesh.Vec2{}, false, err
		}
	}
	// RunContext recovers VM panics such as integer division by zero and
	// aborts scripts that never finish.
	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()
	if err := c.RunContext(ctx); err != nil {
		return navmesh.Vec2{}, false, err
	}
	// Scripts may rebind state to a fresh map.
	if m, ok := c.Get("state").Object().(*tengo.Map); ok {
		rt.state = m
	}
	return objectToVec2(c.Get("goal").Object())
}

func (s *NavScriptSystem) waypoints(w *ecs.World) []any {
	e, ok := ecs.First(w, component.NavMeshRefComponent.Kind())
	if !ok {
		return []any{}
	}
	ref, ok := ecs.Get(w, e, component.NavMeshRefComponent.Kind())
	if !ok {
		return []any{}
	}
	out := make([]any, 0, len(ref.Waypoints))
	for _, p := range ref.Waypoints {
		out = append(out, []any{float64(p.X), float64(p.Y)})
	}
	return out
}

// objectToVec2 reads a script goal. Undefined means no new goal.
func objectToVec2(obj tengo.Object) (navmesh.Vec2, bool, error) {
	var items []tengo.Object
	switch v := obj.(type) {
	case nil, *tengo.Undefined:
		return navmesh.Vec2{}, false, nil
	case *tengo.Array:
		items = v.Value
	case *tengo.ImmutableArray:
		items = v.Value
	default:
		return navmesh.Vec2{}, false, fmt.Errorf("goal must be [x, y], got %s", v.TypeName())
	}
	if len(items) != 2 {
		return navmesh.Vec2{}, false, fmt.Errorf("goal must be [x, y], got %d values", len(items))
	}
	x, okX := objectToFloat(items[0])
	y, okY := objectToFloat(items[1])
	if !okX || !okY {
		return navmesh.Vec2{}, false, fmt.Errorf("goal coordinates must be numbers")
	}
	return navmesh.V2(float32(x), float32(y)), true, nil
}

func objectToFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	default:
		return 0, false
	}
}

func sameScript(a, b string) bool {
	return scriptBase(a) == scriptBase(b)
}

func scriptBase(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
