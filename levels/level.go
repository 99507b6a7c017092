package levels

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/milk9111/navshell/navmesh"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoCells      = errors.New("levels: level has no cells")
	ErrBadSpeed     = errors.New("levels: agent speed must be positive")
	ErrAgentOffMesh = errors.New("levels: agent spawns outside the mesh")
	// ErrDisconnected is returned for levels whose cells form more than one
	// island. Cells that only meet at a T-junction are not linked.
	ErrDisconnected = errors.New("levels: mesh is not connected")
)

type Level struct {
	Name      string      `yaml:"name"`
	Camera    CameraSpec  `yaml:"camera"`
	Cells     [][]Point   `yaml:"cells"`
	Agents    []AgentSpec `yaml:"agents"`
	Waypoints []Point     `yaml:"waypoints"`
}

type CameraSpec struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Zoom float64 `yaml:"zoom"`
}

type AgentSpec struct {
	Name   string  `yaml:"name"`
	X      float32 `yaml:"x"`
	Y      float32 `yaml:"y"`
	Speed  float32 `yaml:"speed"`
	Script string  `yaml:"script"`
}

// Point is written as a two element sequence: [x, y].
type Point navmesh.Vec2

func (p *Point) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode || len(value.Content) != 2 {
		return fmt.Errorf("point must be a [x, y] sequence (line %d)", value.Line)
	}

	parse := func(n *yaml.Node) (float32, error) {
		if n.Kind != yaml.ScalarNode {
			return 0, fmt.Errorf("coordinate must be a number (line %d)", n.Line)
		}
		v, err := strconv.ParseFloat(n.Value, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid coordinate %q (line %d)", n.Value, n.Line)
		}
		return float32(v), nil
	}

	x, err := parse(value.Content[0])
	if err != nil {
		return err
	}
	y, err := parse(value.Content[1])
	if err != nil {
		return err
	}
	*p = Point{X: x, Y: y}
	return nil
}

// Vec2 converts p to a planner vector.
func (p Point) Vec2() navmesh.Vec2 {
	return navmesh.Vec2(p)
}

// LoadLevel reads and validates a level by file name. The ".yaml" extension
// is optional.
func LoadLevel(name string) (*Level, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", name, err)
	}
	return Parse(name, data)
}

// Parse decodes and validates level YAML. name is only used in errors.
func Parse(name string, data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if len(lvl.Cells) == 0 {
		return nil, fmt.Errorf("levels: %s: %w", name, ErrNoCells)
	}
	for i, a := range lvl.Agents {
		if a.Speed <= 0 {
			return nil, fmt.Errorf("levels: %s: agent %d (%s): %w", name, i, a.Name, ErrBadSpeed)
		}
	}
	if lvl.Name == "" {
		lvl.Name = cleanLevelPath(name)
	}
	if lvl.Camera.Zoom <= 0 {
		lvl.Camera.Zoom = 1
	}
	return &lvl, nil
}

// Polygons returns the cell outlines in planner coordinates.
func (l *Level) Polygons() [][]navmesh.Vec2 {
	out := make([][]navmesh.Vec2, len(l.Cells))
	for i, cell := range l.Cells {
		out[i] = make([]navmesh.Vec2, len(cell))
		for j, p := range cell {
			out[i][j] = p.Vec2()
		}
	}
	return out
}

// WaypointVecs returns the waypoints in planner coordinates.
func (l *Level) WaypointVecs() []navmesh.Vec2 {
	out := make([]navmesh.Vec2, len(l.Waypoints))
	for i, p := range l.Waypoints {
		out[i] = p.Vec2()
	}
	return out
}

// Bake builds the level's navigation mesh and checks that it is connected and
// that every agent spawns on it.
func (l *Level) Bake(opts ...navmesh.Option) (*navmesh.NavMesh, error) {
	mesh, err := navmesh.Build(l.Polygons(), opts...)
	if err != nil {
		return nil, fmt.Errorf("levels: bake %s: %w", l.Name, err)
	}
	if label, n := mesh.Components(); n > 1 {
		for i := range label {
			if label[i] != 0 {
				return nil, fmt.Errorf("levels: bake %s: cell %d cannot reach cell 0 (%d islands): %w", l.Name, i, n, ErrDisconnected)
			}
		}
	}
	for _, a := range l.Agents {
		if _, ok := mesh.Locate(navmesh.V2(a.X, a.Y)); !ok {
			return nil, fmt.Errorf("levels: bake %s: %s at (%g, %g): %w", l.Name, a.Name, a.X, a.Y, ErrAgentOffMesh)
		}
	}
	return mesh, nil
}
