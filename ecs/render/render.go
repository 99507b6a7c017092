// Package render draws an ECS world with ebiten vector primitives.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/navshell/ecs"
	"github.com/milk9111/navshell/ecs/component"
	"github.com/milk9111/navshell/navmesh"
	"golang.org/x/image/colornames"
)

var (
	backgroundColor = colornames.Black
	cellColor       = colornames.Darkslategray
	cellEdgeColor   = colornames.Slategray
	portalColor     = colornames.Cornflowerblue
	pathColor       = colornames.Gold
	agentColor      = colornames.Limegreen
	offMeshColor    = colornames.Orangered
	ballColor       = colornames.Crimson
	cursorColor     = colornames.White
)

// Options toggles the optional overlays.
type Options struct {
	Debug bool
}

// Draw renders the mesh, agents and their paths, balls and the cursor.
func Draw(w *ecs.World, screen *ebiten.Image, opts Options) {
	if w == nil || screen == nil {
		return
	}
	screen.Fill(backgroundColor)
	cam := cameraFor(w, screen)

	var mesh *navmesh.NavMesh
	if e, ok := ecs.First(w, component.NavMeshRefComponent.Kind()); ok {
		if ref, ok := ecs.Get(w, e, component.NavMeshRefComponent.Kind()); ok {
			mesh = ref.Mesh
		}
	}
	drawMesh(screen, cam, mesh)

	ecs.ForEach2(w, component.NavAgentComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, agent *component.NavAgent, t *component.Transform) {
		drawAgent(screen, cam, agent, t)
	})

	ecs.ForEach3(w, component.BallTagComponent.Kind(), component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(_ ecs.Entity, _ *component.BallTag, t *component.Transform, col *component.Collider) {
		x, y := cam.WorldToScreen(t.X, t.Y)
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(col.Radius*cam.Zoom), ballColor, true)
	})

	if opts.Debug {
		DrawPhysicsDebug(w.PhysicsWorld(), cam, screen)
		drawStats(w, screen, mesh)
	}

	ecs.ForEach(w, component.CursorComponent.Kind(), func(_ ecs.Entity, c *component.Cursor) {
		x, y := float32(c.ScreenX), float32(c.ScreenY)
		vector.StrokeLine(screen, x-6, y, x+6, y, 1, cursorColor, true)
		vector.StrokeLine(screen, x, y-6, x, y+6, 1, cursorColor, true)
	})
}

func cameraFor(w *ecs.World, screen *ebiten.Image) component.Camera {
	b := screen.Bounds()
	cam := component.Camera{Zoom: 1, ScreenW: b.Dx(), ScreenH: b.Dy()}
	cam.X = float64(cam.ScreenW) / 2
	cam.Y = float64(cam.ScreenH) / 2
	if e, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
		if c, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok {
			cam = *c
		}
	}
	return cam
}

func drawMesh(screen *ebiten.Image, cam component.Camera, mesh *navmesh.NavMesh) {
	for _, cell := range mesh.Cells() {
		if len(cell.Polygon) < 3 {
			continue
		}
		fillConvex(screen, cam, cell.Polygon, cellColor)
		for i, a := range cell.Polygon {
			b := cell.Polygon[(i+1)%len(cell.Polygon)]
			strokeWorld(screen, cam, a, b, 1, cellEdgeColor)
		}
	}
	for _, cell := range mesh.Cells() {
		for _, e := range cell.Edges {
			strokeWorld(screen, cam, e.Portal[0], e.Portal[1], 2, portalColor)
		}
	}
}

// fillConvex fills a convex polygon as a triangle fan.
func fillConvex(screen *ebiten.Image, cam component.Camera, poly []navmesh.Vec2, clr color.RGBA) {
	r := float32(clr.R) / 0xff
	g := float32(clr.G) / 0xff
	b := float32(clr.B) / 0xff
	a := float32(clr.A) / 0xff

	vertices := make([]ebiten.Vertex, 0, len(poly))
	for _, v := range poly {
		x, y := cam.WorldToScreen(float64(v.X), float64(v.Y))
		vertices = append(vertices, ebiten.Vertex{
			DstX: float32(x), DstY: float32(y),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		})
	}
	indices := make([]uint16, 0, 3*(len(poly)-2))
	for i := 1; i+1 < len(poly); i++ {
		indices = append(indices, 0, uint16(i), uint16(i+1))
	}
	screen.DrawTriangles(vertices, indices, whitePixel, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func drawAgent(screen *ebiten.Image, cam component.Camera, agent *component.NavAgent, t *component.Transform) {
	pos := navmesh.V2(float32(t.X), float32(t.Y))
	if !agent.Arrived {
		from := pos
		for i := agent.Next; i < len(agent.Path); i++ {
			strokeWorld(screen, cam, from, agent.Path[i], 1.5, pathColor)
			from = agent.Path[i]
		}
	}

	clr := agentColor
	if agent.OffMesh {
		clr = offMeshColor
	}
	x, y := cam.WorldToScreen(t.X, t.Y)
	r := float32(math.Max(agent.Radius*cam.Zoom, 3))
	vector.DrawFilledCircle(screen, float32(x), float32(y), r, clr, true)
	if agent.Name != "" {
		ebitenutil.DebugPrintAt(screen, agent.Name, int(x)+int(r)+2, int(y)-8)
	}
}

func drawStats(w *ecs.World, screen *ebiten.Image, mesh *navmesh.NavMesh) {
	frame := uint32(0)
	if e, ok := ecs.First(w, component.StepComponent.Kind()); ok {
		if s, ok := ecs.Get(w, e, component.StepComponent.Kind()); ok {
			frame = s.Frame
		}
	}
	text := fmt.Sprintf("FPS: %.0f\nFrame: %d\nCells: %d\nHeuristic: %s\nAgents: %d\nBalls: %d",
		ebiten.ActualFPS(), frame, mesh.Len(), mesh.Heuristic(),
		ecs.Count(w, component.NavAgentComponent.Kind()),
		ecs.Count(w, component.BallTagComponent.Kind()))
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

func strokeWorld(screen *ebiten.Image, cam component.Camera, a, b navmesh.Vec2, width float32, clr color.Color) {
	x1, y1 := cam.WorldToScreen(float64(a.X), float64(a.Y))
	x2, y2 := cam.WorldToScreen(float64(b.X), float64(b.Y))
	vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), width, clr, true)
}

var whitePixel = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()
