package shape

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
)

// Mesh is a triangulated path ready for DrawTriangles. Vertex colours are
// left white; the renderer applies the paint.
type Mesh struct {
	Vertices []ebiten.Vertex
	Indices  []uint16
}

func (m Mesh) Empty() bool {
	return len(m.Vertices) == 0 || len(m.Indices) == 0
}

// Descriptor is the immutable render and physics data for one source path.
// It is created once by Cache and shared read-only afterwards.
type Descriptor struct {
	// Index is the position of the source path in document order.
	Index    int
	ID       string
	Hull     []cp.Vector
	Centroid cp.Vector
	Fill     color.NRGBA

	// RenderPath is the scaled outline, in the same space as Hull.
	RenderPath *vector.Path

	FillMesh   Mesh
	StrokeMesh Mesh
}

// Degenerate reports whether the hull cannot back a body.
func (d *Descriptor) Degenerate() bool {
	return Result{Hull: d.Hull, Centroid: d.Centroid}.Degenerate()
}

// BuildPath converts normalized commands into an ebiten vector path.
func BuildPath(cmds []Command) *vector.Path {
	p := &vector.Path{}
	for _, c := range cmds {
		switch c.Op {
		case OpMove:
			p.MoveTo(float32(c.Pts[0].X), float32(c.Pts[0].Y))
		case OpLine:
			p.LineTo(float32(c.Pts[0].X), float32(c.Pts[0].Y))
		case OpQuad:
			p.QuadTo(float32(c.Pts[0].X), float32(c.Pts[0].Y), float32(c.Pts[1].X), float32(c.Pts[1].Y))
		case OpCubic:
			p.CubicTo(
				float32(c.Pts[0].X), float32(c.Pts[0].Y),
				float32(c.Pts[1].X), float32(c.Pts[1].Y),
				float32(c.Pts[2].X), float32(c.Pts[2].Y),
			)
		case OpClose:
			p.Close()
		}
	}
	return p
}

// FillMeshFor triangulates path for filling.
func FillMeshFor(path *vector.Path) Mesh {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	return Mesh{Vertices: vs, Indices: is}
}

// StrokeMeshFor triangulates the outline of path at width. A non-positive
// width yields an empty mesh.
func StrokeMeshFor(path *vector.Path, width float64) Mesh {
	if width <= 0 {
		return Mesh{}
	}
	op := &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	}
	vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, op)
	return Mesh{Vertices: vs, Indices: is}
}
