package shape

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Result is the collision outline derived from a path.
type Result struct {
	Hull     []cp.Vector
	Centroid cp.Vector
}

// Degenerate reports whether the hull cannot enclose any area.
func (r Result) Degenerate() bool {
	return len(r.Hull) < 3 || math.Abs(cp.AreaForPoly(len(r.Hull), r.Hull, 0)) == 0
}

// Simplify scales d by scale, samples at most vertexLimit points from the
// outline and returns their convex hull and its centroid. Malformed input
// never fails; whatever could be parsed is used.
func Simplify(d string, scale float64, vertexLimit int) Result {
	cmds, _ := ParsePath(ScalePath(d, scale))
	return SimplifyCommands(cmds, vertexLimit)
}

// SimplifyCommands is Simplify for an already parsed outline.
func SimplifyCommands(cmds []Command, vertexLimit int) Result {
	points := dedupe(Sample(Flatten(cmds), vertexLimit))
	hull := Hull(points, 0)
	return Result{Hull: hull, Centroid: Centroid(hull)}
}

func dedupe(points []cp.Vector) []cp.Vector {
	seen := make(map[cp.Vector]struct{}, len(points))
	out := points[:0:0]
	for _, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Hull returns the convex hull of points with cp's quickhull, dropping
// vertices closer than tol to the hull edge. The input is not modified.
func Hull(points []cp.Vector, tol float64) []cp.Vector {
	if len(points) == 0 {
		return nil
	}
	verts := make([]cp.Vector, len(points))
	copy(verts, points)
	n := cp.ConvexHull(len(verts), verts, nil, tol)
	return verts[:n:n]
}

// Centroid returns the area centroid of hull, or the mean of its points when
// the hull has no area.
func Centroid(hull []cp.Vector) cp.Vector {
	if len(hull) == 0 {
		return cp.Vector{}
	}
	if len(hull) >= 3 && cp.AreaForPoly(len(hull), hull, 0) != 0 {
		return cp.CentroidForPoly(len(hull), hull)
	}
	var sum cp.Vector
	for _, p := range hull {
		sum = sum.Add(p)
	}
	return sum.Mult(1 / float64(len(hull)))
}

// Bounds returns the axis-aligned box around points.
func Bounds(points []cp.Vector) (cp.BB, bool) {
	if len(points) == 0 {
		return cp.BB{}, false
	}
	bb := cp.BB{L: points[0].X, R: points[0].X, B: points[0].Y, T: points[0].Y}
	for _, p := range points[1:] {
		bb = bb.Expand(p)
	}
	return bb, true
}
