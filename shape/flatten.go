package shape

import (
	"math"

	"github.com/jakecoffman/cp"
)

// curveSteps is the fixed subdivision count per curve. A fixed count keeps
// flattening independent of the drawing scale.
const curveSteps = 16

// arcToCubics converts an SVG endpoint-parameterized elliptical arc to cubic
// segments of at most a quarter turn each.
func arcToCubics(p0 cp.Vector, rx, ry, rotation float64, large, sweep bool, p cp.Vector) []Command {
	if p0.Equal(p) {
		return nil
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		return []Command{{Op: OpLine, Pts: [3]cp.Vector{p}}}
	}

	phi := rotation * math.Pi / 180
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)

	dx2 := (p0.X - p.X) / 2
	dy2 := (p0.Y - p.Y) / 2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	rx2, ry2 := rx*rx, ry*ry
	num := rx2*ry2 - rx2*y1p*y1p - ry2*x1p*x1p
	den := rx2*y1p*y1p + ry2*x1p*x1p
	coef := 0.0
	if den > 0 {
		coef = math.Sqrt(math.Max(0, num/den))
	}
	if large == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx

	cx := cosPhi*cxp - sinPhi*cyp + (p0.X+p.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (p0.Y+p.Y)/2

	u := cp.Vector{X: (x1p - cxp) / rx, Y: (y1p - cyp) / ry}
	v := cp.Vector{X: (-x1p - cxp) / rx, Y: (-y1p - cyp) / ry}
	theta1 := math.Atan2(u.Y, u.X)
	dtheta := math.Atan2(u.Cross(v), u.Dot(v))
	if !sweep && dtheta > 0 {
		dtheta -= 2 * math.Pi
	} else if sweep && dtheta < 0 {
		dtheta += 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(dtheta) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	delta := dtheta / float64(n)
	t := 4.0 / 3.0 * math.Tan(delta/4)

	mapPoint := func(x, y float64) cp.Vector {
		return cp.Vector{
			X: cx + rx*x*cosPhi - ry*y*sinPhi,
			Y: cy + rx*x*sinPhi + ry*y*cosPhi,
		}
	}

	out := make([]Command, 0, n)
	a1 := theta1
	for i := 0; i < n; i++ {
		a2 := a1 + delta
		cos1, sin1 := math.Cos(a1), math.Sin(a1)
		cos2, sin2 := math.Cos(a2), math.Sin(a2)
		c1 := mapPoint(cos1-t*sin1, sin1+t*cos1)
		c2 := mapPoint(cos2+t*sin2, sin2-t*cos2)
		end := mapPoint(cos2, sin2)
		if i == n-1 {
			end = p
		}
		out = append(out, Command{Op: OpCubic, Pts: [3]cp.Vector{c1, c2, end}})
		a1 = a2
	}
	return out
}

// Flatten converts commands into polylines, one per subpath. Closed subpaths
// end with their starting point.
func Flatten(cmds []Command) [][]cp.Vector {
	var out [][]cp.Vector
	var cur []cp.Vector
	var pen, start cp.Vector

	flush := func() {
		if len(cur) > 0 {
			out = append(out, cur)
		}
		cur = nil
	}
	ensureStarted := func() {
		if len(cur) == 0 {
			cur = append(cur, pen)
			start = pen
		}
	}

	for _, c := range cmds {
		switch c.Op {
		case OpMove:
			flush()
			pen = c.Pts[0]
			start = pen
			cur = []cp.Vector{pen}
		case OpLine:
			ensureStarted()
			pen = c.Pts[0]
			cur = append(cur, pen)
		case OpQuad:
			ensureStarted()
			p0 := pen
			for i := 1; i <= curveSteps; i++ {
				cur = append(cur, quadPoint(p0, c.Pts[0], c.Pts[1], float64(i)/curveSteps))
			}
			pen = c.Pts[1]
		case OpCubic:
			ensureStarted()
			p0 := pen
			for i := 1; i <= curveSteps; i++ {
				cur = append(cur, cubicPoint(p0, c.Pts[0], c.Pts[1], c.Pts[2], float64(i)/curveSteps))
			}
			pen = c.Pts[2]
		case OpClose:
			if len(cur) > 0 {
				if !cur[len(cur)-1].Equal(start) {
					cur = append(cur, start)
				}
				flush()
			}
			pen = start
		}
	}
	flush()
	return out
}

func quadPoint(p0, c, p1 cp.Vector, t float64) cp.Vector {
	mt := 1 - t
	return p0.Mult(mt * mt).Add(c.Mult(2 * mt * t)).Add(p1.Mult(t * t))
}

func cubicPoint(p0, c1, c2, p1 cp.Vector, t float64) cp.Vector {
	mt := 1 - t
	return p0.Mult(mt * mt * mt).
		Add(c1.Mult(3 * mt * mt * t)).
		Add(c2.Mult(3 * mt * t * t)).
		Add(p1.Mult(t * t * t))
}

// Sample reduces polylines to at most limit points. When the polylines hold
// more vertices than limit, points are placed at equal arc-length intervals
// along the whole outline.
func Sample(lines [][]cp.Vector, limit int) []cp.Vector {
	total := 0
	for _, l := range lines {
		total += len(l)
	}
	if limit <= 0 || total == 0 {
		return nil
	}
	if total <= limit {
		out := make([]cp.Vector, 0, total)
		for _, l := range lines {
			out = append(out, l...)
		}
		return out
	}

	length := 0.0
	for _, l := range lines {
		for i := 1; i < len(l); i++ {
			length += l[i-1].Distance(l[i])
		}
	}
	if length == 0 {
		return []cp.Vector{lines[0][0]}
	}

	step := length / float64(limit)
	out := make([]cp.Vector, 0, limit)
	next := 0.0
	walked := 0.0
	for _, l := range lines {
		for i := 1; i < len(l) && len(out) < limit; i++ {
			a, b := l[i-1], l[i]
			segLen := a.Distance(b)
			for segLen > 0 && next <= walked+segLen && len(out) < limit {
				out = append(out, a.Lerp(b, (next-walked)/segLen))
				next += step
			}
			walked += segLen
		}
	}
	return out
}
