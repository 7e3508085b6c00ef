package shape

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
)

// Op is a normalized drawing operation.
type Op uint8

const (
	OpMove Op = iota
	OpLine
	OpQuad
	OpCubic
	OpClose
)

// Command is one absolute drawing operation. Move and Line use Pts[0]; Quad
// uses Pts[0] as control and Pts[1] as end; Cubic uses all three.
type Command struct {
	Op  Op
	Pts [3]cp.Vector
}

// segment is one command group as written in the source, before
// normalization. Implicit repeats of a command become their own segment with
// explicit set to false.
type segment struct {
	cmd      byte
	explicit bool
	args     []float64
}

var argCounts = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7, 'Z': 0,
}

func arity(cmd byte) (int, bool) {
	n, ok := argCounts[upper(cmd)]
	return n, ok
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

func isRelative(c byte) bool {
	return c >= 'a' && c <= 'z'
}

// isCoordinate reports whether the argument at index i of cmd is a length
// that scales with the drawing. Arc rotation and flags do not.
func isCoordinate(cmd byte, i int) bool {
	if upper(cmd) != 'A' {
		return true
	}
	switch i % 7 {
	case 2, 3, 4:
		return false
	}
	return true
}

func isFlag(cmd byte, i int) bool {
	if upper(cmd) != 'A' {
		return false
	}
	return i%7 == 3 || i%7 == 4
}

type scanner struct {
	s string
	i int
}

func (sc *scanner) skipSeparators() {
	for sc.i < len(sc.s) {
		switch sc.s[sc.i] {
		case ' ', '\t', '\n', '\r', '\f', ',':
			sc.i++
		default:
			return
		}
	}
}

func (sc *scanner) done() bool {
	sc.skipSeparators()
	return sc.i >= len(sc.s)
}

func (sc *scanner) command() (byte, bool) {
	sc.skipSeparators()
	if sc.i >= len(sc.s) {
		return 0, false
	}
	c := sc.s[sc.i]
	if _, ok := arity(c); !ok {
		return 0, false
	}
	sc.i++
	return c, true
}

func (sc *scanner) flag() (float64, bool) {
	sc.skipSeparators()
	if sc.i >= len(sc.s) {
		return 0, false
	}
	switch sc.s[sc.i] {
	case '0':
		sc.i++
		return 0, true
	case '1':
		sc.i++
		return 1, true
	}
	return 0, false
}

func (sc *scanner) number() (float64, bool) {
	sc.skipSeparators()
	start := sc.i
	i := sc.i
	if i < len(sc.s) && (sc.s[i] == '+' || sc.s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(sc.s) && isDigit(sc.s[i]) {
		i++
		digits++
	}
	if i < len(sc.s) && sc.s[i] == '.' {
		i++
		for i < len(sc.s) && isDigit(sc.s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	if i < len(sc.s) && (sc.s[i] == 'e' || sc.s[i] == 'E') {
		j := i + 1
		if j < len(sc.s) && (sc.s[j] == '+' || sc.s[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(sc.s) && isDigit(sc.s[j]) {
			j++
			expDigits++
		}
		if expDigits > 0 {
			i = j
		}
	}
	v, err := strconv.ParseFloat(sc.s[start:i], 64)
	if err != nil {
		return 0, false
	}
	sc.i = i
	return v, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// tokenize splits d into command groups. Parsing stops at the first malformed
// token; the groups read so far are returned alongside the error.
func tokenize(d string) ([]segment, error) {
	sc := &scanner{s: d}
	var segs []segment
	var current byte

	for !sc.done() {
		explicit := false
		if c, ok := sc.command(); ok {
			current = c
			explicit = true
		} else if current == 0 {
			return segs, fmt.Errorf("shape: path must start with a command at offset %d", sc.i)
		} else if upper(current) == 'Z' {
			return segs, fmt.Errorf("shape: unexpected token after close at offset %d", sc.i)
		}

		n, _ := arity(current)
		seg := segment{cmd: current, explicit: explicit, args: make([]float64, 0, n)}
		for i := 0; i < n; i++ {
			var v float64
			var ok bool
			if isFlag(current, i) {
				v, ok = sc.flag()
			} else {
				v, ok = sc.number()
			}
			if !ok {
				return segs, fmt.Errorf("shape: bad argument %d for %q at offset %d", i, current, sc.i)
			}
			seg.args = append(seg.args, v)
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

// ScalePath multiplies every coordinate literal in d by k. Command letters and
// their grouping are kept; arc rotations and flags are not scaled. Malformed
// tails are dropped.
func ScalePath(d string, k float64) string {
	segs, _ := tokenize(d)
	var b strings.Builder
	for _, seg := range segs {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		if seg.explicit {
			b.WriteByte(seg.cmd)
		}
		for i, v := range seg.args {
			if i > 0 || seg.explicit {
				b.WriteByte(' ')
			}
			switch {
			case isFlag(seg.cmd, i):
				b.WriteString(strconv.Itoa(int(v)))
			case isCoordinate(seg.cmd, i):
				b.WriteString(formatNumber(v * k))
			default:
				b.WriteString(formatNumber(v))
			}
		}
	}
	return b.String()
}

func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParsePath normalizes d into absolute commands. Relative forms, H/V, smooth
// curves and elliptical arcs are rewritten to Move, Line, Quad, Cubic and
// Close. The commands parsed before a malformed token are returned with the
// error.
func ParsePath(d string) ([]Command, error) {
	segs, err := tokenize(d)
	return normalize(segs), err
}

func normalize(segs []segment) []Command {
	var out []Command
	var cur, start, lastCtrl cp.Vector
	var lastOp byte

	for _, seg := range segs {
		cmd := seg.cmd
		rel := isRelative(cmd)
		a := seg.args
		base := cp.Vector{}
		if rel {
			base = cur
		}
		pt := func(i int) cp.Vector {
			return cp.Vector{X: base.X + a[i], Y: base.Y + a[i+1]}
		}

		switch upper(cmd) {
		case 'M':
			p := pt(0)
			if seg.explicit {
				out = append(out, Command{Op: OpMove, Pts: [3]cp.Vector{p}})
				start = p
			} else {
				out = append(out, Command{Op: OpLine, Pts: [3]cp.Vector{p}})
			}
			cur = p
		case 'L':
			p := pt(0)
			out = append(out, Command{Op: OpLine, Pts: [3]cp.Vector{p}})
			cur = p
		case 'H':
			x := a[0]
			if rel {
				x += cur.X
			}
			cur = cp.Vector{X: x, Y: cur.Y}
			out = append(out, Command{Op: OpLine, Pts: [3]cp.Vector{cur}})
		case 'V':
			y := a[0]
			if rel {
				y += cur.Y
			}
			cur = cp.Vector{X: cur.X, Y: y}
			out = append(out, Command{Op: OpLine, Pts: [3]cp.Vector{cur}})
		case 'C':
			c1, c2, p := pt(0), pt(2), pt(4)
			out = append(out, Command{Op: OpCubic, Pts: [3]cp.Vector{c1, c2, p}})
			lastCtrl = c2
			cur = p
		case 'S':
			c1 := cur
			if lastOp == 'C' || lastOp == 'S' {
				c1 = cur.Mult(2).Sub(lastCtrl)
			}
			c2, p := pt(0), pt(2)
			out = append(out, Command{Op: OpCubic, Pts: [3]cp.Vector{c1, c2, p}})
			lastCtrl = c2
			cur = p
		case 'Q':
			c, p := pt(0), pt(2)
			out = append(out, Command{Op: OpQuad, Pts: [3]cp.Vector{c, p}})
			lastCtrl = c
			cur = p
		case 'T':
			c := cur
			if lastOp == 'Q' || lastOp == 'T' {
				c = cur.Mult(2).Sub(lastCtrl)
			}
			p := pt(0)
			out = append(out, Command{Op: OpQuad, Pts: [3]cp.Vector{c, p}})
			lastCtrl = c
			cur = p
		case 'A':
			p := pt(5)
			out = append(out, arcToCubics(cur, a[0], a[1], a[2], a[3] != 0, a[4] != 0, p)...)
			cur = p
		case 'Z':
			out = append(out, Command{Op: OpClose})
			cur = start
		}
		lastOp = upper(cmd)
	}
	return out
}
