// Package path turns contour arcs into SVG path data.
//
// Every arc is emitted as a zero-thickness ring sector centred on the
// origin, plus a translate transform that moves it to the arc centre. The
// outline of a sector runs along the arc and straight back over itself, so
// a stroked path draws the arc once and a filled path draws nothing.
package path

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/bubbletreemap/pkg/geom"
)

const (
	epsilon    = 1e-6
	tauEpsilon = geom.FullTurn - epsilon
)

// Path is one SVG path element.
type Path struct {
	D         string `json:"d" bson:"d"`
	Transform string `json:"transform" bson:"transform"`
}

// Formatter writes numbers with an optional fixed precision.
type Formatter struct {
	// Digits rounds coordinates to this many decimals. Negative keeps full
	// precision.
	Digits int
}

// Full precision, the default.
var Full = Formatter{Digits: -1}

// Ring returns the path of a at full precision.
func Ring(a geom.Arc) Path { return Full.Ring(a) }

// Rings converts a slice of arcs.
func (f Formatter) Rings(arcs []geom.Arc) []Path {
	out := make([]Path, len(arcs))
	for i, a := range arcs {
		out[i] = f.Ring(a)
	}
	return out
}

// Ring returns the zero-thickness sector path of a. A start angle past the
// end angle is moved back by a full turn first.
func (f Formatter) Ring(a geom.Arc) Path {
	a = a.Normalized()
	b := &builder{f: f}
	r := math.Abs(a.Radius)
	a0, a1 := a.StartAngle-math.Pi/2, a.EndAngle-math.Pi/2
	da := math.Abs(a1 - a0)
	cw := a1 > a0

	switch {
	case !(r > 1e-12):
		b.moveTo(0, 0)
	case da > geom.FullTurn-1e-12:
		b.moveTo(r*math.Cos(a0), r*math.Sin(a0))
		b.arc(r, a0, a1, !cw)
		b.moveTo(r*math.Cos(a1), r*math.Sin(a1))
		b.arc(r, a1, a0, cw)
	default:
		b.moveTo(r*math.Cos(a0), r*math.Sin(a0))
		if da > 1e-12 {
			b.arc(r, a0, a1, !cw)
			b.arc(r, a1, a0, cw)
		} else {
			b.lineTo(r*math.Cos(a1), r*math.Sin(a1))
		}
	}
	b.close()

	return Path{
		D:         b.String(),
		Transform: "translate(" + f.num(a.Center.X) + "," + f.num(a.Center.Y) + ")",
	}
}

func (f Formatter) num(v float64) string {
	if f.Digits >= 0 {
		p := math.Pow(10, float64(f.Digits))
		v = math.Round(v*p) / p
	}
	if v == 0 {
		return "0"
	}
	// Very small magnitudes use exponent notation, as browsers print them.
	if math.Abs(v) < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		s = strings.Replace(s, "e-0", "e-", 1)
		return s
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type builder struct {
	f      Formatter
	sb     strings.Builder
	x1, y1 float64
	x0, y0 float64
	moved  bool
}

func (b *builder) String() string { return b.sb.String() }

func (b *builder) point(cmd string, x, y float64) {
	b.sb.WriteString(cmd)
	b.sb.WriteString(b.f.num(x))
	b.sb.WriteByte(',')
	b.sb.WriteString(b.f.num(y))
}

func (b *builder) moveTo(x, y float64) {
	b.x0, b.y0, b.x1, b.y1 = x, y, x, y
	b.moved = true
	b.point("M", x, y)
}

func (b *builder) lineTo(x, y float64) {
	b.x1, b.y1 = x, y
	b.point("L", x, y)
}

// arc appends an arc around the origin from angle a0 to a1 (screen angles,
// measured from +x).
func (b *builder) arc(r, a0, a1 float64, ccw bool) {
	dx, dy := r*math.Cos(a0), r*math.Sin(a0)
	sweep := "1"
	da := a1 - a0
	if ccw {
		sweep = "0"
		da = a0 - a1
	}

	if !b.moved {
		b.moveTo(dx, dy)
	} else if math.Abs(b.x1-dx) > epsilon || math.Abs(b.y1-dy) > epsilon {
		b.lineTo(dx, dy)
	}
	if r == 0 {
		return
	}
	if da < 0 {
		da = math.Mod(da, geom.FullTurn) + geom.FullTurn
	}

	rs := b.f.num(r)
	switch {
	case da > tauEpsilon:
		b.sb.WriteString("A" + rs + "," + rs + ",0,1," + sweep + ",")
		b.sb.WriteString(b.f.num(-dx) + "," + b.f.num(-dy))
		b.sb.WriteString("A" + rs + "," + rs + ",0,1," + sweep + ",")
		b.sb.WriteString(b.f.num(dx) + "," + b.f.num(dy))
		b.x1, b.y1 = dx, dy
	case da > epsilon:
		large := "0"
		if da >= math.Pi {
			large = "1"
		}
		b.x1, b.y1 = r*math.Cos(a1), r*math.Sin(a1)
		b.sb.WriteString("A" + rs + "," + rs + ",0," + large + "," + sweep + ",")
		b.sb.WriteString(b.f.num(b.x1) + "," + b.f.num(b.y1))
	}
}

func (b *builder) close() {
	if b.moved {
		b.x1, b.y1 = b.x0, b.y0
		b.sb.WriteByte('Z')
	}
}
