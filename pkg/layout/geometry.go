package layout

import "math"

// Point is a waypoint in diagram coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bounds is an axis-aligned box. Y grows downward.
type Bounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (b Bounds) Right() float64   { return b.X + b.Width }
func (b Bounds) Bottom() float64  { return b.Y + b.Height }
func (b Bounds) CenterX() float64 { return b.X + b.Width/2 }
func (b Bounds) CenterY() float64 { return b.Y + b.Height/2 }

// Translate returns b moved by (dx, dy).
func (b Bounds) Translate(dx, dy float64) Bounds {
	b.X += dx
	b.Y += dy
	return b
}

// Overlaps reports whether b and o intersect by more than tol on both axes.
// Boxes that merely touch never overlap.
func (b Bounds) Overlaps(o Bounds, tol float64) bool {
	return b.X < o.Right()-tol && o.X < b.Right()-tol &&
		b.Y < o.Bottom()-tol && o.Y < b.Bottom()-tol
}

// OnBoundary reports whether p lies on the outline of b within eps.
func (b Bounds) OnBoundary(p Point, eps float64) bool {
	inX := p.X >= b.X-eps && p.X <= b.Right()+eps
	inY := p.Y >= b.Y-eps && p.Y <= b.Bottom()+eps
	if !inX || !inY {
		return false
	}
	return math.Abs(p.X-b.X) <= eps || math.Abs(p.X-b.Right()) <= eps ||
		math.Abs(p.Y-b.Y) <= eps || math.Abs(p.Y-b.Bottom()) <= eps
}

// crossesBox reports whether the axis-parallel segment a-b runs through the
// interior of box. Segments along the outline do not count.
func crossesBox(a, b Point, box Bounds) bool {
	x0, x1 := min(a.X, b.X), max(a.X, b.X)
	y0, y1 := min(a.Y, b.Y), max(a.Y, b.Y)
	return x0 < box.Right() && x1 > box.X && y0 < box.Bottom() && y1 > box.Y
}

// Union returns the smallest box containing both b and o. A zero box is
// treated as empty.
func (b Bounds) Union(o Bounds) Bounds {
	if b == (Bounds{}) {
		return o
	}
	if o == (Bounds{}) {
		return b
	}
	x, y := math.Min(b.X, o.X), math.Min(b.Y, o.Y)
	return Bounds{
		X:      x,
		Y:      y,
		Width:  math.Max(b.Right(), o.Right()) - x,
		Height: math.Max(b.Bottom(), o.Bottom()) - y,
	}
}

// Port is the side of a shape where an edge attaches.
type Port int

const (
	PortRight Port = iota
	PortLeft
	PortTop
	PortBottom
)

var portNames = [...]string{"right", "left", "top", "bottom"}

func (p Port) String() string {
	if p < 0 || int(p) >= len(portNames) {
		return ""
	}
	return portNames[p]
}

// MarshalText encodes the port as its side name.
func (p Port) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText decodes a side name; unknown names decode as right.
func (p *Port) UnmarshalText(text []byte) error {
	for i, n := range portNames {
		if n == string(text) {
			*p = Port(i)
			return nil
		}
	}
	*p = PortRight
	return nil
}

// point returns the attachment point of port p on b.
func (p Port) point(b Bounds) Point {
	switch p {
	case PortLeft:
		return Point{b.X, b.CenterY()}
	case PortTop:
		return Point{b.CenterX(), b.Y}
	case PortBottom:
		return Point{b.CenterX(), b.Bottom()}
	default:
		return Point{b.Right(), b.CenterY()}
	}
}

// Bends counts direction changes along an orthogonal polyline. Zero-length
// segments are ignored.
func Bends(pts []Point) int {
	bends := 0
	var prev int // 0 unset, 1 horizontal, 2 vertical
	for i := 1; i < len(pts); i++ {
		dir := segmentDir(pts[i-1], pts[i])
		if dir == 0 {
			continue
		}
		if prev != 0 && dir != prev {
			bends++
		}
		prev = dir
	}
	return bends
}

// PathLength returns the Manhattan length of a polyline.
func PathLength(pts []Point) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += math.Abs(pts[i].X-pts[i-1].X) + math.Abs(pts[i].Y-pts[i-1].Y)
	}
	return total
}

func segmentDir(a, b Point) int {
	switch {
	case a.X == b.X && a.Y == b.Y:
		return 0
	case a.Y == b.Y:
		return 1
	default:
		return 2
	}
}
