// Package geom provides the small float32 geometry vocabulary shared by the
// widget tree: points, vectors, sizes, and axis-aligned rectangles.
//
// Rectangles are min/max pairs. Containment is min-inclusive, max-exclusive,
// so adjacent widgets never both claim a shared edge during hit testing.
package geom

import "github.com/chewxy/math32"

// Point is a position in some coordinate space (window or widget-local).
type Point struct {
	X, Y float32
}

// Vec is a displacement between two points.
type Vec struct {
	X, Y float32
}

// Size is a width/height pair.
type Size struct {
	W, H float32
}

// Pt returns the point (x, y).
func Pt(x, y float32) Point { return Point{x, y} }

// V returns the vector (x, y).
func V(x, y float32) Vec { return Vec{x, y} }

// Sz returns the size (w, h).
func Sz(w, h float32) Size { return Size{w, h} }

// Add translates p by v.
func (p Point) Add(v Vec) Point { return Point{p.X + v.X, p.Y + v.Y} }

// Sub translates p by -v.
func (p Point) Sub(v Vec) Point { return Point{p.X - v.X, p.Y - v.Y} }

// To returns the vector from p to q.
func (p Point) To(q Point) Vec { return Vec{q.X - p.X, q.Y - p.Y} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float32 {
	return math32.Hypot(q.X-p.X, q.Y-p.Y)
}

// Add combines two vectors.
func (v Vec) Add(u Vec) Vec { return Vec{v.X + u.X, v.Y + u.Y} }

// Sub subtracts u from v.
func (v Vec) Sub(u Vec) Vec { return Vec{v.X - u.X, v.Y - u.Y} }

// Neg returns the opposite vector.
func (v Vec) Neg() Vec { return Vec{-v.X, -v.Y} }

// Rect is an axis-aligned rectangle. A rect with Max <= Min on either axis is
// empty; Empty rects contain no points and intersect nothing.
type Rect struct {
	Min, Max Point
}

// R returns the rectangle with corners (x0, y0) and (x1, y1).
func R(x0, y0, x1, y1 float32) Rect {
	return Rect{Point{x0, y0}, Point{x1, y1}}
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float32 { return r.Max.X - r.Min.X }

// Height returns the vertical extent of r.
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }

// Size returns the extents of r.
func (r Rect) Size() Size { return Size{r.Width(), r.Height()} }

// Empty reports whether r contains no points.
func (r Rect) Empty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Contains reports whether p is inside r (min-inclusive, max-exclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X &&
		p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Translate shifts r by v.
func (r Rect) Translate(v Vec) Rect {
	return Rect{r.Min.Add(v), r.Max.Add(v)}
}

// Origin returns the vector from the coordinate origin to r.Min.
func (r Rect) Origin() Vec { return Vec{r.Min.X, r.Min.Y} }

// Intersect returns the overlap of r and s. The second return value is false
// when the rects do not overlap, in which case the returned rect is empty.
func (r Rect) Intersect(s Rect) (Rect, bool) {
	out := Rect{
		Min: Point{math32.Max(r.Min.X, s.Min.X), math32.Max(r.Min.Y, s.Min.Y)},
		Max: Point{math32.Min(r.Max.X, s.Max.X), math32.Min(r.Max.Y, s.Max.Y)},
	}
	if out.Empty() {
		return Rect{}, false
	}
	return out, true
}
