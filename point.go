package warp

import "fmt"

// Point is an integer position on the pixel grid.
// Offsets may be negative when a transformed image extends before the origin.
type Point struct {
	X, Y int
}

// Pt is a convenience function to create a Point.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Size is the extent of a pixel grid. Both dimensions are non-negative
// for any Size produced by this package.
type Size struct {
	W, H int
}

// Sz is a convenience function to create a Size.
func Sz(w, h int) Size {
	return Size{W: w, H: h}
}

// Empty reports whether s has no pixels.
func (s Size) Empty() bool {
	return s.W <= 0 || s.H <= 0
}

// Area returns W*H.
func (s Size) Area() int {
	return s.W * s.H
}

// Swap returns the size with width and height exchanged.
func (s Size) Swap() Size {
	return Size{W: s.H, H: s.W}
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.W, s.H)
}

// Rect is an axis-aligned box on the pixel grid: the origin Min and the
// extent Size. A transform kernel allocates Size and writes each
// destination pixel shifted by -Min.
type Rect struct {
	Min  Point
	Size Size
}

// Max returns the exclusive lower-right corner.
func (r Rect) Max() Point {
	return Point{X: r.Min.X + r.Size.W, Y: r.Min.Y + r.Size.H}
}

// ContainsF reports whether (x, y) lies within the closed box [Min, Max].
func (r Rect) ContainsF(x, y float64) bool {
	hi := r.Max()
	return x >= float64(r.Min.X) && x <= float64(hi.X) &&
		y >= float64(r.Min.Y) && y <= float64(hi.Y)
}

func (r Rect) String() string {
	return fmt.Sprintf("%v+%v", r.Min, r.Size)
}
