package warp

import (
	"fmt"
	"math"
)

// maxExtent bounds every output coordinate and extent so results fit in
// the int32 sizes used by image kernels.
const maxExtent = math.MaxInt32

// box is a floating-point axis-aligned bounding box.
type box struct {
	minX, minY float64
	maxX, maxY float64
}

// cornerBox maps the four corners of the source rectangle (0,0)-(W,H)
// through m and returns their bounding box.
func cornerBox(src Size, m Matrix) box {
	w, h := float64(src.W), float64(src.H)
	corners := [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}}

	b := box{
		minX: math.Inf(1), minY: math.Inf(1),
		maxX: math.Inf(-1), maxY: math.Inf(-1),
	}
	for _, c := range corners {
		x, y := m.TransformPoint(c[0], c[1])
		b.minX = min(b.minX, x)
		b.minY = min(b.minY, y)
		b.maxX = max(b.maxX, x)
		b.maxY = max(b.maxY, y)
	}
	return b
}

// outward rounds b to the smallest integer rectangle containing it:
// the minimum corner is floored and the maximum corner is ceiled, after
// snapping coordinates within tol of an integer.
func (b box) outward(tol float64) (Rect, error) {
	x0 := math.Floor(snap(b.minX, tol))
	y0 := math.Floor(snap(b.minY, tol))
	x1 := math.Ceil(snap(b.maxX, tol))
	y1 := math.Ceil(snap(b.maxY, tol))

	for _, v := range [...]float64{x0, y0, x1, y1, x1 - x0, y1 - y0} {
		if math.IsNaN(v) || math.Abs(v) > maxExtent {
			return Rect{}, fmt.Errorf("%w: transformed bounds [%g,%g]-[%g,%g] exceed int32 range",
				ErrInvalidArgument, b.minX, b.minY, b.maxX, b.maxY)
		}
	}

	return Rect{
		Min:  Point{X: int(x0), Y: int(y0)},
		Size: Size{W: int(x1 - x0), H: int(y1 - y0)},
	}, nil
}

// snap returns the nearest integer to v when v is within tol of it.
func snap(v, tol float64) float64 {
	r := math.Round(v)
	if math.Abs(v-r) <= tol {
		return r
	}
	return v
}

func validateSource(src Size) error {
	if src.W <= 0 || src.H <= 0 {
		return fmt.Errorf("%w: source size %v has no extent", ErrInvalidArgument, src)
	}
	if src.W > maxExtent || src.H > maxExtent {
		return fmt.Errorf("%w: source size %v exceeds int32 range", ErrInvalidArgument, src)
	}
	return nil
}

// AffineBounds returns the destination rectangle covered by the source
// rectangle (0,0)-(src.W,src.H) after applying m.
//
// The rectangle is rounded outward: Min is the floor of the smallest
// transformed corner and Min+Size is the ceiling of the largest, so
// translating the transformed source by -Min lands it entirely within
// (0,0)-(Size.W,Size.H). Coordinates within the snapping tolerance of an
// integer (see WithTolerance) are treated as that integer.
//
// A singular m is rejected with ErrInvalidArgument unless the
// DegenerateClamp policy is selected, in which case each extent is at
// least one pixel.
func AffineBounds(src Size, m Matrix, opts ...BoundsOption) (Rect, error) {
	o := applyBoundsOptions(opts)

	if err := validateSource(src); err != nil {
		return Rect{}, err
	}
	if !m.IsFinite() {
		return Rect{}, fmt.Errorf("%w: matrix %+v has non-finite coefficients", ErrInvalidArgument, m)
	}

	degenerate := m.IsSingular()
	if degenerate && o.degenerate != DegenerateClamp {
		return Rect{}, fmt.Errorf("%w: singular matrix %+v (det=%g)", ErrInvalidArgument, m, m.Determinant())
	}

	r, err := cornerBox(src, m).outward(o.tolerance)
	if err != nil {
		return Rect{}, err
	}

	if degenerate {
		r.Size.W = max(r.Size.W, 1)
		r.Size.H = max(r.Size.H, 1)
		Logger().Warn("warp: degenerate transform clamped",
			"src", src, "det", m.Determinant(), "size", r.Size)
	}

	Logger().Debug("warp: affine bounds", "src", src, "offset", r.Min, "size", r.Size)
	return r, nil
}

// AffineOutputSize returns the size of the canvas that holds src after
// applying m. See AffineBounds for the rounding rules.
func AffineOutputSize(src Size, m Matrix, opts ...BoundsOption) (Size, error) {
	r, err := AffineBounds(src, m, opts...)
	if err != nil {
		return Size{}, err
	}
	return r.Size, nil
}

// AffineOutputOffset returns the origin of the canvas that holds src after
// applying m, in destination coordinates. It agrees with AffineOutputSize
// called with the same arguments.
func AffineOutputOffset(src Size, m Matrix, opts ...BoundsOption) (Point, error) {
	r, err := AffineBounds(src, m, opts...)
	if err != nil {
		return Point{}, err
	}
	return r.Min, nil
}

// RotationMatrix returns the source-to-destination matrix for rotating
// src by angleDeg degrees about its center.
//
// The rotated corners are bounded, the bounding extents are rounded up to
// whole pixels, and the source center is placed at the center of that
// output canvas. Positive angles rotate from +x towards +y.
func RotationMatrix(src Size, angleDeg float64, opts ...BoundsOption) (Matrix, error) {
	o := applyBoundsOptions(opts)

	if err := validateSource(src); err != nil {
		return Matrix{}, err
	}
	if math.IsNaN(angleDeg) || math.IsInf(angleDeg, 0) {
		return Matrix{}, fmt.Errorf("%w: angle %g is not finite", ErrInvalidArgument, angleDeg)
	}

	cx, cy := float64(src.W)/2, float64(src.H)/2
	about := RotateDegAt(angleDeg, cx, cy)

	b := cornerBox(src, about)
	outW := math.Ceil(snap(b.maxX-b.minX, o.tolerance))
	outH := math.Ceil(snap(b.maxY-b.minY, o.tolerance))

	return Translate(outW/2-cx, outH/2-cy).Multiply(about), nil
}

// RotateBounds returns the destination rectangle for rotating src by
// angleDeg degrees about its center. It is AffineBounds applied to
// RotationMatrix. The rotation matrix already centers the result on the
// output canvas, so the offset is (0,0) unless snapping is disabled and
// rounding error leaves a corner a hair below zero.
func RotateBounds(src Size, angleDeg float64, opts ...BoundsOption) (Rect, error) {
	m, err := RotationMatrix(src, angleDeg, opts...)
	if err != nil {
		return Rect{}, err
	}
	return AffineBounds(src, m, opts...)
}

// RotateOutputSize returns the size of the canvas that holds src rotated
// by angleDeg degrees about its center, rounded up so no rotated content
// is clipped. Right angles swap or keep the source dimensions exactly.
func RotateOutputSize(src Size, angleDeg float64, opts ...BoundsOption) (Size, error) {
	r, err := RotateBounds(src, angleDeg, opts...)
	if err != nil {
		return Size{}, err
	}
	return r.Size, nil
}

// RotateOutputOffset returns the origin of the canvas that holds src
// rotated by angleDeg degrees, in the coordinate space of RotationMatrix.
func RotateOutputOffset(src Size, angleDeg float64, opts ...BoundsOption) (Point, error) {
	r, err := RotateBounds(src, angleDeg, opts...)
	if err != nil {
		return Point{}, err
	}
	return r.Min, nil
}
