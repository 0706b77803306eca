package warp

import (
	"math"

	"golang.org/x/image/math/f64"
)

// singularEpsilon is the ratio of the determinant to the squared magnitude
// of the linear part below which a matrix is treated as collapsing the
// plane onto a line or a point.
const singularEpsilon = 1e-10

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation from source to destination
// pixel coordinates:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// RotateDeg creates a rotation matrix from an angle in degrees.
// Whole quarter turns produce exact 0 and ±1 coefficients.
func RotateDeg(deg float64) Matrix {
	sin, cos := sincosDeg(deg)
	return Matrix{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// RotateDegAt returns a rotation by deg degrees around (cx, cy).
func RotateDegAt(deg, cx, cy float64) Matrix {
	return Translate(cx, cy).Multiply(RotateDeg(deg)).Multiply(Translate(-cx, -cy))
}

// sincosDeg returns the sine and cosine of deg degrees. Multiples of 90
// are reduced modulo 360 and answered exactly.
func sincosDeg(deg float64) (sin, cos float64) {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	switch r {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	return math.Sincos(radians(r))
}

// RotateAt returns a rotation by angle (in radians) around (cx, cy).
func RotateAt(angle, cx, cy float64) Matrix {
	return Translate(cx, cy).Multiply(Rotate(angle)).Multiply(Translate(-cx, -cy))
}

// Shear creates a shear matrix.
func Shear(x, y float64) Matrix {
	return Matrix{
		A: 1, B: x, C: 0,
		D: y, E: 1, F: 0,
	}
}

// FromCoeffs builds a Matrix from six single-precision coefficients laid
// out as {a, b, c, d, e, f}, the layout used by C imaging APIs.
func FromCoeffs(c [6]float32) Matrix {
	return Matrix{
		A: float64(c[0]), B: float64(c[1]), C: float64(c[2]),
		D: float64(c[3]), E: float64(c[4]), F: float64(c[5]),
	}
}

// FromAff3 converts an x/image affine matrix. Both use the same row-major
// layout, so the conversion is a plain copy.
func FromAff3(m f64.Aff3) Matrix {
	return Matrix{
		A: m[0], B: m[1], C: m[2],
		D: m[3], E: m[4], F: m[5],
	}
}

// Aff3 returns m in the form accepted by golang.org/x/image/draw
// transformers as a source-to-destination matrix.
func (m Matrix) Aff3() f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}

// Multiply multiplies two matrices (m * other).
// The result applies other first, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to point (x, y).
func (m Matrix) TransformPoint(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// IsSingular reports whether m collapses the plane to a line or a point.
//
// The determinant is compared against the squared magnitude of the linear
// part rather than a fixed threshold, so scaling m uniformly never changes
// the answer: Scale(1e-6, 1e-6) is a regular downscale while Scale(1, 0)
// and the zero matrix are singular.
func (m Matrix) IsSingular() bool {
	norm := m.A*m.A + m.B*m.B + m.D*m.D + m.E*m.E
	return norm == 0 || math.Abs(m.Determinant()) < singularEpsilon*norm
}

// Invert returns the inverse transformation.
// Returns false if the matrix is singular (non-invertible).
func (m Matrix) Invert() (Matrix, bool) {
	if m.IsSingular() {
		return Matrix{}, false
	}
	det := m.Determinant()

	invDet := 1.0 / det
	return Matrix{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}, true
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 0 && m.E == 1 && m.F == 0
}

// IsFinite reports whether every coefficient is a finite number.
func (m Matrix) IsFinite() bool {
	for _, v := range [...]float64{m.A, m.B, m.C, m.D, m.E, m.F} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
