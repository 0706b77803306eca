package warp

import (
	"fmt"
	"math"
)

// DefaultTolerance is the distance, in pixels, within which a transformed
// corner coordinate is snapped to the nearest integer before rounding.
// It absorbs floating-point drift so identity and right-angle transforms
// return exact sizes.
const DefaultTolerance = 1e-6

// DegeneratePolicy selects how a singular matrix is handled.
type DegeneratePolicy uint8

const (
	// DegenerateFail rejects singular matrices with ErrInvalidArgument.
	DegenerateFail DegeneratePolicy = iota

	// DegenerateClamp accepts singular matrices and widens every output
	// extent to at least one pixel.
	DegenerateClamp
)

// String returns the policy name.
func (p DegeneratePolicy) String() string {
	switch p {
	case DegenerateFail:
		return "fail"
	case DegenerateClamp:
		return "clamp"
	default:
		return fmt.Sprintf("DegeneratePolicy(%d)", uint8(p))
	}
}

// BoundsOption configures a bounds computation.
//
// Example:
//
//	size, err := warp.AffineOutputSize(src, m,
//	    warp.WithTolerance(1e-4),
//	    warp.WithDegeneratePolicy(warp.DegenerateClamp))
type BoundsOption func(*boundsOptions)

type boundsOptions struct {
	tolerance  float64
	degenerate DegeneratePolicy
}

func defaultBoundsOptions() boundsOptions {
	return boundsOptions{
		tolerance:  DefaultTolerance,
		degenerate: DegenerateFail,
	}
}

func applyBoundsOptions(opts []BoundsOption) boundsOptions {
	o := defaultBoundsOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithTolerance sets the integer snapping tolerance in pixels.
// Zero disables snapping. Values outside [0, 0.5) are ignored, since a
// larger tolerance could pull a coordinate past its neighbor pixel edge.
func WithTolerance(tol float64) BoundsOption {
	return func(o *boundsOptions) {
		if tol >= 0 && tol < 0.5 && !math.IsNaN(tol) {
			o.tolerance = tol
		}
	}
}

// WithDegeneratePolicy sets how singular matrices are handled.
func WithDegeneratePolicy(p DegeneratePolicy) BoundsOption {
	return func(o *boundsOptions) {
		o.degenerate = p
	}
}
