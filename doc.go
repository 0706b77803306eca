// Package warp computes output canvas geometry for affine and rotation
// transforms of raster images.
//
// # Overview
//
// A transform kernel must allocate its destination buffer before it writes
// a single pixel. warp answers the two questions the kernel asks first:
// how large must the destination be, and where does its origin sit
// relative to the transformed source. Both answers come from one
// algorithm: map the four corners of the source rectangle through the
// transform and take their axis-aligned bounding box.
//
// # Quick Start
//
//	import "github.com/gogpu/warp"
//
//	src := warp.Sz(640, 480)
//
//	// Affine transform (source to destination coordinates)
//	m := warp.Translate(10, 0).Multiply(warp.Shear(0.25, 0))
//	size, err := warp.AffineOutputSize(src, m)
//	offset, err := warp.AffineOutputOffset(src, m)
//
//	// Rotation about the image center, in degrees
//	size, err = warp.RotateOutputSize(src, 30)
//	rot, err := warp.RotationMatrix(src, 30) // matrix for the kernel
//
// # Rounding
//
// Bounds are rounded outward on both edges: the offset is the floor of the
// smallest transformed coordinate and offset+size is the ceiling of the
// largest. Translating the transformed source by -offset therefore always
// lands it inside (0,0)-(size.W,size.H). Coordinates within
// [DefaultTolerance] of an integer are snapped first, so identity, 90, 180
// and 270 degree transforms produce exact sizes.
//
// # Coordinate System
//
// Uses standard raster coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Positive angles rotate from +x towards +y
//
// # Buffers
//
// Destination buffers are obtained through the alloc sub-package, which
// wraps caller-supplied allocate/deallocate functions into handles that
// release exactly once. The GPU device memory allocator lives in
// alloc/device.
//
// # Concurrency
//
// All bounds functions are pure and safe for concurrent use.
package warp

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
