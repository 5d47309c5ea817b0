// Package hwy holds the numeric building blocks shared by the neighborhood
// packages: element type constraints, the runtime dispatch level, and the
// lane-blocked inner product every operator evaluation reduces to.
//
// Basic usage:
//
//	import "github.com/ajroetker/go-neighborhood/hwy"
//
//	coeffs := []float64{-0.5, 0, 0.5}
//	samples := []float64{1, 2, 3}
//	d := hwy.Dot(coeffs, samples) // 1
package hwy

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integers is a constraint for all integer types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Lanes is a constraint for all types that can be stored as pixels
// and packed into SIMD lanes.
type Lanes interface {
	Floats | Integers
}
