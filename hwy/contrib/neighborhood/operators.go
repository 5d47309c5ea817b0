// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package neighborhood

import (
	"fmt"
	"math"

	"github.com/ajroetker/go-neighborhood/hwy"
	"gonum.org/v1/gonum/stat/distuv"
)

func checkAxis(dims, axis int) error {
	if dims < 1 {
		return fmt.Errorf("%w: %d dimensions", ErrInvalidOperator, dims)
	}
	if axis < 0 || axis >= dims {
		return fmt.Errorf("%w: axis %d not in [0, %d)", ErrInvalidOperator, axis, dims)
	}
	return nil
}

// along returns the operator that applies the 1-D kernel k along axis and
// is a single tap on every other axis. len(k) must be odd.
func along[T hwy.Floats](dims, axis int, k []T) Operator[T] {
	radius := make([]int, dims)
	radius[axis] = len(k) / 2
	return Operator[T]{radius: radius, coeffs: append([]T(nil), k...)}
}

// Separable returns the outer product of one odd-length 1-D kernel per axis.
func Separable[T hwy.Floats](kernels ...[]T) (Operator[T], error) {
	if len(kernels) == 0 {
		return Operator[T]{}, fmt.Errorf("%w: no kernels", ErrInvalidOperator)
	}
	radius := make([]int, len(kernels))
	n := 1
	for a, k := range kernels {
		if len(k)%2 != 1 {
			return Operator[T]{}, fmt.Errorf("%w: kernel %d has even length %d", ErrInvalidOperator, a, len(k))
		}
		radius[a] = len(k) / 2
		n *= len(k)
	}
	op := Operator[T]{radius: radius, coeffs: make([]T, n)}
	for i := range n {
		c := T(1)
		rem := i
		for _, k := range kernels {
			c *= k[rem%len(k)]
			rem /= len(k)
		}
		op.coeffs[i] = c
	}
	return op, nil
}

// Box returns the averaging operator with the same radius on every axis.
// Its coefficients sum to one.
func Box[T hwy.Floats](dims, radius int) (Operator[T], error) {
	if dims < 1 || radius < 0 {
		return Operator[T]{}, fmt.Errorf("%w: box of %d dimensions, radius %d", ErrInvalidOperator, dims, radius)
	}
	w := 2*radius + 1
	n := 1
	for range dims {
		n *= w
	}
	op := Operator[T]{radius: make([]int, dims), coeffs: make([]T, n)}
	for a := range op.radius {
		op.radius[a] = radius
	}
	c := 1 / T(n)
	for i := range op.coeffs {
		op.coeffs[i] = c
	}
	return op, nil
}

// Derivative returns the central-difference operator of the given order
// (1 or 2) along axis, in units of pixels.
//
//	order 1: [-1/2, 0, 1/2]
//	order 2: [1, -2, 1]
func Derivative[T hwy.Floats](dims, axis, order int) (Operator[T], error) {
	if err := checkAxis(dims, axis); err != nil {
		return Operator[T]{}, err
	}
	switch order {
	case 1:
		return along(dims, axis, []T{-0.5, 0, 0.5}), nil
	case 2:
		return along(dims, axis, []T{1, -2, 1}), nil
	default:
		return Operator[T]{}, fmt.Errorf("%w: derivative order %d", ErrInvalidOperator, order)
	}
}

// ForwardDifference returns [0, -1, 1] along axis.
func ForwardDifference[T hwy.Floats](dims, axis int) (Operator[T], error) {
	if err := checkAxis(dims, axis); err != nil {
		return Operator[T]{}, err
	}
	return along(dims, axis, []T{0, -1, 1}), nil
}

// BackwardDifference returns [-1, 1, 0] along axis.
func BackwardDifference[T hwy.Floats](dims, axis int) (Operator[T], error) {
	if err := checkAxis(dims, axis); err != nil {
		return Operator[T]{}, err
	}
	return along(dims, axis, []T{-1, 1, 0}), nil
}

// MixedDerivative returns the central-difference estimate of ∂²/∂a∂b.
// The operator has radius one on axes a and b and zero elsewhere.
func MixedDerivative[T hwy.Floats](dims, a, b int) (Operator[T], error) {
	if err := checkAxis(dims, a); err != nil {
		return Operator[T]{}, err
	}
	if err := checkAxis(dims, b); err != nil {
		return Operator[T]{}, err
	}
	if a == b {
		return Derivative[T](dims, a, 2)
	}
	radius := make([]int, dims)
	radius[a], radius[b] = 1, 1
	op := Operator[T]{radius: radius, coeffs: make([]T, 9)}
	for i := range op.coeffs {
		o := op.Offset(i)
		op.coeffs[i] = T(o[a]*o[b]) / 4
	}
	return op, nil
}

// Laplacian returns the 2D+1 point discrete Laplacian.
func Laplacian[T hwy.Floats](dims int) (Operator[T], error) {
	if dims < 1 {
		return Operator[T]{}, fmt.Errorf("%w: %d dimensions", ErrInvalidOperator, dims)
	}
	radius := make([]int, dims)
	n := 1
	for a := range radius {
		radius[a] = 1
		n *= 3
	}
	op := Operator[T]{radius: radius, coeffs: make([]T, n)}
	center := n / 2
	op.coeffs[center] = T(-2 * dims)
	stride := 1
	for range dims {
		op.coeffs[center-stride] = 1
		op.coeffs[center+stride] = 1
		stride *= 3
	}
	return op, nil
}

// Sobel returns the Sobel edge operator along axis: the difference
// [-1, 0, 1] along axis smoothed by [1, 2, 1] on every other axis.
func Sobel[T hwy.Floats](dims, axis int) (Operator[T], error) {
	if err := checkAxis(dims, axis); err != nil {
		return Operator[T]{}, err
	}
	kernels := make([][]T, dims)
	for a := range kernels {
		if a == axis {
			kernels[a] = []T{-1, 0, 1}
		} else {
			kernels[a] = []T{1, 2, 1}
		}
	}
	return Separable(kernels...)
}

// Gaussian returns a 1-D Gaussian smoothing operator along axis, sampled
// from the normal density with standard deviation sigma (in pixels) and
// normalized to sum to one. The radius is ceil(3·sigma), capped at
// maxRadius when maxRadius > 0.
func Gaussian[T hwy.Floats](dims, axis int, sigma float64, maxRadius int) (Operator[T], error) {
	if err := checkAxis(dims, axis); err != nil {
		return Operator[T]{}, err
	}
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return Operator[T]{}, fmt.Errorf("%w: gaussian sigma %v", ErrInvalidOperator, sigma)
	}
	r := int(math.Ceil(3 * sigma))
	if maxRadius > 0 {
		r = min(r, maxRadius)
	}
	normal := distuv.Normal{Mu: 0, Sigma: sigma}
	k := make([]float64, 2*r+1)
	var sum float64
	for i := range k {
		k[i] = normal.Prob(float64(i - r))
		sum += k[i]
	}
	coeffs := make([]T, len(k))
	for i, v := range k {
		coeffs[i] = T(v / sum)
	}
	return along(dims, axis, coeffs), nil
}

// ZuckerHummel returns the 3×3×3 Zucker-Hummel gradient operator along
// axis of a 3-D image.
func ZuckerHummel[T hwy.Floats](axis int) (Operator[T], error) {
	if err := checkAxis(3, axis); err != nil {
		return Operator[T]{}, err
	}
	table := zuckerHummelTables[axis]
	coeffs := make([]T, len(table))
	for i, v := range table {
		coeffs[i] = T(v)
	}
	return Operator[T]{radius: []int{1, 1, 1}, coeffs: coeffs}, nil
}
