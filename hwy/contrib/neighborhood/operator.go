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

	"github.com/ajroetker/go-neighborhood/hwy"
	"github.com/ajroetker/go-neighborhood/hwy/contrib/image"
)

// Operator is an immutable N-dimensional coefficient kernel.
//
// Coefficients are stored flat in raster order over the (2r+1)^D box:
// axis 0 varies fastest and each axis runs from -radius to +radius. Flat
// index i corresponds to the offset
//
//	o[a] = (i / stride[a]) % (2·radius[a]+1) - radius[a]
//	stride[0] = 1, stride[a] = stride[a-1]·(2·radius[a-1]+1)
//
// which is the order View uses for samples, so coefficient i always
// multiplies the sample at offset i.
//
// The zero Operator is empty: it has no coefficients and evaluates to zero.
type Operator[T hwy.Floats] struct {
	radius []int
	coeffs []T
}

// NewOperator returns an operator with the given radius per axis and
// coefficients in raster order. Both slices are copied.
func NewOperator[T hwy.Floats](radius []int, coefficients []T) (Operator[T], error) {
	if len(radius) == 0 {
		if len(coefficients) != 0 {
			return Operator[T]{}, fmt.Errorf("%w: coefficients without a radius", ErrInvalidOperator)
		}
		return Operator[T]{}, nil
	}
	n := 1
	for a, r := range radius {
		if r < 0 {
			return Operator[T]{}, fmt.Errorf("%w: radius[%d] = %d", ErrInvalidOperator, a, r)
		}
		n *= 2*r + 1
	}
	if len(coefficients) != n {
		return Operator[T]{}, fmt.Errorf("%w: radius %v needs %d coefficients, got %d",
			ErrInvalidOperator, radius, n, len(coefficients))
	}
	return Operator[T]{
		radius: append([]int(nil), radius...),
		coeffs: append([]T(nil), coefficients...),
	}, nil
}

// Radius returns a copy of the radius per axis.
func (op Operator[T]) Radius() []int {
	return append([]int(nil), op.radius...)
}

// Coefficients returns a copy of the coefficients in raster order.
func (op Operator[T]) Coefficients() []T {
	return append([]T(nil), op.coeffs...)
}

// Size returns the extent 2·radius+1 along each axis.
func (op Operator[T]) Size() []int {
	size := make([]int, len(op.radius))
	for a, r := range op.radius {
		size[a] = 2*r + 1
	}
	return size
}

// Len returns the number of coefficients.
func (op Operator[T]) Len() int {
	return len(op.coeffs)
}

// Dims returns the number of axes, 0 for the empty operator.
func (op Operator[T]) Dims() int {
	return len(op.radius)
}

// IsEmpty returns true if the operator has no coefficients.
func (op Operator[T]) IsEmpty() bool {
	return len(op.coeffs) == 0
}

// Clone returns a deep copy of op.
func (op Operator[T]) Clone() Operator[T] {
	if op.IsEmpty() {
		return Operator[T]{}
	}
	return Operator[T]{
		radius: append([]int(nil), op.radius...),
		coeffs: append([]T(nil), op.coeffs...),
	}
}

// Offset returns the offset from the center of coefficient i.
func (op Operator[T]) Offset(i int) image.Index {
	o := make(image.Index, len(op.radius))
	for a, r := range op.radius {
		w := 2*r + 1
		o[a] = i%w - r
		i /= w
	}
	return o
}

// index returns the flat position of offset, or -1 if it lies outside.
func (op Operator[T]) index(offset image.Index) int {
	if len(offset) != len(op.radius) || op.IsEmpty() {
		return -1
	}
	i, stride := 0, 1
	for a, r := range op.radius {
		o := offset[a]
		if o < -r || o > r {
			return -1
		}
		i += (o + r) * stride
		stride *= 2*r + 1
	}
	return i
}

// At returns the coefficient at offset from the center, or zero if the
// offset lies outside the operator.
func (op Operator[T]) At(offset image.Index) T {
	i := op.index(offset)
	if i < 0 {
		return 0
	}
	return op.coeffs[i]
}

// Scale returns a copy of op with every coefficient multiplied by f.
func (op Operator[T]) Scale(f T) Operator[T] {
	out := op.Clone()
	for i := range out.coeffs {
		out.coeffs[i] *= f
	}
	return out
}

// Pad returns op embedded in a larger box with the given radius. The new
// coefficients are zero. Every entry of radius must be at least op's radius.
func Pad[T hwy.Floats](op Operator[T], radius []int) (Operator[T], error) {
	if op.IsEmpty() {
		return Operator[T]{}, fmt.Errorf("%w: cannot pad an empty operator", ErrInvalidOperator)
	}
	if len(radius) != op.Dims() {
		return Operator[T]{}, fmt.Errorf("%w: pad radius has %d axes, operator has %d", ErrInvalidOperator, len(radius), op.Dims())
	}
	n := 1
	for a, r := range radius {
		if r < op.radius[a] {
			return Operator[T]{}, fmt.Errorf("%w: pad radius %v smaller than %v", ErrInvalidOperator, radius, op.radius)
		}
		n *= 2*r + 1
	}
	out := Operator[T]{radius: append([]int(nil), radius...), coeffs: make([]T, n)}
	for i := range n {
		out.coeffs[i] = op.At(out.Offset(i))
	}
	return out, nil
}

// String returns a short description of the operator shape.
func (op Operator[T]) String() string {
	if op.IsEmpty() {
		return "Operator{}"
	}
	return fmt.Sprintf("Operator{radius: %v, len: %d}", op.radius, len(op.coeffs))
}
