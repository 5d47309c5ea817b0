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

// View is a read-only window of image samples around a center index,
// flattened in the same raster order as Operator coefficients.
type View[T hwy.Floats] struct {
	center  image.Index
	radius  []int
	samples []T
}

// NewView extracts the samples within radius of center. Samples outside
// the image's buffered region come from the image's boundary condition.
func NewView[P hwy.Lanes, T hwy.Floats](img *image.Image[P], center image.Index, radius []int) (View[T], error) {
	n := 1
	for _, r := range radius {
		n *= 2*r + 1
	}
	v := View[T]{
		center:  center.Clone(),
		radius:  append([]int(nil), radius...),
		samples: make([]T, n),
	}
	if err := fill(img, center, radius, v.samples, make(image.Index, len(radius))); err != nil {
		return View[T]{}, err
	}
	return v, nil
}

// Center returns a copy of the center index.
func (v View[T]) Center() image.Index {
	return v.center.Clone()
}

// Radius returns a copy of the radius per axis.
func (v View[T]) Radius() []int {
	return append([]int(nil), v.radius...)
}

// Len returns the number of samples.
func (v View[T]) Len() int {
	return len(v.samples)
}

// At returns sample i in raster order.
func (v View[T]) At(i int) T {
	return v.samples[i]
}

// Values returns a copy of the samples in raster order.
func (v View[T]) Values() []T {
	return append([]T(nil), v.samples...)
}

// InnerProduct returns Σ op[i]·v[i]. The operator must have the view's
// radius.
func (v View[T]) InnerProduct(op Operator[T]) (T, error) {
	if len(op.radius) != len(v.radius) {
		return 0, fmt.Errorf("%w: operator radius %v, view radius %v", ErrDimensionMismatch, op.radius, v.radius)
	}
	for a, r := range op.radius {
		if r != v.radius[a] {
			return 0, fmt.Errorf("%w: operator radius %v, view radius %v", ErrDimensionMismatch, op.radius, v.radius)
		}
	}
	return hwy.Dot(op.coeffs, v.samples), nil
}

// fill writes the samples within radius of center into dst in raster
// order. cursor is scratch space with len(radius) entries.
//
// When the whole box lies inside the buffered region the samples are copied
// row by row along axis 0; otherwise every sample goes through Image.Sample
// and the boundary condition.
func fill[P hwy.Lanes, T hwy.Floats](img *image.Image[P], center image.Index, radius []int, dst []T, cursor image.Index) error {
	dims := len(radius)
	if len(center) != dims || img.Dims() != dims {
		return fmt.Errorf("%w: center %v, radius %v, image has %d axes", ErrDimensionMismatch, center, radius, img.Dims())
	}
	if len(dst) == 0 {
		return nil
	}
	for a := range dims {
		cursor[a] = center[a] - radius[a]
	}

	if img.ContainsBox(center, radius) {
		width := 2*radius[0] + 1
		for i := 0; i < len(dst); i += width {
			row := img.Row(cursor)
			for x := range width {
				dst[i+x] = T(row[x])
			}
			for a := 1; a < dims; a++ {
				cursor[a]++
				if cursor[a] <= center[a]+radius[a] {
					break
				}
				cursor[a] = center[a] - radius[a]
			}
		}
		return nil
	}

	for i := range dst {
		v, err := img.Sample(cursor)
		if err != nil {
			return err
		}
		dst[i] = T(v)
		for a := range dims {
			cursor[a]++
			if cursor[a] <= center[a]+radius[a] {
				break
			}
			cursor[a] = center[a] - radius[a]
		}
	}
	return nil
}
