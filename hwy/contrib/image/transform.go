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

package image

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrInvalidGeometry is returned for spacing, origin or direction values
// that do not describe an invertible index-to-physical mapping.
var ErrInvalidGeometry = errors.New("invalid image geometry")

// Physical coordinates relate to index coordinates by
//
//	point = origin + direction · (spacing ∘ index)
//
// where ∘ is the element-wise product.

// Spacing returns a copy of the distance between pixels along each axis.
func (img *Image[T]) Spacing() []float64 {
	return append([]float64(nil), img.spacing...)
}

// SetSpacing sets the distance between pixels along each axis. Every
// entry must be finite and positive.
func (img *Image[T]) SetSpacing(spacing ...float64) error {
	if len(spacing) != img.Dims() {
		return fmt.Errorf("%w: spacing has %d axes, image has %d", ErrInvalidGeometry, len(spacing), img.Dims())
	}
	for a, s := range spacing {
		if !(s > 0) || math.IsInf(s, 0) {
			return fmt.Errorf("%w: spacing[%d] = %v", ErrInvalidGeometry, a, s)
		}
	}
	img.spacing = append(img.spacing[:0], spacing...)
	return nil
}

// Origin returns a copy of the physical position of index zero.
func (img *Image[T]) Origin() Point {
	return append(Point(nil), img.origin...)
}

// SetOrigin sets the physical position of index zero.
func (img *Image[T]) SetOrigin(origin ...float64) error {
	if len(origin) != img.Dims() {
		return fmt.Errorf("%w: origin has %d axes, image has %d", ErrInvalidGeometry, len(origin), img.Dims())
	}
	img.origin = append(img.origin[:0], origin...)
	return nil
}

// Direction returns a copy of the direction cosine matrix, row-major.
func (img *Image[T]) Direction() []float64 {
	d := img.Dims()
	out := make([]float64, d*d)
	if img.direction == nil {
		for a := range d {
			out[a*d+a] = 1
		}
		return out
	}
	for r := range d {
		for c := range d {
			out[r*d+c] = img.direction.At(r, c)
		}
	}
	return out
}

// SetDirection sets the direction cosine matrix from a row-major D×D slice.
// The matrix must be invertible. A nil slice restores the identity.
func (img *Image[T]) SetDirection(rowMajor []float64) error {
	if rowMajor == nil {
		img.direction, img.inverse = nil, nil
		return nil
	}
	d := img.Dims()
	if d == 0 || len(rowMajor) != d*d {
		return fmt.Errorf("%w: direction has %d entries, want %d", ErrInvalidGeometry, len(rowMajor), d*d)
	}
	dir := mat.NewDense(d, d, append([]float64(nil), rowMajor...))
	var inv mat.Dense
	if err := inv.Inverse(dir); err != nil {
		return fmt.Errorf("%w: direction is singular: %v", ErrInvalidGeometry, err)
	}
	img.direction, img.inverse = dir, &inv
	return nil
}

// PointToContinuousIndex maps a physical point to index space.
func (img *Image[T]) PointToContinuousIndex(p Point) (ContinuousIndex, error) {
	d := img.Dims()
	if len(p) != d {
		return nil, fmt.Errorf("%w: point has %d axes, image has %d", ErrOutOfBounds, len(p), d)
	}
	rel := make([]float64, d)
	for a := range d {
		rel[a] = p[a] - img.origin[a]
	}
	if img.inverse != nil {
		v := mat.NewVecDense(d, rel)
		v.MulVec(img.inverse, mat.VecDenseCopyOf(v))
		rel = v.RawVector().Data
	}
	ci := make(ContinuousIndex, d)
	for a := range d {
		ci[a] = rel[a] / img.spacing[a]
	}
	return ci, nil
}

// ContinuousIndexToPoint maps an index-space location to physical space.
func (img *Image[T]) ContinuousIndexToPoint(ci ContinuousIndex) (Point, error) {
	d := img.Dims()
	if len(ci) != d {
		return nil, fmt.Errorf("%w: index has %d axes, image has %d", ErrOutOfBounds, len(ci), d)
	}
	scaled := make([]float64, d)
	for a := range d {
		scaled[a] = ci[a] * img.spacing[a]
	}
	if img.direction != nil {
		v := mat.NewVecDense(d, scaled)
		v.MulVec(img.direction, mat.VecDenseCopyOf(v))
		scaled = v.RawVector().Data
	}
	p := make(Point, d)
	for a := range d {
		p[a] = img.origin[a] + scaled[a]
	}
	return p, nil
}

// IndexToPoint maps a grid index to physical space.
func (img *Image[T]) IndexToPoint(idx Index) (Point, error) {
	return img.ContinuousIndexToPoint(FromIndex(idx))
}
