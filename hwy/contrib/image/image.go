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
	"fmt"

	"github.com/ajroetker/go-neighborhood/hwy"
	"gonum.org/v1/gonum/mat"
)

// Image is an N-dimensional array of pixels with SIMD-aligned rows.
// Axis 0 is the fastest varying axis; each row along axis 0 is padded to a
// multiple of the SIMD vector width.
//
// Besides storage, an Image carries the two policies point evaluators
// delegate to: the Boundary condition used for samples outside the buffered
// region, and the index-to-physical transform (origin, spacing, direction).
type Image[T hwy.Lanes] struct {
	data    []T
	region  Region
	strides []int // elements per step along each axis (includes padding)

	spacing   []float64
	origin    []float64
	direction *mat.Dense // nil means identity
	inverse   *mat.Dense // inverse of direction, nil means identity

	boundary Boundary[T]
}

// NewImage creates a new image with the specified size per axis.
// Rows are aligned to the SIMD vector width for optimal performance.
// A non-positive size on any axis yields an empty image.
//
// The boundary condition defaults to ZeroFlux.
func NewImage[T hwy.Lanes](size ...int) *Image[T] {
	dims := len(size)
	img := &Image[T]{
		region:   NewRegion(size...),
		strides:  make([]int, dims),
		spacing:  make([]float64, dims),
		origin:   make([]float64, dims),
		boundary: ZeroFlux[T]{},
	}
	for a := range img.spacing {
		img.spacing[a] = 1
	}
	if img.region.IsEmpty() {
		for a := range img.region.Size {
			img.region.Size[a] = 0
		}
		return img
	}

	lanes := max(hwy.MaxLanes[T](), 1)

	// Calculate stride (elements per row, rounded up to vector width)
	stride := ((size[0] + lanes - 1) / lanes) * lanes
	img.strides[0] = 1
	if dims > 1 {
		img.strides[1] = stride
	}
	for a := 2; a < dims; a++ {
		img.strides[a] = img.strides[a-1] * size[a-1]
	}

	total := stride
	if dims > 1 {
		total = img.strides[dims-1] * size[dims-1]
	}
	img.data = make([]T, total)
	return img
}

// Dims returns the number of axes.
func (img *Image[T]) Dims() int {
	return len(img.region.Size)
}

// Size returns a copy of the extent along each axis.
func (img *Image[T]) Size() []int {
	return append([]int(nil), img.region.Size...)
}

// Region returns the buffered region of the image.
func (img *Image[T]) Region() Region {
	return Region{Start: img.region.Start.Clone(), Size: img.Size()}
}

// SetStart moves the buffered region so its first pixel has index start.
// Pixel data is unchanged.
func (img *Image[T]) SetStart(start Index) error {
	if len(start) != img.Dims() {
		return fmt.Errorf("image: start has %d axes, image has %d", len(start), img.Dims())
	}
	img.region.Start = start.Clone()
	return nil
}

// ContainsBox returns true if every index within radius of center lies in
// the buffered region, so that no sample of the box needs the boundary
// condition.
func (img *Image[T]) ContainsBox(center Index, radius []int) bool {
	return img.region.ContainsBox(center, radius)
}

// Stride returns the number of elements between neighbors along axis.
func (img *Image[T]) Stride(axis int) int {
	return img.strides[axis]
}

// Boundary returns the boundary condition.
func (img *Image[T]) Boundary() Boundary[T] {
	return img.boundary
}

// SetBoundary replaces the boundary condition. A nil condition restores the
// default ZeroFlux condition.
func (img *Image[T]) SetBoundary(b Boundary[T]) {
	if b == nil {
		b = ZeroFlux[T]{}
	}
	img.boundary = b
}

// offset returns the position of idx in data. idx must be inside.
func (img *Image[T]) offset(idx Index) int {
	off := 0
	for a, v := range idx {
		off += (v - img.region.Start[a]) * img.strides[a]
	}
	return off
}

// Offset returns the position of idx within the backing buffer, and false
// if idx lies outside the buffered region.
func (img *Image[T]) Offset(idx Index) (int, bool) {
	if !img.region.IsInside(idx) {
		return 0, false
	}
	return img.offset(idx), true
}

// Data returns the backing buffer, including row padding.
func (img *Image[T]) Data() []T {
	return img.data
}

// Row returns the pixels along axis 0 from idx to the end of its row, as a
// mutable slice without the alignment padding. Returns nil if idx lies
// outside the buffered region.
func (img *Image[T]) Row(idx Index) []T {
	off, ok := img.Offset(idx)
	if !ok || img.data == nil {
		return nil
	}
	n := img.region.Start[0] + img.region.Size[0] - idx[0]
	return img.data[off : off+n]
}

// At returns the value at idx, or zero if idx is outside the image.
// At never consults the boundary condition; see Sample.
func (img *Image[T]) At(idx Index) T {
	off, ok := img.Offset(idx)
	if !ok || img.data == nil {
		var zero T
		return zero
	}
	return img.data[off]
}

// Set sets the value at idx. Out of bounds writes are ignored.
func (img *Image[T]) Set(idx Index, value T) {
	off, ok := img.Offset(idx)
	if !ok || img.data == nil {
		return
	}
	img.data[off] = value
}

// Sample returns the value at idx, extending the image with its boundary
// condition when idx lies outside the buffered region. The returned error
// wraps ErrOutOfBounds if the boundary condition cannot produce a value.
func (img *Image[T]) Sample(idx Index) (T, error) {
	if len(idx) != img.Dims() {
		var zero T
		return zero, fmt.Errorf("%w: index %v has %d axes, image has %d", ErrOutOfBounds, idx, len(idx), img.Dims())
	}
	if off, ok := img.Offset(idx); ok {
		return img.data[off], nil
	}
	return img.boundary.Value(img, idx)
}

// Clone creates a deep copy of the image, including its boundary
// condition and physical transform.
func (img *Image[T]) Clone() *Image[T] {
	clone := &Image[T]{
		data:     append([]T(nil), img.data...),
		region:   img.Region(),
		strides:  append([]int(nil), img.strides...),
		spacing:  append([]float64(nil), img.spacing...),
		origin:   append([]float64(nil), img.origin...),
		boundary: img.boundary,
	}
	if img.direction != nil {
		clone.direction = mat.DenseCopyOf(img.direction)
		clone.inverse = mat.DenseCopyOf(img.inverse)
	}
	return clone
}

// Clear sets all pixels to zero.
func (img *Image[T]) Clear() {
	clear(img.data)
}

// Fill sets all pixels to the specified value.
func (img *Image[T]) Fill(value T) {
	for i := range img.data {
		img.data[i] = value
	}
}

// ForEachIndex calls fn for every index in the region in raster order
// (axis 0 fastest). The Index passed to fn is reused between calls.
func ForEachIndex(r Region, fn func(idx Index)) {
	n := r.NumberOfPixels()
	if n == 0 {
		return
	}
	idx := r.Start.Clone()
	for range n {
		fn(idx)
		for a := range idx {
			idx[a]++
			if idx[a] < r.Start[a]+r.Size[a] {
				break
			}
			idx[a] = r.Start[a]
		}
	}
}
