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

	"github.com/ajroetker/go-neighborhood/hwy"
)

// ErrOutOfBounds is returned when a sample is requested at an index that the
// image's boundary condition cannot service.
var ErrOutOfBounds = errors.New("index out of bounds")

// Boundary produces pixel values for indices outside an image's buffered
// region. Implementations must be safe for concurrent use.
type Boundary[T hwy.Lanes] interface {
	// Value returns the extended value at idx, which lies outside the
	// buffered region of img.
	Value(img *Image[T], idx Index) (T, error)
}

// Constant pads the image with a fixed value. The zero value pads with 0.
type Constant[T hwy.Lanes] struct {
	Pad T
}

// Value implements Boundary.
func (c Constant[T]) Value(*Image[T], Index) (T, error) {
	return c.Pad, nil
}

// ZeroFlux repeats the nearest edge pixel (Neumann condition, zero first
// derivative across the border).
type ZeroFlux[T hwy.Lanes] struct{}

// Value implements Boundary.
func (ZeroFlux[T]) Value(img *Image[T], idx Index) (T, error) {
	return remapValue(img, idx, Clamp)
}

// Mirrored reflects the image about its edges, repeating the edge pixel.
type Mirrored[T hwy.Lanes] struct{}

// Value implements Boundary.
func (Mirrored[T]) Value(img *Image[T], idx Index) (T, error) {
	return remapValue(img, idx, Mirror)
}

// Periodic tiles the image.
type Periodic[T hwy.Lanes] struct{}

// Value implements Boundary.
func (Periodic[T]) Value(img *Image[T], idx Index) (T, error) {
	return remapValue(img, idx, Wrap)
}

// Strict refuses every sample outside the buffered region.
type Strict[T hwy.Lanes] struct{}

// Value implements Boundary.
func (Strict[T]) Value(img *Image[T], idx Index) (T, error) {
	var zero T
	return zero, fmt.Errorf("%w: %v not in region %v", ErrOutOfBounds, idx, img.region)
}

// remapValue folds every coordinate of idx back into the region with fn and
// returns the pixel there.
func remapValue[T hwy.Lanes](img *Image[T], idx Index, fn func(index, size int) int) (T, error) {
	var zero T
	if img.data == nil {
		return zero, fmt.Errorf("%w: image is empty", ErrOutOfBounds)
	}
	off := 0
	for a, v := range idx {
		start := img.region.Start[a]
		off += fn(v-start, img.region.Size[a]) * img.strides[a]
	}
	return img.data[off], nil
}

// Mirror returns the mirrored index for out-of-bounds coordinates.
// Given bounds [0, size), mirrors index to stay within bounds.
func Mirror(index, size int) int {
	if size <= 0 {
		return 0
	}
	if index < 0 {
		index = -index - 1
	}
	if index >= size {
		// Wrap around using modulo with mirroring
		period := 2 * size
		index = index % period
		if index >= size {
			index = period - index - 1
		}
	}
	return index
}

// Clamp returns index clamped to [0, size-1].
func Clamp(index, size int) int {
	if index < 0 {
		return 0
	}
	if index >= size {
		return size - 1
	}
	return index
}

// Wrap returns index wrapped to [0, size) using modulo.
func Wrap(index, size int) int {
	if size <= 0 {
		return 0
	}
	index = index % size
	if index < 0 {
		index += size
	}
	return index
}
