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

// Package interpolate samples images between grid points.
//
// Both samplers read pixels through Image.Sample, so the image's boundary
// condition decides the value of any corner outside the buffered region.
//
//	v, err := interpolate.Linear[float32, float64](img, image.ContinuousIndex{2.5, 3.25})
package interpolate

import (
	"fmt"
	"math"

	"github.com/ajroetker/go-neighborhood/hwy"
	"github.com/ajroetker/go-neighborhood/hwy/contrib/image"
)

// maxLinearDims bounds the 2^D corner loop of Linear.
const maxLinearDims = 16

// Nearest returns the pixel whose center is closest to ci, rounding halves
// away from zero.
func Nearest[P hwy.Lanes, T hwy.Floats](img *image.Image[P], ci image.ContinuousIndex) (T, error) {
	idx, ok := ci.Round()
	if !ok {
		return 0, fmt.Errorf("%w: %v", image.ErrOutOfBounds, ci)
	}
	v, err := img.Sample(idx)
	if err != nil {
		return 0, err
	}
	return T(v), nil
}

// Workspace holds the scratch indices of multilinear interpolation so that
// repeated calls reuse them. The zero value is ready to use. A Workspace
// must not be shared between goroutines.
type Workspace struct {
	base   image.Index
	corner image.Index
	frac   []float64
}

func (ws *Workspace) reset(dims int) {
	if cap(ws.base) < dims {
		ws.base = make(image.Index, dims)
		ws.corner = make(image.Index, dims)
		ws.frac = make([]float64, dims)
	}
	ws.base, ws.corner, ws.frac = ws.base[:dims], ws.corner[:dims], ws.frac[:dims]
}

// Linear returns the multilinear interpolation of img at ci, weighting the
// 2^D surrounding pixels by their distance to ci. Corners with zero weight
// are not sampled, so an integer-valued ci reads exactly one pixel and
// returns it unchanged.
func Linear[P hwy.Lanes, T hwy.Floats](img *image.Image[P], ci image.ContinuousIndex) (T, error) {
	return LinearWith[P, T](img, ci, new(Workspace))
}

// LinearWith is Linear using the scratch memory of ws.
func LinearWith[P hwy.Lanes, T hwy.Floats](img *image.Image[P], ci image.ContinuousIndex, ws *Workspace) (T, error) {
	dims := len(ci)
	if dims != img.Dims() {
		return 0, fmt.Errorf("%w: index has %d axes, image has %d", image.ErrOutOfBounds, dims, img.Dims())
	}
	if dims > maxLinearDims {
		return 0, fmt.Errorf("interpolate: %d axes exceed the supported %d", dims, maxLinearDims)
	}
	if !ci.IsFinite() {
		return 0, fmt.Errorf("%w: %v", image.ErrOutOfBounds, ci)
	}

	ws.reset(dims)
	base, corner, frac := ws.base, ws.corner, ws.frac
	for a, v := range ci {
		f := math.Floor(v)
		if f < math.MinInt32 || f > math.MaxInt32 {
			return 0, fmt.Errorf("%w: %v", image.ErrOutOfBounds, ci)
		}
		base[a] = int(f)
		frac[a] = v - f
	}

	var value T
	for mask := range 1 << dims {
		w := 1.0
		for a := range dims {
			if mask&(1<<a) != 0 {
				corner[a] = base[a] + 1
				w *= frac[a]
			} else {
				corner[a] = base[a]
				w *= 1 - frac[a]
			}
		}
		if w == 0 {
			continue
		}
		v, err := img.Sample(corner)
		if err != nil {
			return 0, err
		}
		value += T(w) * T(v)
	}
	return value, nil
}
