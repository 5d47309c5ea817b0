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
	"github.com/ajroetker/go-neighborhood/hwy/contrib/interpolate"
)

// Workspace is per-call scratch memory that an evaluator lends to its
// ContinuousPolicy. Evaluators pool workspaces, so a policy must not keep
// any of its slices after Sample returns.
type Workspace struct {
	Center image.Index
	Cursor image.Index
	Tap    image.ContinuousIndex
	Interp interpolate.Workspace
}

// Reset sizes the workspace for dims axes, reusing its memory when large
// enough.
func (ws *Workspace) Reset(dims int) {
	if cap(ws.Cursor) < dims {
		ws.Center = make(image.Index, dims)
		ws.Cursor = make(image.Index, dims)
		ws.Tap = make(image.ContinuousIndex, dims)
	}
	ws.Center, ws.Cursor, ws.Tap = ws.Center[:dims], ws.Cursor[:dims], ws.Tap[:dims]
}

// ContinuousPolicy turns a sub-pixel query into the samples an operator is
// applied to. An evaluator's policy is fixed at construction.
//
// Sample writes one value per operator tap into dst, in operator raster
// order, for the operator with the given radius centered at ci. dst is
// empty when the operator is empty; implementations still validate ci.
// ws is sized for len(ci) axes.
type ContinuousPolicy[P hwy.Lanes, T hwy.Floats] interface {
	Name() string
	Sample(img *image.Image[P], ci image.ContinuousIndex, radius []int, dst []T, ws *Workspace) error
}

// SnapToNearest rounds ci to the nearest grid point (halves away from zero)
// and extracts the same view EvaluateAtIndex would. An integer-valued ci
// therefore yields exactly the EvaluateAtIndex result. Costs nothing beyond
// the rounding; accuracy is first order in the sub-pixel offset.
type SnapToNearest[P hwy.Lanes, T hwy.Floats] struct{}

// Name implements ContinuousPolicy.
func (SnapToNearest[P, T]) Name() string { return "nearest" }

// Sample implements ContinuousPolicy.
func (SnapToNearest[P, T]) Sample(img *image.Image[P], ci image.ContinuousIndex, radius []int, dst []T, ws *Workspace) error {
	if len(ci) != len(ws.Center) {
		return fmt.Errorf("%w: index %v, radius %v", ErrDimensionMismatch, ci, radius)
	}
	if !ci.RoundInto(ws.Center) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, ci)
	}
	if len(dst) == 0 {
		return nil
	}
	return fill(img, ws.Center, radius, dst, ws.Cursor)
}

// Blended samples every operator tap by multilinear interpolation at
// ci + offset. Each tap reads up to 2^D pixels, so evaluation costs 2^D
// times the snapped policy. Taps on grid points read a single pixel, so an
// integer-valued ci reproduces EvaluateAtIndex exactly.
type Blended[P hwy.Lanes, T hwy.Floats] struct{}

// Name implements ContinuousPolicy.
func (Blended[P, T]) Name() string { return "multilinear" }

// Sample implements ContinuousPolicy.
func (Blended[P, T]) Sample(img *image.Image[P], ci image.ContinuousIndex, radius []int, dst []T, ws *Workspace) error {
	if !ci.IsFinite() {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, ci)
	}
	if len(dst) == 0 {
		return nil
	}
	if len(ci) != len(radius) || len(ws.Tap) != len(radius) {
		return fmt.Errorf("%w: index %v, radius %v", ErrDimensionMismatch, ci, radius)
	}
	tap, offset := ws.Tap, ws.Cursor
	for a := range offset {
		offset[a] = -radius[a]
	}
	for i := range dst {
		for a := range tap {
			tap[a] = ci[a] + float64(offset[a])
		}
		v, err := interpolate.LinearWith[P, T](img, tap, &ws.Interp)
		if err != nil {
			return err
		}
		dst[i] = v
		for a := range offset {
			offset[a]++
			if offset[a] <= radius[a] {
				break
			}
			offset[a] = -radius[a]
		}
	}
	return nil
}

// Unimplemented is the policy of an evaluator that has no sub-pixel
// strategy. Every continuous-index or point query fails with an error
// wrapping ErrUnimplemented, rather than silently returning zero.
type Unimplemented[P hwy.Lanes, T hwy.Floats] struct{}

// Name implements ContinuousPolicy.
func (Unimplemented[P, T]) Name() string { return "unimplemented" }

// Sample implements ContinuousPolicy.
func (Unimplemented[P, T]) Sample(_ *image.Image[P], ci image.ContinuousIndex, _ []int, _ []T, _ *Workspace) error {
	return fmt.Errorf("%w: continuous index %v", ErrUnimplemented, ci)
}
