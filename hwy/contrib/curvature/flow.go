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


// Package curvature computes the binary min/max curvature flow update, a
// denoising step for binary images built from neighborhood operator
// evaluations.
//
// At each pixel the level-set curvature term
//
//	u = (|g|²·tr(H) - gᵀHg) / |g|²
//
// is formed from the central-difference gradient g and Hessian H. The
// average a of the pixel's stencil then selects the branch of the flow:
// min(u, 0) when a is below the threshold, max(u, 0) otherwise. Regions
// above the threshold can only grow and regions below it can only shrink,
// which removes small islands without moving straight edges.
package curvature

import (
	"context"
	"fmt"
	"math"

	"github.com/ajroetker/go-neighborhood/hwy"
	"github.com/ajroetker/go-neighborhood/hwy/contrib/image"
	"github.com/ajroetker/go-neighborhood/hwy/contrib/neighborhood"
	"github.com/ajroetker/go-neighborhood/hwy/contrib/workerpool"
)

// DefaultStencilRadius is the stencil radius of a new Function.
const DefaultStencilRadius = 2

// minGradient2 is the squared gradient magnitude below which the update
// is zero.
const minGradient2 = 1e-9

// Function computes min/max curvature flow updates of an image. Derivatives
// near the border use the image's boundary condition; the flow is defined
// for image.ZeroFlux.
//
// A Function is safe for concurrent ComputeUpdate calls once configured.
type Function[P hwy.Lanes, T hwy.Floats] struct {
	dims          int
	threshold     float64
	stencilRadius int

	gradient *neighborhood.Bank[P, T]
	hessian  *neighborhood.Bank[P, T] // upper triangle, row by row
	stencil  *neighborhood.Evaluator[P, T]
}

// New returns a curvature flow function for dims-dimensional images with
// threshold 0 and DefaultStencilRadius. Options configure the underlying
// evaluators.
func New[P hwy.Lanes, T hwy.Floats](dims int, opts ...neighborhood.Option[P, T]) (*Function[P, T], error) {
	if dims < 1 {
		return nil, fmt.Errorf("curvature: %d dimensions", dims)
	}
	gradient, err := neighborhood.NewGradient(dims, opts...)
	if err != nil {
		return nil, err
	}
	var second []neighborhood.Operator[T]
	for a := range dims {
		for b := a; b < dims; b++ {
			op, err := neighborhood.MixedDerivative[T](dims, a, b)
			if err != nil {
				return nil, err
			}
			second = append(second, op)
		}
	}
	hessian, err := neighborhood.NewBank(dims, second, opts...)
	if err != nil {
		return nil, err
	}
	f := &Function[P, T]{
		dims:     dims,
		gradient: gradient,
		hessian:  hessian,
		stencil:  neighborhood.New(dims, opts...),
	}
	if err := f.SetStencilRadius(DefaultStencilRadius); err != nil {
		return nil, err
	}
	return f, nil
}

// SetThreshold sets the stencil average that separates the two branches
// of the flow.
func (f *Function[P, T]) SetThreshold(threshold float64) {
	f.threshold = threshold
}

// Threshold returns the branch threshold.
func (f *Function[P, T]) Threshold() float64 {
	return f.threshold
}

// SetStencilRadius sets the radius of the box over which the stencil
// average is taken.
func (f *Function[P, T]) SetStencilRadius(radius int) error {
	op, err := neighborhood.Box[T](f.dims, radius)
	if err != nil {
		return err
	}
	f.stencilRadius = radius
	return f.stencil.SetOperator(op)
}

// StencilRadius returns the stencil radius.
func (f *Function[P, T]) StencilRadius() int {
	return f.stencilRadius
}

// SetInputImage binds img to every evaluator of f.
func (f *Function[P, T]) SetInputImage(img *image.Image[P]) error {
	if err := f.gradient.SetInputImage(img); err != nil {
		return err
	}
	if err := f.hessian.SetInputImage(img); err != nil {
		return err
	}
	return f.stencil.SetInputImage(img)
}

// ComputeUpdate returns the flow update at idx.
func (f *Function[P, T]) ComputeUpdate(idx image.Index) (T, error) {
	g, err := f.gradient.EvaluateAtIndex(idx)
	if err != nil {
		return 0, err
	}
	h, err := f.hessian.EvaluateAtIndex(idx)
	if err != nil {
		return 0, err
	}
	avg, err := f.stencil.EvaluateAtIndex(idx)
	if err != nil {
		return 0, err
	}

	u := f.curvature(g, h)
	if float64(avg) < f.threshold {
		return min(u, 0), nil
	}
	return max(u, 0), nil
}

// curvature returns (|g|²·tr(H) - gᵀHg) / |g|², with h holding the upper
// triangle of H row by row.
func (f *Function[P, T]) curvature(g, h []T) T {
	var g2 float64
	for _, v := range g {
		g2 += float64(v) * float64(v)
	}
	if g2 < minGradient2 {
		return 0
	}
	var trace, quad float64
	k := 0
	for a := range f.dims {
		for b := a; b < f.dims; b++ {
			hab := float64(h[k])
			k++
			if a == b {
				trace += hab
				quad += float64(g[a]) * float64(g[a]) * hab
			} else {
				quad += 2 * float64(g[a]) * float64(g[b]) * hab
			}
		}
	}
	return T((g2*trace - quad) / g2)
}

// Step applies one explicit time step of length dt to every pixel of img
// and returns the result as a new image with img's geometry. Updates are
// computed on pool, or on the calling goroutine when pool is nil.
//
// The function's input image is img for the duration of the call.
func (f *Function[P, T]) Step(ctx context.Context, pool *workerpool.Pool, img *image.Image[P], dt T) (*image.Image[P], error) {
	if math.IsNaN(float64(dt)) || math.IsInf(float64(dt), 0) {
		return nil, fmt.Errorf("curvature: time step %v", dt)
	}
	if err := f.SetInputImage(img); err != nil {
		return nil, err
	}
	region := img.Region()
	indices := make([]image.Index, 0, region.NumberOfPixels())
	image.ForEachIndex(region, func(idx image.Index) {
		indices = append(indices, idx.Clone())
	})

	updates, err := neighborhood.EvaluateIndices[T](ctx, pool, updateFunc[P, T]{f}, indices)
	if err != nil {
		return nil, err
	}
	out := img.Clone()
	for i, idx := range indices {
		out.Set(idx, P(T(img.At(idx))+dt*updates[i]))
	}
	return out, nil
}

// updateFunc adapts ComputeUpdate to neighborhood.Function so that batch
// evaluation can drive it. Only EvaluateAtIndex is meaningful.
type updateFunc[P hwy.Lanes, T hwy.Floats] struct {
	f *Function[P, T]
}

func (u updateFunc[P, T]) EvaluateAtIndex(idx image.Index) (T, error) {
	return u.f.ComputeUpdate(idx)
}

func (u updateFunc[P, T]) EvaluateAtContinuousIndex(ci image.ContinuousIndex) (T, error) {
	idx, ok := ci.Round()
	if !ok {
		return 0, fmt.Errorf("%w: %v", neighborhood.ErrOutOfBounds, ci)
	}
	return u.f.ComputeUpdate(idx)
}

func (u updateFunc[P, T]) Evaluate(image.Point) (T, error) {
	return 0, fmt.Errorf("%w: curvature updates are defined on the grid", neighborhood.ErrUnimplemented)
}
