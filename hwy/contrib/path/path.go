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


// Package path describes continuous curves through image index space and
// walks them pixel by pixel.
//
// A Parametric path maps a scalar input t in [StartOfInput, EndOfInput] to
// a continuous index. IncrementInput advances t until the nearest pixel
// changes to a vertex-connected neighbor (8-connected in 2-D), which lets
// Probe sample a neighborhood function once per pixel along the curve.
package path

import (
	"errors"
	"fmt"
	"math"

	"github.com/ajroetker/go-neighborhood/hwy/contrib/image"
)

// DefaultInputStep is the initial input step of IncrementInput and the
// step of the numerical derivative.
const DefaultInputStep = 0.3

// maxIncrementIterations bounds the step search of IncrementInput.
const maxIncrementIterations = 10000

// ErrNoConvergence is returned when IncrementInput cannot find a step that
// moves the path by exactly one neighbor.
var ErrNoConvergence = errors.New("path: input increment did not converge")

// Curve is the part of a path that concrete shapes implement. The helper
// functions in this package derive the rest of Parametric from it.
type Curve interface {
	Dims() int
	StartOfInput() float64
	EndOfInput() float64
	Evaluate(t float64) image.ContinuousIndex
}

// Parametric is a continuous path through index space.
type Parametric interface {
	Curve

	// EvaluateToIndex returns the pixel nearest to Evaluate(t).
	EvaluateToIndex(t float64) image.Index

	// EvaluateDerivative returns d Evaluate / dt.
	EvaluateDerivative(t float64) []float64

	// IncrementInput returns the input at which the path first reaches a
	// neighbor of the pixel at t, and the offset to that neighbor. At the
	// end of the path it returns t and a zero offset.
	IncrementInput(t float64) (next float64, offset image.Index, err error)
}

// NearestIndex rounds every coordinate of c.Evaluate(t) half away from zero.
func NearestIndex(c Curve, t float64) image.Index {
	ci := c.Evaluate(t)
	idx := make(image.Index, len(ci))
	for a, v := range ci {
		idx[a] = int(math.Round(v))
	}
	return idx
}

// NumericDerivative approximates the derivative of c at t with a forward
// difference over DefaultInputStep.
func NumericDerivative(c Curve, t float64) []float64 {
	a, b := c.Evaluate(t), c.Evaluate(t+DefaultInputStep)
	d := make([]float64, len(a))
	for i := range d {
		d[i] = (b[i] - a[i]) / DefaultInputStep
	}
	return d
}

// Increment searches for the smallest input after t at which the nearest
// pixel of c moves to a neighbor of NearestIndex(c, t). The step starts at
// DefaultInputStep, doubles while the pixel does not change and shrinks
// while it jumps by more than one along any axis.
//
// The end point of c must be unique or shared only with its start.
func Increment(c Curve, t float64) (float64, image.Index, error) {
	end := c.EndOfInput()
	current := NearestIndex(c, t)
	zero := make(image.Index, len(current))
	offset := sub(NearestIndex(c, end), current)
	if (isZero(offset) && t != c.StartOfInput()) || t >= end {
		return t, zero, nil
	}

	step := DefaultInputStep
	for range maxIncrementIterations {
		offset = sub(NearestIndex(c, t+step), current)
		if isZero(offset) {
			step *= 2
			if t+step >= end {
				step = end - t
			}
			continue
		}
		if isNeighbor(offset) {
			return t + step, offset, nil
		}
		step /= 1.5
	}
	return t, zero, fmt.Errorf("%w after %d steps from t=%v", ErrNoConvergence, maxIncrementIterations, t)
}

func sub(a, b image.Index) image.Index {
	out := make(image.Index, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

func isZero(o image.Index) bool {
	for _, v := range o {
		if v != 0 {
			return false
		}
	}
	return true
}

func isNeighbor(o image.Index) bool {
	for _, v := range o {
		if v >= 2 || v <= -2 {
			return false
		}
	}
	return true
}
