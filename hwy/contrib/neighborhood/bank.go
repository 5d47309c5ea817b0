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

// Bank evaluates several operators at the same location and returns one
// result per operator. Operators are padded with zeros to a common radius
// so that a single sample view serves all of them.
//
// Padding widens the box that is read, so with a Strict boundary a bank
// fails at locations where its smallest operator alone would not.
type Bank[P hwy.Lanes, T hwy.Floats] struct {
	ev         *Evaluator[P, T]
	radius     []int
	rows       [][]T
	useSpacing bool
}

// NewBank returns a bank over ops, which must be non-empty and share the
// evaluator dimension dims. Options configure the shared evaluator.
func NewBank[P hwy.Lanes, T hwy.Floats](dims int, ops []Operator[T], opts ...Option[P, T]) (*Bank[P, T], error) {
	if len(ops) == 0 {
		return nil, fmt.Errorf("%w: empty operator bank", ErrInvalidOperator)
	}
	radius := make([]int, dims)
	for i, op := range ops {
		if op.IsEmpty() || op.Dims() != dims {
			return nil, fmt.Errorf("%w: bank operator %d is %v, want %d axes", ErrInvalidOperator, i, op, dims)
		}
		for a, r := range op.radius {
			radius[a] = max(radius[a], r)
		}
	}
	b := &Bank[P, T]{
		ev:     New[P, T](dims, opts...),
		radius: radius,
		rows:   make([][]T, len(ops)),
	}
	for i, op := range ops {
		padded, err := Pad(op, radius)
		if err != nil {
			return nil, err
		}
		b.rows[i] = padded.coeffs
	}
	// The evaluator's own operator fixes the view shape.
	if err := b.ev.SetOperator(Operator[T]{radius: radius, coeffs: make([]T, len(b.rows[0]))}); err != nil {
		return nil, err
	}
	return b, nil
}

// NewGradient returns a bank of first-order central differences, one per
// axis. Results are in intensity per pixel unless SetUseImageSpacing(true)
// is called.
func NewGradient[P hwy.Lanes, T hwy.Floats](dims int, opts ...Option[P, T]) (*Bank[P, T], error) {
	ops := make([]Operator[T], dims)
	for a := range dims {
		op, err := Derivative[T](dims, a, 1)
		if err != nil {
			return nil, err
		}
		ops[a] = op
	}
	return NewBank(dims, ops, opts...)
}

// SetUseImageSpacing selects whether component a of every result is divided
// by the image spacing along axis a. Use it for gradient banks to obtain
// derivatives in physical units. Components beyond the image dimension are
// left unscaled.
func (b *Bank[P, T]) SetUseImageSpacing(use bool) {
	b.useSpacing = use
}

// SetInputImage binds img to the bank.
func (b *Bank[P, T]) SetInputImage(img *image.Image[P]) error {
	return b.ev.SetInputImage(img)
}

// Len returns the number of operators.
func (b *Bank[P, T]) Len() int {
	return len(b.rows)
}

// Operator returns a copy of operator i, padded to the bank radius.
func (b *Bank[P, T]) Operator(i int) Operator[T] {
	return Operator[T]{radius: append([]int(nil), b.radius...), coeffs: append([]T(nil), b.rows[i]...)}
}

func (b *Bank[P, T]) finish(buf *scratch[T]) []T {
	out := make([]T, len(b.rows))
	hwy.DotBatch(out, b.rows, buf.samples)
	if b.useSpacing {
		spacing := b.ev.image.Spacing()
		for a := range min(len(out), len(spacing)) {
			out[a] /= T(spacing[a])
		}
	}
	return out
}

// EvaluateAtIndex returns the response of every operator at idx.
func (b *Bank[P, T]) EvaluateAtIndex(idx image.Index) ([]T, error) {
	e := b.ev
	if err := e.check(len(idx)); err != nil {
		return nil, err
	}
	buf := e.buffer(len(b.rows[0]))
	defer e.scratch.Put(buf)
	if err := fill(e.image, idx, b.radius, buf.samples, buf.ws.Cursor); err != nil {
		return nil, err
	}
	return b.finish(buf), nil
}

// EvaluateAtContinuousIndex returns the response of every operator at ci,
// sampled with the bank's ContinuousPolicy.
func (b *Bank[P, T]) EvaluateAtContinuousIndex(ci image.ContinuousIndex) ([]T, error) {
	e := b.ev
	if err := e.check(len(ci)); err != nil {
		return nil, err
	}
	buf := e.buffer(len(b.rows[0]))
	defer e.scratch.Put(buf)
	if err := e.policy.Sample(e.image, ci, b.radius, buf.samples, &buf.ws); err != nil {
		return nil, err
	}
	return b.finish(buf), nil
}

// Evaluate returns the response of every operator at a physical point.
func (b *Bank[P, T]) Evaluate(p image.Point) ([]T, error) {
	e := b.ev
	if err := e.check(len(p)); err != nil {
		return nil, err
	}
	ci, err := e.image.PointToContinuousIndex(p)
	if err != nil {
		return nil, err
	}
	return b.EvaluateAtContinuousIndex(ci)
}
