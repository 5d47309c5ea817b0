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
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ajroetker/go-neighborhood/hwy"
	"github.com/ajroetker/go-neighborhood/hwy/contrib/image"
)

// Function is a scalar function of an image that can be evaluated at a
// grid index, a continuous index, or a physical point.
type Function[T hwy.Floats] interface {
	EvaluateAtIndex(idx image.Index) (T, error)
	EvaluateAtContinuousIndex(ci image.ContinuousIndex) (T, error)
	Evaluate(p image.Point) (T, error)
}

var _ Function[float64] = (*Evaluator[float32, float64])(nil)

// Evaluator computes the response of an Operator at single locations of an
// image, without filtering the whole image.
//
// The evaluator holds a non-owning reference to its input image and a
// private copy of its operator. Evaluation only reads both, so any number
// of goroutines may evaluate concurrently. SetOperator and SetInputImage
// are not synchronized: the caller must not run them concurrently with
// each other or with evaluation.
type Evaluator[P hwy.Lanes, T hwy.Floats] struct {
	dims     int
	image    *image.Image[P]
	operator Operator[T]
	policy   ContinuousPolicy[P, T]
	logger   *slog.Logger

	scratch    sync.Pool // *scratch[T]
	warnPolicy sync.Once
}

// Option configures an Evaluator.
type Option[P hwy.Lanes, T hwy.Floats] func(*Evaluator[P, T])

// WithContinuousPolicy sets the sub-pixel policy used by
// EvaluateAtContinuousIndex and Evaluate. The default is SnapToNearest.
// A nil policy installs Unimplemented.
func WithContinuousPolicy[P hwy.Lanes, T hwy.Floats](policy ContinuousPolicy[P, T]) Option[P, T] {
	return func(e *Evaluator[P, T]) {
		if policy == nil {
			policy = Unimplemented[P, T]{}
		}
		e.policy = policy
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger[P hwy.Lanes, T hwy.Floats](logger *slog.Logger) Option[P, T] {
	return func(e *Evaluator[P, T]) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New returns an evaluator for images with dims axes, pixels of type P and
// results of type T. It has no image and an empty operator.
func New[P hwy.Lanes, T hwy.Floats](dims int, opts ...Option[P, T]) *Evaluator[P, T] {
	e := &Evaluator[P, T]{
		dims:   dims,
		policy: SnapToNearest[P, T]{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dims returns the dimension the evaluator was built for.
func (e *Evaluator[P, T]) Dims() int {
	return e.dims
}

// Policy returns the continuous-index policy.
func (e *Evaluator[P, T]) Policy() ContinuousPolicy[P, T] {
	return e.policy
}

// SetInputImage binds img, replacing any previous image. The image must
// have the evaluator's dimension. Passing nil unbinds the image.
func (e *Evaluator[P, T]) SetInputImage(img *image.Image[P]) error {
	if img != nil && img.Dims() != e.dims {
		return fmt.Errorf("%w: image has %d axes, evaluator has %d", ErrDimensionMismatch, img.Dims(), e.dims)
	}
	e.image = img
	return nil
}

// InputImage returns the bound image, or nil.
func (e *Evaluator[P, T]) InputImage() *image.Image[P] {
	return e.image
}

// SetOperator replaces the operator with a copy of op. Later changes to
// the caller's data do not affect the evaluator. An empty operator is
// allowed and makes every evaluation return zero.
func (e *Evaluator[P, T]) SetOperator(op Operator[T]) error {
	if op.IsEmpty() {
		e.logger.Debug("neighborhood operator is empty; evaluations return zero", "dims", e.dims)
		e.operator = Operator[T]{}
		return nil
	}
	if op.Dims() != e.dims {
		return fmt.Errorf("%w: operator has %d axes, evaluator has %d", ErrDimensionMismatch, op.Dims(), e.dims)
	}
	e.operator = op.Clone()
	return nil
}

// Operator returns a copy of the current operator.
func (e *Evaluator[P, T]) Operator() Operator[T] {
	return e.operator.Clone()
}

// IsInsideBuffer returns true if idx lies in the bound image's buffered
// region.
func (e *Evaluator[P, T]) IsInsideBuffer(idx image.Index) bool {
	return e.image != nil && e.image.Region().IsInside(idx)
}

func (e *Evaluator[P, T]) check(n int) error {
	if e.image == nil {
		return ErrNotInitialized
	}
	if n != e.dims {
		return fmt.Errorf("%w: location has %d axes, evaluator has %d", ErrDimensionMismatch, n, e.dims)
	}
	return nil
}

// scratch is the per-call working memory of an evaluation. It never
// outlives the call that took it from the pool.
type scratch[T hwy.Floats] struct {
	samples []T
	ws      Workspace
}

func (e *Evaluator[P, T]) buffer(n int) *scratch[T] {
	s, ok := e.scratch.Get().(*scratch[T])
	if !ok {
		s = &scratch[T]{}
	}
	if cap(s.samples) < n {
		s.samples = make([]T, n)
	}
	s.samples = s.samples[:n]
	s.ws.Reset(e.dims)
	return s
}

// EvaluateAtIndex returns the inner product of the operator with the
// samples centered at idx. Samples outside the image come from the image's
// boundary condition. The cost is proportional to the operator size.
func (e *Evaluator[P, T]) EvaluateAtIndex(idx image.Index) (T, error) {
	if err := e.check(len(idx)); err != nil {
		return 0, err
	}
	op := e.operator
	if op.IsEmpty() {
		return 0, nil
	}
	buf := e.buffer(len(op.coeffs))
	defer e.scratch.Put(buf)
	if err := fill(e.image, idx, op.radius, buf.samples, buf.ws.Cursor); err != nil {
		return 0, err
	}
	return hwy.Dot(op.coeffs, buf.samples), nil
}

// EvaluateAtContinuousIndex returns the operator response at a sub-pixel
// location, using the evaluator's ContinuousPolicy to obtain the samples.
// Non-finite coordinates fail with ErrOutOfBounds.
func (e *Evaluator[P, T]) EvaluateAtContinuousIndex(ci image.ContinuousIndex) (T, error) {
	if err := e.check(len(ci)); err != nil {
		return 0, err
	}
	op := e.operator
	buf := e.buffer(len(op.coeffs))
	defer e.scratch.Put(buf)
	if err := e.policy.Sample(e.image, ci, op.radius, buf.samples, &buf.ws); err != nil {
		if errors.Is(err, ErrUnimplemented) {
			e.warnPolicy.Do(func() {
				e.logger.Warn("continuous evaluation requested without a sub-pixel policy", "policy", e.policy.Name())
			})
		}
		return 0, err
	}
	return hwy.Dot(op.coeffs, buf.samples), nil
}

// Evaluate returns the operator response at a physical point, converted to
// a continuous index through the image's origin, spacing and direction.
func (e *Evaluator[P, T]) Evaluate(p image.Point) (T, error) {
	if err := e.check(len(p)); err != nil {
		return 0, err
	}
	ci, err := e.image.PointToContinuousIndex(p)
	if err != nil {
		return 0, err
	}
	return e.EvaluateAtContinuousIndex(ci)
}
