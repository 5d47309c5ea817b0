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


package path

import (
	"fmt"

	"github.com/ajroetker/go-neighborhood/hwy"
	"github.com/ajroetker/go-neighborhood/hwy/contrib/image"
	"github.com/ajroetker/go-neighborhood/hwy/contrib/neighborhood"
)

// Sample is one evaluation along a path.
type Sample[T hwy.Floats] struct {
	Input float64
	Index image.ContinuousIndex
	Value T
}

// Probe walks p from its start, one pixel at a time, and evaluates fn at
// the path location of every visited input.
func Probe[T hwy.Floats](fn neighborhood.Function[T], p Parametric) ([]Sample[T], error) {
	var samples []Sample[T]
	t := p.StartOfInput()
	for {
		ci := p.Evaluate(t)
		v, err := fn.EvaluateAtContinuousIndex(ci)
		if err != nil {
			return samples, fmt.Errorf("path: probe at t=%v: %w", t, err)
		}
		samples = append(samples, Sample[T]{Input: t, Index: ci, Value: v})

		next, offset, err := p.IncrementInput(t)
		if err != nil {
			return samples, err
		}
		if isZero(offset) {
			return samples, nil
		}
		t = next
	}
}
