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
	"math"

	"github.com/ajroetker/go-neighborhood/hwy/contrib/image"
)

// PolyLine is a path of straight segments between vertices. The input runs
// from 0 at the first vertex to len(vertices)-1 at the last, one unit per
// segment.
type PolyLine struct {
	dims     int
	vertices []image.ContinuousIndex
}

var _ Parametric = (*PolyLine)(nil)

// NewPolyLine returns a path through vertices, which must all have dims
// coordinates.
func NewPolyLine(dims int, vertices ...image.ContinuousIndex) (*PolyLine, error) {
	if dims < 1 {
		return nil, fmt.Errorf("path: %d dimensions", dims)
	}
	p := &PolyLine{dims: dims}
	for _, v := range vertices {
		if err := p.AddVertex(v); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// AddVertex appends a copy of v to the path.
func (p *PolyLine) AddVertex(v image.ContinuousIndex) error {
	if len(v) != p.dims {
		return fmt.Errorf("path: vertex %v has %d axes, path has %d", v, len(v), p.dims)
	}
	if !v.IsFinite() {
		return fmt.Errorf("path: vertex %v is not finite", v)
	}
	p.vertices = append(p.vertices, append(image.ContinuousIndex(nil), v...))
	return nil
}

// Vertices returns the number of vertices.
func (p *PolyLine) Vertices() int {
	return len(p.vertices)
}

// Dims implements Curve.
func (p *PolyLine) Dims() int { return p.dims }

// StartOfInput implements Curve.
func (p *PolyLine) StartOfInput() float64 { return 0 }

// EndOfInput implements Curve.
func (p *PolyLine) EndOfInput() float64 {
	return float64(max(len(p.vertices)-1, 0))
}

// segment returns the segment containing t and the position within it.
func (p *PolyLine) segment(t float64) (int, float64) {
	last := len(p.vertices) - 1
	switch {
	case last <= 0 || t <= 0:
		return 0, 0
	case t >= float64(last):
		return last - 1, 1
	}
	i := int(math.Floor(t))
	return i, t - float64(i)
}

// Evaluate implements Curve. Inputs outside the path are clamped to its
// ends. An empty path evaluates to the origin.
func (p *PolyLine) Evaluate(t float64) image.ContinuousIndex {
	out := make(image.ContinuousIndex, p.dims)
	switch len(p.vertices) {
	case 0:
		return out
	case 1:
		copy(out, p.vertices[0])
		return out
	}
	i, f := p.segment(t)
	a, b := p.vertices[i], p.vertices[i+1]
	for k := range out {
		out[k] = a[k] + f*(b[k]-a[k])
	}
	return out
}

// EvaluateToIndex implements Parametric.
func (p *PolyLine) EvaluateToIndex(t float64) image.Index {
	return NearestIndex(p, t)
}

// EvaluateDerivative implements Parametric. It is the direction of the
// segment containing t; at a vertex the outgoing segment is used.
func (p *PolyLine) EvaluateDerivative(t float64) []float64 {
	d := make([]float64, p.dims)
	if len(p.vertices) < 2 {
		return d
	}
	i, _ := p.segment(t)
	for k := range d {
		d[k] = p.vertices[i+1][k] - p.vertices[i][k]
	}
	return d
}

// IncrementInput implements Parametric.
func (p *PolyLine) IncrementInput(t float64) (float64, image.Index, error) {
	return Increment(p, t)
}
