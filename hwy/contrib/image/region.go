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

import "math"

// Index is an integer grid coordinate, one entry per axis.
type Index []int

// Clone returns a copy of idx.
func (idx Index) Clone() Index {
	return append(Index(nil), idx...)
}

// ContinuousIndex is a real-valued coordinate in index space. Integer values
// fall on pixel centers.
type ContinuousIndex []float64

// Round returns the nearest Index, rounding halves away from zero.
// ok is false if any coordinate is not finite or lies outside the int32
// range, which no image can address.
func (ci ContinuousIndex) Round() (idx Index, ok bool) {
	idx = make(Index, len(ci))
	if !ci.RoundInto(idx) {
		return nil, false
	}
	return idx, true
}

// RoundInto is Round writing into dst, which must have len(ci) entries.
// dst is unspecified when it returns false.
func (ci ContinuousIndex) RoundInto(dst Index) bool {
	for a, v := range ci {
		r := math.Round(v)
		if math.IsNaN(r) || r < math.MinInt32 || r > math.MaxInt32 {
			return false
		}
		dst[a] = int(r)
	}
	return true
}

// IsFinite returns true if no coordinate is NaN or infinite.
func (ci ContinuousIndex) IsFinite() bool {
	for _, v := range ci {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// FromIndex converts an Index to the equivalent ContinuousIndex.
func FromIndex(idx Index) ContinuousIndex {
	ci := make(ContinuousIndex, len(idx))
	for a, v := range idx {
		ci[a] = float64(v)
	}
	return ci
}

// Point is a location in physical space.
type Point []float64

// Region defines an axis-aligned box of grid points.
type Region struct {
	Start Index // First index (inclusive)
	Size  []int // Extent along each axis
}

// NewRegion returns the region starting at the origin with the given size.
func NewRegion(size ...int) Region {
	return Region{Start: make(Index, len(size)), Size: append([]int(nil), size...)}
}

// Dims returns the number of axes of the region.
func (r Region) Dims() int {
	return len(r.Size)
}

// End returns the index one past the last grid point on every axis.
func (r Region) End() Index {
	end := make(Index, len(r.Size))
	for a := range r.Size {
		end[a] = r.Start[a] + r.Size[a]
	}
	return end
}

// NumberOfPixels returns the number of grid points in the region.
func (r Region) NumberOfPixels() int {
	if len(r.Size) == 0 {
		return 0
	}
	n := 1
	for _, s := range r.Size {
		if s <= 0 {
			return 0
		}
		n *= s
	}
	return n
}

// IsEmpty returns true if the region contains no grid points.
func (r Region) IsEmpty() bool {
	return r.NumberOfPixels() == 0
}

// IsInside returns true if idx lies within the region.
func (r Region) IsInside(idx Index) bool {
	if len(idx) != len(r.Size) {
		return false
	}
	for a, v := range idx {
		if v < r.Start[a] || v >= r.Start[a]+r.Size[a] {
			return false
		}
	}
	return true
}

// IsInsideContinuous returns true if ci lies within the region, where each
// pixel covers half a step on either side of its center.
func (r Region) IsInsideContinuous(ci ContinuousIndex) bool {
	if len(ci) != len(r.Size) {
		return false
	}
	for a, v := range ci {
		lo := float64(r.Start[a]) - 0.5
		hi := float64(r.Start[a]+r.Size[a]) - 0.5
		if !(v >= lo && v < hi) {
			return false
		}
	}
	return true
}

// ContainsBox returns true if every index within radius of center lies in
// the region.
func (r Region) ContainsBox(center Index, radius []int) bool {
	if len(center) != len(r.Size) || len(radius) != len(r.Size) {
		return false
	}
	for a, c := range center {
		if c-radius[a] < r.Start[a] || c+radius[a] >= r.Start[a]+r.Size[a] {
			return false
		}
	}
	return true
}

// Intersect returns the intersection of two regions of equal dimension.
func (r Region) Intersect(other Region) Region {
	out := Region{Start: make(Index, len(r.Size)), Size: make([]int, len(r.Size))}
	for a := range r.Size {
		lo := max(r.Start[a], other.Start[a])
		hi := min(r.Start[a]+r.Size[a], other.Start[a]+other.Size[a])
		out.Start[a] = lo
		out.Size[a] = max(hi-lo, 0)
	}
	return out
}
