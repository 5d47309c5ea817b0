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

package hwy

import "math"

// dotLanes is the number of partial sums kept by Dot. It is fixed rather
// than taken from the detected register width so that every CPU sums in
// the same order.
const dotLanes = 4

// Dot computes the inner product Σ a[i]·b[i].
//
// Products are formed in float64 and spread over dotLanes compensated
// partial sums, the way a vectorized loop would, and the partial sums are
// then reduced in lane order. The summation order depends only on the
// slice length, so results are bit-identical across calls and machines.
// Compensation keeps the result within one rounding of the exact sum for
// operator-sized inputs, so a normalized kernel over a constant image
// reproduces the constant.
//
// If the slices have different lengths, the computation uses the minimum
// length. Returns 0 if either slice is empty.
//
// Example:
//
//	a := []float32{1, 2, 3}
//	b := []float32{4, 5, 6}
//	result := Dot(a, b)  // 1*4 + 2*5 + 3*6 = 32
func Dot[T Floats](a, b []T) T {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}

	var sum, comp [dotLanes]float64
	i := 0
	for ; i+dotLanes <= n; i += dotLanes {
		va := a[i : i+dotLanes]
		vb := b[i : i+dotLanes]
		for l := range dotLanes {
			sum[l], comp[l] = neumaier(sum[l], comp[l], float64(va[l])*float64(vb[l]))
		}
	}

	var s, c float64
	for ; i < n; i++ {
		s, c = neumaier(s, c, float64(a[i])*float64(b[i]))
	}
	for l := range dotLanes {
		s, c = neumaier(s, c, sum[l])
		c += comp[l]
	}
	return T(s + c)
}

// neumaier adds x to the running sum s and accumulates the rounding error
// into c.
func neumaier(s, c, x float64) (float64, float64) {
	t := s + x
	if math.Abs(s) >= math.Abs(x) {
		c += (s - t) + x
	} else {
		c += (x - t) + s
	}
	return t, c
}

// DotBatch computes Dot(rows[i], v) for every row and writes the results to
// dst, which must have at least len(rows) elements. It is the inner loop of
// operator banks that share one sample view.
func DotBatch[T Floats](dst []T, rows [][]T, v []T) {
	for i, row := range rows {
		dst[i] = Dot(row, v)
	}
}
