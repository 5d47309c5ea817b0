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

import (
	"fmt"

	"github.com/x448/float16"
)

// FromFloat16 builds a float32 image from half-precision samples stored in
// raster order (axis 0 fastest), as produced by scanners and GPU readbacks
// that keep volumes in 16-bit floats.
func FromFloat16(size []int, samples []float16.Float16) (*Image[float32], error) {
	img := NewImage[float32](size...)
	if n := img.region.NumberOfPixels(); n != len(samples) {
		return nil, fmt.Errorf("image: %d samples for %d pixels", len(samples), n)
	}
	i := 0
	ForEachIndex(img.region, func(idx Index) {
		img.data[img.offset(idx)] = samples[i].Float32()
		i++
	})
	return img, nil
}

// ToFloat16 returns the pixels of img in raster order as half-precision
// values, rounding to nearest even.
func ToFloat16(img *Image[float32]) []float16.Float16 {
	out := make([]float16.Float16, 0, img.region.NumberOfPixels())
	ForEachIndex(img.region, func(idx Index) {
		out = append(out, float16.Fromfloat32(img.data[img.offset(idx)]))
	})
	return out
}
