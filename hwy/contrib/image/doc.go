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

// Package image provides the N-dimensional image type that neighborhood
// evaluators sample from.
//
// Image[T] stores pixels with axis 0 varying fastest and rows aligned to the
// SIMD vector width. Alongside the pixels it carries the two policies point
// evaluators delegate to: a boundary condition and a physical transform.
//
// # Usage Example
//
//	// A 64×64×32 volume with 0.5mm in-plane spacing
//	img := image.NewImage[float32](64, 64, 32)
//	img.SetSpacing(0.5, 0.5, 2)
//	img.Set(image.Index{10, 20, 5}, 1)
//
//	// Samples outside the region read zero instead of the edge pixel
//	img.SetBoundary(image.Constant[float32]{})
//	v, err := img.Sample(image.Index{-1, 20, 5}) // 0, nil
//
// # Edge Handling
//
// Boundary conditions decide what Sample returns outside the region:
//
//	ZeroFlux[T]{}        - repeat edge pixels (default)
//	Mirrored[T]{}        - reflect at boundaries
//	Periodic[T]{}        - tile/wrap around
//	Constant[T]{Pad: v}  - pad with a value
//	Strict[T]{}          - fail with ErrOutOfBounds
//
// The coordinate helpers Mirror, Clamp and Wrap implement the remapping
// for a single axis.
//
// # Physical Space
//
// Points map to continuous indices through origin, spacing and a direction
// cosine matrix:
//
//	point = origin + direction · (spacing ∘ index)
package image
