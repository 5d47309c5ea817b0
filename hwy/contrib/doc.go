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


// Package contrib groups the packages built on top of hwy.
//
// # Subpackages
//
//   - image: N-D images with boundary conditions and physical geometry
//   - interpolate: nearest and multilinear sampling between grid points
//   - neighborhood: operators and their point evaluation
//   - curvature: binary min/max curvature flow updates
//   - path: parametric paths and probing along them
//   - workerpool: persistent workers for batch evaluation
//
// # Point evaluation (hwy/contrib/neighborhood)
//
//	import "github.com/ajroetker/go-neighborhood/hwy/contrib/neighborhood"
//
//	ev := neighborhood.New[float32, float64](3)
//	_ = ev.SetInputImage(volume)
//	lap, _ := neighborhood.Laplacian[float64](3)
//	_ = ev.SetOperator(lap)
//	v, err := ev.EvaluateAtIndex(image.Index{12, 40, 7})
//
// # Batches (hwy/contrib/workerpool)
//
//	pool := workerpool.New(0)
//	defer pool.Close()
//	values, err := neighborhood.EvaluateIndices(ctx, pool, ev, indices)
package contrib
