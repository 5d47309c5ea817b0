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


// Package neighborhood evaluates neighborhood operators at single points of
// an N-D image.
//
// An Operator is a dense box of coefficients with an odd extent 2r+1 along
// every axis, stored in raster order (axis 0 varies fastest). An Evaluator
// binds an image and an operator and returns the inner product of the
// operator with the image samples centered at a grid index, a continuous
// index or a physical point:
//
//	ev := neighborhood.New[float32, float64](2)
//	_ = ev.SetInputImage(img)
//	op, _ := neighborhood.Derivative[float64](2, 0, 1)
//	_ = ev.SetOperator(op)
//	dx, err := ev.EvaluateAtIndex(image.Index{10, 12})
//
// Samples that fall outside the image are produced by the image's
// boundary condition (see image.Boundary); the evaluator never
// clamps or pads on its own.
//
// Sub-pixel locations are handled by a ContinuousPolicy. SnapToNearest is
// the default; Blended interpolates each tap multilinearly, and
// Unimplemented rejects continuous evaluation with ErrUnimplemented.
//
// Inner products go through hwy.Dot, which sums in float64 with a fixed
// order that depends only on the operator length, so evaluations of the
// same location are bit-identical on every machine.
package neighborhood

//go:generate go run ../../../cmd/opgen -op zucker-hummel -output zucker_hummel_table.go
