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

	"github.com/ajroetker/go-neighborhood/hwy/contrib/image"
)

var (
	// ErrNotInitialized is returned when an evaluator is used before an
	// image has been bound with SetInputImage.
	ErrNotInitialized = errors.New("neighborhood: evaluator has no input image")

	// ErrDimensionMismatch is returned when an image, operator or query
	// location does not match the evaluator's dimension. It wraps
	// ErrNotInitialized: the evaluator is not configured for the request.
	ErrDimensionMismatch = fmt.Errorf("%w: dimension mismatch", ErrNotInitialized)

	// ErrOutOfBounds is returned when a query cannot be serviced even after
	// the image's boundary condition is applied. It is image.ErrOutOfBounds.
	ErrOutOfBounds = image.ErrOutOfBounds

	// ErrUnimplemented is returned by the Unimplemented continuous policy.
	ErrUnimplemented = errors.New("neighborhood: evaluation not implemented")

	// ErrInvalidOperator is returned for malformed radius or coefficients.
	ErrInvalidOperator = errors.New("neighborhood: invalid operator")
)
