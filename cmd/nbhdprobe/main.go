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


// Command nbhdprobe evaluates a neighborhood operator at chosen locations
// of a PNG, JPEG or TIFF image and prints the responses as a table.
//
// Usage:
//
//	nbhdprobe scan.png --op derivative --axis 0 --at 10,12 --at 10.5,12.25
//	nbhdprobe scan.tif --op gradient --boundary mirrored --policy blended --at 3,4
//
// Pixels are converted to gray levels in [0, 1]. Locations with integer
// coordinates are evaluated on the grid; others go through the chosen
// sub-pixel policy.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := NewCLI().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
