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


// Command opgen generates Go source for fixed neighborhood operator
// coefficient tables.
//
// Usage:
//
//	opgen -op zucker-hummel -output zucker_hummel_table.go
//
// Or via go:generate:
//
//	//go:generate go run ../../../cmd/opgen -op zucker-hummel -output zucker_hummel_table.go
//
// The generated file declares one package-level array per table, with
// coefficients in raster order (axis 0 fastest), and is formatted with
// goimports.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
)

var (
	opName     = flag.String("op", "", "Operator table to generate ("+strings.Join(availableOps(), ",")+") (required)")
	outputFile = flag.String("output", "", "Output file (default: stdout)")
	packageOut = flag.String("pkg", "neighborhood", "Output package name")
)

func availableOps() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func main() {
	flag.Parse()

	if *opName == "" {
		fmt.Fprintf(os.Stderr, "Error: -op flag is required\n\n")
		flag.Usage()
		os.Exit(1)
	}
	gen, ok := generators[*opName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown operator %q (available: %s)\n", *opName, strings.Join(availableOps(), ", "))
		os.Exit(1)
	}

	name := *outputFile
	if name == "" {
		name = "stdout.go"
	}
	src, err := Render(name, *packageOut, gen())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *outputFile == "" {
		os.Stdout.Write(src)
		return
	}
	if err := os.WriteFile(*outputFile, src, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: write %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	fmt.Printf("Successfully generated %s table in %s\n", *opName, *outputFile)
}
