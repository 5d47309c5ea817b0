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


package main

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/tools/imports"
)

// Table is a named array of operators, one row of coefficients each.
type Table struct {
	Name     string
	Doc      []string
	Rows     [][]float64
	LineSize int // coefficients per output line
}

var generators = map[string]func() Table{
	"zucker-hummel": zuckerHummel,
}

// zuckerHummel returns the 3×3×3 Zucker-Hummel gradient operators. The
// coefficient at offset o for axis a is sign(o[a]) scaled by the inverse
// distance of o from the axis line: 1, √2/2 or √3/3 for 0, 1 or 2 nonzero
// offsets on the other axes.
func zuckerHummel() Table {
	weights := [3]float64{1, math.Sqrt(2) / 2, math.Sqrt(3) / 3}
	t := Table{
		Name: "zuckerHummelTables",
		Doc: []string{
			"zuckerHummelTables holds the 3x3x3 Zucker-Hummel gradient operators, one",
			"per axis, with coefficients in raster order.",
		},
		LineSize: 9,
	}
	for axis := range 3 {
		row := make([]float64, 27)
		for i := range row {
			o := [3]int{i%3 - 1, (i/3)%3 - 1, (i/9)%3 - 1}
			if o[axis] == 0 {
				continue
			}
			n := 0
			for a, v := range o {
				if a != axis && v != 0 {
					n++
				}
			}
			row[i] = float64(o[axis]) * weights[n]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Render returns the formatted Go source of a file in package pkg that
// declares t. filename is only used for error messages and import
// resolution.
func Render(filename, pkg string, t Table) ([]byte, error) {
	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("table %s has no rows", t.Name)
	}
	width := len(t.Rows[0])
	for i, row := range t.Rows {
		if len(row) != width {
			return nil, fmt.Errorf("table %s: row %d has %d coefficients, want %d", t.Name, i, len(row), width)
		}
	}
	lineSize := t.LineSize
	if lineSize <= 0 {
		lineSize = width
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by opgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg)
	for _, line := range t.Doc {
		fmt.Fprintf(&buf, "// %s\n", line)
	}
	fmt.Fprintf(&buf, "var %s = [%d][%d]float64{\n", t.Name, len(t.Rows), width)
	for _, row := range t.Rows {
		fmt.Fprintf(&buf, "\t{\n")
		for start := 0; start < width; start += lineSize {
			end := min(start+lineSize, width)
			vals := make([]string, 0, end-start)
			for _, v := range row[start:end] {
				vals = append(vals, strconv.FormatFloat(v, 'g', -1, 64))
			}
			fmt.Fprintf(&buf, "\t\t%s,\n", strings.Join(vals, ", "))
		}
		fmt.Fprintf(&buf, "\t},\n")
	}
	fmt.Fprintf(&buf, "}\n")

	return imports.Process(filename, buf.Bytes(), nil)
}
