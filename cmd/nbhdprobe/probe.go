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
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	_ "golang.org/x/image/tiff"

	nimage "github.com/ajroetker/go-neighborhood/hwy/contrib/image"
	"github.com/ajroetker/go-neighborhood/hwy/contrib/neighborhood"
	"github.com/ajroetker/go-neighborhood/hwy/contrib/workerpool"
)

type probeOptions struct {
	op       string
	axis     int
	order    int
	radius   int
	sigma    float64
	boundary string
	pad      float64
	policy   string
	at       []string
	jobs     int
}

// loadImage decodes a PNG, JPEG or TIFF image into gray levels in [0, 1].
func loadImage(r io.Reader) (*nimage.Image[float32], error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("decode image: %s image is empty", format)
	}
	img := nimage.NewImage[float32](b.Dx(), b.Dy())
	for y := range b.Dy() {
		for x := range b.Dx() {
			g := color.Gray16Model.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
			img.Set(nimage.Index{x, y}, float32(g.Y)/0xffff)
		}
	}
	slog.Debug("loaded image", "format", format, "width", b.Dx(), "height", b.Dy())
	return img, nil
}

// operators returns the operators selected by opts with one column name
// each.
func operators(opts probeOptions, dims int) ([]neighborhood.Operator[float64], []string, error) {
	var (
		op  neighborhood.Operator[float64]
		err error
	)
	switch opts.op {
	case "gradient":
		ops := make([]neighborhood.Operator[float64], dims)
		names := make([]string, dims)
		for a := range dims {
			if ops[a], err = neighborhood.Derivative[float64](dims, a, 1); err != nil {
				return nil, nil, err
			}
			names[a] = fmt.Sprintf("D%d", a)
		}
		return ops, names, nil
	case "box":
		op, err = neighborhood.Box[float64](dims, opts.radius)
	case "derivative":
		op, err = neighborhood.Derivative[float64](dims, opts.axis, opts.order)
	case "gaussian":
		op, err = neighborhood.Gaussian[float64](dims, opts.axis, opts.sigma, 0)
	case "laplacian":
		op, err = neighborhood.Laplacian[float64](dims)
	case "sobel":
		op, err = neighborhood.Sobel[float64](dims, opts.axis)
	case "zucker-hummel":
		if dims != 3 {
			return nil, nil, fmt.Errorf("operator zucker-hummel needs a 3-D image, have %d-D", dims)
		}
		op, err = neighborhood.ZuckerHummel[float64](opts.axis)
	default:
		return nil, nil, fmt.Errorf("unknown operator %q", opts.op)
	}
	if err != nil {
		return nil, nil, err
	}
	return []neighborhood.Operator[float64]{op}, []string{strings.ToUpper(opts.op)}, nil
}

func boundary(name string, pad float64) (nimage.Boundary[float32], error) {
	switch name {
	case "constant":
		return nimage.Constant[float32]{Pad: float32(pad)}, nil
	case "zeroflux", "zero-flux":
		return nimage.ZeroFlux[float32]{}, nil
	case "mirrored":
		return nimage.Mirrored[float32]{}, nil
	case "periodic":
		return nimage.Periodic[float32]{}, nil
	case "strict":
		return nimage.Strict[float32]{}, nil
	}
	return nil, fmt.Errorf("unknown boundary condition %q", name)
}

func policy(name string) (neighborhood.Option[float32, float64], error) {
	switch name {
	case "nearest":
		return neighborhood.WithContinuousPolicy[float32, float64](neighborhood.SnapToNearest[float32, float64]{}), nil
	case "blended", "linear":
		return neighborhood.WithContinuousPolicy[float32, float64](neighborhood.Blended[float32, float64]{}), nil
	}
	return nil, fmt.Errorf("unknown sub-pixel policy %q", name)
}

// location parses comma-separated coordinates. grid reports whether every
// coordinate is an integer.
func location(s string, dims int) (ci nimage.ContinuousIndex, grid bool, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != dims {
		return nil, false, fmt.Errorf("location %q has %d coordinates, image has %d axes", s, len(parts), dims)
	}
	ci = make(nimage.ContinuousIndex, dims)
	grid = true
	for a, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, false, fmt.Errorf("location %q: %w", s, err)
		}
		ci[a] = v
		grid = grid && v == math.Trunc(v) && !math.IsInf(v, 0)
	}
	return ci, grid, nil
}

func probe(ctx context.Context, w io.Writer, path string, opts probeOptions) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	img, err := loadImage(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	bc, err := boundary(opts.boundary, opts.pad)
	if err != nil {
		return err
	}
	img.SetBoundary(bc)

	rows, names, err := evaluate(ctx, img, opts)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(append([]string{"LOCATION"}, names...))
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(rows)
	table.Render()
	return nil
}

// evaluate returns one table row per location of opts.at.
func evaluate(ctx context.Context, img *nimage.Image[float32], opts probeOptions) ([][]string, []string, error) {
	dims := img.Dims()
	ops, names, err := operators(opts, dims)
	if err != nil {
		return nil, nil, err
	}
	withPolicy, err := policy(opts.policy)
	if err != nil {
		return nil, nil, err
	}

	locs := make([]nimage.ContinuousIndex, len(opts.at))
	allGrid := true
	for i, s := range opts.at {
		ci, grid, err := location(s, dims)
		if err != nil {
			return nil, nil, err
		}
		locs[i] = ci
		allGrid = allGrid && grid
	}

	var values [][]float64
	if len(ops) == 1 {
		values, err = evaluateSingle(ctx, img, ops[0], locs, allGrid, opts.jobs, withPolicy)
	} else {
		values, err = evaluateBank(img, ops, locs, withPolicy)
	}
	if err != nil {
		return nil, nil, err
	}

	rows := make([][]string, len(locs))
	for i, ci := range locs {
		row := []string{formatLocation(ci)}
		for _, v := range values[i] {
			row = append(row, strconv.FormatFloat(v, 'g', 6, 64))
		}
		rows[i] = row
	}
	return rows, names, nil
}

func evaluateSingle(ctx context.Context, img *nimage.Image[float32], op neighborhood.Operator[float64],
	locs []nimage.ContinuousIndex, grid bool, jobs int, withPolicy neighborhood.Option[float32, float64]) ([][]float64, error) {
	ev := neighborhood.New(img.Dims(), withPolicy, neighborhood.WithLogger[float32, float64](slog.Default()))
	if err := ev.SetInputImage(img); err != nil {
		return nil, err
	}
	if err := ev.SetOperator(op); err != nil {
		return nil, err
	}

	var (
		flat []float64
		err  error
	)
	if grid {
		indices := make([]nimage.Index, len(locs))
		for i, ci := range locs {
			idx, ok := ci.Round()
			if !ok {
				return nil, fmt.Errorf("location %s: %w", formatLocation(ci), neighborhood.ErrOutOfBounds)
			}
			indices[i] = idx
		}
		pool := workerpool.New(jobs)
		defer pool.Close()
		flat, err = neighborhood.EvaluateIndices[float64](ctx, pool, ev, indices)
	} else {
		// The decoded image has unit spacing and zero origin, so index
		// coordinates are physical coordinates.
		points := make([]nimage.Point, len(locs))
		for i, ci := range locs {
			points[i] = nimage.Point(ci)
		}
		flat, err = neighborhood.EvaluatePoints[float64](ctx, ev, points, jobs)
	}
	if err != nil {
		return nil, err
	}
	values := make([][]float64, len(flat))
	for i, v := range flat {
		values[i] = []float64{v}
	}
	return values, nil
}

func evaluateBank(img *nimage.Image[float32], ops []neighborhood.Operator[float64],
	locs []nimage.ContinuousIndex, withPolicy neighborhood.Option[float32, float64]) ([][]float64, error) {
	bank, err := neighborhood.NewBank(img.Dims(), ops, withPolicy)
	if err != nil {
		return nil, err
	}
	if err := bank.SetInputImage(img); err != nil {
		return nil, err
	}
	values := make([][]float64, len(locs))
	for i, ci := range locs {
		if values[i], err = bank.EvaluateAtContinuousIndex(ci); err != nil {
			return nil, fmt.Errorf("location %s: %w", formatLocation(ci), err)
		}
	}
	return values, nil
}

func formatLocation(ci nimage.ContinuousIndex) string {
	parts := make([]string, len(ci))
	for a, v := range ci {
		parts[a] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
