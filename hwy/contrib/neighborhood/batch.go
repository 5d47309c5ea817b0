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
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-neighborhood/hwy"
	"github.com/ajroetker/go-neighborhood/hwy/contrib/image"
	"github.com/ajroetker/go-neighborhood/hwy/contrib/workerpool"
)

// indexBatch is the number of indices a worker claims at a time.
const indexBatch = 64

// EvaluateIndices evaluates fn at every index and returns the results in
// input order. Work is spread over pool in chunks of indexBatch; a nil
// pool evaluates the chunks on the calling goroutine. ctx is checked
// before every chunk.
//
// On failure the error of the first failing index is returned, wrapped
// with its position in indices.
func EvaluateIndices[T hwy.Floats](ctx context.Context, pool *workerpool.Pool, fn Function[T], indices []image.Index) ([]T, error) {
	out := make([]T, len(indices))
	eval := func(start, end int) error {
		for i := start; i < end; i++ {
			v, err := fn.EvaluateAtIndex(indices[i])
			if err != nil {
				return fmt.Errorf("index %d %v: %w", i, indices[i], err)
			}
			out[i] = v
		}
		return nil
	}
	if pool == nil {
		for start := 0; start < len(indices); start += indexBatch {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := eval(start, min(start+indexBatch, len(indices))); err != nil {
				return nil, err
			}
		}
		return out, nil
	}
	if err := pool.ParallelForErr(ctx, len(indices), indexBatch, eval); err != nil {
		return nil, err
	}
	return out, nil
}

// EvaluatePoints evaluates fn at every physical point using at most limit
// goroutines (limit <= 0 means no limit) and returns the results in input
// order. The first error cancels the remaining work.
func EvaluatePoints[T hwy.Floats](ctx context.Context, fn Function[T], points []image.Point, limit int) ([]T, error) {
	out := make([]T, len(points))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, p := range points {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := fn.Evaluate(p)
			if err != nil {
				return fmt.Errorf("point %d %v: %w", i, p, err)
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
