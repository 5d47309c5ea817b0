// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for batch
// point evaluation. A Pool is created once and reused across many batches,
// for example one batch of voxel queries per registration iteration, so no
// goroutines are spawned per batch.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	for iter := range iterations {
//	    err := pool.ParallelForErr(ctx, len(points), func(start, end int) error {
//	        return evaluateRange(points[start:end])
//	    })
//	}
package workerpool

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem represents a single parallel operation to execute.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

// worker is the main loop for each persistent worker goroutine.
func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ParallelFor executes fn for each index in [0, n) using the worker pool.
// Each worker processes a contiguous range of indices.
// Blocks until all work completes.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	if p.closed.Load() {
		// Fallback to sequential if pool is closed
		fn(0, n)
		return
	}

	// Don't use more workers than items
	workers := min(p.numWorkers, n)
	if workers == 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := range workers {
		start := i * chunkSize
		end := min(start+chunkSize, n)
		if start >= n {
			wg.Done()
			continue
		}

		p.workC <- workItem{
			fn: func() {
				fn(start, end)
			},
			barrier: &wg,
		}
	}

	wg.Wait()
}

// ParallelForErr is like ParallelFor but splits [0, n) into ranges of at
// most batchSize items and stops handing out ranges once ctx is done or a
// range fails. It returns the error of the lowest failing range, or
// ctx.Err() if the context ended first.
//
// batchSize <= 0 picks one range per worker.
func (p *Pool) ParallelForErr(ctx context.Context, n, batchSize int, fn func(start, end int) error) error {
	if n <= 0 {
		return ctx.Err()
	}
	if batchSize <= 0 {
		batchSize = (n + p.numWorkers - 1) / p.numWorkers
	}
	numBatches := (n + batchSize - 1) / batchSize

	var (
		mu       sync.Mutex
		firstErr error
		firstAt  = numBatches
		failed   atomic.Bool
		next     atomic.Int64
	)
	record := func(batch int, err error) {
		mu.Lock()
		defer mu.Unlock()
		if batch < firstAt {
			firstAt, firstErr = batch, err
		}
		failed.Store(true)
	}

	p.ParallelFor(min(p.numWorkers, numBatches), func(int, int) {
		for !failed.Load() {
			batch := int(next.Add(1)) - 1
			if batch >= numBatches {
				return
			}
			if err := ctx.Err(); err != nil {
				record(batch, err)
				return
			}
			start := batch * batchSize
			end := min(start+batchSize, n)
			if err := fn(start, end); err != nil {
				record(batch, err)
				return
			}
		}
	})
	return firstErr
}
