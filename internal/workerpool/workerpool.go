// Adapted from go-highway's hwy/contrib/workerpool.
// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides an explicitly sized fork-join pool for the
// parallel stencil strategies.
//
// Workers are spawned once by New and reused by every ParallelFor call until
// Close. Each ParallelFor call blocks until all of its work is done, so
// consecutive calls are separated by a full join barrier.
//
// Usage:
//
//	pool := workerpool.New(threads)
//	defer pool.Close()
//
//	for iter := 0; iter < iterations; iter++ {
//	    pool.ParallelForGuided(cells, 64, func(start, end int) {
//	        sweep(start, end)
//	    })
//	}
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of worker goroutines.
type Pool struct {
	numWorkers int
	workC      chan workItem

	mu     sync.RWMutex // held for reading while work is dispatched
	closed bool
}

type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a pool with numWorkers goroutines.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers),
	}

	// The calling goroutine runs one share itself, so spawn one fewer.
	for range numWorkers - 1 {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// Close shuts down the pool. Calling Close multiple times is safe, and so
// is calling it while a ParallelFor is in flight: Close waits for it to
// finish. ParallelFor calls after Close run on the calling goroutine.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.workC)
}

// acquire reports whether work may be sent to the workers. On true the
// caller must call p.mu.RUnlock when dispatch is done.
func (p *Pool) acquire() bool {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return false
	}
	return true
}

// run executes task on `workers` goroutines (the caller included) and waits.
func (p *Pool) run(workers int, task func(worker int)) {
	var wg sync.WaitGroup
	wg.Add(workers - 1)
	for w := 1; w < workers; w++ {
		p.workC <- workItem{
			fn:      func() { task(w) },
			barrier: &wg,
		}
	}
	task(0)
	wg.Wait()
}

// ParallelFor splits [0, n) into one contiguous range per worker and calls
// fn(start, end) for each range. Blocks until all ranges complete.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 || !p.acquire() {
		fn(0, n)
		return
	}
	defer p.mu.RUnlock()

	chunkSize := (n + workers - 1) / workers
	p.run(workers, func(w int) {
		start := w * chunkSize
		if start >= n {
			return
		}
		fn(start, min(start+chunkSize, n))
	})
}

// ParallelForGuided distributes [0, n) with guided self-scheduling: workers
// repeatedly claim the next contiguous chunk, sized as the remaining work
// divided by twice the worker count but never below minChunk. Chunks shrink
// as the range drains, so early claims amortise scheduling overhead and late
// claims even out finishing times. Blocks until all chunks complete.
//
// Every index in [0, n) is passed to fn exactly once.
func (p *Pool) ParallelForGuided(n, minChunk int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if minChunk <= 0 {
		minChunk = 1
	}

	workers := min(p.numWorkers, (n+minChunk-1)/minChunk)
	if workers <= 1 || !p.acquire() {
		fn(0, n)
		return
	}
	defer p.mu.RUnlock()

	var next atomic.Int64
	total := int64(n)
	divisor := int64(2 * workers)
	floor := int64(minChunk)

	p.run(workers, func(int) {
		for {
			start := next.Load()
			if start >= total {
				return
			}
			chunk := max(floor, (total-start)/divisor)
			end := min(start+chunk, total)
			if next.CompareAndSwap(start, end) {
				fn(int(start), int(end))
			}
		}
	})
}
