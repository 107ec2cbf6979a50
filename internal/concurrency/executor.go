// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Background executor used for housekeeping work that must never run on a
// forwarding worker's hot path: periodic metrics aggregation, stats flushes,
// and similar low-frequency tasks. eapache/queue.Queue is not safe for
// concurrent use on its own, so access is serialized with a mutex; a
// buffered signal channel avoids a busy-spin between dequeues.

package concurrency

import (
	"sync"

	"github.com/eapache/queue"

	"github.com/momentics/iofwd/api"
)

// Ensure compile-time interface compliance.
var _ api.Executor = (*Executor)(nil)

// TaskFunc is a unit of background work.
type TaskFunc func()

// Executor dispatches TaskFunc values to a fixed pool of goroutines.
type Executor struct {
	mu      sync.Mutex
	q       *queue.Queue
	signal  chan struct{}
	stop    chan struct{}
	wg      sync.WaitGroup
	workers int
}

// NewExecutor starts numWorkers goroutines draining a shared task queue.
// numaNode is accepted for call-site symmetry with NUMA-aware pools
// elsewhere in the codebase; this executor itself has no NUMA affinity.
func NewExecutor(numWorkers, numaNode int) *Executor {
	if numWorkers < 1 {
		numWorkers = 1
	}
	e := &Executor{
		q:       queue.New(),
		signal:  make(chan struct{}, numWorkers),
		stop:    make(chan struct{}),
		workers: numWorkers,
	}
	for i := 0; i < numWorkers; i++ {
		e.wg.Add(1)
		go e.run()
	}
	return e
}

// NumWorkers reports the fixed size of the worker pool.
func (e *Executor) NumWorkers() int {
	return e.workers
}

// Resize is a no-op: this executor's pool size is fixed at construction,
// since its only caller (control.StatsReporter) submits low-frequency
// flush tasks that never need dynamic scaling.
func (e *Executor) Resize(newCount int) {}

// Submit enqueues task for execution. Returns ErrExecutorClosed after Close.
func (e *Executor) Submit(task func()) error {
	e.mu.Lock()
	select {
	case <-e.stop:
		e.mu.Unlock()
		return ErrExecutorClosed
	default:
	}
	e.q.Add(TaskFunc(task))
	e.mu.Unlock()

	select {
	case e.signal <- struct{}{}:
	default:
	}
	return nil
}

// Close rejects further Submits and stops all workers once the queue is
// empty; tasks already queued still run before Close returns.
func (e *Executor) Close() {
	close(e.stop)
	e.wg.Wait()
}

func (e *Executor) run() {
	defer e.wg.Done()
	for {
		task, ok := e.dequeue()
		if ok {
			task()
			continue
		}
		select {
		case <-e.stop:
			return
		case <-e.signal:
		}
	}
}

func (e *Executor) dequeue() (TaskFunc, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.q.Length() == 0 {
		return nil, false
	}
	item := e.q.Remove()
	task, ok := item.(TaskFunc)
	return task, ok
}
