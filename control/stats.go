// File: control/stats.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Periodic aggregation of forwarding workers' local counters into the
// shared MetricsRegistry, kept off the packet fast path per spec.md §4.3's
// "may periodically report average batch size as an observability aid;
// this does not affect semantics".

package control

import (
	"time"

	"github.com/momentics/iofwd/internal/concurrency"
)

// WorkerStats is implemented by anything exposing a snapshot of its local
// counters for aggregation (forward.Worker satisfies this).
type WorkerStats interface {
	Snapshot() map[string]uint64
}

// StatsReporter ticks on its own goroutine and submits each flush to a
// background Executor, so aggregation never competes with a worker's hot
// loop for CPU time on the same thread.
type StatsReporter struct {
	workers  []WorkerStats
	metrics  *MetricsRegistry
	executor *concurrency.Executor
	stop     chan struct{}
}

// NewStatsReporter constructs a reporter over the given workers. executor
// must outlive the reporter; the caller owns its lifecycle.
func NewStatsReporter(workers []WorkerStats, metrics *MetricsRegistry, executor *concurrency.Executor) *StatsReporter {
	return &StatsReporter{
		workers:  workers,
		metrics:  metrics,
		executor: executor,
		stop:     make(chan struct{}),
	}
}

// Start launches the ticking goroutine. Call it once: the stop channel stays
// closed after Stop, so a later Start's goroutine exits without ticking.
func (sr *StatsReporter) Start(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sr.executor.Submit(sr.flush)
			case <-sr.stop:
				return
			}
		}
	}()
}

// Stop ends the ticking goroutine. Idempotent.
func (sr *StatsReporter) Stop() {
	select {
	case <-sr.stop:
	default:
		close(sr.stop)
	}
}

func (sr *StatsReporter) flush() {
	for _, w := range sr.workers {
		for k, v := range w.Snapshot() {
			sr.metrics.Set(k, v)
		}
	}
}
