// File: forward/stats.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-worker counters, incremented with plain atomic ops so they never take
// a lock on the packet fast path (spec.md §5's lock-free discipline).
// Aggregation into control.MetricsRegistry happens off that path, driven by
// control.StatsReporter's periodic flush.

package forward

import "sync/atomic"

type workerCounters struct {
	forwarded      atomic.Uint64
	txFullDropped  atomic.Uint64
	lookupMiss     atomic.Uint64
	malformed      atomic.Uint64
	invalidIface   atomic.Uint64
}

// Snapshot returns the current counter values keyed for
// control.MetricsRegistry, satisfying control.WorkerStats.
func (w *Worker) Snapshot() map[string]uint64 {
	return map[string]uint64{
		w.metricKey("forwarded"):            w.counters.forwarded.Load(),
		w.metricKey("tx_full_dropped"):       w.counters.txFullDropped.Load(),
		w.metricKey("lookup_miss"):           w.counters.lookupMiss.Load(),
		w.metricKey("malformed_dropped"):     w.counters.malformed.Load(),
		w.metricKey("invalid_iface_dropped"): w.counters.invalidIface.Load(),
	}
}
