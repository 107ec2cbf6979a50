// File: forward/worker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The steady-state forwarding loop: block for RX readiness, then for every
// NIC this worker owns, tx_sync, drain RX to empty performing an LPM
// lookup and zero-copy buffer swap per frame, and move on. One iteration
// of this loop is exactly spec.md §4.3's "steady-state loop".

package forward

import (
	"fmt"
	"log"
	"runtime"

	"github.com/momentics/iofwd/affinity"
	"github.com/momentics/iofwd/api"
	"github.com/momentics/iofwd/lpm"
	"github.com/momentics/iofwd/ring"
)

// shutdownable is satisfied by Providers that support unblocking an
// in-flight Poll on demand (ring.NICProvider and ring.LoopbackProvider both do).
type shutdownable interface {
	Shutdown()
}

// Worker satisfies api.GracefulShutdown so cmd/iofwd can manage every
// worker through the same shutdown contract it uses for other components.
var _ api.GracefulShutdown = (*Worker)(nil)

// Worker owns ring index id across every NIC in cfg.NICNames.
type Worker struct {
	id       int
	provider ring.Provider
	table    *lpm.Table
	cfg      Config
	counters workerCounters

	bindings []*ring.Binding
	done     chan struct{}
	status   api.WorkerStatus
	cpuPin   *affinity.ThreadBinding
}

// NewWorker constructs a Worker for ring index id. Bind must be called
// before Run.
func NewWorker(id int, provider ring.Provider, table *lpm.Table, cfg Config) *Worker {
	return &Worker{
		id:       id,
		provider: provider,
		table:    table,
		cfg:      cfg,
		done:     make(chan struct{}),
		status:   api.WorkerStopped,
		cpuPin:   affinity.NewThreadBinding(),
	}
}

// CPUPin reports the worker's current CPU affinity binding, for debug probes.
func (w *Worker) CPUPin() api.AffinityDescriptor {
	return w.cpuPin.ImmutableDescriptor()
}

// Bind opens one ring pair per NIC in cfg.NICNames at this worker's ring
// index. NIC enumeration order is cfg.NICNames' order, fixed for the
// worker's lifetime, matching spec.md §5's ordering guarantee.
func (w *Worker) Bind(mode ring.Mode) error {
	bindings := make([]*ring.Binding, 0, len(w.cfg.NICNames))
	for _, name := range w.cfg.NICNames {
		b, err := w.provider.Open(name, w.id, mode)
		if err != nil {
			return fmt.Errorf("forward: worker %d: open %s ring %d: %w", w.id, name, w.id, err)
		}
		bindings = append(bindings, b)
	}
	w.bindings = bindings
	return nil
}

// Status reports the worker's current lifecycle state.
func (w *Worker) Status() api.WorkerStatus {
	return w.status
}

// ID reports the ring index this worker owns.
func (w *Worker) ID() int {
	return w.id
}

// Shutdown requests the worker's Run loop to return after its current
// iteration, and asks the provider to unblock any in-flight Poll. Always
// returns nil; it exists to satisfy api.GracefulShutdown.
func (w *Worker) Shutdown() error {
	select {
	case <-w.done:
	default:
		close(w.done)
	}
	if s, ok := w.provider.(shutdownable); ok {
		s.Shutdown()
	}
	return nil
}

// Run pins the calling goroutine's OS thread to a CPU core and executes the
// steady-state loop until Shutdown is called or the provider reports a
// fatal error. Run must be called from its own goroutine, one per worker,
// per spec.md §5 ("parallel OS threads, one per worker").
func (w *Worker) Run() error {
	if len(w.bindings) == 0 {
		return api.ErrNoRings
	}
	w.status = api.WorkerRunning
	defer func() { w.status = api.WorkerStopped }()

	// Keep this goroutine on the thread being pinned. The thread is never
	// unlocked, so it exits with the goroutine rather than returning to the
	// scheduler's pool with a narrowed affinity mask.
	runtime.LockOSThread()
	if err := w.cpuPin.Pin(w.id, -1); err != nil {
		log.Printf("forward: worker %d: affinity pin failed: %v", w.id, err)
	}

	for {
		select {
		case <-w.done:
			return nil
		default:
		}

		if _, err := w.provider.Poll(w.bindings, -1); err != nil {
			return fmt.Errorf("forward: worker %d: %w", w.id, err)
		}

		select {
		case <-w.done:
			return nil
		default:
		}

		for _, n := range w.bindings {
			if err := w.provider.TxSync(n); err != nil {
				return fmt.Errorf("forward: worker %d: tx_sync %s: %w", w.id, n.NICName, err)
			}
			if _, err := w.provider.RxSync(n); err != nil {
				return fmt.Errorf("forward: worker %d: rx_sync %s: %w", w.id, n.NICName, err)
			}
			w.drain(n)
		}
	}
}

// RunOnce executes a single steady-state iteration without blocking the
// caller on Poll first. Exposed for tests that have already injected
// frames and just want to exercise the tx_sync/rx_sync/drain sequence
// deterministically.
func (w *Worker) RunOnce() error {
	for _, n := range w.bindings {
		if err := w.provider.TxSync(n); err != nil {
			return fmt.Errorf("forward: worker %d: tx_sync %s: %w", w.id, n.NICName, err)
		}
		if _, err := w.provider.RxSync(n); err != nil {
			return fmt.Errorf("forward: worker %d: rx_sync %s: %w", w.id, n.NICName, err)
		}
		w.drain(n)
	}
	return nil
}

// drain processes every frame currently available on n's RX ring.
func (w *Worker) drain(n *ring.Binding) {
	for !n.Rx.IsEmpty() {
		slot := n.Rx.Peek()

		frame := w.provider.FrameData(n, slot.BufIdx)
		if int(slot.Len) <= len(frame) {
			frame = frame[:slot.Len]
		}

		dst, ok := parseIPv4Dest(frame)
		if !ok {
			w.counters.malformed.Add(1)
			n.Rx.Advance()
			continue
		}

		iface := w.cfg.DefaultNextHopIface
		if found, _, matched := w.table.Search(dst); found {
			iface = matched
		} else {
			w.counters.lookupMiss.Add(1)
		}

		if int(iface) < 1 || int(iface) > len(w.bindings) {
			w.counters.invalidIface.Add(1)
			n.Rx.Advance()
			continue
		}

		txBinding := w.bindings[iface-1]
		oldBufIdx, ok := txBinding.Tx.SwapPush(ring.Slot{BufIdx: slot.BufIdx, Len: slot.Len})
		if !ok {
			w.counters.txFullDropped.Add(1)
			n.Rx.Advance()
			continue
		}

		n.Rx.SwapBufIdx(oldBufIdx)
		n.Rx.Advance()
		w.counters.forwarded.Add(1)
	}
}

func (w *Worker) metricKey(suffix string) string {
	return fmt.Sprintf("forward.worker%d.%s", w.id, suffix)
}
