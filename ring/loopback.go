// File: ring/loopback.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// LoopbackProvider is an in-process software Provider: it never touches a
// real NIC. Test code injects frames directly into a binding's RX ring with
// InjectFrame, and reads back whatever a worker pushed onto a binding's TX
// ring with Sent. It exists so forward.Worker and its tests never need a
// live kernel-bypass driver.

package ring

import (
	"sync"
	"time"

	"github.com/momentics/iofwd/api"
)

const defaultRingCapacity = 256
const defaultFrameSize = 2048

// LoopbackProvider backs every binding it opens with its own private
// buffer region and ring pair, plus a readiness channel that InjectFrame
// signals so Poll can wake promptly instead of spinning.
type LoopbackProvider struct {
	mu       sync.Mutex
	bindings map[*Binding]*loopbackState
	ready    chan *Binding
	shutdown chan struct{}
	once     sync.Once
}

type loopbackState struct {
	buffers [][]byte // indexed by BufIdx
	sent    []Slot   // frames the worker pushed onto Tx and TxSync drained
	freeBuf uint32   // next never-yet-used buffer index
}

// NewLoopbackProvider constructs an empty LoopbackProvider. Bindings are
// created lazily by Open.
func NewLoopbackProvider() *LoopbackProvider {
	return &LoopbackProvider{
		bindings: make(map[*Binding]*loopbackState),
		ready:    make(chan *Binding, 64),
		shutdown: make(chan struct{}),
	}
}

// Shutdown unblocks every in-flight and future Poll call, mirroring the
// done-descriptor a real epoll-based PollSet gets injected with. Safe to
// call more than once.
func (p *LoopbackProvider) Shutdown() {
	p.once.Do(func() { close(p.shutdown) })
}

// Open allocates a fresh ring pair and buffer region for (nicName, ringIdx).
// mode is accepted but has no effect: loopback is always zero-copy within
// the process.
func (p *LoopbackProvider) Open(nicName string, ringIdx int, mode Mode) (*Binding, error) {
	rxBacking := make([]Slot, defaultRingCapacity)
	txBacking := make([]Slot, defaultRingCapacity)
	rx, err := NewRxRing(rxBacking)
	if err != nil {
		return nil, err
	}
	tx, err := NewTxRing(txBacking)
	if err != nil {
		return nil, err
	}
	b := &Binding{Rx: rx, Tx: tx, Fd: -1, RingIdx: ringIdx, NICName: nicName}

	p.mu.Lock()
	p.bindings[b] = &loopbackState{buffers: make([][]byte, 0, defaultRingCapacity)}
	p.mu.Unlock()
	return b, nil
}

// InjectFrame copies data into a fresh buffer slot and publishes it on b's
// RX ring, as if the NIC had just received it on the wire.
func (p *LoopbackProvider) InjectFrame(b *Binding, data []byte) error {
	p.mu.Lock()
	st, ok := p.bindings[b]
	if !ok {
		p.mu.Unlock()
		return api.ErrBindingFailed
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	bufIdx := uint32(len(st.buffers))
	st.buffers = append(st.buffers, buf)
	p.mu.Unlock()

	if b.Rx.head-b.Rx.tail >= b.Rx.cap {
		return api.ErrRingFull
	}
	*b.Rx.at(b.Rx.head) = Slot{BufIdx: bufIdx, Len: uint32(len(data))}
	b.Rx.head++

	select {
	case p.ready <- b:
	default:
	}
	return nil
}

// FrameData returns the byte contents of the buffer bufIdx refers to within
// b's private buffer list; the slice is exactly as long as the injected
// frame. Buffer indices are assigned by InjectFrame starting at 0, so an
// index InjectFrame has not yet assigned on b returns nil.
func (p *LoopbackProvider) FrameData(b *Binding, bufIdx uint32) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	st, ok := p.bindings[b]
	if !ok || int(bufIdx) >= len(st.buffers) {
		return nil
	}
	return st.buffers[bufIdx]
}

// Sent returns the slots TxSync has drained from b's TX ring, in order.
func (p *LoopbackProvider) Sent(b *Binding) []Slot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Slot(nil), p.bindings[b].sent...)
}

// RxSync is a no-op for loopback: InjectFrame already advanced the RX head
// directly. It reports how many frames are newly visible since tail.
func (p *LoopbackProvider) RxSync(b *Binding) (int, error) {
	return int(b.Rx.Head() - b.Rx.Tail()), nil
}

// TxSync drains every frame the worker enqueued on b's TX ring into the
// provider's sent log and frees their slots.
func (p *LoopbackProvider) TxSync(b *Binding) error {
	p.mu.Lock()
	st, ok := p.bindings[b]
	p.mu.Unlock()
	if !ok {
		return api.ErrBindingFailed
	}
	for b.Tx.Tail() != b.Tx.Head() {
		slot := *b.Tx.at(b.Tx.tail)
		p.mu.Lock()
		st.sent = append(st.sent, slot)
		p.mu.Unlock()
		b.Tx.tail++
	}
	return nil
}

// Poll blocks until InjectFrame has signaled readiness on at least one
// binding in set, or timeout elapses. A negative timeout blocks forever.
func (p *LoopbackProvider) Poll(set []*Binding, timeout time.Duration) ([]*Binding, error) {
	var deadline <-chan time.Time
	if timeout >= 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	inSet := make(map[*Binding]bool, len(set))
	for _, b := range set {
		if !b.Rx.IsEmpty() {
			return []*Binding{b}, nil
		}
		inSet[b] = true
	}

	for {
		select {
		case b := <-p.ready:
			if inSet[b] {
				return []*Binding{b}, nil
			}
		case <-p.shutdown:
			return nil, nil
		case <-deadline:
			return nil, nil
		}
	}
}

// Close releases b's buffer region. Subsequent operations on b are invalid.
func (p *LoopbackProvider) Close(b *Binding) error {
	p.mu.Lock()
	delete(p.bindings, b)
	p.mu.Unlock()
	return nil
}
