//go:build linux

// File: ring/nic_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// NICProvider is the Linux-native Provider: every binding it opens maps a
// real anonymous-mmap'd Region (shm_linux.go) as its shared frame buffer,
// and readiness across every binding is multiplexed through one shared
// epoll instance via PollSet (pollset_linux.go). Attaching to an actual
// DPDK/AF_XDP device is the external collaborator spec §1 places out of
// scope, so InjectFrame plays the same software-injection role
// LoopbackProvider's does for tests — but the frame storage, the readiness
// signal, and the wait call underneath it are the real Linux primitives a
// kernel-bypass binding would use, not Go channels and slices.

package ring

import (
	"encoding/binary"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/iofwd/api"
)

const (
	nicFrameSize = 2048
	nicRingSlots = 64
)

var _ Provider = (*NICProvider)(nil)

// NICProvider backs every binding it opens with a real mmap'd Region and an
// eventfd registered on one shared PollSet.
type NICProvider struct {
	mu       sync.Mutex
	pollset  *PollSet
	bindings map[*Binding]*nicBindingState
}

type nicBindingState struct {
	region  *Region
	nextBuf uint32
	sent    []Slot
}

// NewNICProvider creates the shared epoll instance every binding this
// provider opens will register with.
func NewNICProvider() (*NICProvider, error) {
	ps, err := NewPollSet()
	if err != nil {
		return nil, err
	}
	return &NICProvider{pollset: ps, bindings: make(map[*Binding]*nicBindingState)}, nil
}

// Open maps a fresh frame Region, allocates an eventfd-backed Binding, and
// registers it with the shared PollSet.
func (p *NICProvider) Open(nicName string, ringIdx int, mode Mode) (*Binding, error) {
	region, err := NewRegion(nicFrameSize, nicRingSlots)
	if err != nil {
		return nil, err
	}
	rx, err := NewRxRing(make([]Slot, nicRingSlots))
	if err != nil {
		region.Close()
		return nil, err
	}
	tx, err := NewTxRing(make([]Slot, nicRingSlots))
	if err != nil {
		region.Close()
		return nil, err
	}
	fd, err := unix.Eventfd(0, unix.EFD_NONBLOCK)
	if err != nil {
		region.Close()
		return nil, api.ErrBindingFailed
	}
	b := &Binding{Rx: rx, Tx: tx, Fd: fd, RingIdx: ringIdx, NICName: nicName}
	if err := p.pollset.Register(b); err != nil {
		unix.Close(fd)
		region.Close()
		return nil, err
	}

	p.mu.Lock()
	p.bindings[b] = &nicBindingState{region: region}
	p.mu.Unlock()
	return b, nil
}

// InjectFrame writes data into a fresh buffer slot in b's mapped region,
// publishes it on the RX ring, and signals b's eventfd so Poll wakes.
func (p *NICProvider) InjectFrame(b *Binding, data []byte) error {
	p.mu.Lock()
	st, ok := p.bindings[b]
	p.mu.Unlock()
	if !ok {
		return api.ErrBindingFailed
	}
	if len(data) > st.region.frameSize {
		return api.ErrInvalidArgument
	}
	if b.Rx.head-b.Rx.tail >= b.Rx.cap {
		return api.ErrRingFull
	}

	bufIdx := st.nextBuf % uint32(st.region.NumFrames())
	copy(st.region.Frame(bufIdx), data)
	st.nextBuf++

	*b.Rx.at(b.Rx.head) = Slot{BufIdx: bufIdx, Len: uint32(len(data))}
	b.Rx.head++

	var one [8]byte
	binary.LittleEndian.PutUint64(one[:], 1)
	unix.Write(b.Fd, one[:])
	return nil
}

// FrameData returns the byte contents of buffer bufIdx within b's mapped
// region.
func (p *NICProvider) FrameData(b *Binding, bufIdx uint32) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	st, ok := p.bindings[b]
	if !ok {
		return nil
	}
	return st.region.Frame(bufIdx)
}

// Sent returns the slots TxSync has drained from b's TX ring, in order.
func (p *NICProvider) Sent(b *Binding) []Slot {
	p.mu.Lock()
	defer p.mu.Unlock()
	st, ok := p.bindings[b]
	if !ok {
		return nil
	}
	return append([]Slot(nil), st.sent...)
}

// RxSync drains b's eventfd counter and reports how many frames are newly
// visible since tail. InjectFrame already advances head directly; draining
// the eventfd here just consumes the readiness signal Poll woke up on.
func (p *NICProvider) RxSync(b *Binding) (int, error) {
	var buf [8]byte
	unix.Read(b.Fd, buf[:])
	return int(b.Rx.Head() - b.Rx.Tail()), nil
}

// TxSync drains every frame the worker enqueued on b's TX ring into the
// provider's sent log and frees their slots.
func (p *NICProvider) TxSync(b *Binding) error {
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

// Poll waits on the shared PollSet and filters its result down to bindings
// in set, looping on an infinite timeout until one in set wakes.
func (p *NICProvider) Poll(set []*Binding, timeout time.Duration) ([]*Binding, error) {
	inSet := make(map[*Binding]bool, len(set))
	for _, b := range set {
		inSet[b] = true
	}
	for {
		ready, err := p.pollset.Wait(timeout)
		if err != nil {
			return nil, err
		}
		if ready == nil {
			return nil, nil
		}
		var filtered []*Binding
		for _, b := range ready {
			if inSet[b] {
				filtered = append(filtered, b)
			}
		}
		if len(filtered) > 0 {
			return filtered, nil
		}
		if timeout >= 0 {
			return nil, nil
		}
	}
}

// Close unregisters b, closes its eventfd, and unmaps its Region.
func (p *NICProvider) Close(b *Binding) error {
	p.mu.Lock()
	st, ok := p.bindings[b]
	delete(p.bindings, b)
	p.mu.Unlock()
	if !ok {
		return api.ErrBindingFailed
	}
	p.pollset.Unregister(b)
	unix.Close(b.Fd)
	return st.region.Close()
}

// Shutdown unblocks any in-flight Poll via the shared PollSet's done
// descriptor, satisfying the duck-typed shutdownable interface
// forward.Worker.Shutdown looks for.
func (p *NICProvider) Shutdown() {
	p.pollset.Close()
}
