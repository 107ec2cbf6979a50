// File: ring/provider.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Provider models the kernel-bypass NIC framework a ring pair is bound to.
// A real implementation would wrap a DPDK/AF_XDP-style driver; tests and
// cmd/iofwd's default configuration use LoopbackProvider instead.

package ring

import "time"

// Mode selects how a ring pair's shared-memory region is mapped.
type Mode int

const (
	// ModeZeroCopy maps NIC-owned buffers directly; RxSync/TxSync never
	// copy payload bytes, only descriptor metadata.
	ModeZeroCopy Mode = iota
	// ModeCopy falls back to a bounce buffer when zero-copy mapping is
	// unavailable for a given NIC/driver combination.
	ModeCopy
)

// Binding is one bound ring pair: an RX ring, a TX ring, and the file
// descriptor a Provider's Poll can wait on for readiness.
type Binding struct {
	Rx       *RxRing
	Tx       *TxRing
	Fd       int
	RingIdx  int
	NICName  string
}

// Provider is the contract a worker uses to acquire and operate a ring pair
// without knowing which kernel-bypass framework backs it.
type Provider interface {
	// Open binds ring index ringIdx of NIC nicName in the given mode and
	// returns the resulting Binding. The shared-memory region backing the
	// rings is mapped as part of Open.
	Open(nicName string, ringIdx int, mode Mode) (*Binding, error)

	// RxSync synchronises the RX ring with the binding and returns the
	// number of frames visible between its tail and head cursors.
	// LoopbackProvider and NICProvider advance head in InjectFrame, so
	// their RxSync does not move it.
	RxSync(b *Binding) (int, error)

	// TxSync drains frames the worker has enqueued in the TX ring onto the
	// wire and advances the TX ring's tail cursor to free their slots.
	TxSync(b *Binding) error

	// FrameData returns the byte contents of the buffer bufIdx refers to
	// within b's mapped region. The returned slice may be longer than a
	// slot's Len (NICProvider returns the region's fixed frame size;
	// LoopbackProvider returns the injected frame's length); callers slice
	// it down to a slot's Len.
	FrameData(b *Binding, bufIdx uint32) []byte

	// Poll blocks until at least one binding in set is ready for RxSync, or
	// timeout elapses. A negative timeout blocks indefinitely.
	Poll(set []*Binding, timeout time.Duration) ([]*Binding, error)

	// Close releases the binding's shared-memory mapping and descriptors.
	Close(b *Binding) error
}
