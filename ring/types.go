// File: ring/types.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Slot and ring-cursor arithmetic shared by RxRing and TxRing. Both ring
// kinds are fixed-capacity circular buffers of Slot over a driver-defined
// capacity of any size, addressed with unsigned wrap-around counters rather
// than positions directly, so "how many slots are occupied" is always
// head-tail without a separate full/empty flag.

package ring

import "github.com/momentics/iofwd/api"

// Slot is one descriptor entry: which shared-memory buffer holds the frame,
// and how many bytes of it are valid.
type Slot struct {
	BufIdx uint32
	Len    uint32
}

// ring is the cursor/backing-store pair embedded by RxRing and TxRing.
// Driver-defined ring capacities are not guaranteed to be powers of two
// (spec §3: "fixed capacity (driver-defined)"), so index arithmetic uses
// modulo, matching the netmap domain's nm_ring_next (next cursor index
// modulo num_slots) rather than a bitmask.
type ring struct {
	slots []Slot
	cap   uint32
}

func (r *ring) at(counter uint32) *Slot {
	return &r.slots[counter%r.cap]
}

// RxRing is the receive side of a ring pair: the NIC binding advances head
// as frames arrive, and the worker advances tail as it consumes them.
type RxRing struct {
	ring
	head uint32 // producer cursor, advanced as frames arrive
	tail uint32 // consumer cursor, advanced by the worker
}

// NewRxRing allocates an RX ring over an already-mapped slot region of any
// non-zero length (backing must come from the same shared-memory mapping
// the NIC binding writes buffer indices into).
func NewRxRing(backing []Slot) (*RxRing, error) {
	if len(backing) == 0 || backing == nil {
		return nil, api.ErrNoRings
	}
	return &RxRing{ring: ring{slots: backing, cap: uint32(len(backing))}}, nil
}

// IsEmpty reports whether the worker has consumed every frame the NIC has
// produced so far.
func (r *RxRing) IsEmpty() bool {
	return r.tail == r.head
}

// Peek returns the next unconsumed slot without advancing tail. Callers
// must check IsEmpty first; Peek on an empty ring is undefined.
func (r *RxRing) Peek() Slot {
	return *r.at(r.tail)
}

// Advance commits consumption of the slot returned by the most recent Peek.
func (r *RxRing) Advance() {
	r.tail++
}

// SwapBufIdx overwrites the buffer index of the not-yet-advanced slot at
// tail, completing the zero-copy hand-off: the forwarder has already moved
// this slot's original buf_idx onto a TX ring, and newBufIdx is the
// recycled buffer the NIC will now refill as a fresh receive buffer.
func (r *RxRing) SwapBufIdx(newBufIdx uint32) {
	r.at(r.tail).BufIdx = newBufIdx
}

// SetHead moves the producer cursor to head, publishing newly-arrived frames.
func (r *RxRing) SetHead(head uint32) {
	r.head = head
}

// Head reports the producer cursor, for Providers that need to read it back.
func (r *RxRing) Head() uint32 {
	return r.head
}

// Tail reports the consumer cursor, for Providers that need to publish it
// back to the kernel-bypass framework (e.g. refilling a companion fill ring).
func (r *RxRing) Tail() uint32 {
	return r.tail
}

// TxRing is the transmit side of a ring pair: the worker advances head as it
// enqueues outgoing frames, and the NIC binding advances tail as it drains
// them onto the wire.
type TxRing struct {
	ring
	head uint32 // producer cursor, advanced by the worker
	tail uint32 // consumer cursor, advanced by TxSync
}

// NewTxRing allocates a TX ring over an already-mapped slot region of any
// non-zero length.
func NewTxRing(backing []Slot) (*TxRing, error) {
	if len(backing) == 0 || backing == nil {
		return nil, api.ErrNoRings
	}
	return &TxRing{ring: ring{slots: backing, cap: uint32(len(backing))}}, nil
}

// Space reports how many free slots remain before the ring is full.
func (t *TxRing) Space() uint32 {
	return t.cap - (t.head - t.tail)
}

// IsFull reports whether Push would fail.
func (t *TxRing) IsFull() bool {
	return t.Space() == 0
}

// Push writes slot into the next free position and advances head. Returns
// false without writing anything if the ring has no free slot.
func (t *TxRing) Push(slot Slot) bool {
	if t.IsFull() {
		return false
	}
	*t.at(t.head) = slot
	t.head++
	return true
}

// SwapPush writes newSlot into the next free TX position and returns the
// buf_idx that previously occupied that position — the buffer the
// zero-copy swap hands back to the RX side for recycling. Returns
// ok=false without writing anything if the ring is full.
func (t *TxRing) SwapPush(newSlot Slot) (oldBufIdx uint32, ok bool) {
	if t.IsFull() {
		return 0, false
	}
	slot := t.at(t.head)
	oldBufIdx = slot.BufIdx
	*slot = newSlot
	t.head++
	return oldBufIdx, true
}

// SetTail moves the consumer cursor to tail, acknowledging frames the NIC has
// finished draining onto the wire and freeing their slots for reuse.
func (t *TxRing) SetTail(tail uint32) {
	t.tail = tail
}

// Head reports the producer cursor.
func (t *TxRing) Head() uint32 {
	return t.head
}

// Tail reports the consumer cursor.
func (t *TxRing) Tail() uint32 {
	return t.tail
}
