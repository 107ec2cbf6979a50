// File: ring/batch.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// SlotBatch is a view over a contiguous span of Slot descriptors, used to
// hand a debug probe or test the set of currently-pending RX slots. Slice
// and Split reslice the batch's own slice without copying.

package ring

import "github.com/momentics/iofwd/api"

var _ api.Batch[Slot] = (*SlotBatch)(nil)

// SlotBatch wraps a []Slot slice so it satisfies api.Batch[Slot].
type SlotBatch struct {
	slots []Slot
}

// Len returns item count in this batch instance.
func (b *SlotBatch) Len() int {
	return len(b.slots)
}

// Get retrieves an item by index, returning the zero Slot if out of range.
func (b *SlotBatch) Get(index int) Slot {
	if index < 0 || index >= len(b.slots) {
		return Slot{}
	}
	return b.slots[index]
}

// Slice returns a zero-copy span of the batch.
func (b *SlotBatch) Slice(start, end int) api.Batch[Slot] {
	if start < 0 {
		start = 0
	}
	if end > len(b.slots) {
		end = len(b.slots)
	}
	if start > end {
		start = end
	}
	return &SlotBatch{slots: b.slots[start:end]}
}

// Underlying returns the native storage as a slice.
func (b *SlotBatch) Underlying() []Slot {
	return b.slots
}

// Split divides the batch into two zero-alloc sub-batches at position idx.
func (b *SlotBatch) Split(idx int) (first, second api.Batch[Slot]) {
	if idx < 0 {
		idx = 0
	}
	if idx > len(b.slots) {
		idx = len(b.slots)
	}
	return &SlotBatch{slots: b.slots[:idx]}, &SlotBatch{slots: b.slots[idx:]}
}

// Reset clears the batch to zero length; the underlying array is retained.
func (b *SlotBatch) Reset() {
	b.slots = b.slots[:0]
}

// PendingBatch returns every slot the worker has not yet consumed, ordered
// oldest-first. The slots are copied into a fresh slice, since the pending
// span may wrap past the end of the ring's backing array. Used by debug
// probes and tests, not the steady-state loop itself, which uses
// Peek/Advance directly.
func (r *RxRing) PendingBatch() api.Batch[Slot] {
	n := r.head - r.tail
	out := make([]Slot, n)
	for i := uint32(0); i < n; i++ {
		out[i] = *r.at(r.tail + i)
	}
	return &SlotBatch{slots: out}
}
