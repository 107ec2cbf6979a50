// File: ring/batch_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ring

import "testing"

func TestPendingBatchReflectsUnconsumedSlots(t *testing.T) {
	rx, err := NewRxRing(make([]Slot, 4))
	if err != nil {
		t.Fatalf("NewRxRing: %v", err)
	}
	rx.SetHead(3)

	batch := rx.PendingBatch()
	if batch.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", batch.Len())
	}

	rx.Advance()
	batch = rx.PendingBatch()
	if batch.Len() != 2 {
		t.Fatalf("after Advance, Len() = %d, want 2", batch.Len())
	}
}

func TestSlotBatchSplitAndSlice(t *testing.T) {
	b := &SlotBatch{slots: []Slot{{BufIdx: 0}, {BufIdx: 1}, {BufIdx: 2}, {BufIdx: 3}}}

	first, second := b.Split(2)
	if first.Len() != 2 || second.Len() != 2 {
		t.Fatalf("Split(2) lens = %d, %d, want 2, 2", first.Len(), second.Len())
	}
	if second.Get(0).BufIdx != 2 {
		t.Fatalf("second.Get(0).BufIdx = %d, want 2", second.Get(0).BufIdx)
	}

	span := b.Slice(1, 3)
	if span.Len() != 2 || span.Get(0).BufIdx != 1 || span.Get(1).BufIdx != 2 {
		t.Fatalf("Slice(1,3) unexpected contents")
	}

	if b.Get(99) != (Slot{}) {
		t.Fatalf("Get out of range should return zero Slot")
	}
}

func TestSlotBatchReset(t *testing.T) {
	b := &SlotBatch{slots: []Slot{{BufIdx: 0}, {BufIdx: 1}}}
	b.Reset()
	if b.Len() != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", b.Len())
	}
}
