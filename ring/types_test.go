package ring

import "testing"

func TestRxRingEmptyThenFill(t *testing.T) {
	rx, err := NewRxRing(make([]Slot, 4))
	if err != nil {
		t.Fatal(err)
	}
	if !rx.IsEmpty() {
		t.Fatal("freshly constructed ring should be empty")
	}
	*rx.at(0) = Slot{BufIdx: 7, Len: 64}
	rx.SetHead(1)
	if rx.IsEmpty() {
		t.Fatal("ring with head=1 tail=0 should not be empty")
	}
	got := rx.Peek()
	if got.BufIdx != 7 || got.Len != 64 {
		t.Fatalf("got %+v", got)
	}
	rx.Advance()
	if !rx.IsEmpty() {
		t.Fatal("ring should be empty after consuming the only slot")
	}
}

func TestTxRingPushUntilFull(t *testing.T) {
	tx, err := NewTxRing(make([]Slot, 2))
	if err != nil {
		t.Fatal(err)
	}
	if tx.Space() != 2 {
		t.Fatalf("fresh ring space = %d, want 2", tx.Space())
	}
	if !tx.Push(Slot{BufIdx: 1, Len: 10}) {
		t.Fatal("first push should succeed")
	}
	if !tx.Push(Slot{BufIdx: 2, Len: 20}) {
		t.Fatal("second push should succeed")
	}
	if tx.Push(Slot{BufIdx: 3, Len: 30}) {
		t.Fatal("third push on a 2-slot ring should fail")
	}
	if !tx.IsFull() {
		t.Fatal("ring should report full")
	}
}

func TestTxRingFreesSpaceAfterSetTail(t *testing.T) {
	tx, err := NewTxRing(make([]Slot, 2))
	if err != nil {
		t.Fatal(err)
	}
	tx.Push(Slot{BufIdx: 1, Len: 10})
	tx.Push(Slot{BufIdx: 2, Len: 20})
	tx.SetTail(1)
	if tx.Space() != 1 {
		t.Fatalf("space after draining one slot = %d, want 1", tx.Space())
	}
	if !tx.Push(Slot{BufIdx: 3, Len: 30}) {
		t.Fatal("push after drain should succeed")
	}
}

func TestNewRingRejectsEmptyBacking(t *testing.T) {
	if _, err := NewRxRing(nil); err == nil {
		t.Fatal("expected error for nil backing")
	}
	if _, err := NewTxRing(make([]Slot, 0)); err == nil {
		t.Fatal("expected error for zero-length backing")
	}
}

// TestNonPowerOfTwoCapacityWraps confirms ring indexing works correctly for
// a driver-defined capacity that is not a power of two (spec §3: "fixed
// capacity (driver-defined)" gives no power-of-two guarantee).
func TestNonPowerOfTwoCapacityWraps(t *testing.T) {
	tx, err := NewTxRing(make([]Slot, 3))
	if err != nil {
		t.Fatal(err)
	}
	for i := uint32(0); i < 3; i++ {
		if !tx.Push(Slot{BufIdx: i, Len: i}) {
			t.Fatalf("push %d should succeed on a 3-slot ring", i)
		}
	}
	if !tx.IsFull() {
		t.Fatal("ring should report full after 3 pushes on a 3-slot ring")
	}
	tx.SetTail(1)
	if !tx.Push(Slot{BufIdx: 9, Len: 9}) {
		t.Fatal("push after draining one slot should succeed")
	}
	// The write landed at counter 3, which wraps to backing index (3 % 3)
	// == 0 on this 3-slot ring — a power-of-two bitmask would instead wrap
	// it to (3 & 3) == 3, out of bounds for a 3-element backing slice.
	if got := *tx.at(3); got.BufIdx != 9 {
		t.Fatalf("wrapped slot = %+v, want BufIdx 9", got)
	}
}
