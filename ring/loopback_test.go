package ring

import (
	"testing"
	"time"
)

func TestLoopbackInjectAndDrain(t *testing.T) {
	p := NewLoopbackProvider()
	b, err := p.Open("lo0", 0, ModeZeroCopy)
	if err != nil {
		t.Fatal(err)
	}

	frame := []byte{0xde, 0xad, 0xbe, 0xef}
	if err := p.InjectFrame(b, frame); err != nil {
		t.Fatal(err)
	}
	if b.Rx.IsEmpty() {
		t.Fatal("RX ring should not be empty after InjectFrame")
	}

	slot := b.Rx.Peek()
	got := p.FrameData(b, slot.BufIdx)
	if string(got) != string(frame) {
		t.Fatalf("got %v, want %v", got, frame)
	}
	b.Rx.Advance()

	if !b.Tx.Push(slot) {
		t.Fatal("push onto TX ring should succeed")
	}
	if err := p.TxSync(b); err != nil {
		t.Fatal(err)
	}
	sent := p.Sent(b)
	if len(sent) != 1 || sent[0].BufIdx != slot.BufIdx {
		t.Fatalf("got sent=%+v, want one slot matching %+v", sent, slot)
	}
}

func TestLoopbackPollWakesOnInject(t *testing.T) {
	p := NewLoopbackProvider()
	b, err := p.Open("lo0", 0, ModeZeroCopy)
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan []*Binding, 1)
	go func() {
		ready, _ := p.Poll([]*Binding{b}, -1)
		done <- ready
	}()

	time.Sleep(10 * time.Millisecond)
	if err := p.InjectFrame(b, []byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}

	select {
	case ready := <-done:
		if len(ready) != 1 || ready[0] != b {
			t.Fatalf("got %+v, want [b]", ready)
		}
	case <-time.After(time.Second):
		t.Fatal("Poll did not wake up within 1s of InjectFrame")
	}
}

func TestLoopbackPollTimesOut(t *testing.T) {
	p := NewLoopbackProvider()
	b, err := p.Open("lo0", 0, ModeZeroCopy)
	if err != nil {
		t.Fatal(err)
	}
	ready, err := p.Poll([]*Binding{b}, 20*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if ready != nil {
		t.Fatalf("expected no ready bindings on timeout, got %+v", ready)
	}
}

func TestLoopbackCloseRemovesBinding(t *testing.T) {
	p := NewLoopbackProvider()
	b, err := p.Open("lo0", 0, ModeZeroCopy)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Close(b); err != nil {
		t.Fatal(err)
	}
	if err := p.InjectFrame(b, []byte{1}); err == nil {
		t.Fatal("expected error injecting into a closed binding")
	}
}
