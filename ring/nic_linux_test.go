//go:build linux

// File: ring/nic_linux_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ring

import (
	"testing"
	"time"
)

func TestNICProviderInjectAndDrain(t *testing.T) {
	p, err := NewNICProvider()
	if err != nil {
		t.Fatalf("NewNICProvider: %v", err)
	}

	rxBinding, err := p.Open("nic0", 0, ModeZeroCopy)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	txBinding, err := p.Open("nic1", 0, ModeZeroCopy)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	payload := []byte("hello kernel-bypass world")
	if err := p.InjectFrame(rxBinding, payload); err != nil {
		t.Fatalf("InjectFrame: %v", err)
	}

	ready, err := p.Poll([]*Binding{rxBinding, txBinding}, 2*time.Second)
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if len(ready) != 1 || ready[0] != rxBinding {
		t.Fatalf("Poll returned %v, want [rxBinding]", ready)
	}

	if _, err := p.RxSync(rxBinding); err != nil {
		t.Fatalf("RxSync: %v", err)
	}
	if rxBinding.Rx.IsEmpty() {
		t.Fatal("RX ring should carry the injected frame")
	}

	slot := rxBinding.Rx.Peek()
	got := p.FrameData(rxBinding, slot.BufIdx)[:slot.Len]
	if string(got) != string(payload) {
		t.Fatalf("FrameData = %q, want %q", got, payload)
	}

	oldBufIdx, ok := txBinding.Tx.SwapPush(Slot{BufIdx: slot.BufIdx, Len: slot.Len})
	if !ok {
		t.Fatal("SwapPush onto an empty TX ring should succeed")
	}
	rxBinding.Rx.SwapBufIdx(oldBufIdx)
	rxBinding.Rx.Advance()

	if err := p.TxSync(txBinding); err != nil {
		t.Fatalf("TxSync: %v", err)
	}
	sent := p.Sent(txBinding)
	if len(sent) != 1 || sent[0].BufIdx != slot.BufIdx || sent[0].Len != slot.Len {
		t.Fatalf("Sent() = %+v, want one slot matching the injected frame", sent)
	}

	if err := p.Close(rxBinding); err != nil {
		t.Fatalf("Close rxBinding: %v", err)
	}
	if err := p.Close(txBinding); err != nil {
		t.Fatalf("Close txBinding: %v", err)
	}
}

func TestNICProviderPollTimesOutWithNoTraffic(t *testing.T) {
	p, err := NewNICProvider()
	if err != nil {
		t.Fatalf("NewNICProvider: %v", err)
	}
	b, err := p.Open("nic0", 1, ModeZeroCopy)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close(b)

	ready, err := p.Poll([]*Binding{b}, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if ready != nil {
		t.Fatalf("Poll with no injected traffic should time out with nil, got %v", ready)
	}
}

func TestNICProviderShutdownUnblocksPoll(t *testing.T) {
	p, err := NewNICProvider()
	if err != nil {
		t.Fatalf("NewNICProvider: %v", err)
	}
	b, err := p.Open("nic0", 2, ModeZeroCopy)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	done := make(chan struct{})
	go func() {
		p.Poll([]*Binding{b}, -1)
		close(done)
	}()

	p.Shutdown()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not unblock an in-flight infinite Poll")
	}
}
