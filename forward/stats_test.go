package forward

import "testing"

func TestSnapshotReflectsForwardedCount(t *testing.T) {
	w, p := newTestWorker(t, []string{"nic0", "nic1"}, 1)

	rxBinding := w.bindings[0]
	for i := 0; i < 3; i++ {
		frame := buildFrame([4]byte{192, 0, 2, byte(i)})
		if err := p.InjectFrame(rxBinding, frame); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.RunOnce(); err != nil {
		t.Fatal(err)
	}

	snap := w.Snapshot()
	key := w.metricKey("forwarded")
	if snap[key] != 3 {
		t.Fatalf("got %s=%d, want 3", key, snap[key])
	}
}
