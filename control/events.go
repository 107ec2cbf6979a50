// File: control/events.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// RecentEvents is a bounded operational log (cmd/iofwd records startup and
// hot-reload events) backed by internal/concurrency's single-producer,
// single-consumer lock-free ring buffer. It takes no mutex: Record and
// Snapshot both dequeue and enqueue, so calls from more than one goroutine
// at a time are not safe.

package control

import "github.com/momentics/iofwd/internal/concurrency"

// RecentEvents retains the last N recorded messages.
type RecentEvents struct {
	ring *concurrency.RingBuffer[string]
}

// NewRecentEvents allocates a log of the given power-of-two capacity.
func NewRecentEvents(capacity uint64) *RecentEvents {
	return &RecentEvents{ring: concurrency.NewRingBuffer[string](capacity)}
}

// Record appends msg, evicting the oldest entry if the log is full.
func (re *RecentEvents) Record(msg string) {
	if !re.ring.Enqueue(msg) {
		re.ring.Dequeue()
		re.ring.Enqueue(msg)
	}
}

// Snapshot returns every currently-retained message, oldest first. Not
// linearizable against concurrent Record calls; good enough for a debug
// probe, not for anything requiring an exact count.
func (re *RecentEvents) Snapshot() []string {
	n := re.ring.Len()
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		v, ok := re.ring.Dequeue()
		if !ok {
			break
		}
		out = append(out, v)
	}
	for _, v := range out {
		re.ring.Enqueue(v)
	}
	return out
}
