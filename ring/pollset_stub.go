//go:build !linux

// File: ring/pollset_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Non-Linux fallback: kernel-bypass ring bindings in this forwarder are
// Linux-native (epoll, mmap'd shared memory), so off-Linux builds get a
// PollSet that always reports ErrPollFailed rather than a fd-based wait.

package ring

import (
	"time"

	"github.com/momentics/iofwd/api"
)

// PollSet is a non-functional stand-in on platforms without epoll.
type PollSet struct{}

// NewPollSet always fails off Linux.
func NewPollSet() (*PollSet, error) {
	return nil, api.ErrPollFailed
}

// Register always fails off Linux.
func (ps *PollSet) Register(b *Binding) error {
	return api.ErrPollFailed
}

// Unregister always fails off Linux.
func (ps *PollSet) Unregister(b *Binding) error {
	return api.ErrPollFailed
}

// Wait always fails off Linux.
func (ps *PollSet) Wait(timeout time.Duration) ([]*Binding, error) {
	return nil, api.ErrPollFailed
}

// Close is a no-op off Linux.
func (ps *PollSet) Close() error {
	return nil
}
