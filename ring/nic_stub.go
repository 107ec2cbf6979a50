//go:build !linux

// File: ring/nic_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ring

import (
	"time"

	"github.com/momentics/iofwd/api"
)

var _ Provider = (*NICProvider)(nil)

// NICProvider is a non-functional stand-in off Linux, matching PollSet and
// Region's own off-Linux stubs: this forwarder's only real NIC-binding
// Provider is Linux-native (epoll, mmap'd shared memory).
type NICProvider struct{}

// NewNICProvider always fails off Linux.
func NewNICProvider() (*NICProvider, error) {
	return nil, api.ErrBindingFailed
}

// Open always fails off Linux.
func (p *NICProvider) Open(nicName string, ringIdx int, mode Mode) (*Binding, error) {
	return nil, api.ErrBindingFailed
}

// RxSync always fails off Linux.
func (p *NICProvider) RxSync(b *Binding) (int, error) {
	return 0, api.ErrBindingFailed
}

// TxSync always fails off Linux.
func (p *NICProvider) TxSync(b *Binding) error {
	return api.ErrBindingFailed
}

// FrameData always returns nil off Linux.
func (p *NICProvider) FrameData(b *Binding, bufIdx uint32) []byte {
	return nil
}

// Poll always fails off Linux.
func (p *NICProvider) Poll(set []*Binding, timeout time.Duration) ([]*Binding, error) {
	return nil, api.ErrBindingFailed
}

// Close is a no-op off Linux.
func (p *NICProvider) Close(b *Binding) error {
	return nil
}

// Shutdown is a no-op off Linux.
func (p *NICProvider) Shutdown() {}
