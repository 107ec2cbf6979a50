//go:build !linux

// File: ring/shm_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ring

import "github.com/momentics/iofwd/api"

// Region is a non-functional stand-in off Linux: the real shared-memory
// frame region relies on anonymous mmap, which this forwarder only wires up
// for Linux kernel-bypass NICs.
type Region struct{}

// NewRegion always fails off Linux.
func NewRegion(frameSize, numFrames int) (*Region, error) {
	return nil, api.ErrBindingFailed
}

// Frame panics if ever called: NewRegion never returns a usable Region off
// Linux, so no caller should reach this.
func (r *Region) Frame(idx uint32) []byte {
	panic("ring: Region unavailable on this platform")
}

// NumFrames always reports zero off Linux.
func (r *Region) NumFrames() int {
	return 0
}

// Close is a no-op off Linux.
func (r *Region) Close() error {
	return nil
}
