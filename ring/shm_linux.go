//go:build linux

// File: ring/shm_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Frame buffer region: a single anonymous mmap'd arena of fixed-size
// frames, indexed by the same buf_idx values slots carry. A real Provider
// maps this region once per NIC binding, shared with the kernel-bypass
// driver so RxSync/TxSync hand over ownership of a buffer by index alone —
// no payload copy ever crosses the RX/TX boundary.

package ring

import (
	"golang.org/x/sys/unix"

	"github.com/momentics/iofwd/api"
)

// Region is a fixed-size-frame shared-memory arena.
type Region struct {
	mem       []byte
	frameSize int
	numFrames int
}

// NewRegion mmaps an anonymous region sized for numFrames frames of
// frameSize bytes each. Anonymous+private mapping mirrors the AF_XDP UMEM
// allocation pattern: one large region registered with the driver once,
// never resized for the lifetime of the binding.
func NewRegion(frameSize, numFrames int) (*Region, error) {
	size := frameSize * numFrames
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, api.ErrBindingFailed
	}
	return &Region{mem: mem, frameSize: frameSize, numFrames: numFrames}, nil
}

// Frame returns the byte slice backing buffer index idx. idx must be in
// [0, numFrames).
func (r *Region) Frame(idx uint32) []byte {
	off := int(idx) * r.frameSize
	return r.mem[off : off+r.frameSize]
}

// NumFrames reports the region's frame capacity.
func (r *Region) NumFrames() int {
	return r.numFrames
}

// Close unmaps the region. Any Binding still referencing buffer indices
// into it becomes invalid.
func (r *Region) Close() error {
	if r.mem == nil {
		return nil
	}
	err := unix.Munmap(r.mem)
	r.mem = nil
	if err != nil {
		return api.ErrBindingFailed
	}
	return nil
}
