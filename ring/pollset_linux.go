//go:build linux

// File: ring/pollset_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux epoll(7)-backed readiness wait over a set of binding file
// descriptors, for Providers that wrap a real kernel-bypass NIC binding
// exposing one pollable fd per ring pair.

package ring

import (
	"encoding/binary"
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/iofwd/api"
)

// PollSet multiplexes readiness across every Binding registered with it,
// using one shared epoll instance.
type PollSet struct {
	epfd     int
	byFd     map[int32]*Binding
	doneFd   int // eventfd closed by Close to unblock an in-flight Wait
}

// NewPollSet creates an empty epoll instance.
func NewPollSet() (*PollSet, error) {
	epfd, err := unix.EpollCreate1(0)
	if err != nil {
		return nil, api.ErrPollFailed
	}
	doneFd, err := unix.Eventfd(0, unix.EFD_NONBLOCK)
	if err != nil {
		unix.Close(epfd)
		return nil, api.ErrPollFailed
	}
	ps := &PollSet{epfd: epfd, byFd: make(map[int32]*Binding), doneFd: doneFd}
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, doneFd, &unix.EpollEvent{
		Events: unix.EPOLLIN,
		Fd:     int32(doneFd),
	}); err != nil {
		unix.Close(epfd)
		unix.Close(doneFd)
		return nil, api.ErrPollFailed
	}
	return ps, nil
}

// Register adds b's fd to the epoll watch set.
func (ps *PollSet) Register(b *Binding) error {
	ev := &unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(b.Fd)}
	if err := unix.EpollCtl(ps.epfd, unix.EPOLL_CTL_ADD, b.Fd, ev); err != nil {
		return api.ErrPollFailed
	}
	ps.byFd[int32(b.Fd)] = b
	return nil
}

// Unregister removes b's fd from the epoll watch set.
func (ps *PollSet) Unregister(b *Binding) error {
	unix.EpollCtl(ps.epfd, unix.EPOLL_CTL_DEL, b.Fd, nil)
	delete(ps.byFd, int32(b.Fd))
	return nil
}

// Wait blocks until at least one registered binding is readable, Close is
// called, or timeout elapses. A negative timeout blocks indefinitely, as the
// forwarding worker's steady-state loop does (spec: block with infinite
// timeout rather than busy-poll when every ring is empty).
func (ps *PollSet) Wait(timeout time.Duration) ([]*Binding, error) {
	ms := -1
	if timeout >= 0 {
		ms = int(timeout / time.Millisecond)
	}
	var raw [64]unix.EpollEvent
	n, err := unix.EpollWait(ps.epfd, raw[:], ms)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, api.ErrPollFailed
	}
	var ready []*Binding
	for i := 0; i < n; i++ {
		fd := raw[i].Fd
		if int(fd) == ps.doneFd {
			return nil, nil
		}
		if b, ok := ps.byFd[fd]; ok {
			ready = append(ready, b)
		}
	}
	return ready, nil
}

// Close unblocks any in-flight Wait and releases the epoll instance.
func (ps *PollSet) Close() error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], 1)
	unix.Write(ps.doneFd, buf[:])
	unix.Close(ps.doneFd)
	return unix.Close(ps.epfd)
}
