// Package ring implements the RX/TX descriptor ring abstraction that binds a
// forwarding worker to one kernel-bypass NIC ring pair. A ring holds a fixed
// number of (buffer index, length) slots in a shared-memory region mapped
// once at binding time; forwarding never copies frame payloads, only slot
// metadata, between an RX ring and a TX ring.
//
// Provider models the NIC framework itself (DPDK/AF_XDP-style) as a Go
// interface so the forwarding engine and its tests never depend on a
// specific driver. LoopbackProvider is a software implementation used by
// tests and by cmd/iofwd when no real NIC binding is configured.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package ring
