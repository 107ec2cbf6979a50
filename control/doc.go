// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics, configuration control, and debug introspection layer for
// the iofwd forwarding engine. The routing table itself is never touched by
// this package: it is built once by an external seeder and frozen before
// workers start (see lpm.Table). What lives here is everything around that:
//
//   - Immutable snapshot config reads and atomic updates (ambient settings:
//     NIC list, ring-index count, default next-hop interface; there is no
//     ring-mode setting)
//   - Runtime observers for config hot-reload
//   - Per-worker metrics telemetry
//   - State export, debug hooks, and probe registration
package control
