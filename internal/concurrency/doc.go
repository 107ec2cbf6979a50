// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Lock-free ring buffer primitives and a small background executor used off
// the forwarding hot path (e.g. periodic metrics aggregation). CPU pinning
// for forwarding workers lives in the top-level affinity package, not here.
package concurrency
