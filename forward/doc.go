// Package forward implements the forwarding worker: a long-running task
// that owns one ring pair per NIC at a single hardware ring index, polls
// for RX readiness, drains each RX ring, performs an LPM lookup per frame,
// and hands the frame off to the chosen TX ring by swapping buffer
// indices — never copying payload bytes.
//
// Workers partition by ring index: worker k owns ring k on every NIC and
// never touches any other worker's rings, so no lock is needed on the fast
// path.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package forward
