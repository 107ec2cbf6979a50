// File: forward/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package forward

import "fmt"

// Config is the frozen, validated view a Worker is constructed from. It is
// taken from a control.ConfigStore snapshot at startup and never mutated
// afterward — config is frozen once workers start, the same composition
// rule that freezes the route table before the steady-state loop begins.
type Config struct {
	// NICNames is the ordered list of NICs every worker binds, one ring
	// pair per NIC at the worker's ring index. A route's next-hop
	// interface is a 1-based index into this list: interface i selects
	// NICNames[i-1]'s TX ring.
	NICNames []string

	// DefaultNextHopIface is used when an LPM lookup misses. Flagged in
	// the design notes as likely unintended for production but kept as a
	// configurable default rather than removed.
	DefaultNextHopIface uint8
}

// Validate checks that NICNames is non-empty and DefaultNextHopIface is a
// valid 1-based index into it.
func (c Config) Validate() error {
	if len(c.NICNames) == 0 {
		return fmt.Errorf("forward: config has no NICs")
	}
	if c.DefaultNextHopIface == 0 || int(c.DefaultNextHopIface) > len(c.NICNames) {
		return fmt.Errorf("forward: default next-hop interface %d out of range [1, %d]", c.DefaultNextHopIface, len(c.NICNames))
	}
	return nil
}
