// File: affinity/binding.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// ThreadBinding adapts the package-level SetAffinity call to api.Affinity so
// a worker can report its pinned CPU through the same debug surface as
// everything else, instead of only logging a pin failure once at startup.

package affinity

import (
	"fmt"

	"github.com/momentics/iofwd/api"
)

var _ api.Affinity = (*ThreadBinding)(nil)

// ThreadBinding tracks one OS thread's CPU pin. NUMA binding is not
// supported by setAffinityPlatform, so numaID is always reported as -1.
type ThreadBinding struct {
	cpuID  int
	pinned bool
}

// NewThreadBinding returns an unpinned binding for the calling goroutine's
// OS thread. Pin must be called from that same goroutine to take effect,
// since setAffinityPlatform pins the calling thread.
func NewThreadBinding() *ThreadBinding {
	return &ThreadBinding{cpuID: -1}
}

// Pin assigns the calling OS thread to cpuID. numaID is accepted for
// interface compliance but otherwise ignored on every supported platform.
func (t *ThreadBinding) Pin(cpuID, numaID int) error {
	if err := SetAffinity(cpuID); err != nil {
		return fmt.Errorf("affinity: pin cpu %d: %w", cpuID, err)
	}
	t.cpuID = cpuID
	t.pinned = true
	return nil
}

// Unpin reports ErrNotSupported: no platform-neutral call exists to restore
// a thread's original affinity mask once narrowed.
func (t *ThreadBinding) Unpin() error {
	return api.ErrNotSupported
}

// Get reports the last CPU this binding pinned to, or an error if never pinned.
func (t *ThreadBinding) Get() (cpuID, numaID int, err error) {
	if !t.pinned {
		return -1, -1, api.ErrInvalidArgument
	}
	return t.cpuID, -1, nil
}

// Scope reports that this binding operates at OS-thread granularity.
func (t *ThreadBinding) Scope() api.AffinityScope {
	return api.ScopeThread
}

// ImmutableDescriptor returns a snapshot of the current binding state.
func (t *ThreadBinding) ImmutableDescriptor() api.AffinityDescriptor {
	return api.AffinityDescriptor{
		CPUID:  t.cpuID,
		NUMAID: -1,
		Scope:  api.ScopeThread,
		Pinned: t.pinned,
	}
}
