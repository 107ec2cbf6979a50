// File: lpm/trie.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Binary radix trie keyed by IPv4 destination bits, supporting insert of
// (prefix, cidr) -> (next-hop IP, next-hop interface) and longest-prefix
// search returning the deepest matched next-hop.

package lpm

import "github.com/momentics/iofwd/api"

// Table is an LPM routing table. The zero value is not usable; use NewTable.
type Table struct {
	arena arena
	root  int32
}

// NewTable establishes an empty table with a single root node. Subsequent
// Search calls return "not found" for every key until something is inserted.
func NewTable() *Table {
	t := &Table{}
	t.root = t.arena.alloc()
	return t
}

// Insert walks cidr bits of key MSB-first, following or creating the
// corresponding child at each step, and writes nextHopIP/nextHopIface into
// the node at depth cidr. Reinserting an existing (prefix, cidr) overwrites
// the stored next-hop in place; there is no error for duplicates.
//
// Preconditions: 1 <= cidr <= 32, nextHopIface != 0. nextHopIface == 0 is a
// programming error (ErrRouteBadNextHop): the table cannot distinguish a
// route with interface 0 from "no terminal here".
func (t *Table) Insert(key [4]byte, cidr int, nextHopIP uint32, nextHopIface uint8) error {
	if cidr < 1 || cidr > 32 {
		return api.ErrRouteBadCIDR
	}
	if nextHopIface == 0 {
		return api.ErrRouteBadNextHop
	}

	cur := t.root
	for i := 0; i < cidr; i++ {
		n := t.arena.at(cur)
		if bitAt(key, i) == 0 {
			if n.left == noChild {
				n.left = t.arena.alloc()
			}
			cur = n.left
		} else {
			if n.right == noChild {
				n.right = t.arena.alloc()
			}
			cur = n.right
		}
	}

	n := t.arena.at(cur)
	n.nextHopIP = nextHopIP
	n.nextHopIface = nextHopIface
	return nil
}

// Search walks from root bit-by-bit MSB-first for at most 32 bits. At every
// node visited, if its stored interface is non-zero it becomes the current
// best match, overwriting any earlier, shallower match — longest-prefix
// semantics fall directly out of "last match wins" during descent. Search
// terminates early when a child link is absent.
func (t *Table) Search(key [4]byte) (found bool, nextHopIP uint32, nextHopIface uint8) {
	cur := t.root
	for i := 0; i < 32 && cur != noChild; i++ {
		n := t.arena.at(cur)
		if n.nextHopIface != 0 {
			found, nextHopIP, nextHopIface = true, n.nextHopIP, n.nextHopIface
		}
		if bitAt(key, i) == 0 {
			cur = n.left
		} else {
			cur = n.right
		}
	}
	if cur != noChild {
		n := t.arena.at(cur)
		if n.nextHopIface != 0 {
			found, nextHopIP, nextHopIface = true, n.nextHopIP, n.nextHopIface
		}
	}
	return
}

// NumNodes reports the number of arena-allocated nodes, for diagnostics and
// capacity planning (e.g. sizing the route-table feed's progress reporting).
func (t *Table) NumNodes() int {
	return t.arena.numNodes()
}

// Destroy releases the entire arena chain. Nodes are never reclaimed
// individually during the table's lifetime; this drops the whole chain at
// once for the garbage collector.
func (t *Table) Destroy() {
	t.arena.cells = nil
	t.arena.next = 0
	t.root = noChild
}

// bitAt extracts bit index i (0-based, MSB-first) from a 4-byte big-endian
// IPv4 address: (byte >> (7 - i%8)) & 1.
func bitAt(key [4]byte, i int) byte {
	b := key[i/8]
	return (b >> (7 - uint(i%8))) & 1
}
