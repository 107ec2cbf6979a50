// File: lpm/arena.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bump-allocated node arena. Trie nodes never outlive the table and are
// never freed individually; they share one allocation lifetime with the
// table itself (spec: "trie_memory_t" becomes a vector-of-chunks with O(1)
// append; destruction frees the whole chain). Nodes are addressed by
// int32 index rather than pointer so the arena can grow by appending a
// fresh cell without invalidating previously handed-out indices.

package lpm

// cellSize is the number of nodes per arena cell. 32,768 nodes/cell keeps
// each cell a few hundred KB, large enough to amortize allocation over
// millions of routes without a single pre-sized giant slice.
const cellSize = 32768

// noChild marks the absence of a left/right child.
const noChild int32 = -1

// node is one position in the binary prefix tree.
type node struct {
	left, right  int32  // arena indices, noChild if absent
	nextHopIP    uint32 // 0 sentinel: "no route terminates here" (with iface==0)
	nextHopIface uint8  // 0 sentinel: "no route terminates here"
}

// arena is a linked chain of fixed-size node cells, bump-allocated.
type arena struct {
	cells []*[cellSize]node
	next  int32 // next free global index
}

// alloc reserves and zero-initializes the next node, returning its index.
func (a *arena) alloc() int32 {
	idx := a.next
	cellIdx := int(idx) / cellSize
	if cellIdx >= len(a.cells) {
		a.cells = append(a.cells, &[cellSize]node{})
	}
	a.next++
	n := &a.cells[cellIdx][int(idx)%cellSize]
	n.left, n.right = noChild, noChild
	return idx
}

// at returns a pointer to the node at idx. idx must have come from alloc.
func (a *arena) at(idx int32) *node {
	return &a.cells[int(idx)/cellSize][int(idx)%cellSize]
}

// numNodes reports how many nodes have been allocated so far (diagnostics).
func (a *arena) numNodes() int {
	return int(a.next)
}
