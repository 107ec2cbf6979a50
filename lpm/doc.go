// Package lpm implements the longest-prefix-match routing table used by the
// forwarding engine: a binary radix trie over IPv4 destination bits, backed
// by a bump-allocated node arena.
//
// The table is built once at startup from a sequence of Insert calls (the
// route-table feed is out of scope here — some external seeder owns that)
// and is then treated as an immutable, many-reader structure for the
// lifetime of the process: there is no delete, only overwrite-on-reinsert.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package lpm
