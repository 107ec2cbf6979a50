// File: lpm/key.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Helpers for converting between net.IP and the fixed [4]byte keys the trie
// operates on. The trie itself never imports net/CIDR parsing on the hot
// path — Search takes a raw [4]byte pulled straight out of a frame buffer.

package lpm

import (
	"fmt"
	"net"
	"net/netip"
)

// KeyFromIP converts an IPv4 net.IP into the trie's [4]byte key form.
// Returns an error if ip is not a valid IPv4 address.
func KeyFromIP(ip net.IP) ([4]byte, error) {
	var key [4]byte
	v4 := ip.To4()
	if v4 == nil {
		return key, fmt.Errorf("lpm: %s is not an IPv4 address", ip)
	}
	copy(key[:], v4)
	return key, nil
}

// ParsePrefix parses a "a.b.c.d/n" CIDR literal into the trie's key and
// cidr length, for use by route-table seeders reading a static source.
func ParsePrefix(s string) (key [4]byte, cidr int, err error) {
	prefix, err := netip.ParsePrefix(s)
	if err != nil {
		return key, 0, fmt.Errorf("lpm: parse prefix %q: %w", s, err)
	}
	addr := prefix.Addr()
	if !addr.Is4() {
		return key, 0, fmt.Errorf("lpm: %q is not IPv4", s)
	}
	key = addr.As4()
	return key, prefix.Bits(), nil
}
