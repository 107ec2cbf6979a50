// File: forward/frame.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Ethernet II + IPv4 frame parsing, promoted from spec.md §9's open
// question ("a robust implementation should validate frame length >= 34
// bytes and ethertype == 0x0800") into required behavior: malformed
// frames are dropped and counted rather than read unconditionally.

package forward

const (
	ethernetHeaderLen = 14
	ipv4DestOffset    = ethernetHeaderLen + 16
	minFrameLen       = 34
	ethertypeIPv4     = 0x0800
	ethertypeOffset   = 12
)

// parseIPv4Dest extracts the destination IPv4 address from an Ethernet II
// frame carrying IPv4, at the fixed offset the spec assumes: 14-byte
// Ethernet header + 16 bytes into the IPv4 header. Returns ok=false if the
// frame is too short or its ethertype is not 0x0800.
func parseIPv4Dest(frame []byte) (dst [4]byte, ok bool) {
	if len(frame) < minFrameLen {
		return dst, false
	}
	ethertype := uint16(frame[ethertypeOffset])<<8 | uint16(frame[ethertypeOffset+1])
	if ethertype != ethertypeIPv4 {
		return dst, false
	}
	copy(dst[:], frame[ipv4DestOffset:ipv4DestOffset+4])
	return dst, true
}
