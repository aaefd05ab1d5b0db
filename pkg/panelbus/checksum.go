// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Diego Elio Pettenò

package panelbus

// Checksum computes the one-byte checksum trailer for a payload: the byte
// sum modulo 256, XORed with a fixed mask. It is an additive checksum, good
// for catching line corruption, nothing more.
func Checksum(payload []byte) byte {
	var sum byte
	for _, b := range payload {
		sum += b
	}
	return sum ^ checksumXorMask
}

// ValidPacketChecksum reports whether a complete 6-byte packet carries the
// correct checksum trailer for its payload.
func ValidPacketChecksum(packet []byte) bool {
	if len(packet) != PacketSize {
		return false
	}
	return packet[PacketSize-1] == Checksum(packet[:PayloadSize])
}
