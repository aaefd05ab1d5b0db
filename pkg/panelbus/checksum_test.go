// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Diego Elio Pettenò

package panelbus

import "testing"

func TestChecksum_KnownValues(t *testing.T) {
	tests := []struct {
		name     string
		payload  []byte
		expected byte
	}{
		{
			name:     "all zero",
			payload:  []byte{0x00, 0x00, 0x00, 0x00, 0x00},
			expected: 0x55,
		},
		{
			name:     "panel status dH",
			payload:  []byte{0x10, 0x28, 0x25, 0x00, 0x00},
			expected: 0x08, // 0x10+0x28+0x25 = 0x5D, 0x5D^0x55 = 0x08
		},
		{
			name:     "unit response",
			payload:  []byte{0xAA, 0x28, 0x00, 0x00, 0x00},
			expected: 0x87, // 0xAA+0x28 = 0xD2, 0xD2^0x55 = 0x87
		},
		{
			name:     "sum wraps past 255",
			payload:  []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
			expected: 0xFB ^ 0x55, // 5*0xFF mod 256 = 0xFB
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Checksum(tt.payload); got != tt.expected {
				t.Errorf("Checksum mismatch: expected 0x%02X, got 0x%02X", tt.expected, got)
			}
		})
	}
}

func TestChecksum_OrderIndependent(t *testing.T) {
	a := Checksum([]byte{0x10, 0x28, 0x25, 0x00, 0x00})
	b := Checksum([]byte{0x25, 0x00, 0x28, 0x00, 0x10})
	if a != b {
		t.Errorf("additive checksum should be order independent: 0x%02X != 0x%02X", a, b)
	}
}

func TestChecksum_Deterministic(t *testing.T) {
	payload := []byte{0x14, 0x30, 0xA5, 0x20, 0x01}
	if Checksum(payload) != Checksum(payload) {
		t.Error("Checksum should be deterministic")
	}
}

func TestValidPacketChecksum(t *testing.T) {
	tests := []struct {
		name   string
		packet []byte
		valid  bool
	}{
		{
			name:   "valid packet",
			packet: []byte{0x10, 0x28, 0x25, 0x00, 0x00, 0x08},
			valid:  true,
		},
		{
			name:   "corrupted trailer",
			packet: []byte{0x10, 0x28, 0x25, 0x00, 0x00, 0x09},
			valid:  false,
		},
		{
			name:   "corrupted payload byte",
			packet: []byte{0x11, 0x28, 0x25, 0x00, 0x00, 0x08},
			valid:  false,
		},
		{
			name:   "too short",
			packet: []byte{0x10, 0x28, 0x25, 0x00, 0x08},
			valid:  false,
		},
		{
			name:   "too long",
			packet: []byte{0x10, 0x28, 0x25, 0x00, 0x00, 0x00, 0x08},
			valid:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidPacketChecksum(tt.packet); got != tt.valid {
				t.Errorf("ValidPacketChecksum = %v, want %v", got, tt.valid)
			}
		})
	}
}

// TestValidPacketChecksum_Exhaustive checks that for a fixed payload exactly
// one trailer byte validates.
func TestValidPacketChecksum_Exhaustive(t *testing.T) {
	payload := []byte{0x10, 0x28, 0x25, 0x00, 0x00}
	expected := Checksum(payload)

	for trailer := 0; trailer < 256; trailer++ {
		packet := append(append([]byte{}, payload...), byte(trailer))
		valid := ValidPacketChecksum(packet)
		if valid != (byte(trailer) == expected) {
			t.Fatalf("trailer 0x%02X: valid=%v, expected trailer is 0x%02X", trailer, valid, expected)
		}
	}
}
