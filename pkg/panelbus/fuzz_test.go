// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Diego Elio Pettenò

package panelbus

import (
	"testing"
	"time"
)

// FuzzDecoder feeds arbitrary byte streams with derived gaps through the
// decoder and checks structural invariants: the decoder never panics, the
// buffer never holds a complete packet, and every emitted record is
// internally consistent.
func FuzzDecoder(f *testing.F) {
	f.Add([]byte{0x10, 0x28, 0x25, 0x00, 0x00, 0x08})
	f.Add([]byte{0xAA, 0x28, 0x00, 0x00, 0x00, 0x87, 0x90, 0x00, 0x00, 0x00, 0x00, 0xC5})
	f.Add([]byte{0xFF, 0xFF, 0xFF})
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		d := NewDecoder()
		now := captureBase

		for i, b := range data {
			// Derive a gap from the byte value so the fuzzer can
			// reach both the discard and the reply-window paths.
			gap := time.Duration(b) * 20 * time.Millisecond
			if i%7 == 0 {
				gap += 2 * time.Second
			}
			now = now.Add(gap)
			end := now.Add(byteWidth)

			record := d.DecodeByte(b, now, end)
			now = end

			if d.Pending() >= PacketSize {
				t.Fatalf("buffer holds %d bytes, must never reach %d", d.Pending(), PacketSize)
			}

			switch rec := record.(type) {
			case nil:
			case InvalidChecksum:
				if len(rec.RawHex()) != PacketSize*2 {
					t.Errorf("RawHex length = %d, want %d", len(rec.RawHex()), PacketSize*2)
				}
				if ValidPacketChecksum(rec.Raw[:]) {
					t.Error("InvalidChecksum emitted for a packet with a valid trailer")
				}
			case ValidPacket:
				if len(rec.PayloadHex()) != PayloadSize*2 {
					t.Errorf("PayloadHex length = %d, want %d", len(rec.PayloadHex()), PayloadSize*2)
				}
				if rec.Checksum != Checksum(rec.Payload[:]) {
					t.Error("ValidPacket checksum does not match its payload")
				}
				if rec.Fields == nil {
					t.Error("ValidPacket with nil fields")
				}
				if !rec.Start().Before(rec.End()) {
					t.Errorf("record times out of order: %v >= %v", rec.Start(), rec.End())
				}
			default:
				t.Errorf("unexpected record type %T", record)
			}
		}
	})
}

// FuzzChecksum checks that Checksum stays within byte range and only the
// matching trailer validates.
func FuzzChecksum(f *testing.F) {
	f.Add([]byte{0x10, 0x28, 0x25, 0x00, 0x00}, byte(0x08))
	f.Add([]byte{0x00, 0x00, 0x00, 0x00, 0x00}, byte(0x55))

	f.Fuzz(func(t *testing.T, payload []byte, trailer byte) {
		if len(payload) != PayloadSize {
			t.Skip()
		}

		sum := Checksum(payload)
		packet := append(append([]byte{}, payload...), trailer)
		if ValidPacketChecksum(packet) != (trailer == sum) {
			t.Errorf("validator disagrees with Checksum for % X trailer 0x%02X", payload, trailer)
		}
	})
}
