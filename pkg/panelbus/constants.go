// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Diego Elio Pettenò

// Package panelbus decodes the serial control bus spoken between an LG HVAC
// indoor unit and its PQRCUDS0 wired remote panel.
//
// The bus carries fixed-size 6-byte transactions: five payload bytes followed
// by a one-byte additive checksum. The panel initiates queries and status
// updates; the unit answers each query within a short fixed window, so the
// emitter of a packet is recovered purely from inter-packet timing. This
// package provides the packet aggregation state machine, checksum validation,
// source classification, and bit-field decoding into semantic fields.
package panelbus

import "time"

// Packet framing
const (
	// PacketSize is the fixed size of a bus transaction: 5 payload bytes
	// plus the checksum trailer.
	PacketSize = 6

	// PayloadSize is the number of payload bytes preceding the checksum.
	PayloadSize = 5

	// checksumXorMask is applied to the modular payload sum to form the
	// checksum trailer.
	checksumXorMask = 0x55
)

// Timing constants. These are protocol constants, not tunables.
const (
	// InterByteTimeout is the maximum gap between consecutive bytes of one
	// packet. A larger gap means the partial packet was truncated by noise
	// or a missed byte; the accumulated bytes are silently discarded.
	InterByteTimeout = time.Second

	// ReplyWindow is the window after a packet within which the indoor
	// unit answers a panel query. A packet starting less than ReplyWindow
	// after the previous one is a unit response; anything at or beyond it
	// is a fresh panel transmission.
	ReplyWindow = 300 * time.Millisecond

	// DefaultPacketGap is assumed when no previous packet has been seen.
	// It always classifies the packet as panel-originated.
	DefaultPacketGap = 30 * time.Second
)

// Panel status packet, byte 0
const (
	featuresInquiryMask = 0x90 // both bits set marks a features inquiry
	modeMask            = 0x70
	resistorBit         = 0x08
	runningBit          = 0x04
	settingsChangedBit  = 0x01
)

// Byte 1 (room temperature) in unit responses
const noReadingBit = 0x80

// Panel status packet, byte 2
const (
	plasmaBit   = 0x80
	fanMask     = 0x70
	setTempMask = 0x0F
)

// Panel status packet, bytes 3 and 4
const (
	swivelBit = 0x20
	swirlBit  = 0x01
)

// Temperature encoding: room temperatures are half-degree resolution with a
// 10 degree offset, set temperatures are whole degrees with a 16 degree
// offset.
const (
	roomTempOffset = 10
	setTempOffset  = 16
)

// Source identifies which device emitted a packet, recovered from
// inter-packet timing.
type Source int

// Source values
const (
	SourcePanel Source = iota
	SourceUnit
)

// String returns the display name used by the original analyzer.
func (s Source) String() string {
	switch s {
	case SourceUnit:
		return "HVAC"
	case SourcePanel:
		return "Panel"
	default:
		return "UNKNOWN"
	}
}

// Mode is the operating mode code from a panel status packet (byte 0,
// bits 4-6).
type Mode byte

// Known operating mode codes
const (
	ModeCool Mode = 0x00
	ModeDry  Mode = 0x10
	ModeFan  Mode = 0x20
	ModeHeat Mode = 0x40
)

var modeNames = map[Mode]string{
	ModeCool: "Cool",
	ModeDry:  "dH",
	ModeFan:  "Fan",
	ModeHeat: "Heat",
}

// String returns the mode name, or the raw code in hex for codes with no
// known meaning. Unknown codes never fail the decode; packets keep flowing.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return hexCode(byte(m))
}

// Known returns true if the code has an assigned name.
func (m Mode) Known() bool {
	_, ok := modeNames[m]
	return ok
}

// FanSpeed is the fan speed code from a panel status packet (byte 2,
// bits 4-6).
type FanSpeed byte

// Known fan speed codes
const (
	FanLow    FanSpeed = 0x00
	FanMedium FanSpeed = 0x10
	FanHigh   FanSpeed = 0x20
	FanPower  FanSpeed = 0x40
)

var fanSpeedNames = map[FanSpeed]string{
	FanLow:    "low",
	FanMedium: "medium",
	FanHigh:   "high",
	FanPower:  "power",
}

// String returns the fan speed name, falling back to the raw code in hex
// like Mode does. The original analyzer had no fallback here and aborted on
// unassigned codes; decoding must instead survive every payload.
func (f FanSpeed) String() string {
	if name, ok := fanSpeedNames[f]; ok {
		return name
	}
	return hexCode(byte(f))
}

// Known returns true if the code has an assigned name.
func (f FanSpeed) Known() bool {
	_, ok := fanSpeedNames[f]
	return ok
}
