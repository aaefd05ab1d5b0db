// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Diego Elio Pettenò

package panelbus

import (
	"encoding/hex"
	"time"
)

// Record is the per-packet output of the decoder. Exactly two concrete types
// implement it: InvalidChecksum and ValidPacket. The marker method keeps the
// union closed so consumers can switch over it exhaustively.
type Record interface {
	Start() time.Time
	End() time.Time

	record()
}

// InvalidChecksum is emitted for a complete 6-byte packet whose trailer does
// not match its payload. No field decoding is attempted on such packets.
type InvalidChecksum struct {
	StartTime time.Time
	EndTime   time.Time
	Raw       [PacketSize]byte
}

// Start returns the start time of the packet's first byte.
func (r InvalidChecksum) Start() time.Time { return r.StartTime }

// End returns the end time of the packet's last byte.
func (r InvalidChecksum) End() time.Time { return r.EndTime }

// RawHex returns all six raw bytes as lowercase hex.
func (r InvalidChecksum) RawHex() string { return hex.EncodeToString(r.Raw[:]) }

func (InvalidChecksum) record() {}

// ValidPacket is a checksum-valid packet annotated with its source and the
// decoded semantic fields.
type ValidPacket struct {
	StartTime time.Time
	EndTime   time.Time
	Payload   [PayloadSize]byte
	Checksum  byte
	Source    Source
	Fields    Fields

	// Unknown holds the payload bits that carry no known meaning, with
	// every decoded bit masked out. Kept for forward compatibility and
	// debugging; all zero when the payload was fully understood.
	Unknown [PayloadSize]byte
}

// Start returns the start time of the packet's first byte.
func (r ValidPacket) Start() time.Time { return r.StartTime }

// End returns the end time of the packet's last byte.
func (r ValidPacket) End() time.Time { return r.EndTime }

// PayloadHex returns the five payload bytes as lowercase hex, excluding the
// checksum trailer.
func (r ValidPacket) PayloadHex() string { return hex.EncodeToString(r.Payload[:]) }

// HasUnknown reports whether any undecoded bits survived into the residual.
func (r ValidPacket) HasUnknown() bool {
	return r.Unknown != [PayloadSize]byte{}
}

func (ValidPacket) record() {}

// Fields is the variant-dependent semantic field set of a valid packet.
// UnitReport, PanelStatus and PanelFeaturesInquiry implement it; the variant
// is fixed by the packet's source and, for panel packets, by the
// features-inquiry marker bits.
type Fields interface {
	fields()
}

// UnitReport is the field set of an indoor unit response.
type UnitReport struct {
	// RoomTemperature is the unit's room reading in half-degree
	// resolution. Valid only when HasRoomTemperature is set; the unit
	// signals "no reading" by raising the high bit of the temperature
	// byte.
	RoomTemperature    float64
	HasRoomTemperature bool
}

func (UnitReport) fields() {}

// PanelStatus is the field set of a normal panel status packet.
type PanelStatus struct {
	Mode            Mode
	ResistorActive  bool
	Running         bool
	SettingsChanged bool
	RoomTemperature float64
	Plasma          bool
	FanSpeed        FanSpeed
	SetTemperature  int
	Swivel          bool
	Swirl           bool
}

func (PanelStatus) fields() {}

// PanelFeaturesInquiry marks a panel packet requesting capability
// information rather than reporting status. It decodes no further fields.
type PanelFeaturesInquiry struct{}

func (PanelFeaturesInquiry) fields() {}
