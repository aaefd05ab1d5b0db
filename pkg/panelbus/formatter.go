// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Diego Elio Pettenò

package panelbus

import (
	"fmt"
	"strings"
)

// FormatRecord formats a record using the one-line display templates
// associated with the record tags.
func FormatRecord(r Record) string {
	switch rec := r.(type) {
	case InvalidChecksum:
		return fmt.Sprintf("Invalid Checksum: %s", rec.RawHex())
	case ValidPacket:
		return fmt.Sprintf("%s %s", rec.Source, rec.PayloadHex())
	default:
		return "UNKNOWN RECORD"
	}
}

// FormatRecordDetail formats a record into a human-readable multi-line
// string with the packet timestamp, summary line, and every decoded field.
func FormatRecordDetail(r Record) string {
	timestamp := r.Start().Format("15:04:05.000")

	switch rec := r.(type) {
	case InvalidChecksum:
		return fmt.Sprintf("[%s] Invalid Checksum: %s\n", timestamp, rec.RawHex())

	case ValidPacket:
		result := fmt.Sprintf("[%s] %s %s checksum=0x%02X\n",
			timestamp, rec.Source, rec.PayloadHex(), rec.Checksum)
		result += formatFields(rec.Fields)
		if rec.HasUnknown() {
			result += fmt.Sprintf("  Unknown bits: % X\n", rec.Unknown[:])
		}
		return result

	default:
		return fmt.Sprintf("[%s] UNKNOWN RECORD\n", timestamp)
	}
}

// formatFields renders the variant-specific field set. The switch is
// exhaustive over the Fields union.
func formatFields(f Fields) string {
	switch fields := f.(type) {
	case UnitReport:
		if !fields.HasRoomTemperature {
			return "  Room: no reading\n"
		}
		return fmt.Sprintf("  Room: %.1f\n", fields.RoomTemperature)

	case PanelStatus:
		flags := []string{}
		if fields.Running {
			flags = append(flags, "running")
		}
		if fields.ResistorActive {
			flags = append(flags, "resistor")
		}
		if fields.Plasma {
			flags = append(flags, "plasma")
		}
		if fields.Swivel {
			flags = append(flags, "swivel")
		}
		if fields.Swirl {
			flags = append(flags, "swirl")
		}
		if fields.SettingsChanged {
			flags = append(flags, "settings-changed")
		}
		flagStr := "none"
		if len(flags) > 0 {
			flagStr = strings.Join(flags, ", ")
		}
		return fmt.Sprintf("  Mode: %s, Fan: %s, Room: %.1f, Set: %d\n  Flags: %s\n",
			fields.Mode, fields.FanSpeed, fields.RoomTemperature,
			fields.SetTemperature, flagStr)

	case PanelFeaturesInquiry:
		return "  Features inquiry\n"

	default:
		return fmt.Sprintf("  Fields: %v\n", f)
	}
}

// hexCode renders an undecoded byte code the way the original analyzer did,
// as a 0x-prefixed hex literal.
func hexCode(b byte) string {
	return fmt.Sprintf("%#02x", b)
}
