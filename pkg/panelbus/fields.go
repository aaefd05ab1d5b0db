// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Diego Elio Pettenò

package panelbus

// DecodePayload decodes the five payload bytes of a checksum-valid packet
// into the semantic field set for the given source, together with the
// residual of bits that carry no known meaning. Decoding is pure: the same
// payload and source always yield identical results.
func DecodePayload(src Source, payload [PayloadSize]byte) (Fields, [PayloadSize]byte) {
	if src == SourceUnit {
		return decodeUnitPayload(payload)
	}
	return decodePanelPayload(payload)
}

// decodeUnitPayload decodes an indoor unit response. Only the room
// temperature byte has a known meaning so far; everything else lands in the
// residual.
func decodeUnitPayload(p [PayloadSize]byte) (Fields, [PayloadSize]byte) {
	var f UnitReport

	if p[1]&noReadingBit == 0 {
		f.RoomTemperature = float64(p[1])/2 + roomTempOffset
		f.HasRoomTemperature = true
	}

	unknown := p
	if f.HasRoomTemperature {
		// Byte 1 was fully consumed as the temperature; zero it in the
		// residual so decoded information is not duplicated there.
		unknown[1] = 0
	}
	return f, unknown
}

// decodePanelPayload decodes a panel transmission: either a features inquiry
// or a normal status packet.
func decodePanelPayload(p [PayloadSize]byte) (Fields, [PayloadSize]byte) {
	if p[0]&featuresInquiryMask == featuresInquiryMask {
		var unknown [PayloadSize]byte
		if p[1] != 0 || p[2] != 0 || p[3] != 0 {
			unknown = [PayloadSize]byte{0, p[1], p[2], p[3], 0}
		}
		return PanelFeaturesInquiry{}, unknown
	}

	f := PanelStatus{
		Mode:            Mode(p[0] & modeMask),
		ResistorActive:  p[0]&resistorBit != 0,
		Running:         p[0]&runningBit != 0,
		SettingsChanged: p[0]&settingsChangedBit != 0,
		RoomTemperature: float64(p[1])/2 + roomTempOffset,
		Plasma:          p[2]&plasmaBit != 0,
		FanSpeed:        FanSpeed(p[2] & fanMask),
		SetTemperature:  int(p[2]&setTempMask) + setTempOffset,
		Swivel:          p[3]&swivelBit != 0,
		Swirl:           p[4]&swirlBit != 0,
	}

	// Bytes 1 and 2 are fully consumed; the remaining bytes keep only the
	// bits not decoded above.
	unknown := [PayloadSize]byte{
		p[0] & 0x02,
		0,
		0,
		p[3] &^ swivelBit,
		p[4] &^ swirlBit,
	}
	return f, unknown
}
