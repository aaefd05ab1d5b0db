// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Diego Elio Pettenò

package panelbus

import (
	"strings"
	"testing"
)

func TestStatistics_Update(t *testing.T) {
	s := NewStatistics()

	s.Update(ValidPacket{Source: SourcePanel, Fields: PanelStatus{}})
	s.Update(ValidPacket{Source: SourceUnit, Fields: UnitReport{}, Unknown: [PayloadSize]byte{0xAA}})
	s.Update(ValidPacket{Source: SourcePanel, Fields: PanelFeaturesInquiry{}})
	s.Update(InvalidChecksum{})
	s.RecordDiscard(3)

	if s.TotalPackets != 4 {
		t.Errorf("TotalPackets = %d, want 4", s.TotalPackets)
	}
	if s.ValidPackets != 3 {
		t.Errorf("ValidPackets = %d, want 3", s.ValidPackets)
	}
	if s.ChecksumErrors != 1 {
		t.Errorf("ChecksumErrors = %d, want 1", s.ChecksumErrors)
	}
	if s.PanelPackets != 2 || s.UnitPackets != 1 {
		t.Errorf("source split = %d/%d, want 2/1", s.PanelPackets, s.UnitPackets)
	}
	if s.FeaturesInquiries != 1 {
		t.Errorf("FeaturesInquiries = %d, want 1", s.FeaturesInquiries)
	}
	if s.UnknownBits != 1 {
		t.Errorf("UnknownBits = %d, want 1", s.UnknownBits)
	}
	if s.DiscardedBytes != 3 {
		t.Errorf("DiscardedBytes = %d, want 3", s.DiscardedBytes)
	}
}

func TestStatistics_String(t *testing.T) {
	s := NewStatistics()
	s.Update(ValidPacket{Source: SourcePanel, Fields: PanelStatus{}})
	s.Update(InvalidChecksum{})

	out := s.String()
	for _, want := range []string{"Total Packets", "Valid Packets", "Checksum Errors", "Packet Rate"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestStatistics_Reset(t *testing.T) {
	s := NewStatistics()
	s.Update(InvalidChecksum{})
	s.RecordDiscard(10)

	s.Reset()

	if s.TotalPackets != 0 || s.ChecksumErrors != 0 || s.DiscardedBytes != 0 {
		t.Errorf("counters not cleared: %+v", s)
	}
	if s.StartTime.IsZero() {
		t.Error("StartTime should be re-initialized")
	}
}
