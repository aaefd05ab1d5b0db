// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Diego Elio Pettenò

package panelbus

import (
	"fmt"
	"time"
)

// Statistics tracks per-session packet counters and error rates.
type Statistics struct {
	StartTime      time.Time
	LastUpdateTime time.Time

	// Counters
	TotalPackets      uint64
	ValidPackets      uint64
	ChecksumErrors    uint64
	UnitPackets       uint64
	PanelPackets      uint64
	FeaturesInquiries uint64
	UnknownBits       uint64 // valid packets with undecoded residual bits
	DiscardedBytes    uint64 // bytes dropped from truncated partial packets

	// Rates (calculated)
	PacketRate float64 // packets/sec
	ErrorRate  float64 // checksum errors/sec
}

// NewStatistics creates a new statistics tracker
func NewStatistics() *Statistics {
	now := time.Now()
	return &Statistics{
		StartTime:      now,
		LastUpdateTime: now,
	}
}

// Update updates the counters for one emitted record
func (s *Statistics) Update(r Record) {
	s.TotalPackets++

	switch rec := r.(type) {
	case InvalidChecksum:
		s.ChecksumErrors++

	case ValidPacket:
		s.ValidPackets++
		switch rec.Source {
		case SourceUnit:
			s.UnitPackets++
		case SourcePanel:
			s.PanelPackets++
		}
		if _, ok := rec.Fields.(PanelFeaturesInquiry); ok {
			s.FeaturesInquiries++
		}
		if rec.HasUnknown() {
			s.UnknownBits++
		}
	}

	s.LastUpdateTime = time.Now()
}

// RecordDiscard counts bytes dropped when a partial packet timed out
func (s *Statistics) RecordDiscard(n int) {
	s.DiscardedBytes += uint64(n)
	s.LastUpdateTime = time.Now()
}

// CalculateRates calculates packet and error rates
func (s *Statistics) CalculateRates() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed > 0 {
		s.PacketRate = float64(s.TotalPackets) / elapsed
		s.ErrorRate = float64(s.ChecksumErrors) / elapsed
	}
}

// String returns a formatted statistics summary
func (s *Statistics) String() string {
	s.CalculateRates()

	var validPercent, errorPercent float64
	if s.TotalPackets > 0 {
		validPercent = float64(s.ValidPackets) * 100.0 / float64(s.TotalPackets)
		errorPercent = float64(s.ChecksumErrors) * 100.0 / float64(s.TotalPackets)
	}

	elapsed := time.Since(s.StartTime)

	result := fmt.Sprintf("=== Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Total Packets:   %8d\n", s.TotalPackets)
	result += fmt.Sprintf("Valid Packets:   %8d (%.1f%%)\n", s.ValidPackets, validPercent)
	result += fmt.Sprintf("  Panel:            %5d\n", s.PanelPackets)
	result += fmt.Sprintf("  HVAC Unit:        %5d\n", s.UnitPackets)

	if s.FeaturesInquiries > 0 {
		result += fmt.Sprintf("  Feat. Inquiries:  %5d\n", s.FeaturesInquiries)
	}
	if s.UnknownBits > 0 {
		result += fmt.Sprintf("  Unknown Bits:     %5d\n", s.UnknownBits)
	}
	if s.ChecksumErrors > 0 {
		result += fmt.Sprintf("Checksum Errors: %8d (%.1f%%)\n", s.ChecksumErrors, errorPercent)
	}
	if s.DiscardedBytes > 0 {
		result += fmt.Sprintf("Discarded Bytes: %8d\n", s.DiscardedBytes)
	}

	result += fmt.Sprintf("Packet Rate:     %8.1f pkts/sec\n", s.PacketRate)
	result += fmt.Sprintf("Error Rate:      %8.1f errors/sec\n", s.ErrorRate)
	result += "================================\n"

	return result
}

// Reset resets all statistics counters
func (s *Statistics) Reset() {
	now := time.Now()
	*s = Statistics{
		StartTime:      now,
		LastUpdateTime: now,
	}
}
