// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Diego Elio Pettenò

package cmd

import (
	"testing"
	"time"

	"github.com/Flameeyes/pqrcuds0/pkg/panelbus"
)

func TestMapCaptureColumns(t *testing.T) {
	cols, err := mapCaptureColumns([]string{"name", "type", "start_time", "duration", "data"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cols.frameType != 1 || cols.startTime != 2 || cols.duration != 3 || cols.data != 4 {
		t.Errorf("column mapping = %+v", cols)
	}

	// Header case and padding must not matter
	if _, err := mapCaptureColumns([]string{"Type", " Start_Time ", "DURATION", "Data"}); err != nil {
		t.Errorf("case-insensitive mapping failed: %v", err)
	}

	if _, err := mapCaptureColumns([]string{"name", "start_time", "data"}); err == nil {
		t.Error("expected error for missing columns")
	}
}

func TestParseCaptureRow(t *testing.T) {
	cols := captureColumns{frameType: 0, startTime: 1, duration: 2, data: 3}
	base := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	frame, err := parseCaptureRow([]string{"data", "1.5", "0.086", "0xAA"}, cols, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frame.Type != panelbus.FrameData {
		t.Errorf("type = %q", frame.Type)
	}
	if frame.Value != 0xAA {
		t.Errorf("value = 0x%02X, want 0xAA", frame.Value)
	}
	if got := frame.Start.Sub(base); got != 1500*time.Millisecond {
		t.Errorf("start offset = %v", got)
	}
	if got := frame.End.Sub(frame.Start); got != 86*time.Millisecond {
		t.Errorf("duration = %v", got)
	}
}

func TestParseCaptureRow_NonData(t *testing.T) {
	cols := captureColumns{frameType: 0, startTime: 1, duration: 2, data: 3}
	base := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	// Non-data rows may carry arbitrary junk in the data column; it is
	// never parsed.
	frame, err := parseCaptureRow([]string{"error", "2.0", "0.01", "framing"}, cols, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frame.Type == panelbus.FrameData {
		t.Error("non-data row mapped to a data frame")
	}
}

func TestParseCaptureRow_BadValues(t *testing.T) {
	cols := captureColumns{frameType: 0, startTime: 1, duration: 2, data: 3}
	base := time.Now()

	cases := [][]string{
		{"data", "x", "0.1", "0xAA"},    // bad start
		{"data", "1.0", "y", "0xAA"},    // bad duration
		{"data", "1.0", "0.1", "zz"},    // bad value
		{"data", "1.0", "0.1", "0x1FF"}, // value out of byte range
		{"data", "1.0"},                 // row shorter than the header
	}
	for _, row := range cases {
		if _, err := parseCaptureRow(row, cols, base); err == nil {
			t.Errorf("expected error for row %v", row)
		}
	}
}
