// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Diego Elio Pettenò

package panelbus

import "time"

// FrameType tags a frame from the upstream physical-layer capture. Only data
// frames carry a bus byte; every other tag passes through the decoder
// untouched.
type FrameType string

// Frame tags produced by the upstream capture
const (
	FrameData FrameType = "data"
)

// Frame is a single byte event from the capture: one bus byte with the
// timestamps of its first and last edge. Frames are immutable and arrive in
// chronological order.
type Frame struct {
	Type  FrameType
	Value byte
	Start time.Time
	End   time.Time
}

// DataFrame builds a byte-data frame. Hosts that read the bus directly (as
// opposed to consuming a tagged capture) only ever produce data frames.
func DataFrame(value byte, start, end time.Time) Frame {
	return Frame{Type: FrameData, Value: value, Start: start, End: end}
}
