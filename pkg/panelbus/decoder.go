// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Diego Elio Pettenò

package panelbus

import "time"

// Decoder accumulates byte frames into 6-byte bus transactions and emits one
// Record per completed packet. It owns the in-progress buffer and the end
// timestamp of the last completed packet, which anchors source
// classification for the next one.
//
// A Decoder is single-session, single-goroutine state: frames must be fed in
// chronological order from one goroutine.
type Decoder struct {
	buffer []Frame

	lastEnd    time.Time
	hasLastEnd bool
}

// NewDecoder creates a decoder with an empty buffer and no classification
// anchor, so the first packet always classifies as panel-originated.
func NewDecoder() *Decoder {
	return &Decoder{
		buffer: make([]Frame, 0, PacketSize),
	}
}

// Reset discards any partial packet and clears the classification anchor,
// returning the decoder to its initial state. Both are cleared together so a
// re-armed session never classifies against a stale timestamp.
func (d *Decoder) Reset() {
	d.buffer = d.buffer[:0]
	d.lastEnd = time.Time{}
	d.hasLastEnd = false
}

// Pending returns the number of bytes buffered for the packet in progress.
func (d *Decoder) Pending() int {
	return len(d.buffer)
}

// DecodeFrame feeds one capture frame through the decoder. It returns the
// completed Record once six bytes have accumulated, or nil while the packet
// is still incomplete. Frames that are not byte data are ignored entirely.
//
// A gap longer than InterByteTimeout between the buffered tail and the new
// frame discards the partial packet silently: truncation from noise or a
// missed byte is expected on this bus and is not an error.
func (d *Decoder) DecodeFrame(f Frame) Record {
	if f.Type != FrameData {
		return nil
	}

	if len(d.buffer) > 0 && f.Start.Sub(d.buffer[len(d.buffer)-1].End) > InterByteTimeout {
		d.buffer = d.buffer[:0]
	}

	d.buffer = append(d.buffer, f)

	if len(d.buffer) < PacketSize {
		return nil
	}

	record := d.emit()
	d.buffer = d.buffer[:0]

	// The anchor advances past every completed packet, valid or not. A
	// checksum failure still re-arms the reply window for the next real
	// exchange.
	d.lastEnd = record.End()
	d.hasLastEnd = true

	return record
}

// DecodeByte feeds a raw bus byte with its read timestamps, for hosts that
// sample the line directly instead of consuming a tagged capture.
func (d *Decoder) DecodeByte(b byte, start, end time.Time) Record {
	return d.DecodeFrame(DataFrame(b, start, end))
}

// emit composes the Record for the six buffered frames.
func (d *Decoder) emit() Record {
	var raw [PacketSize]byte
	for i, f := range d.buffer {
		raw[i] = f.Value
	}
	start := d.buffer[0].Start
	end := d.buffer[PacketSize-1].End

	if !ValidPacketChecksum(raw[:]) {
		return InvalidChecksum{
			StartTime: start,
			EndTime:   end,
			Raw:       raw,
		}
	}

	gap := DefaultPacketGap
	if d.hasLastEnd {
		gap = start.Sub(d.lastEnd)
	}
	source := classifySource(gap)

	var payload [PayloadSize]byte
	copy(payload[:], raw[:PayloadSize])
	fields, unknown := DecodePayload(source, payload)

	return ValidPacket{
		StartTime: start,
		EndTime:   end,
		Payload:   payload,
		Checksum:  raw[PacketSize-1],
		Source:    source,
		Fields:    fields,
		Unknown:   unknown,
	}
}

// classifySource maps the elapsed time since the previous packet's end to
// the emitting device. The unit answers a panel query within ReplyWindow;
// any longer gap means an independently initiated panel transmission. The
// boundary itself classifies as panel.
func classifySource(gap time.Duration) Source {
	if gap < ReplyWindow {
		return SourceUnit
	}
	return SourcePanel
}
