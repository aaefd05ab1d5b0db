// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Diego Elio Pettenò

package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Flameeyes/pqrcuds0/pkg/panelbus"
	"github.com/spf13/cobra"
)

var (
	replaySummary bool
	replayQuiet   bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <capture.csv>",
	Short: "Decode an exported logic-analyzer capture",
	Long: `Decode a CSV export of a logic-analyzer async-serial capture.

The file must carry a header row with at least the type, start_time,
duration and data columns, as produced by the Saleae Logic 2 analyzer
export. Rows whose type is not "data" are passed through the decoder and
ignored, exactly as in live decoding.

Timestamps come from the capture itself, so inter-packet gaps and the
Panel/HVAC source classification are reproduced faithfully regardless of
replay speed.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolVar(&replaySummary, "summary", false, "Print statistics after the capture")
	replayCmd.Flags().BoolVarP(&replayQuiet, "quiet", "q", false, "Suppress per-packet output")
}

// captureColumns maps the CSV header to the column indices we care about.
type captureColumns struct {
	frameType int
	startTime int
	duration  int
	data      int
}

func mapCaptureColumns(header []string) (captureColumns, error) {
	cols := captureColumns{frameType: -1, startTime: -1, duration: -1, data: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "type":
			cols.frameType = i
		case "start_time":
			cols.startTime = i
		case "duration":
			cols.duration = i
		case "data":
			cols.data = i
		}
	}
	if cols.frameType < 0 || cols.startTime < 0 || cols.duration < 0 || cols.data < 0 {
		return cols, fmt.Errorf("header is missing one of type, start_time, duration, data: %v", header)
	}
	return cols, nil
}

// width returns the minimum number of columns a row must have to cover
// every mapped index.
func (c captureColumns) width() int {
	max := c.frameType
	for _, i := range []int{c.startTime, c.duration, c.data} {
		if i > max {
			max = i
		}
	}
	return max + 1
}

// parseCaptureRow converts one CSV row to a frame. Times in the export are
// seconds from capture start; they are rebased onto an arbitrary wall-clock
// origin since only differences matter to the decoder.
func parseCaptureRow(row []string, cols captureColumns, base time.Time) (panelbus.Frame, error) {
	// Exports can be ragged; a truncated row must error out like any
	// other malformed value instead of indexing past its end.
	if len(row) < cols.width() {
		return panelbus.Frame{}, fmt.Errorf("row has %d columns, capture header needs %d", len(row), cols.width())
	}

	frameType := panelbus.FrameType(strings.TrimSpace(row[cols.frameType]))

	start, err := strconv.ParseFloat(strings.TrimSpace(row[cols.startTime]), 64)
	if err != nil {
		return panelbus.Frame{}, fmt.Errorf("bad start_time %q: %v", row[cols.startTime], err)
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(row[cols.duration]), 64)
	if err != nil {
		return panelbus.Frame{}, fmt.Errorf("bad duration %q: %v", row[cols.duration], err)
	}

	frame := panelbus.Frame{
		Type:  frameType,
		Start: base.Add(time.Duration(start * float64(time.Second))),
		End:   base.Add(time.Duration((start + duration) * float64(time.Second))),
	}

	// Only data rows carry a byte value; other rows keep their tag and are
	// dropped by the decoder.
	if frameType == panelbus.FrameData {
		value, err := strconv.ParseUint(strings.TrimSpace(row[cols.data]), 0, 8)
		if err != nil {
			return panelbus.Frame{}, fmt.Errorf("bad data %q: %v", row[cols.data], err)
		}
		frame.Value = byte(value)
	}

	return frame, nil
}

func runReplay(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open capture: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read capture header: %v", err)
	}
	cols, err := mapCaptureColumns(header)
	if err != nil {
		return err
	}

	decoder := panelbus.NewDecoder()
	stats := panelbus.NewStatistics()
	base := time.Now()

	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read capture row: %v", err)
		}
		line++

		frame, err := parseCaptureRow(row, cols, base)
		if err != nil {
			return fmt.Errorf("line %d: %v", line, err)
		}

		pending := decoder.Pending()
		record := decoder.DecodeFrame(frame)
		if dropped := pending + 1 - decoder.Pending(); record == nil && dropped > 0 && frame.Type == panelbus.FrameData {
			stats.RecordDiscard(dropped)
		}

		if record == nil {
			continue
		}
		stats.Update(record)
		if !replayQuiet {
			fmt.Print(panelbus.FormatRecordDetail(record))
		}
	}

	if replaySummary {
		fmt.Print(stats.String())
	}
	return nil
}
