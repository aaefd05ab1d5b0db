// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Diego Elio Pettenò

package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/Flameeyes/pqrcuds0/pkg/panelbus"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	showAll       bool
	statsInterval int
	useTUI        bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Track bus errors and packet statistics",
	Long: `Track checksum failures, truncated packets, and packet statistics.

Each completed packet is counted and classified:
  - Checksum failures are highlighted immediately with their raw bytes
  - Valid packets are split by source (Panel vs HVAC unit)
  - Packets carrying bits with no known meaning are counted separately,
    as candidates for further protocol mapping

By default, only errors are displayed. Use --show-all to display valid
packets too. Statistics summaries are printed at configurable intervals.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&showAll, "show-all", false, "Show all packets (not just errors)")
	statsCmd.Flags().IntVar(&statsInterval, "stats-interval", 10, "Statistics update interval (seconds)")
	statsCmd.Flags().BoolVar(&useTUI, "tui", true, "Use terminal UI (false for text mode)")
}

func runStats(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	if useTUI {
		return runTUIMode(conn, connInfo)
	}
	return runTextMode(conn, connInfo)
}

// runTUIMode runs statistics tracking in TUI mode
func runTUIMode(conn Connection, connInfo string) error {
	decoder := panelbus.NewDecoder()

	m := initialModel(connInfo, statsInterval, showAll)
	p := tea.NewProgram(m)

	// Bus reader goroutine
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := conn.Read(buf)
			if err != nil {
				if err == ErrConnectionClosed {
					p.Send(connClosedMsg{})
					return
				}
				log.Printf("Read error: %v", err)
				continue
			}

			now := time.Now()
			for i := 0; i < n; i++ {
				pending := decoder.Pending()
				record := decoder.DecodeByte(buf[i], now, now)

				if dropped := pending + 1 - decoder.Pending(); record == nil && dropped > 0 {
					p.Send(discardMsg{bytes: dropped})
				}
				if record != nil {
					p.Send(recordMsg{record: record})
				}
			}
		}
	}()

	// Run TUI
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}

	return nil
}

// runTextMode runs statistics tracking in text mode
func runTextMode(conn Connection, connInfo string) error {
	fmt.Printf("pqrcuds0 - Bus Statistics\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Statistics interval: %d seconds\n", statsInterval)
	if showAll {
		fmt.Printf("Mode: All packets\n")
	} else {
		fmt.Printf("Mode: Errors only\n")
	}
	fmt.Printf("Press Ctrl+C to exit\n\n")

	decoder := panelbus.NewDecoder()
	stats := panelbus.NewStatistics()
	buf := make([]byte, 64)

	// Statistics ticker
	statsTicker := time.NewTicker(time.Duration(statsInterval) * time.Second)
	defer statsTicker.Stop()

	// Channel for non-blocking reads
	readBuf := make(chan []byte, 10)
	readErr := make(chan error, 1)
	go func() {
		for {
			n, err := conn.Read(buf)
			if err != nil {
				if err == ErrConnectionClosed {
					readErr <- err
					return
				}
				log.Printf("Read error: %v", err)
				continue
			}
			data := make([]byte, n)
			copy(data, buf[:n])
			readBuf <- data
		}
	}()

	for {
		select {
		case data := <-readBuf:
			now := time.Now()
			for _, b := range data {
				pending := decoder.Pending()
				record := decoder.DecodeByte(b, now, now)

				if dropped := pending + 1 - decoder.Pending(); record == nil && dropped > 0 {
					stats.RecordDiscard(dropped)
					continue
				}
				if record == nil {
					continue
				}

				stats.Update(record)

				switch rec := record.(type) {
				case panelbus.InvalidChecksum:
					printChecksumError(rec)
				case panelbus.ValidPacket:
					if showAll {
						fmt.Print(panelbus.FormatRecordDetail(rec))
					}
				}
			}

		case <-readErr:
			log.Printf("Connection closed")
			fmt.Print(stats.String())
			return nil

		case <-statsTicker.C:
			fmt.Println()
			fmt.Print(stats.String())
			fmt.Println()
		}
	}
}

// printChecksumError prints a checksum failure in highlighted format
func printChecksumError(rec panelbus.InvalidChecksum) {
	timestamp := rec.Start().Format("15:04:05.000")
	fmt.Printf("[%s] \033[1;31mCHECKSUM ERROR:\033[0m %s\n", timestamp, rec.RawHex())
	fmt.Printf("  >>> PACKET REJECTED <<<\n\n")
}
