// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Diego Elio Pettenò

package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/Flameeyes/pqrcuds0/pkg/panelbus"
	"github.com/spf13/cobra"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Display decoded bus packets in human-readable format",
	Long: `Continuously decode and display wall-panel bus packets as they arrive.

Each packet is shown with its timestamp, emitting device (Panel or HVAC
unit), decoded fields, and any bits that carry no known meaning yet.

Supports both serial and WebSocket connections.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	// Open connection (serial or WebSocket)
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Printf("pqrcuds0 - Bus Monitor\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	decoder := panelbus.NewDecoder()
	buf := make([]byte, 64)

	for {
		n, err := conn.Read(buf)
		if err != nil {
			// For WebSocket connections, a read error usually means
			// the connection is permanently closed - exit gracefully
			if err == ErrConnectionClosed {
				log.Printf("Connection closed")
				return nil
			}
			log.Printf("Read error: %v", err)
			continue
		}

		// Live reads have no capture timestamps; the read time stands in
		// for both edges of each byte. With one logical byte every ~100ms
		// on this bus, that is accurate enough for the reply-window
		// classification.
		now := time.Now()
		for i := 0; i < n; i++ {
			record := decoder.DecodeByte(buf[i], now, now)
			if record != nil {
				fmt.Print(panelbus.FormatRecordDetail(record))
			}
		}
	}
}
