// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Diego Elio Pettenò

package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Flameeyes/pqrcuds0/pkg/panelbus"
	"github.com/spf13/cobra"
)

var (
	probeTimeout int
)

var errProbeTimeout = errors.New("timed out waiting for a valid packet")

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Test connection by waiting for a checksum-valid packet",
	Long: `Wait for a checksum-valid bus packet on the connection until timeout.

This command connects to a serial port or WebSocket bridge and waits for any
complete 6-byte packet whose checksum trailer validates. Invalid and
truncated packets are ignored.

Exit codes:
  0 - Packet received before timeout
  1 - Timeout reached without receiving a valid packet
  2 - Connection error

Useful for checking the probe wiring before starting a monitoring session.`,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().IntVar(&probeTimeout, "timeout", 10, "Timeout in seconds to wait for a packet")
}

// waitForValidPacket reads from the connection until a checksum-valid packet
// arrives, the timeout elapses, or the read fails. It returns the packet and
// the number of invalid packets skipped before it.
func waitForValidPacket(conn Connection, timeout time.Duration) (panelbus.ValidPacket, int, error) {
	decoder := panelbus.NewDecoder()
	buf := make([]byte, 64)

	type probeResult struct {
		packet  panelbus.ValidPacket
		skipped int
	}
	resultChan := make(chan probeResult, 1)
	errChan := make(chan error, 1)

	go func() {
		skipped := 0
		for {
			n, err := conn.Read(buf)
			if err != nil {
				errChan <- err
				return
			}

			now := time.Now()
			for i := 0; i < n; i++ {
				record := decoder.DecodeByte(buf[i], now, now)
				if record == nil {
					continue
				}
				vp, ok := record.(panelbus.ValidPacket)
				if !ok {
					// Checksum failure; keep waiting for a clean packet
					skipped++
					continue
				}
				resultChan <- probeResult{packet: vp, skipped: skipped}
				return
			}
		}
	}()

	select {
	case res := <-resultChan:
		return res.packet, res.skipped, nil
	case err := <-errChan:
		return panelbus.ValidPacket{}, 0, err
	case <-time.After(timeout):
		return panelbus.ValidPacket{}, 0, errProbeTimeout
	}
}

func runProbe(cmd *cobra.Command, args []string) error {
	// Open connection (serial or WebSocket)
	conn, connInfo, err := OpenConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("pqrcuds0 - Probe Test\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Timeout: %d seconds\n", probeTimeout)
	fmt.Printf("Waiting for valid bus packet...\n\n")

	packet, skipped, err := waitForValidPacket(conn, time.Duration(probeTimeout)*time.Second)

	// Close before exiting; this also unblocks the reader goroutine on its
	// next Read after a timeout.
	conn.Close()

	switch {
	case err == nil:
		if skipped > 0 {
			fmt.Printf("(skipped %d invalid packets before sync)\n", skipped)
		}
		fmt.Printf("SUCCESS: Received valid packet\n")
		fmt.Printf("  Source: %s\n", packet.Source)
		fmt.Printf("  Payload: %s\n", packet.PayloadHex())
		fmt.Printf("  Checksum: 0x%02X\n", packet.Checksum)
		return nil

	case errors.Is(err, errProbeTimeout):
		fmt.Fprintf(os.Stderr, "TIMEOUT: No valid packet received within %d seconds\n", probeTimeout)
		os.Exit(1)

	default:
		fmt.Fprintf(os.Stderr, "Read error: %v\n", err)
		os.Exit(2)
	}

	return nil
}
