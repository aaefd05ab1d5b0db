// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Diego Elio Pettenò

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Serial connection flags
	portName string
	baudRate int

	// WebSocket bridge flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool
)

var rootCmd = &cobra.Command{
	Use:   "pqrcuds0",
	Short: "LG PQRCUDS0 wall-panel bus decoder",
	Long: `pqrcuds0 - A CLI tool for decoding the serial control bus between an LG
HVAC indoor unit and its PQRCUDS0 wired remote panel.

Provides commands for live bus monitoring, offline capture replay, and
error/statistics tracking to help map the bits of the protocol that still
have no known meaning.

Connection modes:
  Serial:    --port /dev/ttyUSB0 [--baud 104]
  WebSocket: --url ws://host/path [--username user]

For WebSocket authentication, the password is read from the PQRCUDS0_PASSWORD
environment variable, or prompted interactively if not set. The --password
flag is intentionally not provided to avoid leaking credentials in shell history.`,
	Version: "1.0.0",
}

func init() {
	// Serial connection flags. The panel bus is slow; 104 baud, 8N1.
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 104, "Baud rate (serial only)")

	// WebSocket bridge flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
