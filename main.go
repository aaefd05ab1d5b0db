// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Diego Elio Pettenò
//
// pqrcuds0 - LG PQRCUDS0 wall-panel bus decoder
//
// A CLI tool for decoding and analyzing the serial control bus between an
// LG HVAC indoor unit and its wired remote panel.

package main

import (
	"os"

	"github.com/Flameeyes/pqrcuds0/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
