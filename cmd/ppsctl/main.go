// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"log"

	"github.com/relabs-tech/gnss_computer/internal/app"
	"github.com/relabs-tech/gnss_computer/internal/config"
)

func main() {
	configPath := flag.String("config", "gnss_config.txt", "path to the config file")
	mode := flag.String("mode", "always", "pps led mode: disable|after_first_fix|only_3d|only_2d_3d|always")
	pulseWidth := flag.Int("pulse-width", 100, "led pulse width in ms (1-999)")
	flag.Parse()

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunPPSCtl(*mode, *pulseWidth); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
