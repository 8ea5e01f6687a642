// main.go: vpmbench command entry point
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package main

import (
	"os"

	"github.com/IDEA-PRIO/VPMBench/cmd/vpmbench/commands"
)

func main() {
	root := commands.NewRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
