// Package main is the entry point for the scrub CLI.
package main

import (
	"os"

	"github.com/jmylchreest/scrub/cmd/scrub/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
