// Package main is the entry point for the tablegrab CLI.
package main

import (
	"os"

	"github.com/tablegrab/tablegrab/cmd/tablegrab/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
