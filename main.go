// Package main is the entrypoint for the CoreIQ CLI.
// It delegates all command handling to the cmd package.
package main

import (
	"os"

	"github.com/toyinlola/coreiq/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
