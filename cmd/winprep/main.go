// Package main provides the entry point for the winprep CLI.
package main

import (
	"errors"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		// A failed run has already printed its summary.
		if !errors.Is(err, errIncomplete) {
			printError(err)
		}
		os.Exit(1)
	}
}
