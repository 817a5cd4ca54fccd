// Package main provides the pxscale CLI for generating desktop retina
// override stylesheets.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/yacobolo/pxscale"
)

// Exit codes
const (
	exitOK         = 0
	exitFailure    = 1
	exitMissingDir = 2
	exitStale      = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := rootCmd.Execute(); err != nil {
		code := exitCode(err)
		if code != exitStale || !getBoolWithFallback("quiet", "quiet", false) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return code
	}
	return exitOK
}

// exitCode maps an error onto the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, pxscale.ErrStylesheetDirMissing):
		return exitMissingDir
	case errors.Is(err, pxscale.ErrOutputStale):
		return exitStale
	default:
		return exitFailure
	}
}
