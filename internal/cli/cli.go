// Package cli implements the standplan command-line interface.
//
// The desktop editor is started with the gui command. The remaining
// commands work on saved layout files without a display: check validates
// a layout and prints pavilion occupancy, place auto-places the backlog,
// import adds stands from CSV, Excel or DXF files and export renders the
// PDF floor plan or stand signs.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Otherwise
// the level comes from the log_level key of the config file. Loggers are
// passed through context.Context.
package cli

import (
	"errors"

	"github.com/charmbracelet/log"
)

const appName = "standplan"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// ErrInvalidLayout is returned by check when the layout breaks the bounds
// or overlap rules.
var ErrInvalidLayout = errors.New("layout has placement violations")
