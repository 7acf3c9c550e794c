// Package printer formats CLI output with color.
package printer

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/comalice/forestx"
)

func init() {
	// Force color output even when not connected to a TTY; users can
	// disable with the NO_COLOR environment variable.
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// Info prints an informational message in the default color.
func Info(format string, a ...any) {
	fmt.Printf(format, a...)
}

// Success prints a success message in green.
func Success(format string, a ...any) {
	green.Printf("✓ "+format, a...)
}

// Warning prints a warning message in yellow.
func Warning(format string, a ...any) {
	yellow.Printf("⚠ "+format, a...)
}

// Errorf prints an error message in red to stderr and returns a plain error
// for Cobra (which is silenced, so it is not printed twice).
func Errorf(format string, a ...any) error {
	red.Fprintf(os.Stderr, format+"\n", a...)
	return fmt.Errorf(format, a...)
}

// Result prints a tick result colored by outcome.
func Result(r forestx.TickResult) {
	switch {
	case r.IsSuccess():
		green.Printf("%s\n", r)
	case r.IsFailure():
		red.Printf("%s\n", r)
	default:
		yellow.Printf("%s\n", r)
	}
}

// KV prints a key/value line with a cyan key.
func KV(key string, value any) {
	cyan.Printf("%s", key)
	fmt.Printf(" = %v\n", value)
}
