// Package ui provides colored terminal output helpers for the CLI.
package ui

import (
	"fmt"
	"sync"

	"github.com/fatih/color"
)

var (
	cyan    = color.New(color.FgCyan).SprintFunc()
	yellow  = color.New(color.FgYellow).SprintFunc()
	red     = color.New(color.FgRed).SprintFunc()
	green   = color.New(color.FgGreen).SprintFunc()
	magenta = color.New(color.FgMagenta).SprintFunc()

	quietMu sync.Mutex
	quiet   bool
)

// SetQuietMode suppresses all output except errors
func SetQuietMode(q bool) {
	quietMu.Lock()
	defer quietMu.Unlock()
	quiet = q
}

// IsQuietMode reports whether quiet mode is enabled
func IsQuietMode() bool {
	quietMu.Lock()
	defer quietMu.Unlock()
	return quiet
}

// SetNoColor disables colored output
func SetNoColor(disable bool) {
	color.NoColor = disable
}

// PrintError prints an error message in red. Errors print even in quiet mode.
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		fmt.Println(red(msg + ": " + fmt.Sprint(args[0])))
	} else {
		fmt.Println(red(msg))
	}
}

// PrintSuccess prints a success message in green
func PrintSuccess(msg string) {
	if IsQuietMode() {
		return
	}
	fmt.Println(green(msg))
}

// PrintInfo prints a labeled info line
func PrintInfo(label string, value string) {
	if IsQuietMode() {
		return
	}
	fmt.Printf("%s: %s\n", cyan(label), yellow(value))
}

// PrintWarning prints a warning message in yellow
func PrintWarning(msg string, args ...interface{}) {
	if IsQuietMode() {
		return
	}
	if len(args) > 0 {
		fmt.Println(yellow(msg + ": " + fmt.Sprint(args[0])))
	} else {
		fmt.Println(yellow(msg))
	}
}

// PrintHighlight prints a highlighted message in magenta
func PrintHighlight(msg string) {
	if IsQuietMode() {
		return
	}
	fmt.Println(magenta(msg))
}

// PrintProgress prints a per-page progress line, mirroring the pagination loop
func PrintProgress(page, stored, skipped int) {
	if IsQuietMode() {
		return
	}
	fmt.Printf("%s page %d: %s stored, %s skipped\n",
		cyan("►"), page, green(fmt.Sprint(stored)), yellow(fmt.Sprint(skipped)))
}
