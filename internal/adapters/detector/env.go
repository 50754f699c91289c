// Package detector decides whether sho can take over the terminal.
package detector

import (
	"os"

	"golang.org/x/term"
)

// Mode represents how a session presents loaded designs.
type Mode int

const (
	// ModeInteractive runs the full-screen design browser.
	ModeInteractive Mode = iota
	// ModeSummary loads designs, fills the cache and prints a summary.
	ModeSummary
)

// String returns the flag spelling of the mode.
func (m Mode) String() string {
	if m == ModeSummary {
		return "summary"
	}
	return "interactive"
}

// DetectEnvironment returns ModeSummary when stdout is not a terminal or a
// CI environment is detected.
func DetectEnvironment() Mode {
	return detect(term.IsTerminal(int(os.Stdout.Fd())), os.Getenv("CI"))
}

func detect(isTTY bool, ci string) Mode {
	if !isTTY || ci == "true" || ci == "1" {
		return ModeSummary
	}
	return ModeInteractive
}

// ResolveMode applies the --quiet flag on top of detection.
func ResolveMode(detected Mode, quiet bool) Mode {
	if quiet {
		return ModeSummary
	}
	return detected
}
