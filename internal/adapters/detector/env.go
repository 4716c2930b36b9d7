// Package detector chooses between the interactive board and linear output.
package detector

import (
	"os"

	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// OutputMode represents the rendering mode for the application.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeTUI forces the interactive board.
	ModeTUI
	// ModeLinear forces plain line output.
	ModeLinear
)

// Environment is the part of the process environment detection looks at.
type Environment struct {
	IsTerminal func(fd int) bool
	Getenv     func(string) string
	Stdout     *os.File
}

// System returns the Environment of the current process.
func System() Environment {
	return Environment{
		IsTerminal: term.IsTerminal,
		Getenv:     os.Getenv,
		Stdout:     os.Stdout,
	}
}

// Detect returns ModeTUI for an interactive stdout outside CI, else ModeLinear.
func (e Environment) Detect() OutputMode {
	isTTY := e.Stdout != nil && e.IsTerminal(int(e.Stdout.Fd()))

	ci := e.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModeLinear
	}
	return ModeTUI
}

// DetectEnvironment is Detect on the current process.
func DetectEnvironment() OutputMode {
	return System().Detect()
}

// ParseMode parses the --output flag: auto, tui, linear or ci.
func ParseMode(flag string) (OutputMode, error) {
	switch flag {
	case "auto", "":
		return ModeAuto, nil
	case "tui":
		return ModeTUI, nil
	case "linear", "ci":
		return ModeLinear, nil
	default:
		return ModeAuto, zerr.With(zerr.Wrap(domain.ErrInvalidOutputMode, "parse output mode"), "value", flag)
	}
}

// ResolveMode applies the user's choice to the detected mode.
func ResolveMode(autoDetected, requested OutputMode) OutputMode {
	if requested == ModeAuto {
		return autoDetected
	}
	return requested
}
