package ui

import (
	"fmt"
	"io"
	"os"
)

var (
	// ANSI Colors
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBold   = "\033[1m"
)

// Out is where status lines are written. Tests swap it for a buffer.
var Out io.Writer = os.Stdout

// Quiet suppresses everything except errors.
var Quiet bool

func PrintHeader(msg string) {
	if Quiet {
		return
	}
	fmt.Fprintf(Out, "\n%s%s%s\n", ColorBold, msg, ColorReset)
}

func PrintSuccess(label, detail string) {
	if Quiet {
		return
	}
	fmt.Fprintf(Out, "  %s✔%s %-15s %s%s\n", ColorGreen, ColorReset, label, ColorGreen, detail+ColorReset)
}

// PrintError is never silenced by Quiet.
func PrintError(label, detail string) {
	fmt.Fprintf(Out, "  %s✘%s %-15s %s%s\n", ColorRed, ColorReset, label, ColorRed, detail+ColorReset)
}

func PrintWarning(label, detail string) {
	if Quiet {
		return
	}
	fmt.Fprintf(Out, "  %s!%s %-15s %s%s\n", ColorYellow, ColorReset, label, ColorYellow, detail+ColorReset)
}
