// Package ui holds the ANSI styles used by help and summary output.
package ui

// ANSI color and style constants for CLI output
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorDim   = "\033[2m"

	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorWhite  = "\033[97m"
)

// Bold renders s in bold
func Bold(s string) string {
	return ColorBold + s + ColorReset
}

// Success renders s in green
func Success(s string) string {
	return ColorGreen + s + ColorReset
}
