// Package output provides terminal output formatting utilities for the brpm
// CLI. This package is designed to have minimal dependencies to avoid import
// cycles.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintStep prints a colored pipeline step header (e.g., "[3/7] Archiving source tree...").
func PrintStep(out io.Writer, stepNum, totalSteps int, name string) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", cyan(fmt.Sprintf("[%d/%d]", stepNum, totalSteps)), white(name+"..."))
}

// PrintSuccess prints a colored success message.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), cyan(message))
}

// PrintWarning prints a colored warning message.
func PrintWarning(out io.Writer, message string) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("!"), message)
}

// PrintArtifact prints a produced package path, indented under the summary.
func PrintArtifact(out io.Writer, path string) {
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "  %s\n", dim(path))
}
