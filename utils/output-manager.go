package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("37"))            // dark green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))             // red
	debugStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))           // light grey
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")) // purple
)

var StyleSymbols = map[string]string{
	"pass":  "✓",
	"fail":  "✗",
	"arrow": "→",
}

// output overrides where the print helpers write; nil means os.Stdout
var output io.Writer

// SetOutput redirects the print helpers to w; nil restores os.Stdout
func SetOutput(w io.Writer) {
	output = w
}

func out() io.Writer {
	if output == nil {
		return os.Stdout
	}
	return output
}

func PrintSuccess(text string) {
	fmt.Fprintln(out(), successStyle.Render(StyleSymbols["pass"] + " " + text))
}
func PrintError(text string) {
	fmt.Fprintln(out(), errorStyle.Render(StyleSymbols["fail"] + " " + text))
}

// PrintStep prints "label → detail" with the label highlighted
func PrintStep(label, detail string) {
	fmt.Fprintf(out(), "%s %s %s\n", headerStyle.Render(label), debugStyle.Render(StyleSymbols["arrow"]), detail)
}
