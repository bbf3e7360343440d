package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Background(lipgloss.Color("#1F2937")).
			Padding(0, 1).
			MarginBottom(1)

	completedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	taglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Italic(true)
)

// DisplayWelcomeBanner shows the welcome banner of interactive mode
func DisplayWelcomeBanner(out io.Writer) {
	fmt.Fprintln(out, titleStyle.Render("⚡ PowerupGo"))
	fmt.Fprintln(out, taglineStyle.Render("Rent CPU and NET from the powerup market"))
	fmt.Fprintln(out)
}
