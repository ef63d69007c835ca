// Package style provides shared colors and icons for terminal output.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
)

// Heading renders s as a bold section heading.
func Heading(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}
