// Package style holds the colours and icons shared by CLI output.
package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colours.
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
)

// Styles are the palette bound to one renderer.
type Styles struct {
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// New creates the styles for r. Tabs are kept as written.
func New(r *lipgloss.Renderer) Styles {
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)

	return Styles{
		Muted:   base.Foreground(Slate),
		Success: base.Foreground(Green),
		Warning: base.Foreground(Yellow),
		Error:   base.Foreground(Red),
	}
}

// RenderLines renders every line of text separately so multi-line messages
// are not padded to a common width.
func RenderLines(s lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = s.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
