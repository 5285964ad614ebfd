// Package styles contains the shared styles for terminal output.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type RenderFunc func(string ...string) string

const (
	Check = "✔"
	Bang  = "!"
	Dot   = "•"
)

const (
	ColorSuccess = "#22c55e"
	ColorWarning = "#eab308"
	ColorError   = "#d75f6b"
	ColorSubtle  = "#a3a3a3"
)

var (
	Bold = lipgloss.NewStyle().Bold(true).Render

	Error   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render
	Warning = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Render
	Success = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).PaddingLeft(1).Render
	Subtle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSubtle)).PaddingLeft(1).Render
)

// ErrorBox renders title and message with a left border. Every line of a
// multi-line message gets its own border segment.
func ErrorBox(title, message string) string {
	border := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
	subtle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSubtle))

	lines := []string{border.Render("╭ " + title)}
	for _, l := range strings.Split(message, "\n") {
		lines = append(lines, border.Render("│")+" "+subtle.Render(l))
	}
	lines = append(lines, border.Render("╵"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
