package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	// Workout kinds keep the original brand colours rather than the palette.
	Running = lipgloss.Color("#00c46a")
	Cycling = lipgloss.Color("#ffb545")

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(0, 1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Error = lipgloss.NewStyle().Foreground(Red).Bold(true)
)

// KindColor returns the accent colour for a workout type or popup class
// ("running", "running-popup"). Unknown kinds fall back to Lavender.
func KindColor(kind string) lipgloss.Color {
	switch kind {
	case "running", "running-popup":
		return Running
	case "cycling", "cycling-popup":
		return Cycling
	}
	return Lavender
}
