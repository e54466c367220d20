package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mapty/internal/ui/theme"
)

var alertStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.DoubleBorder()).
	BorderForeground(theme.Red).
	Background(theme.Mantle).
	Foreground(theme.Text).
	Padding(1, 3)

// Alerts is a queue of blocking messages. While any is pending the app
// shows the oldest one and swallows input until it is dismissed.
type Alerts struct {
	pending []string
}

func NewAlerts() *Alerts { return &Alerts{} }

func (a *Alerts) Alert(message string) {
	a.pending = append(a.pending, message)
}

func (a *Alerts) Pending() bool { return len(a.pending) > 0 }

// Dismiss drops the oldest alert.
func (a *Alerts) Dismiss() {
	if len(a.pending) > 0 {
		a.pending = a.pending[1:]
	}
}

func (a *Alerts) Current() string {
	if len(a.pending) == 0 {
		return ""
	}
	return a.pending[0]
}

func (a *Alerts) View() string {
	if len(a.pending) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Error.Render("Alert") + "\n\n")
	sb.WriteString(a.pending[0] + "\n\n")
	sb.WriteString(theme.Muted.Render("press enter to continue"))
	return alertStyle.Render(sb.String())
}
