package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mapty/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

const maxSuggestions = 6

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle   = lipgloss.NewStyle().Foreground(theme.Subtext0)
	activeStyle = lipgloss.NewStyle().Foreground(theme.Peach).Bold(true)
)

// commands must stay in sync with the switch in app/model.go executePalette.
var commands = []string{"pan", "focus map", "focus list", "new", "reset", "help", "quit"}

// Palette is a command line overlay. Typing "pan " offers the ids of the
// workouts in the list; tab accepts the first suggestion.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	ids     []string
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "pan <id>, new, reset…"
	ti.CharLimit = 64
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette with an empty input. ids are the workout ids
// offered after "pan ".
func (p *Palette) Open(ids []string) tea.Cmd {
	p.visible = true
	p.ids = append(p.ids[:0], ids...)
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

// Suggestions lists the completions for the current input.
func (p Palette) Suggestions() []string {
	value := strings.ToLower(strings.TrimLeft(p.input.Value(), " "))
	var out []string
	if rest, ok := strings.CutPrefix(value, "pan "); ok {
		rest = strings.TrimSpace(rest)
		for _, id := range p.ids {
			if strings.HasPrefix(id, rest) {
				out = append(out, "pan "+id)
			}
		}
	} else {
		for _, c := range commands {
			if strings.HasPrefix(c, value) {
				out = append(out, c)
			}
		}
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			if s := p.Suggestions(); len(s) > 0 {
				completed := s[0]
				if completed == "pan" {
					completed += " "
				}
				p.input.SetValue(completed)
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if s := p.Suggestions(); len(s) > 0 {
		sb.WriteString("\n")
		for i, h := range s {
			style := hintStyle
			if i == 0 {
				style = activeStyle
			}
			sb.WriteString(style.Render("  "+h) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
