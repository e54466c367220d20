package form

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mapty/internal/modules/workout/dto"
	"mapty/internal/ui/theme"
)

var kinds = []string{"running", "cycling"}

type field int

const (
	fieldType field = iota
	fieldDistance
	fieldDuration
	fieldCadence
	fieldElevation
	fieldCount
)

var labels = [fieldCount]string{"Type", "Distance", "Duration", "Cadence", "Elev Gain"}

// Form is the workout entry form. It starts hidden and with the cadence
// row shown; the elevation row replaces it when the rows are toggled.
type Form struct {
	inputs        [fieldCount]textinput.Model
	kind          int
	visible       bool
	showElevation bool
	focus         field
	focused       bool
	width         int

	onSubmit     func()
	onTypeChange func()
}

func New() *Form {
	f := &Form{}
	placeholders := [fieldCount]string{"", "km", "min", "step/min", "meters"}
	for i := fieldDistance; i < fieldCount; i++ {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 12
		ti.Prompt = ""
		f.inputs[i] = ti
	}
	return f
}

// ─── form ports ──────────────────────────────────────────────────────────────

func (f *Form) Show() { f.visible = true }

// Hide clears every numeric input and hides the form. The type selection
// and row layout survive.
func (f *Form) Hide() {
	for i := fieldDistance; i < fieldCount; i++ {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.visible = false
	f.focus = fieldDistance
}

func (f *Form) FocusDistance() { f.setFocus(fieldDistance) }

func (f *Form) ToggleMetricRows() {
	f.showElevation = !f.showElevation
	if f.focus == fieldCadence || f.focus == fieldElevation {
		f.setFocus(f.metricField())
	}
}

func (f *Form) Values() dto.FormValues {
	return dto.FormValues{
		Type:      kinds[f.kind],
		Distance:  f.inputs[fieldDistance].Value(),
		Duration:  f.inputs[fieldDuration].Value(),
		Cadence:   f.inputs[fieldCadence].Value(),
		Elevation: f.inputs[fieldElevation].Value(),
	}
}

func (f *Form) OnSubmit(handler func())     { f.onSubmit = handler }
func (f *Form) OnTypeChange(handler func()) { f.onTypeChange = handler }

// ─── state ───────────────────────────────────────────────────────────────────

func (f *Form) Visible() bool        { return f.visible }
func (f *Form) ElevationShown() bool { return f.showElevation }
func (f *Form) SetWidth(width int)   { f.width = width }
func (f *Form) SetFocused(focused bool) {
	f.focused = focused
	if focused {
		f.setFocus(f.focus)
		return
	}
	for i := fieldDistance; i < fieldCount; i++ {
		f.inputs[i].Blur()
	}
}

// ─── update ──────────────────────────────────────────────────────────────────

func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if !f.visible || !f.focused {
		return nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "tab", "down":
			f.setFocus(f.next(1))
			return nil
		case "shift+tab", "up":
			f.setFocus(f.next(-1))
			return nil
		case "enter":
			if f.onSubmit != nil {
				f.onSubmit()
			}
			return nil
		}
		if f.focus == fieldType {
			switch k.String() {
			case "left", "right", " ", "h", "l":
				f.kind = (f.kind + 1) % len(kinds)
				if f.onTypeChange != nil {
					f.onTypeChange()
				}
			}
			return nil
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *Form) metricField() field {
	if f.showElevation {
		return fieldElevation
	}
	return fieldCadence
}

// next returns the visible field delta steps from the current one.
func (f *Form) next(delta int) field {
	order := []field{fieldType, fieldDistance, fieldDuration, f.metricField()}
	idx := 0
	for i, fl := range order {
		if fl == f.focus {
			idx = i
		}
	}
	return order[(idx+delta+len(order))%len(order)]
}

func (f *Form) setFocus(target field) {
	f.focus = target
	for i := fieldDistance; i < fieldCount; i++ {
		if i == target && f.focused {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (f *Form) View() string {
	if !f.visible {
		return ""
	}
	label := lipgloss.NewStyle().Foreground(theme.Subtext0).Width(11)
	active := lipgloss.NewStyle().Foreground(theme.Lavender).Bold(true).Width(11)

	cells := make([]string, 0, 4)
	for _, fl := range []field{fieldType, fieldDistance, fieldDuration, f.metricField()} {
		style := label
		if f.focused && fl == f.focus {
			style = active
		}
		var value string
		if fl == fieldType {
			value = lipgloss.NewStyle().Foreground(theme.KindColor(kinds[f.kind])).Render("‹ " + capitalize(kinds[f.kind]) + " ›")
		} else {
			value = f.inputs[fl].View()
		}
		cells = append(cells, style.Render(labels[fl])+value)
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top, pad(cells[0]), cells[1])
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, pad(cells[2]), cells[3])
	w := f.width
	if w < 30 {
		w = 30
	}
	return theme.Pane.Width(w - 2).Render(top + "\n" + bottom)
}

func pad(s string) string {
	return lipgloss.NewStyle().Width(24).Render(s)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
