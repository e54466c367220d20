package form_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"mapty/internal/ui/views/form"
)

func typeText(f *form.Form, s string) {
	for _, r := range s {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func openForm() *form.Form {
	f := form.New()
	f.SetFocused(true)
	f.Show()
	f.FocusDistance()
	return f
}

func TestTypingFillsFocusedFields(t *testing.T) {
	t.Parallel()
	f := openForm()
	typeText(f, "5.2")
	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(f, "24")
	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(f, "178")

	v := f.Values()
	if v.Type != "running" || v.Distance != "5.2" || v.Duration != "24" || v.Cadence != "178" || v.Elevation != "" {
		t.Fatalf("unexpected values %+v", v)
	}
}

func TestEnterSubmits(t *testing.T) {
	t.Parallel()
	f := openForm()
	submits := 0
	f.OnSubmit(func() { submits++ })
	f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if submits != 1 {
		t.Fatalf("expected one submit, got %d", submits)
	}
}

func TestHiddenFormIgnoresInput(t *testing.T) {
	t.Parallel()
	f := form.New()
	f.SetFocused(true)
	submits := 0
	f.OnSubmit(func() { submits++ })
	f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if submits != 0 || f.View() != "" {
		t.Fatalf("hidden form must be inert")
	}
}

func TestTypeChangeNotifiesAndRowsToggle(t *testing.T) {
	t.Parallel()
	f := openForm()
	changes := 0
	f.OnTypeChange(func() {
		changes++
		f.ToggleMetricRows()
	})
	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	f.Update(tea.KeyMsg{Type: tea.KeyRight})
	if changes != 1 || f.Values().Type != "cycling" || !f.ElevationShown() {
		t.Fatalf("expected cycling with elevation row, changes=%d values=%+v", changes, f.Values())
	}
	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	typeText(f, "523")
	if f.Values().Elevation != "523" || f.Values().Cadence != "" {
		t.Fatalf("elevation row must receive input, got %+v", f.Values())
	}
}

func TestHideClearsInputsButKeepsType(t *testing.T) {
	t.Parallel()
	f := openForm()
	f.OnTypeChange(f.ToggleMetricRows)
	typeText(f, "10")
	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	f.Update(tea.KeyMsg{Type: tea.KeyRight})
	f.Hide()
	v := f.Values()
	if f.Visible() || v.Distance != "" || v.Type != "cycling" {
		t.Fatalf("unexpected state after hide: visible=%v %+v", f.Visible(), v)
	}
}
