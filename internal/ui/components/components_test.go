package components_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"mapty/internal/ui/components"
)

func TestAlertsQueueInOrder(t *testing.T) {
	t.Parallel()
	a := components.NewAlerts()
	a.Alert("first")
	a.Alert("second")
	if !a.Pending() || a.Current() != "first" || !strings.Contains(a.View(), "first") {
		t.Fatalf("expected first alert shown")
	}
	a.Dismiss()
	if a.Current() != "second" {
		t.Fatalf("expected second alert, got %q", a.Current())
	}
	a.Dismiss()
	a.Dismiss()
	if a.Pending() || a.View() != "" {
		t.Fatalf("expected queue drained")
	}
}

func typeInto(p components.Palette, s string) components.Palette {
	for _, r := range s {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return p
}

func TestPaletteSubmitsTrimmedInput(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open(nil)
	p = typeInto(p, "re")
	if got := p.Suggestions(); len(got) != 1 || got[0] != "reset" {
		t.Fatalf("unexpected suggestions %v", got)
	}
	p = typeInto(p, "set ")
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() || cmd == nil {
		t.Fatalf("expected palette to close with a command")
	}
	msg, ok := cmd().(components.PaletteSubmitMsg)
	if !ok || msg.Input != "reset" {
		t.Fatalf("unexpected message %#v", msg)
	}
}

func TestPaletteCompletesWorkoutIDs(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open([]string{"9812345678", "9812399999", "1111111111"})

	p = typeInto(p, "pa")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p = typeInto(p, "98123")
	if got := p.Suggestions(); len(got) != 2 || got[0] != "pan 9812345678" {
		t.Fatalf("unexpected suggestions %v", got)
	}
	if !strings.Contains(p.View(), "pan 9812399999") {
		t.Fatalf("expected both ids in view")
	}

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok := cmd().(components.PaletteSubmitMsg)
	if !ok || msg.Input != "pan 9812345678" {
		t.Fatalf("unexpected message %#v", msg)
	}
}

func TestPaletteEscCancels(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open(nil)
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Visible() {
		t.Fatalf("palette should close")
	}
	if _, ok := cmd().(components.PaletteCancelMsg); !ok {
		t.Fatalf("expected cancel message")
	}
}
