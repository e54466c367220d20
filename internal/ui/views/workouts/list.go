package workouts

import (
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mapty/internal/modules/workout/dto"
	"mapty/internal/ui/theme"
)

// ─── list item ───────────────────────────────────────────────────────────────

type entryItem struct {
	entry dto.Entry
}

func (i entryItem) Title() string { return i.entry.Title }

func (i entryItem) Description() string {
	parts := make([]string, 0, len(i.entry.Details))
	for _, d := range i.entry.Details {
		parts = append(parts, d.Icon+" "+d.Value+" "+d.Unit)
	}
	return strings.Join(parts, "  ")
}

func (i entryItem) FilterValue() string { return i.entry.Title }

// ─── delegate ────────────────────────────────────────────────────────────────

// delegate colours the selection border by workout type.
type delegate struct {
	list.DefaultDelegate
}

func (d delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(entryItem)
	if !ok {
		return
	}
	dd := d.DefaultDelegate
	color := theme.KindColor(entry.entry.Type)
	dd.Styles.NormalTitle = dd.Styles.NormalTitle.BorderStyle(lipgloss.ThickBorder()).BorderLeft(true).BorderForeground(color).PaddingLeft(1)
	dd.Styles.NormalDesc = dd.Styles.NormalDesc.BorderStyle(lipgloss.ThickBorder()).BorderLeft(true).BorderForeground(color).PaddingLeft(1)
	dd.Styles.SelectedTitle = dd.Styles.SelectedTitle.Foreground(color).BorderForeground(color)
	dd.Styles.SelectedDesc = dd.Styles.SelectedDesc.Foreground(theme.Text).BorderForeground(color)
	dd.Render(w, m, index, item)
}

// ─── model ───────────────────────────────────────────────────────────────────

// List is the sidebar of workouts, newest first.
type List struct {
	list     list.Model
	onSelect func(id string)
	focused  bool
}

func New() *List {
	l := list.New(nil, delegate{DefaultDelegate: list.NewDefaultDelegate()}, 0, 0)
	l.Title = "Workouts"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	return &List{list: l}
}

// ─── list ports ──────────────────────────────────────────────────────────────

// InsertAfterForm puts the entry directly under the form, above older ones.
func (l *List) InsertAfterForm(entry dto.Entry) {
	l.list.InsertItem(0, entryItem{entry: entry})
	l.list.Select(0)
}

func (l *List) OnSelect(handler func(id string)) { l.onSelect = handler }

// ─── state ───────────────────────────────────────────────────────────────────

func (l *List) Len() int                  { return len(l.list.Items()) }
func (l *List) SetFocused(focused bool)   { l.focused = focused }
func (l *List) SetSize(width, height int) { l.list.SetSize(width, height) }

// Filtering reports whether the search filter is open; global keys yield
// while it is.
func (l *List) Filtering() bool {
	return l.list.FilterState() == list.Filtering
}

// IDs returns the entry ids in display order.
func (l *List) IDs() []string {
	items := l.list.Items()
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if e, ok := it.(entryItem); ok {
			ids = append(ids, e.entry.ID)
		}
	}
	return ids
}

func (l *List) SelectedID() (string, bool) {
	if e, ok := l.list.SelectedItem().(entryItem); ok {
		return e.entry.ID, true
	}
	return "", false
}

// ─── update ──────────────────────────────────────────────────────────────────

func (l *List) Update(msg tea.Msg) tea.Cmd {
	if !l.focused {
		return nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "enter" && !l.Filtering() {
		id, _ := l.SelectedID()
		if l.onSelect != nil {
			l.onSelect(id)
		}
		return nil
	}
	var cmd tea.Cmd
	l.list, cmd = l.list.Update(msg)
	return cmd
}

func (l *List) View() string {
	if len(l.list.Items()) == 0 {
		return theme.Title.Render("Workouts") + "\n\n" + theme.Muted.Render("No workouts yet. Pick a spot on the map and press enter.")
	}
	return l.list.View()
}
