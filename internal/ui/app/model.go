package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mapty/internal/modules/workout/dto"
	workoutin "mapty/internal/modules/workout/port/in"
	workoutout "mapty/internal/modules/workout/port/out"
	"mapty/internal/ui/components"
	"mapty/internal/ui/theme"
	"mapty/internal/ui/views/form"
	"mapty/internal/ui/views/mapview"
	"mapty/internal/ui/views/workouts"
)

// ─── workbench ───────────────────────────────────────────────────────────────

// Workbench is one controller together with the widgets it drives.
type Workbench struct {
	Controller workoutin.Usecase
	Canvas     *mapview.Canvas
	Form       *form.Form
	List       *workouts.List
}

// Factory builds a fresh workbench. The alerter and reloader belong to the
// root model and outlive every workbench.
type Factory func(alerter workoutout.Alerter, reloader workoutout.Reloader) (Workbench, error)

type reloadSignal struct{ requested bool }

func (r *reloadSignal) Reload() { r.requested = true }

// ─── focus ───────────────────────────────────────────────────────────────────

type focusID int

const (
	focusMap focusID = iota
	focusList
	focusForm
)

// ─── async messages ──────────────────────────────────────────────────────────

// positionMsg carries the position lookup back to the event loop. The
// generation ties it to the workbench that asked.
type positionMsg struct {
	generation int
	result     dto.PositionResult
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Move    key.Binding
	Enter   key.Binding
	Zoom    key.Binding
	Tab     key.Binding
	Back    key.Binding
	Reset   key.Binding
	Palette key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Move:    key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("←↑↓→", "move")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pick spot / save / go to")),
		Zoom:    key.NewBinding(key.WithKeys("+", "-"), key.WithHelp("+/-", "zoom")),
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave form")),
		Reset:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "delete all workouts")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Enter, k.Zoom},
		{k.Tab, k.Back, k.Reset},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It routes input to the focused
// widget, owns the alert queue and the palette, and rebuilds the workbench
// when the controller asks for a reload.
type Model struct {
	factory    Factory
	wb         Workbench
	generation int

	alerts *components.Alerts
	reload *reloadSignal

	focus       focusID
	formVisible bool
	keys        keyMap
	help        help.Model
	showHelp    bool
	palette     components.Palette
	status      string
	width       int
	height      int
}

func NewModel(factory Factory) (Model, error) {
	m := Model{
		factory: factory,
		alerts:  components.NewAlerts(),
		reload:  &reloadSignal{},
		keys:    defaultKeys(),
		help:    help.New(),
		palette: components.NewPalette(),
		status:  "locating…",
	}
	wb, err := factory(m.alerts, m.reload)
	if err != nil {
		return Model{}, fmt.Errorf("build workbench: %w", err)
	}
	m.wb = wb
	m.applyFocus()
	return m, nil
}

// Workbench exposes the current widgets, mainly for tests.
func (m Model) Workbench() Workbench { return m.wb }

func (m Model) Init() tea.Cmd {
	return m.startCmd()
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.layout()
		return m, nil

	case positionMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.wb.Controller.HandlePosition(context.Background(), msg.result)
		if msg.result.Err != nil || !m.wb.Canvas.Loaded() {
			m.wb.Canvas.SetUnavailable()
			m.status = "location unavailable"
		} else {
			m.status = "ready"
		}
		return m.settle(cmds)

	case mapview.TickMsg:
		cmds = append(cmds, m.wb.Canvas.Update(msg))
		return m.settle(cmds)

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil
	}

	// A pending alert blocks everything else until dismissed.
	if m.alerts.Pending() {
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "enter", "esc", " ":
				m.alerts.Dismiss()
			}
		}
		return m, nil
	}

	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		if m.showHelp {
			if k.String() == "?" || k.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if handled, model, cmd := m.handleGlobalKey(k); handled {
			return model, cmd
		}
		switch m.focus {
		case focusMap:
			cmds = append(cmds, m.wb.Canvas.Update(msg))
		case focusList:
			cmds = append(cmds, m.wb.List.Update(msg))
		case focusForm:
			cmds = append(cmds, m.wb.Form.Update(msg))
		}
		return m.settle(cmds)
	}

	// Cursor blinks and list status messages go to both text widgets.
	cmds = append(cmds, m.wb.Form.Update(msg), m.wb.List.Update(msg))
	return m.settle(cmds)
}

// handleGlobalKey runs bindings that apply regardless of the focused pane.
// The form keeps most keys for typing.
func (m Model) handleGlobalKey(k tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	s := k.String()
	if s == "ctrl+c" {
		return true, m, tea.Quit
	}
	if m.focus == focusForm {
		if s == "esc" {
			m.focus = focusMap
			m.applyFocus()
			return true, m, nil
		}
		return false, m, nil
	}
	if m.focus == focusList && m.wb.List.Filtering() {
		return false, m, nil
	}
	switch s {
	case "q":
		return true, m, tea.Quit
	case "tab":
		m.cycleFocus()
		return true, m, nil
	case "?":
		m.showHelp = true
		return true, m, nil
	case ":":
		return true, m, m.palette.Open(m.wb.List.IDs())
	case "R":
		model, cmd := m.reset()
		return true, model, cmd
	}
	return false, m, nil
}

// settle runs after every event that may have touched the workbench: it
// follows form visibility with focus, performs a requested reload, and
// starts the pan animation ticker.
func (m Model) settle(cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	if m.reload.requested {
		m.reload.requested = false
		wb, err := m.factory(m.alerts, m.reload)
		if err != nil {
			m.status = "reload failed: " + err.Error()
		} else {
			m.wb = wb
			m.generation++
			m.focus = focusMap
			m.formVisible = false
			m.layout()
			m.status = "locating…"
			cmds = append(cmds, m.startCmd())
		}
	}

	visible := m.wb.Form.Visible()
	switch {
	case visible && !m.formVisible:
		m.focus = focusForm
	case !visible && m.focus == focusForm:
		m.focus = focusMap
	}
	m.formVisible = visible
	m.applyFocus()
	m.layout()

	cmds = append(cmds, m.wb.Canvas.AnimationCmd())
	return m, tea.Batch(cmds...)
}

func (m Model) reset() (tea.Model, tea.Cmd) {
	if err := m.wb.Controller.Reset(context.Background()); err != nil {
		m.status = "reset failed: " + err.Error()
		return m, nil
	}
	m.status = "workouts deleted"
	return m.settle(nil)
}

func (m *Model) cycleFocus() {
	switch m.focus {
	case focusMap:
		m.focus = focusList
	case focusList:
		if m.wb.Form.Visible() {
			m.focus = focusForm
		} else {
			m.focus = focusMap
		}
	default:
		m.focus = focusMap
	}
	m.applyFocus()
}

func (m *Model) applyFocus() {
	m.wb.Canvas.SetFocused(m.focus == focusMap)
	m.wb.List.SetFocused(m.focus == focusList)
	m.wb.Form.SetFocused(m.focus == focusForm)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	status := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(status)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.alerts.Pending():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.alerts.View())
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.renderPanes(contentH)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, status)
}

func (m Model) renderPanes(height int) string {
	sideW, mapW := m.paneWidths()
	sidebar := lipgloss.JoinVertical(lipgloss.Left, m.wb.Form.View(), m.wb.List.View())

	sideStyle, mapStyle := theme.Pane, theme.Pane
	switch m.focus {
	case focusMap:
		mapStyle = theme.PaneActive
	default:
		sideStyle = theme.PaneActive
	}
	left := sideStyle.Width(sideW - 2).Height(height - 2).Render(sidebar)
	right := mapStyle.Width(mapW - 2).Height(height - 2).Render(m.wb.Canvas.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderHeader() string {
	title := theme.Title.Render("mapty") + "  " +
		lipgloss.NewStyle().Foreground(theme.Running).Render("● running") + "  " +
		lipgloss.NewStyle().Foreground(theme.Cycling).Render("● cycling")
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(title)
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	switch parts[0] {
	case "pan":
		if len(parts) < 2 {
			m.status = "usage: pan <id>"
			return m, nil
		}
		m.wb.Controller.MoveToPopup(parts[1])
		return m.settle(nil)

	case "focus":
		if len(parts) < 2 {
			m.status = "usage: focus map|list"
			return m, nil
		}
		switch parts[1] {
		case "map":
			m.focus = focusMap
		case "list":
			m.focus = focusList
		default:
			m.status = "unknown pane: " + parts[1]
			return m, nil
		}
		m.applyFocus()
		return m, nil

	case "new":
		if !m.wb.Canvas.Loaded() {
			m.status = "map not loaded"
			return m, nil
		}
		m.wb.Controller.ShowForm(m.wb.Canvas.CursorPosition())
		return m.settle(nil)

	case "reset":
		return m.reset()

	case "help":
		m.showHelp = true
		return m, nil

	case "quit":
		return m, tea.Quit

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) paneWidths() (int, int) {
	sideW := m.width * 4 / 10
	if sideW < 32 {
		sideW = 32
	}
	mapW := m.width - sideW
	if mapW < 12 {
		mapW = 12
	}
	return sideW, mapW
}

func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	sideW, mapW := m.paneWidths()
	contentH := m.height - 2
	m.wb.Canvas.SetSize(mapW-4, contentH-2)
	m.wb.Form.SetWidth(sideW - 4)
	listH := contentH - 2 - lipgloss.Height(m.wb.Form.View())
	if listH < 3 {
		listH = 3
	}
	m.wb.List.SetSize(sideW-4, listH)
}

// ─── async commands ──────────────────────────────────────────────────────────

// startCmd starts the workbench on the event loop and returns the position
// lookup to run off it.
func (m Model) startCmd() tea.Cmd {
	ctx := context.Background()
	request := m.wb.Controller.Start(ctx)
	generation := m.generation
	return func() tea.Msg {
		return positionMsg{generation: generation, result: request(ctx)}
	}
}
