package mapview

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mapty/internal/modules/workout/dto"
	workoutout "mapty/internal/modules/workout/port/out"
	"mapty/internal/ui/theme"
)

const (
	minZoom       = 1
	maxZoom       = 19
	frameInterval = time.Second / 30
)

// ─── messages ────────────────────────────────────────────────────────────────

// TickMsg advances a running pan animation.
type TickMsg struct{ Time time.Time }

// ─── model ───────────────────────────────────────────────────────────────────

type marker struct {
	at      dto.LatLng
	popup   dto.PopupOptions
	content string
}

type animation struct {
	from, to dto.LatLng
	start    time.Time
	duration time.Duration
}

// Canvas is a terminal map. It is both the map loader and the loaded
// widget: LoadMap centres it and returns the same value.
type Canvas struct {
	loaded      bool
	unavailable bool

	center      dto.LatLng
	zoom        int
	tileURL     string
	attribution string
	onClick     func(dto.LatLng)
	markers     []marker

	// cursor offset from the centre, in cells
	cursorCol int
	cursorRow int

	anim    *animation
	ticking bool
	now     func() time.Time

	width   int
	height  int
	focused bool
}

func New() *Canvas {
	return &Canvas{zoom: 13, now: time.Now}
}

// ─── map ports ───────────────────────────────────────────────────────────────

func (c *Canvas) LoadMap(center dto.LatLng, zoom int) (workoutout.MapWidget, error) {
	if zoom < minZoom || zoom > maxZoom {
		return nil, fmt.Errorf("zoom %d out of range", zoom)
	}
	c.loaded = true
	c.unavailable = false
	c.center = center
	c.zoom = zoom
	c.cursorCol, c.cursorRow = 0, 0
	return c, nil
}

func (c *Canvas) AddTileLayer(urlTemplate, attribution string) {
	c.tileURL = urlTemplate
	c.attribution = attribution
}

func (c *Canvas) OnClick(handler func(at dto.LatLng)) {
	c.onClick = handler
}

func (c *Canvas) AddMarker(at dto.LatLng, popup dto.PopupOptions, content string) {
	c.markers = append(c.markers, marker{at: at, popup: popup, content: content})
}

func (c *Canvas) PanTo(at dto.LatLng, zoom int, opts dto.PanOptions) {
	if zoom >= minZoom && zoom <= maxZoom {
		c.zoom = zoom
	}
	c.cursorCol, c.cursorRow = 0, 0
	if !opts.Animate || opts.Duration <= 0 {
		c.center = at
		c.anim = nil
		return
	}
	c.anim = &animation{from: c.center, to: at, start: c.now(), duration: opts.Duration}
}

// ─── state ───────────────────────────────────────────────────────────────────

func (c *Canvas) Loaded() bool            { return c.loaded }
func (c *Canvas) Center() dto.LatLng      { return c.center }
func (c *Canvas) Zoom() int               { return c.zoom }
func (c *Canvas) Markers() int            { return len(c.markers) }
func (c *Canvas) Animating() bool         { return c.anim != nil }
func (c *Canvas) SetFocused(focused bool) { c.focused = focused }

// SetUnavailable marks the map as never loading, after a failed position
// lookup.
func (c *Canvas) SetUnavailable() { c.unavailable = true }

func (c *Canvas) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// CursorPosition returns the coordinate under the cursor.
func (c *Canvas) CursorPosition() dto.LatLng {
	x, y := Project(c.center, c.zoom)
	return Unproject(x+float64(c.cursorCol*cellWidthPx), y+float64(c.cursorRow*cellHeightPx), c.zoom)
}

// AnimationCmd starts the frame ticker when a pan animation is pending and
// no ticker is running yet.
func (c *Canvas) AnimationCmd() tea.Cmd {
	if c.anim == nil || c.ticking {
		return nil
	}
	c.ticking = true
	return tick()
}

// ─── update ──────────────────────────────────────────────────────────────────

func (c *Canvas) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case TickMsg:
		return c.advance(msg.Time)
	case tea.KeyMsg:
		if !c.focused || !c.loaded {
			return nil
		}
		c.handleKey(msg.String())
	}
	return nil
}

func (c *Canvas) handleKey(k string) {
	switch k {
	case "up", "k":
		c.moveCursor(0, -1)
	case "down", "j":
		c.moveCursor(0, 1)
	case "left", "h":
		c.moveCursor(-1, 0)
	case "right", "l":
		c.moveCursor(1, 0)
	case "+", "=":
		if c.zoom < maxZoom {
			c.zoom++
		}
	case "-":
		if c.zoom > minZoom {
			c.zoom--
		}
	case "enter", " ":
		if c.onClick != nil {
			c.onClick(c.CursorPosition())
		}
	}
}

// moveCursor moves the cursor, scrolling the map once it reaches the edge.
func (c *Canvas) moveCursor(dc, dr int) {
	halfW, halfH := c.gridSize()
	halfW, halfH = halfW/2, halfH/2
	col, row := c.cursorCol+dc, c.cursorRow+dr
	x, y := Project(c.center, c.zoom)
	if col > halfW-1 || col < -halfW {
		x += float64(dc * cellWidthPx)
		col = c.cursorCol
	}
	if row > halfH-1 || row < -halfH {
		y += float64(dr * cellHeightPx)
		row = c.cursorRow
	}
	c.center = Unproject(x, y, c.zoom)
	c.cursorCol, c.cursorRow = col, row
}

func (c *Canvas) advance(now time.Time) tea.Cmd {
	if c.anim == nil {
		c.ticking = false
		return nil
	}
	progress := float64(now.Sub(c.anim.start)) / float64(c.anim.duration)
	if progress >= 1 {
		c.center = c.anim.to
		c.anim = nil
		c.ticking = false
		return nil
	}
	if progress < 0 {
		progress = 0
	}
	// ease-out, interpolated in pixel space so the path is straight on screen
	eased := 1 - (1-progress)*(1-progress)
	fx, fy := Project(c.anim.from, c.zoom)
	tx, ty := Project(c.anim.to, c.zoom)
	c.center = Unproject(fx+(tx-fx)*eased, fy+(ty-fy)*eased, c.zoom)
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg{Time: t} })
}

// ─── view ────────────────────────────────────────────────────────────────────

type overlay struct {
	col  int
	text string
	z    int
}

func (c *Canvas) View() string {
	w, h := c.gridSize()
	if !c.loaded {
		msg := theme.Muted.Render("Locating…")
		if c.unavailable {
			msg = theme.Error.Render("Map unavailable: could not get your location")
		}
		return lipgloss.Place(w, h+1, lipgloss.Center, lipgloss.Center, msg)
	}

	rows := make([][]overlay, h)
	cx, cy := Project(c.center, c.zoom)
	originX := cx - float64(w/2*cellWidthPx)
	originY := cy - float64(h/2*cellHeightPx)

	for _, m := range c.markers {
		mx, my := Project(m.at, c.zoom)
		col := cellIndex(mx-originX, cellWidthPx)
		row := cellIndex(my-originY, cellHeightPx)
		if col < 0 || col >= w || row < 0 || row >= h {
			continue
		}
		color := theme.KindColor(m.popup.ClassName)
		rows[row] = append(rows[row], overlay{col: col, text: lipgloss.NewStyle().Foreground(color).Render("◉"), z: 1})
		if label := popupLabel(m, w-col-2); label != "" {
			rows[row] = append(rows[row], overlay{col: col + 2, text: label, z: 0})
		}
	}
	if c.focused {
		col, row := w/2+c.cursorCol, h/2+c.cursorRow
		if row >= 0 && row < h && col >= 0 && col < w {
			rows[row] = append(rows[row], overlay{col: col, text: theme.Hot.Render("✛"), z: 2})
		}
	}

	grid := lipgloss.NewStyle().Foreground(theme.Surface1)
	lines := make([]string, 0, h+1)
	for r := 0; r < h; r++ {
		worldRow := cellIndex(originY, cellHeightPx) + r
		lines = append(lines, renderRow(rows[r], w, func(col int) string {
			worldCol := cellIndex(originX, cellWidthPx) + col
			if worldCol%6 == 0 && worldRow%3 == 0 {
				return grid.Render("·")
			}
			return " "
		}))
	}
	lines = append(lines, c.footer(w))
	return strings.Join(lines, "\n")
}

// popupLabel renders the always-open popup next to a marker, clipped to the
// popup's maximum width and the space left on the row.
func popupLabel(m marker, space int) string {
	maxCols := m.popup.MaxWidth / cellWidthPx
	if space < maxCols {
		maxCols = space
	}
	if maxCols < 4 || m.content == "" {
		return ""
	}
	text := m.content
	for lipgloss.Width(text) > maxCols-2 {
		runes := []rune(text)
		text = string(runes[:len(runes)-1])
	}
	color := theme.KindColor(m.popup.ClassName)
	return lipgloss.NewStyle().
		Background(theme.Surface0).
		Foreground(theme.Text).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(color).
		Render(text + " ")
}

// renderRow lays overlays onto a row of w cells. Higher z wins where
// overlays start on the same cell; later overlays that would overlap an
// earlier one are dropped.
func renderRow(items []overlay, w int, background func(col int) string) string {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].col != items[j].col {
			return items[i].col < items[j].col
		}
		return items[i].z > items[j].z
	})
	var sb strings.Builder
	col := 0
	for _, it := range items {
		if it.col < col {
			continue
		}
		width := lipgloss.Width(it.text)
		if it.col+width > w {
			continue
		}
		for ; col < it.col; col++ {
			sb.WriteString(background(col))
		}
		sb.WriteString(it.text)
		col += width
	}
	for ; col < w; col++ {
		sb.WriteString(background(col))
	}
	return sb.String()
}

func (c *Canvas) footer(w int) string {
	pos := c.CursorPosition()
	left := fmt.Sprintf("%.4f, %.4f  z%d", pos.Lat, pos.Lng, c.zoom)
	right := c.attribution
	gap := w - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return theme.Muted.Render(left + strings.Repeat(" ", gap) + right)
}

// cellIndex maps a pixel offset to a cell, rounding down so offsets left of
// or above the origin land outside the grid.
func cellIndex(offset float64, size int) int {
	return int(math.Floor(offset / float64(size)))
}

func (c *Canvas) gridSize() (int, int) {
	w, h := c.width, c.height-1
	if w < 10 {
		w = 10
	}
	if h < 3 {
		h = 3
	}
	return w, h
}
