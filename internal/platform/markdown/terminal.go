package markdown

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Terminal renders markdown for display in a terminal, wrapped at width
// columns. A width of zero disables wrapping.
func Terminal(content string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
