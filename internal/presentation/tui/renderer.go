package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders passage text as markdown
// using glamour. It falls back to the raw text if glamour cannot start.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return PlainRenderer
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// PlainRenderer returns text unchanged apart from trailing whitespace.
func PlainRenderer(text string) (string, error) {
	return strings.TrimRight(text, " \n") + "\n", nil
}
