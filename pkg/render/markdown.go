// Package render provides terminal rendering utilities.
package render

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Markdown renders markdown content for terminal display.
// If noColor is true, returns the content unchanged.
// Otherwise, uses glamour with auto-detected style, wrapped to the terminal width.
func Markdown(content string, noColor bool) (string, error) {
	if noColor {
		return content, nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(terminalWidth()),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}

	result, err := renderer.Render(content)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}

	return result, nil
}

// terminalWidth returns the stdout width, using COLUMNS env var or syscall.
// Defaults to 80 if detection fails, capped to keep tables readable.
func terminalWidth() int {
	const (
		defWidth = 80
		maxWidth = 120
	)

	width := 0
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if w, err := strconv.Atoi(cols); err == nil && w > 0 {
			width = w
		}
	}
	if width == 0 {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
	}

	if width == 0 {
		return defWidth
	}
	if width > maxWidth {
		return maxWidth
	}
	return width
}
