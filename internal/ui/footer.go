package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sandbox/internal/ui/theme"
)

// footerHint defines a key hint for the footer bar.
// These are intentionally shorter than the KeyMap help text.
type footerHint struct {
	key  string
	desc string
}

// Ordered by importance; trimming drops from the end.
var footerHints = []footerHint{
	{"m", "Menu"},
	{"u", "Check"},
	{"?", "Help"},
	{"q", "Quit"},
}

// renderFooter renders the footer bar with pill-style key hints.
func (m *App) renderFooter() string {
	themeRendered := styleFooterMuted().Render("Theme: " + theme.CurrentName())
	themeWidth := lipgloss.Width(themeRendered)
	availableWidth := m.width - themeWidth - 4

	hints := trimHintsToFit(footerHints, availableWidth)

	var parts []string
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	left := strings.Join(parts, baseStyle().Render("  "))
	leftWidth := lipgloss.Width(left)

	spacing := max(m.width-leftWidth-themeWidth, 2)
	return left + baseStyle().Render(strings.Repeat(" ", spacing)) + themeRendered
}

// keyPill renders a single key hint as a pill with description.
func keyPill(key, desc string) string {
	return styleKeyPill().Render(" "+key+" ") + styleKeyDesc().Render(" "+desc)
}

// trimHintsToFit removes hints from the end until the rest fit.
func trimHintsToFit(hints []footerHint, availableWidth int) []footerHint {
	for len(hints) > 0 && renderHintsWidth(hints) > availableWidth {
		hints = hints[:len(hints)-1]
	}
	return hints
}

// renderHintsWidth calculates the visual width of rendered hints.
func renderHintsWidth(hints []footerHint) int {
	var parts []string
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	return lipgloss.Width(strings.Join(parts, "  "))
}
