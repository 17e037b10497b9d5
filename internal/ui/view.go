package ui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"sandbox/internal/ui/theme"
)

const tagline = "Look ma, no hands!"

func (m *App) View() string {
	if !m.ready {
		return "Initializing..."
	}

	width := max(m.width, 1)
	height := max(m.height, 3)
	bodyStart := 1
	bodyHeight := max(height-2, 1)

	surface := NewPrimarySurface(width, height)
	surface.Draw(0, 0, m.renderHeader())
	surface.Draw(0, bodyStart, m.renderContent(width, bodyHeight))
	surface.Draw(0, height-1, m.renderFooter())

	surface.Canvas.Compose(
		m.overlayLayer(),
		m.toastLayer(width, height, bodyStart, bodyHeight),
	)
	return surface.Render()
}

// renderHeader shows the app name and version, with the update state on the right.
func (m *App) renderHeader() string {
	left := styleAppHeader().Render(strings.ToUpper(m.info.Name))
	if v := displayVersion(m.info.Version); v != "" {
		left += styleHeaderVersion().Render(" " + v)
	}

	var right string
	switch {
	case m.checking():
		right = styleStatsDim().Render("Checking for updates…")
	case m.available != nil:
		right = styleUpdateIndicator().Render("⬆ " + displayVersion(m.available.LatestVersion) + " available (n)")
	}
	if right == "" {
		return left
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		return left
	}
	return left + baseStyle().Render(strings.Repeat(" ", gap)) + right
}

// renderContent centers the icon and tagline in the body.
func (m *App) renderContent(width, height int) string {
	block := lipgloss.JoinVertical(lipgloss.Center,
		styleIcon().Render("✺"),
		baseStyle().Render(""),
		styleTagline().Render(tagline),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block,
		lipgloss.WithWhitespaceBackground(theme.Current().Background()))
}

// displayVersion prefixes numeric versions with "v".
func displayVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if unicode.IsDigit(rune(v[0])) {
		return "v" + v
	}
	return v
}
