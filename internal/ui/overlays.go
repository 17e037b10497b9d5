package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"sandbox/internal/debug"
)

const (
	menuWidth     = 36
	notesMaxWidth = 100
)

func (m *App) openOverlay(kind OverlayType) {
	m.activeOverlay = kind
}

func (m *App) closeOverlay() {
	m.activeOverlay = OverlayNone
}

func (m *App) openMenu() {
	m.menuCursor = 0
	m.openOverlay(OverlayMenu)
}

// moveMenuCursor steps through the menu, wrapping at either end.
func (m *App) moveMenuCursor(delta int) {
	n := m.menu.Len()
	if n == 0 {
		return
	}
	m.menuCursor = ((m.menuCursor+delta)%n + n) % n
}

// overlayLayer renders whichever modal is open.
func (m *App) overlayLayer() Layer {
	var content string
	switch m.activeOverlay {
	case OverlayMenu:
		content = m.renderMenu()
	case OverlayHelp:
		content = renderHelpOverlay(m.keys, m.menu, m.info.Name)
	case OverlayAbout:
		content = m.renderAbout()
	case OverlayNotes:
		content = m.renderNotes()
	default:
		return nil
	}
	return newCenteredOverlayLayer(content, m.width, m.height, 1, 1)
}

func (m *App) renderMenu() string {
	lines := []string{styleOverlayTitle().Render("Commands"), ""}

	prevGroup := ""
	for i, cmd := range m.menu.Commands() {
		if i > 0 && cmd.Group != prevGroup {
			lines = append(lines, styleOverlayMuted().Render(strings.Repeat("─", menuWidth)))
		}
		prevGroup = cmd.Group
		lines = append(lines, m.renderMenuItem(cmd, i == m.menuCursor))
	}

	lines = append(lines, "", styleOverlayMuted().Render("⏎ run · esc close"))
	return styleOverlay().Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *App) renderMenuItem(cmd Command, selected bool) string {
	shortcut := cmd.Key.Help().Key
	title := truncateLine(cmd.Title, menuWidth-lipgloss.Width(shortcut)-3)
	gap := max(menuWidth-lipgloss.Width(title)-lipgloss.Width(shortcut)-2, 1)
	line := " " + title + strings.Repeat(" ", gap) + shortcut + " "

	switch {
	case selected && cmd.IsEnabled(m):
		return styleMenuSelected().Render(line)
	case !cmd.IsEnabled(m):
		return styleMenuDisabled().Render(line)
	default:
		return styleMenuItem().Render(" "+title+strings.Repeat(" ", gap)) +
			styleMenuShortcut().Render(shortcut+" ")
	}
}

func (m *App) renderAbout() string {
	rows := [][2]string{
		{"Version", displayVersion(m.info.Version)},
	}
	if m.info.Build != "" {
		rows = append(rows, [2]string{"Build", m.info.Build})
	}
	if m.info.BundleID != "" {
		rows = append(rows, [2]string{"Bundle", m.info.BundleID})
	}
	if m.info.Source != "" {
		rows = append(rows, [2]string{"Metadata", m.info.Source})
	}
	rows = append(rows, [2]string{"Installed", m.installMethod.String()})
	if m.lastUpdate.Status.IsTerminal() {
		rows = append(rows, [2]string{"Updates", m.lastUpdate.Status.String()})
	}

	lines := []string{
		styleOverlayTitle().Render("✺  " + m.info.Name),
		"",
	}
	for _, r := range rows {
		lines = append(lines, styleOverlayMuted().Render(fmt.Sprintf("%-10s", r[0]))+overlayBase().Render(r[1]))
	}
	lines = append(lines, "", styleOverlayMuted().Render("Esc to close"))
	return styleOverlay().Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// openReleaseNotes renders the available release's notes into the viewport.
func (m *App) openReleaseNotes() {
	if m.available == nil {
		return
	}
	width, height := m.notesSize()
	m.notes = viewport.New(width, height)
	m.notes.KeyMap.Up = m.keys.Up
	m.notes.KeyMap.Down = m.keys.Down
	m.notes.KeyMap.PageUp = m.keys.PageUp
	m.notes.KeyMap.PageDown = m.keys.PageDown
	m.notes.SetContent(m.releaseNotesContent(width))
	m.openOverlay(OverlayNotes)
	debug.Logf("release notes opened for %s", m.available.LatestVersion)
}

func (m *App) notesSize() (int, int) {
	termWidth, termHeight := m.width, m.height
	if termWidth <= 0 {
		termWidth = 80
	}
	if termHeight <= 0 {
		termHeight = 24
	}
	width := min(max(termWidth*7/10, minViewportWidth), notesMaxWidth, max(termWidth-8, minViewportWidth))
	height := max(termHeight-12, minViewportHeight)
	return width, height
}

func (m *App) releaseNotesContent(width int) string {
	notes := strings.TrimSpace(m.available.Notes)
	if notes == "" {
		notes = "_No release notes were published for this version._"
	}
	if url := m.available.NotesURL; url != "" {
		notes += "\n\n---\n\n" + url
	}
	render := buildMarkdownRenderer(m.outputFormat, width)
	return render(notes)
}

func (m *App) resizeNotes() {
	if m.activeOverlay != OverlayNotes || m.available == nil {
		return
	}
	width, height := m.notesSize()
	m.notes.Width = width
	m.notes.Height = height
	m.notes.SetContent(m.releaseNotesContent(width))
}

func (m *App) renderNotes() string {
	title := styleOverlayTitle().Render("Release notes · " + m.available.LatestVersion)
	scroll := styleOverlayMuted().Render(fmt.Sprintf("%3.f%%", m.notes.ScrollPercent()*100))
	gap := max(m.notes.Width-lipgloss.Width(title)-lipgloss.Width(scroll), 1)
	header := title + overlayBase().Render(strings.Repeat(" ", gap)) + scroll

	footer := styleOverlayMuted().Render("↑/↓ scroll · y copy link · esc close")
	return styleOverlay().Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.notes.View(),
		"",
		footer,
	))
}
