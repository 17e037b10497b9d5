package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// helpSection represents a group of keybindings for display.
type helpSection struct {
	title string
	rows  [][]string // Each row: [keys, description]
}

// getHelpSections returns the help content organized into sections. Text is
// taken from binding.Help() so the overlay and the bindings cannot drift.
func getHelpSections(keys KeyMap, menu *Menu) []helpSection {
	commands := helpSection{title: "COMMANDS"}
	for _, cmd := range menu.Commands() {
		h := cmd.Key.Help()
		if h.Key == "" {
			continue
		}
		commands.rows = append(commands.rows, []string{h.Key, cmd.Title})
	}

	return []helpSection{
		{
			title: "GENERAL",
			rows: [][]string{
				{keys.Menu.Help().Key, keys.Menu.Help().Desc},
				{keys.Help.Help().Key, keys.Help.Help().Desc},
				{keys.Escape.Help().Key, keys.Escape.Help().Desc},
				{keys.ForceQuit.Help().Key, keys.ForceQuit.Help().Desc},
			},
		},
		{
			title: "MENU & NOTES",
			rows: [][]string{
				{keys.Up.Help().Key, keys.Up.Help().Desc},
				{keys.Enter.Help().Key, keys.Enter.Help().Desc},
				{keys.PageUp.Help().Key, keys.PageUp.Help().Desc},
				{keys.PageDown.Help().Key, keys.PageDown.Help().Desc},
			},
		},
		commands,
	}
}

// renderHelpOverlay creates the boxed help modal.
func renderHelpOverlay(keys KeyMap, menu *Menu, appName string) string {
	sections := getHelpSections(keys, menu)

	leftCol := lipgloss.JoinVertical(lipgloss.Left,
		renderHelpSectionTable(sections[0]),
		overlayBase().Render(""),
		renderHelpSectionTable(sections[1]),
	)
	rightCol := renderHelpSectionTable(sections[2])

	columns := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, overlayBase().Render("    "), rightCol)

	title := styleOverlayTitle().Render("✦ " + strings.ToUpper(appName) + " HELP ✦")
	dividerWidth := max(lipgloss.Width(columns), 40)
	divider := styleOverlayMuted().Render(strings.Repeat("─", dividerWidth))
	footer := styleOverlayMuted().Render("Press ? or Esc to close")

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		divider,
		"",
		columns,
		"",
		footer,
	)
	return styleOverlay().Render(content)
}

// renderHelpSectionTable renders a single help section using lipgloss/table.
func renderHelpSectionTable(section helpSection) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderStyle(overlayBase()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return styleHelpKey().Width(14)
			}
			return styleHelpDesc()
		}).
		Rows(section.rows...)

	header := styleHelpSectionHeader().Render(section.title)
	underline := styleOverlayMuted().Render(strings.Repeat("─", lipgloss.Width(section.title)))

	// Hidden borders still add an empty top row
	tableStr := strings.TrimPrefix(t.String(), "\n")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		underline,
		tableStr,
	)
}
