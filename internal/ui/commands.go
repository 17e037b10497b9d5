package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"sandbox/internal/debug"
	"sandbox/internal/ui/theme"
)

// Built-in command ids.
const (
	CommandAbout           = "app.about"
	CommandCheckForUpdates = "update.check"
	CommandReleaseNotes    = "update.notes"
	CommandCopyReleaseLink = "update.copy-link"
	CommandSwitchTheme     = "view.theme"
	CommandQuit            = "app.quit"
)

// defaultCommands is the top-level command menu. "Check for Updates…"
// follows the app-info group, as on macOS.
func defaultCommands(appName string) []Command {
	return []Command{
		{
			ID:    CommandAbout,
			Title: "About " + appName,
			Group: "app",
			Key: key.NewBinding(
				key.WithKeys("a"),
				key.WithHelp("a", "About "+appName),
			),
			Run: func(m *App) tea.Cmd {
				m.openOverlay(OverlayAbout)
				return nil
			},
		},
		{
			ID:    CommandCheckForUpdates,
			Title: "Check for Updates…",
			Group: "app",
			Key: key.NewBinding(
				key.WithKeys("u"),
				key.WithHelp("u", "Check for updates"),
			),
			Run: func(m *App) tea.Cmd {
				return m.startUpdateCheck()
			},
		},
		{
			ID:    CommandReleaseNotes,
			Title: "View Release Notes",
			Group: "update",
			Key: key.NewBinding(
				key.WithKeys("n"),
				key.WithHelp("n", "View release notes"),
			),
			Enabled: (*App).updateAvailable,
			Run: func(m *App) tea.Cmd {
				m.openReleaseNotes()
				return nil
			},
		},
		{
			ID:    CommandCopyReleaseLink,
			Title: "Copy Release Link",
			Group: "update",
			Key: key.NewBinding(
				key.WithKeys("y"),
				key.WithHelp("y", "Copy release link"),
			),
			Enabled: func(m *App) bool {
				return m.available != nil && m.available.NotesURL != ""
			},
			Run: func(m *App) tea.Cmd {
				return copyToClipboard(m.clipboardWrite, m.available.NotesURL)
			},
		},
		{
			ID:    CommandSwitchTheme,
			Title: "Switch Theme",
			Group: "view",
			Key: key.NewBinding(
				key.WithKeys("t"),
				key.WithHelp("t", "Switch theme"),
			),
			Run: func(m *App) tea.Cmd {
				name := theme.CycleTheme()
				debug.Logf("theme switched to %s", name)
				m.showToast(newThemeToast(name, m.now()))
				return tea.Batch(persistTheme(m.saveTheme, name), scheduleToastTick())
			},
		},
		{
			ID:    CommandQuit,
			Title: "Quit",
			Group: "session",
			Key: key.NewBinding(
				key.WithKeys("q"),
				key.WithHelp("q", "Quit"),
			),
			Run: func(*App) tea.Cmd {
				return tea.Quit
			},
		},
	}
}
