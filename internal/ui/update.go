package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"sandbox/internal/debug"
	"sandbox/internal/update"
)

func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if model, cmd, handled := m.handleBackgroundMsg(msg); handled {
		return model, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeNotes()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleBackgroundMsg processes messages that do not come from the keyboard.
func (m *App) handleBackgroundMsg(msg tea.Msg) (tea.Model, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case updateStatusMsg:
		m.lastUpdate = msg.req
		return m, tea.Batch(waitForUpdate(m.checker.Updates()), m.applyUpdateStatus(msg.req)), true
	case toastTickMsg:
		if m.toast == nil {
			return m, nil, true
		}
		if m.toast.expired(m.now()) {
			m.dismissToast()
			return m, nil, true
		}
		if m.toast.duration == 0 {
			return m, nil, true
		}
		return m, scheduleToastTick(), true
	case spinner.TickMsg:
		if m.toast == nil || m.toast.kind != toastChecking {
			return m, nil, true
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd, true
	case clipboardResultMsg:
		if msg.err != nil {
			debug.Logf("clipboard write failed: %v", msg.err)
			m.showToast(newErrorToast("Copy failed", msg.err, m.now()))
		} else {
			m.showToast(newCopiedToast(m.now()))
		}
		return m, scheduleToastTick(), true
	case themeSavedMsg:
		if msg.err != nil {
			debug.Logf("failed to save theme %s: %v", msg.name, msg.err)
			m.showToast(newErrorToast("Theme not saved", msg.err, m.now()))
			return m, scheduleToastTick(), true
		}
		return m, nil, true
	}
	return m, nil, false
}

// startUpdateCheck asks the checker for a new check. While one is already in
// flight the request is dropped and the progress toast stays up.
func (m *App) startUpdateCheck() tea.Cmd {
	if !m.checker.CheckForUpdates() {
		debug.Log("update check already in flight")
		if m.checking() && (m.toast == nil || m.toast.kind != toastChecking) {
			m.showToast(newCheckingToast(m.now()))
			return m.spinner.Tick
		}
		return nil
	}
	if m.toast != nil && m.toast.kind == toastChecking {
		return nil
	}
	m.showToast(newCheckingToast(m.now()))
	return m.spinner.Tick
}

// applyUpdateStatus reflects one snapshot in the UI.
func (m *App) applyUpdateStatus(req update.Request) tea.Cmd {
	debug.Logf("update status %s (latest %q)", req.Status, req.LatestVersion)
	switch req.Status {
	case update.StatusChecking:
		if m.toast != nil && m.toast.kind == toastChecking {
			return nil
		}
		m.showToast(newCheckingToast(m.now()))
		return m.spinner.Tick
	case update.StatusUpdateAvailable:
		latest := req
		m.available = &latest
	case update.StatusUpToDate:
		m.available = nil
	}

	t := newUpdateToast(req, m.now())
	if t == nil {
		return nil
	}
	m.showToast(t)
	return scheduleToastTick()
}

func (m *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	switch m.activeOverlay {
	case OverlayMenu:
		return m.handleMenuKey(msg)
	case OverlayNotes:
		return m.handleNotesKey(msg)
	case OverlayHelp, OverlayAbout:
		if key.Matches(msg, m.keys.Escape, m.keys.Help) {
			m.closeOverlay()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Menu):
		m.openMenu()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.openOverlay(OverlayHelp)
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.dismissToast()
		return m, nil
	}

	if cmd, ok := m.menu.Match(msg); ok {
		return m, m.runCommand(cmd)
	}
	return m, nil
}

func (m *App) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape, m.keys.Menu):
		m.closeOverlay()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.moveMenuCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveMenuCursor(1)
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		cmd, ok := m.menu.At(m.menuCursor)
		if !ok || !cmd.IsEnabled(m) {
			return m, nil
		}
		m.closeOverlay()
		return m, m.runCommand(cmd)
	}

	if cmd, ok := m.menu.Match(msg); ok && cmd.IsEnabled(m) {
		m.closeOverlay()
		return m, m.runCommand(cmd)
	}
	return m, nil
}

func (m *App) handleNotesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape) {
		m.closeOverlay()
		return m, nil
	}
	if cmd, ok := m.menu.Lookup(CommandCopyReleaseLink); ok && key.Matches(msg, cmd.Key) {
		return m, m.runCommand(cmd)
	}
	if cmd, ok := m.menu.Lookup(CommandReleaseNotes); ok && key.Matches(msg, cmd.Key) {
		m.closeOverlay()
		return m, nil
	}

	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	return m, cmd
}

// runCommand executes a menu command if it is enabled.
func (m *App) runCommand(cmd Command) tea.Cmd {
	if !cmd.IsEnabled(m) {
		debug.Logf("command %s is disabled", cmd.ID)
		return nil
	}
	debug.Logf("command %s", cmd.ID)
	return cmd.Run(m)
}
