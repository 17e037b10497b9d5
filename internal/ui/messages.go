package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"sandbox/internal/update"
)

// updateStatusMsg carries one snapshot published by the update initiator.
type updateStatusMsg struct {
	req update.Request
}

// waitForUpdate blocks on the initiator's notification channel and turns the
// next snapshot into a message. A nil or closed channel ends the loop.
func waitForUpdate(ch <-chan update.Request) tea.Cmd {
	return func() tea.Msg {
		if ch == nil {
			return nil
		}
		req, ok := <-ch
		if !ok {
			return nil
		}
		return updateStatusMsg{req: req}
	}
}

type toastTickMsg struct{}

func scheduleToastTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return toastTickMsg{}
	})
}

// clipboardResultMsg reports the outcome of a clipboard write.
type clipboardResultMsg struct {
	text string
	err  error
}

func copyToClipboard(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardResultMsg{text: text, err: write(text)}
	}
}

// themeSavedMsg reports whether the selected theme was persisted.
type themeSavedMsg struct {
	name string
	err  error
}

func persistTheme(save func(string) error, name string) tea.Cmd {
	if save == nil {
		return nil
	}
	return func() tea.Msg {
		return themeSavedMsg{name: name, err: save(name)}
	}
}
