package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"sandbox/internal/ui/theme"
)

// Styles are built on demand from the active theme so a theme switch takes
// effect on the next frame.

func baseStyle() lipgloss.Style {
	t := theme.Current()
	return lipgloss.NewStyle().Background(t.Background()).Foreground(t.Text())
}

func overlayBase() lipgloss.Style {
	t := theme.Current()
	return lipgloss.NewStyle().Background(t.BackgroundSecondary()).Foreground(t.Text())
}

func styleAppHeader() lipgloss.Style {
	t := theme.Current()
	return lipgloss.NewStyle().
		Foreground(t.Background()).
		Background(t.Primary()).
		Bold(true).
		Padding(0, 1)
}

func styleHeaderVersion() lipgloss.Style {
	return baseStyle().Foreground(theme.Current().TextMuted())
}

func styleUpdateIndicator() lipgloss.Style {
	return baseStyle().Foreground(theme.Current().Info()).Bold(true)
}

func styleIcon() lipgloss.Style {
	return baseStyle().Foreground(theme.Current().Accent()).Bold(true)
}

func styleTagline() lipgloss.Style {
	return baseStyle().Italic(true)
}

func styleStatsDim() lipgloss.Style {
	return baseStyle().Foreground(theme.Current().TextMuted())
}

func styleID() lipgloss.Style {
	return baseStyle().Foreground(theme.Current().Accent()).Bold(true)
}

func styleKeyPill() lipgloss.Style {
	t := theme.Current()
	return lipgloss.NewStyle().
		Foreground(t.Background()).
		Background(t.Accent()).
		Bold(true)
}

func styleKeyDesc() lipgloss.Style {
	return baseStyle()
}

func styleFooterMuted() lipgloss.Style {
	return styleStatsDim()
}

func toastStyle(border lipgloss.TerminalColor) lipgloss.Style {
	t := theme.Current()
	return lipgloss.NewStyle().
		Background(t.Background()).
		Foreground(t.Text()).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		BorderBackground(t.Background()).
		Padding(0, 1)
}

func styleSuccessToast() lipgloss.Style { return toastStyle(theme.Current().Success()) }
func styleInfoToast() lipgloss.Style    { return toastStyle(theme.Current().Info()) }
func styleErrorToast() lipgloss.Style   { return toastStyle(theme.Current().Error()) }
func styleNeutralToast() lipgloss.Style { return toastStyle(theme.Current().BorderNormal()) }

func styleToastError() lipgloss.Style {
	return baseStyle().Foreground(theme.Current().Error()).Bold(true)
}

func styleToastSuccess() lipgloss.Style {
	return baseStyle().Foreground(theme.Current().Success()).Bold(true)
}

func styleOverlay() lipgloss.Style {
	t := theme.Current()
	return overlayBase().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocused()).
		BorderBackground(t.BackgroundSecondary()).
		Padding(1, 2)
}

func styleOverlayTitle() lipgloss.Style {
	return overlayBase().Foreground(theme.Current().Accent()).Bold(true)
}

func styleOverlayMuted() lipgloss.Style {
	return overlayBase().Foreground(theme.Current().TextMuted())
}

func styleMenuItem() lipgloss.Style {
	return overlayBase()
}

func styleMenuSelected() lipgloss.Style {
	t := theme.Current()
	return lipgloss.NewStyle().
		Background(t.Primary()).
		Foreground(t.BackgroundSecondary()).
		Bold(true)
}

func styleMenuDisabled() lipgloss.Style {
	return overlayBase().Foreground(theme.Current().BorderNormal())
}

func styleMenuShortcut() lipgloss.Style {
	return overlayBase().Foreground(theme.Current().TextMuted())
}

func styleHelpSectionHeader() lipgloss.Style {
	return overlayBase().Foreground(theme.Current().Primary()).Bold(true)
}

func styleHelpKey() lipgloss.Style {
	return overlayBase().Foreground(theme.Current().Accent()).Bold(true)
}

func styleHelpDesc() lipgloss.Style {
	return overlayBase()
}

// buildMarkdownRenderer returns a renderer for release notes. Unknown or
// failing styles degrade to plain word wrapping.
func buildMarkdownRenderer(format string, width int) func(string) string {
	width = max(width, 10)
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style := strings.ToLower(strings.TrimSpace(format))
	switch style {
	case "", "rich", "dark":
		style = "dark"
	case "plain":
		return fallback
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
