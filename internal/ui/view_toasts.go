package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const toastMaxTextWidth = 60

// toastLayer renders the active toast as a layer, or nil when none is showing.
func (m *App) toastLayer(width, height, mainBodyStart, mainBodyHeight int) Layer {
	if m.toast == nil {
		return nil
	}
	content := m.renderToast(m.toast)
	if content == "" {
		return nil
	}
	return newToastLayer(content, width, height, mainBodyStart, mainBodyHeight)
}

func (m *App) renderToast(t *toast) string {
	now := m.now()
	countdown := ""
	if t.duration > 0 {
		countdown = styleStatsDim().Render(fmt.Sprintf("[%ds]", t.secondsLeft(now)))
	}

	switch t.kind {
	case toastChecking:
		hero := joinToastLine(baseStyle().Render(" "), m.spinner.View(), baseStyle().Render(" "+t.title))
		return styleNeutralToast().Render(hero)

	case toastUpToDate:
		hero := joinToastLine(styleToastSuccess().Render(" ✓ "), baseStyle().Render(t.title))
		detail := fmt.Sprintf(" %s %s is the latest version.", m.info.Name, t.req.CurrentVersion)
		return styleSuccessToast().Render(toastBody(hero, styleStatsDim().Render(detail), countdown, 30))

	case toastUpdateAvailable:
		hero := joinToastLine(
			baseStyle().Render(" ⬆ "),
			styleStatsDim().Render(t.title),
			baseStyle().Render(" "),
			styleID().Render(t.req.LatestVersion),
		)
		hint := " " + styleStatsDim().Render(truncateLine(m.installMethod.Hint(m.info.Name), toastMaxTextWidth))
		keys := " " + styleStatsDim().Render("n notes · y copy link")
		body := lipgloss.JoinVertical(lipgloss.Left, hero, hint)
		return styleInfoToast().Render(toastBody(body, keys, countdown, 30))

	case toastUpdateFailed:
		hero := joinToastLine(styleToastError().Render(" ⚠ "), baseStyle().Render(t.title))
		reason := " " + styleStatsDim().Render(truncateLine(t.detail, toastMaxTextWidth))
		return styleErrorToast().Render(toastBody(hero, reason, countdown, 30))

	case toastCopied:
		hero := joinToastLine(styleToastSuccess().Render(" ✓ "), baseStyle().Render(t.title))
		return styleSuccessToast().Render(toastBody(hero, "", countdown, 25))

	case toastTheme:
		hero := joinToastLine(
			baseStyle().Render(" ◐ "),
			styleStatsDim().Render(t.title),
			baseStyle().Render(" "),
			styleID().Render(t.detail),
		)
		return styleSuccessToast().Render(toastBody(hero, "", countdown, 25))

	case toastError:
		hero := joinToastLine(styleToastError().Render(" ⚠ "), baseStyle().Render(t.title))
		detail := " " + styleStatsDim().Render(truncateLine(t.detail, toastMaxTextWidth))
		return styleErrorToast().Render(toastBody(hero, detail, countdown, 30))
	}
	return ""
}

func joinToastLine(parts ...string) string {
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}

// toastBody stacks hero over info and right-aligns the countdown on the info
// line. Every line is padded to the same width.
func toastBody(hero, info, countdown string, minWidth int) string {
	heroWidth := lipgloss.Width(hero)
	infoWidth := lipgloss.Width(info)
	countdownWidth := lipgloss.Width(countdown)

	targetWidth := max(heroWidth, infoWidth+countdownWidth+2, minWidth)

	var last string
	if countdown != "" || info != "" {
		gap := max(targetWidth-infoWidth-countdownWidth, 0)
		last = info + baseStyle().Render(strings.Repeat(" ", gap)) + countdown
	}

	if last == "" {
		return padLines(hero, targetWidth)
	}
	return padLines(hero+"\n"+last, targetWidth)
}
