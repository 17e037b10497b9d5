package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"sandbox/internal/update"
)

func TestViewLayout(t *testing.T) {
	app := newTestApp(t, newFakeChecker("1.0.0"))
	lines := strings.Split(stripANSI(app.View()), "\n")
	if len(lines) != 30 {
		t.Fatalf("expected 30 rows, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "SANDBOX") || !strings.Contains(lines[0], "v1.0.0") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[len(lines)-1], "Menu") {
		t.Fatalf("expected footer on last row, got %q", lines[len(lines)-1])
	}
	body := strings.Join(lines[1:len(lines)-1], "\n")
	if !strings.Contains(body, tagline) || !strings.Contains(body, "✺") {
		t.Fatalf("expected icon and tagline in body:\n%s", body)
	}
}

func TestHeaderShowsUpdateState(t *testing.T) {
	checker := newFakeChecker("1.0.0")
	app := newTestApp(t, checker)

	sendKey(app, runeKey('u'))
	if header := stripANSI(app.renderHeader()); !strings.Contains(header, "Checking for updates") {
		t.Fatalf("expected checking indicator, got %q", header)
	}

	checker.finish(availableRequest())
	app.Update(updateStatusMsg{req: availableRequest()})
	if header := stripANSI(app.renderHeader()); !strings.Contains(header, "v1.1.0 available") {
		t.Fatalf("expected update indicator, got %q", header)
	}
}

func TestViewFitsNarrowTerminal(t *testing.T) {
	app := newTestApp(t, newFakeChecker("1.0.0"))
	app.Update(tea.WindowSizeMsg{Width: 24, Height: 6})
	app.Update(updateStatusMsg{req: update.Request{CurrentVersion: "1.0.0", Status: update.StatusFailed, Reason: "server unreachable"}})

	for i, line := range strings.Split(stripANSI(app.View()), "\n") {
		if w := len([]rune(line)); w > 24 {
			t.Fatalf("row %d is %d cells wide: %q", i, w, line)
		}
	}
}

func TestDisplayVersion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.2.3", "v1.2.3"},
		{" 2.0 ", "v2.0"},
		{"v1.0.0", "v1.0.0"},
		{"dev", "dev"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := displayVersion(tt.in); got != tt.want {
			t.Errorf("displayVersion(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToastRendersInBottomRight(t *testing.T) {
	app := newTestApp(t, newFakeChecker("1.0.0"))
	app.Update(updateStatusMsg{req: update.Request{CurrentVersion: "1.0.0", Status: update.StatusUpToDate}})

	lines := strings.Split(stripANSI(app.View()), "\n")
	row := -1
	for i, line := range lines {
		if strings.Contains(line, "You're up to date") {
			row = i
			break
		}
	}
	if row < len(lines)/2 {
		t.Fatalf("expected toast in the lower half, found at row %d", row)
	}
	if idx := strings.Index(lines[row], "You're up to date"); idx < 50 {
		t.Fatalf("expected toast near right edge, got column %d", idx)
	}
	if !strings.Contains(strings.Join(lines, "\n"), "[5s]") {
		t.Fatal("expected countdown in toast")
	}
}

func TestAvailableToastShowsInstallHint(t *testing.T) {
	app := newTestApp(t, newFakeChecker("1.0.0"))
	app.installMethod = update.InstallHomebrew
	app.Update(updateStatusMsg{req: availableRequest()})

	view := stripANSI(app.View())
	if !strings.Contains(view, "brew upgrade") {
		t.Fatalf("expected homebrew hint in toast:\n%s", view)
	}
}
