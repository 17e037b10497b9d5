package ui

import (
	"strings"
	"testing"

	"sandbox/internal/ui/theme"
)

func TestNewSurfacesFillBackground(t *testing.T) {
	withTrueColor(t)
	assertCanvasBackground(t, NewPrimarySurface(6, 2).Canvas, theme.Current().Background())
	assertCanvasBackground(t, NewSecondarySurface(6, 2).Canvas, theme.Current().BackgroundSecondary())
}

func TestSurfaceDrawWritesContent(t *testing.T) {
	surface := NewSecondarySurface(8, 4)
	surface.Draw(0, 1, styleOverlayTitle().Render("HI"))

	lines := strings.Split(stripANSI(surface.Render()), "\n")
	if len(lines) < 2 || !strings.Contains(lines[1], "HI") {
		t.Fatalf("expected drawn content on second line, got %q", lines)
	}
}

func TestZeroSurfaceIsInert(t *testing.T) {
	var s Surface
	s.Draw(0, 0, "x")
	if s.Render() != "" {
		t.Fatal("expected empty render from zero surface")
	}
}
