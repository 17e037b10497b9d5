package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Layer renders a toast or overlay into its own canvas, positioned for a
// frame of the current terminal size.
type Layer interface {
	Render() *Canvas
}

// LayerFunc is an adapter to allow ordinary functions to act as layers.
type LayerFunc func() *Canvas

// Render implements Layer for LayerFunc.
func (f LayerFunc) Render() *Canvas {
	return f()
}

// newCenteredOverlayLayer places content in the middle of the area between
// the header and footer, on the secondary background.
func newCenteredOverlayLayer(content string, width, height int, topMargin, bottomMargin int) Layer {
	return LayerFunc(func() *Canvas {
		if content == "" {
			return nil
		}
		overlayWidth, overlayHeight := blockDimensions(content)
		surface := NewSecondarySurface(overlayWidth, overlayHeight)
		surface.Draw(0, 0, content)

		x, y := centeredOffsets(width, height, overlayWidth, overlayHeight, topMargin, bottomMargin)
		surface.Canvas.SetOffset(x, y)
		return surface.Canvas
	})
}

// newToastLayer anchors content to the bottom-right corner of the main body.
func newToastLayer(content string, width, height int, mainBodyStart, mainBodyHeight int) Layer {
	return LayerFunc(func() *Canvas {
		if content == "" {
			return nil
		}
		toastWidth, toastHeight := blockDimensions(content)
		surface := NewPrimarySurface(toastWidth, toastHeight)
		surface.Draw(0, 0, content)

		if mainBodyHeight <= 0 {
			mainBodyHeight = height
		}
		x := max(width-toastWidth-2, 0)
		y := mainBodyStart + mainBodyHeight - toastHeight - 1
		y = max(y, mainBodyStart, 0)

		surface.Canvas.SetOffset(x, y)
		return surface.Canvas
	})
}

func blockDimensions(content string) (int, int) {
	lines := splitOverlayLines(content)
	width := max(maxLineWidth(lines), 1)
	height := max(len(lines), 1)
	return width, height
}

func centeredOffsets(containerWidth, containerHeight, contentWidth, contentHeight, topMargin, bottomMargin int) (int, int) {
	topMargin = max(topMargin, 0)
	bottomMargin = max(bottomMargin, 0)

	usableHeight := max(containerHeight-topMargin-bottomMargin, contentHeight)

	y := topMargin
	if usableHeight > contentHeight {
		y = topMargin + (usableHeight-contentHeight)/2
	}
	y = min(y, containerHeight-bottomMargin-contentHeight)
	y = max(y, topMargin, 0)

	x := max((containerWidth-contentWidth)/2, 0)
	return x, y
}

func maxLineWidth(lines []string) int {
	widest := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > widest {
			widest = w
		}
	}
	return widest
}

// padLines pads every line with the base background so blocks stay
// rectangular when merged.
func padLines(content string, width int) string {
	if width <= 0 || content == "" {
		return content
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if w := lipgloss.Width(line); w < width {
			lines[i] = line + baseStyle().Render(strings.Repeat(" ", width-w))
		}
	}
	return strings.Join(lines, "\n")
}
