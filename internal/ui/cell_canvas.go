package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
)

// Canvas is a lightweight helper around cellbuf.Screen that lets us compose
// lipgloss-rendered strings into a cell buffer before turning the frame back
// into a string for Bubble Tea. A canvas produced by a Layer carries the
// offset at which it should be merged onto the frame.
type Canvas struct {
	screen  *cellbuf.Screen
	writer  *cellbuf.ScreenWriter
	width   int
	height  int
	offsetX int
	offsetY int
}

func NewCanvas(width, height int) *Canvas {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	screen := cellbuf.NewScreen(io.Discard, width, height, &cellbuf.ScreenOptions{
		ShowCursor: false,
		AltScreen:  false,
	})
	return &Canvas{
		screen: screen,
		writer: cellbuf.NewScreenWriter(screen),
		width:  width,
		height: height,
	}
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int {
	if c == nil {
		return 0
	}
	return c.width
}

// Height returns the canvas height in cells.
func (c *Canvas) Height() int {
	if c == nil {
		return 0
	}
	return c.height
}

// SetOffset records where the canvas should land when merged onto a frame.
func (c *Canvas) SetOffset(x, y int) {
	if c == nil {
		return
	}
	c.offsetX = max(x, 0)
	c.offsetY = max(y, 0)
}

// Offset returns the merge position set by SetOffset.
func (c *Canvas) Offset() (int, int) {
	if c == nil {
		return 0, 0
	}
	return c.offsetX, c.offsetY
}

// Cell returns the cell at x,y, or nil when out of bounds.
func (c *Canvas) Cell(x, y int) *cellbuf.Cell {
	if c == nil || c.screen == nil || x < 0 || y < 0 || x >= c.width || y >= c.height {
		return nil
	}
	return c.screen.Cell(x, y)
}

// Fill paints the entire canvas with the provided background color.
func (c *Canvas) Fill(bg lipgloss.TerminalColor) {
	if c == nil {
		return
	}
	fill := lipgloss.NewStyle().
		Background(bg).
		Width(c.width).
		Height(c.height).
		Render("")
	c.DrawStringAt(0, 0, fill)
}

// DrawStringAt writes the provided block starting at x,y. Each line of the
// block starts at column x.
func (c *Canvas) DrawStringAt(x, y int, content string) {
	if content == "" || c == nil || c.writer == nil {
		return
	}
	c.drawBlockAt(x, y, splitOverlayLines(content))
}

// Merge copies every cell of layer onto c at the layer's offset. Cells that
// fall outside c are dropped.
func (c *Canvas) Merge(layer *Canvas) {
	if c == nil || layer == nil || layer.screen == nil {
		return
	}
	for y := 0; y < layer.height; y++ {
		ty := layer.offsetY + y
		if ty >= c.height {
			break
		}
		for x := 0; x < layer.width; x++ {
			tx := layer.offsetX + x
			if tx >= c.width {
				break
			}
			cell := layer.screen.Cell(x, y)
			if cell == nil || cell.Width == 0 {
				// placeholder behind a wide glyph; the glyph itself claims it
				continue
			}
			c.screen.SetCell(tx, ty, cell)
		}
	}
}

// Compose merges the rendered layers onto the canvas in order. Nil layers
// and layers that render nothing are skipped.
func (c *Canvas) Compose(layers ...Layer) {
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		c.Merge(layer.Render())
	}
}

// centerOverlay renders the provided overlay centered within the canvas,
// respecting the top/bottom margins so headers/footers remain visible.
func (c *Canvas) centerOverlay(overlay string, topMargin, bottomMargin int) {
	lines := splitOverlayLines(overlay)
	if len(lines) == 0 || c == nil {
		return
	}
	overlayWidth := min(maxLineWidth(lines), c.width)
	x, y := centeredOffsets(c.width, c.height, overlayWidth, len(lines), topMargin, bottomMargin)
	c.drawBlockAt(x, y, lines)
}

// bottomRightOverlay positions the overlay anchored to the bottom-right corner
// with the provided padding inside the canvas.
func (c *Canvas) bottomRightOverlay(overlay string, padding int) {
	lines := splitOverlayLines(overlay)
	if len(lines) == 0 || c == nil {
		return
	}
	padding = max(padding, 0)

	startY := max(c.height-len(lines)-padding, 0)
	startX := max(c.width-maxLineWidth(lines)-padding, 0)
	c.drawBlockAt(startX, startY, lines)
}

func (c *Canvas) drawBlockAt(x, y int, lines []string) {
	x = max(x, 0)
	y = max(y, 0)
	for i, line := range lines {
		row := y + i
		if row >= c.height {
			break
		}
		if line == "" {
			continue
		}
		c.writer.PrintCropAt(x, row, line, "")
	}
}

// Render returns the composed frame as a newline-delimited string suitable for
// Bubble Tea consumption.
func (c *Canvas) Render() string {
	if c == nil || c.screen == nil {
		return ""
	}
	raw := cellbuf.Render(c.screen)
	return strings.ReplaceAll(raw, "\r\n", "\n")
}

func splitOverlayLines(content string) []string {
	if content == "" {
		return nil
	}
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	return strings.Split(normalized, "\n")
}
