package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/cellbuf"
)

// Canvas is a lightweight helper around cellbuf.Screen that lets us compose
// lipgloss-rendered strings into a cell buffer before turning the frame back
// into a string for Bubble Tea. AdvancedCombo uses it to paint a dropdown on
// top of the app frame at an arbitrary position, the terminal analog of
// portaling the list out of the control's layout box.
type Canvas struct {
	screen *cellbuf.Screen
	writer *cellbuf.ScreenWriter
	width  int
	height int
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

// DrawStringAt writes the provided block starting at x,y. Newlines are
// normalized so each line begins at column 0 relative to x.
func (c *Canvas) DrawStringAt(x, y int, content string) {
	if content == "" || c == nil || c.writer == nil {
		return
	}
	c.drawBlockAt(x, y, splitOverlayLines(content))
}

// DrawPlaced paints an overlay block at a computed dropdown placement,
// cropping it to the placement height.
func (c *Canvas) DrawPlaced(p Placement, content string) {
	if c == nil || content == "" || p.H <= 0 {
		return
	}
	lines := splitOverlayLines(content)
	if len(lines) > p.H {
		if p.Above {
			// Anchored to its bottom edge: keep the rows nearest the control.
			lines = lines[len(lines)-p.H:]
		} else {
			lines = lines[:p.H]
		}
	}
	c.drawBlockAt(p.X, p.Y, lines)
}

func (c *Canvas) drawBlockAt(x, y int, lines []string) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
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

// Render returns the composed frame as a newline-delimited string suitable
// for Bubble Tea consumption.
func (c *Canvas) Render() string {
	if c == nil || c.screen == nil {
		return ""
	}
	raw := cellbuf.Render(c.screen)
	_ = c.screen.Close()
	return strings.ReplaceAll(raw, "\r\n", "\n")
}

func splitOverlayLines(content string) []string {
	if content == "" {
		return nil
	}
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	return strings.Split(normalized, "\n")
}

// maxLineWidth measures the widest line, ignoring styling sequences.
func maxLineWidth(lines []string) int {
	widest := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > widest {
			widest = w
		}
	}
	return widest
}

// blockSize measures a rendered block's cell dimensions.
func blockSize(content string) (int, int) {
	lines := splitOverlayLines(content)
	return maxLineWidth(lines), len(lines)
}
