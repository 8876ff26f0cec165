package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// AdvancedCombo is a Select whose dropdown escapes the control's layout box:
// instead of rendering inline, the open list is composited onto the full app
// frame at a viewport-computed position, so it can overlap neighbouring
// widgets the way a body-portaled dropdown overlaps clipped ancestors.
type AdvancedCombo struct {
	*Select

	rect     Rect
	viewport Size
}

// NewAdvancedCombo creates a portal-style select with the given name.
func NewAdvancedCombo(name string) *AdvancedCombo {
	return &AdvancedCombo{Select: NewSelect(name)}
}

// SetRect records where the host program laid the control out, in screen
// cells. The host must keep it current; the placement is recomputed from it
// on every frame.
func (c *AdvancedCombo) SetRect(r Rect) {
	c.rect = r
}

// Rect returns the recorded control rectangle.
func (c *AdvancedCombo) Rect() Rect {
	return c.rect
}

// Viewport returns the recorded terminal size.
func (c *AdvancedCombo) Viewport() Size {
	return c.viewport
}

// Update handles viewport changes before delegating to the select. A resize
// invalidates the measured geometry, so an open dropdown force-closes rather
// than risk a detached overlay.
func (c *AdvancedCombo) Update(msg tea.Msg) tea.Cmd {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		return c.setViewport(Size{W: ws.Width, H: ws.Height})
	}
	return c.Select.Update(msg)
}

func (c *AdvancedCombo) setViewport(size Size) tea.Cmd {
	if size == c.viewport {
		return nil
	}
	c.viewport = size
	if c.IsOpen() {
		return c.close()
	}
	return nil
}

// View renders only the control surface. The dropdown is painted by Overlay.
func (c *AdvancedCombo) View() string {
	var b strings.Builder
	if label := c.viewLabel(); label != "" {
		b.WriteString(label)
		b.WriteString("\n")
	}
	b.WriteString(c.viewSurface())
	if c.errorText != "" {
		b.WriteString("\n")
		b.WriteString(styleSelectError().Render("  " + c.errorText))
	}
	return b.String()
}

// Overlay composites the open dropdown onto the fully rendered app frame.
// The dropdown goes below the control, flipping above when the space below
// cannot hold it and there is more room above.
func (c *AdvancedCombo) Overlay(base string) string {
	if !c.IsOpen() || c.viewport.W <= 0 || c.viewport.H <= 0 {
		return base
	}

	dropdown := c.viewDropdown()
	if dropdown == "" {
		return base
	}
	_, height := blockSize(dropdown)

	anchor := c.rect
	if anchor.W <= 0 {
		anchor.W = c.Width
	}
	if anchor.H <= 0 {
		anchor.H = 1
	}
	placement := PlaceDropdown(anchor, height, c.viewport)

	canvas := NewCanvas(c.viewport.W, c.viewport.H)
	canvas.DrawStringAt(0, 0, base)
	canvas.DrawPlaced(placement, dropdown)
	return canvas.Render()
}
