package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"hybridsel/internal/ui/theme"
)

// View renders the control surface plus, when open, the inline dropdown.
// AdvancedCombo renders the two halves separately instead.
func (s *Select) View() string {
	var b strings.Builder
	if label := s.viewLabel(); label != "" {
		b.WriteString(label)
		b.WriteString("\n")
	}
	b.WriteString(s.viewSurface())
	if s.state != SelectClosed {
		b.WriteString("\n")
		b.WriteString(s.viewDropdown())
	}
	if s.errorText != "" {
		b.WriteString("\n")
		b.WriteString(styleSelectError().Render("  " + s.errorText))
	}
	return b.String()
}

func (s *Select) viewLabel() string {
	if s.Label == "" {
		return ""
	}
	label := s.Label
	if s.Required {
		label += " *"
	}
	return styleSelectLabel().Render(label)
}

// viewSurface renders the always-visible control: chips, then either the
// search input (combobox mode) or the committed value with a chevron.
func (s *Select) viewSurface() string {
	var b strings.Builder

	if s.Multiple && s.chips.Len() > 0 {
		b.WriteString(s.chips.View())
		b.WriteString("\n")
	}

	var inner string
	switch {
	case s.Disabled:
		inner = styleSelectMuted().Render(s.displayText()) + s.chevron()
	case s.Mode == ModeEnhanced:
		// Enhanced mode keeps the surface static; the search box lives in
		// the dropdown.
		inner = s.displayText() + s.chevron()
	case s.state == SelectClosed && !s.Multiple && len(s.Selected()) > 0:
		inner = s.displayText() + s.chevron()
	default:
		inner = s.textInput.View()
	}

	surface := styleSelectSurface()
	if s.focused && !s.Disabled {
		surface = styleSelectSurfaceFocused()
	}
	b.WriteString(surface.Width(s.Width).Render(inner))
	return b.String()
}

func (s *Select) displayText() string {
	selected := s.Selected()
	switch {
	case s.Multiple:
		if len(selected) == 0 {
			return styleSelectMuted().Render(s.placeholderText())
		}
		return fmt.Sprintf("%d selected", len(selected))
	case len(selected) > 0:
		text := selected[0].Label
		if selected[0].Icon != "" {
			text = selected[0].Icon + " " + text
		}
		return text
	default:
		return styleSelectMuted().Render(s.placeholderText())
	}
}

func (s *Select) placeholderText() string {
	if s.Placeholder != "" {
		return s.Placeholder
	}
	return "Select…"
}

func (s *Select) chevron() string {
	glyph := " ▾"
	if s.state != SelectClosed {
		glyph = " ▴"
	}
	return styleSelectMuted().Render(glyph)
}

// viewDropdown renders the open list with scroll indicators. In enhanced
// mode the dedicated search box sits on top.
func (s *Select) viewDropdown() string {
	var b strings.Builder

	if s.Mode == ModeEnhanced && s.Searchable {
		b.WriteString(styleSelectSearchBox().Width(s.Width).Render(s.textInput.View()))
		b.WriteString("\n")
	}
	if s.loading {
		b.WriteString(styleSelectHint().Render("  searching…"))
		b.WriteString("\n")
	}

	if len(s.rows) == 0 {
		b.WriteString(styleSelectNoMatch().Render("  " + s.EmptyText))
		return b.String()
	}

	if s.scrollOffset > 0 {
		b.WriteString(styleSelectHint().Render("  ▲ more above"))
		b.WriteString("\n")
	}

	end := s.scrollOffset + s.MaxVisible
	if end > len(s.rows) {
		end = len(s.rows)
	}
	for i := s.scrollOffset; i < end; i++ {
		b.WriteString(s.viewRow(i))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if end < len(s.rows) {
		b.WriteString("\n")
		b.WriteString(styleSelectHint().Render("  ▼ more below"))
	}
	return b.String()
}

func (s *Select) viewRow(i int) string {
	r := s.rows[i]
	highlighted := i == s.highlightIndex

	switch r.kind {
	case rowHeader:
		return styleSelectGroupHeader().Render("  " + strings.ToUpper(r.title))

	case rowCreate:
		line := "+ " + fmt.Sprintf(s.CreateText, r.title)
		if highlighted {
			return styleSelectHighlight().Render("▸ " + line)
		}
		return styleSelectCreate().Render("  " + line)
	}

	opt := r.opt
	term := ""
	if s.state == SelectFiltering {
		term = strings.TrimSpace(s.textInput.Value())
	}

	base := styleSelectOption()
	marker := "  "
	switch {
	case opt.Disabled:
		base = styleSelectDisabled()
	case highlighted:
		base = styleSelectHighlight()
		marker = "▸ "
	}

	var parts []string
	if s.Multiple {
		if s.isSelected(opt.ID) {
			parts = append(parts, "[x]")
		} else {
			parts = append(parts, "[ ]")
		}
	}
	if opt.Icon != "" {
		parts = append(parts, opt.Icon)
	}

	label := base.Render(opt.Label)
	if term != "" && !opt.Disabled {
		label = highlightMatch(opt.Label, term, base, styleSelectMatch())
	}
	parts = append(parts, label)

	if !s.Multiple && s.isSelected(opt.ID) {
		parts = append(parts, styleSelectCheck().Render("✓"))
	}
	if opt.Badge != "" {
		parts = append(parts, styleSelectBadge().Render(" "+opt.Badge+" "))
	}
	if opt.Description != "" {
		desc := ansi.Truncate(opt.Description, s.Width/2, "…")
		if term != "" {
			parts = append(parts, highlightMatch(desc, term, styleSelectDescription(), styleSelectMatch()))
		} else {
			parts = append(parts, styleSelectDescription().Render(desc))
		}
	}

	line := marker + strings.Join(parts, " ")
	return ansi.Truncate(line, s.Width, "…")
}

// Select styles

func styleSelectLabel() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Secondary()).
		Bold(true)
}

func styleSelectSurface() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderDim()).
		Padding(0, 1)
}

func styleSelectSurfaceFocused() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderFocused()).
		Padding(0, 1)
}

func styleSelectSearchBox() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(theme.Current().BorderDim()).
		Padding(0, 1)
}

func styleSelectOption() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Text())
}

func styleSelectHighlight() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Secondary()).
		Bold(true)
}

func styleSelectDisabled() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().BorderDim()).
		Strikethrough(true)
}

func styleSelectMatch() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Accent()).
		Underline(true)
}

func styleSelectGroupHeader() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted()).
		Bold(true)
}

func styleSelectCreate() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Success())
}

func styleSelectCheck() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Success())
}

func styleSelectBadge() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Background()).
		Background(theme.Current().Info())
}

func styleSelectDescription() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted()).
		Italic(true)
}

func styleSelectNoMatch() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().BorderNormal()).
		Italic(true)
}

func styleSelectHint() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted())
}

func styleSelectMuted() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted())
}

func styleSelectError() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Error())
}
