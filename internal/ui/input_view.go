package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"hybridsel/internal/ui/theme"
)

// View renders the input: label, chips, the text box and the helper, error,
// suggestion and counter lines beneath it.
func (i *Input) View() string {
	var b strings.Builder

	if i.Label != "" {
		label := i.Label
		if i.Required {
			label += " *"
		}
		b.WriteString(styleInputLabel().Render(label))
		b.WriteString("\n")
	}

	if i.Multi && i.chips.Len() > 0 {
		b.WriteString(i.chips.View())
		b.WriteString("\n")
	}

	box := styleInputBox()
	switch {
	case i.errText != "":
		box = styleInputBoxInvalid()
	case i.focused && !i.Disabled:
		box = styleInputBoxFocused()
	}
	b.WriteString(box.Width(i.Width).Render(i.textInput.View()))

	if under := i.viewUnderline(); under != "" {
		b.WriteString("\n")
		b.WriteString(under)
	}
	return b.String()
}

// viewUnderline builds the line(s) under the box: error beats helper, then
// suggestions and the counter.
func (i *Input) viewUnderline() string {
	var parts []string

	switch {
	case i.errText != "":
		parts = append(parts, styleInputError().Render(wrapToWidth(i.errText, i.Width)))
	case i.Helper != "":
		parts = append(parts, styleInputHelper().Render(wrapToWidth(i.Helper, i.Width)))
	}

	if len(i.suggestions) > 0 {
		parts = append(parts, styleInputHelper().Render(
			wrapToWidth("Did you mean: "+strings.Join(i.suggestions, ", "), i.Width)))
	}

	if i.ShowCounter && i.MaxLength > 0 {
		counter := fmt.Sprintf("%d/%d", len([]rune(i.textInput.Value())), i.MaxLength)
		parts = append(parts, styleInputCounter().Width(i.Width).Align(lipgloss.Right).Render(counter))
	}

	return strings.Join(parts, "\n")
}

func wrapToWidth(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}

// Input styles

func styleInputLabel() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Secondary()).
		Bold(true)
}

func styleInputBox() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderDim()).
		Padding(0, 1)
}

func styleInputBoxFocused() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderFocused()).
		Padding(0, 1)
}

func styleInputBoxInvalid() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().Error()).
		Padding(0, 1)
}

func styleInputHelper() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted())
}

func styleInputError() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Error())
}

func styleInputCounter() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted())
}
