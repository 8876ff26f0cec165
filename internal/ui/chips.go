package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hybridsel/internal/ui/theme"
)

// Chip is one removable token rendered inside a control surface. Selects
// build chips from selected options; inputs build them from committed values.
type Chip struct {
	ID    string
	Label string
	Icon  string
}

// ChipListState represents the current mode of the chip list.
type ChipListState int

const (
	// ChipListInput - normal mode, cursor after chips.
	ChipListInput ChipListState = iota
	// ChipListNavigation - navigating chips with arrows.
	ChipListNavigation
)

// ChipNavExitReason indicates why chip navigation mode was exited.
type ChipNavExitReason int

const (
	// ChipNavExitRight - → pressed past last chip.
	ChipNavExitRight ChipNavExitReason = iota
	// ChipNavExitEscape - Esc pressed.
	ChipNavExitEscape
	// ChipNavExitTab - Tab pressed.
	ChipNavExitTab
	// ChipNavExitTyping - letter key pressed (Character field has the key).
	ChipNavExitTyping
)

// ChipRemovedMsg is sent when a chip is deleted via navigation.
type ChipRemovedMsg struct {
	Owner string // control name
	ID    string
	Label string
	Index int
}

// ChipNavExitMsg signals the chip list wants to exit navigation mode.
type ChipNavExitMsg struct {
	Owner     string
	Reason    ChipNavExitReason
	Character rune // For ExitTyping: the key that was pressed
}

// chipFlashClearMsg is sent to clear the flash state.
type chipFlashClearMsg struct{ owner string }

// ChipList renders and navigates a row of chips. The owning control is the
// source of truth for contents; it pushes them in via SetChips after every
// selection change, so the list only holds display and navigation state.
type ChipList struct {
	// Configuration
	Owner string // control name stamped onto emitted messages
	Width int    // Available width for word wrapping (default 40)

	// State
	chips      []Chip
	state      ChipListState
	navIndex   int // Highlighted chip index (-1 = none)
	flashIndex int // Index of chip to flash for duplicate (-1 = none)
}

// NewChipList creates a chip list for the named control.
func NewChipList(owner string) ChipList {
	return ChipList{
		Owner:      owner,
		Width:      40,
		navIndex:   -1,
		flashIndex: -1,
	}
}

// WithWidth sets the available width for word wrapping.
func (c ChipList) WithWidth(w int) ChipList {
	c.Width = w
	return c
}

// SetChips replaces the displayed chips, clamping any active navigation.
func (c *ChipList) SetChips(chips []Chip) {
	c.chips = chips
	if len(c.chips) == 0 {
		c.state = ChipListInput
		c.navIndex = -1
		return
	}
	if c.navIndex >= len(c.chips) {
		c.navIndex = len(c.chips) - 1
	}
}

// Update handles messages and returns updated state.
func (c ChipList) Update(msg tea.Msg) (ChipList, tea.Cmd) {
	switch msg := msg.(type) {
	case chipFlashClearMsg:
		if msg.owner == c.Owner {
			c.flashIndex = -1
		}
		return c, nil

	case tea.KeyMsg:
		if c.state == ChipListNavigation {
			return c.handleNavigationKey(msg)
		}
	}

	return c, nil
}

func (c ChipList) handleNavigationKey(msg tea.KeyMsg) (ChipList, tea.Cmd) {
	switch msg.Type {
	case tea.KeyLeft:
		// Move to previous chip, stop at first
		if c.navIndex > 0 {
			c.navIndex--
		}
		return c, nil

	case tea.KeyRight:
		// Move to next chip, or exit if past last
		if c.navIndex < len(c.chips)-1 {
			c.navIndex++
			return c, nil
		}
		return c.exit(ChipNavExitRight)

	case tea.KeyDown:
		// Chips sit above the input; Down returns to it
		return c.exit(ChipNavExitRight)

	case tea.KeyBackspace, tea.KeyDelete:
		if len(c.chips) == 0 || c.navIndex < 0 || c.navIndex >= len(c.chips) {
			return c, nil
		}
		removed := c.chips[c.navIndex]
		removedIndex := c.navIndex

		c.chips = append(c.chips[:c.navIndex], c.chips[c.navIndex+1:]...)

		if len(c.chips) == 0 {
			c.state = ChipListInput
			c.navIndex = -1
		} else if c.navIndex >= len(c.chips) {
			// Was at last position, highlight previous
			c.navIndex = len(c.chips) - 1
		}
		// Otherwise stay at same index (next chip slid into place)

		return c, emit(ChipRemovedMsg{
			Owner: c.Owner,
			ID:    removed.ID,
			Label: removed.Label,
			Index: removedIndex,
		})

	case tea.KeyEsc:
		return c.exit(ChipNavExitEscape)

	case tea.KeyTab:
		return c.exit(ChipNavExitTab)

	case tea.KeyRunes:
		// Letter key - exit and pass character
		if len(msg.Runes) > 0 {
			char := msg.Runes[0]
			updated, _ := c.exit(ChipNavExitTyping)
			return updated, emit(ChipNavExitMsg{
				Owner:     c.Owner,
				Reason:    ChipNavExitTyping,
				Character: char,
			})
		}
	}

	return c, nil
}

func (c ChipList) exit(reason ChipNavExitReason) (ChipList, tea.Cmd) {
	c.state = ChipListInput
	c.navIndex = -1
	return c, emit(ChipNavExitMsg{Owner: c.Owner, Reason: reason})
}

// View renders the chip list with width-aware wrapping.
func (c ChipList) View() string {
	if len(c.chips) == 0 {
		return ""
	}
	return c.wrapChips(c.RenderChips())
}

func (c ChipList) wrapChips(renderedChips []string) string {
	if c.Width <= 0 {
		return strings.Join(renderedChips, " ")
	}

	var lines []string
	var currentLine []string
	currentWidth := 0

	for _, chip := range renderedChips {
		chipWidth := lipgloss.Width(chip)
		spaceNeeded := chipWidth
		if len(currentLine) > 0 {
			spaceNeeded++ // +1 for space separator
		}

		if currentWidth+spaceNeeded > c.Width && len(currentLine) > 0 {
			lines = append(lines, strings.Join(currentLine, " "))
			currentLine = []string{chip}
			currentWidth = chipWidth
		} else {
			currentLine = append(currentLine, chip)
			currentWidth += spaceNeeded
		}
	}

	if len(currentLine) > 0 {
		lines = append(lines, strings.Join(currentLine, " "))
	}

	return strings.Join(lines, "\n")
}

// RenderChips returns styled chip strings without word wrapping, used when a
// control lays chips and input onto one line before wrapping itself.
func (c ChipList) RenderChips() []string {
	result := make([]string, 0, len(c.chips))
	for i, chip := range c.chips {
		state := chipStateNormal
		if c.flashIndex == i {
			state = chipStateFlash
		} else if c.state == ChipListNavigation && i == c.navIndex {
			state = chipStateHighlight
		}
		result = append(result, renderPillChip(chip, state))
	}
	return result
}

// Flash marks the chip with the given id for a duplicate flash and returns
// the command that clears it.
func (c *ChipList) Flash(id string) tea.Cmd {
	for i, chip := range c.chips {
		if chip.ID == id {
			c.flashIndex = i
			owner := c.Owner
			return tea.Tick(flashDuration, func(_ time.Time) tea.Msg {
				return chipFlashClearMsg{owner: owner}
			})
		}
	}
	return nil
}

// EnterNavigation enters chip navigation mode, highlighting the last chip.
// Returns false if there are no chips to navigate.
func (c *ChipList) EnterNavigation() bool {
	if len(c.chips) == 0 {
		return false
	}
	c.state = ChipListNavigation
	c.navIndex = len(c.chips) - 1 // Highlight LAST chip
	return true
}

// ExitNavigation exits chip navigation mode.
func (c *ChipList) ExitNavigation() {
	c.state = ChipListInput
	c.navIndex = -1
}

// InNavigationMode returns true if in chip navigation mode.
func (c ChipList) InNavigationMode() bool {
	return c.state == ChipListNavigation
}

// HighlightedChip returns the currently highlighted chip, if any.
func (c ChipList) HighlightedChip() (Chip, bool) {
	if c.state != ChipListNavigation || c.navIndex < 0 || c.navIndex >= len(c.chips) {
		return Chip{}, false
	}
	return c.chips[c.navIndex], true
}

// NavIndex returns the current navigation index (for testing).
func (c ChipList) NavIndex() int {
	return c.navIndex
}

// State returns the current state (for testing).
func (c ChipList) State() ChipListState {
	return c.state
}

// FlashIndex returns the current flash index (for testing).
func (c ChipList) FlashIndex() int {
	return c.flashIndex
}

// Len returns the number of chips.
func (c ChipList) Len() int {
	return len(c.chips)
}

const flashDuration = 150 * time.Millisecond

// Chip visual states for pill rendering
type chipState int

const (
	chipStateNormal chipState = iota
	chipStateHighlight
	chipStateFlash
)

// Powerline characters for pill-shaped chips
const (
	pillLeft  = "" // Left half-circle (rounded left edge)
	pillRight = "" // Right half-circle (rounded right edge)
)

// renderPillChip renders a chip as a pill using powerline glyphs. The pill
// has curved edges and a solid background color behind the icon and label.
func renderPillChip(chip Chip, state chipState) string {
	var bgColor, fgColor lipgloss.TerminalColor

	t := theme.Current()
	switch state {
	case chipStateHighlight:
		bgColor = t.BackgroundSecondary()
		fgColor = t.Text()
	case chipStateFlash:
		bgColor = t.Warning() // Orange flash for duplicate
		fgColor = t.Text()
	default:
		bgColor = t.Info()
		fgColor = t.Background() // Use background color for contrast
	}

	text := chip.Label
	if chip.Icon != "" {
		text = chip.Icon + " " + text
	}

	leftCap := lipgloss.NewStyle().Foreground(bgColor).Render(pillLeft)

	labelStyle := lipgloss.NewStyle().
		Foreground(fgColor).
		Background(bgColor)
	if state == chipStateHighlight || state == chipStateFlash {
		labelStyle = labelStyle.Bold(true)
	}
	labelText := labelStyle.Render(text)

	rightCap := lipgloss.NewStyle().Foreground(bgColor).Render(pillRight)

	return leftCap + labelText + rightCap
}
