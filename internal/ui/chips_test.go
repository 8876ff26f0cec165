package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func sampleChips() []Chip {
	return []Chip{
		{ID: "a", Label: "Alpha"},
		{ID: "b", Label: "Beta", Icon: "●"},
		{ID: "c", Label: "Gamma"},
	}
}

func TestChipNavigation(t *testing.T) {
	t.Run("EnterHighlightsLastChip", func(t *testing.T) {
		c := NewChipList("crew")
		c.SetChips(sampleChips())
		if !c.EnterNavigation() {
			t.Fatal("expected navigation to start")
		}
		if c.NavIndex() != 2 {
			t.Fatalf("expected last chip highlighted, got %d", c.NavIndex())
		}
	})

	t.Run("EnterWithoutChipsRefused", func(t *testing.T) {
		c := NewChipList("crew")
		if c.EnterNavigation() {
			t.Fatal("navigation must be refused with no chips")
		}
	})

	t.Run("LeftStopsAtFirst", func(t *testing.T) {
		c := NewChipList("crew")
		c.SetChips(sampleChips())
		c.EnterNavigation()
		for range 5 {
			c, _ = c.Update(tea.KeyMsg{Type: tea.KeyLeft})
		}
		if c.NavIndex() != 0 {
			t.Fatalf("expected nav pinned at first chip, got %d", c.NavIndex())
		}
	})

	t.Run("RightPastLastExits", func(t *testing.T) {
		c := NewChipList("crew")
		c.SetChips(sampleChips())
		c.EnterNavigation()
		var cmd tea.Cmd
		c, cmd = c.Update(tea.KeyMsg{Type: tea.KeyLeft})
		if cmd != nil {
			t.Fatal("moving within chips must not emit")
		}
		c, cmd = c.Update(tea.KeyMsg{Type: tea.KeyRight})
		if cmd != nil {
			t.Fatal("returning to the last chip must not emit")
		}
		c, cmd = c.Update(tea.KeyMsg{Type: tea.KeyRight})
		exit, ok := findMsg[ChipNavExitMsg](collectMsgs(cmd))
		if !ok || exit.Reason != ChipNavExitRight {
			t.Fatalf("expected right-exit, got %v", exit)
		}
		if c.InNavigationMode() {
			t.Fatal("expected navigation exited")
		}
	})

	t.Run("TypingExitsWithCharacter", func(t *testing.T) {
		c := NewChipList("crew")
		c.SetChips(sampleChips())
		c.EnterNavigation()
		var cmd tea.Cmd
		c, cmd = c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
		exit, ok := findMsg[ChipNavExitMsg](collectMsgs(cmd))
		if !ok || exit.Reason != ChipNavExitTyping || exit.Character != 'x' {
			t.Fatalf("expected typing-exit with 'x', got %+v", exit)
		}
		if c.InNavigationMode() {
			t.Fatal("expected navigation exited")
		}
	})
}

func TestChipRemoval(t *testing.T) {
	t.Run("BackspaceRemovesHighlighted", func(t *testing.T) {
		c := NewChipList("crew")
		c.SetChips(sampleChips())
		c.EnterNavigation()
		var cmd tea.Cmd
		c, cmd = c.Update(tea.KeyMsg{Type: tea.KeyBackspace})
		removed, ok := findMsg[ChipRemovedMsg](collectMsgs(cmd))
		if !ok {
			t.Fatal("expected a ChipRemovedMsg")
		}
		if removed.ID != "c" || removed.Index != 2 || removed.Owner != "crew" {
			t.Fatalf("unexpected removal: %+v", removed)
		}
		if c.NavIndex() != 1 {
			t.Fatalf("expected previous chip highlighted, got %d", c.NavIndex())
		}
	})

	t.Run("RemovingLastChipExitsNavigation", func(t *testing.T) {
		c := NewChipList("crew")
		c.SetChips([]Chip{{ID: "only", Label: "Only"}})
		c.EnterNavigation()
		c, _ = c.Update(tea.KeyMsg{Type: tea.KeyBackspace})
		if c.InNavigationMode() {
			t.Fatal("expected navigation exited with no chips left")
		}
	})

	t.Run("SetChipsClampsNavIndex", func(t *testing.T) {
		c := NewChipList("crew")
		c.SetChips(sampleChips())
		c.EnterNavigation()
		c.SetChips(sampleChips()[:1])
		if c.NavIndex() != 0 {
			t.Fatalf("expected nav index clamped, got %d", c.NavIndex())
		}
	})
}

func TestChipRendering(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	t.Run("IconPrecedesLabel", func(t *testing.T) {
		c := NewChipList("crew")
		c.SetChips(sampleChips())
		view := c.View()
		if !strings.Contains(view, "● Beta") {
			t.Fatalf("expected icon before label, got %q", view)
		}
	})

	t.Run("WrapsAtWidth", func(t *testing.T) {
		c := NewChipList("crew").WithWidth(14)
		c.SetChips(sampleChips())
		view := c.View()
		if !strings.Contains(view, "\n") {
			t.Fatalf("expected wrapped chip lines, got %q", view)
		}
	})

	t.Run("EmptyListRendersNothing", func(t *testing.T) {
		c := NewChipList("crew")
		if c.View() != "" {
			t.Fatal("expected empty view with no chips")
		}
	})
}
