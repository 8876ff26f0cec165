package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// TestAllThemesRegistered verifies that all expected themes are registered.
func TestAllThemesRegistered(t *testing.T) {
	expected := []string{
		"dracula",
		"github",
		"gruvbox",
		"nord",
		"tokyonight",
	}

	available := Available()
	availableMap := make(map[string]bool)
	for _, name := range available {
		availableMap[name] = true
	}

	for _, name := range expected {
		if !availableMap[name] {
			t.Errorf("expected theme %q to be registered, but it was not found", name)
		}
	}
}

// TestSetTheme verifies that theme switching works.
func TestSetTheme(t *testing.T) {
	themes := []string{"dracula", "nord", "tokyonight"}

	for _, name := range themes {
		if !SetTheme(name) {
			t.Errorf("SetTheme(%q) returned false, expected true", name)
			continue
		}
		if CurrentName() != name {
			t.Errorf("CurrentName() = %q, expected %q", CurrentName(), name)
		}
	}
}

// TestSetInvalidTheme verifies that setting an invalid theme returns false.
func TestSetInvalidTheme(t *testing.T) {
	if SetTheme("nonexistent-theme") {
		t.Error("SetTheme(\"nonexistent-theme\") returned true, expected false")
	}
}

// TestCycleTheme verifies that theme cycling wraps through every theme.
func TestCycleTheme(t *testing.T) {
	SetTheme("dracula")

	seen := make(map[string]bool)
	seen[CurrentName()] = true

	total := len(Available())
	for i := 0; i < total+2; i++ {
		name := CycleTheme()
		seen[name] = true
	}

	if len(seen) != total {
		t.Errorf("expected to cycle through %d themes, only saw %d", total, len(seen))
	}
}

// TestThemeColorsNotEmpty verifies that all theme methods return non-empty colors.
func TestThemeColorsNotEmpty(t *testing.T) {
	for _, name := range Available() {
		SetTheme(name)
		theme := Current()

		checkColor := func(colorName string, color lipgloss.AdaptiveColor) {
			if color.Dark == "" && color.Light == "" {
				t.Errorf("theme %q: %s has empty Dark and Light values", name, colorName)
			}
		}

		checkColor("Primary", theme.Primary())
		checkColor("Secondary", theme.Secondary())
		checkColor("Accent", theme.Accent())
		checkColor("Error", theme.Error())
		checkColor("Warning", theme.Warning())
		checkColor("Success", theme.Success())
		checkColor("Info", theme.Info())
		checkColor("Text", theme.Text())
		checkColor("TextMuted", theme.TextMuted())
		checkColor("TextEmphasized", theme.TextEmphasized())
		checkColor("Background", theme.Background())
		checkColor("BackgroundSecondary", theme.BackgroundSecondary())
		checkColor("BackgroundDarker", theme.BackgroundDarker())
		checkColor("BorderNormal", theme.BorderNormal())
		checkColor("BorderFocused", theme.BorderFocused())
		checkColor("BorderDim", theme.BorderDim())
	}
}

// TestAvailableSorted verifies that Available returns sorted theme names.
func TestAvailableSorted(t *testing.T) {
	available := Available()

	for i := 1; i < len(available); i++ {
		if available[i-1] > available[i] {
			t.Errorf("Available() not sorted: %q > %q at index %d", available[i-1], available[i], i-1)
		}
	}
}
