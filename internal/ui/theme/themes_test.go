package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// TestAllThemesRegistered verifies themes are listed in registration order.
func TestAllThemesRegistered(t *testing.T) {
	expected := []string{"midnight", "daylight", "ember"}

	available := Available()
	if len(available) != len(expected) {
		t.Fatalf("Available() = %v, want %v", available, expected)
	}
	for i, name := range expected {
		if available[i] != name {
			t.Errorf("Available()[%d] = %q, want %q", i, available[i], name)
		}
	}
}

// TestDefaultTheme verifies the first registered theme is active at start.
func TestDefaultTheme(t *testing.T) {
	SetTheme("midnight")
	if CurrentName() != "midnight" {
		t.Errorf("CurrentName() = %q, want midnight", CurrentName())
	}
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("midnight") })

	for _, name := range []string{"daylight", "ember", "midnight"} {
		if !SetTheme(name) {
			t.Errorf("SetTheme(%q) returned false, expected true", name)
			continue
		}
		if CurrentName() != name {
			t.Errorf("CurrentName() = %q, expected %q", CurrentName(), name)
		}
	}
}

func TestRegisterThemeReplacesInPlace(t *testing.T) {
	t.Cleanup(func() {
		RegisterTheme("daylight", Daylight)
		SetTheme("midnight")
	})
	RegisterTheme("daylight", Ember)

	if got := Available(); len(got) != 3 || got[1] != "daylight" {
		t.Fatalf("Available() = %v, want daylight kept in second place", got)
	}
	SetTheme("daylight")
	if Current() != Theme(Ember) {
		t.Error("re-registering daylight did not replace its palette")
	}
}

// TestSetInvalidTheme verifies that setting an invalid theme returns false.
func TestSetInvalidTheme(t *testing.T) {
	before := CurrentName()
	if SetTheme("nonexistent-theme") {
		t.Error("SetTheme(\"nonexistent-theme\") returned true, expected false")
	}
	if CurrentName() != before {
		t.Errorf("failed SetTheme changed the active theme to %q", CurrentName())
	}
}

// TestCycleTheme verifies that cycling follows registration order and wraps.
func TestCycleTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("midnight") })
	SetTheme("daylight")

	got := []string{CycleTheme(), CycleTheme(), CycleTheme()}
	want := []string{"ember", "midnight", "daylight"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cycle %d = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestThemeColorsNotEmpty verifies that all theme methods return non-empty colors.
func TestThemeColorsNotEmpty(t *testing.T) {
	t.Cleanup(func() { SetTheme("midnight") })

	for _, name := range Available() {
		SetTheme(name)
		theme := Current()

		checkColor := func(colorName string, color lipgloss.AdaptiveColor) {
			if color.Dark == "" || color.Light == "" {
				t.Errorf("theme %q: %s has an empty Dark or Light value", name, colorName)
			}
		}

		checkColor("Primary", theme.Primary())
		checkColor("Accent", theme.Accent())
		checkColor("Error", theme.Error())
		checkColor("Warning", theme.Warning())
		checkColor("Success", theme.Success())
		checkColor("Info", theme.Info())
		checkColor("Text", theme.Text())
		checkColor("TextMuted", theme.TextMuted())
		checkColor("Background", theme.Background())
		checkColor("BackgroundSecondary", theme.BackgroundSecondary())
		checkColor("BorderNormal", theme.BorderNormal())
		checkColor("BorderFocused", theme.BorderFocused())
	}
}
