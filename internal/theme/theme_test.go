package theme

import (
	"strings"
	"testing"
)

func TestToggle(t *testing.T) {
	if Light.Toggle() != Dark || Dark.Toggle() != Light {
		t.Error("Toggle should swap light and dark")
	}
	for _, th := range Themes {
		if th.Toggle().Toggle() != th {
			t.Errorf("%s toggled twice did not round-trip", th)
		}
	}
}

func TestPaletteHasAllVariables(t *testing.T) {
	for _, th := range Themes {
		p := th.Palette()
		if len(p) != 18 {
			t.Errorf("%s palette has %d vars, want 18", th, len(p))
		}
		seen := map[string]bool{}
		for _, v := range p {
			if !strings.HasPrefix(v.Name, "--") {
				t.Errorf("%s: variable %q is not a custom property", th, v.Name)
			}
			seen[v.Name] = true
		}
		for _, name := range []string{"--primary-color", "--bg-color", "--modal-bg", "--subtitle-color"} {
			if !seen[name] {
				t.Errorf("%s palette missing %s", th, name)
			}
		}
	}
}

func TestStyle(t *testing.T) {
	s := Dark.Style()
	if !strings.Contains(s, "--bg-color: #1a202c;") {
		t.Errorf("dark style missing bg colour: %s", s)
	}
	if !strings.Contains(Light.Style(), "--text-color: #1a202c;") {
		t.Error("light style missing text colour")
	}
}

func TestParseTheme(t *testing.T) {
	if _, err := ParseTheme("sepia"); err == nil {
		t.Error("expected error for unknown theme")
	}
	if th, err := ParseTheme("dark"); err != nil || th != Dark {
		t.Errorf("ParseTheme(dark) = %q, %v", th, err)
	}
}
