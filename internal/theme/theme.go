package theme

import (
	"fmt"
	"strings"
)

// Theme is a colour scheme for the reader.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// DefaultTheme is used when no preference has been stored.
const DefaultTheme = Light

// Themes lists every supported theme.
var Themes = []Theme{Light, Dark}

// ParseTheme returns the Theme for s, or an error for anything other than
// "light" or "dark".
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("unsupported theme %q", s)
}

// Valid reports whether t is a supported theme.
func (t Theme) Valid() bool { return t == Light || t == Dark }

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Var is one CSS custom property applied to the document body.
type Var struct {
	Name  string
	Value string
}

// Palette returns the CSS custom properties for the theme, in a stable order.
func (t Theme) Palette() []Var {
	if t == Dark {
		return darkPalette
	}
	return lightPalette
}

// Style renders the palette as an inline style attribute value.
func (t Theme) Style() string {
	var sb strings.Builder
	for i, v := range t.Palette() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(v.Name)
		sb.WriteString(": ")
		sb.WriteString(v.Value)
		sb.WriteByte(';')
	}
	return sb.String()
}

var darkPalette = []Var{
	{"--primary-color", "#667eea"},
	{"--secondary-color", "#764ba2"},
	{"--accent-color", "#f093fb"},
	{"--text-color", "#f7fafc"},
	{"--text-light", "#e2e8f0"},
	{"--bg-color", "#1a202c"},
	{"--card-bg", "#2d3748"},
	{"--border-color", "#4a5568"},
	{"--shadow-color", "rgba(0, 0, 0, 0.3)"},
	{"--code-bg", "#4a5568"},
	{"--code-color", "#fbbf24"},
	{"--header-bg", "linear-gradient(135deg, #2d3748 0%, #4a5568 100%)"},
	{"--nav-bg", "#2d3748"},
	{"--modal-bg", "#2d3748"},
	{"--modal-text", "#f7fafc"},
	{"--modal-border", "#4a5568"},
	{"--title-color", "#f7fafc"},
	{"--subtitle-color", "#e2e8f0"},
}

var lightPalette = []Var{
	{"--primary-color", "#667eea"},
	{"--secondary-color", "#764ba2"},
	{"--accent-color", "#f093fb"},
	{"--text-color", "#1a202c"},
	{"--text-light", "#4a5568"},
	{"--bg-color", "#ffffff"},
	{"--card-bg", "#ffffff"},
	{"--border-color", "#e2e8f0"},
	{"--shadow-color", "rgba(0, 0, 0, 0.1)"},
	{"--code-bg", "#f7fafc"},
	{"--code-color", "#d63384"},
	{"--header-bg", "linear-gradient(135deg, #667eea 0%, #764ba2 100%)"},
	{"--nav-bg", "#f8fafc"},
	{"--modal-bg", "#ffffff"},
	{"--modal-text", "#1a202c"},
	{"--modal-border", "#e2e8f0"},
	{"--title-color", "#2d3748"},
	{"--subtitle-color", "#4a5568"},
}

// CodePalette holds the literal colours baked into rendered code.
type CodePalette struct {
	BlockBg     string
	BlockBorder string
	HeaderBg    string
	HeaderColor string
	Text        string
	InlineBg    string
	InlineColor string
}

// Code returns the code colours for the theme. Rendered chapter bodies embed
// these values, so they must be re-rendered when the theme changes.
func (t Theme) Code() CodePalette {
	if t == Dark {
		return CodePalette{
			BlockBg:     "#2d3748",
			BlockBorder: "#4a5568",
			HeaderBg:    "#4a5568",
			HeaderColor: "#e2e8f0",
			Text:        "#e2e8f0",
			InlineBg:    "#4a5568",
			InlineColor: "#fbbf24",
		}
	}
	return CodePalette{
		BlockBg:     "#f8f9fa",
		BlockBorder: "#e9ecef",
		HeaderBg:    "#e9ecef",
		HeaderColor: "#495057",
		Text:        "#333",
		InlineBg:    "#f1f3f4",
		InlineColor: "#d63384",
	}
}

// Page returns the backdrop and accent colours used by full-page views
// such as the coming soon placeholder.
func (t Theme) Page() (background, card, accent, heading, body string) {
	if t == Dark {
		return "linear-gradient(135deg, #1a1a2e 0%, #16213e 100%)", "#2d3748", "#fbbf24", "#e2e8f0", "#a0aec0"
	}
	return "linear-gradient(135deg, #667eea 0%, #764ba2 100%)", "white", "#667eea", "#333", "#666"
}
