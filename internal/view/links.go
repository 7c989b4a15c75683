package view

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ziadkadry99/unseenbook/internal/i18n"
	"github.com/ziadkadry99/unseenbook/internal/theme"
)

// PageKind identifies which page a URL points at.
type PageKind int

const (
	HomePage PageKind = iota
	PartPage
	ChapterPage
)

// PageRef names a page independently of how it is addressed.
type PageRef struct {
	Kind PageKind
	ID   int
}

// Toggle is where a language or theme control sends the reader.
type Toggle struct {
	URL  string
	Post bool   // submit as a form instead of following a link
	Back string // page to return to after a POST
}

// Linker builds URLs for pages and assets.
type Linker interface {
	Page(ref PageRef) string
	Asset(name string) string
	LanguageToggle(ref PageRef) Toggle
	ThemeToggle(ref PageRef) Toggle
	// Live reports whether the page can drive navigation over a websocket.
	Live() bool
}

// ServerLinks addresses pages served by the HTTP server.
type ServerLinks struct{}

func (ServerLinks) Page(ref PageRef) string {
	switch ref.Kind {
	case PartPage:
		return fmt.Sprintf("/parts/%d", ref.ID)
	case ChapterPage:
		return fmt.Sprintf("/chapters/%d", ref.ID)
	}
	return "/"
}

func (ServerLinks) Asset(name string) string { return "/static/" + name }

func (l ServerLinks) LanguageToggle(ref PageRef) Toggle {
	return Toggle{URL: "/preferences/language/toggle", Post: true, Back: l.Page(ref)}
}

func (l ServerLinks) ThemeToggle(ref PageRef) Toggle {
	return Toggle{URL: "/preferences/theme/toggle", Post: true, Back: l.Page(ref)}
}

func (ServerLinks) Live() bool { return true }

// StaticLinks addresses pages of an exported site laid out as
// <lang>/<theme>/{index.html,parts/N.html,chapters/N.html}. URLs are
// relative so the export works from any directory, including file://.
type StaticLinks struct {
	Lang  i18n.Language
	Theme theme.Theme
	Depth int // directories below <lang>/<theme>/ of the page being rendered
}

// StaticPath returns the site-relative path of a page variant.
func StaticPath(lang i18n.Language, th theme.Theme, ref PageRef) string {
	var page string
	switch ref.Kind {
	case PartPage:
		page = fmt.Sprintf("parts/%d.html", ref.ID)
	case ChapterPage:
		page = fmt.Sprintf("chapters/%d.html", ref.ID)
	default:
		page = "index.html"
	}
	return string(lang) + "/" + string(th) + "/" + page
}

func (l StaticLinks) root() string {
	return strings.Repeat("../", l.Depth+2)
}

func (l StaticLinks) Page(ref PageRef) string {
	return l.root() + StaticPath(l.Lang, l.Theme, ref)
}

func (l StaticLinks) Asset(name string) string {
	return l.root() + "static/" + url.PathEscape(name)
}

func (l StaticLinks) LanguageToggle(ref PageRef) Toggle {
	return Toggle{URL: l.root() + StaticPath(l.Lang.Toggle(), l.Theme, ref)}
}

func (l StaticLinks) ThemeToggle(ref PageRef) Toggle {
	return Toggle{URL: l.root() + StaticPath(l.Lang, l.Theme.Toggle(), ref)}
}

func (StaticLinks) Live() bool { return false }

// DepthOf returns the directory depth of a page below <lang>/<theme>/.
func DepthOf(ref PageRef) int {
	if ref.Kind == HomePage {
		return 0
	}
	return 1
}
