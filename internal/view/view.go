// Package view renders the reader's pages and the page regions that live
// navigation swaps in place.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/ziadkadry99/unseenbook/internal/content"
	"github.com/ziadkadry99/unseenbook/internal/i18n"
	"github.com/ziadkadry99/unseenbook/internal/markdown"
	"github.com/ziadkadry99/unseenbook/internal/prefs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the CSS and JavaScript assets.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Env is what every page needs to know about the reader and addressing.
type Env struct {
	Prefs prefs.Preferences
	Links Linker
}

// Renderer executes the page templates.
type Renderer struct {
	tmpl *template.Template
	md   *markdown.Renderer
}

// New parses the embedded templates.
func New(md *markdown.Renderer) (*Renderer, error) {
	if md == nil {
		md = markdown.NewRenderer(markdown.DefaultOptions())
	}
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, md: md}, nil
}

// Regions of a page that can be replaced independently.
const (
	RegionMain  = "main"
	RegionModal = "modal"
)

// Page is a fully rendered view split into its regions.
type Page struct {
	Ref   PageRef
	Title string
	Main  template.HTML
	Modal template.HTML
}

var funcs = template.FuncMap{
	"prevArrow": func(l i18n.Language) string {
		if l.RTL() {
			return "→"
		}
		return "←"
	},
	"nextArrow": func(l i18n.Language) string {
		if l.RTL() {
			return "←"
		}
		return "→"
	},
	"toggleData": func(t Toggle, label, action string) toggleData {
		return toggleData{Toggle: t, Label: label, Action: action}
	},
}

type toggleData struct {
	Toggle Toggle
	Label  string
	Action string
}

type regionData struct {
	Env
	T       i18n.Translations
	Book    *content.Book
	Part    content.Part
	Chapter content.PartChapter
	Prev    *content.PartChapter
	Next    *content.PartChapter
	Body    template.HTML
}

func (r *Renderer) data(env Env, book *content.Book) regionData {
	return regionData{Env: env, T: i18n.T(env.Prefs.Language), Book: book}
}

func (r *Renderer) exec(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// Home renders the landing page listing every part.
func (r *Renderer) Home(env Env, book *content.Book) (Page, error) {
	main, err := r.exec("home", r.data(env, book))
	if err != nil {
		return Page{}, err
	}
	return Page{Ref: PageRef{Kind: HomePage}, Title: book.Title, Main: main}, nil
}

// PartModal renders the part summary shown over the landing page.
func (r *Renderer) PartModal(env Env, book *content.Book, part content.Part) (template.HTML, error) {
	d := r.data(env, book)
	d.Part = part
	return r.exec("part_modal", d)
}

// HomeWithPart renders the landing page with the part modal open.
func (r *Renderer) HomeWithPart(env Env, book *content.Book, part content.Part) (Page, error) {
	page, err := r.Home(env, book)
	if err != nil {
		return Page{}, err
	}
	if page.Modal, err = r.PartModal(env, book, part); err != nil {
		return Page{}, err
	}
	page.Ref = PageRef{Kind: PartPage, ID: part.ID}
	page.Title = part.Title + " · " + book.Title
	return page, nil
}

// ErrorModal renders the notice shown when a part could not be loaded.
func (r *Renderer) ErrorModal(env Env) (template.HTML, error) {
	return r.exec("error_modal", r.data(env, nil))
}

// Chapter renders a chapter, or the coming soon placeholder when the
// chapter has no body yet.
func (r *Renderer) Chapter(env Env, book *content.Book, ch content.PartChapter) (Page, error) {
	d := r.data(env, book)
	d.Chapter = ch
	ref := PageRef{Kind: ChapterPage, ID: ch.ID}

	if !ch.HasContent() {
		main, err := r.exec("coming_soon", d)
		if err != nil {
			return Page{}, err
		}
		return Page{Ref: ref, Title: ch.Title, Main: main}, nil
	}

	if prev, ok := book.PreviousChapter(ch.ID); ok {
		d.Prev = &prev
	}
	if next, ok := book.NextChapter(ch.ID); ok {
		d.Next = &next
	}
	d.Body = template.HTML(r.md.Render(ch.Content, env.Prefs.Theme))

	main, err := r.exec("chapter", d)
	if err != nil {
		return Page{}, err
	}
	return Page{Ref: ref, Title: ch.Title + " · " + book.Title, Main: main}, nil
}

// NotFound renders the page for an unknown part or chapter.
func (r *Renderer) NotFound(env Env) (Page, error) {
	main, err := r.exec("not_found", r.data(env, nil))
	if err != nil {
		return Page{}, err
	}
	return Page{Ref: PageRef{Kind: HomePage}, Title: i18n.T(env.Prefs.Language).Get("not_found"), Main: main}, nil
}

type layoutData struct {
	Env
	T           i18n.Translations
	Page        Page
	Dir         string
	BodyStyle   template.CSS
	LangToggle  Toggle
	ThemeToggle Toggle
	ThemeLabel  string
}

// Document renders the complete HTML document around a page.
func (r *Renderer) Document(w io.Writer, env Env, page Page) error {
	t := i18n.T(env.Prefs.Language)
	d := layoutData{
		Env:         env,
		T:           t,
		Page:        page,
		Dir:         env.Prefs.Language.Direction(),
		BodyStyle:   template.CSS(env.Prefs.Theme.Style()),
		LangToggle:  env.Links.LanguageToggle(page.Ref),
		ThemeToggle: env.Links.ThemeToggle(page.Ref),
		ThemeLabel:  t.Get("toggle_theme." + string(env.Prefs.Theme)),
	}
	if err := r.tmpl.ExecuteTemplate(w, "layout", d); err != nil {
		return fmt.Errorf("rendering layout: %w", err)
	}
	return nil
}

// DocumentString is Document into a string.
func (r *Renderer) DocumentString(env Env, page Page) (string, error) {
	var buf bytes.Buffer
	if err := r.Document(&buf, env, page); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// HomeURL returns the landing page URL.
func (e Env) HomeURL() string { return e.Links.Page(PageRef{Kind: HomePage}) }

// PartURL returns the URL of the landing page with part id open.
func (e Env) PartURL(id int) string { return e.Links.Page(PageRef{Kind: PartPage, ID: id}) }

// ChapterURL returns the URL of chapter id.
func (e Env) ChapterURL(id int) string { return e.Links.Page(PageRef{Kind: ChapterPage, ID: id}) }

// AssetURL returns the URL of a static asset.
func (e Env) AssetURL(name string) string { return e.Links.Asset(name) }
