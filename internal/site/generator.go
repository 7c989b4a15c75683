// Package site exports the book as a static website: every page in every
// language and theme, linked with relative URLs.
package site

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/unseenbook/internal/content"
	"github.com/ziadkadry99/unseenbook/internal/i18n"
	"github.com/ziadkadry99/unseenbook/internal/markdown"
	"github.com/ziadkadry99/unseenbook/internal/navigation"
	"github.com/ziadkadry99/unseenbook/internal/prefs"
	"github.com/ziadkadry99/unseenbook/internal/progress"
	"github.com/ziadkadry99/unseenbook/internal/theme"
	"github.com/ziadkadry99/unseenbook/internal/view"
)

// Options configure a build.
type Options struct {
	OutputDir string
	// Default is the variant the root index.html redirects to.
	Default  prefs.Preferences
	Reporter progress.Reporter
	Logger   *zap.Logger
}

// Generator writes the static site.
type Generator struct {
	books navigation.Books
	views *view.Renderer
	opts  Options
}

// NewGenerator creates a Generator reading from books.
func NewGenerator(books navigation.Books, md *markdown.Renderer, opts Options) (*Generator, error) {
	views, err := view.New(md)
	if err != nil {
		return nil, err
	}
	if opts.Reporter == nil {
		opts.Reporter = progress.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Default == (prefs.Preferences{}) {
		opts.Default = prefs.Default()
	}
	return &Generator{books: books, views: views, opts: opts}, nil
}

// variant is one language and theme combination of the site.
type variant struct {
	lang  i18n.Language
	theme theme.Theme
	book  *content.Book
}

// Generate builds the full site. Returns the number of pages written.
func (g *Generator) Generate(ctx context.Context) (int, error) {
	books := make(map[i18n.Language]*content.Book, len(i18n.Languages))
	for _, lang := range i18n.Languages {
		book, err := g.books.Book(ctx, lang)
		if err != nil {
			return 0, fmt.Errorf("loading %s book: %w", lang, err)
		}
		books[lang] = book
	}

	var variants []variant
	total := 0
	for _, lang := range i18n.Languages {
		for _, th := range []theme.Theme{theme.Light, theme.Dark} {
			v := variant{lang: lang, theme: th, book: books[lang]}
			variants = append(variants, v)
			total += len(pagesOf(v.book))
		}
	}

	if err := os.MkdirAll(g.opts.OutputDir, 0o755); err != nil {
		return 0, err
	}
	if err := g.writeAssets(); err != nil {
		return 0, fmt.Errorf("writing assets: %w", err)
	}
	if err := g.writeRedirect(); err != nil {
		return 0, fmt.Errorf("writing index: %w", err)
	}
	for lang, book := range books {
		entries := BuildSearchIndex(book)
		if err := WriteSearchIndex(entries, filepath.Join(g.opts.OutputDir, string(lang), "search-index.json")); err != nil {
			return 0, fmt.Errorf("writing search index: %w", err)
		}
	}

	g.opts.Reporter.Start(total)
	defer g.opts.Reporter.Finish()

	var done atomic.Int64
	eg, ctx := errgroup.WithContext(ctx)
	for _, v := range variants {
		eg.Go(func() error {
			for _, ref := range pagesOf(v.book) {
				if err := ctx.Err(); err != nil {
					return err
				}
				rel, err := g.renderPage(v, ref)
				if err != nil {
					return fmt.Errorf("rendering %s: %w", rel, err)
				}
				g.opts.Reporter.Update(int(done.Add(1)), rel)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}

	g.opts.Logger.Info("site generated",
		zap.String("output", g.opts.OutputDir),
		zap.Int("pages", total))
	return total, nil
}

// pagesOf lists every page of a book: the landing page, one per part and
// one per chapter.
func pagesOf(book *content.Book) []view.PageRef {
	refs := []view.PageRef{{Kind: view.HomePage}}
	for _, p := range book.Parts {
		refs = append(refs, view.PageRef{Kind: view.PartPage, ID: p.ID})
	}
	for _, ch := range book.AllChapters() {
		refs = append(refs, view.PageRef{Kind: view.ChapterPage, ID: ch.ID})
	}
	return refs
}

// renderPage writes one page and returns its site-relative path.
func (g *Generator) renderPage(v variant, ref view.PageRef) (string, error) {
	rel := view.StaticPath(v.lang, v.theme, ref)
	env := view.Env{
		Prefs: prefs.Preferences{Language: v.lang, Theme: v.theme},
		Links: view.StaticLinks{Lang: v.lang, Theme: v.theme, Depth: view.DepthOf(ref)},
	}

	var (
		page view.Page
		err  error
	)
	switch ref.Kind {
	case view.PartPage:
		part, _ := v.book.PartByID(ref.ID)
		page, err = g.views.HomeWithPart(env, v.book, part)
	case view.ChapterPage:
		ch, _ := v.book.ChapterByID(ref.ID)
		page, err = g.views.Chapter(env, v.book, ch)
	default:
		page, err = g.views.Home(env, v.book)
	}
	if err != nil {
		return rel, err
	}

	html, err := g.views.DocumentString(env, page)
	if err != nil {
		return rel, err
	}

	outPath := filepath.Join(g.opts.OutputDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return rel, err
	}
	return rel, os.WriteFile(outPath, []byte(html), 0o644)
}

// writeAssets copies the embedded CSS and JavaScript into static/.
func (g *Generator) writeAssets() error {
	static := view.Static()
	return fs.WalkDir(static, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(static, p)
		if err != nil {
			return err
		}
		outPath := filepath.Join(g.opts.OutputDir, "static", filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}
		return os.WriteFile(outPath, data, 0o644)
	})
}

// writeRedirect writes the root index.html pointing at the default variant.
func (g *Generator) writeRedirect() error {
	target := view.StaticPath(g.opts.Default.Language, g.opts.Default.Theme, view.PageRef{Kind: view.HomePage})
	html := fmt.Sprintf(`<!DOCTYPE html>
<html><head><meta charset="utf-8">
<meta http-equiv="refresh" content="0; url=%[1]s">
<link rel="canonical" href="%[1]s">
</head><body><a href="%[1]s">%[1]s</a></body></html>
`, path.Clean(target))
	return os.WriteFile(filepath.Join(g.opts.OutputDir, "index.html"), []byte(html), 0o644)
}
