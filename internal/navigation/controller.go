package navigation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ziadkadry99/unseenbook/internal/content"
	"github.com/ziadkadry99/unseenbook/internal/i18n"
	"github.com/ziadkadry99/unseenbook/internal/prefs"
	"github.com/ziadkadry99/unseenbook/internal/view"
)

// Regions an Update can target. RegionDocument replaces the whole page.
const (
	RegionMain     = view.RegionMain
	RegionModal    = view.RegionModal
	RegionDocument = "document"
)

// Update tells the browser to replace one region of the page.
type Update struct {
	Type   string `json:"type"`
	Region string `json:"region"`
	HTML   string `json:"html"`
	Title  string `json:"title,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Books loads the book for a language. *content.Catalog implements it.
type Books interface {
	Book(ctx context.Context, lang i18n.Language) (*content.Book, error)
}

// Reader is the per-reader input to a dispatch.
type Reader struct {
	ID    string
	State State
	Prefs prefs.Preferences
}

// Result is the outcome of a dispatch.
type Result struct {
	State   State
	Prefs   prefs.Preferences
	Updates []Update
}

// Controller turns reader actions into rendered region updates.
type Controller struct {
	books  Books
	views  *view.Renderer
	store  prefs.Store
	links  view.Linker
	logger *zap.Logger
}

// NewController creates a Controller. Links defaults to server URLs.
func NewController(books Books, views *view.Renderer, store prefs.Store, links view.Linker, logger *zap.Logger) *Controller {
	if links == nil {
		links = view.ServerLinks{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{books: books, views: views, store: store, links: links, logger: logger}
}

func (c *Controller) env(p prefs.Preferences) view.Env {
	return view.Env{Prefs: p, Links: c.links}
}

// Dispatch applies an action for a reader. Invalid transitions return
// ErrInvalidTransition with the reader's state unchanged. Load failures do
// not return an error; they open the load error notice instead. Dispatch
// saves nothing; pass an applied result to Commit.
func (c *Controller) Dispatch(ctx context.Context, r Reader, a Action) (Result, error) {
	next, err := r.State.Apply(a)
	if err != nil {
		return Result{State: r.State, Prefs: r.Prefs}, err
	}
	res := Result{State: next, Prefs: r.Prefs}

	if r.State.ErrorOpen && a.Name == ActionClose {
		res.Updates = []Update{region(RegionModal, "", "", "")}
		return res, nil
	}

	switch a.Name {
	case ActionSync:
		return res, nil
	case ActionToggleLanguage, ActionToggleTheme:
		return c.toggle(ctx, r, a, res)
	}

	book, err := c.books.Book(ctx, r.Prefs.Language)
	if err != nil {
		return c.loadFailed(ctx, r, res, err)
	}
	env := c.env(r.Prefs)

	switch a.Name {
	case ActionShowPart:
		part, ok := book.PartByID(next.PartID)
		if !ok {
			c.logger.Warn("part not found", zap.Int("part_id", next.PartID))
			return c.loadFailed(ctx, r, res, fmt.Errorf("part %d not found", next.PartID))
		}
		html, err := c.views.PartModal(env, book, part)
		if err != nil {
			return Result{State: r.State, Prefs: r.Prefs}, err
		}
		res.Updates = []Update{region(RegionModal, string(html), part.Title+" · "+book.Title, env.PartURL(part.ID))}

	case ActionClose, ActionBack:
		if r.State.View == PartModal {
			res.Updates = []Update{region(RegionModal, "", book.Title, env.HomeURL())}
			break
		}
		page, err := c.views.Home(env, book)
		if err != nil {
			return Result{State: r.State, Prefs: r.Prefs}, err
		}
		res.Updates = []Update{
			region(RegionMain, string(page.Main), page.Title, env.HomeURL()),
			region(RegionModal, "", "", ""),
		}

	case ActionSelectChapter, ActionPrev, ActionNext:
		ch, ok := c.resolveChapter(book, r.State, next, a)
		if !ok && a.Name == ActionSelectChapter {
			page, err := c.views.NotFound(env)
			if err != nil {
				return Result{State: r.State, Prefs: r.Prefs}, err
			}
			res.Updates = []Update{
				region(RegionMain, string(page.Main), page.Title, env.ChapterURL(next.ChapterID)),
				region(RegionModal, "", "", ""),
			}
			break
		}
		if !ok {
			// Nothing before the first or after the last chapter.
			return Result{State: r.State, Prefs: r.Prefs}, nil
		}
		next.ChapterID, next.PartID = ch.ID, ch.PartID
		res.State = next
		page, err := c.views.Chapter(env, book, ch)
		if err != nil {
			return Result{State: r.State, Prefs: r.Prefs}, err
		}
		res.Updates = []Update{
			region(RegionMain, string(page.Main), page.Title, env.ChapterURL(ch.ID)),
			region(RegionModal, "", "", ""),
		}
	}
	return res, nil
}

// resolveChapter finds the chapter an action opens.
func (c *Controller) resolveChapter(book *content.Book, cur, next State, a Action) (content.PartChapter, bool) {
	switch a.Name {
	case ActionPrev:
		return book.PreviousChapter(cur.ChapterID)
	case ActionNext:
		return book.NextChapter(cur.ChapterID)
	}
	return book.ChapterByID(next.ChapterID)
}

func (c *Controller) loadFailed(ctx context.Context, r Reader, res Result, cause error) (Result, error) {
	if ctx.Err() != nil {
		return Result{State: r.State, Prefs: r.Prefs}, ctx.Err()
	}
	c.logger.Warn("navigation load failed", zap.String("reader", r.ID), zap.Error(cause))
	html, err := c.views.ErrorModal(c.env(r.Prefs))
	if err != nil {
		return Result{State: r.State, Prefs: r.Prefs}, err
	}
	// Stay where the reader was; only the notice opens.
	res.State = r.State
	res.State.ErrorOpen = true
	res.Updates = []Update{region(RegionModal, string(html), "", "")}
	return res, nil
}

// toggle flips a preference and re-renders the page in it. The new value is
// only saved by Commit.
func (c *Controller) toggle(ctx context.Context, r Reader, a Action, res Result) (Result, error) {
	p := r.Prefs.ToggleTheme()
	if a.Name == ActionToggleLanguage {
		p = r.Prefs.ToggleLanguage()
	}
	res.Prefs = p
	res.State.ErrorOpen = false

	page, _, err := c.Page(ctx, res.State, p)
	if err != nil {
		return Result{State: r.State, Prefs: r.Prefs}, err
	}
	html, err := c.views.DocumentString(c.env(p), page)
	if err != nil {
		return Result{State: r.State, Prefs: r.Prefs}, err
	}
	res.Updates = []Update{region(RegionDocument, html, page.Title, c.links.Page(page.Ref))}
	return res, nil
}

// Commit saves the preferences a dispatch changed. Call it once the result
// is known to be applied.
func (c *Controller) Commit(ctx context.Context, r Reader, res Result) error {
	if res.Prefs == r.Prefs {
		return nil
	}
	if err := c.store.Save(ctx, r.ID, res.Prefs); err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}
	return nil
}

// Page renders the complete page for a state. found is false when the
// state names a part or chapter the book does not have; the returned page
// is then the not found page. A book that cannot be loaded yields the home
// page with the load error notice open.
func (c *Controller) Page(ctx context.Context, st State, p prefs.Preferences) (page view.Page, found bool, err error) {
	env := c.env(p)
	book, err := c.books.Book(ctx, p.Language)
	if err != nil {
		if ctx.Err() != nil {
			return view.Page{}, false, ctx.Err()
		}
		c.logger.Warn("page load failed", zap.Error(err))
		modal, merr := c.views.ErrorModal(env)
		if merr != nil {
			return view.Page{}, false, merr
		}
		return view.Page{Ref: view.PageRef{Kind: view.HomePage}, Title: i18n.T(p.Language).Get("brand"), Modal: modal}, true, nil
	}

	switch st.View {
	case PartModal:
		part, ok := book.PartByID(st.PartID)
		if !ok {
			page, err = c.views.NotFound(env)
			return page, false, err
		}
		page, err = c.views.HomeWithPart(env, book, part)
		return page, true, err
	case ChapterView:
		ch, ok := book.ChapterByID(st.ChapterID)
		if !ok {
			page, err = c.views.NotFound(env)
			return page, false, err
		}
		page, err = c.views.Chapter(env, book, ch)
		return page, true, err
	}
	page, err = c.views.Home(env, book)
	return page, true, err
}

func region(name, html, title, url string) Update {
	return Update{Type: "update", Region: name, HTML: html, Title: title, URL: url}
}
