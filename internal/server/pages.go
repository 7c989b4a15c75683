package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/unseenbook/internal/content"
	"github.com/ziadkadry99/unseenbook/internal/navigation"
	"github.com/ziadkadry99/unseenbook/internal/prefs"
	"github.com/ziadkadry99/unseenbook/internal/view"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, navigation.State{View: navigation.Home})
}

func (s *Server) handlePart(w http.ResponseWriter, r *http.Request) {
	id, err := content.ParseID(chi.URLParam(r, "partID"))
	if err != nil {
		s.renderNotFound(w, r)
		return
	}
	s.renderPage(w, r, navigation.State{View: navigation.PartModal, PartID: id})
}

func (s *Server) handleChapter(w http.ResponseWriter, r *http.Request) {
	id, err := content.ParseID(chi.URLParam(r, "chapterID"))
	if err != nil {
		s.renderNotFound(w, r)
		return
	}
	s.renderPage(w, r, navigation.State{View: navigation.ChapterView, ChapterID: id})
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, st navigation.State) {
	rd := readerFrom(r.Context())
	page, found, err := s.nav.Page(r.Context(), st, rd.Prefs)
	if err != nil {
		s.logger.Error("rendering page", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	status := http.StatusOK
	if !found {
		status = http.StatusNotFound
	}
	s.writeDocument(w, status, rd.Prefs, page)
}

func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request) {
	rd := readerFrom(r.Context())
	page, err := s.views.NotFound(s.env(rd.Prefs))
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	s.writeDocument(w, http.StatusNotFound, rd.Prefs, page)
}

func (s *Server) writeDocument(w http.ResponseWriter, status int, p prefs.Preferences, page view.Page) {
	html, err := s.views.DocumentString(s.env(p), page)
	if err != nil {
		s.logger.Error("rendering document", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(html))
}

func (s *Server) env(p prefs.Preferences) view.Env {
	return view.Env{Prefs: p, Links: view.ServerLinks{}}
}

// handleToggle flips the language or theme and sends the reader back to
// the page they were on.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	rd := readerFrom(r.Context())

	var err error
	switch chi.URLParam(r, "name") {
	case "language":
		_, err = prefs.ToggleLanguage(r.Context(), s.store, rd.ID)
	case "theme":
		_, err = prefs.ToggleTheme(r.Context(), s.store, rd.ID)
	default:
		http.Error(w, "unknown preference", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("toggling preference", zap.String("reader", rd.ID), zap.Error(err))
		http.Error(w, "could not save preference", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, safeBack(r.FormValue("back")), http.StatusSeeOther)
}

// safeBack only allows returning to a local path.
func safeBack(back string) string {
	if !strings.HasPrefix(back, "/") || strings.HasPrefix(back, "//") || strings.HasPrefix(back, "/\\") {
		return "/"
	}
	return back
}
