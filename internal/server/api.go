package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/unseenbook/internal/content"
	"github.com/ziadkadry99/unseenbook/internal/i18n"
	"github.com/ziadkadry99/unseenbook/internal/prefs"
)

// registerAPI mounts the JSON endpoints under /api.
func registerAPI(r chi.Router, s *Server) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/preferences", s.handleGetPreferences)
		r.Put("/preferences", s.handlePutPreferences)
		r.Get("/book", s.handleBook)
		r.Get("/parts/{partID}", s.handleAPIPart)
		r.Get("/chapters", s.handleChapters)
		r.Get("/chapters/{chapterID}", s.handleAPIChapter)
		r.Get("/chapters/{chapterID}/next", s.handleAdjacent(true))
		r.Get("/chapters/{chapterID}/previous", s.handleAdjacent(false))
	})
}

type chapterSummary struct {
	ID         int      `json:"id"`
	PartID     int      `json:"part_id"`
	Title      string   `json:"title"`
	Sections   []string `json:"sections"`
	ReadTime   string   `json:"read_time"`
	HasContent bool     `json:"has_content"`
}

type partSummary struct {
	ID          int              `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Chapters    []chapterSummary `json:"chapters"`
}

type bookSummary struct {
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle"`
	Language i18n.Language `json:"language"`
	Parts    []partSummary `json:"parts"`
}

type chapterDetail struct {
	chapterSummary
	Content string `json:"content"`
	HTML    string `json:"html,omitempty"`
}

func summarizeChapter(ch content.PartChapter) chapterSummary {
	return chapterSummary{
		ID:         ch.ID,
		PartID:     ch.PartID,
		Title:      ch.Title,
		Sections:   ch.Sections,
		ReadTime:   ch.ReadTime,
		HasContent: ch.HasContent(),
	}
}

func summarizePart(p content.Part) partSummary {
	out := partSummary{ID: p.ID, Title: p.Title, Description: p.Description, Chapters: make([]chapterSummary, 0, len(p.Chapters))}
	for _, c := range p.Chapters {
		out.Chapters = append(out.Chapters, summarizeChapter(content.PartChapter{Chapter: c, PartID: p.ID}))
	}
	return out
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, readerFrom(r.Context()).Prefs)
}

type preferencesUpdate struct {
	Language *string `json:"language"`
	Theme    *string `json:"theme"`
}

func (s *Server) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	rd := readerFrom(r.Context())

	var req preferencesUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	p := rd.Prefs
	var err error
	if req.Language != nil {
		if p, err = p.With(prefs.KeyLanguage, *req.Language); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Theme != nil {
		if p, err = p.With(prefs.KeyTheme, *req.Theme); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if p != rd.Prefs {
		if err := s.store.Save(r.Context(), rd.ID, p); err != nil {
			s.logger.Error("saving preferences", zap.String("reader", rd.ID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "could not save preferences")
			return
		}
	}
	writeJSON(w, http.StatusOK, p)
}

// book loads the catalog in the reader's language, or the one named by the
// lang query parameter.
func (s *Server) book(w http.ResponseWriter, r *http.Request) (*content.Book, bool) {
	lang := readerFrom(r.Context()).Prefs.Language
	if v := r.URL.Query().Get("lang"); v != "" {
		l, err := i18n.ParseLanguage(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return nil, false
		}
		lang = l
	}

	book, err := s.books.Book(r.Context(), lang)
	if err != nil {
		s.logger.Error("loading book", zap.String("lang", string(lang)), zap.Error(err))
		status := http.StatusServiceUnavailable
		if errors.Is(err, content.ErrUnknownLanguage) {
			status = http.StatusNotFound
		}
		writeError(w, status, "could not load the book")
		return nil, false
	}
	return book, true
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	book, ok := s.book(w, r)
	if !ok {
		return
	}
	out := bookSummary{Title: book.Title, Subtitle: book.Subtitle, Language: book.Language, Parts: make([]partSummary, 0, len(book.Parts))}
	for _, p := range book.Parts {
		out.Parts = append(out.Parts, summarizePart(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAPIPart(w http.ResponseWriter, r *http.Request) {
	id, err := content.ParseID(chi.URLParam(r, "partID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	book, ok := s.book(w, r)
	if !ok {
		return
	}
	part, found := book.PartByID(id)
	if !found {
		writeError(w, http.StatusNotFound, "part not found")
		return
	}
	writeJSON(w, http.StatusOK, summarizePart(part))
}

func (s *Server) handleChapters(w http.ResponseWriter, r *http.Request) {
	book, ok := s.book(w, r)
	if !ok {
		return
	}
	all := book.AllChapters()
	out := make([]chapterSummary, 0, len(all))
	for _, ch := range all {
		out = append(out, summarizeChapter(ch))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAPIChapter(w http.ResponseWriter, r *http.Request) {
	id, err := content.ParseID(chi.URLParam(r, "chapterID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	book, ok := s.book(w, r)
	if !ok {
		return
	}
	ch, found := book.ChapterByID(id)
	if !found {
		writeError(w, http.StatusNotFound, "chapter not found")
		return
	}
	s.writeChapter(w, r, ch)
}

func (s *Server) handleAdjacent(forward bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := content.ParseID(chi.URLParam(r, "chapterID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		book, ok := s.book(w, r)
		if !ok {
			return
		}
		if _, found := book.ChapterByID(id); !found {
			writeError(w, http.StatusNotFound, "chapter not found")
			return
		}

		var ch content.PartChapter
		var exists bool
		if forward {
			ch, exists = book.NextChapter(id)
		} else {
			ch, exists = book.PreviousChapter(id)
		}
		if !exists {
			writeError(w, http.StatusNotFound, "no adjacent chapter")
			return
		}
		writeJSON(w, http.StatusOK, summarizeChapter(ch))
	}
}

// writeChapter includes the rendered body when format=html is requested.
func (s *Server) writeChapter(w http.ResponseWriter, r *http.Request, ch content.PartChapter) {
	out := chapterDetail{chapterSummary: summarizeChapter(ch), Content: ch.Content}
	if r.URL.Query().Get("format") == "html" {
		out.HTML = s.md.Render(ch.Content, readerFrom(r.Context()).Prefs.Theme)
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
