package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/ziadkadry99/unseenbook/internal/content"
	"github.com/ziadkadry99/unseenbook/internal/i18n"
)

// book loads the catalog for the request's locale. On failure it returns a
// tool error result for the caller to pass back.
func (s *Server) book(ctx context.Context, request mcp.CallToolRequest) (*content.Book, *mcp.CallToolResult) {
	lang, err := i18n.ParseLanguage(request.GetString("locale", string(i18n.DefaultLanguage)))
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("unsupported locale: %v", err))
	}
	book, err := s.books.Book(ctx, lang)
	if err != nil {
		s.logger.Warn("mcp: loading book", zap.String("lang", string(lang)), zap.Error(err))
		if errors.Is(err, content.ErrUnknownLanguage) {
			return nil, mcp.NewToolResultError(fmt.Sprintf("no book available in %s", lang))
		}
		return nil, mcp.NewToolResultError(fmt.Sprintf("failed to load the book: %v", err))
	}
	return book, nil
}

// handleListParts lists every part with its chapters.
func (s *Server) handleListParts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	book, errResult := s.book(ctx, request)
	if errResult != nil {
		return errResult, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n", book.Title, book.Subtitle)
	for _, p := range book.Parts {
		fmt.Fprintf(&b, "\n## Part %d: %s\n\n", p.ID, p.Title)
		for _, c := range p.Chapters {
			writeChapterLine(&b, c)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}

// handleGetPart describes one part.
func (s *Server) handleGetPart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireInt("part_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: part_id"), nil
	}
	book, errResult := s.book(ctx, request)
	if errResult != nil {
		return errResult, nil
	}

	part, ok := book.PartByID(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("part %d not found", id)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Part %d: %s\n\n%s\n\n", part.ID, part.Title, part.Description)
	for _, c := range part.Chapters {
		writeChapterLine(&b, c)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// handleReadChapter returns a chapter body as Markdown or rendered HTML.
func (s *Server) handleReadChapter(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireInt("chapter_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: chapter_id"), nil
	}
	format := request.GetString("format", "markdown")
	if format != "markdown" && format != "html" {
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q", format)), nil
	}
	book, errResult := s.book(ctx, request)
	if errResult != nil {
		return errResult, nil
	}

	ch, ok := book.ChapterByID(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("chapter %d not found", id)), nil
	}
	if !ch.HasContent() {
		t := i18n.T(book.Language)
		return mcp.NewToolResultText(fmt.Sprintf("# %s\n\n%s: %s",
			ch.Title, t.Get("coming_soon"), t.Format("coming_soon.body", ch.ID, ch.PartID))), nil
	}

	if format == "html" {
		return mcp.NewToolResultText(s.md.Render(ch.Content, s.theme)), nil
	}

	var b strings.Builder
	writeChapterHeader(&b, ch)
	b.WriteString(ch.Content)
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleNextChapter(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.adjacent(ctx, request, true)
}

func (s *Server) handlePreviousChapter(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.adjacent(ctx, request, false)
}

func (s *Server) adjacent(ctx context.Context, request mcp.CallToolRequest, forward bool) (*mcp.CallToolResult, error) {
	id, err := request.RequireInt("chapter_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: chapter_id"), nil
	}
	book, errResult := s.book(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	if _, ok := book.ChapterByID(id); !ok {
		return mcp.NewToolResultError(fmt.Sprintf("chapter %d not found", id)), nil
	}

	var (
		ch content.PartChapter
		ok bool
	)
	if forward {
		ch, ok = book.NextChapter(id)
	} else {
		ch, ok = book.PreviousChapter(id)
	}
	if !ok {
		if forward {
			return mcp.NewToolResultText(fmt.Sprintf("Chapter %d is the last chapter.", id)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Chapter %d is the first chapter.", id)), nil
	}

	var b strings.Builder
	writeChapterHeader(&b, ch)
	return mcp.NewToolResultText(b.String()), nil
}

// handleSearchBook finds chapters mentioning a phrase.
func (s *Server) handleSearchBook(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil || strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}
	book, errResult := s.book(ctx, request)
	if errResult != nil {
		return errResult, nil
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	var b strings.Builder
	found := 0
	for _, ch := range book.AllChapters() {
		if found == limit {
			break
		}
		if !mentions(ch, needle) {
			continue
		}
		found++
		fmt.Fprintf(&b, "- Chapter %d (Part %d): %s\n", ch.ID, ch.PartID, ch.Title)
	}
	if found == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No chapters mention %q.", query)), nil
	}
	return mcp.NewToolResultText(b.String()), nil
}

func mentions(ch content.PartChapter, needle string) bool {
	if strings.Contains(strings.ToLower(ch.Title), needle) {
		return true
	}
	for _, sec := range ch.Sections {
		if strings.Contains(strings.ToLower(sec), needle) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(ch.Content), needle)
}

func writeChapterLine(b *strings.Builder, c content.Chapter) {
	status := ""
	if !c.HasContent() {
		status = " (coming soon)"
	}
	fmt.Fprintf(b, "- Chapter %d: %s [%s]%s\n", c.ID, c.Title, c.ReadTime, status)
}

func writeChapterHeader(b *strings.Builder, ch content.PartChapter) {
	fmt.Fprintf(b, "# Chapter %d: %s\n\n", ch.ID, ch.Title)
	fmt.Fprintf(b, "**Part:** %d | **Reading time:** %s\n\n", ch.PartID, ch.ReadTime)
	if len(ch.Sections) > 0 {
		b.WriteString("**Sections:**\n")
		for _, sec := range ch.Sections {
			fmt.Fprintf(b, "- %s\n", sec)
		}
		b.WriteString("\n")
	}
}
