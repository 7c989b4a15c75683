package site

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/ziadkadry99/unseenbook/internal/content"
	"github.com/ziadkadry99/unseenbook/internal/markdown"
	"github.com/ziadkadry99/unseenbook/internal/theme"
	"github.com/ziadkadry99/unseenbook/internal/view"
)

// SearchEntry represents a single searchable chapter.
type SearchEntry struct {
	ChapterID int      `json:"chapter_id"`
	PartID    int      `json:"part_id"`
	Path      string   `json:"path"`
	Title     string   `json:"title"`
	Sections  []string `json:"sections,omitempty"`
	Headings  []string `json:"headings,omitempty"`
	Summary   string   `json:"summary,omitempty"`
}

// BuildSearchIndex lists every chapter of a book with its section titles
// and the second-level headings of its body. Paths are relative to the
// language directory and point at the light theme.
func BuildSearchIndex(book *content.Book) []SearchEntry {
	var entries []SearchEntry
	for _, ch := range book.AllChapters() {
		full := view.StaticPath(book.Language, theme.Light, view.PageRef{Kind: view.ChapterPage, ID: ch.ID})
		entry := SearchEntry{
			ChapterID: ch.ID,
			PartID:    ch.PartID,
			Path:      strings.TrimPrefix(full, string(book.Language)+"/"),
			Title:     ch.Title,
			Sections:  ch.Sections,
		}
		if ch.HasContent() {
			doc := markdown.Parse(ch.Content)
			entry.Headings = doc.Headings(2)
			entry.Summary = summarize(doc)
		}
		entries = append(entries, entry)
	}
	return entries
}

// summarize returns the first paragraph of a document, cut to 300 runes.
func summarize(doc markdown.Document) string {
	for _, b := range doc.Blocks {
		if p, ok := b.(markdown.Paragraph); ok {
			r := []rune(strings.TrimSpace(markdown.PlainText(p.Inlines)))
			if len(r) > 300 {
				r = r[:300]
			}
			return string(r)
		}
	}
	return ""
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
