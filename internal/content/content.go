// Package content holds the book catalog: parts, chapters and the lookups
// used to navigate between them.
package content

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ziadkadry99/unseenbook/internal/i18n"
)

// Book is the catalog for a single language.
type Book struct {
	Title    string        `yaml:"title" json:"title"`
	Subtitle string        `yaml:"subtitle" json:"subtitle"`
	Language i18n.Language `yaml:"-" json:"language"`
	Parts    []Part        `yaml:"parts" json:"parts"`
}

// Part is a top-level grouping of chapters.
type Part struct {
	ID          int       `yaml:"id" json:"id"`
	Title       string    `yaml:"title" json:"title"`
	Description string    `yaml:"description" json:"description"`
	Chapters    []Chapter `yaml:"chapters" json:"chapters"`
}

// Chapter is a readable unit. Content is Markdown; an empty body means the
// chapter has not been written yet.
type Chapter struct {
	ID       int      `yaml:"id" json:"id"`
	Title    string   `yaml:"title" json:"title"`
	Sections []string `yaml:"sections" json:"sections"`
	ReadTime string   `yaml:"read_time" json:"read_time"`
	Content  string   `yaml:"content" json:"content,omitempty"`
}

// HasContent reports whether the chapter has an authored body.
func (c Chapter) HasContent() bool {
	return strings.TrimSpace(c.Content) != ""
}

// PartChapter is a chapter together with the id of the part declaring it.
type PartChapter struct {
	Chapter
	PartID int `json:"part_id"`
}

// PartByID returns the part with the given id.
func (b *Book) PartByID(id int) (Part, bool) {
	for _, p := range b.Parts {
		if p.ID == id {
			return p, true
		}
	}
	return Part{}, false
}

// ChapterByID returns the first chapter with the given id, scanning parts in
// declaration order.
func (b *Book) ChapterByID(id int) (PartChapter, bool) {
	for _, p := range b.Parts {
		for _, c := range p.Chapters {
			if c.ID == id {
				return PartChapter{Chapter: c, PartID: p.ID}, true
			}
		}
	}
	return PartChapter{}, false
}

// AllChapters returns every chapter in reading order: parts in declaration
// order, then chapters in declaration order within each part.
func (b *Book) AllChapters() []PartChapter {
	n := 0
	for _, p := range b.Parts {
		n += len(p.Chapters)
	}
	all := make([]PartChapter, 0, n)
	for _, p := range b.Parts {
		for _, c := range p.Chapters {
			all = append(all, PartChapter{Chapter: c, PartID: p.ID})
		}
	}
	return all
}

// NextChapter returns the chapter after id in reading order.
func (b *Book) NextChapter(id int) (PartChapter, bool) {
	all := b.AllChapters()
	i := indexOf(all, id)
	if i < 0 || i+1 >= len(all) {
		return PartChapter{}, false
	}
	return all[i+1], true
}

// PreviousChapter returns the chapter before id in reading order.
func (b *Book) PreviousChapter(id int) (PartChapter, bool) {
	all := b.AllChapters()
	i := indexOf(all, id)
	if i <= 0 {
		return PartChapter{}, false
	}
	return all[i-1], true
}

func indexOf(all []PartChapter, id int) int {
	for i, c := range all {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Validate reports duplicate part ids and duplicate chapter ids. Lookups
// still work on a book that fails validation; the first match wins.
func (b *Book) Validate() error {
	var errs []error
	parts := make(map[int]bool)
	chapters := make(map[int]int)
	for _, p := range b.Parts {
		if parts[p.ID] {
			errs = append(errs, fmt.Errorf("duplicate part id %d", p.ID))
		}
		parts[p.ID] = true
		for _, c := range p.Chapters {
			if owner, ok := chapters[c.ID]; ok {
				errs = append(errs, fmt.Errorf("duplicate chapter id %d in parts %d and %d", c.ID, owner, p.ID))
				continue
			}
			chapters[c.ID] = p.ID
		}
	}
	return errors.Join(errs...)
}

// ParseID converts an externally supplied id (URL parameter, CLI argument)
// to an integer.
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}
