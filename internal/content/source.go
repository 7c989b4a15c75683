package content

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/ziadkadry99/unseenbook/internal/i18n"
)

//go:embed books
var embedded embed.FS

// ErrUnknownLanguage is returned when a language has no catalog.
var ErrUnknownLanguage = errors.New("unknown language")

// Source loads the book for a language.
type Source interface {
	Load(ctx context.Context, lang i18n.Language) (*Book, error)
}

// FSSource reads books from a filesystem laid out as
//
//	<lang>/book.yaml
//	<lang>/chapters/**/chapter<ID>.md
//
// Chapter bodies found under chapters/ fill in any chapter whose book.yaml
// entry has no inline content.
type FSSource struct {
	fsys    fs.FS
	include []string
}

// NewFSSource returns a Source over fsys. Include patterns restrict which
// chapter files are registered; an empty list registers every chapter file.
func NewFSSource(fsys fs.FS, include []string) *FSSource {
	return &FSSource{fsys: fsys, include: include}
}

// Embedded returns a Source over the books compiled into the binary.
func Embedded() *FSSource {
	sub, err := fs.Sub(embedded, "books")
	if err != nil {
		panic(err)
	}
	return NewFSSource(sub, nil)
}

// Load reads and assembles the book for lang.
func (s *FSSource) Load(ctx context.Context, lang i18n.Language) (*Book, error) {
	if !lang.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(s.fsys, path.Join(string(lang), "book.yaml"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: no book.yaml for %q", ErrUnknownLanguage, lang)
		}
		return nil, fmt.Errorf("reading book.yaml for %s: %w", lang, err)
	}

	var book Book
	if err := yaml.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("parsing book.yaml for %s: %w", lang, err)
	}
	book.Language = lang

	registry, err := s.Registry(lang)
	if err != nil {
		return nil, err
	}
	for pi := range book.Parts {
		chapters := book.Parts[pi].Chapters
		for ci := range chapters {
			if chapters[ci].HasContent() {
				continue
			}
			if file, ok := registry[chapters[ci].ID]; ok {
				body, err := fs.ReadFile(s.fsys, file)
				if err != nil {
					return nil, fmt.Errorf("reading chapter %d: %w", chapters[ci].ID, err)
				}
				chapters[ci].Content = string(body)
			}
		}
	}
	return &book, nil
}

// Registry maps chapter ids to the files holding their bodies for lang.
// When two files claim the same id the first in lexical order wins.
func (s *FSSource) Registry(lang i18n.Language) (map[int]string, error) {
	root := path.Join(string(lang), "chapters")
	matches, err := doublestar.Glob(s.fsys, root+"/**/chapter*.md")
	if err != nil {
		return nil, fmt.Errorf("scanning chapters for %s: %w", lang, err)
	}
	sort.Strings(matches)

	registry := make(map[int]string, len(matches))
	for _, m := range matches {
		rel := strings.TrimPrefix(m, root+"/")
		if !s.included(rel) {
			continue
		}
		id, ok := chapterIDFromName(path.Base(m))
		if !ok {
			continue
		}
		if _, dup := registry[id]; !dup {
			registry[id] = m
		}
	}
	return registry, nil
}

func (s *FSSource) included(rel string) bool {
	if len(s.include) == 0 {
		return true
	}
	for _, pattern := range s.include {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, path.Base(rel)); err == nil && ok {
			return true
		}
	}
	return false
}

// chapterIDFromName extracts 12 from "chapter12.md".
func chapterIDFromName(name string) (int, bool) {
	digits := strings.TrimSuffix(strings.TrimPrefix(name, "chapter"), ".md")
	id, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return id, true
}
