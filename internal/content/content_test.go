package content

import (
	"context"
	"testing"

	"github.com/ziadkadry99/unseenbook/internal/i18n"
)

func loadEmbedded(t *testing.T, lang i18n.Language) *Book {
	t.Helper()
	b, err := Embedded().Load(context.Background(), lang)
	if err != nil {
		t.Fatalf("Load(%s): %v", lang, err)
	}
	return b
}

func TestPartByID(t *testing.T) {
	b := loadEmbedded(t, i18n.English)

	p, ok := b.PartByID(1)
	if !ok {
		t.Fatal("PartByID(1) not found")
	}
	if p.Title != "The Core Mechanics of Flutter" {
		t.Errorf("PartByID(1).Title = %q, want %q", p.Title, "The Core Mechanics of Flutter")
	}
	if _, ok := b.PartByID(42); ok {
		t.Error("PartByID(42) should not be found")
	}
}

func TestChapterByIDCarriesPartID(t *testing.T) {
	for _, lang := range i18n.Languages {
		b := loadEmbedded(t, lang)
		for _, p := range b.Parts {
			for _, c := range p.Chapters {
				got, ok := b.ChapterByID(c.ID)
				if !ok {
					t.Errorf("%s: ChapterByID(%d) not found", lang, c.ID)
					continue
				}
				if got.PartID != p.ID {
					t.Errorf("%s: ChapterByID(%d).PartID = %d, want %d", lang, c.ID, got.PartID, p.ID)
				}
			}
		}
	}
}

func TestChapterByIDMissing(t *testing.T) {
	b := loadEmbedded(t, i18n.English)
	if _, ok := b.ChapterByID(99999); ok {
		t.Error("ChapterByID(99999) should not be found")
	}
}

func TestArabicChapterTitle(t *testing.T) {
	b := loadEmbedded(t, i18n.Arabic)
	c, ok := b.ChapterByID(1)
	if !ok {
		t.Fatal("arabic chapter 1 not found")
	}
	want := "ما وراء الـ Widget: فهم الأشجار الثلاث لـ Flutter"
	if c.Title != want {
		t.Errorf("Title = %q, want %q", c.Title, want)
	}
	if b.Language != i18n.Arabic {
		t.Errorf("Language = %q, want ar", b.Language)
	}
}

func TestAllChaptersOrder(t *testing.T) {
	b := loadEmbedded(t, i18n.English)
	all := b.AllChapters()

	total := 0
	for _, p := range b.Parts {
		total += len(p.Chapters)
	}
	if len(all) != total {
		t.Fatalf("len(AllChapters()) = %d, want %d", len(all), total)
	}
	if len(all) != 20 {
		t.Errorf("english book has %d chapters, want 20", len(all))
	}

	// Part 3 declares 18, 20, 19; declaration order is reading order.
	tail := []int{all[len(all)-3].ID, all[len(all)-2].ID, all[len(all)-1].ID}
	want := []int{18, 20, 19}
	for i := range want {
		if tail[i] != want[i] {
			t.Errorf("tail[%d] = %d, want %d", i, tail[i], want[i])
		}
	}

	again := b.AllChapters()
	for i := range all {
		if all[i].ID != again[i].ID || all[i].PartID != again[i].PartID {
			t.Fatalf("AllChapters not stable at %d", i)
		}
	}
	again[0].Title = "mutated"
	if b.AllChapters()[0].Title == "mutated" {
		t.Error("AllChapters should return a fresh slice")
	}
}

func TestNextPrevious(t *testing.T) {
	for _, lang := range i18n.Languages {
		b := loadEmbedded(t, lang)
		all := b.AllChapters()
		for i, c := range all {
			next, ok := b.NextChapter(c.ID)
			if i == len(all)-1 {
				if ok {
					t.Errorf("%s: NextChapter(last) = %d, want none", lang, next.ID)
				}
			} else if !ok || next.ID != all[i+1].ID {
				t.Errorf("%s: NextChapter(%d) = %d/%v, want %d", lang, c.ID, next.ID, ok, all[i+1].ID)
			}

			prev, ok := b.PreviousChapter(c.ID)
			if i == 0 {
				if ok {
					t.Errorf("%s: PreviousChapter(first) = %d, want none", lang, prev.ID)
				}
			} else if !ok || prev.ID != all[i-1].ID {
				t.Errorf("%s: PreviousChapter(%d) = %d/%v, want %d", lang, c.ID, prev.ID, ok, all[i-1].ID)
			}
		}
	}
}

func TestNextCrossesParts(t *testing.T) {
	b := loadEmbedded(t, i18n.English)
	next, ok := b.NextChapter(10)
	if !ok || next.ID != 11 || next.PartID != 2 {
		t.Errorf("NextChapter(10) = %+v/%v, want chapter 11 of part 2", next.ID, ok)
	}
	if _, ok := b.NextChapter(99999); ok {
		t.Error("NextChapter(unknown) should not be found")
	}
	if _, ok := b.PreviousChapter(99999); ok {
		t.Error("PreviousChapter(unknown) should not be found")
	}
}

func TestValidate(t *testing.T) {
	b := &Book{Parts: []Part{
		{ID: 1, Chapters: []Chapter{{ID: 1}, {ID: 2}}},
		{ID: 1, Chapters: []Chapter{{ID: 2}}},
	}}
	if err := b.Validate(); err == nil {
		t.Fatal("expected duplicate id error")
	}
	if err := loadEmbedded(t, i18n.English).Validate(); err != nil {
		t.Errorf("embedded english book invalid: %v", err)
	}

	c, ok := b.ChapterByID(2)
	if !ok || c.PartID != 1 {
		t.Errorf("duplicate id lookup should return the first match, got part %d", c.PartID)
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"12", 12, false},
		{" 3 ", 3, false},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseID(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
