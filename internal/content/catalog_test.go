package content

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ziadkadry99/unseenbook/internal/i18n"
)

// flakySource fails the first n loads.
type flakySource struct {
	failures int32
	calls    atomic.Int32
	inner    Source
}

func (f *flakySource) Load(ctx context.Context, lang i18n.Language) (*Book, error) {
	n := f.calls.Add(1)
	if n <= f.failures {
		return nil, errors.New("temporarily unavailable")
	}
	return f.inner.Load(ctx, lang)
}

func fastRetry() CatalogConfig {
	return CatalogConfig{Retry: Retry{Attempts: 3, Delay: time.Millisecond}}
}

func TestCatalogRetriesThenSucceeds(t *testing.T) {
	src := &flakySource{failures: 2, inner: Embedded()}
	c := NewCatalog(src, fastRetry(), nil)

	b, err := c.Book(context.Background(), i18n.English)
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if b.Title == "" {
		t.Error("expected a loaded book")
	}
	if got := src.calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}

	// Cached afterwards.
	if _, err := c.Book(context.Background(), i18n.English); err != nil {
		t.Fatalf("second Book: %v", err)
	}
	if got := src.calls.Load(); got != 3 {
		t.Errorf("calls after cache hit = %d, want 3", got)
	}
}

func TestCatalogGivesUpAfterThreeAttempts(t *testing.T) {
	src := &flakySource{failures: 100, inner: Embedded()}
	c := NewCatalog(src, fastRetry(), nil)

	_, err := c.Book(context.Background(), i18n.English)
	if !errors.Is(err, ErrLoad) {
		t.Fatalf("err = %v, want ErrLoad", err)
	}
	if got := src.calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestCatalogCancelStopsRetry(t *testing.T) {
	src := &flakySource{failures: 100, inner: Embedded()}
	c := NewCatalog(src, CatalogConfig{Retry: Retry{Attempts: 3, Delay: time.Hour}}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := c.Book(ctx, i18n.English)
		done <- err
	}()

	deadline := time.Now().Add(2 * time.Second)
	for src.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("cancel did not stop the retry wait")
	}
	if got := src.calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestCatalogConcurrentLoadsShared(t *testing.T) {
	src := &flakySource{inner: Embedded()}
	c := NewCatalog(src, fastRetry(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Book(context.Background(), i18n.Arabic); err != nil {
				t.Errorf("Book: %v", err)
			}
		}()
	}
	wg.Wait()
	if got := src.calls.Load(); got > 8 || got < 1 {
		t.Errorf("calls = %d", got)
	}
}

func TestCatalogStrictIDs(t *testing.T) {
	dup := &staticSource{book: &Book{Parts: []Part{
		{ID: 1, Chapters: []Chapter{{ID: 1}}},
		{ID: 2, Chapters: []Chapter{{ID: 1}}},
	}}}

	lenient := NewCatalog(dup, fastRetry(), nil)
	if _, err := lenient.Book(context.Background(), i18n.English); err != nil {
		t.Errorf("lenient catalog should load duplicates: %v", err)
	}

	cfg := fastRetry()
	cfg.StrictIDs = true
	strict := NewCatalog(dup, cfg, nil)
	if _, err := strict.Book(context.Background(), i18n.English); !errors.Is(err, ErrLoad) {
		t.Errorf("strict err = %v, want ErrLoad", err)
	}
}

func TestCatalogUnknownLanguageNotRetried(t *testing.T) {
	src := &flakySource{inner: NewFSSource(testFS(), nil)}
	c := NewCatalog(src, fastRetry(), nil)
	_, err := c.Book(context.Background(), i18n.Arabic)
	if !errors.Is(err, ErrUnknownLanguage) {
		t.Fatalf("err = %v, want ErrUnknownLanguage", err)
	}
	if got := src.calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

type staticSource struct{ book *Book }

func (s *staticSource) Load(_ context.Context, lang i18n.Language) (*Book, error) {
	b := *s.book
	b.Language = lang
	return &b, nil
}
