package navigation

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ziadkadry99/unseenbook/internal/content"
	"github.com/ziadkadry99/unseenbook/internal/i18n"
	"github.com/ziadkadry99/unseenbook/internal/prefs"
	"github.com/ziadkadry99/unseenbook/internal/theme"
)

// stallingBooks blocks its first call until the caller's context ends.
type stallingBooks struct {
	embeddedBooks
	calls   atomic.Int32
	started chan struct{}
}

func (s *stallingBooks) Book(ctx context.Context, lang i18n.Language) (*content.Book, error) {
	if s.calls.Add(1) == 1 {
		close(s.started)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.embeddedBooks.Book(ctx, lang)
}

func TestSessionDropsSupersededAction(t *testing.T) {
	books := &stallingBooks{started: make(chan struct{})}
	c, _ := setupController(t, books)
	s := NewSession(c, "r1", State{View: Home}, prefs.Default())

	type outcome struct {
		updates []Update
		err     error
	}
	stale := make(chan outcome, 1)
	go func() {
		u, err := s.Dispatch(context.Background(), Action{Name: ActionShowPart, PartID: 1})
		stale <- outcome{u, err}
	}()

	select {
	case <-books.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first action never started loading")
	}

	updates, err := s.Dispatch(context.Background(), Action{Name: ActionShowPart, PartID: 2})
	if err != nil {
		t.Fatalf("newest action: %v", err)
	}
	if len(updates) != 1 || updates[0].URL != "/parts/2" {
		t.Errorf("updates = %+v", updates)
	}

	select {
	case got := <-stale:
		if !errors.Is(got.err, ErrSuperseded) {
			t.Errorf("stale action err = %v, want ErrSuperseded", got.err)
		}
		if got.updates != nil {
			t.Error("stale action must not return updates")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("stale action was not cancelled")
	}

	st, _ := s.State()
	if st != (State{View: PartModal, PartID: 2}) {
		t.Errorf("state = %+v", st)
	}
}

func TestSessionSupersededToggleSavesNothing(t *testing.T) {
	books := &stallingBooks{started: make(chan struct{})}
	c, store := setupController(t, books)
	s := NewSession(c, "r1", State{View: Home}, prefs.Default())

	stale := make(chan error, 1)
	go func() {
		_, err := s.Dispatch(context.Background(), Action{Name: ActionToggleTheme})
		stale <- err
	}()
	select {
	case <-books.started:
	case <-time.After(2 * time.Second):
		t.Fatal("toggle never started rendering")
	}

	if _, err := s.Dispatch(context.Background(), Action{Name: ActionShowPart, PartID: 1}); err != nil {
		t.Fatalf("newest action: %v", err)
	}
	if err := <-stale; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("toggle err = %v, want ErrSuperseded", err)
	}

	if _, ok, _ := store.Get(context.Background(), "r1", prefs.KeyTheme); ok {
		t.Error("a superseded toggle must not be saved")
	}
	if _, p := s.State(); p.Theme != theme.Light {
		t.Errorf("session theme = %s", p.Theme)
	}

	// The next toggle flips from what the reader sees.
	if _, err := s.Dispatch(context.Background(), Action{Name: ActionToggleTheme}); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if v, _, _ := store.Get(context.Background(), "r1", prefs.KeyTheme); v != "dark" {
		t.Errorf("stored theme = %q, want dark", v)
	}
	if _, p := s.State(); p.Theme != theme.Dark {
		t.Errorf("session theme = %s", p.Theme)
	}
}

func TestSessionOrdersByBegin(t *testing.T) {
	c, _ := setupController(t, &embeddedBooks{})
	s := NewSession(c, "r1", State{View: Home}, prefs.Default())

	older := s.Begin(context.Background(), Action{Name: ActionShowPart, PartID: 1})
	newer := s.Begin(context.Background(), Action{Name: ActionShowPart, PartID: 2})

	// The newer action finishes first; the older one must not win.
	var emitted []Update
	if err := newer.Finish(func(u []Update) { emitted = append(emitted, u...) }); err != nil {
		t.Fatalf("newer: %v", err)
	}
	err := older.Finish(func(u []Update) { emitted = append(emitted, u...) })
	if !errors.Is(err, ErrSuperseded) {
		t.Fatalf("older err = %v, want ErrSuperseded", err)
	}
	if len(emitted) != 1 || emitted[0].URL != "/parts/2" {
		t.Errorf("emitted = %+v", emitted)
	}
	if st, _ := s.State(); st != (State{View: PartModal, PartID: 2}) {
		t.Errorf("state = %+v", st)
	}
}

func TestSessionKeepsStateOnInvalidAction(t *testing.T) {
	c, _ := setupController(t, &embeddedBooks{})
	s := NewSession(c, "r1", State{View: Home}, prefs.Default())

	if _, err := s.Dispatch(context.Background(), Action{Name: ActionPrev}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v", err)
	}
	if st, _ := s.State(); st != (State{View: Home}) {
		t.Errorf("state = %+v", st)
	}

	if _, err := s.Dispatch(context.Background(), Action{Name: ActionSync, Path: "/chapters/3"}); err != nil {
		t.Fatalf("sync: %v", err)
	}
	updates, err := s.Dispatch(context.Background(), Action{Name: ActionNext})
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if len(updates) == 0 || updates[0].URL != "/chapters/4" {
		t.Errorf("updates = %+v", updates)
	}
}

func TestSessionTogglePersistsPrefs(t *testing.T) {
	c, _ := setupController(t, &embeddedBooks{})
	s := NewSession(c, "r1", State{View: Home}, prefs.Default())
	if _, err := s.Dispatch(context.Background(), Action{Name: ActionToggleLanguage}); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, p := s.State(); p.Language != i18n.Arabic {
		t.Errorf("language = %s", p.Language)
	}
}
