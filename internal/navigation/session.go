package navigation

import (
	"context"
	"sync"

	"github.com/ziadkadry99/unseenbook/internal/prefs"
)

// Session serializes one reader's navigation. Starting an action cancels
// the one still in flight, and only the newest action may change the
// reader's state.
type Session struct {
	ctrl     *Controller
	readerID string

	mu     sync.Mutex
	state  State
	prefs  prefs.Preferences
	gen    uint64
	cancel context.CancelFunc
}

// NewSession starts a session for a reader at the given state.
func NewSession(ctrl *Controller, readerID string, st State, p prefs.Preferences) *Session {
	return &Session{ctrl: ctrl, readerID: readerID, state: st, prefs: p}
}

// Dispatch runs an action and returns its updates. It returns
// ErrSuperseded when a newer action started before this one finished.
func (s *Session) Dispatch(ctx context.Context, a Action) ([]Update, error) {
	var out []Update
	err := s.Run(ctx, a, func(u []Update) { out = u })
	return out, err
}

// Run begins an action and finishes it on the calling goroutine.
func (s *Session) Run(ctx context.Context, a Action, emit func([]Update)) error {
	return s.Begin(ctx, a).Finish(emit)
}

// Ticket is an action accepted by a session but not yet finished.
type Ticket struct {
	s      *Session
	gen    uint64
	ctx    context.Context
	cancel context.CancelFunc
	reader Reader
	action Action
}

// Begin accepts an action: it cancels the action still in flight and
// snapshots the reader's state. Actions are ordered by their Begin calls,
// so callers reading a message stream call Begin in arrival order and may
// Finish on other goroutines.
func (s *Session) Begin(ctx context.Context, a Action) *Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	return &Ticket{
		s:      s,
		gen:    s.gen,
		ctx:    ctx,
		cancel: cancel,
		reader: Reader{ID: s.readerID, State: s.state, Prefs: s.prefs},
		action: a,
	}
}

// Finish dispatches the action and hands its updates to emit. emit is
// called with the session locked, so updates reach the reader in the order
// actions began and never after a newer action's. A superseded action
// saves and emits nothing; Finish returns ErrSuperseded.
func (t *Ticket) Finish(emit func([]Update)) error {
	defer t.cancel()
	s := t.s

	res, err := s.ctrl.Dispatch(t.ctx, t.reader, t.action)

	s.mu.Lock()
	defer s.mu.Unlock()
	if t.gen != s.gen {
		return ErrSuperseded
	}
	s.cancel = nil
	if err != nil {
		return err
	}
	if err := s.ctrl.Commit(t.ctx, t.reader, res); err != nil {
		return err
	}
	s.state, s.prefs = res.State, res.Prefs
	if len(res.Updates) > 0 {
		emit(res.Updates)
	}
	return nil
}

// State returns the reader's current state and preferences.
func (s *Session) State() (State, prefs.Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.prefs
}

// Close cancels any action in flight.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
}
