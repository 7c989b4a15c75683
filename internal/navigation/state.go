// Package navigation drives a reader through the book: which view is open,
// what happens on each action, and which page regions must be redrawn.
package navigation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ziadkadry99/unseenbook/internal/content"
)

var (
	ErrInvalidTransition = errors.New("invalid navigation transition")
	ErrSuperseded        = errors.New("navigation superseded by a newer action")
)

// View is the screen the reader is looking at.
type View int

const (
	Home View = iota
	PartModal
	ChapterView
)

func (v View) String() string {
	switch v {
	case PartModal:
		return "part_modal"
	case ChapterView:
		return "chapter"
	}
	return "home"
}

// Actions a reader can take.
const (
	ActionShowPart       = "show_part"
	ActionSelectChapter  = "select_chapter"
	ActionClose          = "close"
	ActionPrev           = "prev"
	ActionNext           = "next"
	ActionBack           = "back"
	ActionToggleLanguage = "toggle_language"
	ActionToggleTheme    = "toggle_theme"
	// ActionSync tells a fresh connection which page the browser loaded.
	ActionSync = "sync"
)

// Action is one reader input, as received from the browser.
type Action struct {
	Name      string `json:"action"`
	PartID    int    `json:"part_id,omitempty"`
	ChapterID int    `json:"chapter_id,omitempty"`
	Path      string `json:"path,omitempty"`
}

// State is where a reader is. ErrorOpen marks the load error notice shown
// over the current view.
type State struct {
	View      View `json:"view"`
	PartID    int  `json:"part_id,omitempty"`
	ChapterID int  `json:"chapter_id,omitempty"`
	ErrorOpen bool `json:"error_open,omitempty"`
}

// Apply returns the state an action leads to. Chapter adjacency for prev
// and next is resolved by the controller, so Apply leaves ChapterID alone
// for those.
func (s State) Apply(a Action) (State, error) {
	if s.ErrorOpen && a.Name == ActionClose {
		s.ErrorOpen = false
		return s, nil
	}

	switch a.Name {
	case ActionShowPart:
		if s.View == Home && a.PartID > 0 {
			return State{View: PartModal, PartID: a.PartID}, nil
		}
	case ActionSelectChapter:
		if a.ChapterID > 0 {
			return State{View: ChapterView, PartID: s.PartID, ChapterID: a.ChapterID}, nil
		}
	case ActionClose:
		if s.View == PartModal || s.View == ChapterView {
			return State{View: Home}, nil
		}
	case ActionBack:
		if s.View == ChapterView {
			return State{View: Home}, nil
		}
	case ActionPrev, ActionNext:
		if s.View == ChapterView {
			s.ErrorOpen = false
			return s, nil
		}
	case ActionToggleLanguage, ActionToggleTheme:
		return s, nil
	case ActionSync:
		return ParsePath(a.Path), nil
	}
	return s, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, a.Name, s.View)
}

// ParsePath maps a server page path to the state it shows. Unknown paths
// map to Home.
func ParsePath(path string) State {
	path = strings.TrimSuffix(path, "/")
	if rest, ok := strings.CutPrefix(path, "/parts/"); ok {
		if id, err := content.ParseID(rest); err == nil {
			return State{View: PartModal, PartID: id}
		}
	}
	if rest, ok := strings.CutPrefix(path, "/chapters/"); ok {
		if id, err := content.ParseID(rest); err == nil {
			return State{View: ChapterView, ChapterID: id}
		}
	}
	return State{View: Home}
}
