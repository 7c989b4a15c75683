package navigation

import (
	"errors"
	"testing"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		from    State
		action  Action
		want    State
		invalid bool
	}{
		{"show part", State{View: Home}, Action{Name: ActionShowPart, PartID: 2}, State{View: PartModal, PartID: 2}, false},
		{"show part needs id", State{View: Home}, Action{Name: ActionShowPart}, State{}, true},
		{"show part over chapter", State{View: ChapterView, ChapterID: 3}, Action{Name: ActionShowPart, PartID: 1}, State{}, true},
		{"select from modal", State{View: PartModal, PartID: 2}, Action{Name: ActionSelectChapter, ChapterID: 12}, State{View: ChapterView, PartID: 2, ChapterID: 12}, false},
		{"select from home", State{View: Home}, Action{Name: ActionSelectChapter, ChapterID: 4}, State{View: ChapterView, ChapterID: 4}, false},
		{"close modal", State{View: PartModal, PartID: 1}, Action{Name: ActionClose}, State{View: Home}, false},
		{"close chapter", State{View: ChapterView, ChapterID: 5}, Action{Name: ActionClose}, State{View: Home}, false},
		{"close on home", State{View: Home}, Action{Name: ActionClose}, State{}, true},
		{"back from chapter", State{View: ChapterView, ChapterID: 5}, Action{Name: ActionBack}, State{View: Home}, false},
		{"back from modal", State{View: PartModal, PartID: 1}, Action{Name: ActionBack}, State{}, true},
		{"next in chapter", State{View: ChapterView, PartID: 1, ChapterID: 5}, Action{Name: ActionNext}, State{View: ChapterView, PartID: 1, ChapterID: 5}, false},
		{"prev on home", State{View: Home}, Action{Name: ActionPrev}, State{}, true},
		{"toggle keeps state", State{View: PartModal, PartID: 3}, Action{Name: ActionToggleTheme}, State{View: PartModal, PartID: 3}, false},
		{"close error notice", State{View: ChapterView, ChapterID: 2, ErrorOpen: true}, Action{Name: ActionClose}, State{View: ChapterView, ChapterID: 2}, false},
		{"sync", State{View: Home}, Action{Name: ActionSync, Path: "/chapters/7"}, State{View: ChapterView, ChapterID: 7}, false},
		{"unknown action", State{View: Home}, Action{Name: "jump"}, State{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.Apply(tt.action)
			if tt.invalid {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Fatalf("expected ErrInvalidTransition, got %v", err)
				}
				if got != tt.from {
					t.Errorf("state changed on invalid transition: %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParsePath(t *testing.T) {
	tests := map[string]State{
		"/":              {View: Home},
		"":               {View: Home},
		"/parts/3":       {View: PartModal, PartID: 3},
		"/chapters/20/":  {View: ChapterView, ChapterID: 20},
		"/chapters/abc":  {View: Home},
		"/static/app.js": {View: Home},
	}
	for path, want := range tests {
		if got := ParsePath(path); got != want {
			t.Errorf("ParsePath(%q) = %+v, want %+v", path, got, want)
		}
	}
}
