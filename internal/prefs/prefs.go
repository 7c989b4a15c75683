// Package prefs stores each reader's language and theme choice.
package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/ziadkadry99/unseenbook/internal/i18n"
	"github.com/ziadkadry99/unseenbook/internal/theme"
)

// Storage keys, shared with the browser client.
const (
	KeyLanguage = "flutterBookLanguage"
	KeyTheme    = "flutterBookTheme"
)

var (
	ErrInvalidLanguage = errors.New("invalid language")
	ErrInvalidTheme    = errors.New("invalid theme")
	ErrUnknownKey      = errors.New("unknown preference key")
)

// Preferences is a reader's display choice.
type Preferences struct {
	Language i18n.Language `json:"language"`
	Theme    theme.Theme   `json:"theme"`
}

// Default returns English in the light theme.
func Default() Preferences {
	return Preferences{Language: i18n.DefaultLanguage, Theme: theme.DefaultTheme}
}

// Validate checks both fields.
func (p Preferences) Validate() error {
	if !p.Language.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, p.Language)
	}
	if !p.Theme.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, p.Theme)
	}
	return nil
}

// ToggleLanguage returns p with the other language.
func (p Preferences) ToggleLanguage() Preferences {
	p.Language = p.Language.Toggle()
	return p
}

// ToggleTheme returns p with the other theme.
func (p Preferences) ToggleTheme() Preferences {
	p.Theme = p.Theme.Toggle()
	return p
}

// With applies a raw key/value pair.
func (p Preferences) With(key, value string) (Preferences, error) {
	switch key {
	case KeyLanguage:
		l, err := i18n.ParseLanguage(value)
		if err != nil {
			return p, fmt.Errorf("%w: %v", ErrInvalidLanguage, err)
		}
		p.Language = l
	case KeyTheme:
		th, err := theme.ParseTheme(value)
		if err != nil {
			return p, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
		}
		p.Theme = th
	default:
		return p, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return p, nil
}

// Values returns the preferences as storage key/value pairs.
func (p Preferences) Values() map[string]string {
	return map[string]string{
		KeyLanguage: string(p.Language),
		KeyTheme:    string(p.Theme),
	}
}

// fromValues rebuilds preferences from stored pairs. Missing or invalid
// values fall back to def.
func fromValues(values map[string]string, def Preferences) Preferences {
	p := def
	for key, value := range values {
		if next, err := p.With(key, value); err == nil {
			p = next
		}
	}
	return p
}

// Store persists preferences per reader. Load returns the store's defaults
// for an unknown reader, and alongside any error.
type Store interface {
	Load(ctx context.Context, readerID string) (Preferences, error)
	Save(ctx context.Context, readerID string, p Preferences) error
}

// ToggleLanguage flips and persists the reader's language.
func ToggleLanguage(ctx context.Context, s Store, readerID string) (Preferences, error) {
	return update(ctx, s, readerID, Preferences.ToggleLanguage)
}

// ToggleTheme flips and persists the reader's theme.
func ToggleTheme(ctx context.Context, s Store, readerID string) (Preferences, error) {
	return update(ctx, s, readerID, Preferences.ToggleTheme)
}

// Set stores a single key/value pair for the reader.
func Set(ctx context.Context, s Store, readerID, key, value string) (Preferences, error) {
	var setErr error
	p, err := update(ctx, s, readerID, func(p Preferences) Preferences {
		next, err := p.With(key, value)
		setErr = err
		return next
	})
	if setErr != nil {
		return p, setErr
	}
	return p, err
}

func update(ctx context.Context, s Store, readerID string, fn func(Preferences) Preferences) (Preferences, error) {
	p, err := s.Load(ctx, readerID)
	if err != nil {
		return p, err
	}
	next := fn(p)
	if err := next.Validate(); err != nil {
		return p, err
	}
	if next == p {
		return p, nil
	}
	if err := s.Save(ctx, readerID, next); err != nil {
		return p, err
	}
	return next, nil
}
