package content

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ziadkadry99/unseenbook/internal/i18n"
)

// ErrLoad is returned when a book could not be loaded after all attempts.
var ErrLoad = errors.New("content load failed")

// Retry controls how failed loads are retried.
type Retry struct {
	Attempts int           // total tries, including the first
	Delay    time.Duration // fixed wait between tries
}

// DefaultRetry tries three times with a one second pause.
var DefaultRetry = Retry{Attempts: 3, Delay: time.Second}

// Do calls fn until it succeeds or the attempts run out. Waiting between
// attempts stops early when ctx is cancelled.
func (r Retry) Do(ctx context.Context, fn func(context.Context) error) error {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			timer := time.NewTimer(r.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("retry aborted after %d attempts: %w", i, ctx.Err())
			case <-timer.C:
			}
		}
		if err = fn(ctx); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return fmt.Errorf("retry aborted after %d attempts: %w", i+1, ctx.Err())
		}
		if errors.Is(err, ErrUnknownLanguage) {
			return err
		}
	}
	return err
}

// CatalogConfig configures a Catalog.
type CatalogConfig struct {
	Retry     Retry
	StrictIDs bool // fail loads whose book has duplicate ids
}

// Catalog loads books on first use and caches them per language.
type Catalog struct {
	src    Source
	cfg    CatalogConfig
	logger *zap.Logger

	group singleflight.Group
	mu    sync.RWMutex
	books map[i18n.Language]*Book
}

// NewCatalog creates a Catalog reading from src.
func NewCatalog(src Source, cfg CatalogConfig, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Retry.Attempts == 0 {
		cfg.Retry = DefaultRetry
	}
	return &Catalog{
		src:    src,
		cfg:    cfg,
		logger: logger,
		books:  make(map[i18n.Language]*Book),
	}
}

// Book returns the book for lang, loading it if needed. Concurrent callers
// for the same language share a single load.
func (c *Catalog) Book(ctx context.Context, lang i18n.Language) (*Book, error) {
	c.mu.RLock()
	b, ok := c.books[lang]
	c.mu.RUnlock()
	if ok {
		return b, nil
	}

	for {
		ch := c.group.DoChan(string(lang), func() (any, error) {
			return c.load(ctx, lang)
		})
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("loading %s: %w", lang, ctx.Err())
		case res := <-ch:
			if res.Err == nil {
				return res.Val.(*Book), nil
			}
			// The shared load belonged to a caller that gave up; try again
			// with our own context.
			if isCancel(res.Err) && ctx.Err() == nil {
				continue
			}
			return nil, res.Err
		}
	}
}

func (c *Catalog) load(ctx context.Context, lang i18n.Language) (*Book, error) {
	var book *Book
	attempt := 0
	err := c.cfg.Retry.Do(ctx, func(ctx context.Context) error {
		attempt++
		b, err := c.src.Load(ctx, lang)
		if err != nil {
			c.logger.Warn("book load failed",
				zap.String("language", string(lang)),
				zap.Int("attempt", attempt),
				zap.Error(err))
			return err
		}
		book = b
		return nil
	})
	if err != nil {
		if isCancel(err) || errors.Is(err, ErrUnknownLanguage) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s after %d attempts: %w", ErrLoad, lang, attempt, err)
	}

	if verr := book.Validate(); verr != nil {
		if c.cfg.StrictIDs {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoad, lang, verr)
		}
		c.logger.Warn("book has duplicate ids; first match wins",
			zap.String("language", string(lang)), zap.Error(verr))
	}

	c.mu.Lock()
	c.books[lang] = book
	c.mu.Unlock()

	c.logger.Debug("book loaded",
		zap.String("language", string(lang)),
		zap.Int("parts", len(book.Parts)),
		zap.Int("chapters", len(book.AllChapters())))
	return book, nil
}

// Preload loads every supported language, returning the first failure.
func (c *Catalog) Preload(ctx context.Context) error {
	for _, lang := range i18n.Languages {
		if _, err := c.Book(ctx, lang); err != nil {
			return err
		}
	}
	return nil
}

func isCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
