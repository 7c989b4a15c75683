package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ziadkadry99/unseenbook/internal/prefs"
)

const readerCookie = "reader"

type readerKey struct{}

// reader is the visitor behind a request.
type reader struct {
	ID    string
	Prefs prefs.Preferences
}

// readers identifies the visitor by cookie, issuing a new id on the first
// visit, and loads their preferences into the request context. A new
// reader gets the store's defaults.
func (s *Server) readers(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, fresh := readerID(r)
		if fresh {
			http.SetCookie(w, &http.Cookie{
				Name:     readerCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int((365 * 24 * time.Hour).Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		// On error p still holds the store's defaults.
		p, err := s.store.Load(ctx, id)
		if err != nil {
			s.logger.Warn("loading preferences", zap.String("reader", id), zap.Error(err))
		}

		ctx = context.WithValue(ctx, readerKey{}, reader{ID: id, Prefs: p})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func readerID(r *http.Request) (id string, fresh bool) {
	if c, err := r.Cookie(readerCookie); err == nil {
		if u, err := uuid.Parse(c.Value); err == nil {
			return u.String(), false
		}
	}
	return uuid.NewString(), true
}

func readerFrom(ctx context.Context) reader {
	if rd, ok := ctx.Value(readerKey{}).(reader); ok {
		return rd
	}
	return reader{Prefs: prefs.Default()}
}
