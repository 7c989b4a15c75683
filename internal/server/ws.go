package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/unseenbook/internal/navigation"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// navError is sent when an action cannot be applied.
type navError struct {
	Type    string `json:"type"` // always "error"
	Action  string `json:"action,omitempty"`
	Message string `json:"message"`
}

// conn serializes writes to a websocket.
type conn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *conn) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(v)
}

// handleNav runs one reader's live navigation session. Actions begin on
// the read loop in arrival order and finish on their own goroutine, so a
// newer action can cancel an older one that is still loading.
func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	rd := readerFrom(r.Context())

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}
	c := &conn{ws: ws}
	defer ws.Close()

	sess := navigation.NewSession(s.nav, rd.ID, navigation.State{View: navigation.Home}, rd.Prefs)
	var wg sync.WaitGroup
	defer wg.Wait()
	defer sess.Close()

	ctx := r.Context()
	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read", zap.String("reader", rd.ID), zap.Error(err))
			}
			return
		}

		var a navigation.Action
		if err := json.Unmarshal(msg, &a); err != nil {
			c.send(navError{Type: "error", Message: "invalid message format"})
			continue
		}
		if a.Name == "" {
			c.send(navError{Type: "error", Message: "action is required"})
			continue
		}

		// Sync only sets the starting state; it must land before the
		// actions that follow it.
		if a.Name == navigation.ActionSync {
			sess.Dispatch(ctx, a)
			continue
		}

		ticket := sess.Begin(ctx, a)
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := ticket.Finish(func(updates []navigation.Update) {
				for _, u := range updates {
					if err := c.send(u); err != nil {
						s.logger.Debug("websocket write", zap.Error(err))
						return
					}
				}
			})
			switch {
			case err == nil, errors.Is(err, navigation.ErrSuperseded):
			case errors.Is(err, navigation.ErrInvalidTransition):
				c.send(navError{Type: "error", Action: a.Name, Message: err.Error()})
			default:
				if ctx.Err() == nil {
					s.logger.Error("navigation failed", zap.String("reader", rd.ID), zap.String("action", a.Name), zap.Error(err))
					c.send(navError{Type: "error", Action: a.Name, Message: "navigation failed"})
				}
			}
		}()
	}
}
