package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/gorilla/websocket"

	"github.com/pinky890114/Xianluo/internal/commissions"
	"github.com/pinky890114/Xianluo/internal/views"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// LiveHandler streams the admin's commission list over a websocket: the full
// filtered snapshot is pushed on connect and again after every mirror
// refresh, the same replace-don't-patch contract the mirror itself follows.
type LiveHandler struct {
	Commissions  *commissions.Store
	SessionStore *sessions.CookieStore
}

func (h *LiveHandler) Feed(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	if auth, ok := session.Values["authenticated"].(bool); !ok || !auth {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	scope, _ := session.Values["scope"].(string)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	changes := h.Commissions.Watch(ctx)

	// The read loop only exists to notice the peer going away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	send := func() error {
		snapshot := views.Apply(h.Commissions.Commissions(), views.Filter{AdminScope: scope})
		return conn.WriteJSON(snapshot)
	}

	if err := send(); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-changes:
			if err := send(); err != nil {
				return
			}
		}
	}
}
