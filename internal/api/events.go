package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/example/toyshub/internal/api/middleware"
	"github.com/example/toyshub/internal/auth"
)

const keepAliveInterval = 30 * time.Second

// Events streams notification pushes to the client over server-sent
// events. Admins additionally receive the admin broadcast channel.
func (h *Handlers) Events(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondMessage(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	messages, cancel := h.hub.Subscribe(claims.UserID, claims.Role == auth.RoleAdmin)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepAlive.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		case msg, open := <-messages:
			if !open {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
			flusher.Flush()
		}
	}
}
