package api

import (
	"net/http"
	"strings"

	"github.com/example/toyshub/internal/api/middleware"
)

// Notification Handlers

func (h *Handlers) ListUserNotifications(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	notifications, err := h.notifications.ListForUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "", map[string]any{"notifications": notifications})
}

func (h *Handlers) ListAdminNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notifications.ListForAdmins(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "", map[string]any{"notifications": notifications})
}

func (h *Handlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/notification/"), "/read")
	if err := h.notifications.MarkRead(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Notification marked as read", nil)
}

func (h *Handlers) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/notification/")
	if err := h.notifications.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Notification deleted", nil)
}
