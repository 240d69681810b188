package api

import (
	"encoding/json"
	"net/http"

	"github.com/example/toyshub/internal/domain/catalog"
	"github.com/example/toyshub/internal/domain/notification"
	"github.com/example/toyshub/internal/domain/order"
	"github.com/example/toyshub/internal/domain/page"
	"github.com/example/toyshub/internal/media"
	"github.com/example/toyshub/internal/realtime"
)

type Handlers struct {
	catalog       *catalog.Service
	orders        *order.Service
	notifications *notification.Service
	pages         *page.Service
	uploader      media.Uploader
	hub           *realtime.Hub
}

func NewHandlers(
	catalogSvc *catalog.Service,
	orderSvc *order.Service,
	notificationSvc *notification.Service,
	pageSvc *page.Service,
	uploader media.Uploader,
	hub *realtime.Hub,
) *Handlers {
	return &Handlers{
		catalog:       catalogSvc,
		orders:        orderSvc,
		notifications: notificationSvc,
		pages:         pageSvc,
		uploader:      uploader,
		hub:           hub,
	}
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
