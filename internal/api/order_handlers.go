package api

import (
	"net/http"

	"github.com/example/toyshub/internal/api/middleware"
	"github.com/example/toyshub/internal/domain/order"
)

// Order Handlers

func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req struct {
		Items             []order.CheckoutLine `json:"items"`
		ShippingAddressID string               `json:"shippingAddressId"`
		ShippingAddress   order.Address        `json:"shippingAddress"`
		PaymentMethod     string               `json:"paymentMethod"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.orders.Checkout(r.Context(), userID, order.CheckoutInput{
		Lines:             req.Items,
		ShippingAddressID: req.ShippingAddressID,
		ShippingAddress:   req.ShippingAddress,
		PaymentMethod:     req.PaymentMethod,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "Order placed", map[string]any{"order": o})
}

func (h *Handlers) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "", map[string]any{"orders": orders})
}

func (h *Handlers) ListUserOrders(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	orders, err := h.orders.ListByUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "", map[string]any{"orders": orders})
}

func (h *Handlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID   string `json:"orderId"`
		NewStatus string `json:"newStatus"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OrderID == "" {
		respondMessage(w, http.StatusBadRequest, "orderId is required")
		return
	}

	o, err := h.orders.SetStatus(r.Context(), req.OrderID, order.Status(req.NewStatus))
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Order status updated", map[string]any{"order": o})
}
