package api

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"logitrack/internal/model"
	"logitrack/internal/service"
)

// OrdersHandler handles order endpoints.
type OrdersHandler struct {
	Service *service.Service
	Logger  *zap.Logger
}

type createOrderRequest struct {
	CustomerName string                   `json:"customerName"`
	SessionID    string                   `json:"sessionId"`
	Items        []createOrderItemRequest `json:"items"`
}

type createOrderItemRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Quantity int    `json:"quantity"`
}

// List handles GET /api/orders.
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	orders, err := h.Service.ListOrders(r.Context(), page, pageSize)
	if err != nil {
		serviceError(h.Logger, w, r, err)
		return
	}
	jsonResponse(h.Logger, w, http.StatusOK, orders)
}

// Get handles GET /api/orders/{id}.
func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(h.Logger, w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.Service.GetOrder(r.Context(), id)
	if err != nil {
		serviceError(h.Logger, w, r, err)
		return
	}
	jsonResponse(h.Logger, w, http.StatusOK, order)
}

// Create handles POST /api/orders.
func (h *OrdersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(h.Logger, w, http.StatusBadRequest, "invalid request body")
		return
	}

	order := model.Order{
		CustomerName: req.CustomerName,
		SessionID:    req.SessionID,
	}
	for _, li := range req.Items {
		order.Items = append(order.Items, model.LineItem{
			Name:     li.Name,
			Location: li.Location,
			Quantity: li.Quantity,
		})
	}

	created, err := h.Service.CreateOrder(r.Context(), GetClaims(r.Context()), order)
	if err != nil {
		serviceError(h.Logger, w, r, err)
		return
	}

	jsonResponse(h.Logger, w, http.StatusCreated, created)
}

// Delete handles DELETE /api/orders/{id}.
func (h *OrdersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(h.Logger, w, http.StatusBadRequest, "invalid order id")
		return
	}

	if err := h.Service.DeleteOrder(r.Context(), GetClaims(r.Context()), id); err != nil {
		serviceError(h.Logger, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
