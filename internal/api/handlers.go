package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/arka-distribution/internal/command"
	"github.com/example/arka-distribution/internal/domain"
	"github.com/example/arka-distribution/internal/query"
	"go.uber.org/zap"
)

type Handlers struct {
	cmdHandler   *command.Handler
	queryHandler *query.Handler
	logger       *zap.Logger
}

func NewHandlers(cmdHandler *command.Handler, queryHandler *query.Handler, logger *zap.Logger) *Handlers {
	return &Handlers{
		cmdHandler:   cmdHandler,
		queryHandler: queryHandler,
		logger:       logger,
	}
}

// Product Handlers

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var cmd command.RegisterProduct
	if !h.decode(w, r, &cmd) {
		return
	}
	product, err := h.cmdHandler.RegisterProduct(r.Context(), cmd)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.queryHandler.ListProducts(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) GetLowStockProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.queryHandler.ListLowStockProducts(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.queryHandler.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.cmdHandler.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) UpdateStock(w http.ResponseWriter, r *http.Request) {
	var cmd command.UpdateStock
	if !h.decode(w, r, &cmd) {
		return
	}
	cmd.ProductID = r.PathValue("id")

	product, err := h.cmdHandler.UpdateStock(r.Context(), cmd)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *Handlers) ReduceStock(w http.ResponseWriter, r *http.Request) {
	var cmd command.AdjustStock
	if !h.decode(w, r, &cmd) {
		return
	}
	cmd.ProductID = r.PathValue("id")

	product, err := h.cmdHandler.ReduceStock(r.Context(), cmd)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *Handlers) IncreaseStock(w http.ResponseWriter, r *http.Request) {
	var cmd command.AdjustStock
	if !h.decode(w, r, &cmd) {
		return
	}
	cmd.ProductID = r.PathValue("id")

	product, err := h.cmdHandler.IncreaseStock(r.Context(), cmd)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *Handlers) RestockReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.cmdHandler.GenerateRestockReport(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// Customer Handlers

func (h *Handlers) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var cmd command.RegisterCustomer
	if !h.decode(w, r, &cmd) {
		return
	}
	customer, err := h.cmdHandler.RegisterCustomer(r.Context(), cmd)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, customer)
}

func (h *Handlers) GetCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.queryHandler.ListCustomers(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, customers)
}

func (h *Handlers) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.queryHandler.GetCustomer(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

func (h *Handlers) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.cmdHandler.DeleteCustomer(r.Context(), r.PathValue("id")); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) GetCustomerOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.queryHandler.ListCustomerOrders(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// Order Handlers

func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var cmd command.CreateOrder
	if !h.decode(w, r, &cmd) {
		return
	}
	order, err := h.cmdHandler.CreateOrder(r.Context(), cmd)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

func (h *Handlers) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.queryHandler.ListOrders(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.queryHandler.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *Handlers) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.cmdHandler.ConfirmOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *Handlers) ShipOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.cmdHandler.ShipOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *Handlers) DeliverOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.cmdHandler.DeliverOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *Handlers) AddOrderItem(w http.ResponseWriter, r *http.Request) {
	var cmd command.AddOrderItem
	if !h.decode(w, r, &cmd) {
		return
	}
	cmd.OrderID = r.PathValue("id")

	order, err := h.cmdHandler.AddOrderItem(r.Context(), cmd)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *Handlers) RemoveOrderItem(w http.ResponseWriter, r *http.Request) {
	cmd := command.RemoveOrderItem{
		OrderID:   r.PathValue("id"),
		ProductID: r.PathValue("productId"),
	}
	order, err := h.cmdHandler.RemoveOrderItem(r.Context(), cmd)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}

// respondError maps domain errors onto HTTP statuses. Anything unrecognised is
// logged and hidden behind a 500.
func (h *Handlers) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		message = "internal error"
	}
	respondJSON(w, status, map[string]string{"error": message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientStock), errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
