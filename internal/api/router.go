package api

import (
	"net/http"

	"github.com/example/arka-distribution/internal/api/middleware"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Handlers *Handlers
	Logger   *zap.Logger
	// Metrics, when set, serves /metrics and wraps every route.
	Metrics MetricsProvider
}

type MetricsProvider interface {
	Handler() http.Handler
	Middleware(next http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	h := cfg.Handlers
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.Health)

	// Products
	mux.HandleFunc("POST /products", h.CreateProduct)
	mux.HandleFunc("GET /products", h.GetProducts)
	mux.HandleFunc("GET /products/low-stock", h.GetLowStockProducts)
	mux.HandleFunc("GET /products/{id}", h.GetProduct)
	mux.HandleFunc("DELETE /products/{id}", h.DeleteProduct)
	mux.HandleFunc("PUT /products/{id}/stock", h.UpdateStock)
	mux.HandleFunc("POST /products/{id}/stock/reduce", h.ReduceStock)
	mux.HandleFunc("POST /products/{id}/stock/increase", h.IncreaseStock)
	mux.HandleFunc("POST /inventory/restock-report", h.RestockReport)

	// Customers
	mux.HandleFunc("POST /customers", h.CreateCustomer)
	mux.HandleFunc("GET /customers", h.GetCustomers)
	mux.HandleFunc("GET /customers/{id}", h.GetCustomer)
	mux.HandleFunc("DELETE /customers/{id}", h.DeleteCustomer)
	mux.HandleFunc("GET /customers/{id}/orders", h.GetCustomerOrders)

	// Orders
	mux.HandleFunc("POST /orders", h.CreateOrder)
	mux.HandleFunc("GET /orders", h.GetOrders)
	mux.HandleFunc("GET /orders/{id}", h.GetOrder)
	mux.HandleFunc("POST /orders/{id}/confirm", h.ConfirmOrder)
	mux.HandleFunc("POST /orders/{id}/ship", h.ShipOrder)
	mux.HandleFunc("POST /orders/{id}/deliver", h.DeliverOrder)
	mux.HandleFunc("POST /orders/{id}/items", h.AddOrderItem)
	mux.HandleFunc("DELETE /orders/{id}/items/{productId}", h.RemoveOrderItem)

	var handler http.Handler = mux
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
		handler = cfg.Metrics.Middleware(handler)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	handler = middleware.Recover(logger)(handler)
	handler = middleware.Logging(logger)(handler)
	return middleware.RequestID(handler)
}
