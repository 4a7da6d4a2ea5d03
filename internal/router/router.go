package router

import (
	"context"
	"net/http"

	"github.com/sonuarjun3120/krishpafoods/internal/auth"
	"github.com/sonuarjun3120/krishpafoods/internal/handlers"
	"github.com/sonuarjun3120/krishpafoods/internal/logs"
	"github.com/sonuarjun3120/krishpafoods/internal/middlewares"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type BrokerPinger interface {
	Ping() error
}

type Dependencies struct {
	Handler    *handlers.Handler
	JWTManager *auth.JWTManager
	DB         Pinger
	Broker     BrokerPinger
	Feed       handlers.OrderFeed
	Logger     logs.Logger
}

func ConfigRoutes(deps Dependencies) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /api/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := deps.DB.Ping(r.Context()); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		if deps.Broker != nil {
			if err := deps.Broker.Ping(); err != nil {
				http.Error(w, "broker not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	registerStorefrontRoutes(mux, deps.Handler)
	registerAdminRoutes(mux, deps)

	return mux
}

func registerStorefrontRoutes(mux *http.ServeMux, h *handlers.Handler) {
	mux.HandleFunc("GET /api/products", h.ListProductsHandler)
	mux.HandleFunc("GET /api/products/{id}", h.GetProductHandler)

	mux.HandleFunc("GET /api/cart", h.GetCartHandler)
	mux.HandleFunc("POST /api/cart/items", h.AddCartItemHandler)
	mux.HandleFunc("PUT /api/cart/items", h.UpdateCartItemHandler)
	mux.HandleFunc("DELETE /api/cart/items", h.RemoveCartItemHandler)

	mux.HandleFunc("GET /api/delivery/geocode", h.GeocodeHandler)

	mux.HandleFunc("POST /api/orders", h.CreateOrderHandler)
	mux.HandleFunc("POST /api/orders/lookup", h.LookupOrdersHandler)
	mux.HandleFunc("POST /api/otp/request", h.RequestOTPHandler)

	mux.HandleFunc("POST /api/payments/razorpay", h.RazorpayOrderHandler)
	mux.HandleFunc("POST /api/payments/verify", h.VerifyPaymentHandler)
	mux.HandleFunc("POST /api/payments/acknowledge", h.AcknowledgePaymentHandler)
}

func registerAdminRoutes(mux *http.ServeMux, deps Dependencies) {
	mux.HandleFunc("POST /api/admin/login", deps.Handler.AdminLoginHandler)

	requireAdmin := middlewares.AdminAuthMiddleware(deps.JWTManager, deps.Logger)
	mux.Handle("GET /api/admin/orders", requireAdmin(http.HandlerFunc(deps.Handler.AdminListOrdersHandler)))
	mux.Handle("PATCH /api/admin/orders/{id}/status", requireAdmin(http.HandlerFunc(deps.Handler.AdminUpdateOrderStatusHandler)))
	if deps.Feed != nil {
		mux.Handle("GET /api/admin/orders/stream", requireAdmin(deps.Handler.AdminOrderStreamHandler(deps.Feed)))
	}
}
