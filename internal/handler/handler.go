// Package handler exposes the market core over HTTP. Handlers convert wire
// requests to market operations and map domain errors to status codes;
// business logic stays in the market and domain packages.
package handler

import (
	"net/http"

	"github.com/xenking/emart/internal/identity"
	"github.com/xenking/emart/internal/market"
)

// Handler serves the marketplace API.
type Handler struct {
	market   *market.Market
	identity *identity.Store
}

// New constructs a Handler with the required dependencies.
func New(m *market.Market, ident *identity.Store) *Handler {
	return &Handler{
		market:   m,
		identity: ident,
	}
}

// Routes registers all API routes on the mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/customers", h.registerCustomer)
	mux.HandleFunc("POST /api/login", h.login)

	mux.HandleFunc("GET /api/products", h.listProducts)
	mux.HandleFunc("GET /api/products/{id}", h.getProduct)
	mux.HandleFunc("PUT /api/products/{id}/discount", h.setProductDiscount)

	mux.HandleFunc("GET /api/cart", h.viewCart)
	mux.HandleFunc("POST /api/cart/items", h.reserveItem)
	mux.HandleFunc("DELETE /api/cart/items/{productID}", h.releaseItem)

	mux.HandleFunc("POST /api/checkout", h.checkout)
	mux.HandleFunc("POST /api/orders/{id}/cancel", h.cancelOrder)

	mux.HandleFunc("GET /api/deliveries/{orderID}", h.trackDelivery)
	mux.HandleFunc("PUT /api/deliveries/{orderID}/status", h.updateDeliveryStatus)
}

// customerID extracts the authenticated customer from the request. Identity
// is an external collaborator; the API trusts the header its gateway sets.
func customerID(r *http.Request) string {
	return r.Header.Get("X-Customer-ID")
}
