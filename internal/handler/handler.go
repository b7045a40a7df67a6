// Package handler exposes the catalog and cart cores over HTTP. Handlers
// translate between JSON payloads and domain types; all user-visible error
// bodies are structured {code, message} objects.
package handler

import (
	"net/http"

	"github.com/minhtri-dev/storefront/internal/domain/cart"
	"github.com/minhtri-dev/storefront/internal/domain/catalog"
)

// Handler serves the storefront API: the customer catalog and cart routes
// plus the admin CRUD surface.
type Handler struct {
	store *catalog.Store
	carts *cart.Sessions
}

// NewHandler constructs a Handler over the given catalog store and cart
// session registry.
func NewHandler(store *catalog.Store, carts *cart.Sessions) *Handler {
	return &Handler{store: store, carts: carts}
}

// Register attaches all API routes to mux. Admin routes are wrapped with
// adminAuth; pass nil to leave them unprotected (tests only).
func (h *Handler) Register(mux *http.ServeMux, adminAuth func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /api/products", h.ListProducts)
	mux.HandleFunc("GET /api/products/{id}", h.GetProduct)

	mux.HandleFunc("POST /api/carts", h.OpenCart)
	mux.HandleFunc("GET /api/carts/{cartID}", h.GetCart)
	mux.HandleFunc("POST /api/carts/{cartID}/items", h.AddItem)
	mux.HandleFunc("PUT /api/carts/{cartID}/items/{productID}", h.SetItemQuantity)
	mux.HandleFunc("DELETE /api/carts/{cartID}/items/{productID}", h.RemoveItem)

	admin := http.NewServeMux()
	admin.HandleFunc("GET /api/admin/products", h.AdminListProducts)
	admin.HandleFunc("POST /api/admin/products", h.AdminCreateProduct)
	admin.HandleFunc("PUT /api/admin/products/{id}", h.AdminUpdateProduct)
	admin.HandleFunc("DELETE /api/admin/products/{id}", h.AdminDeleteProduct)
	admin.HandleFunc("GET /api/admin/stats", h.AdminStats)

	var adminHandler http.Handler = admin
	if adminAuth != nil {
		adminHandler = adminAuth(admin)
	}
	mux.Handle("/api/admin/", adminHandler)
}
