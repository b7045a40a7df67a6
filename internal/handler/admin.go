package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/minhtri-dev/storefront/internal/domain/catalog"
)

// AdminListProducts returns the snapshot filtered by the admin search box
// semantics: the `q` parameter matches name or category.
func (h *Handler) AdminListProducts(w http.ResponseWriter, r *http.Request) {
	products := catalog.FilterAdmin(h.store.Snapshot(), r.URL.Query().Get("q"))
	respondJSON(w, http.StatusOK, toProductResponses(products))
}

// AdminCreateProduct validates the submitted form and inserts a new product.
// Validation failures are reported before any write is attempted.
func (h *Handler) AdminCreateProduct(w http.ResponseWriter, r *http.Request) {
	var form catalog.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.store.Create(r.Context(), form)
	if err != nil {
		respondCatalogError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toProductResponse(p))
}

// AdminUpdateProduct validates the submitted form and replaces the product's
// fields. The snapshot entry keeps its position.
func (h *Handler) AdminUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var form catalog.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.store.Update(r.Context(), id, form)
	if err != nil {
		respondCatalogError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toProductResponse(p))
}

// AdminDeleteProduct removes a product. The id becomes invalid for all
// subsequent operations.
func (h *Handler) AdminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		respondCatalogError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type statsResponse struct {
	ProductCount   int     `json:"product_count"`
	InventoryValue float64 `json:"inventory_value"`
	AverageRating  float64 `json:"average_rating"`
}

// AdminStats returns the dashboard aggregates computed from the snapshot.
func (h *Handler) AdminStats(w http.ResponseWriter, _ *http.Request) {
	st := h.store.Stats()
	respondJSON(w, http.StatusOK, statsResponse{
		ProductCount:   st.ProductCount,
		InventoryValue: st.InventoryValue.InexactFloat64(),
		AverageRating:  st.AverageRating.InexactFloat64(),
	})
}

// respondCatalogError maps catalog store errors to HTTP responses.
func respondCatalogError(w http.ResponseWriter, err error) {
	var vErr *catalog.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondError(w, http.StatusUnprocessableEntity, vErr.Error())
	case errors.Is(err, catalog.ErrNotFound):
		respondError(w, http.StatusNotFound, "product not found")
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
