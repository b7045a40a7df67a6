package handler

import (
	"net/http"

	"github.com/go-faster/errors"

	"github.com/minhtri-dev/storefront/internal/domain/catalog"
)

// ListProducts returns the catalog snapshot, optionally narrowed by the `q`
// query parameter (case-insensitive substring match on the product name).
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := catalog.Filter(h.store.Snapshot(), r.URL.Query().Get("q"))
	respondJSON(w, http.StatusOK, toProductResponses(products))
}

// GetProduct returns a single product from the snapshot by id.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	p, err := h.store.Get(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, toProductResponse(p))
}
