package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/minhtri-dev/storefront/internal/domain/catalog"
)

// errorResponse is the structured error body for every failed request.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Code: status, Message: message})
}

// productResponse is the JSON shape of a catalog product. Optional fields
// that are absent in the catalog are omitted rather than zeroed.
type productResponse struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	ImageURL      *string  `json:"image_url,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Category      string   `json:"category"`
	Rating        *float64 `json:"rating,omitempty"`
	Reviews       *int32   `json:"reviews,omitempty"`
	Stock         *int32   `json:"stock,omitempty"`
	InStock       bool     `json:"in_stock"`
}

func toProductResponse(p catalog.Product) productResponse {
	resp := productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.InexactFloat64(),
		ImageURL:    p.ImageURL,
		Description: p.Description,
		Category:    string(p.Category),
		Reviews:     p.Reviews,
		Stock:       p.Stock,
		InStock:     p.InStock(),
	}
	if p.OriginalPrice != nil {
		v := p.OriginalPrice.InexactFloat64()
		resp.OriginalPrice = &v
	}
	if p.Rating != nil {
		v := p.Rating.InexactFloat64()
		resp.Rating = &v
	}
	return resp
}

func toProductResponses(products []catalog.Product) []productResponse {
	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}

// pathID parses the {id} path segment as a product id.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
