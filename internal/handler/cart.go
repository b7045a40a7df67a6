package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/minhtri-dev/storefront/internal/domain/cart"
	"github.com/minhtri-dev/storefront/internal/domain/catalog"
)

type cartLineResponse struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  *string `json:"image_url,omitempty"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

type cartResponse struct {
	CartID     string             `json:"cart_id"`
	Items      []cartLineResponse `json:"items"`
	TotalItems int                `json:"total_items"`
	TotalValue float64            `json:"total_value"`
}

func toCartResponse(id string, c cart.Cart) cartResponse {
	lines := c.Lines()
	items := make([]cartLineResponse, len(lines))
	for i, l := range lines {
		items[i] = cartLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price.InexactFloat64(),
			ImageURL:  l.ImageURL,
			Quantity:  l.Quantity,
			LineTotal: l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))).InexactFloat64(),
		}
	}
	return cartResponse{
		CartID:     id,
		Items:      items,
		TotalItems: cart.TotalItems(c),
		TotalValue: cart.TotalValue(c).InexactFloat64(),
	}
}

// OpenCart creates a new empty session cart and returns its id.
func (h *Handler) OpenCart(w http.ResponseWriter, _ *http.Request) {
	id := h.carts.Open()
	c, _ := h.carts.Get(id)
	respondJSON(w, http.StatusCreated, toCartResponse(id, c))
}

// GetCart returns the current cart state for a session.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("cartID")
	c, err := h.carts.Get(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "cart not found")
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(id, c))
}

type addItemRequest struct {
	ProductID int64 `json:"product_id"`
}

// AddItem adds one unit of a product to the cart. Adding a product whose
// current stock is absent or zero is rejected with 409 and the cart is left
// unchanged; the guard reads the live catalog snapshot, while lines already
// in the cart keep their captured price.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID := r.PathValue("cartID")

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.store.Get(req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusUnprocessableEntity, "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !p.InStock() {
		respondError(w, http.StatusConflict, "product is out of stock")
		return
	}

	c, err := h.carts.Mutate(cartID, func(c cart.Cart) (cart.Cart, error) {
		return cart.Add(c, p), nil
	})
	if err != nil {
		respondError(w, http.StatusNotFound, "cart not found")
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(cartID, c))
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetItemQuantity sets the quantity of a cart line. Zero removes the line;
// a negative quantity is rejected and the cart is left unchanged.
func (h *Handler) SetItemQuantity(w http.ResponseWriter, r *http.Request) {
	cartID := r.PathValue("cartID")
	productID, ok := pathID(r, "productID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.carts.Mutate(cartID, func(c cart.Cart) (cart.Cart, error) {
		return cart.SetQuantity(c, productID, req.Quantity)
	})
	if err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			respondError(w, http.StatusUnprocessableEntity, "quantity must be a non-negative integer")
			return
		}
		respondError(w, http.StatusNotFound, "cart not found")
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(cartID, c))
}

// RemoveItem deletes a line from the cart. Removing an absent product is a
// no-op and still returns the current cart state.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID := r.PathValue("cartID")
	productID, ok := pathID(r, "productID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	c, err := h.carts.Mutate(cartID, func(c cart.Cart) (cart.Cart, error) {
		return cart.Remove(c, productID), nil
	})
	if err != nil {
		respondError(w, http.StatusNotFound, "cart not found")
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(cartID, c))
}
