//go:build integration

package integration

import (
	"net/http"
	"testing"
)

func openTestCart(t *testing.T) string {
	t.Helper()

	resp := doPost(t, "/api/carts", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	c := decodeJSON[cartResponse](t, resp)
	if c.CartID == "" {
		t.Fatal("empty cart id")
	}
	return c.CartID
}

func TestCart_OpenAndGet(t *testing.T) {
	cartID := openTestCart(t)

	resp := doGet(t, "/api/carts/"+cartID)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	c := decodeJSON[cartResponse](t, resp)
	if len(c.Items) != 0 || c.TotalItems != 0 || c.TotalValue != 0 {
		t.Errorf("expected empty cart, got %+v", c)
	}
}

func TestCart_AddSetRemove(t *testing.T) {
	cartID := openTestCart(t)

	// Two adds of the same product collapse into one line.
	for i := 0; i < 2; i++ {
		resp := doPost(t, "/api/carts/"+cartID+"/items", addItemRequest{ProductID: 1})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("add item: expected 200, got %d", resp.StatusCode)
		}
		resp.Body.Close()
	}

	resp := doGet(t, "/api/carts/"+cartID)
	c := decodeJSON[cartResponse](t, resp)
	resp.Body.Close()
	if len(c.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 2 {
		t.Errorf("quantity: got %d, want 2", c.Items[0].Quantity)
	}
	if c.TotalValue != 1998 {
		t.Errorf("total value: got %v, want 1998", c.TotalValue)
	}

	resp = doPut(t, "/api/carts/"+cartID+"/items/1", setQuantityRequest{Quantity: 5})
	c = decodeJSON[cartResponse](t, resp)
	resp.Body.Close()
	if c.TotalItems != 5 {
		t.Errorf("total items after set: got %d, want 5", c.TotalItems)
	}

	// Quantity zero removes the line.
	resp = doPut(t, "/api/carts/"+cartID+"/items/1", setQuantityRequest{Quantity: 0})
	c = decodeJSON[cartResponse](t, resp)
	resp.Body.Close()
	if len(c.Items) != 0 {
		t.Errorf("expected empty cart after zero quantity, got %d lines", len(c.Items))
	}
}

func TestCart_AddOutOfStock(t *testing.T) {
	cartID := openTestCart(t)

	// Product 2 is seeded with stock 0.
	resp := doPost(t, "/api/carts/"+cartID+"/items", addItemRequest{ProductID: 2})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}

	check := doGet(t, "/api/carts/"+cartID)
	defer check.Body.Close()
	c := decodeJSON[cartResponse](t, check)
	if len(c.Items) != 0 {
		t.Errorf("cart should be unchanged after rejected add, got %d lines", len(c.Items))
	}
}

func TestCart_AddUnknownProduct(t *testing.T) {
	cartID := openTestCart(t)

	resp := doPost(t, "/api/carts/"+cartID+"/items", addItemRequest{ProductID: 999})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestCart_NegativeQuantity(t *testing.T) {
	cartID := openTestCart(t)

	resp := doPost(t, "/api/carts/"+cartID+"/items", addItemRequest{ProductID: 1})
	resp.Body.Close()

	resp = doPut(t, "/api/carts/"+cartID+"/items/1", setQuantityRequest{Quantity: -3})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}

	check := doGet(t, "/api/carts/"+cartID)
	defer check.Body.Close()
	c := decodeJSON[cartResponse](t, check)
	if len(c.Items) != 1 || c.Items[0].Quantity != 1 {
		t.Errorf("cart should be unchanged after rejected set, got %+v", c.Items)
	}
}

func TestCart_UnknownSession(t *testing.T) {
	resp := doGet(t, "/api/carts/no-such-cart")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
