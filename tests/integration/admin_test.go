//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAdmin_RequiresAPIKey(t *testing.T) {
	resp := doGet(t, "/api/admin/products")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestAdmin_RejectsWrongKey(t *testing.T) {
	resp := doWithAuth(t, http.MethodGet, "/api/admin/products", nil, "not-the-key")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestAdmin_ListProducts(t *testing.T) {
	resp := doWithAuth(t, http.MethodGet, "/api/admin/products", nil, adminAPIKey)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	products := decodeJSON[[]productResponse](t, resp)
	if len(products) < seededCount {
		t.Fatalf("expected at least %d products, got %d", seededCount, len(products))
	}
}

func TestAdmin_CreateUpdateDelete(t *testing.T) {
	resp := doWithAuth(t, http.MethodPost, "/api/admin/products", productForm{
		Name:     "Integration Keyboard",
		Price:    "89.00",
		Category: "accessories",
		Stock:    "40",
	}, adminAPIKey)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.StatusCode)
	}
	created := decodeJSON[productResponse](t, resp)
	resp.Body.Close()

	// The new product is visible on the public surface right away.
	check := doGet(t, fmt.Sprintf("/api/products/%d", created.ID))
	if check.StatusCode != http.StatusOK {
		t.Fatalf("get created: expected 200, got %d", check.StatusCode)
	}
	check.Body.Close()

	resp = doWithAuth(t, http.MethodPut, fmt.Sprintf("/api/admin/products/%d", created.ID), productForm{
		Name:     "Integration Keyboard Pro",
		Price:    "99.00",
		Category: "accessories",
		Stock:    "40",
	}, adminAPIKey)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", resp.StatusCode)
	}
	updated := decodeJSON[productResponse](t, resp)
	resp.Body.Close()
	if updated.Name != "Integration Keyboard Pro" || updated.Price != 99 {
		t.Errorf("update not applied: %+v", updated)
	}

	resp = doWithAuth(t, http.MethodDelete, fmt.Sprintf("/api/admin/products/%d", created.ID), nil, adminAPIKey)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	check = doGet(t, fmt.Sprintf("/api/products/%d", created.ID))
	defer check.Body.Close()
	if check.StatusCode != http.StatusNotFound {
		t.Fatalf("get deleted: expected 404, got %d", check.StatusCode)
	}
}

func TestAdmin_CreateValidation(t *testing.T) {
	resp := doWithAuth(t, http.MethodPost, "/api/admin/products", productForm{
		Name:     "Broken",
		Price:    "not-a-price",
		Category: "accessories",
	}, adminAPIKey)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	errResp := decodeJSON[errorResponse](t, resp)
	if errResp.Message == "" {
		t.Error("expected a validation message")
	}
}

func TestAdmin_Stats(t *testing.T) {
	resp := doWithAuth(t, http.MethodGet, "/api/admin/stats", nil, adminAPIKey)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	stats := decodeJSON[statsResponse](t, resp)
	if stats.ProductCount < seededCount {
		t.Errorf("product count: got %d, want at least %d", stats.ProductCount, seededCount)
	}
	if stats.InventoryValue <= 0 {
		t.Error("inventory value should be positive")
	}
}
