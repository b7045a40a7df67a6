package catalog

import "strings"

// Filter returns the products whose name contains query, case-insensitively.
// An empty query returns the input unchanged: same elements, same order.
// The input slice is never mutated.
func Filter(products []Product, query string) []Product {
	if query == "" {
		return products
	}
	q := strings.ToLower(query)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}

// FilterAdmin matches query against name or category, the way the admin
// search box does. Empty query returns the input unchanged.
func FilterAdmin(products []Product, query string) []Product {
	if query == "" {
		return products
	}
	q := strings.ToLower(query)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(string(p.Category)), q) {
			out = append(out, p)
		}
	}
	return out
}
