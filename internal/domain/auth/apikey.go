package auth

import "context"

// APIKeyInfo holds the identity and permission data for a validated admin
// API key.
type APIKeyInfo struct {
	ID      string
	KeyHash string
	Name    string
	Scopes  []string
}

// CanManageProducts reports whether the key is allowed to mutate the catalog.
func (k *APIKeyInfo) CanManageProducts() bool {
	for _, s := range k.Scopes {
		if s == "manage_products" {
			return true
		}
	}
	return false
}

// Repository provides lookup of API keys by their HMAC hash.
type Repository interface {
	FindByHash(ctx context.Context, hash string) (*APIKeyInfo, error)
}
