package catalog

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a mutation targets a product id that is no
// longer present in the catalog.
var ErrNotFound = errors.New("product not found")

// Category is one of the fixed set of product categories the storefront
// sells. The set is closed: validation rejects anything else.
type Category string

const (
	CategoryPhones      Category = "phones"
	CategoryLaptops     Category = "laptops"
	CategoryAccessories Category = "accessories"
	CategoryTablets     Category = "tablets"
	CategoryWatches     Category = "watches"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryPhones,
	CategoryLaptops,
	CategoryAccessories,
	CategoryTablets,
	CategoryWatches,
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryPhones, CategoryLaptops, CategoryAccessories, CategoryTablets, CategoryWatches:
		return true
	}
	return false
}

// Product is a catalog item. Optional attributes use pointer fields so that
// "absent" and "present with a value" stay distinguishable all the way down
// to the NULLable database columns; a nil Stock and a zero Stock are only
// conflated where purchase gating is concerned (see InStock).
type Product struct {
	ID            int64
	Name          string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	ImageURL      *string
	Description   *string
	Category      Category
	Rating        *decimal.Decimal
	Reviews       *int32
	Stock         *int32
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InStock reports whether the product can currently be added to a cart.
// Both an absent stock count and an explicit zero mean "no stock".
func (p Product) InStock() bool {
	return p.Stock != nil && *p.Stock > 0
}

// Repository defines the remote persistence operations the catalog needs.
// Reads are ordered by creation recency, most recent first.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Insert(ctx context.Context, d Draft) (*Product, error)
	Update(ctx context.Context, id int64, d Draft) (*Product, error)
	Delete(ctx context.Context, id int64) error
}
