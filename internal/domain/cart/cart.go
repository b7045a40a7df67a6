// Package cart implements the shopping cart ledger: an ordered set of
// product lines with quantities, pure in-memory state with no persistence
// and no suspension points.
package cart

import (
	"slices"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/minhtri-dev/storefront/internal/domain/catalog"
)

// ErrInvalidQuantity is returned when a quantity outside the allowed range
// is requested. The cart is left unchanged.
var ErrInvalidQuantity = errors.New("quantity must be a non-negative integer")

// Line is a single product entry in a cart. Name, Price, and ImageURL are
// captured from the product at the time of first addition and deliberately
// never refreshed: a later catalog price change does not reprice lines
// already in the cart.
type Line struct {
	ProductID int64
	Name      string
	Price     decimal.Decimal
	ImageURL  *string
	Quantity  int
}

// Cart is an ordered collection of lines, insertion order preserved, with at
// most one line per product id. The zero value is an empty cart. Operations
// return a new Cart value and leave the receiver's lines unshared.
type Cart struct {
	lines []Line
}

// Lines returns a copy of the cart's lines in insertion order.
func (c Cart) Lines() []Line {
	return slices.Clone(c.lines)
}

// Len returns the number of distinct lines.
func (c Cart) Len() int {
	return len(c.lines)
}

// Empty reports whether the cart holds no lines.
func (c Cart) Empty() bool {
	return len(c.lines) == 0
}

// Add puts one unit of p into the cart. If a line for p.ID already exists its
// quantity increments by one and every other field stays as first captured;
// otherwise a new line with quantity 1 is appended at the end.
func Add(c Cart, p catalog.Product) Cart {
	lines := slices.Clone(c.lines)
	for i := range lines {
		if lines[i].ProductID == p.ID {
			lines[i].Quantity++
			return Cart{lines: lines}
		}
	}
	return Cart{lines: append(lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Quantity:  1,
	})}
}

// Remove deletes the line for productID. Removing an absent id is a no-op,
// not an error.
func Remove(c Cart, productID int64) Cart {
	lines := slices.DeleteFunc(slices.Clone(c.lines), func(l Line) bool {
		return l.ProductID == productID
	})
	return Cart{lines: lines}
}

// SetQuantity sets the quantity of the line for productID. A quantity of
// zero is equivalent to Remove; a negative quantity fails with
// ErrInvalidQuantity and the cart is returned unchanged. Setting a quantity
// for an absent id is a no-op.
func SetQuantity(c Cart, productID int64, qty int) (Cart, error) {
	if qty < 0 {
		return c, ErrInvalidQuantity
	}
	if qty == 0 {
		return Remove(c, productID), nil
	}

	lines := slices.Clone(c.lines)
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = qty
			break
		}
	}
	return Cart{lines: lines}, nil
}

// TotalItems returns the sum of all line quantities; 0 for an empty cart.
func TotalItems(c Cart) int {
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// TotalValue returns the sum of price * quantity over all lines, using each
// line's captured price rather than a live catalog lookup.
func TotalValue(c Cart) decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}
