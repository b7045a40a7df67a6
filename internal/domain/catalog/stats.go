package catalog

import "github.com/shopspring/decimal"

// Stats holds the admin dashboard aggregates, always computed from the
// current snapshot rather than cached.
type Stats struct {
	ProductCount int
	// InventoryValue is the sum of price * stock over the whole catalog.
	// Products without a stock count contribute nothing.
	InventoryValue decimal.Decimal
	// AverageRating averages over rated products only; zero when none are rated.
	AverageRating decimal.Decimal
}

// Stats computes dashboard aggregates from the current snapshot.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		ProductCount:   len(s.products),
		InventoryValue: decimal.Zero,
		AverageRating:  decimal.Zero,
	}

	ratingSum := decimal.Zero
	rated := 0
	for _, p := range s.products {
		if p.Stock != nil {
			st.InventoryValue = st.InventoryValue.Add(p.Price.Mul(decimal.NewFromInt32(*p.Stock)))
		}
		if p.Rating != nil {
			ratingSum = ratingSum.Add(*p.Rating)
			rated++
		}
	}
	if rated > 0 {
		st.AverageRating = ratingSum.Div(decimal.NewFromInt(int64(rated))).Round(2)
	}
	return st
}
