package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Form is an admin product submission exactly as the form posts it: every
// field a string, empty meaning "not provided". Parsing happens here, before
// any remote write is attempted.
type Form struct {
	Name          string `json:"name"`
	Price         string `json:"price"`
	OriginalPrice string `json:"original_price"`
	ImageURL      string `json:"image_url"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Rating        string `json:"rating"`
	Reviews       string `json:"reviews"`
	Stock         string `json:"stock"`
}

// Draft is a fully validated product payload ready for persistence. Optional
// fields that were left blank stay nil and persist as SQL NULL rather than
// being defaulted to zero.
type Draft struct {
	Name          string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	ImageURL      *string
	Description   *string
	Category      Category
	Rating        *decimal.Decimal
	Reviews       *int32
	Stock         *int32
}

// ValidationError reports a missing or malformed form field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// ParseForm validates f and converts it into a Draft. It returns a
// *ValidationError on the first missing required field or malformed value;
// no partial result is produced.
func ParseForm(f Form) (Draft, error) {
	var d Draft

	d.Name = strings.TrimSpace(f.Name)
	if d.Name == "" {
		return Draft{}, &ValidationError{Field: "name", Reason: "required"}
	}

	if strings.TrimSpace(f.Price) == "" {
		return Draft{}, &ValidationError{Field: "price", Reason: "required"}
	}
	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	if err != nil {
		return Draft{}, &ValidationError{Field: "price", Reason: "not a number"}
	}
	if price.IsNegative() {
		return Draft{}, &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	d.Price = price

	cat := Category(strings.TrimSpace(f.Category))
	if cat == "" {
		return Draft{}, &ValidationError{Field: "category", Reason: "required"}
	}
	if !cat.Valid() {
		return Draft{}, &ValidationError{Field: "category", Reason: "unknown category"}
	}
	d.Category = cat

	if v := strings.TrimSpace(f.OriginalPrice); v != "" {
		op, err := decimal.NewFromString(v)
		if err != nil {
			return Draft{}, &ValidationError{Field: "original_price", Reason: "not a number"}
		}
		if op.IsNegative() {
			return Draft{}, &ValidationError{Field: "original_price", Reason: "must not be negative"}
		}
		d.OriginalPrice = &op
	}

	if v := strings.TrimSpace(f.ImageURL); v != "" {
		d.ImageURL = &v
	}
	if v := strings.TrimSpace(f.Description); v != "" {
		d.Description = &v
	}

	if v := strings.TrimSpace(f.Rating); v != "" {
		rating, err := decimal.NewFromString(v)
		if err != nil {
			return Draft{}, &ValidationError{Field: "rating", Reason: "not a number"}
		}
		if rating.LessThan(decimal.NewFromInt(1)) || rating.GreaterThan(decimal.NewFromInt(5)) {
			return Draft{}, &ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
		}
		d.Rating = &rating
	}

	if v := strings.TrimSpace(f.Reviews); v != "" {
		reviews, err := parseCount(v)
		if err != nil {
			return Draft{}, &ValidationError{Field: "reviews", Reason: "not a non-negative integer"}
		}
		d.Reviews = &reviews
	}

	if v := strings.TrimSpace(f.Stock); v != "" {
		stock, err := parseCount(v)
		if err != nil {
			return Draft{}, &ValidationError{Field: "stock", Reason: "not a non-negative integer"}
		}
		d.Stock = &stock
	}

	return d, nil
}

func parseCount(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return int32(n), nil
}
