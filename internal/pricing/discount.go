// internal/pricing/discount.go

// Package pricing derives discounts and coupon codes from a regular price
// and an optional externally sourced comparison price. Everything here is
// pure: same inputs, same outputs, no persistence.
package pricing

// Quote is the derived price-comparison result for a product.
type Quote struct {
	DiscountPercent int   `json:"discount_percent"`
	Savings         int64 `json:"savings"`
	DisplayPrice    int64 `json:"display_price"`
}

// HasDiscount reports whether the comparison price undercuts the regular one.
func (q Quote) HasDiscount() bool {
	return q.DiscountPercent > 0
}

// ComputeQuote derives the discount percentage, savings amount and display
// price. Prices are whole currency units. Rules:
//
//   - no comparison price, or comparison >= regular: discount 0, display the
//     regular price
//   - comparison < regular: savings = regular - comparison, discount =
//     round-half-up((regular-comparison)/regular*100), display the
//     comparison price
//
// A zero regular price never divides; it yields discount 0. The percentage is
// clamped to [1, 100] whenever there is a real saving, so a tiny undercut is
// never reported as 0%.
func ComputeQuote(regular int64, comparison *int64) Quote {
	if regular <= 0 || comparison == nil || *comparison < 0 || *comparison >= regular {
		if regular < 0 {
			regular = 0
		}
		return Quote{DisplayPrice: regular}
	}

	savings := regular - *comparison

	// round-half-up of savings*100/regular using integer math
	pct := int((savings*200 + regular) / (2 * regular))
	if pct < 1 {
		pct = 1
	}
	if pct > 100 {
		pct = 100
	}

	return Quote{
		DiscountPercent: pct,
		Savings:         savings,
		DisplayPrice:    *comparison,
	}
}
