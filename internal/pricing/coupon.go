// internal/pricing/coupon.go
package pricing

import (
	"fmt"
	"strings"
)

// CouponGenerator builds display-only coupon codes. Codes are deterministic
// and never persisted; collisions between products whose truncated
// identifiers match are accepted.
type CouponGenerator struct {
	Prefix   string
	Infix    string
	IDLength int
}

func DefaultCouponGenerator() CouponGenerator {
	return CouponGenerator{
		Prefix:   "ECO",
		Infix:    "OFF",
		IDLength: 6,
	}
}

// Code produces "<prefix><discount><infix><normalized id>", e.g.
// ECO14OFFSMARTP. Returns the empty string when there is no discount.
func (g CouponGenerator) Code(productID string, discountPercent int) string {
	if discountPercent <= 0 || productID == "" {
		return ""
	}
	return fmt.Sprintf("%s%d%s%s", g.Prefix, discountPercent, g.Infix, g.normalizeID(productID))
}

// normalizeID uppercases the identifier and truncates it to IDLength runes,
// so multi-byte identifiers are never cut mid-character.
func (g CouponGenerator) normalizeID(productID string) string {
	id := strings.ToUpper(productID)
	if g.IDLength > 0 {
		if runes := []rune(id); len(runes) > g.IDLength {
			id = string(runes[:g.IDLength])
		}
	}
	return id
}
