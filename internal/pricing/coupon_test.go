// internal/pricing/coupon_test.go
package pricing

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestCouponCodeFormat(t *testing.T) {
	g := DefaultCouponGenerator()

	assert.Equal(t, "ECO14OFFSMARTP", g.Code("smartphone-1", 14))
	assert.Equal(t, "ECO8OFFLAPTOP", g.Code("laptop-1", 8))
}

func TestCouponCodeDeterministic(t *testing.T) {
	g := DefaultCouponGenerator()

	first := g.Code("smartphone-1", 14)
	second := g.Code("smartphone-1", 14)
	assert.Equal(t, first, second)
}

func TestCouponCodeShortIdentifier(t *testing.T) {
	g := DefaultCouponGenerator()

	// Identifiers shorter than the bound are kept whole.
	assert.Equal(t, "ECO20OFFTV-1", g.Code("tv-1", 20))
}

func TestCouponCodeMultiByteIdentifier(t *testing.T) {
	g := DefaultCouponGenerator()

	// "añejo-1" uppercases to "AÑEJO-1", 7 runes but 8 bytes. Truncation
	// counts runes so the Ñ is kept whole.
	code := g.Code("añejo-1", 14)
	assert.Equal(t, "ECO14OFFAÑEJO-", code)
	assert.True(t, utf8.ValidString(code))

	// Multi-byte rune exactly at the bound
	code = g.Code("abcdeñ", 14)
	assert.Equal(t, "ECO14OFFABCDEÑ", code)
	assert.True(t, utf8.ValidString(code))
}

func TestCouponCodeNoDiscount(t *testing.T) {
	g := DefaultCouponGenerator()

	assert.Empty(t, g.Code("smartphone-1", 0))
	assert.Empty(t, g.Code("smartphone-1", -3))
	assert.Empty(t, g.Code("", 14))
}

func TestCouponCodeCustomGenerator(t *testing.T) {
	g := CouponGenerator{Prefix: "ECO", Infix: "OFF", IDLength: 4}

	assert.Equal(t, "ECO14OFFSMAR", g.Code("smartphone-1", 14))
}
