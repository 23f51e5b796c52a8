// internal/utils/format_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "699.990", FormatPrice(699990))
	assert.Equal(t, "1.299.990", FormatPrice(1299990))
	assert.Equal(t, "950", FormatPrice(950))
	assert.Equal(t, "0", FormatPrice(0))
}
