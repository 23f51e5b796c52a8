// internal/i18n/i18n_test.go
package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslations(t *testing.T) {
	require.NoError(t, Initialize("locales"))

	assert.Equal(t, "Credenciales inválidas", T("es", KeyAuthInvalidCredentials))
	assert.Equal(t, "Invalid credentials", T("en", KeyAuthInvalidCredentials))

	// Unknown language falls back to Spanish
	assert.Equal(t, "Credenciales inválidas", T("de", KeyAuthInvalidCredentials))

	// Unknown key falls back to the key itself
	assert.Equal(t, "no.such.key", T("es", "no.such.key"))
}

func TestCouponShareMessage(t *testing.T) {
	require.NoError(t, Initialize("locales"))

	msg := T("es", KeyCouponShareMessage, "ECO14OFFSMARTP", "100.000", 14, "Smartphone Galaxy S23")

	assert.Contains(t, msg, "ECO14OFFSMARTP")
	assert.Contains(t, msg, "$100.000")
	assert.Contains(t, msg, "14% OFF")
	assert.Contains(t, msg, "Smartphone Galaxy S23")
}

func TestSupportedLanguages(t *testing.T) {
	require.NoError(t, Initialize("locales"))

	langs := GetSupportedLanguages()
	assert.ElementsMatch(t, []string{"es", "en"}, langs)
}
