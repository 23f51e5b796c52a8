// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"+56912345678", "56912345678", true},
		{"56 9 1234 5678", "56912345678", true},
		{"(569) 1234-5678", "56912345678", true},
		{"12345678", "12345678", true},
		{"1234567", "", false},                      // too short
		{"1234567890123456", "", false},             // too long
		{"abc", "", false},                          // no digits
		{"+56 9 1234 5678 ext 9999999999", "", false}, // over the raw-length cap
	}

	for _, tc := range cases {
		got, ok := NormalizePhone(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestValidateExternalURL(t *testing.T) {
	valid := []string{
		"https://knasta.cl/producto/smartphone-galaxy-s23",
		"http://example.com/path?q=1",
	}
	for _, u := range valid {
		got, ok := ValidateExternalURL(u)
		assert.True(t, ok, u)
		assert.Equal(t, u, got)
	}

	invalid := []string{
		"",
		"javascript:alert(1)",
		"data:text/html,hi",
		"ftp://example.com/file",
		"/relative/path",
	}
	for _, u := range invalid {
		_, ok := ValidateExternalURL(u)
		assert.False(t, ok, u)
	}
}

func TestValidateStructPhoneTag(t *testing.T) {
	type shareRequest struct {
		Phone string `validate:"required,phone"`
	}

	assert.NoError(t, ValidateStruct(&shareRequest{Phone: "+56912345678"}))
	assert.Error(t, ValidateStruct(&shareRequest{Phone: "nope"}))
}

func TestValidateStructStrongPassword(t *testing.T) {
	type registerRequest struct {
		Password string `validate:"required,strong_password"`
	}

	assert.NoError(t, ValidateStruct(&registerRequest{Password: "TestPass123!"}))
	assert.Error(t, ValidateStruct(&registerRequest{Password: "weakpass"}))
	assert.Error(t, ValidateStruct(&registerRequest{Password: "Short1!"}))
}
