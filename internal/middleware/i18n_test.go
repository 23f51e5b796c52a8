// internal/middleware/i18n_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestI18nMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(I18nMiddleware())
	r.GET("/", func(c *gin.Context) {
		lang, _ := c.Get("lang")
		c.String(http.StatusOK, lang.(string))
	})

	cases := []struct {
		header string
		want   string
	}{
		{"", "es"},
		{"es", "es"},
		{"es-CL", "es"},
		{"es-CL,es;q=0.9,en;q=0.8", "es"},
		{"en", "en"},
		{"en-US,en;q=0.9", "en"},
		{"de-DE,de;q=0.9", "es"}, // unsupported falls back to Spanish
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/", nil)
		if tc.header != "" {
			req.Header.Set("Accept-Language", tc.header)
		}
		r.ServeHTTP(w, req)

		assert.Equal(t, tc.want, w.Body.String(), "header %q", tc.header)
	}
}
