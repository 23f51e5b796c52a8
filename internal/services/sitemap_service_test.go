// internal/services/sitemap_service_test.go
package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecocupon/ecocanasta-api/internal/models"
)

func TestSitemapRender(t *testing.T) {
	svc := NewSitemapService(nil, "https://ecocanasta.ecocupon.cl")

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	categories := []models.Category{
		{ID: "electronics", Slug: "electronics", Name: "Electrónica"},
		{ID: "home", Slug: "home", Name: "Hogar"},
	}
	products := []models.Product{
		{ID: "smartphone-1", Name: "Smartphone Galaxy S23"},
		{ID: "laptop-1", Name: "Notebook Gamer"},
	}

	body, err := svc.Render(now, categories, products)
	require.NoError(t, err)

	xml := string(body)
	assert.True(t, strings.HasPrefix(xml, "<?xml"))
	assert.Contains(t, xml, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)

	// Fixed landing pages
	assert.Contains(t, xml, "<loc>https://ecocanasta.ecocupon.cl/</loc>")
	assert.Contains(t, xml, "<loc>https://ecocanasta.ecocupon.cl/category</loc>")
	assert.Contains(t, xml, "<loc>https://ecocanasta.ecocupon.cl/product</loc>")
	assert.Contains(t, xml, "<priority>1.0</priority>")

	// Per-category and per-product URLs
	assert.Contains(t, xml, "<loc>https://ecocanasta.ecocupon.cl/category?slug=electronics</loc>")
	assert.Contains(t, xml, "<loc>https://ecocanasta.ecocupon.cl/product?id=smartphone-1</loc>")
	assert.Contains(t, xml, "<priority>0.8</priority>")
	assert.Contains(t, xml, "<priority>0.6</priority>")

	// Dates come from the supplied clock
	assert.Contains(t, xml, "<lastmod>2026-08-28</lastmod>")

	// Frequencies
	assert.Contains(t, xml, "<changefreq>daily</changefreq>")
	assert.Contains(t, xml, "<changefreq>weekly</changefreq>")
}

func TestSitemapRenderEscapesIDs(t *testing.T) {
	svc := NewSitemapService(nil, "https://example.com")

	products := []models.Product{{ID: "tv 4k&more"}}
	body, err := svc.Render(time.Now(), nil, products)
	require.NoError(t, err)

	assert.Contains(t, string(body), "id=tv+4k%26more")
}

func TestSitemapRenderEmptyCatalog(t *testing.T) {
	svc := NewSitemapService(nil, "https://example.com")

	body, err := svc.Render(time.Now(), nil, nil)
	require.NoError(t, err)

	// Only the three fixed pages
	assert.Equal(t, 3, strings.Count(string(body), "<url>"))
}
