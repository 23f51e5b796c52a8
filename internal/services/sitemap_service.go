// internal/services/sitemap_service.go
package services

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"time"

	"gorm.io/gorm"

	"github.com/ecocupon/ecocanasta-api/internal/models"
)

// SitemapService renders the storefront sitemap: the fixed landing pages
// plus one URL per category and per product.
type SitemapService struct {
	db      *gorm.DB
	baseURL string
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

const sitemapXmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

func NewSitemapService(db *gorm.DB, baseURL string) *SitemapService {
	return &SitemapService{
		db:      db,
		baseURL: baseURL,
	}
}

func (s *SitemapService) Generate() ([]byte, error) {
	var categories []models.Category
	if err := s.db.Order("id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	var products []models.Product
	if err := s.db.Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	return s.Render(time.Now(), categories, products)
}

// Render builds the XML for the given catalog snapshot. Pure: no database,
// no clock.
func (s *SitemapService) Render(now time.Time, categories []models.Category, products []models.Product) ([]byte, error) {
	lastMod := now.Format("2006-01-02")

	set := urlSet{Xmlns: sitemapXmlns}
	set.URLs = append(set.URLs,
		sitemapURL{Loc: s.baseURL + "/", LastMod: lastMod, ChangeFreq: "daily", Priority: "1.0"},
		sitemapURL{Loc: s.baseURL + "/category", LastMod: lastMod, ChangeFreq: "weekly", Priority: "0.9"},
		sitemapURL{Loc: s.baseURL + "/product", LastMod: lastMod, ChangeFreq: "daily", Priority: "0.9"},
	)

	for _, category := range categories {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/category?slug=%s", s.baseURL, url.QueryEscape(category.Slug)),
			LastMod:    lastMod,
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	for _, product := range products {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/product?id=%s", s.baseURL, url.QueryEscape(product.ID)),
			LastMod:    lastMod,
			ChangeFreq: "daily",
			Priority:   "0.6",
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sitemap: %w", err)
	}

	return append([]byte(xml.Header), body...), nil
}
