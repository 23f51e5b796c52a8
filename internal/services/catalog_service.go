// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ecocupon/ecocanasta-api/internal/models"
	"github.com/ecocupon/ecocanasta-api/internal/pricing"
	"github.com/ecocupon/ecocanasta-api/internal/utils"
)

// CatalogService serves the public browsing surface: categories, product
// lists and product detail, each enriched with the derived price quote.
type CatalogService struct {
	db      *gorm.DB
	coupons pricing.CouponGenerator
}

// ProductView is a product plus everything the storefront derives from its
// comparison price.
type ProductView struct {
	models.Product
	Quote  pricing.Quote `json:"quote"`
	Coupon string        `json:"coupon,omitempty"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	CategoryID string   `json:"category_id,omitempty"`
	Shop       string   `json:"shop,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// AllProductsSlug is the special category slug that selects every product.
const AllProductsSlug = "all"

func NewCatalogService(db *gorm.DB, coupons pricing.CouponGenerator) *CatalogService {
	return &CatalogService{
		db:      db,
		coupons: coupons,
	}
}

func (s *CatalogService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (s *CatalogService) GetCategory(slug string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

// GetCategoryProducts resolves a category page. The "all" slug selects every
// product and returns a nil category; any other unknown slug is a not-found.
func (s *CatalogService) GetCategoryProducts(slug string, params utils.PaginationParams) (*models.Category, []ProductView, int64, error) {
	var category *models.Category

	search := ProductSearchParams{PaginationParams: params}
	if slug != AllProductsSlug {
		found, err := s.GetCategory(slug)
		if err != nil {
			return nil, nil, 0, err
		}
		category = found
		search.CategoryID = found.ID
	}

	products, total, err := s.ListProducts(search)
	if err != nil {
		return nil, nil, 0, err
	}
	return category, products, total, nil
}

func (s *CatalogService) ListProducts(params ProductSearchParams) ([]ProductView, int64, error) {
	query := s.db.Model(&models.Product{}).
		Preload("Category").Preload("KnastaPrice")

	if params.CategoryID != "" {
		query = query.Where("category_id = ?", params.CategoryID)
	}

	if params.Shop != "" {
		query = query.Where("shop = ?", params.Shop)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	if len(params.Tags) > 0 {
		query = query.Where("tags && ?", params.Tags)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "name", "price"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, s.enrich(p))
	}
	return views, total, nil
}

func (s *CatalogService) GetProduct(id string) (*ProductView, error) {
	var product models.Product
	if err := s.db.Preload("Category").Preload("Specs").Preload("KnastaPrice").
		Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	view := s.enrich(product)
	return &view, nil
}

// enrich derives the quote and coupon code for a loaded product.
func (s *CatalogService) enrich(p models.Product) ProductView {
	var comparison *int64
	if p.KnastaPrice != nil {
		comparison = &p.KnastaPrice.Price
	}

	quote := pricing.ComputeQuote(p.Price, comparison)

	view := ProductView{Product: p, Quote: quote}
	if quote.HasDiscount() {
		view.Coupon = s.coupons.Code(p.ID, quote.DiscountPercent)
	}
	return view
}
