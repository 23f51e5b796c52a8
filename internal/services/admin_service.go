// internal/services/admin_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/ecocupon/ecocanasta-api/internal/database"
	"github.com/ecocupon/ecocanasta-api/internal/models"
	"github.com/ecocupon/ecocanasta-api/internal/utils"
)

// AdminService backs the admin panel: dashboard stats, catalog CRUD, user
// role management and the sample-data seeder.
type AdminService struct {
	db *gorm.DB
}

type DashboardStats struct {
	TotalProducts        int64 `json:"total_products"`
	TotalCategories      int64 `json:"total_categories"`
	TotalUsers           int64 `json:"total_users"`
	ProductsWithDiscount int64 `json:"products_with_discount"`
	TotalSavings         int64 `json:"total_savings"`
}

type ProductSpecInput struct {
	Name  string `json:"name" validate:"required,max=255"`
	Value string `json:"value" validate:"required,max=255"`
}

type CreateProductRequest struct {
	ID          string             `json:"id" validate:"required,min=2,max=64"`
	Name        string             `json:"name" validate:"required,min=2,max=255"`
	Description string             `json:"description,omitempty"`
	Price       int64              `json:"price" validate:"required,min=0"`
	Image       string             `json:"image,omitempty" validate:"omitempty,max=512"`
	CategoryID  string             `json:"category_id" validate:"required"`
	Shop        string             `json:"shop,omitempty" validate:"omitempty,max=255"`
	Tags        []string           `json:"tags,omitempty"`
	Specs       []ProductSpecInput `json:"specs,omitempty" validate:"omitempty,dive"`
}

type UpdateProductRequest struct {
	Name        string             `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description *string            `json:"description,omitempty"`
	Price       *int64             `json:"price,omitempty" validate:"omitempty,min=0"`
	Image       string             `json:"image,omitempty" validate:"omitempty,max=512"`
	CategoryID  string             `json:"category_id,omitempty"`
	Shop        *string            `json:"shop,omitempty"`
	Tags        []string           `json:"tags,omitempty"`
	Specs       []ProductSpecInput `json:"specs,omitempty" validate:"omitempty,dive"`
}

type CreateCategoryRequest struct {
	ID          string `json:"id" validate:"required,min=2,max=64"`
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Slug        string `json:"slug" validate:"required,min=2,max=64"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty" validate:"omitempty,max=512"`
}

type UpdateCategoryRequest struct {
	Name        string  `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Slug        string  `json:"slug,omitempty" validate:"omitempty,min=2,max=64"`
	Description *string `json:"description,omitempty"`
	Image       string  `json:"image,omitempty" validate:"omitempty,max=512"`
}

type UpdateUserRoleRequest struct {
	Role models.Role `json:"role" validate:"required"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := s.db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if err := s.db.Model(&models.Category{}).Count(&stats.TotalCategories).Error; err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	discounted := s.db.Model(&models.KnastaPrice{}).
		Joins("JOIN products ON products.id = knasta_prices.product_id").
		Where("knasta_prices.price < products.price")

	if err := discounted.Count(&stats.ProductsWithDiscount).Error; err != nil {
		return nil, fmt.Errorf("failed to count discounted products: %w", err)
	}
	if err := discounted.
		Select("COALESCE(SUM(products.price - knasta_prices.price), 0)").
		Scan(&stats.TotalSavings).Error; err != nil {
		return nil, fmt.Errorf("failed to sum savings: %w", err)
	}

	return stats, nil
}

// Product management

func (s *AdminService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := s.ensureCategoryExists(req.CategoryID); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:          normalizeSlug(req.ID),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		CategoryID:  req.CategoryID,
		Shop:        req.Shop,
		Tags:        req.Tags,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return replaceSpecs(tx, product.ID, req.Specs)
	})
	if err != nil {
		return nil, err
	}

	s.db.Preload("Category").Preload("Specs").First(product, "id = ?", product.ID)
	return product, nil
}

func (s *AdminService) UpdateProduct(id string, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Image != "" {
		updates["image"] = req.Image
	}
	if req.CategoryID != "" {
		if err := s.ensureCategoryExists(req.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = req.CategoryID
	}
	if req.Shop != nil {
		updates["shop"] = *req.Shop
	}
	if req.Tags != nil {
		updates["tags"] = pq.StringArray(req.Tags)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&product).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update product: %w", err)
			}
		}
		if req.Specs != nil {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductSpec{}).Error; err != nil {
				return fmt.Errorf("failed to clear specs: %w", err)
			}
			return replaceSpecs(tx, product.ID, req.Specs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.db.Preload("Category").Preload("Specs").Preload("KnastaPrice").First(&product, "id = ?", id)
	return &product, nil
}

func (s *AdminService) DeleteProduct(id string) error {
	var product models.Product
	if err := s.db.Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductSpec{}).Error; err != nil {
			return fmt.Errorf("failed to delete specs: %w", err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.KnastaPrice{}).Error; err != nil {
			return fmt.Errorf("failed to delete comparison price: %w", err)
		}
		if err := tx.Delete(&product).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
}

// Category management

func (s *AdminService) CreateCategory(req *CreateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.Slug == AllProductsSlug {
		return nil, fmt.Errorf("validation failed: slug %q is reserved", AllProductsSlug)
	}

	category := &models.Category{
		ID:          normalizeSlug(req.ID),
		Name:        req.Name,
		Slug:        normalizeSlug(req.Slug),
		Description: req.Description,
		Image:       req.Image,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *AdminService) UpdateCategory(id string, req *UpdateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var category models.Category
	if err := s.db.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Slug != "" {
		if req.Slug == AllProductsSlug {
			return nil, fmt.Errorf("validation failed: slug %q is reserved", AllProductsSlug)
		}
		updates["slug"] = normalizeSlug(req.Slug)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Image != "" {
		updates["image"] = req.Image
	}

	if len(updates) > 0 {
		if err := s.db.Model(&category).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update category: %w", err)
		}
	}
	return &category, nil
}

// DeleteCategory refuses to delete a category that still has products.
func (s *AdminService) DeleteCategory(id string) error {
	var category models.Category
	if err := s.db.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	var productCount int64
	if err := s.db.Model(&models.Product{}).Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if productCount > 0 {
		return ErrCategoryInUse
	}

	if err := s.db.Delete(&category).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// User management

func (s *AdminService) ListUsers(params utils.PaginationParams) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{}).Preload("Profile")

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(email) LIKE ?", searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	allowedSortFields := []string{"created_at", "email", "last_login_at"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, total, nil
}

func (s *AdminService) UpdateUserRole(userID uuid.UUID, req *UpdateUserRoleRequest) (*models.User, error) {
	if !req.Role.Valid() {
		return nil, fmt.Errorf("validation failed: unknown role %q", req.Role)
	}

	var user models.User
	if err := s.db.Preload("Profile").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&models.Profile{}).Where("id = ?", userID).
		Update("role", req.Role).Error; err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	if user.Profile != nil {
		user.Profile.Role = req.Role
	}
	return &user, nil
}

// SeedSampleData loads the fixed demo catalog, upserting on conflicts so it
// can be re-run safely.
func (s *AdminService) SeedSampleData() error {
	return database.SeedSampleData(s.db)
}

// helpers

func (s *AdminService) ensureCategoryExists(id string) error {
	var category models.Category
	if err := s.db.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}
	return nil
}

func replaceSpecs(tx *gorm.DB, productID string, specs []ProductSpecInput) error {
	for _, spec := range specs {
		record := &models.ProductSpec{
			ProductID: productID,
			Name:      spec.Name,
			Value:     spec.Value,
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to create spec: %w", err)
		}
	}
	return nil
}

func normalizeSlug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
