// internal/services/knasta_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ecocupon/ecocanasta-api/internal/knasta"
	"github.com/ecocupon/ecocanasta-api/internal/models"
	"github.com/ecocupon/ecocanasta-api/internal/utils"
)

// KnastaService refreshes comparison prices through an injected PriceFetcher
// and keeps at most one active row per product in knasta_prices.
type KnastaService struct {
	db      *gorm.DB
	fetcher knasta.PriceFetcher
}

// RefreshFailure is one product that could not be refreshed.
type RefreshFailure struct {
	ProductID string `json:"product_id"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
}

// RefreshReport aggregates a refresh-all run. A partial failure does not
// abort the run; every product is attempted.
type RefreshReport struct {
	Total     int              `json:"total"`
	Updated   int              `json:"updated"`
	Failed    []RefreshFailure `json:"failed"`
	StartedAt time.Time        `json:"started_at"`
	Duration  string           `json:"duration"`
}

func NewKnastaService(db *gorm.DB, fetcher knasta.PriceFetcher) *KnastaService {
	return &KnastaService{
		db:      db,
		fetcher: fetcher,
	}
}

// ListComparisonPrices returns the admin price table: every product with its
// current comparison price, if any.
func (s *KnastaService) ListComparisonPrices(params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Preload("KnastaPrice").Preload("Category")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "name", "price"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, total, nil
}

// RefreshProduct fetches and upserts the comparison price for one product.
// The fetch starts from the existing comparison price when there is one,
// falling back to the regular price.
func (s *KnastaService) RefreshProduct(ctx context.Context, productID string) (*models.KnastaPrice, error) {
	var product models.Product
	if err := s.db.Preload("KnastaPrice").Where("id = ?", productID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return s.refresh(ctx, &product)
}

func (s *KnastaService) refresh(ctx context.Context, product *models.Product) (*models.KnastaPrice, error) {
	currentPrice := product.Price
	if product.KnastaPrice != nil {
		currentPrice = product.KnastaPrice.Price
	}

	fetched, err := s.fetcher.FetchComparisonPrice(ctx, product.ID, currentPrice)
	if err != nil {
		return nil, err
	}

	// Fetched source URLs end up as public links on product pages; drop
	// anything that is not an absolute http(s) URL.
	sourceURL, ok := utils.ValidateExternalURL(fetched.SourceURL)
	if !ok && fetched.SourceURL != "" {
		logrus.WithFields(logrus.Fields{
			"product_id": product.ID,
			"url":        fetched.SourceURL,
		}).Warn("Dropping unsafe comparison price URL")
	}

	record := &models.KnastaPrice{
		ProductID:   product.ID,
		Price:       fetched.Amount,
		URL:         sourceURL,
		LastUpdated: time.Now(),
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "url", "last_updated"}),
	}).Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to upsert comparison price: %w", err)
	}

	return record, nil
}

// RefreshAll attempts every product and reports the aggregate outcome.
func (s *KnastaService) RefreshAll(ctx context.Context) (*RefreshReport, error) {
	var products []models.Product
	if err := s.db.Preload("KnastaPrice").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	report := &RefreshReport{
		Total:     len(products),
		Failed:    []RefreshFailure{},
		StartedAt: time.Now(),
	}

	for i := range products {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if _, err := s.refresh(ctx, &products[i]); err != nil {
			report.Failed = append(report.Failed, classifyFailure(products[i].ID, err))
			logrus.WithError(err).WithField("product_id", products[i].ID).
				Warn("Comparison price refresh failed")
			continue
		}
		report.Updated++
	}

	report.Duration = time.Since(report.StartedAt).String()
	return report, nil
}

func classifyFailure(productID string, err error) RefreshFailure {
	var fetchErr *knasta.FetchError
	if errors.As(err, &fetchErr) {
		return RefreshFailure{
			ProductID: productID,
			Kind:      string(fetchErr.Kind),
			Message:   fetchErr.Error(),
		}
	}
	return RefreshFailure{
		ProductID: productID,
		Kind:      "internal",
		Message:   err.Error(),
	}
}
