// internal/services/catalog_service_test.go
package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecocupon/ecocanasta-api/internal/models"
	"github.com/ecocupon/ecocanasta-api/internal/pricing"
	"github.com/ecocupon/ecocanasta-api/internal/utils"
)

func TestEnrichWithDiscount(t *testing.T) {
	svc := NewCatalogService(nil, pricing.DefaultCouponGenerator())

	product := models.Product{
		ID:    "smartphone-1",
		Name:  "Smartphone Galaxy S23",
		Price: 699990,
		KnastaPrice: &models.KnastaPrice{
			ProductID: "smartphone-1",
			Price:     599990,
		},
	}

	view := svc.enrich(product)

	assert.Equal(t, 14, view.Quote.DiscountPercent)
	assert.Equal(t, int64(100000), view.Quote.Savings)
	assert.Equal(t, int64(599990), view.Quote.DisplayPrice)
	assert.Equal(t, "ECO14OFFSMARTP", view.Coupon)
}

func TestEnrichWithoutComparisonPrice(t *testing.T) {
	svc := NewCatalogService(nil, pricing.DefaultCouponGenerator())

	product := models.Product{
		ID:    "tv-1",
		Price: 449990,
	}

	view := svc.enrich(product)

	assert.False(t, view.Quote.HasDiscount())
	assert.Equal(t, int64(449990), view.Quote.DisplayPrice)
	assert.Empty(t, view.Coupon)
}

func TestGetCategoryProductsAllSlug(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewCatalogService(db, pricing.DefaultCouponGenerator())

	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "category_id"}).
			AddRow("smartphone-1", "Smartphone Galaxy S23", int64(699990), "electronics").
			AddRow("sofa-1", "Sofá Modular Comfort", int64(899990), "home"))
	mock.ExpectQuery(`SELECT \* FROM "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "knasta_prices"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	params := utils.PaginationParams{Page: 1, Limit: 20, Order: "desc"}
	category, products, total, err := svc.GetCategoryProducts(AllProductsSlug, params)
	require.NoError(t, err)

	// The "all" slug spans the whole catalog and resolves no category row
	assert.Nil(t, category)
	assert.Equal(t, int64(2), total)
	assert.Len(t, products, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCategoryProductsUnknownSlug(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewCatalogService(db, pricing.DefaultCouponGenerator())

	mock.ExpectQuery(`SELECT \* FROM "categories" WHERE slug =`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	params := utils.PaginationParams{Page: 1, Limit: 20, Order: "desc"}
	category, products, total, err := svc.GetCategoryProducts("no-such-category", params)

	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.Nil(t, category)
	assert.Nil(t, products)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCategoryProductsBySlug(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewCatalogService(db, pricing.DefaultCouponGenerator())

	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery(`SELECT \* FROM "categories" WHERE slug =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).
			AddRow("electronics", "Electrónicos", "electronics"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE category_id =`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE category_id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "category_id"}).
			AddRow("smartphone-1", "Smartphone Galaxy S23", int64(699990), "electronics"))
	mock.ExpectQuery(`SELECT \* FROM "categories" WHERE "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "knasta_prices"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	params := utils.PaginationParams{Page: 1, Limit: 20, Order: "desc"}
	category, products, total, err := svc.GetCategoryProducts("electronics", params)
	require.NoError(t, err)

	require.NotNil(t, category)
	assert.Equal(t, "electronics", category.ID)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, "smartphone-1", products[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrichComparisonAboveRegular(t *testing.T) {
	svc := NewCatalogService(nil, pricing.DefaultCouponGenerator())

	product := models.Product{
		ID:    "headphones-1",
		Price: 89990,
		KnastaPrice: &models.KnastaPrice{
			ProductID: "headphones-1",
			Price:     99990,
		},
	}

	view := svc.enrich(product)

	assert.False(t, view.Quote.HasDiscount())
	assert.Equal(t, int64(89990), view.Quote.DisplayPrice)
	assert.Empty(t, view.Coupon)
}
