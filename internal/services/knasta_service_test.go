// internal/services/knasta_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecocupon/ecocanasta-api/internal/knasta"
)

// stubFetcher returns a fixed price or error per product.
type stubFetcher struct {
	prices map[string]knasta.Price
	errs   map[string]error
}

func (f *stubFetcher) FetchComparisonPrice(_ context.Context, productID string, _ int64) (knasta.Price, error) {
	if err, ok := f.errs[productID]; ok {
		return knasta.Price{}, err
	}
	return f.prices[productID], nil
}

func TestRefreshProductUpsertsSingleRecord(t *testing.T) {
	db, mock := newMockDB(t)
	fetcher := &stubFetcher{prices: map[string]knasta.Price{
		"smartphone-1": {Amount: 599990, SourceURL: "https://knasta.cl/producto/smartphone-galaxy-s23"},
	}}
	svc := NewKnastaService(db, fetcher)

	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "category_id"}).
			AddRow("smartphone-1", "Smartphone Galaxy S23", int64(699990), "electronics"))
	mock.ExpectQuery(`SELECT \* FROM "knasta_prices"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	// A refresh is a single-row upsert keyed by product_id, never a second row
	mock.ExpectQuery(`INSERT INTO "knasta_prices" .* ON CONFLICT \("product_id"\) DO UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	record, err := svc.RefreshProduct(context.Background(), "smartphone-1")
	require.NoError(t, err)
	assert.Equal(t, "smartphone-1", record.ProductID)
	assert.Equal(t, int64(599990), record.Price)
	assert.Equal(t, "https://knasta.cl/producto/smartphone-galaxy-s23", record.URL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshProductNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewKnastaService(db, &stubFetcher{})

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.RefreshProduct(context.Background(), "no-such-product")
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshProductDropsUnsafeSourceURL(t *testing.T) {
	db, mock := newMockDB(t)
	fetcher := &stubFetcher{prices: map[string]knasta.Price{
		"smartphone-1": {Amount: 599990, SourceURL: "javascript:alert(1)"},
	}}
	svc := NewKnastaService(db, fetcher)

	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "price"}).
			AddRow("smartphone-1", int64(699990)))
	mock.ExpectQuery(`SELECT \* FROM "knasta_prices"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "knasta_prices"`).
		WithArgs("smartphone-1", int64(599990), "", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	record, err := svc.RefreshProduct(context.Background(), "smartphone-1")
	require.NoError(t, err)
	assert.Empty(t, record.URL)
	assert.Equal(t, int64(599990), record.Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshAllContinuesOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	fetcher := &stubFetcher{
		prices: map[string]knasta.Price{
			"smartphone-1": {Amount: 599990, SourceURL: "https://knasta.cl/producto/smartphone-galaxy-s23"},
		},
		errs: map[string]error{
			"laptop-1": &knasta.FetchError{Kind: knasta.ErrKindNotFound, ProductID: "laptop-1"},
		},
	}
	svc := NewKnastaService(db, fetcher)

	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "price"}).
			AddRow("smartphone-1", int64(699990)).
			AddRow("laptop-1", int64(1299990)))
	mock.ExpectQuery(`SELECT \* FROM "knasta_prices"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "knasta_prices" .* ON CONFLICT \("product_id"\) DO UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	report, err := svc.RefreshAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Updated)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "laptop-1", report.Failed[0].ProductID)
	assert.Equal(t, "not_found", report.Failed[0].Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}
