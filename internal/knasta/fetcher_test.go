// internal/knasta/fetcher_test.go
package knasta

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedFetcherStaysWithinTenPercent(t *testing.T) {
	f := NewSimulatedFetcher("https://knasta.cl")

	regular := int64(699990)
	for i := 0; i < 500; i++ {
		price, err := f.FetchComparisonPrice(context.Background(), "smartphone-1", regular)
		require.NoError(t, err)

		low := int64(float64(regular) * 0.9)
		high := int64(float64(regular)*1.1) + 1
		assert.GreaterOrEqual(t, price.Amount, low)
		assert.LessOrEqual(t, price.Amount, high)
	}
}

func TestSimulatedFetcherBuildsSourceURL(t *testing.T) {
	f := NewSimulatedFetcher("https://knasta.cl")

	price, err := f.FetchComparisonPrice(context.Background(), "laptop-1", 1000)
	require.NoError(t, err)
	assert.Equal(t, "https://knasta.cl/producto/laptop-1", price.SourceURL)
}

func TestHTTPFetcherDecodesPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/smartphone-1/price", r.URL.Path)
		fmt.Fprint(w, `{"price": 599990, "url": "https://knasta.cl/producto/smartphone-galaxy-s23"}`)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL, time.Second)
	price, err := f.FetchComparisonPrice(context.Background(), "smartphone-1", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(599990), price.Amount)
	assert.Equal(t, "https://knasta.cl/producto/smartphone-galaxy-s23", price.SourceURL)
}

func TestHTTPFetcherClassifiesStatusCodes(t *testing.T) {
	cases := []struct {
		status int
		kind   ErrorKind
	}{
		{http.StatusNotFound, ErrKindNotFound},
		{http.StatusTooManyRequests, ErrKindRateLimited},
		{http.StatusInternalServerError, ErrKindUpstream},
		{http.StatusBadGateway, ErrKindUpstream},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))

		f := NewHTTPFetcher(srv.URL, time.Second)
		_, err := f.FetchComparisonPrice(context.Background(), "sofa-1", 0)

		var fetchErr *FetchError
		require.ErrorAs(t, err, &fetchErr, "status %d", tc.status)
		assert.Equal(t, tc.kind, fetchErr.Kind, "status %d", tc.status)
		assert.Equal(t, "sofa-1", fetchErr.ProductID)

		srv.Close()
	}
}

func TestHTTPFetcherTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL, 20*time.Millisecond)
	_, err := f.FetchComparisonPrice(context.Background(), "table-1", 0)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, ErrKindTimeout, fetchErr.Kind)
}

func TestFetchErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &FetchError{Kind: ErrKindUpstream, ProductID: "p", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "upstream")
}
