// internal/knasta/fetcher.go

// Package knasta abstracts the external comparison-price source. The refresh
// flow depends only on the PriceFetcher interface; the production
// implementation talks HTTP to the price site, the simulated one random-walks
// the current price for development environments.
package knasta

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

type ErrorKind string

const (
	ErrKindTimeout     ErrorKind = "timeout"
	ErrKindNotFound    ErrorKind = "not_found"
	ErrKindRateLimited ErrorKind = "rate_limited"
	ErrKindUpstream    ErrorKind = "upstream"
)

// FetchError classifies a failed price fetch so callers can report and
// partition failures without string matching.
type FetchError struct {
	Kind      ErrorKind
	ProductID string
	Err       error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("knasta fetch %s for product %s: %v", e.Kind, e.ProductID, e.Err)
	}
	return fmt.Sprintf("knasta fetch %s for product %s", e.Kind, e.ProductID)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Price is a fetched comparison price and where it came from.
type Price struct {
	Amount    int64  `json:"price"`
	SourceURL string `json:"url"`
}

// PriceFetcher retrieves the current comparison price for a product.
// currentPrice is the price the caller already holds (the existing comparison
// price, or the regular price when none exists); the live fetcher ignores it,
// the simulator walks from it.
type PriceFetcher interface {
	FetchComparisonPrice(ctx context.Context, productID string, currentPrice int64) (Price, error)
}

// SimulatedFetcher drifts the current price by a uniform ±10%. It stands in
// for the real source during development and in tests.
type SimulatedFetcher struct {
	BaseURL string

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSimulatedFetcher(baseURL string) *SimulatedFetcher {
	return &SimulatedFetcher{
		BaseURL: baseURL,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (f *SimulatedFetcher) FetchComparisonPrice(_ context.Context, productID string, currentPrice int64) (Price, error) {
	f.mu.Lock()
	drift := f.rnd.Float64()*0.2 - 0.1
	f.mu.Unlock()

	amount := int64(math.Round(float64(currentPrice) * (1 + drift)))
	if amount < 0 {
		amount = 0
	}

	return Price{
		Amount:    amount,
		SourceURL: fmt.Sprintf("%s/producto/%s", f.BaseURL, productID),
	}, nil
}

// HTTPFetcher queries the price site's JSON endpoint.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (f *HTTPFetcher) FetchComparisonPrice(ctx context.Context, productID string, _ int64) (Price, error) {
	url := fmt.Sprintf("%s/api/products/%s/price", f.BaseURL, productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Price{}, &FetchError{Kind: ErrKindUpstream, ProductID: productID, Err: err}
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		kind := ErrKindUpstream
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			kind = ErrKindTimeout
		}
		return Price{}, &FetchError{Kind: kind, ProductID: productID, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusNotFound:
		return Price{}, &FetchError{Kind: ErrKindNotFound, ProductID: productID}
	case resp.StatusCode == http.StatusTooManyRequests:
		return Price{}, &FetchError{Kind: ErrKindRateLimited, ProductID: productID}
	default:
		return Price{}, &FetchError{
			Kind:      ErrKindUpstream,
			ProductID: productID,
			Err:       fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var price Price
	if err := json.NewDecoder(resp.Body).Decode(&price); err != nil {
		return Price{}, &FetchError{Kind: ErrKindUpstream, ProductID: productID, Err: err}
	}

	if price.SourceURL == "" {
		price.SourceURL = fmt.Sprintf("%s/producto/%s", f.BaseURL, productID)
	}

	return price, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
