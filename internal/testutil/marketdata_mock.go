package testutil

import (
	"fmt"
	"sync"
	"time"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/apperrors"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/model"
)

// MockQuoteClient is a mock implementation of marketdata.Client for testing.
// It returns predefined prices instead of calling the provider.
type MockQuoteClient struct {
	mu sync.Mutex
	// Prices maps ticker to the price the mock should return.
	Prices map[string]float64
	// Err, when set, is returned for every ticker.
	Err error
	// FetchCount tracks how many times FetchQuote was called.
	FetchCount int
}

// NewMockQuoteClient creates a mock market-data client with the given prices.
func NewMockQuoteClient(prices map[string]float64) *MockQuoteClient {
	if prices == nil {
		prices = map[string]float64{}
	}
	return &MockQuoteClient{Prices: prices}
}

// WithError configures the mock to fail every fetch.
func (m *MockQuoteClient) WithError(err error) *MockQuoteClient {
	m.Err = err
	return m
}

// FetchQuote implements marketdata.Client.
func (m *MockQuoteClient) FetchQuote(ticker string) (model.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FetchCount++
	if m.Err != nil {
		return model.Quote{}, m.Err
	}

	price, ok := m.Prices[ticker]
	if !ok {
		return model.Quote{}, fmt.Errorf("%w: %s", apperrors.ErrQuoteUnavailable, ticker)
	}

	return model.Quote{
		Ticker:    ticker,
		Price:     price,
		Source:    "mock",
		UpdatedAt: time.Now().UTC(),
	}, nil
}

// Calls returns the number of FetchQuote invocations.
func (m *MockQuoteClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.FetchCount
}
