package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/apperrors"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/marketdata"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/model"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/repository"
)

// maxBatchTickers caps one batch quote request.
const maxBatchTickers = 50

// maxConcurrentFetches bounds parallel provider calls.
const maxConcurrentFetches = 8

// QuoteService serves market quotes through a read-through database cache.
// Cached quotes younger than the TTL are returned without touching the
// provider; stale entries are refreshed on demand.
type QuoteService struct {
	quoteRepo *repository.QuoteRepository
	client    marketdata.Client
	ttl       time.Duration
}

// NewQuoteService creates a new QuoteService with the provided dependencies.
func NewQuoteService(
	quoteRepo *repository.QuoteRepository,
	client marketdata.Client,
	ttl time.Duration,
) *QuoteService {
	return &QuoteService{
		quoteRepo: quoteRepo,
		client:    client,
		ttl:       ttl,
	}
}

// GetQuote returns the quote for a ticker, fetching from the provider when
// the cached entry is missing or older than the TTL. If the provider fails
// and a stale cached quote exists, the stale quote is served.
func (s *QuoteService) GetQuote(ticker string) (model.Quote, error) {
	cached, cacheErr := s.quoteRepo.GetQuote(ticker)
	if cacheErr == nil && time.Since(cached.UpdatedAt) < s.ttl {
		return cached, nil
	}
	if cacheErr != nil && !errors.Is(cacheErr, apperrors.ErrQuoteNotFound) {
		return model.Quote{}, cacheErr
	}

	quote, err := s.client.FetchQuote(ticker)
	if err != nil {
		if cacheErr == nil {
			log.Printf("WARN quotes: provider failed for %s, serving stale quote: %v", ticker, err)
			return cached, nil
		}
		return model.Quote{}, err
	}

	if err := s.quoteRepo.UpsertQuote(&quote); err != nil {
		return model.Quote{}, err
	}
	return quote, nil
}

// GetBatchQuotes resolves up to maxBatchTickers tickers concurrently.
// Tickers the provider cannot quote are omitted from the result rather than
// failing the batch.
func (s *QuoteService) GetBatchQuotes(tickers []string) ([]model.Quote, error) {
	if len(tickers) > maxBatchTickers {
		return nil, fmt.Errorf("%w: %d tickers, maximum is %d",
			apperrors.ErrBatchTooLarge, len(tickers), maxBatchTickers)
	}

	results := make([]*model.Quote, len(tickers))
	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)

	for i, ticker := range tickers {
		g.Go(func() error {
			quote, err := s.GetQuote(ticker)
			if err != nil {
				log.Printf("WARN quotes: failed to quote %s: %v", ticker, err)
				return nil
			}
			results[i] = &quote
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	quotes := make([]model.Quote, 0, len(tickers))
	for _, q := range results {
		if q != nil {
			quotes = append(quotes, *q)
		}
	}
	return quotes, nil
}

// ListCachedQuotes returns every cached quote without touching the provider.
func (s *QuoteService) ListCachedQuotes() ([]model.Quote, error) {
	return s.quoteRepo.ListQuotes()
}

// RefreshAll re-fetches quotes for every listed asset with a positive
// position, bypassing the TTL. Used by the scheduler. Returns how many
// quotes were updated.
func (s *QuoteService) RefreshAll() (int, error) {
	tickers, err := s.quoteRepo.GetTickersToUpdate()
	if err != nil {
		return 0, err
	}

	updated := make([]bool, len(tickers))
	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)

	for i, ticker := range tickers {
		g.Go(func() error {
			quote, err := s.client.FetchQuote(ticker)
			if err != nil {
				log.Printf("WARN quotes: refresh failed for %s: %v", ticker, err)
				return nil
			}
			if err := s.quoteRepo.UpsertQuote(&quote); err != nil {
				log.Printf("WARN quotes: failed to store quote for %s: %v", ticker, err)
				return nil
			}
			updated[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	count := 0
	for _, ok := range updated {
		if ok {
			count++
		}
	}
	return count, nil
}
