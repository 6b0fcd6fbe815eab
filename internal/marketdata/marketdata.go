// Package marketdata fetches market quotes for listed assets from the Yahoo
// Finance chart API. B3 tickers are mapped to Yahoo symbols by appending the
// ".SA" exchange suffix.
package marketdata

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/apperrors"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/model"
)

// Client fetches the current quote for a ticker. Implementations are expected
// to be safe for concurrent use.
type Client interface {
	FetchQuote(ticker string) (model.Quote, error)
}

// TokenFunc returns the provider token to authenticate requests with. It is
// called per request so a token stored at runtime takes effect without a
// restart. A nil TokenFunc, an empty token or a lookup error all mean the
// request goes out unauthenticated.
type TokenFunc func() (string, error)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// YahooClient provides methods for fetching quotes from the Yahoo Finance API.
// It wraps an HTTP client and translates chart responses into model.Quote values.
type YahooClient struct {
	httpClient *http.Client
	baseURL    string
	token      TokenFunc
}

// NewYahooClient creates a new Yahoo Finance client with a sensible request timeout.
func NewYahooClient(token TokenFunc) *YahooClient {
	return &YahooClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		token:      token,
	}
}

// Symbol converts a B3 ticker into the Yahoo Finance symbol. Tickers that
// already carry an exchange suffix are passed through unchanged.
func Symbol(ticker string) string {
	if strings.Contains(ticker, ".") {
		return ticker
	}
	return ticker + ".SA"
}

// FetchQuote retrieves the most recent daily quote for a ticker.
// It queries the last 5 trading days and uses the latest day with a close
// price, so quotes remain available over weekends and holidays.
func (c *YahooClient) FetchQuote(ticker string) (model.Quote, error) {
	url := fmt.Sprintf(
		"%s/v8/finance/chart/%s?interval=1d&range=5d",
		c.baseURL, Symbol(ticker),
	)

	response, err := c.queryYahoo(url)
	if err != nil {
		return model.Quote{}, fmt.Errorf("%w: %s: %v", apperrors.ErrQuoteUnavailable, ticker, err)
	}
	if len(response.Chart.Result) == 0 {
		return model.Quote{}, fmt.Errorf("%w: no results for %s", apperrors.ErrQuoteUnavailable, ticker)
	}

	result := response.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return model.Quote{}, fmt.Errorf("%w: no price data for %s", apperrors.ErrQuoteUnavailable, ticker)
	}

	prices := result.Indicators.Quote[0]
	latest := -1
	for i := len(prices.Close) - 1; i >= 0; i-- {
		if prices.Close[i] > 0 {
			latest = i
			break
		}
	}
	if latest < 0 {
		return model.Quote{}, fmt.Errorf("%w: no close prices for %s", apperrors.ErrQuoteUnavailable, ticker)
	}

	price := prices.Close[latest]
	if result.Meta.RegularMarketPrice > 0 {
		price = result.Meta.RegularMarketPrice
	}

	previousClose := result.Meta.ChartPreviousClose
	if result.Meta.PreviousClose > 0 {
		previousClose = result.Meta.PreviousClose
	}
	if previousClose == 0 && latest > 0 {
		previousClose = prices.Close[latest-1]
	}

	quote := model.Quote{
		Ticker:        ticker,
		Price:         price,
		PreviousClose: previousClose,
		Source:        "yahoo",
		UpdatedAt:     time.Now().UTC(),
	}
	if latest < len(prices.Open) {
		quote.Open = prices.Open[latest]
	}
	if latest < len(prices.High) {
		quote.High = prices.High[latest]
	}
	if latest < len(prices.Low) {
		quote.Low = prices.Low[latest]
	}
	if latest < len(prices.Volume) {
		quote.Volume = prices.Volume[latest]
	}
	if previousClose > 0 {
		quote.Change = price - previousClose
		quote.ChangePercent = (price - previousClose) / previousClose * 100
	}

	return quote, nil
}

// queryYahoo executes an HTTP request against the Yahoo Finance API and
// decodes the chart response. The User-Agent header mimics a browser, as
// requests without one are rejected.
func (c *YahooClient) queryYahoo(url string) (Response, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	if c.token != nil {
		if token, err := c.token(); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s", *response.Chart.Error)
	}

	return response, nil
}
