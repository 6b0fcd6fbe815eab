package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/api/request"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/api/response"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/apperrors"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/service"
)

// QuoteHandler handles HTTP requests for market quote endpoints.
type QuoteHandler struct {
	quoteService *service.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler with the provided service dependency.
func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
	}
}

// Quotes handles GET requests to list every cached quote.
//
// Endpoint: GET /api/quotes
// Response: 200 OK with array of Quote
// Error: 500 Internal Server Error if retrieval fails
func (h *QuoteHandler) Quotes(w http.ResponseWriter, _ *http.Request) {
	quotes, err := h.quoteService.ListCachedQuotes()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveQuotes.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, quotes)
}

// GetQuote handles GET requests for one ticker's quote, served from the
// cache when fresh and fetched from the provider otherwise.
//
// Endpoint: GET /api/quotes/{ticker}
// Response: 200 OK with Quote
// Error: 400 Bad Request if the ticker is empty
// Error: 404 Not Found if the provider has no quote for the ticker
// Error: 500 Internal Server Error if retrieval fails
func (h *QuoteHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "ticker")))
	if ticker == "" {
		response.RespondError(w, http.StatusBadRequest, "ticker is required", "")
		return
	}

	quote, err := h.quoteService.GetQuote(ticker)
	if err != nil {
		if errors.Is(err, apperrors.ErrQuoteUnavailable) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrQuoteNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveQuotes.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, quote)
}

// BatchQuotes handles POST requests to quote up to 50 tickers in one call.
// Tickers without an obtainable quote are omitted from the result.
//
// Endpoint: POST /api/quotes/batch
// Request Body: BatchQuotesRequest (tickers)
// Response: 200 OK with array of Quote
// Error: 400 Bad Request if the body is invalid, empty or over the batch limit
// Error: 500 Internal Server Error if retrieval fails
func (h *QuoteHandler) BatchQuotes(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.BatchQuotesRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if len(req.Tickers) == 0 {
		response.RespondError(w, http.StatusBadRequest, "tickers are required", "")
		return
	}

	quotes, err := h.quoteService.GetBatchQuotes(req.Tickers)
	if err != nil {
		if errors.Is(err, apperrors.ErrBatchTooLarge) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrBatchTooLarge.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveQuotes.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, quotes)
}

// RefreshQuotes handles POST requests to re-fetch every quote for assets with
// a position, bypassing the cache TTL.
//
// Endpoint: POST /api/quotes/refresh
// Response: 200 OK with the number of quotes updated
// Error: 500 Internal Server Error if the refresh cannot start
func (h *QuoteHandler) RefreshQuotes(w http.ResponseWriter, _ *http.Request) {
	updated, err := h.quoteService.RefreshAll()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to refresh quotes", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]int{"updated": updated})
}
