package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/api/request"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/api/response"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/apperrors"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/service"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/validation"
)

// FixedIncomeHandler handles HTTP requests for fixed-income endpoints.
// Fixed-income routes address holdings by their underlying asset ID.
type FixedIncomeHandler struct {
	fixedIncomeService *service.FixedIncomeService
}

// NewFixedIncomeHandler creates a new FixedIncomeHandler with the provided service dependency.
func NewFixedIncomeHandler(fixedIncomeService *service.FixedIncomeService) *FixedIncomeHandler {
	return &FixedIncomeHandler{
		fixedIncomeService: fixedIncomeService,
	}
}

// FixedIncomeAssets handles GET requests to list all fixed-income holdings
// with balances, ordered by maturity date.
//
// Endpoint: GET /api/fixed-income
// Response: 200 OK with array of FixedIncomeAssetWithBalance
// Error: 500 Internal Server Error if retrieval fails
func (h *FixedIncomeHandler) FixedIncomeAssets(w http.ResponseWriter, _ *http.Request) {
	assets, err := h.fixedIncomeService.ListFixedIncome()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveFixedIncome.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, assets)
}

// GetFixedIncomeAsset handles GET requests for one holding with its balance.
//
// Endpoint: GET /api/fixed-income/{uuid}
// Response: 200 OK with FixedIncomeAssetWithBalance
// Error: 400 Bad Request if asset ID is invalid (validated by middleware)
// Error: 404 Not Found if no fixed-income record exists for the asset
// Error: 500 Internal Server Error if retrieval fails
func (h *FixedIncomeHandler) GetFixedIncomeAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	asset, err := h.fixedIncomeService.GetFixedIncome(assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrFixedIncomeNotFound) || errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrFixedIncomeNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveFixedIncome.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// CreateFixedIncomeAsset handles POST requests to register a fixed-income
// holding. The underlying asset is created when the ticker is new.
//
// Endpoint: POST /api/fixed-income
// Request Body: CreateFixedIncomeRequest
// Response: 201 Created with FixedIncomeAssetWithBalance
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if the asset already carries fixed-income attributes
// Error: 500 Internal Server Error if creation fails
func (h *FixedIncomeHandler) CreateFixedIncomeAsset(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateFixedIncomeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateFixedIncome(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	asset, err := h.fixedIncomeService.CreateFixedIncome(req)
	if err != nil {
		if errors.Is(err, apperrors.ErrFixedIncomeExists) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrFixedIncomeExists.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create fixed income asset", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, asset)
}

// DeleteFixedIncomeAsset handles DELETE requests to soft-delete a holding.
//
// Endpoint: DELETE /api/fixed-income/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if asset ID is invalid (validated by middleware)
// Error: 404 Not Found if no fixed-income record exists for the asset
// Error: 500 Internal Server Error if deletion fails
func (h *FixedIncomeHandler) DeleteFixedIncomeAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	err := h.fixedIncomeService.DeleteFixedIncome(assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrFixedIncomeNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrFixedIncomeNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete fixed income asset", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// FixedIncomeOperations handles GET requests for a holding's deposit and
// withdrawal sub-ledger.
//
// Endpoint: GET /api/fixed-income/{uuid}/operations
// Response: 200 OK with array of FixedIncomeOperation
// Error: 400 Bad Request if asset ID is invalid (validated by middleware)
// Error: 404 Not Found if no fixed-income record exists for the asset
// Error: 500 Internal Server Error if retrieval fails
func (h *FixedIncomeHandler) FixedIncomeOperations(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	operations, err := h.fixedIncomeService.ListFixedIncomeOperations(assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrFixedIncomeNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrFixedIncomeNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveOperations.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, operations)
}

// CreateFixedIncomeOperation handles POST requests to record a deposit,
// withdrawal or maturity event against a holding.
//
// Endpoint: POST /api/fixed-income/{uuid}/operations
// Request Body: CreateFixedIncomeOperationRequest
// Response: 201 Created with FixedIncomeOperation
// Error: 400 Bad Request if asset ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if no fixed-income record exists for the asset
// Error: 500 Internal Server Error if creation fails
func (h *FixedIncomeHandler) CreateFixedIncomeOperation(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.CreateFixedIncomeOperationRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateFixedIncomeOperation(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	operation, err := h.fixedIncomeService.CreateFixedIncomeOperation(assetID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrFixedIncomeNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrFixedIncomeNotFound.Error(), err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrNonPositiveAmount) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrNonPositiveAmount.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create fixed income operation", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, operation)
}

// FixedIncomeProjection handles GET requests for the yield projection of a
// holding to its maturity date. A zero balance or a matured holding yields a
// degenerate projection with an explanatory message, not an error.
//
// Endpoint: GET /api/fixed-income/{uuid}/projection
// Response: 200 OK with FixedIncomeProjection
// Error: 400 Bad Request if asset ID is invalid (validated by middleware)
// Error: 404 Not Found if no fixed-income record exists for the asset
// Error: 500 Internal Server Error if the projection fails
func (h *FixedIncomeHandler) FixedIncomeProjection(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	projection, err := h.fixedIncomeService.Project(assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrFixedIncomeNotFound) || errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrFixedIncomeNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetProjection.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, projection)
}
