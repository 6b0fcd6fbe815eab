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

// OperationHandler handles HTTP requests for the operation ledger endpoints.
type OperationHandler struct {
	operationService *service.OperationService
}

// NewOperationHandler creates a new OperationHandler with the provided service dependency.
func NewOperationHandler(operationService *service.OperationService) *OperationHandler {
	return &OperationHandler{
		operationService: operationService,
	}
}

// Operations handles GET requests to retrieve all active operations.
//
// Endpoint: GET /api/operation
// Response: 200 OK with array of OperationResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *OperationHandler) Operations(w http.ResponseWriter, _ *http.Request) {
	operations, err := h.operationService.ListOperations()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveOperations.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, operations)
}

// OperationsPerAsset handles GET requests to retrieve the active operations
// of one asset.
//
// Endpoint: GET /api/operation/asset/{uuid}
// Response: 200 OK with array of OperationResponse
// Error: 400 Bad Request if asset ID is invalid (validated by middleware)
// Error: 404 Not Found if asset not found
// Error: 500 Internal Server Error if retrieval fails
func (h *OperationHandler) OperationsPerAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	operations, err := h.operationService.ListOperationsByAsset(assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveOperations.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, operations)
}

// GetOperation handles GET requests to retrieve a single operation by ID.
// Superseded (cancelled) and deleted rows remain readable.
//
// Endpoint: GET /api/operation/{uuid}
// Response: 200 OK with OperationResponse
// Error: 400 Bad Request if operation ID is invalid (validated by middleware)
// Error: 404 Not Found if operation not found
// Error: 500 Internal Server Error if retrieval fails
func (h *OperationHandler) GetOperation(w http.ResponseWriter, r *http.Request) {
	operationID := chi.URLParam(r, "uuid")

	operation, err := h.operationService.GetOperation(operationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrOperationNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrOperationNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveOperation.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, operation)
}

// CreateOperation handles POST requests to record a manual operation.
// The asset is created on first use of a new ticker.
//
// Endpoint: POST /api/operation
// Request Body: CreateOperationRequest
// Response: 201 Created with OperationResponse
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if an identical operation already exists
// Error: 500 Internal Server Error if creation fails
func (h *OperationHandler) CreateOperation(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateOperationRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateOperation(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	operation, err := h.operationService.CreateOperation(req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateOperation) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateOperation.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create operation", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, operation)
}

// UpdateOperation handles PUT requests to edit an operation. The edit is a
// supersede: the original row is cancelled and a replacement inserted. The
// response carries the replacement, under a new ID.
//
// Endpoint: PUT /api/operation/{uuid}
// Request Body: UpdateOperationRequest (all fields optional)
// Response: 200 OK with the replacement OperationResponse
// Error: 400 Bad Request if operation ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if operation not found
// Error: 409 Conflict if the operation is not active or the edit collides with an existing row
// Error: 500 Internal Server Error if update fails
func (h *OperationHandler) UpdateOperation(w http.ResponseWriter, r *http.Request) {
	operationID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateOperationRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateOperation(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	operation, err := h.operationService.UpdateOperation(operationID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrOperationNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrOperationNotFound.Error(), err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrOperationNotActive) || errors.Is(err, apperrors.ErrDuplicateOperation) {
			response.RespondError(w, http.StatusConflict, "operation cannot be updated", err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update operation", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, operation)
}

// DeleteOperation handles DELETE requests to soft-delete an operation.
//
// Endpoint: DELETE /api/operation/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if operation ID is invalid (validated by middleware)
// Error: 404 Not Found if operation not found
// Error: 409 Conflict if the operation is not active
// Error: 500 Internal Server Error if deletion fails
func (h *OperationHandler) DeleteOperation(w http.ResponseWriter, r *http.Request) {
	operationID := chi.URLParam(r, "uuid")

	err := h.operationService.DeleteOperation(operationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrOperationNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrOperationNotFound.Error(), err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrOperationNotActive) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrOperationNotActive.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete operation", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
