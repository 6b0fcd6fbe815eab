package handlers

import (
	"errors"
	"net/http"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/api/response"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/apperrors"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/service"
)

// maxUploadBytes caps statement uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// ImportHandler handles B3 statement uploads.
type ImportHandler struct {
	importService *service.ImportService
}

// NewImportHandler creates a new ImportHandler with the provided service dependency.
func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
	}
}

// ImportB3 handles POST requests to import a B3 "Negociação" CSV export.
// The statement is uploaded as multipart form data under the "file" field.
// Re-importing the same file is idempotent: rows already in the ledger are
// counted as duplicates, not errors.
//
// Endpoint: POST /api/import/b3
// Request Body: multipart/form-data with a "file" field
// Response: 200 OK with ImportSummary
// Error: 400 Bad Request if the upload is missing, the header is incomplete
// or the statement has no rows
// Error: 500 Internal Server Error if a row fails to import (nothing is committed)
func (h *ImportHandler) ImportB3(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, _, err := r.FormFile("file")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "statement file is required", err.Error())
		return
	}
	defer file.Close()

	summary, err := h.importService.ImportStatement(file)
	if err != nil {
		if errors.Is(err, apperrors.ErrMissingColumns) ||
			errors.Is(err, apperrors.ErrEmptyStatement) ||
			errors.Is(err, apperrors.ErrMalformedRow) {
			response.RespondError(w, http.StatusBadRequest, "invalid statement", err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToImport.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}
