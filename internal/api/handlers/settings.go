package handlers

import (
	"net/http"
	"strings"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/api/request"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/api/response"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/apperrors"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/service"
)

// SettingHandler handles HTTP requests for application settings.
type SettingHandler struct {
	settingService *service.SettingService
}

// NewSettingHandler creates a new SettingHandler with the provided service dependency.
func NewSettingHandler(settingService *service.SettingService) *SettingHandler {
	return &SettingHandler{
		settingService: settingService,
	}
}

// SetProviderToken handles PUT requests to store the market-data provider
// token. The token is encrypted before it reaches the database and is never
// echoed back.
//
// Endpoint: PUT /api/settings/marketdata-token
// Request Body: UpdateProviderTokenRequest (token)
// Response: 204 No Content on success
// Error: 400 Bad Request if the body is invalid or the token is empty
// Error: 500 Internal Server Error if storage fails
func (h *SettingHandler) SetProviderToken(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateProviderTokenRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if strings.TrimSpace(req.Token) == "" {
		response.RespondError(w, http.StatusBadRequest, "token is required", "")
		return
	}

	if err := h.settingService.SetProviderToken(req.Token); err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToStoreSetting.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
