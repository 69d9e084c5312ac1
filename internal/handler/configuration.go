package handler

import (
	"log/slog"
	"net/http"

	"showroom/internal/domain/models/catalog"
	catalogSvc "showroom/internal/domain/services/catalog"
	"showroom/internal/httputil"
)

// ConfigurationHandler handles configuration HTTP requests
type ConfigurationHandler struct {
	configService catalogSvc.ConfigurationService
	logger        *slog.Logger
}

// NewConfigurationHandler creates a new configuration handler
func NewConfigurationHandler(configService catalogSvc.ConfigurationService, logger *slog.Logger) *ConfigurationHandler {
	return &ConfigurationHandler{
		configService: configService,
		logger:        logger,
	}
}

// CreateConfiguration saves an editor snapshot
// POST /api/configurations
func (h *ConfigurationHandler) CreateConfiguration(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req catalogSvc.CreateConfigurationRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.OwnerID = userID

	cfg, err := h.configService.CreateConfiguration(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, cfg)
}

// ListConfigurations lists a product's configurations, newest first
// GET /api/configurations?product_id={id}
func (h *ConfigurationHandler) ListConfigurations(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	productID := r.URL.Query().Get("product_id")
	if productID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	configs, err := h.configService.ListByProduct(r.Context(), userID, productID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if configs == nil {
		configs = []catalog.Configuration{}
	}

	httputil.RespondJSON(w, http.StatusOK, configs)
}

// GetConfiguration retrieves a configuration by ID
// GET /api/configurations/{id}
func (h *ConfigurationHandler) GetConfiguration(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	cfg, err := h.configService.GetConfiguration(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, cfg)
}

// UpdateConfiguration applies a partial editor save
// PATCH /api/configurations/{id}
func (h *ConfigurationHandler) UpdateConfiguration(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req catalogSvc.UpdateConfigurationRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.OwnerID = userID

	cfg, err := h.configService.UpdateConfiguration(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, cfg)
}

// DeleteConfiguration deletes a configuration
// DELETE /api/configurations/{id}
func (h *ConfigurationHandler) DeleteConfiguration(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.configService.DeleteConfiguration(r.Context(), userID, r.PathValue("id")); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DuplicateConfiguration clones a configuration; the clone starts private
// POST /api/configurations/{id}/duplicate
func (h *ConfigurationHandler) DuplicateConfiguration(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	clone, err := h.configService.DuplicateConfiguration(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, clone)
}

// SetVisibility toggles public access for a configuration's share token
// PUT /api/configurations/{id}/visibility
func (h *ConfigurationHandler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		IsPublic bool `json:"is_public"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg, err := h.configService.SetVisibility(r.Context(), userID, r.PathValue("id"), req.IsPublic)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, cfg)
}
