package handler

import (
	"log/slog"
	"net/http"

	"showroom/internal/httputil"
	"showroom/internal/presets"
)

// PresetHandler serves the curated scene presets
type PresetHandler struct {
	registry *presets.Registry
	logger   *slog.Logger
}

// NewPresetHandler creates a new preset handler
func NewPresetHandler(registry *presets.Registry, logger *slog.Logger) *PresetHandler {
	return &PresetHandler{
		registry: registry,
		logger:   logger,
	}
}

// ListPresets returns all scene presets. Public: the viewer page offers
// presets without a session.
// GET /api/presets
func (h *PresetHandler) ListPresets(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.registry.List())
}

// GetPreset returns one preset by id
// GET /api/presets/{id}
func (h *PresetHandler) GetPreset(w http.ResponseWriter, r *http.Request) {
	preset, err := h.registry.Get(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusNotFound, "unknown preset")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, preset)
}
