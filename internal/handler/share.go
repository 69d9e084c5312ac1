package handler

import (
	"log/slog"
	"net/http"

	catalogSvc "showroom/internal/domain/services/catalog"
	"showroom/internal/httputil"
)

// ShareHandler resolves public share tokens. Anonymous: the token is the
// whole capability, so these routes sit outside the auth middleware.
type ShareHandler struct {
	configService catalogSvc.ConfigurationService
	logger        *slog.Logger
}

// NewShareHandler creates a new share handler
func NewShareHandler(configService catalogSvc.ConfigurationService, logger *slog.Logger) *ShareHandler {
	return &ShareHandler{
		configService: configService,
		logger:        logger,
	}
}

// ResolveToken fetches a public configuration and its product by share token
// GET /api/shared/{token}
func (h *ShareHandler) ResolveToken(w http.ResponseWriter, r *http.Request) {
	shared, err := h.configService.ResolveShareToken(r.Context(), r.PathValue("token"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, shared)
}
