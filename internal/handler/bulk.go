package handler

import (
	"log/slog"
	"net/http"

	"showroom/internal/domain/models/catalog"
	catalogSvc "showroom/internal/domain/services/catalog"
	"showroom/internal/httputil"
)

// BulkHandler handles multi-select bulk operations
type BulkHandler struct {
	bulkService catalogSvc.BulkService
	logger      *slog.Logger
}

// NewBulkHandler creates a new bulk handler
func NewBulkHandler(bulkService catalogSvc.BulkService, logger *slog.Logger) *BulkHandler {
	return &BulkHandler{
		bulkService: bulkService,
		logger:      logger,
	}
}

type bulkMoveRequest struct {
	Items    []catalog.ItemRef `json:"items"`
	TargetID *string           `json:"target_id"`
}

type bulkRequest struct {
	Items []catalog.ItemRef `json:"items"`
}

// BulkMove moves the selected items into a target folder (null = root)
// POST /api/bulk/move
func (h *BulkHandler) BulkMove(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req bulkMoveRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.bulkService.Move(r.Context(), userID, req.Items, req.TargetID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// BulkDelete deletes the selected items
// POST /api/bulk/delete
func (h *BulkHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req bulkRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.bulkService.Delete(r.Context(), userID, req.Items)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// BulkShare returns a share link per selected product
// POST /api/bulk/share
func (h *BulkHandler) BulkShare(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req bulkRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.bulkService.Share(r.Context(), userID, req.Items)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
