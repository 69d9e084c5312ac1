package handler

import (
	"log/slog"
	"net/http"

	"showroom/internal/domain/models/catalog"
	catalogRepo "showroom/internal/domain/repositories/catalog"
	catalogSvc "showroom/internal/domain/services/catalog"
	"showroom/internal/httputil"
	svcCatalog "showroom/internal/service/catalog"
)

// ViewHandler serves the folder-tree view and resolves drag gestures
type ViewHandler struct {
	treeService    catalogSvc.TreeService
	folderService  catalogSvc.FolderService
	productService catalogSvc.ProductService
	folderRepo     catalogRepo.FolderRepository
	logger         *slog.Logger
}

// NewViewHandler creates a new view handler
func NewViewHandler(
	treeService catalogSvc.TreeService,
	folderService catalogSvc.FolderService,
	productService catalogSvc.ProductService,
	folderRepo catalogRepo.FolderRepository,
	logger *slog.Logger,
) *ViewHandler {
	return &ViewHandler{
		treeService:    treeService,
		folderService:  folderService,
		productService: productService,
		folderRepo:     folderRepo,
		logger:         logger,
	}
}

// GetView resolves the current-folder listing with its breadcrumb. A stale
// folder id resolves to the root view rather than a 404.
// GET /api/view?folder={id}
func (h *ViewHandler) GetView(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var folderID *string
	if id := r.URL.Query().Get("folder"); id != "" {
		folderID = &id
	}

	view, err := h.treeService.View(r.Context(), userID, folderID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if view.Folders == nil {
		view.Folders = []catalog.Folder{}
	}
	if view.Products == nil {
		view.Products = []catalog.Product{}
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// GetBreadcrumb returns the ancestor chain for one folder, root-first
// GET /api/folders/{id}/breadcrumb
func (h *ViewHandler) GetBreadcrumb(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	folders, err := h.folderRepo.GetAllByOwner(r.Context(), userID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	chain, err := svcCatalog.Breadcrumb(folders, r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if chain == nil {
		httputil.RespondError(w, http.StatusNotFound, "resource not found")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, chain)
}

type dragRequest struct {
	Item   catalog.ItemRef  `json:"item"`
	Target *catalog.ItemRef `json:"target"`
}

type dragResponse struct {
	Action string           `json:"action"`
	Item   catalog.ItemRef  `json:"item"`
	Moved  *catalog.ItemRef `json:"moved,omitempty"`
}

// Drag resolves one completed drag gesture server-side: drops onto a folder
// card dispatch a move, drops onto a sibling card are acknowledged as a
// reorder without any mutation, everything else is a no-op.
// POST /api/view/drag
func (h *ViewHandler) Drag(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dragRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Item.ID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "item is required")
		return
	}

	folders, err := h.folderRepo.GetAllByOwner(r.Context(), userID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	drag := svcCatalog.NewDragController()
	drag.Begin(req.Item)
	outcome, err := drag.Drop(req.Target, folders)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	resp := dragResponse{Item: outcome.Item}
	switch outcome.Action {
	case svcCatalog.ActionMove:
		switch outcome.Item.Kind {
		case catalog.KindFolder:
			_, err = h.folderService.MoveFolder(r.Context(), userID, outcome.Item.ID, outcome.TargetFolderID)
		case catalog.KindProduct:
			_, err = h.productService.MoveProduct(r.Context(), userID, outcome.Item.ID, outcome.TargetFolderID)
		}
		if err != nil {
			handleError(w, h.logger, err)
			return
		}
		resp.Action = "moved"
		resp.Moved = &outcome.Item
	case svcCatalog.ActionReorder:
		h.logger.Debug("reorder gesture, ordering is presentational", "item", outcome.Item.ID)
		resp.Action = "reordered"
	default:
		resp.Action = "none"
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}
