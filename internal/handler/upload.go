package handler

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"showroom/internal/config"
	"showroom/internal/domain"
	"showroom/internal/httputil"
	"showroom/internal/storage"
)

// UploadHandler streams GLB payloads into blob storage
type UploadHandler struct {
	blobs  storage.BlobStore
	logger *slog.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(blobs storage.BlobStore, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		blobs:  blobs,
		logger: logger,
	}
}

type uploadResponse struct {
	AssetPath string `json:"glb_file_path"`
	Size      int64  `json:"size"`
}

// Upload accepts a multipart GLB file, validates the container signature and
// stores it under a fresh object key namespaced by user. The returned public
// URL goes into the subsequent product-create call.
// POST /api/products/upload
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxAssetSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge, "file exceeds the upload limit")
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	magic := make([]byte, 4)
	n, err := io.ReadFull(file, magic)
	if err != nil && err != io.ErrUnexpectedEOF {
		handleError(w, h.logger, err)
		return
	}
	if err := storage.ValidateGLB(header.Filename, magic[:n]); err != nil {
		handleError(w, h.logger, err)
		return
	}

	key := userID + "/" + uuid.New().String() + ".glb"
	body := io.MultiReader(bytes.NewReader(magic[:n]), file)

	url, err := h.blobs.Upload(r.Context(), key, body, header.Size, func(p storage.UploadProgress) {
		if p.Percentage%25 == 0 {
			h.logger.Debug("upload progress", "key", key, "percentage", p.Percentage)
		}
	})
	if err != nil {
		handleError(w, h.logger, &domain.UpstreamError{Op: "upload asset", Err: err})
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, uploadResponse{
		AssetPath: url,
		Size:      header.Size,
	})
}
