package catalog

import (
	"context"

	"showroom/internal/domain/models/catalog"
)

// BulkItemResult reports the outcome of one constituent mutation in a bulk
// operation. Bulk operations are best-effort: one item failing never aborts
// its siblings, so callers get a result per item rather than one error.
type BulkItemResult struct {
	Item     catalog.ItemRef `json:"item"`
	Error    string          `json:"error,omitempty"`
	ShareURL string          `json:"share_url,omitempty"` // bulk share only
}

// BulkResult is the settled outcome of a bulk operation: every constituent
// mutation has resolved, successfully or not.
type BulkResult struct {
	Succeeded []BulkItemResult `json:"succeeded"`
	Failed    []BulkItemResult `json:"failed"`
}

// BulkService fans a multi-selection out into per-entity mutations
type BulkService interface {
	// Move moves every selected entity into targetID (nil = root). Rejects
	// with domain.ErrCycle before issuing any mutation when the target is a
	// selected folder or a descendant of one.
	Move(ctx context.Context, ownerID string, selection []catalog.ItemRef, targetID *string) (*BulkResult, error)

	// Delete deletes every selected entity; already-deleted items report
	// not-found individually without aborting the batch.
	Delete(ctx context.Context, ownerID string, selection []catalog.ItemRef) (*BulkResult, error)

	// Share returns a share link per selected product, using the product's
	// most recent configuration; products without one are reported as
	// not-shareable. Folders in the selection are skipped.
	Share(ctx context.Context, ownerID string, selection []catalog.ItemRef) (*BulkResult, error)
}
